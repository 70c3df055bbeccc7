package analyzers

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/kmpcheck/internal/logging"
	"github.com/yaklabco/kmpcheck/pkg/analyze"
	"github.com/yaklabco/kmpcheck/pkg/index"
)

// Register wires the built-in analyzers into a registry. Unlike
// self-registering rule sets, analyzers need their collaborators
// (index store, file reader, logger) injected, so registration is an
// explicit call rather than init() side effects. Each analyzer gets a
// logger tagged with its own name.
func Register(reg *analyze.Registry, store index.Store, reader analyze.FileReader, repoID string, logger *log.Logger) {
	reg.Register(NewExpectActualAnalyzer(store, logging.ForAnalyzer(logger, "expect-actual")))
	reg.Register(NewNativeThreadSafetyAnalyzer(store, reader, repoID, logging.ForAnalyzer(logger, "native-thread-safety")))
	reg.Register(NewBoundaryImportAnalyzer(store, reader, repoID, logging.ForAnalyzer(logger, "boundary-imports")))
}
