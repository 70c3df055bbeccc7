package cli

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/kmpcheck/internal/configloader"
	"github.com/yaklabco/kmpcheck/internal/logging"
	"github.com/yaklabco/kmpcheck/pkg/analyze"
	"github.com/yaklabco/kmpcheck/pkg/analyze/analyzers"
	"github.com/yaklabco/kmpcheck/pkg/config"
	"github.com/yaklabco/kmpcheck/pkg/fsutil"
	"github.com/yaklabco/kmpcheck/pkg/index"
	"github.com/yaklabco/kmpcheck/pkg/projectdetect"
	"github.com/yaklabco/kmpcheck/pkg/reporter"
)

// ErrIssuesFound is returned when analysis finds blocking issues.
var ErrIssuesFound = errors.New("issues found")

type analyzeFlags struct {
	format     string
	jobs       int
	indexPath  string
	ignore     []string
	disable    []string
	strict     bool
	noSnippets bool
	compact    bool
}

func newAnalyzeCommand() *cobra.Command {
	flags := &analyzeFlags{}

	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Analyze a Kotlin Multiplatform repository",
		Long:  analyzeLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, flags)
		},
	}

	addAnalyzeFlags(cmd, flags)

	return cmd
}

const analyzeLongDescription = `Analyze a Kotlin Multiplatform repository for cross-platform hazards.

By default, analyzes the current directory. Index-backed checks (missing
expect/actual pairings, source set queries) require a snapshot produced
by the indexer; without one they degrade to empty results.

Examples:
  kmpcheck analyze                     # Analyze current directory
  kmpcheck analyze path/to/repo        # Analyze a specific repository
  kmpcheck analyze --format json       # Output as JSON for CI
  kmpcheck analyze --strict            # Treat warnings as errors
  kmpcheck analyze --disable boundary-imports`

func runAnalyze(cmd *cobra.Command, args []string, flags *analyzeFlags) error {
	logger := logging.Default()

	repoPath := "."
	if len(args) == 1 {
		repoPath = args[0]
	}
	repoPath, err := filepath.Abs(repoPath)
	if err != nil {
		return fmt.Errorf("resolve repository path: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(ctx, cmd, repoPath, flags, logger)
	if err != nil {
		return err
	}

	files, err := walkRepository(repoPath, cfg.Ignore)
	if err != nil {
		return fmt.Errorf("scan repository: %w", err)
	}

	project := projectdetect.Detect(files)
	logger.Debug("project detected",
		"build_system", project.BuildSystem,
		"language", project.Language,
		logging.FieldCount, len(files))

	store, repoID := openIndex(cfg, repoPath, logger)

	stream := analyze.NewStream()
	defer stream.Close()

	progressDone := startProgressFeed(stream, cfg.Format)

	registry := analyze.NewRegistry()
	analyzers.Register(registry, store, fsutil.NewOSFileSystem(), repoID, logger)

	runner := analyze.NewRunner(registry, stream, logger)

	start := time.Now()
	diags, err := runner.Run(ctx, repoPath, cfg)
	if err != nil {
		return fmt.Errorf("analysis run: %w", err)
	}

	stream.Close()
	<-progressDone

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:       cmd.OutOrStdout(),
		ErrorWriter:  cmd.ErrOrStderr(),
		Format:       cfg.Format,
		Color:        colorMode,
		ShowSnippets: !flags.noSnippets,
		ShowSummary:  true,
		GroupByFile:  true,
		Compact:      flags.compact,
		WorkingDir:   repoPath,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	result := &reporter.Result{
		RepoPath:     repoPath,
		FilesScanned: len(files),
		Duration:     time.Since(start),
		Diagnostics:  diags,
	}
	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	stats := analyze.ComputeStats(diags, len(files))
	if ExitCodeFromStats(stats, flags.strict) != ExitSuccess {
		return ErrIssuesFound
	}

	return nil
}

// loadConfig merges file, environment, and CLI configuration.
func loadConfig(ctx context.Context, cmd *cobra.Command, repoPath string, flags *analyzeFlags, logger *log.Logger) (*config.Config, error) {
	cliCfg := &config.Config{
		Format:    config.OutputFormat(flags.format),
		Jobs:      flags.jobs,
		IndexPath: flags.indexPath,
		Ignore:    flags.ignore,
		Analyzers: make(map[string]config.AnalyzerConfig),
	}
	disabled := false
	for _, name := range flags.disable {
		cliCfg.Analyzers[name] = config.AnalyzerConfig{Enabled: &disabled}
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   repoPath,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", loadResult.LoadedFrom)
	}

	return loadResult.Config, nil
}

// openIndex loads the repository's index snapshot when available.
// Index-backed analyzers degrade to empty results on a fresh store.
func openIndex(cfg *config.Config, repoPath string, logger *log.Logger) (index.Store, string) {
	store := index.NewMemoryStore()
	repoID := repoPath

	if cfg.IndexPath == "" {
		logger.Debug("no index path configured; running without snapshot")
		return store, repoID
	}

	blobs, err := index.NewDirStore(cfg.IndexPath)
	if err != nil {
		logger.Warn("open index store failed", logging.FieldError, err)
		return store, repoID
	}

	snap, ok, err := index.LoadSnapshot(blobs, SnapshotKey(repoPath))
	if err != nil {
		logger.Warn("load index snapshot failed", logging.FieldError, err)
		return store, repoID
	}
	if !ok {
		logger.Warn("no index snapshot for repository; index-backed checks will be empty",
			logging.FieldRepo, repoPath)
		return store, repoID
	}

	store.Load(snap)
	if snap.RepoID != "" {
		repoID = snap.RepoID
	}
	logger.Debug("index snapshot loaded",
		logging.FieldRepo, snap.RepoID,
		"modules", len(snap.Modules),
		"files", len(snap.Files))
	return store, repoID
}

// SnapshotKey derives the blob key for a repository's snapshot from its
// absolute path. Keys must be flat file names.
func SnapshotKey(repoPath string) string {
	sum := sha256.Sum256([]byte(repoPath))
	return fmt.Sprintf("%s-%x.kmpidx", filepath.Base(repoPath), sum[:6])
}

// startProgressFeed renders live progress to stderr while analysis runs,
// but only for interactive text-format sessions. The returned channel
// closes once the stream drains.
func startProgressFeed(stream *analyze.Stream, format config.OutputFormat) <-chan struct{} {
	done := make(chan struct{})

	if format != config.FormatText || !term.IsTerminal(int(os.Stderr.Fd())) {
		close(done)
		return done
	}

	events, cancel := stream.Subscribe()
	go func() {
		defer close(done)
		defer cancel()
		for ev := range events {
			if ev.Kind != analyze.EventProgress || ev.Progress == nil {
				continue
			}
			fmt.Fprintf(os.Stderr, "\r%-60s", fmt.Sprintf("[%d/%d] %s (%d found)",
				ev.Progress.Processed, ev.Progress.Total, ev.Progress.Phase, ev.Progress.Found))
			if ev.Progress.Processed == ev.Progress.Total {
				fmt.Fprint(os.Stderr, "\r\033[K")
			}
		}
	}()
	return done
}

func addAnalyzeFlags(cmd *cobra.Command, flags *analyzeFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel analyzer workers (0 = auto)")
	cmd.Flags().StringVar(&flags.indexPath, "index", "", "index snapshot directory")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "analyzer names to disable")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noSnippets, "no-snippets", false, "hide code snippets in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
}
