package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/kmpcheck/pkg/config"
)

// envVarPrefix is the prefix for all kmpcheck environment variables.
const envVarPrefix = "KMPCHECK_"

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with KMPCHECK_ (e.g., KMPCHECK_FORMAT).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	if v := os.Getenv(envVarPrefix + "SEVERITY_DEFAULT"); v != "" {
		cfg.SeverityDefault = v
	}
	if v := os.Getenv(envVarPrefix + "FORMAT"); v != "" {
		cfg.Format = config.OutputFormat(v)
	}
	if v := os.Getenv(envVarPrefix + "JOBS"); v != "" {
		jobs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer for %sJOBS: %q", envVarPrefix, v)
		}
		cfg.Jobs = jobs
	}
	if v := os.Getenv(envVarPrefix + "UNDO_DEPTH"); v != "" {
		depth, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer for %sUNDO_DEPTH: %q", envVarPrefix, v)
		}
		cfg.UndoDepth = depth
	}
	if v := os.Getenv(envVarPrefix + "INDEX_PATH"); v != "" {
		cfg.IndexPath = v
	}
	if v := os.Getenv(envVarPrefix + "IGNORE"); v != "" {
		cfg.Ignore = parseSliceValue(v)
	}

	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns all supported environment variables with descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"KMPCHECK_SEVERITY_DEFAULT": "Default severity: error, warning, info, or hint",
		"KMPCHECK_FORMAT":           "Output format: text or json",
		"KMPCHECK_JOBS":             "Number of parallel analyzer workers (0 = auto)",
		"KMPCHECK_UNDO_DEPTH":       "Undo/redo stack depth",
		"KMPCHECK_INDEX_PATH":       "Index snapshot directory",
		"KMPCHECK_IGNORE":           "Comma-separated list of ignore patterns",
	}
}
