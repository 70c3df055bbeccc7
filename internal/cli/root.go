// Package cli provides the Cobra command structure for kmpcheck.
package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/kmpcheck/internal/configloader"
	"github.com/yaklabco/kmpcheck/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root kmpcheck command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "kmpcheck",
		Short: "A cross-platform repository analyzer for Kotlin Multiplatform projects",
		Long: `kmpcheck analyzes Kotlin Multiplatform repositories for cross-platform
hazards: missing expect/actual pairings, thread-safety violations in
shared code targeting Kotlin/Native, and platform-specific API usage
that will not compile on other targets.

Findings come with line-level fixes previewed as unified diffs, applied
atomically with full undo support.

` + envVarHelp(),
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newAnalyzersCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}

// envVarHelp renders the supported environment variables for help text.
func envVarHelp() string {
	vars := configloader.ListEnvVars()

	var builder strings.Builder
	builder.WriteString("Environment variables:")
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(&builder, "\n  %-26s %s", name, vars[name])
	}
	return builder.String()
}
