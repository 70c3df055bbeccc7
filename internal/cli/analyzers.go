package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/kmpcheck/internal/logging"
	"github.com/yaklabco/kmpcheck/internal/ui/pretty"
	"github.com/yaklabco/kmpcheck/pkg/analyze"
	"github.com/yaklabco/kmpcheck/pkg/analyze/analyzers"
	"github.com/yaklabco/kmpcheck/pkg/fsutil"
	"github.com/yaklabco/kmpcheck/pkg/index"
)

func newAnalyzersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyzers",
		Short: "List the built-in analyzers",
		Long:  `List every built-in analyzer with its name and diagnostic category.`,
		Run: func(cmd *cobra.Command, _ []string) {
			colorMode, err := cmd.Flags().GetString("color")
			if err != nil {
				colorMode = "auto"
			}
			styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))

			// A throwaway registry: listing needs names and categories,
			// not live collaborators.
			registry := analyze.NewRegistry()
			analyzers.Register(registry, index.NewMemoryStore(), fsutil.NewOSFileSystem(), "", logging.Default())

			out := cmd.OutOrStdout()
			for _, a := range registry.Analyzers() {
				fmt.Fprintf(out, "%s  %s\n",
					styles.Bold.Render(a.Name()),
					styles.Dim.Render("("+a.Category()+")"))
			}
		},
	}

	return cmd
}
