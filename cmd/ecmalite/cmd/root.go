package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information, set by build flags.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "ecmalite",
	Short: "ecmalite interpreter",
	Long: `ecmalite is an embeddable interpreter for a subset of ECMAScript:
lexer, priority-climbing expression parser, and a tree-walking evaluator
over a small ECMAScript-compatible value model.

This CLI is a thin wrapper around the pkg/ecma engine façade — host
programs embed pkg/ecma directly rather than shelling out to this binary.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
