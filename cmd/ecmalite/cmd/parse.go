package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/ecmalite/internal/errors"
	"github.com/cwbudde/ecmalite/internal/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Dump the generic node tree for a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		prog, parseErrors := parser.ParseProgram(string(content))
		if len(parseErrors) > 0 {
			fmt.Fprint(os.Stderr, errors.FormatErrors(parseErrors, true))
			return fmt.Errorf("parsing failed with %d error(s)", len(parseErrors))
		}
		fmt.Print(prog.Dump())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
