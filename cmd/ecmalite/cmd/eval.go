package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/ecmalite/pkg/ecma"
	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate a single expression and print its value",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		engine := ecma.New(ecma.WithFileName("<eval>"), ecma.WithConsoleSink(os.Stdout))
		result, err := engine.Eval(args[0])
		if err != nil {
			return err
		}
		fmt.Println(formatResult(result))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
}
