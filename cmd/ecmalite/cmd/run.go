package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/ecmalite/pkg/ecma"
	"github.com/spf13/cobra"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run an ecmalite script from a file, stdin, or an inline expression",
	Long: `Execute a program and print its final value.

Examples:
  ecmalite run script.js
  ecmalite run -e "1 + 2"
  cat script.js | ecmalite run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline source instead of reading a file")
}

func runScript(_ *cobra.Command, args []string) error {
	source, fileName, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	engine := ecma.New(ecma.WithFileName(fileName), ecma.WithConsoleSink(os.Stdout))
	result, err := engine.Eval(source)
	if err != nil {
		return err
	}
	fmt.Println(formatResult(result))
	return nil
}

// readSource determines the program text: the -e flag, a file argument, or
// stdin when neither is given.
func readSource(evalExpr string, args []string) (source, fileName string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(content), "<stdin>", nil
}

func formatResult(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%v", v)
}
