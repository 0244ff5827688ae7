package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/ecmalite/internal/lexer"
	"github.com/cwbudde/ecmalite/internal/token"
	"github.com/spf13/cobra"
)

var lexCmd = &cobra.Command{
	Use:   "lex <file>",
	Short: "Dump the token stream for a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		l := lexer.New(string(content))
		for {
			tok := l.NextToken()
			fmt.Println(tok.String())
			if tok.Kind == token.EOF {
				break
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lexCmd)
}
