// Command ecmalite is a convenience CLI wrapper around pkg/ecma: it is not
// part of the embeddable engine's contract, only the natural home for
// cobra/pflag.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/ecmalite/cmd/ecmalite/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
