// cmd/gopoly/main.go - gopoly command line
//
// Usage:
//
//	gopoly show "3x^2 + 2x + 4"
//	gopoly eval "3x^2 + 2x + 4" 2
//	gopoly add "3x^2 + 2x + 4" "2x^2 - 1"
//	gopoly serve --port 8080
package main

import (
	"fmt"
	"os"

	"github.com/njchilds90/gopoly/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
