// Command cynthia decides LTLf reactive synthesis from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/cynthia-ltlf/cynthia/internal/cli"
)

// version is stamped at release time via -ldflags; dev builds report "dev".
var version = "dev"

func main() {
	root := cli.NewRootCmd(version)
	err := root.Execute()
	if err == nil {
		os.Exit(cli.ExitRealizable)
	}
	if ee, ok := err.(*cli.ExitError); ok {
		if ee.Msg != "" {
			fmt.Fprintln(os.Stderr, ee.Msg)
		}
		os.Exit(ee.Code)
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(cli.ExitInternal)
}
