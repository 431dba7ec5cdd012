// Command xilprintf formats text on the host with the firmware's printf
// engine. It is handy for checking format strings before flashing a board.
package main

import (
	"fmt"
	"os"

	"github.com/hegza/xil-custom-sys/internal/cli"
)

func main() {
	defaults, err := cli.LoadConfigArgs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "xilprintf: %v\n", err)
		os.Exit(2)
	}

	cmd := cli.NewCommand(os.Stdout, os.Stderr)
	cmd.SetArgs(append(defaults, os.Args[1:]...))

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "xilprintf: %v\n", err)
		os.Exit(2)
	}
}
