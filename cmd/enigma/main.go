// Command enigma simulates a rotor cipher machine.
package main

import (
	"fmt"
	"os"

	"github.com/706f6c6c7578/enigma/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
