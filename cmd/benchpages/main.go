package main

import (
	"fmt"
	"io"
	"os"

	"benchpages/internal/cli"
)

func main() {
	exitCode := run(os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(exitCode)
}

// run executes the command line and returns the process exit code.
// It is separate from main() so tests can drive it with buffers.
func run(args []string, stdout, stderr io.Writer) int {
	root := cli.NewRootCommand(stdout, stderr)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}
