package main

import (
	"fmt"
	"os"

	"github.com/bjaus/reduce/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "transmute:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
