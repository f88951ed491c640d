package main

import (
	"os"

	"github.com/ariel-frischer/relnotes/internal/cli"
	"github.com/ariel-frischer/relnotes/internal/cli/shared"
)

func main() {
	if err := cli.Execute(); err != nil {
		cli.ReportError(err)
		os.Exit(shared.ExitCode(err))
	}
}
