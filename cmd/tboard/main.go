package main

import (
	"os"

	"github.com/tgienger/tboard/internal/cli"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := cli.Execute(cli.Build{Version: version, Commit: commit, Date: date}); err != nil {
		os.Exit(1)
	}
}
