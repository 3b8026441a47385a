package main

import (
	"os"

	"github.com/resend/resend-cli/cmd/resend/commands"
)

// Version is the current version of resend
// This must match the git tag when creating releases
const Version = "v0.1.0"

func main() {
	commands.SetVersion(Version)

	if err := commands.Execute(); err != nil {
		commands.ReportError(os.Stderr, err)
		os.Exit(1)
	}
}
