package main

import (
	"os"

	"github.com/trebuchet-org/marketplace-deploy/internal/cli"
	"github.com/trebuchet-org/marketplace-deploy/internal/config"
)

// Set via -ldflags "-X main.version=... -X main.commit=... -X main.date=..."
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	config.SetBuildFlags(version, commit, date)
	os.Exit(int(cli.Run(os.Args[1:], os.Stdout, os.Stderr)))
}
