package main

import (
	"os"

	"github.com/majorcontext/keypair/cmd/keypair/cli"
	"github.com/majorcontext/keypair/internal/providers"
)

func main() {
	providers.RegisterAll()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
