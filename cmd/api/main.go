package main

import (
	"os"

	"ledger-admin/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
