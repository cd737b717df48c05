// Command nextact is a fast, local-first task manager.
package main

import (
	"os"

	"github.com/clearday-labs/nextact-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		// cobra already printed the error
		os.Exit(1)
	}
}
