package main

import (
	"os"

	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
