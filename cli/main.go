package main

import (
	"os"

	"github.com/mlotysz/parinfer-go/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
