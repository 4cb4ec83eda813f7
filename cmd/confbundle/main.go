package main

import (
	"os"

	"github.com/bianoble/confbundle/cmd/confbundle/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
