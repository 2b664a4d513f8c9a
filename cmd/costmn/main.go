package main

import (
	"os"

	"github.com/costmn/costmn-go/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
