package main

import (
	"os"

	"appeal-archive/cmd/archive/commands"
)

var version = "dev"

func main() {
	if err := commands.Execute(version); err != nil {
		os.Exit(1)
	}
}
