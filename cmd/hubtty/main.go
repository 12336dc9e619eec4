// Package main is the entry point for the hubtty CLI.
package main

import (
	"os"

	"github.com/hubtty/hubtty/cmd/hubtty/commands"
)

func main() {
	os.Exit(commands.Execute())
}
