package main

import (
	"fmt"
	"os"

	"github.com/wrowley/gridiron/cmd/gridiron/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
