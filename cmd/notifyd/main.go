package main

import (
	"fmt"
	"os"

	"github.com/tyhdefu/rnotifyd/cmd/notifyd/commands"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	root := commands.NewRootCmd(version)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
