package main

import (
	"os"

	jxctlcmd "github.com/runelauncher/jxctl/pkg/jxctl/cmd"
)

func main() {
	root := jxctlcmd.NewRootCommand(jxctlcmd.DefaultConfig())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
