package main

import (
	"fmt"
	"runtime/debug"

	"github.com/coder/serpent"
)

// Version is set during build using ldflags
var Version = "dev"

func buildVersion() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}

func versionCmd() *serpent.Command {
	return &serpent.Command{
		Use:        "version",
		Short:      "Print build version information",
		Middleware: serpent.RequireNArgs(0),
		Handler: func(inv *serpent.Invocation) error {
			fmt.Fprintf(inv.Stdout, "expertchat %s\n", buildVersion())
			return nil
		},
	}
}
