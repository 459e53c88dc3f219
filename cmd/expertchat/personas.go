package main

import (
	"fmt"

	"github.com/coder/pretty"
	"github.com/coder/serpent"

	"github.com/coder/expertchat"
)

func personasCmd() *serpent.Command {
	return &serpent.Command{
		Use:        "personas",
		Short:      "List the available expert personas",
		Middleware: serpent.RequireNArgs(0),
		Handler: func(inv *serpent.Invocation) error {
			// Sky blue color
			color := pretty.FgColor(colorProfile.Color("#2FA8FF"))
			for _, p := range expertchat.Personas() {
				pretty.Fprintf(inv.Stdout, color, "%s\n", p)
				fmt.Fprintf(inv.Stdout, "  %s\n", p.Instruction())
			}
			return nil
		},
	}
}
