package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/coder/serpent"

	"github.com/coder/expertchat"
)

const defaultWrapWidth = 80

// renderMarkdown renders an answer for the terminal. The answer is returned
// as-is if it cannot be rendered.
func renderMarkdown(s string, width int) string {
	return renderMarkdownWith(s, width, glamour.WithAutoStyle())
}

func renderMarkdownWith(s string, width int, style glamour.TermRendererOption) string {
	if width <= 0 {
		width = defaultWrapWidth
	}
	r, err := glamour.NewTermRenderer(
		style,
		glamour.WithWordWrap(width),
	)
	if err != nil {
		debugf("create markdown renderer: %v", err)
		return s
	}
	out, err := r.Render(s)
	if err != nil {
		debugf("render markdown: %v", err)
		return s
	}
	return out
}

// ask answers a single query and prints the result.
func ask(inv *serpent.Invocation, opts runOptions, query string) error {
	if err := expertchat.ValidateQuery(query); err != nil {
		return err
	}

	debugPrompt(expertchat.BuildPrompt(query, opts.persona))

	answer, err := opts.invoker.Invoke(inv.Context(), query, opts.persona)
	if err != nil {
		return err
	}

	if opts.raw {
		fmt.Fprintln(inv.Stdout, answer)
		return nil
	}
	out := renderMarkdown(answer, defaultWrapWidth)
	fmt.Fprint(inv.Stdout, out)
	if !strings.HasSuffix(out, "\n") {
		fmt.Fprintln(inv.Stdout)
	}
	return nil
}
