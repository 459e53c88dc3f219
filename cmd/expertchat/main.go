package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/coder/pretty"
	"github.com/coder/serpent"
	"github.com/joho/godotenv"
	"github.com/muesli/termenv"

	"github.com/coder/expertchat"
	"github.com/coder/expertchat/ai"
)

var colorProfile = termenv.ColorProfile()

func errorf(w io.Writer, format string, args ...any) {
	c := pretty.FgColor(colorProfile.Color("#ff0000"))
	pretty.Fprintf(w, c, format, args...)
}

func warnf(w io.Writer, format string, args ...any) {
	c := pretty.FgColor(colorProfile.Color("#ffaf00"))
	pretty.Fprintf(w, c, format, args...)
}

var debugMode = os.Getenv("EXPERTCHAT_DEBUG") != ""

func debugf(format string, args ...any) {
	if !debugMode {
		return
	}
	// Gray
	c := pretty.FgColor(colorProfile.Color("#808080"))
	pretty.Fprintf(os.Stderr, c, "debug: "+format+"\n", args...)
}

func debugPrompt(p ai.Prompt) {
	if !debugMode {
		return
	}
	for _, msg := range p.Messages() {
		debugf("%s: (%v tokens)\n %s\n", msg.Role, expertchat.CountTokens(msg), msg.Content)
	}
}

const (
	credentialHint    = "APIキーが正しく設定されているか確認してください。"
	emptyQueryWarning = "質問内容を入力してください。"
)

type runOptions struct {
	invoker *expertchat.Invoker
	persona string
	raw     bool
}

func main() {
	// Variables already set in the environment take precedence over .env.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		warnf(os.Stderr, "load .env: %v\n", err)
	}

	var (
		opts         runOptions
		cfg          ai.Config
		cliOpenAIKey string
		anthropicKey string
		doSaveKey    bool
	)
	cmd := &serpent.Command{
		Use:   "expertchat [query...]",
		Short: "expertchat answers your question from the point of view of a selected expert",
		Long: "Without a query, an interactive form is opened. " +
			"With a query, the answer is printed once and the program exits.",
		Handler: func(inv *serpent.Invocation) error {
			explicitKey := cliOpenAIKey
			if cfg.Provider == ai.ProviderAnthropic {
				explicitKey = anthropicKey
			}

			if doSaveKey {
				if err := saveKey(cfg.Provider, explicitKey); err != nil {
					return err
				}
				kp, err := keyPath(cfg.Provider)
				if err != nil {
					return err
				}
				fmt.Fprintf(inv.Stdout, "Saved %s API key to %s\n", cfg.Provider, kp)
				return nil
			}

			savedKey, err := loadKey(cfg.Provider)
			if err != nil && !os.IsNotExist(err) {
				return err
			}
			// A missing key is reported by the provider on the first request.
			cfg.APIKey = pickKey(explicitKey, savedKey)

			oracle, err := ai.New(cfg)
			if err != nil {
				return err
			}
			debugf("provider %q, model %q", cfg.Provider, cfg.Model)
			opts.invoker = expertchat.NewInvoker(oracle)

			if len(inv.Args) > 0 {
				return ask(inv, opts, strings.Join(inv.Args, " "))
			}
			return interactive(inv, opts)
		},
		Options: []serpent.Option{
			{
				Name:        "openai-key",
				Description: "The OpenAI API key to use.",
				Env:         "OPENAI_API_KEY",
				Flag:        "openai-key",
				Value:       serpent.StringOf(&cliOpenAIKey),
			},
			{
				Name:        "anthropic-key",
				Description: "The Anthropic API key to use with --provider=anthropic.",
				Env:         "ANTHROPIC_API_KEY",
				Flag:        "anthropic-key",
				Value:       serpent.StringOf(&anthropicKey),
			},
			{
				Name:        "provider",
				Description: "The completion provider.",
				Flag:        "provider",
				Env:         "EXPERTCHAT_PROVIDER",
				Default:     ai.ProviderOpenAI,
				Value:       serpent.EnumOf(&cfg.Provider, ai.ProviderOpenAI, ai.ProviderAnthropic),
			},
			{
				Name:          "model",
				Description:   "The model to use. Defaults to gpt-3.5-turbo for OpenAI.",
				Flag:          "model",
				FlagShorthand: "m",
				Env:           "EXPERTCHAT_MODEL",
				Value:         serpent.StringOf(&cfg.Model),
			},
			{
				Name:        "base-url",
				Description: "Override the provider API base URL.",
				Flag:        "base-url",
				Env:         "EXPERTCHAT_BASE_URL",
				Value:       serpent.StringOf(&cfg.BaseURL),
			},
			{
				Name:          "persona",
				Description:   "The expert to answer as: 技術専門家 or ビジネス戦略家.",
				Flag:          "persona",
				FlagShorthand: "p",
				Env:           "EXPERTCHAT_PERSONA",
				Default:       string(expertchat.TechnicalExpert),
				Value:         serpent.StringOf(&opts.persona),
			},
			{
				Name:        "raw",
				Description: "Print the answer without markdown rendering.",
				Flag:        "raw",
				Value:       serpent.BoolOf(&opts.raw),
			},
			{
				Name:        "save-key",
				Description: "Save the API key of the selected provider to persistent local configuration and exit.",
				Flag:        "save-key",
				Value:       serpent.BoolOf(&doSaveKey),
			},
		},
		Children: []*serpent.Command{
			personasCmd(),
			versionCmd(),
		},
	}

	err := cmd.Invoke().WithOS().Run()
	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints a failed run for the user.
func reportError(w io.Writer, err error) {
	var unknownCmdErr *serpent.UnknownSubcommandError
	if errors.As(err, &unknownCmdErr) {
		// Unknown command is printed by the help function for some reason.
		return
	}
	if errors.Is(err, expertchat.ErrEmptyQuery) {
		warnf(w, "%s\n", emptyQueryWarning)
		return
	}
	var upstreamErr *expertchat.UpstreamError
	if errors.As(err, &upstreamErr) {
		errorf(w, "エラーが発生しました: %s\n", upstreamErr.Err)
		warnf(w, "%s\n", credentialHint)
		return
	}
	var runCommandErr *serpent.RunCommandError
	if errors.As(err, &runCommandErr) {
		err = runCommandErr.Err
	}
	errorf(w, "err: %s\n", err)
}
