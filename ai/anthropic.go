package ai

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const DefaultAnthropicModel = "claude-sonnet-4-20250514"

// anthropicMaxTokens exists only because the Messages API rejects requests
// without max_tokens. OpenAI requests carry no limit.
const anthropicMaxTokens = 4096

// Anthropic completes prompts with the Anthropic Messages API.
type Anthropic struct {
	client *anthropic.Client
	model  string
}

func NewAnthropic(apiKey, model, baseURL string) *Anthropic {
	opts := []option.RequestOption{
		// Retries are the caller's business.
		option.WithMaxRetries(0),
	}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if model == "" {
		model = DefaultAnthropicModel
	}
	c := anthropic.NewClient(opts...)
	return &Anthropic{
		client: &c,
		model:  model,
	}
}

func (a *Anthropic) Model() string {
	return a.model
}

func (a *Anthropic) Complete(ctx context.Context, p Prompt) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(a.model),
		MaxTokens:   anthropicMaxTokens,
		Temperature: anthropic.Float(Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(p.Human)),
		},
	}
	if p.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: p.System}}
	}

	resp, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	var sawText bool
	for _, block := range resp.Content {
		if block.Type == "text" {
			sawText = true
			out.WriteString(block.Text)
		}
	}
	if !sawText {
		return "", errors.New("anthropic: response contains no text")
	}
	return out.String(), nil
}
