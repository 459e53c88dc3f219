package ai

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"
)

const DefaultOpenAIModel = openai.GPT3Dot5Turbo

// OpenAI completes prompts with the OpenAI chat completions API.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI returns an OpenAI oracle. An empty key is accepted; the API
// rejects the request at call time.
func NewOpenAI(apiKey, model, baseURL string) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (o *OpenAI) Model() string {
	return o.model
}

func (o *OpenAI) Complete(ctx context.Context, p Prompt) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: Temperature,
		Messages:    toOpenAIMessages(p.Messages()),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: response contains no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func toOpenAIMessages(msgs []ChatMessage) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(msgs))
	for i, m := range msgs {
		role := openai.ChatMessageRoleUser
		if m.Role == System {
			role = openai.ChatMessageRoleSystem
		}
		out[i] = openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		}
	}
	return out
}
