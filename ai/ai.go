// Package ai provides an abstraction layer between OpenAI and Anthropic.
package ai

import "context"

// Role is the role of the message sender.
type Role string

const (
	System Role = "system"
	User   Role = "user"
)

type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Prompt is a single-shot, two-turn prompt: a system instruction followed
// by the human message. It carries no history.
type Prompt struct {
	System string
	Human  string
}

// Messages returns the prompt in wire order.
func (p Prompt) Messages() []ChatMessage {
	return []ChatMessage{
		{Role: System, Content: p.System},
		{Role: User, Content: p.Human},
	}
}

// Oracle completes a prompt and returns the model's text.
type Oracle interface {
	Complete(ctx context.Context, p Prompt) (string, error)
}

// OracleFunc adapts an ordinary function to an Oracle.
type OracleFunc func(ctx context.Context, p Prompt) (string, error)

func (f OracleFunc) Complete(ctx context.Context, p Prompt) (string, error) {
	return f(ctx, p)
}

// Temperature is the sampling temperature used for every completion.
const Temperature = 0.7
