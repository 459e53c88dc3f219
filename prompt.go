package expertchat

import (
	"github.com/coder/expertchat/ai"
	"github.com/tiktoken-go/tokenizer"
)

// BuildPrompt pairs the persona's instruction with the query. The query is
// passed through verbatim.
func BuildPrompt(query, persona string) ai.Prompt {
	return ai.Prompt{
		System: Resolve(persona),
		Human:  query,
	}
}

// CountTokens estimates the cl100k token count of the given messages.
func CountTokens(msgs ...ai.ChatMessage) int {
	enc, err := tokenizer.Get(tokenizer.Cl100kBase)
	if err != nil {
		panic("failed to get tokenizer")
	}

	var tokens int
	for _, msg := range msgs {
		ts, _, _ := enc.Encode(msg.Content)
		tokens += len(ts)
	}
	return tokens
}
