// Package expertchat answers a free-text query through a hosted language
// model, conditioned by a persona's system instruction.
package expertchat

import (
	"context"
	"errors"
	"fmt"

	"github.com/coder/expertchat/ai"
)

// ErrEmptyQuery is matched by every ValidationError.
var ErrEmptyQuery = errors.New("query is empty")

// ValidationError reports a query that must not be sent.
type ValidationError struct {
	Query string
}

func (e *ValidationError) Error() string {
	return ErrEmptyQuery.Error()
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrEmptyQuery
}

// UpstreamError wraps any failure of the oracle call.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("completion failed: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// ValidateQuery rejects the empty query. Any other text, whitespace
// included, is sent as typed.
func ValidateQuery(query string) error {
	if query == "" {
		return &ValidationError{Query: query}
	}
	return nil
}

// Invoker sends persona-conditioned prompts to an Oracle.
type Invoker struct {
	Oracle ai.Oracle
}

func NewInvoker(o ai.Oracle) *Invoker {
	return &Invoker{Oracle: o}
}

// Invoke makes exactly one oracle call and returns its text unchanged. The
// caller is expected to have validated the query.
func (i *Invoker) Invoke(ctx context.Context, query, persona string) (string, error) {
	resp, err := i.Oracle.Complete(ctx, BuildPrompt(query, persona))
	if err != nil {
		if ue, ok := err.(*UpstreamError); ok {
			return "", ue
		}
		return "", &UpstreamError{Err: err}
	}
	return resp, nil
}

// Ask validates the query and, if it is non-empty, invokes the oracle.
func (i *Invoker) Ask(ctx context.Context, query, persona string) (string, error) {
	if err := ValidateQuery(query); err != nil {
		return "", err
	}
	return i.Invoke(ctx, query, persona)
}
