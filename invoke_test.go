package expertchat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coder/expertchat/ai"
)

// recorder is a stub oracle that remembers every prompt it receives.
type recorder struct {
	prompts []ai.Prompt
	reply   string
	err     error
}

func (r *recorder) Complete(_ context.Context, p ai.Prompt) (string, error) {
	r.prompts = append(r.prompts, p)
	return r.reply, r.err
}

const quantumQuery = "量子コンピュータの最新の進展について教えてください。"

func TestInvokePrompt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		persona string
		query   string
		system  string
	}{
		{"TechnicalExpert", "技術専門家", quantumQuery, technicalExpertInstruction},
		{"BusinessStrategist", "ビジネス戦略家", quantumQuery, businessStrategistInstruction},
		{"Unset", "", "hello", GenericInstruction},
		{"Verbatim", "技術専門家", "  keep\n  whitespace  ", technicalExpertInstruction},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := &recorder{reply: "echo"}
			got, err := NewInvoker(r).Invoke(context.Background(), tt.query, tt.persona)
			require.NoError(t, err)
			assert.Equal(t, "echo", got)

			require.Len(t, r.prompts, 1)
			assert.Equal(t, tt.system, r.prompts[0].System)
			assert.Equal(t, Resolve(tt.persona), r.prompts[0].System)
			assert.Equal(t, tt.query, r.prompts[0].Human)

			msgs := r.prompts[0].Messages()
			require.Len(t, msgs, 2)
			assert.Equal(t, ai.System, msgs[0].Role)
			assert.Equal(t, ai.User, msgs[1].Role)
		})
	}
}

func TestInvokeReturnsOracleText(t *testing.T) {
	t.Parallel()

	const fixed = "量子ビットの誤り訂正が進んでいます。\n\n- 詳細"
	o := ai.OracleFunc(func(context.Context, ai.Prompt) (string, error) {
		return fixed, nil
	})
	got, err := NewInvoker(o).Invoke(context.Background(), quantumQuery, string(TechnicalExpert))
	require.NoError(t, err)
	assert.Equal(t, fixed, got)
}

func TestInvokeUpstreamError(t *testing.T) {
	t.Parallel()

	cause := errors.New("401 unauthorized")
	r := &recorder{err: cause}
	got, err := NewInvoker(r).Invoke(context.Background(), quantumQuery, string(BusinessStrategist))
	require.Error(t, err)
	assert.Empty(t, got)
	assert.Len(t, r.prompts, 1, "no retry")

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Same(t, cause, ue.Err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "401 unauthorized")
}

func TestInvokeUpstreamErrorPassthrough(t *testing.T) {
	t.Parallel()

	orig := &UpstreamError{Err: errors.New("boom")}
	o := ai.OracleFunc(func(context.Context, ai.Prompt) (string, error) {
		return "", orig
	})
	_, err := NewInvoker(o).Invoke(context.Background(), "q", "")
	assert.Same(t, orig, err)
}

func TestAsk(t *testing.T) {
	t.Parallel()

	t.Run("EmptyQuery", func(t *testing.T) {
		t.Parallel()

		r := &recorder{reply: "unused"}
		got, err := NewInvoker(r).Ask(context.Background(), "", string(TechnicalExpert))
		assert.Empty(t, got)
		assert.ErrorIs(t, err, ErrEmptyQuery)

		var ve *ValidationError
		assert.ErrorAs(t, err, &ve)
		assert.Empty(t, r.prompts, "oracle must not be called")
	})

	t.Run("WhitespaceQuery", func(t *testing.T) {
		t.Parallel()

		for _, q := range []string{" ", "   ", "\n\t"} {
			r := &recorder{reply: "answer"}
			got, err := NewInvoker(r).Ask(context.Background(), q, string(TechnicalExpert))
			require.NoError(t, err)
			assert.Equal(t, "answer", got)
			require.Len(t, r.prompts, 1)
			assert.Equal(t, q, r.prompts[0].Human)
		}
	})

	t.Run("Delegates", func(t *testing.T) {
		t.Parallel()

		r := &recorder{reply: "answer"}
		got, err := NewInvoker(r).Ask(context.Background(), quantumQuery, string(TechnicalExpert))
		require.NoError(t, err)
		assert.Equal(t, "answer", got)
		require.Len(t, r.prompts, 1)
		assert.Equal(t, quantumQuery, r.prompts[0].Human)
	})
}

func TestCountTokens(t *testing.T) {
	t.Parallel()

	p := BuildPrompt("hello world", "")
	n := CountTokens(p.Messages()...)
	assert.Greater(t, n, CountTokens(ai.ChatMessage{Content: "hello world"}))
	assert.Zero(t, CountTokens())
}
