package main

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/coder/serpent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coder/expertchat"
)

func TestReportError(t *testing.T) {
	t.Parallel()

	t.Run("EmptyQuery", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		reportError(&buf, &expertchat.ValidationError{})
		assert.Contains(t, buf.String(), emptyQueryWarning)
		assert.NotContains(t, buf.String(), "err:")
	})

	t.Run("Upstream", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		err := fmt.Errorf("run: %w", &expertchat.UpstreamError{Err: errors.New("401 unauthorized")})
		reportError(&buf, err)
		out := buf.String()
		assert.Contains(t, out, "エラーが発生しました: 401 unauthorized")
		assert.Contains(t, out, credentialHint)
		assert.NotContains(t, out, "err:")
		assert.NotContains(t, out, "completion failed")
	})

	t.Run("Other", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		reportError(&buf, errors.New(`unknown provider "bard"`))
		assert.Contains(t, buf.String(), `err: unknown provider "bard"`)
	})
}

func runCmd(t *testing.T, cmd *serpent.Command, args ...string) string {
	t.Helper()
	var stdout bytes.Buffer
	inv := cmd.Invoke(args...)
	inv.Stdout = &stdout
	inv.Stderr = &bytes.Buffer{}
	require.NoError(t, inv.Run())
	return stdout.String()
}

func TestPersonasCmd(t *testing.T) {
	t.Parallel()

	out := runCmd(t, personasCmd())
	tech := strings.Index(out, string(expertchat.TechnicalExpert))
	biz := strings.Index(out, string(expertchat.BusinessStrategist))
	require.GreaterOrEqual(t, tech, 0)
	require.GreaterOrEqual(t, biz, 0)
	assert.Less(t, tech, biz)
	assert.Contains(t, out, expertchat.TechnicalExpert.Instruction())
	assert.Contains(t, out, expertchat.BusinessStrategist.Instruction())
	assert.NotContains(t, out, expertchat.GenericInstruction)
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	out := runCmd(t, versionCmd())
	assert.True(t, strings.HasPrefix(out, "expertchat "), out)
	assert.Contains(t, out, buildVersion())
}
