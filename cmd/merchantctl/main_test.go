package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConvertOffline(t *testing.T) {
	t.Setenv("IS_PRODUCTION", "false")

	out, err := run(t, "convert", "1000", "xof", "usd", "--offline")
	require.NoError(t, err)
	assert.Contains(t, out, "1000 XOF = 1.65 USD")
	assert.Contains(t, out, "(cached)")

	out, err = run(t, "convert", "500", "EUR", "EUR", "--offline")
	require.NoError(t, err)
	assert.Contains(t, out, "(identity)")
}

func TestConvertRejectsBadInput(t *testing.T) {
	_, err := run(t, "convert", "abc", "XOF", "USD", "--offline")
	assert.Error(t, err)

	_, err = run(t, "convert", "1", "XO", "USD", "--offline")
	assert.Error(t, err)

	_, err = run(t, "convert", "1", "XOF")
	assert.Error(t, err)
}

func TestTokenIssuesJWT(t *testing.T) {
	t.Setenv("IS_PRODUCTION", "false")

	out, err := run(t, "token", "merchant-1", "--ttl", "5m")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(strings.TrimSpace(out), "."))
}
