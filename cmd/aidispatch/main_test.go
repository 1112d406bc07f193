package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	for _, k := range []string{
		"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY",
		"AIDISPATCH_MODEL", "AIDISPATCH_PROVIDER", "AIDISPATCH_FORMAT", "VERTEX_PROJECT",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("AIDISPATCH_HOME", t.TempDir())

	t.Run("success exits 0", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run([]string{"models", "-p", "openai"}, &stdout, &stderr)
		assert.Equal(t, 0, code)
		assert.Contains(t, stdout.String(), "gpt-4")
	})

	t.Run("failure prints the error and exits 1", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run([]string{"send", "-m", "gpt-4", "hello"}, &stdout, &stderr)
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr.String(), "error: no API key configured for openai")
		assert.NotContains(t, stderr.String(), "hint:")
	})
}
