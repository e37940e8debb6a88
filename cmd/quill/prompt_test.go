package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptCommand(t *testing.T) {
	t.Setenv("QUILL_ENDPOINT", "http://localhost:11434")

	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"prompt", "--topic", "Edge AI in hospitals", "--words", "300", "--audience", "Researchers"})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "for the audience: Researchers.")
	assert.Contains(t, out.String(), "Topic: Edge AI in hospitals")
	assert.Contains(t, out.String(), "about 300 words (±10%)")
}

func TestPromptCommand_ValidationError(t *testing.T) {
	var out, errOut bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"prompt", "--words", "300"})

	err := cmd.Execute()

	require.Error(t, err)
	assert.Equal(t, "topic required", err.Error())
	assert.Empty(t, out.String())
}
