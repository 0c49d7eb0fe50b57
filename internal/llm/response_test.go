package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssistantResponse(t *testing.T) {
	raw := `{
		"assistant_reply": "Adding the helper.",
		"files_to_create": [{"path": "util.go", "content": "package util\n"}],
		"files_to_edit": [{"path": "main.go", "original_snippet": "old()", "new_snippet": "new()"}]
	}`

	out, ok := ParseAssistantResponse(raw)
	require.True(t, ok)
	assert.Equal(t, "Adding the helper.", out.AssistantReply)
	require.Len(t, out.FilesToCreate, 1)
	assert.Equal(t, "util.go", out.FilesToCreate[0].Path)
	require.Len(t, out.FilesToEdit, 1)
	assert.Equal(t, "old()", out.FilesToEdit[0].OriginalSnippet)
}

func TestParseAssistantResponseJSONFence(t *testing.T) {
	raw := "Here you go:\n```json\n{\"assistant_reply\": \"done\"}\n```\ntrailing prose"
	out, ok := ParseAssistantResponse(raw)
	require.True(t, ok)
	assert.Equal(t, "done", out.AssistantReply)
}

func TestParseAssistantResponseBareFence(t *testing.T) {
	raw := "```\n{\"assistant_reply\": \"done\"}\n```"
	out, ok := ParseAssistantResponse(raw)
	require.True(t, ok)
	assert.Equal(t, "done", out.AssistantReply)
}

func TestParseAssistantResponseInvalid(t *testing.T) {
	_, ok := ParseAssistantResponse("I could not produce JSON, sorry.")
	assert.False(t, ok)

	_, ok = ParseAssistantResponse("")
	assert.False(t, ok)
}
