package llm

import (
	"encoding/json"
	"strings"
)

type FileToCreate struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

type FileToEdit struct {
	Path            string `json:"path"`
	OriginalSnippet string `json:"original_snippet"`
	NewSnippet      string `json:"new_snippet"`
}

// AssistantResponse is the structured payload the model is instructed to
// return: a reply plus optional file operations.
type AssistantResponse struct {
	AssistantReply string         `json:"assistant_reply"`
	FilesToCreate  []FileToCreate `json:"files_to_create"`
	FilesToEdit    []FileToEdit   `json:"files_to_edit"`
}

// ParseAssistantResponse extracts the JSON payload (stripping a surrounding
// code fence if present) and unmarshals it. A false return is the explicit
// parse-failure branch: the caller surfaces the raw text as the reply and
// attempts zero file operations.
func ParseAssistantResponse(raw string) (AssistantResponse, bool) {
	payload := extractJSONBlock(raw)
	if payload == "" {
		return AssistantResponse{}, false
	}
	var out AssistantResponse
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		return AssistantResponse{}, false
	}
	return out, true
}

func extractJSONBlock(raw string) string {
	if i := strings.Index(raw, "```json"); i >= 0 {
		rest := raw[i+len("```json"):]
		if j := strings.Index(rest, "```"); j >= 0 {
			rest = rest[:j]
		}
		return strings.TrimSpace(rest)
	}
	if i := strings.Index(raw, "```"); i >= 0 {
		rest := raw[i+3:]
		if j := strings.Index(rest, "```"); j >= 0 {
			return strings.TrimSpace(rest[:j])
		}
	}
	return strings.TrimSpace(raw)
}
