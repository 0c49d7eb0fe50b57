package main

import (
	"strings"
	"testing"

	"github.com/fitchmultz/deepseek-engineer/internal/agent"
	"github.com/fitchmultz/deepseek-engineer/internal/llm"
)

func TestCommandSuggestions(t *testing.T) {
	all := commandSuggestions("/")
	if len(all) != len(helpItems()) {
		t.Fatalf("expected all items for bare slash, got %d", len(all))
	}

	got := commandSuggestions("/mo")
	if len(got) != 1 || got[0].cmd != "/model" {
		t.Fatalf("expected /model, got %+v", got)
	}

	if out := commandSuggestions("/zzz"); len(out) != 0 {
		t.Fatalf("expected no matches, got %+v", out)
	}
}

func TestRenderChangePreview(t *testing.T) {
	res := agent.TurnResult{
		Creates: []llm.FileToCreate{{Path: "new.go", Content: "package new\n"}},
		Edits: []llm.FileToEdit{{
			Path:            "old.go",
			OriginalSnippet: "a := 1",
			NewSnippet:      "a := 2",
		}},
	}
	out := renderChangePreview(res, 80)
	if !strings.Contains(out, "new.go") {
		t.Fatalf("missing create path:\n%s", out)
	}
	if !strings.Contains(out, "old.go") {
		t.Fatalf("missing edit path:\n%s", out)
	}
}

func TestClamp(t *testing.T) {
	if clamp(5, 0, 3) != 3 {
		t.Fatal("upper clamp")
	}
	if clamp(-1, 0, 3) != 0 {
		t.Fatal("lower clamp")
	}
	if clamp(2, 0, 3) != 2 {
		t.Fatal("identity")
	}
}

func TestPreviewWidth(t *testing.T) {
	if previewWidth(0) != 80 {
		t.Fatal("zero width should fall back to 80")
	}
	if previewWidth(100) != 80 {
		t.Fatalf("got %d", previewWidth(100))
	}
	if previewWidth(10) != 10 {
		t.Fatalf("got %d", previewWidth(10))
	}
}
