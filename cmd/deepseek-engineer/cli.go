package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/fitchmultz/deepseek-engineer/internal/llm"
	"github.com/fitchmultz/deepseek-engineer/internal/userconfig"
)

// runCLI runs a single prompt without the TUI. Confirmation prompts read
// from stdin; anything other than "y" declines.
func runCLI(root string, cfg userconfig.Config, client *llm.Client, log *zap.Logger, prompt string) error {
	stdin := bufio.NewReader(os.Stdin)
	confirm := func(question string) bool {
		fmt.Printf("%s (y/n): ", question)
		line, err := stdin.ReadString('\n')
		if err != nil {
			return false
		}
		return strings.ToLower(strings.TrimSpace(line)) == "y"
	}

	eng, err := newEngine(root, cfg, client, log, confirm)
	if err != nil {
		return err
	}

	reasoningShown := false
	res, err := eng.Turn(context.Background(), prompt, func(d llm.Delta) {
		if d.Reasoning {
			if !reasoningShown {
				fmt.Println("\nReasoning:")
				reasoningShown = true
			}
			fmt.Print(d.Text)
		}
	})
	if err != nil {
		return err
	}
	if reasoningShown {
		fmt.Println()
	}

	fmt.Println()
	fmt.Println(res.Reply)

	for _, outcome := range eng.ApplyCreates(res.Creates, true) {
		printOutcome("create", outcome.Path, outcome.Applied, outcome.Detail, outcome.Err)
	}

	if len(res.Edits) > 0 {
		fmt.Println("\nProposed edits:")
		for _, edit := range res.Edits {
			fmt.Printf("  %s\n", edit.Path)
		}
		for _, outcome := range eng.ApplyEdits(res.Edits, true) {
			printOutcome("edit", outcome.Path, outcome.Applied, outcome.Detail, outcome.Err)
		}
	}
	return nil
}

func printOutcome(op, path string, applied bool, detail string, err error) {
	switch {
	case err != nil:
		fmt.Printf("✗ %s %s: %v\n", op, path, err)
	case applied:
		fmt.Printf("✓ %s %s\n", op, path)
	default:
		fmt.Printf("ℹ %s %s skipped (%s)\n", op, path, detail)
	}
}
