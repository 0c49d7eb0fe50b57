package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fitchmultz/deepseek-engineer/internal/agent"
	"github.com/fitchmultz/deepseek-engineer/internal/llm"
	"github.com/fitchmultz/deepseek-engineer/internal/logging"
	"github.com/fitchmultz/deepseek-engineer/internal/userconfig"
	"github.com/fitchmultz/deepseek-engineer/internal/workspace"
)

func main() {
	var useCLI bool
	var debug bool
	flag.BoolVar(&useCLI, "cli", false, "run one prompt without the TUI")
	flag.BoolVar(&debug, "debug", false, "enable debug logging")
	flag.Parse()

	cfg, err := userconfig.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}
	if cfg.APIKey == "" {
		fmt.Fprintln(os.Stderr, "DEEPSEEK_API_KEY environment variable not set")
		os.Exit(1)
	}

	log, err := buildLogger(debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger error:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	root, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	client := llm.NewClient(cfg.APIKey, cfg.BaseURL, cfg.Model)

	if useCLI {
		prompt := strings.TrimSpace(strings.Join(flag.Args(), " "))
		if prompt == "" {
			fmt.Println(`usage: deepseek-engineer -cli "add error handling to main.py"`)
			os.Exit(1)
		}
		if err := runCLI(root, cfg, client, log, prompt); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		return
	}

	runTUI(root, cfg, client, log)
}

func buildLogger(debug bool) (*zap.Logger, error) {
	dir, err := userconfig.Dir()
	if err != nil {
		return nil, err
	}
	return logging.New(dir, debug)
}

func newEngine(root string, cfg userconfig.Config, client agent.Completer, log *zap.Logger, confirm workspace.ConfirmFunc) (*agent.Engine, error) {
	return agent.New(agent.Config{
		RootDir:  root,
		MaxCalls: cfg.MaxCalls,
		Period:   time.Duration(cfg.PeriodSecs * float64(time.Second)),
		Confirm:  confirm,
	}, client, log)
}
