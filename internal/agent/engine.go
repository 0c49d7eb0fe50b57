// Package agent runs the conversation loop: it assembles the request
// context, calls the model, parses its structured reply, and applies the
// file operations it proposes.
package agent

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fitchmultz/deepseek-engineer/internal/convo"
	"github.com/fitchmultz/deepseek-engineer/internal/llm"
	"github.com/fitchmultz/deepseek-engineer/internal/ratelimit"
	"github.com/fitchmultz/deepseek-engineer/internal/workspace"
)

const (
	defaultMaxCalls  = 5
	defaultPeriod    = time.Second
	maxRetainedPairs = 10
)

// Completer is the remote-model surface the engine depends on. *llm.Client
// satisfies it; tests substitute a scripted fake.
type Completer interface {
	Stream(ctx context.Context, messages []convo.Message, onDelta func(llm.Delta)) (string, error)
	Model() string
}

type Config struct {
	RootDir  string
	MaxCalls int
	Period   time.Duration
	Confirm  workspace.ConfirmFunc
}

type Engine struct {
	convo    *convo.Context
	limiter  *ratelimit.Limiter
	sandbox  *workspace.Sandbox
	writer   *workspace.Writer
	ingester *workspace.Ingester
	client   Completer
	log      *zap.Logger
}

func New(cfg Config, client Completer, log *zap.Logger) (*Engine, error) {
	if client == nil {
		return nil, errors.New("completer is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	root := cfg.RootDir
	if root == "" {
		root = "."
	}
	sandbox, err := workspace.NewSandbox(root)
	if err != nil {
		return nil, fmt.Errorf("workspace root: %w", err)
	}
	maxCalls := cfg.MaxCalls
	if maxCalls <= 0 {
		maxCalls = defaultMaxCalls
	}
	period := cfg.Period
	if period <= 0 {
		period = defaultPeriod
	}
	limiter, err := ratelimit.New(maxCalls, period)
	if err != nil {
		return nil, err
	}
	return &Engine{
		convo:    convo.New(SystemPrompt()),
		limiter:  limiter,
		sandbox:  sandbox,
		writer:   workspace.NewWriter(sandbox, cfg.Confirm, log),
		ingester: workspace.NewIngester(sandbox, log),
		client:   client,
		log:      log,
	}, nil
}

func (e *Engine) Model() string {
	return e.client.Model()
}

func (e *Engine) Stats() convo.Stats {
	return e.convo.Stats()
}

// TurnResult is one completed model exchange. When ParseOK is false the
// model produced unstructured output; Reply carries it verbatim and no file
// operations are proposed.
type TurnResult struct {
	RequestID string
	Reply     string
	Raw       string
	Creates   []llm.FileToCreate
	Edits     []llm.FileToEdit
	ParseOK   bool
}

// Turn sends userMsg through the full pipeline. The conversation is
// rebuilt, file paths guessed from the message are attached, the rate
// limiter is honored, and the structured reply is vetted before being
// returned. Nothing is recorded on stream failure; the dangling user turn
// is dropped by the next rebuild.
func (e *Engine) Turn(ctx context.Context, userMsg string, onDelta func(llm.Delta)) (TurnResult, error) {
	userMsg = strings.TrimSpace(userMsg)
	if userMsg == "" {
		return TurnResult{}, errors.New("message is required")
	}

	id := uuid.NewString()
	log := e.log.With(zap.String("request_id", id))

	e.convo.RebuildForRequest(userMsg)
	e.attachGuessedFiles(userMsg, log)

	if err := e.limiter.Acquire(ctx); err != nil {
		return TurnResult{}, err
	}

	log.Info("calling model",
		zap.String("model", e.client.Model()),
		zap.Int("messages", e.convo.Len()))

	raw, err := e.client.Stream(ctx, e.convo.Messages(), onDelta)
	if err != nil {
		log.Warn("stream failed", zap.Error(err))
		return TurnResult{RequestID: id}, err
	}

	result := TurnResult{RequestID: id, Raw: raw}
	resp, ok := llm.ParseAssistantResponse(raw)
	if !ok {
		log.Warn("unparseable assistant reply", zap.Int("bytes", len(raw)))
		result.Reply = raw
		return result, nil
	}

	result.ParseOK = true
	result.Reply = resp.AssistantReply
	result.Creates = resp.FilesToCreate
	result.Edits = e.vetEdits(resp.FilesToEdit, log)

	e.convo.Append(convo.RoleAssistant, raw)
	e.convo.Prune(maxRetainedPairs)
	return result, nil
}

// attachGuessedFiles scans the message for words that look like file paths
// and pulls readable ones into the conversation.
func (e *Engine) attachGuessedFiles(userMsg string, log *zap.Logger) {
	for _, word := range strings.Fields(userMsg) {
		if !looksLikePath(word) {
			continue
		}
		candidate := strings.Trim(word, `'",`)
		resolved, err := e.sandbox.Resolve(candidate)
		if err != nil {
			continue
		}
		if e.convo.HasFile(resolved) {
			continue
		}
		info, err := os.Stat(resolved)
		if err != nil || info.IsDir() {
			continue
		}
		b, err := os.ReadFile(resolved)
		if err != nil {
			continue
		}
		if e.convo.AddFileContent(resolved, string(b)) {
			log.Debug("attached guessed file", zap.String("path", resolved))
		}
	}
}

var recognizedExtensions = []string{".css", ".html", ".js", ".py", ".json", ".md", ".go"}

func looksLikePath(word string) bool {
	if strings.Contains(word, "/") {
		return true
	}
	for _, ext := range recognizedExtensions {
		if strings.Contains(word, ext) {
			return true
		}
	}
	return false
}

// vetEdits keeps only edits whose target resolves inside the workspace and
// whose current content is present in the conversation. Invalid entries are
// skipped item by item.
func (e *Engine) vetEdits(edits []llm.FileToEdit, log *zap.Logger) []llm.FileToEdit {
	var out []llm.FileToEdit
	for _, edit := range edits {
		resolved, err := e.sandbox.Resolve(edit.Path)
		if err != nil {
			log.Warn("skipping edit with invalid path", zap.String("path", edit.Path), zap.Error(err))
			continue
		}
		if !e.convo.HasFile(resolved) {
			b, err := os.ReadFile(resolved)
			if err != nil {
				log.Warn("skipping edit for unreadable file", zap.String("path", resolved), zap.Error(err))
				continue
			}
			e.convo.AddFileContent(resolved, string(b))
		}
		edit.Path = resolved
		out = append(out, edit)
	}
	return out
}
