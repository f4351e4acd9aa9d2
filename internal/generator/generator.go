// Package generator implements the provider-fallback response pipeline:
// sticky provider first, then the registry's ranked list, with a
// per-attempt timeout and a hard cap on accumulated output.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/AITechnologyDev/G4FChat/internal/eventbus"
	"github.com/AITechnologyDev/G4FChat/internal/i18n"
	"github.com/AITechnologyDev/G4FChat/internal/llm"
	"github.com/AITechnologyDev/G4FChat/internal/session"
)

// ReportMarker is the reserved prefix of an exhaustion report. Callers
// use it to keep failure reports out of conversation history.
const ReportMarker = "⚠️"

const errMsgLimit = 100

// IsFailureReport reports whether text is an exhaustion report rather
// than a genuine answer.
func IsFailureReport(text string) bool {
	return strings.HasPrefix(text, ReportMarker)
}

// SessionState is the slice of the session store the generator needs.
type SessionState interface {
	Model(userID string) string
	Lang(userID string) string
	Chat(userID, chatID string) (session.Chat, bool)
	SetProvider(userID, chatID, provider string) error
}

// ProviderSource yields the active provider set. *llm.Registry
// satisfies it.
type ProviderSource interface {
	Active() []llm.Provider
	Get(name string) (llm.Provider, bool)
}

// Options tune the pipeline. Zero values fall back to the source's
// constants: 60s timeout, 10000-char cap, 300ms retry delay. A negative
// RetryDelay disables the inter-attempt pause.
type Options struct {
	DefaultModel string
	Timeout      time.Duration
	MaxChars     int
	RetryDelay   time.Duration
}

// Generator produces a response for a chat by trying providers in order.
type Generator struct {
	providers ProviderSource
	sessions  SessionState
	bus       *eventbus.Bus
	opts      Options
}

// attempt is one provider try, kept only for the exhaustion report.
type attempt struct {
	provider string
	errMsg   string
}

// New creates a Generator.
func New(providers ProviderSource, sessions SessionState, bus *eventbus.Bus, opts Options) *Generator {
	if opts.DefaultModel == "" {
		opts.DefaultModel = "gpt-4o"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.MaxChars <= 0 {
		opts.MaxChars = 10000
	}
	if opts.RetryDelay == 0 {
		opts.RetryDelay = 300 * time.Millisecond
	}
	return &Generator{providers: providers, sessions: sessions, bus: bus, opts: opts}
}

// Generate runs the fallback pipeline and always returns a string:
// either the provider's text or an exhaustion report prefixed with
// ReportMarker. Provider faults never escape as errors.
//
// Session state is mutated exactly twice at most: the sticky provider
// is cleared (and persisted) when the sticky attempt fails, before any
// ranked attempt runs, and set when a ranked attempt succeeds.
func (g *Generator) Generate(ctx context.Context, userID, chatID string, history []llm.Message) string {
	model := g.sessions.Model(userID)
	if model == "" {
		model = g.opts.DefaultModel
	}
	lang := g.sessions.Lang(userID)

	var sticky string
	if chat, ok := g.sessions.Chat(userID, chatID); ok {
		sticky = chat.Provider
	}

	var attempts []attempt

	if sticky != "" {
		if p, ok := g.providers.Get(sticky); ok {
			log.Printf("[generator] trying saved provider: %s", sticky)
			g.bus.Publish(eventbus.TopicAttemptStarted, eventbus.AttemptEvent{Provider: sticky, Model: model, Sticky: true})

			text, err := g.attempt(ctx, p, model, history)
			if err == nil {
				// Sticky success: the recorded provider already matches.
				g.bus.Publish(eventbus.TopicGenerationDone, eventbus.AttemptEvent{Provider: sticky, Model: model, Sticky: true})
				return text
			}

			msg := attemptError(err, lang)
			attempts = append(attempts, attempt{provider: sticky, errMsg: msg})
			log.Printf("[generator] saved provider error: %s: %s", sticky, msg)
			g.bus.Publish(eventbus.TopicAttemptFailed, eventbus.AttemptEvent{Provider: sticky, Model: model, Sticky: true, Err: msg})

			// The clear must be persisted before any ranked attempt.
			if err := g.sessions.SetProvider(userID, chatID, ""); err != nil {
				log.Printf("[generator] failed to clear sticky provider: %v", err)
			}
		}
	}

	for _, p := range g.providers.Active() {
		name := p.Name()
		if sticky != "" && name == sticky {
			continue
		}
		if !p.SupportsModel(model) {
			log.Printf("[generator] skipping %s: no support for model %s", name, model)
			continue
		}

		log.Printf("[generator] trying provider: %s", name)
		g.bus.Publish(eventbus.TopicAttemptStarted, eventbus.AttemptEvent{Provider: name, Model: model})

		text, err := g.attempt(ctx, p, model, history)
		if err == nil {
			if err := g.sessions.SetProvider(userID, chatID, name); err != nil {
				log.Printf("[generator] failed to save sticky provider: %v", err)
			}
			g.bus.Publish(eventbus.TopicGenerationDone, eventbus.AttemptEvent{Provider: name, Model: model})
			return text
		}

		msg := attemptError(err, lang)
		attempts = append(attempts, attempt{provider: name, errMsg: msg})
		log.Printf("[generator] provider error: %s: %s", name, msg)
		g.bus.Publish(eventbus.TopicAttemptFailed, eventbus.AttemptEvent{Provider: name, Model: model, Err: msg})

		if g.opts.RetryDelay > 0 {
			time.Sleep(g.opts.RetryDelay)
		}
	}

	g.bus.Publish(eventbus.TopicExhausted, eventbus.AttemptEvent{Model: model})
	return g.report(attempts, model, lang)
}

// attempt runs one provider call: stream, accumulate up to the cap,
// reject whitespace-only output. Timeouts surface as ErrorTimeout.
func (g *Generator) attempt(ctx context.Context, p llm.Provider, model string, history []llm.Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
	defer cancel()

	ch, err := p.Stream(ctx, model, history)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	runes := 0
	for {
		select {
		case chunk, ok := <-ch:
			if !ok {
				return finishAttempt(b.String())
			}
			if chunk.Err != nil {
				if errors.Is(chunk.Err, context.DeadlineExceeded) {
					return "", timeoutError(chunk.Err)
				}
				return "", chunk.Err
			}
			b.WriteString(chunk.Text)
			runes += utf8.RuneCountInString(chunk.Text)
			if runes >= g.opts.MaxChars {
				// Hard truncation, not an error: stop consuming.
				return finishAttempt(truncateRunes(b.String(), g.opts.MaxChars))
			}
		case <-ctx.Done():
			return "", timeoutError(ctx.Err())
		}
	}
}

func finishAttempt(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &llm.LLMError{Type: llm.ErrorEmpty, Message: "empty response"}
	}
	return text, nil
}

func timeoutError(err error) *llm.LLMError {
	return &llm.LLMError{Type: llm.ErrorTimeout, Message: "request timed out", Err: err}
}

// report builds the exhaustion report: providers tried, model in use,
// and the final three recorded errors, oldest to newest.
func (g *Generator) report(attempts []attempt, model, lang string) string {
	lines := []string{
		ReportMarker + " " + i18n.T("gen_error", lang),
		"",
		fmt.Sprintf(i18n.T("tried_providers", lang), len(attempts)),
		fmt.Sprintf(i18n.T("model_in_use", lang), model),
	}
	if len(attempts) > 0 {
		lines = append(lines, "", i18n.T("recent_errors", lang))
		start := len(attempts) - 3
		if start < 0 {
			start = 0
		}
		for _, a := range attempts[start:] {
			lines = append(lines, fmt.Sprintf("  - %s: %s", a.provider, a.errMsg))
		}
	}
	lines = append(lines,
		"",
		i18n.T("suggestions", lang),
		"  1. "+i18n.T("try_again", lang),
		"  2. "+i18n.T("change_model", lang),
		"  3. "+i18n.T("check_status", lang),
	)
	return strings.Join(lines, "\n")
}

// attemptError renders an attempt failure for the log: timeouts get a
// dedicated localized message, everything else a truncated error string.
func attemptError(err error, lang string) string {
	var llmErr *llm.LLMError
	if errors.As(err, &llmErr) {
		switch llmErr.Type {
		case llm.ErrorTimeout:
			return i18n.T("timeout_error", lang)
		case llm.ErrorEmpty:
			return i18n.T("empty_response", lang)
		}
	}
	msg := err.Error()
	if len(msg) > errMsgLimit {
		msg = msg[:errMsgLimit]
	}
	return msg
}

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
