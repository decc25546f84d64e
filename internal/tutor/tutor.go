// Package tutor answers student questions through a completion provider.
package tutor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Natnat0905/GeoChat/internal/metrics"
	"github.com/Natnat0905/GeoChat/internal/provider"
)

const SystemPrompt = `You are a patient math tutor who specializes in geometry for students in grades 7-10.
Explain each step in plain language, show the formula you use and the units of the answer.
Keep answers short and suitable for a student reading them on a phone.`

// FallbackReply is returned whenever the completion service cannot answer.
const FallbackReply = "Sorry, I couldn't work that one out right now. Please try asking again in a moment."

const (
	defaultModel       = "gpt-3.5-turbo"
	defaultMaxTokens   = 650
	defaultTimeout     = 20 * time.Second
	defaultRetryDelay  = 500 * time.Millisecond
	tracerInstrumentID = "github.com/Natnat0905/GeoChat/internal/tutor"
)

var errEmptyReply = errors.New("tutor: empty reply")

type Options struct {
	Model       string
	MaxTokens   int
	Temperature float64
	// Timeout bounds a single attempt.
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
	// TokenPrice is the estimated cost of one token.
	TokenPrice float64
}

// Responder is the single failure-isolation boundary around the completion
// service: Respond never returns an error.
type Responder struct {
	prov   provider.Provider
	opts   Options
	usage  *metrics.Usage
	log    *slog.Logger
	tracer trace.Tracer
}

func New(p provider.Provider, opts Options, usage *metrics.Usage, logger *slog.Logger) (*Responder, error) {
	if p == nil {
		return nil, errors.New("tutor: provider must not be nil")
	}
	if usage == nil {
		usage = &metrics.Usage{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(opts.Model) == "" {
		opts.Model = defaultModel
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = defaultMaxTokens
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = defaultRetryDelay
	}
	return &Responder{
		prov:   p,
		opts:   opts,
		usage:  usage,
		log:    logger,
		tracer: otel.Tracer(tracerInstrumentID),
	}, nil
}

// Respond returns the tutor's answer to message, or FallbackReply if the
// completion service fails for any reason.
func (r *Responder) Respond(ctx context.Context, message string) string {
	ctx, span := r.tracer.Start(ctx, "tutor.Respond", trace.WithAttributes(
		attribute.String("llm.model", r.opts.Model),
		attribute.Int("llm.max_tokens", r.opts.MaxTokens),
	))
	defer span.End()

	reply, err := r.complete(ctx, message)
	if err != nil {
		r.usage.AddFallback()
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		r.log.ErrorContext(ctx, "tutor completion failed, using fallback reply", "err", err)
		return FallbackReply
	}
	return reply
}

func (r *Responder) complete(ctx context.Context, message string) (string, error) {
	req := &provider.ChatRequest{
		Model: r.opts.Model,
		Messages: []provider.Message{
			{Role: provider.RoleSystem, Content: SystemPrompt},
			{Role: provider.RoleUser, Content: message},
		},
		MaxTokens:   r.opts.MaxTokens,
		Temperature: r.opts.Temperature,
	}

	var out *provider.Completion
	attempt := 0
	op := func() error {
		attempt++
		actx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()

		c, err := r.prov.Chat(actx, req)
		if err == nil {
			out = c
			return nil
		}
		if ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		var ue *provider.UpstreamError
		if errors.As(err, &ue) && !ue.Retryable() {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(r.opts.RetryDelay), uint64(r.opts.MaxRetries)),
		ctx,
	)
	notify := func(err error, wait time.Duration) {
		r.log.WarnContext(ctx, "tutor completion attempt failed, retrying", "attempt", attempt, "wait", wait, "err", err)
	}
	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return "", fmt.Errorf("tutor: completion after %d attempt(s): %w", attempt, err)
	}

	reply := Tidy(out.Message.Content)
	if reply == "" {
		return "", errEmptyReply
	}
	r.usage.AddTokens(out.TotalTokens, r.opts.TokenPrice)
	return reply, nil
}
