package quizgen

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SimeonTsvetanov/quizzard/internal/llm"
)

// StatusState describes what the orchestrator is doing while a caller
// waits on a question.
type StatusState string

const (
	StateWaiting     StatusState = "waiting"
	StateGenerating  StatusState = "generating"
	StateDistractors StatusState = "distractors"
	StateDone        StatusState = "done"
)

// StatusUpdate is one progress event on the orchestrator's status
// channel. Wait is non-zero only in StateWaiting, counting down per
// second until the rate limiter frees a slot.
type StatusUpdate struct {
	State StatusState
	Wait  time.Duration
}

// QuotaStatus is a snapshot of remaining capacity in the current window.
type QuotaStatus struct {
	RequestsRemaining int
	SecondsUntilReset int
	NearLimit         bool
}

// Orchestrator runs the full generation sequence: rate limiting, prompt
// assembly, the model call, parsing, optional distractor synthesis and
// session bookkeeping.
type Orchestrator struct {
	provider llm.Provider
	limiter  *RateLimiter
	parser   *Parser
	synth    *Synthesizer
	session  *Session
	cfg      Config
	status   chan<- StatusUpdate
	logger   *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithStatus attaches a progress channel. Sends are non-blocking; a
// slow receiver misses updates rather than stalling generation.
func WithStatus(ch chan<- StatusUpdate) Option {
	return func(o *Orchestrator) { o.status = ch }
}

// WithLogger sets the logger used for parser warnings and generation
// telemetry.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

// WithRateLimiter replaces the default limiter, mainly so tests can
// inject a fake clock.
func WithRateLimiter(l *RateLimiter) Option {
	return func(o *Orchestrator) { o.limiter = l }
}

// New creates an Orchestrator around a provider. The provider may be
// nil; Generate then fails with a configuration error and Usable
// reports false.
func New(provider llm.Provider, cfg Config, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		provider: provider,
		cfg:      cfg,
		session:  NewSession(),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.limiter == nil {
		o.limiter = NewRateLimiter(cfg)
	}
	o.parser = NewParser(o.logger)
	o.synth = NewSynthesizer(provider, cfg)
	return o
}

// Usable reports whether the orchestrator has a provider to call.
func (o *Orchestrator) Usable() bool {
	return o.provider != nil
}

// Session exposes the dedup session, e.g. for UI display.
func (o *Orchestrator) Session() *Session {
	return o.session
}

// Quota reports remaining request capacity in the current window.
func (o *Orchestrator) Quota() QuotaStatus {
	st := o.limiter.Check()
	remaining := st.RequestsRemaining
	return QuotaStatus{
		RequestsRemaining: remaining,
		SecondsUntilReset: int(st.WindowReset.Round(time.Second) / time.Second),
		NearLimit:         remaining <= o.cfg.RequestsPerWindow/5,
	}
}

// Generate produces one question. It blocks while the rate limiter
// requires waiting, emitting a countdown on the status channel once per
// second, and honors context cancellation throughout.
func (o *Orchestrator) Generate(ctx context.Context, params Params) (*Question, error) {
	if o.provider == nil {
		return nil, &llm.ErrNotConfigured{Provider: "none"}
	}

	if err := o.wait(ctx); err != nil {
		return nil, err
	}

	// The slot is spent whether or not the call succeeds; a failed
	// request still counted against the upstream quota.
	o.limiter.Record()

	o.emit(StatusUpdate{State: StateGenerating})
	prior := o.session.Recent(o.cfg.MaxPriorQuestions)
	resp, err := o.provider.Generate(llm.WithPurpose(ctx, "question-gen"), llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(params, prior, o.cfg)},
		},
		Schema:      QuestionSchema,
		MaxTokens:   o.cfg.MaxTokens,
		Temperature: o.cfg.Temperature,
		TopP:        o.cfg.TopP,
		TopK:        o.cfg.TopK,
	})

	// Transport and credential failures are actionable by the caller and
	// propagate; malformed content is not, and is absorbed by the parser.
	if err != nil {
		return nil, fmt.Errorf("generate question: %w", err)
	}
	q := o.parser.Parse(string(resp.Content))

	if params.Difficulty != "" {
		q.Difficulty = NormalizeDifficulty(string(params.Difficulty))
	}

	if params.Choices >= 2 {
		o.emit(StatusUpdate{State: StateDistractors})
		distractors := o.synth.Distractors(llm.WithPurpose(ctx, "distractor-gen"), q, params.Choices-1)
		AssembleChoices(q, distractors, nil)
	}

	o.session.Add(q)
	o.emit(StatusUpdate{State: StateDone})
	return q, nil
}

// wait blocks until the limiter frees a slot, re-checking every second
// and emitting the remaining wait to the status channel.
func (o *Orchestrator) wait(ctx context.Context) error {
	for {
		st := o.limiter.Check()
		if !st.Limited {
			return nil
		}
		o.emit(StatusUpdate{State: StateWaiting, Wait: st.Wait})

		tick := time.Second
		if st.Wait < tick {
			tick = st.Wait
		}
		if tick <= 0 {
			tick = time.Second
		}

		timer := time.NewTimer(tick)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// emit sends a status update without blocking.
func (o *Orchestrator) emit(u StatusUpdate) {
	if o.status == nil {
		return
	}
	select {
	case o.status <- u:
	default:
	}
}
