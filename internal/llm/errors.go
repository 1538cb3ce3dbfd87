package llm

import (
	"encoding/json"
	"fmt"
	"time"
)

// ErrNotConfigured indicates no provider credential is available.
// This is a precondition failure, not a transport failure: the caller
// should prompt for configuration rather than retry.
type ErrNotConfigured struct {
	Provider string
}

func (e *ErrNotConfigured) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("%s provider is not configured: missing API key", e.Provider)
	}
	return "no LLM provider is configured"
}

// ErrRateLimit indicates the provider returned a throttling error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrUnauthorized indicates the credential was rejected (401).
type ErrUnauthorized struct {
	Err error
}

func (e *ErrUnauthorized) Error() string {
	return fmt.Sprintf("invalid API key: %v", e.Err)
}

func (e *ErrUnauthorized) Unwrap() error { return e.Err }

// ErrForbidden indicates the credential lacks access to the model (403).
type ErrForbidden struct {
	Err error
}

func (e *ErrForbidden) Error() string {
	return fmt.Sprintf("access denied by provider: %v", e.Err)
}

func (e *ErrForbidden) Unwrap() error { return e.Err }

// ErrBadRequest indicates the provider rejected the request shape (400).
type ErrBadRequest struct {
	Err error
}

func (e *ErrBadRequest) Error() string {
	return fmt.Sprintf("provider rejected the request: %v", e.Err)
}

func (e *ErrBadRequest) Unwrap() error { return e.Err }

// ErrNotFound indicates the requested model or endpoint does not exist (404).
type ErrNotFound struct {
	Err error
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("model or endpoint not found: %v", e.Err)
}

func (e *ErrNotFound) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable
// (5xx responses and transport-level failures).
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrEmptyGeneration indicates a well-formed response that carries no
// usable text: no candidates, or a candidate without text content.
// Semantic rather than transient, so never retried.
type ErrEmptyGeneration struct {
	Err error
}

func (e *ErrEmptyGeneration) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("model returned no usable content: %v", e.Err)
	}
	return "model returned no usable content"
}

func (e *ErrEmptyGeneration) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the model returned content that does not
// conform to the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the response was truncated because it
// hit the MaxTokens limit.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}
