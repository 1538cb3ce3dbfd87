package llm

import (
	"errors"
	"testing"

	"google.golang.org/genai"
)

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "the question text",
			},
			"difficulty": map[string]any{
				"type": "string",
				"enum": []any{"easy", "medium", "hard"},
			},
			"tags": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"question", "difficulty"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != genai.TypeObject {
		t.Errorf("expected object type, got %v", schema.Type)
	}
	if len(schema.Properties) != 3 {
		t.Fatalf("expected 3 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["question"].Type != genai.TypeString {
		t.Errorf("question should be a string")
	}
	if got := schema.Properties["question"].Description; got != "the question text" {
		t.Errorf("unexpected description: %q", got)
	}
	if len(schema.Properties["difficulty"].Enum) != 3 {
		t.Errorf("expected 3 enum values, got %d", len(schema.Properties["difficulty"].Enum))
	}
	if schema.Properties["tags"].Items == nil || schema.Properties["tags"].Items.Type != genai.TypeString {
		t.Errorf("tags items should be strings")
	}
	if len(schema.Required) != 2 {
		t.Errorf("expected 2 required fields, got %d", len(schema.Required))
	}
}

func TestMapHTTPStatus(t *testing.T) {
	base := errors.New("api error")

	tests := []struct {
		code int
		want any
	}{
		{400, &ErrBadRequest{}},
		{401, &ErrUnauthorized{}},
		{403, &ErrForbidden{}},
		{404, &ErrNotFound{}},
		{429, &ErrRateLimit{}},
		{500, &ErrProviderUnavailable{}},
		{503, &ErrProviderUnavailable{}},
	}

	for _, tt := range tests {
		got := mapHTTPStatus(tt.code, base)
		switch tt.want.(type) {
		case *ErrBadRequest:
			var e *ErrBadRequest
			if !errors.As(got, &e) {
				t.Errorf("status %d: expected ErrBadRequest, got %T", tt.code, got)
			}
		case *ErrUnauthorized:
			var e *ErrUnauthorized
			if !errors.As(got, &e) {
				t.Errorf("status %d: expected ErrUnauthorized, got %T", tt.code, got)
			}
		case *ErrForbidden:
			var e *ErrForbidden
			if !errors.As(got, &e) {
				t.Errorf("status %d: expected ErrForbidden, got %T", tt.code, got)
			}
		case *ErrNotFound:
			var e *ErrNotFound
			if !errors.As(got, &e) {
				t.Errorf("status %d: expected ErrNotFound, got %T", tt.code, got)
			}
		case *ErrRateLimit:
			var e *ErrRateLimit
			if !errors.As(got, &e) {
				t.Errorf("status %d: expected ErrRateLimit, got %T", tt.code, got)
			}
		case *ErrProviderUnavailable:
			var e *ErrProviderUnavailable
			if !errors.As(got, &e) {
				t.Errorf("status %d: expected ErrProviderUnavailable, got %T", tt.code, got)
			}
		}
	}

	// Unknown codes pass through unwrapped into the taxonomy.
	got := mapHTTPStatus(418, base)
	if !errors.Is(got, base) {
		t.Errorf("unknown status should wrap the original error")
	}
}

func TestResolveModel(t *testing.T) {
	if got := resolveModel("gemini-flash", geminiModels); got != "gemini-2.0-flash" {
		t.Errorf("friendly name not resolved: %q", got)
	}
	if got := resolveModel("gemini-exp-1206", geminiModels); got != "gemini-exp-1206" {
		t.Errorf("direct model ID should pass through: %q", got)
	}
}
