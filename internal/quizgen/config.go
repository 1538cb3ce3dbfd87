package quizgen

import "time"

// Config controls the generation pipeline. The defaults mirror the
// provider quota the app ships against; tests instantiate variants with
// short windows.
type Config struct {
	// RequestsPerWindow caps generation calls inside one rate window.
	RequestsPerWindow int

	// Window is the duration of the rate-limiting window.
	Window time.Duration

	// MinInterval is the minimum gap between consecutive requests,
	// enforced regardless of window occupancy to smooth bursts.
	MinInterval time.Duration

	// MaxPriorQuestions is the number of recent session questions
	// forwarded into the prompt for duplicate avoidance.
	MaxPriorQuestions int

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature, TopP and TopK are sampling knobs tuned for variety.
	// Generation-quality settings, not correctness-critical.
	Temperature float64
	TopP        float64
	TopK        int

	// OptionCount is the default number of multiple-choice options when
	// the caller asks for choices without a count.
	OptionCount int
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{
		RequestsPerWindow: 15,
		Window:            60 * time.Second,
		MinInterval:       4 * time.Second,
		MaxPriorQuestions: 10,
		MaxTokens:         512,
		Temperature:       0.9,
		TopP:              0.95,
		TopK:              40,
		OptionCount:       4,
	}
}
