package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SimeonTsvetanov/quizzard/internal/llm"
	"github.com/SimeonTsvetanov/quizzard/internal/quizgen"
	"github.com/SimeonTsvetanov/quizzard/internal/store"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate quiz questions and print them",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		difficulty, _ := cmd.Flags().GetString("difficulty")
		category, _ := cmd.Flags().GetString("category")
		language, _ := cmd.Flags().GetString("language")
		choices, _ := cmd.Flags().GetInt("choices")
		count, _ := cmd.Flags().GetInt("count")
		asJSON, _ := cmd.Flags().GetBool("json")

		st, provider, err := openProvider(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		orch := quizgen.New(provider, quizgen.DefaultConfig())
		params := quizgen.Params{
			Difficulty: quizgen.NormalizeDifficulty(difficulty),
			Category:   category,
			Language:   language,
			Choices:    choices,
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		for i := 0; i < count; i++ {
			q, err := orch.Generate(ctx, params)
			if err != nil {
				return fmt.Errorf("generate question: %w", err)
			}

			if asJSON {
				if err := enc.Encode(questionJSON(q)); err != nil {
					return err
				}
				continue
			}

			fmt.Printf("Q%d. %s\n", i+1, q.Text)
			if len(q.Options) > 0 {
				for j, opt := range q.Options {
					marker := " "
					if j == q.CorrectOption {
						marker = "*"
					}
					fmt.Printf("  %s %c) %s\n", marker, 'A'+j, opt)
				}
			} else {
				fmt.Printf("    Answer: %s\n", q.Answer)
			}
			fmt.Printf("    [%s · %s]\n\n", q.Category, q.Difficulty)
		}
		return nil
	},
}

// questionJSON is the stable output shape of generate --json.
type questionJSONRecord struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Answer        string   `json:"answer"`
	Category      string   `json:"category"`
	Difficulty    string   `json:"difficulty"`
	Options       []string `json:"options,omitempty"`
	CorrectOption *int     `json:"correctOption,omitempty"`
}

func questionJSON(q *quizgen.Question) questionJSONRecord {
	rec := questionJSONRecord{
		ID:         q.ID,
		Question:   q.Text,
		Answer:     q.Answer,
		Category:   q.Category,
		Difficulty: string(q.Difficulty),
		Options:    q.Options,
	}
	if len(q.Options) > 0 {
		idx := q.CorrectOption
		rec.CorrectOption = &idx
	}
	return rec
}

// openProvider opens the event store and builds the configured LLM
// provider. The caller owns the returned store.
func openProvider(cmd *cobra.Command) (*store.Store, llm.Provider, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	provider, err := llm.NewProviderFromEnv(cmd.Context(), st.EventRepo())
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("configure LLM provider: %w", err)
	}
	return st, provider, nil
}

func init() {
	generateCmd.Flags().StringP("difficulty", "d", "medium", "Question difficulty (easy, medium, hard)")
	generateCmd.Flags().StringP("category", "c", "", "Topic category, or empty/random to let the model choose")
	generateCmd.Flags().StringP("language", "l", "English", "Language for question and answer")
	generateCmd.Flags().Int("choices", 0, "Total multiple-choice options per question (0 for open answer)")
	generateCmd.Flags().IntP("count", "n", 1, "Number of questions to generate")
	generateCmd.Flags().Bool("json", false, "Emit questions as JSON")
}
