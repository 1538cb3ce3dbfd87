package cmd

import (
	"github.com/spf13/cobra"

	"github.com/SimeonTsvetanov/quizzard/internal/play"
	"github.com/SimeonTsvetanov/quizzard/internal/quizgen"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start an interactive quiz round",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func runPlay(cmd *cobra.Command) error {
	difficulty, _ := cmd.Flags().GetString("difficulty")
	category, _ := cmd.Flags().GetString("category")
	language, _ := cmd.Flags().GetString("language")
	choices, _ := cmd.Flags().GetInt("choices")

	st, provider, err := openProvider(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	status := make(chan quizgen.StatusUpdate, 16)
	orch := quizgen.New(provider, quizgen.DefaultConfig(), quizgen.WithStatus(status))

	params := quizgen.Params{
		Difficulty: quizgen.NormalizeDifficulty(difficulty),
		Category:   category,
		Language:   language,
		Choices:    choices,
	}
	return play.Run(orch, params, status)
}

func init() {
	playCmd.Flags().StringP("difficulty", "d", "medium", "Question difficulty (easy, medium, hard)")
	playCmd.Flags().StringP("category", "c", "", "Topic category, or empty/random to let the model choose")
	playCmd.Flags().StringP("language", "l", "English", "Language for question and answer")
	playCmd.Flags().Int("choices", 4, "Total multiple-choice options per question (0 for open answer)")

	// The bare root command runs play with its defaults, so the flags
	// must exist there too.
	rootCmd.Flags().AddFlagSet(playCmd.Flags())
}
