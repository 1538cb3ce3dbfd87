package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SimeonTsvetanov/quizzard/internal/quizgen"
	"github.com/SimeonTsvetanov/quizzard/internal/store"
)

var quotaCmd = &cobra.Command{
	Use:   "quota",
	Short: "Show request quota usage over the current rate window",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := quizgen.DefaultConfig()

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		// Recent events are enough: the window can hold at most
		// RequestsPerWindow generation calls plus their distractor calls.
		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{
			Limit: cfg.RequestsPerWindow * 4,
		})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		cutoff := time.Now().Add(-cfg.Window)
		used := 0
		var oldest time.Time
		for _, e := range events {
			if e.Timestamp.Before(cutoff) {
				continue
			}
			used++
			if oldest.IsZero() || e.Timestamp.Before(oldest) {
				oldest = e.Timestamp
			}
		}

		remaining := cfg.RequestsPerWindow - used
		if remaining < 0 {
			remaining = 0
		}

		fmt.Printf("Window:     %s\n", cfg.Window)
		fmt.Printf("Used:       %d\n", used)
		fmt.Printf("Remaining:  %d of %d\n", remaining, cfg.RequestsPerWindow)
		if !oldest.IsZero() {
			reset := time.Until(oldest.Add(cfg.Window)).Round(time.Second)
			if reset > 0 {
				fmt.Printf("Resets in:  %s\n", reset)
			}
		}
		if remaining == 0 {
			fmt.Println("\nThe window is exhausted; new requests will wait.")
		}
		return nil
	},
}
