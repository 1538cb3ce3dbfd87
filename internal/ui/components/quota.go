package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/SimeonTsvetanov/quizzard/internal/ui/theme"
)

// QuotaBar displays remaining request quota as a horizontal bar.
type QuotaBar struct {
	Remaining int
	Total     int
	Width     int
}

// NewQuotaBar creates a quota bar.
func NewQuotaBar(remaining, total, width int) QuotaBar {
	return QuotaBar{Remaining: remaining, Total: total, Width: width}
}

// View renders the bar with a remaining/total counter.
func (q QuotaBar) View() string {
	counter := fmt.Sprintf(" %d/%d", q.Remaining, q.Total)

	barWidth := q.Width - lipgloss.Width(counter)
	if barWidth < 4 {
		barWidth = 4
	}

	frac := 0.0
	if q.Total > 0 {
		frac = float64(q.Remaining) / float64(q.Total)
	}
	filled := int(float64(barWidth) * frac)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	bar := theme.QuotaFilled.Render(strings.Repeat(" ", filled)) +
		theme.QuotaEmpty.Render(strings.Repeat(" ", barWidth-filled))

	counterStyle := theme.Subtitle
	if q.Total > 0 && q.Remaining*5 <= q.Total {
		counterStyle = theme.Throttled
	}

	return bar + counterStyle.Render(counter)
}
