package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzy/internal/ui/theme"
)

// Palette renders the numbered question grid. Statuses holds one status
// name per question in order; Current is highlighted with brackets.
type Palette struct {
	Statuses []string
	Current  int
	PerRow   int
}

// View renders the grid.
func (p Palette) View() string {
	perRow := p.PerRow
	if perRow <= 0 {
		perRow = 10
	}

	var b strings.Builder
	for i, st := range p.Statuses {
		label := fmt.Sprintf(" %2d ", i+1)
		if i == p.Current {
			label = fmt.Sprintf("[%2d]", i+1)
		}
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.StatusColor(st)).
			Bold(i == p.Current).
			Render(label))

		if (i+1)%perRow == 0 && i < len(p.Statuses)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// PaletteLegend renders the colour key for the grid.
func PaletteLegend() string {
	entries := []struct{ status, label string }{
		{"notVisited", "Not visited"},
		{"notAnswered", "Not answered"},
		{"answered", "Answered"},
		{"marked", "Marked for review"},
	}
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.StatusColor(e.status)).Render("■ "+e.label))
	}
	return strings.Join(parts, "   ")
}
