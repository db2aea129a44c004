package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzy/internal/ui/theme"
)

const bannerArt = `
  ██████╗ ██╗   ██╗██╗███████╗███████╗██╗   ██╗
 ██╔═══██╗██║   ██║██║╚══███╔╝╚══███╔╝╚██╗ ██╔╝
 ██║   ██║██║   ██║██║  ███╔╝   ███╔╝  ╚████╔╝
 ██║▄▄ ██║██║   ██║██║ ███╔╝   ███╔╝    ╚██╔╝
 ╚██████╔╝╚██████╔╝██║███████╗███████╗   ██║
  ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝╚══════╝   ╚═╝`

const bannerCompact = "Q U I Z Z Y"

// RenderBanner returns the banner in the primary colour, or a one-line
// version for terminals narrower than 50 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 50 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
