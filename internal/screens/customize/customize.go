// Package customize picks question count and difficulty.
package customize

import (
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzy/internal/quizgen"
	"github.com/abhisek/quizzy/internal/router"
	"github.com/abhisek/quizzy/internal/screen"
	"github.com/abhisek/quizzy/internal/screens/quiz"
	"github.com/abhisek/quizzy/internal/session"
	"github.com/abhisek/quizzy/internal/ui/components"
	"github.com/abhisek/quizzy/internal/ui/layout"
	"github.com/abhisek/quizzy/internal/ui/theme"
)

var difficultyHints = map[quizgen.Difficulty]string{
	quizgen.DifficultyEasy:   "fundamentals",
	quizgen.DifficultyMedium: "applied understanding",
	quizgen.DifficultyHard:   "deeper reasoning",
}

// CustomizeScreen sets quiz parameters and starts the quiz.
type CustomizeScreen struct {
	sess       *session.Session
	count      components.TextInput
	difficulty components.Menu
	onCount    bool
	errMsg     string
}

var _ screen.Screen = (*CustomizeScreen)(nil)
var _ screen.KeyHintProvider = (*CustomizeScreen)(nil)

// New creates the screen from the session's current parameters.
func New(sess *session.Session) *CustomizeScreen {
	st := sess.State()

	count := components.NewTextInput("Number of questions", strconv.Itoa(quizgen.DefaultCount), true, 2)
	if st.Count > 0 {
		count.SetValue(strconv.Itoa(st.Count))
	}

	items := make([]components.MenuItem, 0, len(quizgen.Difficulties))
	for _, d := range quizgen.Difficulties {
		items = append(items, components.MenuItem{Label: string(d), Hint: difficultyHints[d]})
	}
	menu := components.NewMenu(items)
	menu.Select(string(st.Difficulty))

	return &CustomizeScreen{sess: sess, count: count, difficulty: menu, onCount: true}
}

func (c *CustomizeScreen) Init() tea.Cmd {
	return c.focusCount(true)
}

func (c *CustomizeScreen) Title() string {
	return "Customize"
}

func (c *CustomizeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch"},
		{Key: "↑↓", Description: "Difficulty"},
		{Key: "Enter", Description: "Start quiz"},
		{Key: "Esc", Description: "Back"},
	}
}

func (c *CustomizeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab", "shift+tab":
			return c, c.focusCount(!c.onCount)
		case "enter":
			return c, c.submit()
		}
	}

	var cmd tea.Cmd
	if c.onCount {
		c.count, cmd = c.count.Update(msg)
	} else {
		c.difficulty, cmd = c.difficulty.Update(msg)
	}
	return c, cmd
}

func (c *CustomizeScreen) submit() tea.Cmd {
	n := quizgen.DefaultCount
	if c.count.Value() != "" {
		v, err := c.count.NumericValue()
		if err != nil || v < 1 || v > quizgen.MaxCount {
			c.errMsg = fmt.Sprintf("Count must be between 1 and %d", quizgen.MaxCount)
			return nil
		}
		n = v
	}
	c.errMsg = ""

	c.sess.SetQuizParameters(n, quizgen.Difficulty(c.difficulty.Current()))
	next := quiz.New(c.sess)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (c *CustomizeScreen) focusCount(on bool) tea.Cmd {
	c.onCount = on
	c.difficulty.Focused = !on
	if on {
		return c.count.Focus()
	}
	c.count.Blur()
	return nil
}

func (c *CustomizeScreen) View(width, height int) string {
	st := c.sess.State()
	cw := min(width-8, 60)

	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	if !c.onCount {
		label = label.Foreground(theme.Primary).Bold(true)
	}

	body := theme.Title.Width(cw).Render("Customize your quiz") + "\n" +
		theme.Subtitle.Width(cw).Render(st.QuizConfig().EffectiveTopic()) + "\n\n" +
		c.count.View() + "\n\n" +
		label.Render("Difficulty") + "\n" +
		c.difficulty.View()
	if c.errMsg != "" {
		body += "\n" + theme.ErrorText.Render(c.errMsg)
	}

	card := theme.Card.Width(cw).Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
