// Package start is the first screen: who is taking the quiz, and on what.
package start

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzy/internal/router"
	"github.com/abhisek/quizzy/internal/screen"
	"github.com/abhisek/quizzy/internal/screens/customize"
	"github.com/abhisek/quizzy/internal/session"
	"github.com/abhisek/quizzy/internal/ui/components"
	"github.com/abhisek/quizzy/internal/ui/layout"
	"github.com/abhisek/quizzy/internal/ui/theme"
)

const (
	fieldName = iota
	fieldSubject
	fieldTopic
	fieldCount
)

// StartScreen collects the learner name, subject and topic.
type StartScreen struct {
	sess   *session.Session
	inputs [fieldCount]components.TextInput
	focus  int
	errMsg string
}

var _ screen.Screen = (*StartScreen)(nil)
var _ screen.KeyHintProvider = (*StartScreen)(nil)

// New creates the start form, pre-filled from the session.
func New(sess *session.Session) *StartScreen {
	st := sess.State()
	s := &StartScreen{sess: sess}

	s.inputs[fieldName] = components.NewTextInput("Your name", "e.g. Ada", false, 40)
	s.inputs[fieldSubject] = components.NewTextInput("Subject", "e.g. Biology", false, 60)
	s.inputs[fieldTopic] = components.NewTextInput("Topic (optional)", "e.g. Cell structure", false, 80)

	s.inputs[fieldName].SetValue(st.UserName)
	s.inputs[fieldSubject].SetValue(st.Subject)
	s.inputs[fieldTopic].SetValue(st.Topic)
	return s
}

func (s *StartScreen) Init() tea.Cmd {
	return s.setFocus(0)
}

func (s *StartScreen) Title() string {
	return "Start"
}

func (s *StartScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab/↑↓", Description: "Move"},
		{Key: "Enter", Description: "Next"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *StartScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab", "down":
			return s, s.setFocus((s.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return s, s.setFocus((s.focus + fieldCount - 1) % fieldCount)
		case "enter":
			if s.focus < fieldCount-1 {
				return s, s.setFocus(s.focus + 1)
			}
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

func (s *StartScreen) submit() tea.Cmd {
	subject := s.inputs[fieldSubject].Value()
	if subject == "" {
		s.errMsg = "Subject is required"
		return s.setFocus(fieldSubject)
	}
	s.errMsg = ""

	s.sess.Configure(s.inputs[fieldName].Value(), subject, s.inputs[fieldTopic].Value())
	next := customize.New(s.sess)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *StartScreen) setFocus(i int) tea.Cmd {
	for j := range s.inputs {
		s.inputs[j].Blur()
	}
	s.focus = i
	return s.inputs[i].Focus()
}

func (s *StartScreen) View(width, height int) string {
	cw := min(width-8, 60)

	body := theme.Title.Width(cw).Render("AI-Assisted Quiz") + "\n" +
		theme.Subtitle.Width(cw).Render("Tell us what you want to be quizzed on") + "\n\n"
	for i := range s.inputs {
		body += s.inputs[i].View() + "\n\n"
	}
	if s.errMsg != "" {
		body += theme.ErrorText.Render(s.errMsg) + "\n"
	}

	card := theme.Card.Width(cw).Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
