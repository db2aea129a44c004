package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzy/internal/router"
	"github.com/abhisek/quizzy/internal/screen"
	"github.com/abhisek/quizzy/internal/screens/customize"
	"github.com/abhisek/quizzy/internal/screens/quiz"
	"github.com/abhisek/quizzy/internal/screens/report"
	"github.com/abhisek/quizzy/internal/screens/start"
	"github.com/abhisek/quizzy/internal/screens/welcome"
	"github.com/abhisek/quizzy/internal/session"
	"github.com/abhisek/quizzy/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	sess   *session.Session
	router *router.Router
	init   tea.Cmd
	width  int
	height int
}

// New creates the root model. A restored session resumes on the screen it
// was left on: the report for a finished quiz, the quiz for one in
// progress. Otherwise the splash leads into the start form.
func New(sess *session.Session) AppModel {
	st := sess.State()
	if !st.HasQuestions() {
		splash := welcome.New(func() screen.Screen { return start.New(sess) })
		return AppModel{sess: sess, router: router.New(splash), init: splash.Init()}
	}

	root := start.New(sess)
	r := router.New(root)
	cmds := []tea.Cmd{root.Init(), r.Push(customize.New(sess))}
	if st.Summary.Total() > 0 {
		cmds = append(cmds, r.Push(report.New(sess)))
	} else {
		cmds = append(cmds, r.Push(quiz.New(sess)))
	}

	return AppModel{sess: sess, router: r, init: tea.Batch(cmds...)}
}

// Init returns the commands of the screens set up by New.
func (m AppModel) Init() tea.Cmd {
	return m.init
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() <= 1 {
				return m, nil
			}
			if bh, ok := m.router.Active().(screen.BackHandler); ok && !bh.Back() {
				return m, nil
			}
			return m, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	st := m.sess.State()
	header := layout.RenderHeader(title, st.UserName, st.Subject, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if khp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = khp.KeyHints()
	}
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program.
func Run(sess *session.Session) error {
	p := tea.NewProgram(New(sess))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
