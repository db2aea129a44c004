// Package report shows the score summary and model feedback.
package report

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzy/internal/router"
	"github.com/abhisek/quizzy/internal/screen"
	"github.com/abhisek/quizzy/internal/session"
	"github.com/abhisek/quizzy/internal/ui/components"
	"github.com/abhisek/quizzy/internal/ui/layout"
	"github.com/abhisek/quizzy/internal/ui/theme"
)

const noFeedback = "Feedback not available."

// feedbackReadyMsg is sent once Finish has returned.
type feedbackReadyMsg struct {
	Summary session.Summary
}

// ReportScreen displays the test report.
type ReportScreen struct {
	sess    *session.Session
	summary session.Summary
	spinner components.Spinner
	waiting bool
}

var _ screen.Screen = (*ReportScreen)(nil)
var _ screen.KeyHintProvider = (*ReportScreen)(nil)
var _ screen.BackHandler = (*ReportScreen)(nil)

// New creates the report for the session's current quiz. The summary is
// shown straight away; feedback arrives asynchronously.
func New(sess *session.Session) *ReportScreen {
	st := sess.State()
	return &ReportScreen{
		sess:    sess,
		summary: session.ComputeSummary(st.Questions, st.Answers),
		spinner: components.Spinner{Label: "Writing your feedback..."},
	}
}

// Init finishes the quiz unless feedback is already present, as for a
// resumed report.
func (r *ReportScreen) Init() tea.Cmd {
	if r.sess.State().Feedback != "" {
		return nil
	}
	r.waiting = true
	sess := r.sess
	return tea.Batch(
		r.spinner.Tick(),
		func() tea.Msg {
			return feedbackReadyMsg{Summary: sess.Finish(context.Background())}
		},
	)
}

func (r *ReportScreen) Title() string {
	return "Test Report"
}

func (r *ReportScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "N", Description: "Start new test"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Back keeps the report on screen; a finished quiz is not reopened.
func (r *ReportScreen) Back() bool {
	return false
}

func (r *ReportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case feedbackReadyMsg:
		r.waiting = false
		r.summary = msg.Summary
		return r, nil

	case components.SpinnerTickMsg:
		if !r.waiting {
			return r, nil
		}
		r.spinner.Advance()
		return r, r.spinner.Tick()

	case tea.KeyMsg:
		if msg.String() == "n" || msg.String() == "enter" {
			r.sess.ResetForNewTest()
			r.waiting = false
			return r, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return r, nil
}

func (r *ReportScreen) View(width, height int) string {
	st := r.sess.State()
	sum := r.summary
	total := len(st.Questions)
	cw := min(width-8, 70)

	name := st.UserName
	if name == "" {
		name = session.DefaultLearnerName
	}
	subject := st.Subject
	if subject == "" {
		subject = "N/A"
	}

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render("Test Report for " + name))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(cw).Render("Subject: " + subject))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw).Align(lipgloss.Center).
		Render(fmt.Sprintf("Score: %d / %d  (%d%%)", sum.Correct, total, sum.Percent())))
	b.WriteString("\n\n")

	rows := []struct {
		label string
		n     int
		style lipgloss.Style
	}{
		{"Correct  ", sum.Correct, theme.Correct},
		{"Incorrect", sum.Incorrect, theme.Incorrect},
		{"Skipped  ", sum.Skipped, theme.Skipped},
	}
	for _, row := range rows {
		pct := 0.0
		if total > 0 {
			pct = float64(row.n) / float64(total)
		}
		bar := components.NewProgressBar(row.label, pct, false, cw-6).
			WithFill(row.style.GetForeground())
		b.WriteString(bar.View() + " " + row.style.Render(fmt.Sprintf("%3d", row.n)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("AI Feedback"))
	b.WriteString("\n")
	switch {
	case r.waiting:
		b.WriteString(r.spinner.View())
	case st.Feedback != "":
		b.WriteString(theme.Body.Width(cw).Render(st.Feedback))
	default:
		b.WriteString(theme.Hint.Render(noFeedback))
	}

	card := theme.Card.Width(cw + 6).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
