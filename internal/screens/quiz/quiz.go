// Package quiz runs the question-by-question flow of a quiz.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzy/internal/router"
	"github.com/abhisek/quizzy/internal/screen"
	"github.com/abhisek/quizzy/internal/screens/report"
	"github.com/abhisek/quizzy/internal/session"
	"github.com/abhisek/quizzy/internal/ui/components"
	"github.com/abhisek/quizzy/internal/ui/layout"
	"github.com/abhisek/quizzy/internal/ui/theme"
)

// quizReadyMsg is sent when question generation returns.
type quizReadyMsg struct {
	Err error
}

// QuizScreen shows one question at a time with the question palette.
type QuizScreen struct {
	sess    *session.Session
	options components.OptionList
	spinner components.Spinner
	loading bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.BackHandler = (*QuizScreen)(nil)

// New creates the quiz screen. A session without questions starts a new
// quiz on Init; a resumed one continues where it stopped.
func New(sess *session.Session) *QuizScreen {
	q := &QuizScreen{
		sess:    sess,
		spinner: components.Spinner{Label: "Generating your questions..."},
	}
	q.syncOptions()
	return q
}

func (q *QuizScreen) Init() tea.Cmd {
	st := q.sess.State()
	if st.HasQuestions() {
		q.sess.GoTo(st.CurrentIndex)
		q.syncOptions()
		return nil
	}
	return q.start()
}

func (q *QuizScreen) start() tea.Cmd {
	q.loading = true
	sess := q.sess
	return tea.Batch(
		q.spinner.Tick(),
		func() tea.Msg {
			return quizReadyMsg{Err: sess.Start(context.Background())}
		},
	)
}

func (q *QuizScreen) Title() string {
	st := q.sess.State()
	if !st.HasQuestions() {
		return "Quiz"
	}
	return fmt.Sprintf("Question %d of %d", st.CurrentIndex+1, len(st.Questions))
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	if q.loading {
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	}
	if !q.sess.State().HasQuestions() {
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "A-D", Description: "Answer"},
		{Key: "←→", Description: "Prev/Next"},
		{Key: "1-9", Description: "Jump"},
		{Key: "M", Description: "Mark"},
		{Key: "F", Description: "Finish"},
	}
}

// Back leaves the screen only when no quiz is running. Leaving drops any
// generation still in flight.
func (q *QuizScreen) Back() bool {
	if q.sess.State().HasQuestions() {
		return false
	}
	q.sess.ResetForNewTest()
	q.loading = false
	return true
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		if errors.Is(msg.Err, session.ErrStale) {
			return q, nil
		}
		q.loading = false
		if msg.Err == nil {
			q.sess.GoTo(0)
			q.syncOptions()
		}
		return q, nil

	case components.SpinnerTickMsg:
		if !q.loading {
			return q, nil
		}
		q.spinner.Advance()
		return q, q.spinner.Tick()

	case components.OptionChosenMsg:
		if cur, ok := q.sess.State().CurrentQuestion(); ok {
			q.sess.SelectAnswer(cur.ID, msg.ID)
		}
		return q, nil

	case tea.KeyMsg:
		return q.handleKey(msg)
	}
	return q, nil
}

func (q *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if q.loading {
		return q, nil
	}

	st := q.sess.State()
	key := msg.String()
	if !st.HasQuestions() {
		if key == "r" && st.LastError != "" {
			return q, q.start()
		}
		return q, nil
	}

	switch key {
	case "n", "right":
		q.sess.Next()
	case "p", "left":
		q.sess.Prev()
	case "m":
		if cur, ok := st.CurrentQuestion(); ok {
			q.sess.MarkForReview(cur.ID)
		}
		return q, nil
	case "f":
		next := report.New(q.sess)
		return q, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			q.sess.GoTo(int(key[0] - '1'))
			break
		}
		var cmd tea.Cmd
		q.options, cmd = q.options.Update(msg)
		return q, cmd
	}

	q.syncOptions()
	return q, nil
}

// syncOptions rebuilds the option list for the current question.
func (q *QuizScreen) syncOptions() {
	st := q.sess.State()
	cur, ok := st.CurrentQuestion()
	if !ok {
		q.options = components.OptionList{}
		return
	}
	choices := make([]components.Choice, len(cur.Options))
	for i, o := range cur.Options {
		choices[i] = components.Choice{ID: o.ID, Text: o.Text}
	}
	q.options = components.NewOptionList(choices, st.Answers[cur.ID])
}

func (q *QuizScreen) View(width, height int) string {
	st := q.sess.State()

	if q.loading {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, q.spinner.View())
	}

	if !st.HasQuestions() {
		msg := "No quiz loaded."
		if st.LastError != "" {
			msg = theme.ErrorText.Render("Could not start the quiz") + "\n\n" +
				theme.Body.Render(st.LastError) + "\n\n" +
				theme.Hint.Render("Press r to try again or Esc to change settings")
		}
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
	}

	cur, _ := st.CurrentQuestion()
	cw := min(width-8, 90)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s · %s", st.QuizConfig().EffectiveTopic(), st.Difficulty)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw).
		Render(fmt.Sprintf("%d. %s", st.CurrentIndex+1, cur.Question)))
	b.WriteString("\n\n")
	b.WriteString(q.options.View())

	if st.StatusOf(cur.ID) == session.StatusMarked {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.StatusMarked).Render("★ marked for review"))
	}

	statuses := make([]string, len(st.Questions))
	for i, qq := range st.Questions {
		statuses[i] = string(st.StatusOf(qq.ID))
	}
	b.WriteString("\n\n")
	b.WriteString(components.Palette{Statuses: statuses, Current: st.CurrentIndex}.View())
	b.WriteString("\n\n")
	b.WriteString(components.PaletteLegend())

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Card.Width(cw+6).Render(b.String()))
}
