package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzy/internal/ui/theme"
)

// Choice is one answer option shown in an OptionList.
type Choice struct {
	ID   string
	Text string
}

// OptionChosenMsg is emitted when the learner picks an option.
type OptionChosenMsg struct {
	ID string
}

// OptionList is a single-choice answer selector. Chosen is the option
// currently recorded as the answer; the cursor moves independently of it.
type OptionList struct {
	Choices []Choice
	Cursor  int
	Chosen  string
}

// NewOptionList creates a selector with the cursor on the chosen option,
// or on the first one when nothing is chosen yet.
func NewOptionList(choices []Choice, chosen string) OptionList {
	o := OptionList{Choices: choices, Chosen: chosen}
	for i, c := range choices {
		if c.ID == chosen {
			o.Cursor = i
		}
	}
	return o
}

// Update handles up/down/j/k movement, letter shortcuts and enter.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(o.Choices) == 0 {
		return o, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if o.Cursor > 0 {
			o.Cursor--
		}
		return o, nil
	case "down", "j":
		if o.Cursor < len(o.Choices)-1 {
			o.Cursor++
		}
		return o, nil
	case "enter", "space":
		return o.choose(o.Cursor)
	}

	if len(key) == 1 {
		idx := int(strings.ToLower(key)[0]) - 'a'
		if idx >= 0 && idx < len(o.Choices) {
			return o.choose(idx)
		}
	}
	return o, nil
}

func (o OptionList) choose(idx int) (OptionList, tea.Cmd) {
	o.Cursor = idx
	o.Chosen = o.Choices[idx].ID
	id := o.Chosen
	return o, func() tea.Msg { return OptionChosenMsg{ID: id} }
}

// View renders the options, one per line.
func (o OptionList) View() string {
	var b strings.Builder
	for i, c := range o.Choices {
		prefix := "  "
		if i == o.Cursor {
			prefix = "▸ "
		}
		mark := "( )"
		if c.ID == o.Chosen {
			mark = "(•)"
		}

		line := fmt.Sprintf("%s%s %c)  %s", prefix, mark, 'A'+rune(i), c.Text)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case c.ID == o.Chosen:
			style = style.Foreground(theme.Success).Bold(true)
		case i == o.Cursor:
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
