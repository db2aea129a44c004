package session

import "github.com/abhisek/quizzy/internal/quizgen"

// Summary is the score of a finished quiz.
type Summary struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
	Skipped   int `json:"skipped"`
}

// Total returns the number of scored questions.
func (s Summary) Total() int {
	return s.Correct + s.Incorrect + s.Skipped
}

// Percent returns the share of correct answers in [0, 100].
func (s Summary) Percent() int {
	if s.Total() == 0 {
		return 0
	}
	return s.Correct * 100 / s.Total()
}

// ComputeSummary scores answers against questions. A question with no
// answer is skipped. Review marks are not considered.
func ComputeSummary(questions []quizgen.Question, answers map[string]string) Summary {
	var sum Summary
	for _, q := range questions {
		ans, ok := answers[q.ID]
		switch {
		case !ok || ans == "":
			sum.Skipped++
		case ans == q.CorrectOptionID:
			sum.Correct++
		default:
			sum.Incorrect++
		}
	}
	return sum
}
