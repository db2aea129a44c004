package quizgen

import (
	"fmt"
	"strings"
)

const questionSystemPrompt = `You write multiple-choice quiz questions for learners.
Every question has exactly four options labelled A, B, C and D, and exactly one of them is correct.
Reply with JSON only: no markdown, no code fences, no commentary.`

const feedbackSystemPrompt = `You are an encouraging tutor reviewing a learner's quiz result.
Write plain text only, with no markdown, headings or lists.`

// questionPrompt builds the user prompt for a question batch.
func questionPrompt(cfg QuizConfig) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create exactly %d multiple-choice questions.\n", cfg.Count)
	fmt.Fprintf(&b, "Subject: %s\n", cfg.Subject)
	fmt.Fprintf(&b, "Topic: %s\n", cfg.EffectiveTopic())
	fmt.Fprintf(&b, "Difficulty: %s\n\n", cfg.Difficulty)

	b.WriteString("Return an object of this shape:\n")
	b.WriteString(`{
  "questions": [
    {
      "id": "q1",
      "question": "question text",
      "options": [
        {"id": "A", "text": "first option"},
        {"id": "B", "text": "second option"},
        {"id": "C", "text": "third option"},
        {"id": "D", "text": "fourth option"}
      ],
      "correctOptionId": "A"
    }
  ]
}`)
	b.WriteString("\n\nRules:\n")
	fmt.Fprintf(&b, "- The \"questions\" array holds exactly %d items.\n", cfg.Count)
	b.WriteString("- correctOptionId is the id of one of that question's options.\n")
	b.WriteString("- Do not repeat questions.\n")

	return b.String()
}

// retryNudge is appended after a malformed reply.
func retryNudge(reason string) string {
	return fmt.Sprintf("\n\nYour previous reply was rejected (%s). Reply again with only the JSON object.", reason)
}

// feedbackPrompt builds the user prompt for end-of-quiz feedback.
func feedbackPrompt(in FeedbackInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Learner: %s\n", in.Name)
	fmt.Fprintf(&b, "Subject: %s\n", in.Subject)
	fmt.Fprintf(&b, "Score: %d out of %d\n\n", in.Score, in.Total)
	b.WriteString("Write 3 to 5 friendly sentences of feedback addressed to the learner by name. ")
	b.WriteString("Mention the score, point out 1 or 2 strengths, ")
	b.WriteString("and suggest 1 or 2 things to improve in this subject.")

	return b.String()
}
