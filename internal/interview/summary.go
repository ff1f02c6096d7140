package interview

import (
	"fmt"
	"strings"

	"github.com/spigell/hh-interviewer/internal/utils"
)

const (
	recommendationPass = "Recommendation: Candidate meets requirements; proceed to next stage."
	recommendationFail = "Recommendation: Focus on interviewer-required areas and provide clearer, " +
		"structured reasoning on open-ended tasks. Reduce reliance on external references and keep answers concise."

	strongAnswerScore = 0.6
)

// SummaryInput is what the report renders besides the evaluation.
type SummaryInput struct {
	CandidateName string
	QuestionCount int
	Answers       []Answer
}

func summaryInput(sess *Session) SummaryInput {
	return SummaryInput{
		CandidateName: sess.CandidateName,
		QuestionCount: len(sess.Questions),
		Answers:       sess.Answers,
	}
}

// Summary renders the human-readable interview report.
func Summary(in SummaryInput, ev Evaluation) string {
	strong := 0
	for _, a := range in.Answers {
		if a.Score >= strongAnswerScore {
			strong++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Interview Summary for %s\n\n", in.CandidateName)
	fmt.Fprintf(&b, "Questions answered: %d/%d\n", len(in.Answers), in.QuestionCount)
	fmt.Fprintf(&b, "Approx. correct/strong answers: %d/%d\n\n", strong, in.QuestionCount)

	b.WriteString("Per-question feedback:\n")
	for _, a := range in.Answers {
		timeout := ""
		if a.TimedOut {
			timeout = " (timeout)"
		}
		fmt.Fprintf(&b, "- Q%d [%s]: score=%s%s | %s\n", a.QuestionID, a.Skill, utils.FormatScore(a.Score), timeout, a.Feedback)
	}

	b.WriteString("\nAggregate ratings (out of 10 unless noted):\n")
	fmt.Fprintf(&b, "- Required skills: %s\n", utils.FormatScore(ev.RequiredSkillScore))
	fmt.Fprintf(&b, "- Soft skills: %s\n", utils.FormatScore(ev.SoftSkillScore))
	fmt.Fprintf(&b, "- Confidence: %s\n", utils.FormatScore(ev.ConfidenceScore))
	fmt.Fprintf(&b, "- Cheating indicator (0..1, lower is better): %s\n\n", utils.FormatScore(ev.CheatingScore))

	decision, recommendation := "FAIL", recommendationFail
	if ev.Passed {
		decision, recommendation = "PASS", recommendationPass
	}
	fmt.Fprintf(&b, "Final decision: %s\n\n", decision)
	b.WriteString(recommendation)

	return b.String()
}
