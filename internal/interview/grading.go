package interview

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/hh-interviewer/internal/logger"
)

const (
	feedbackCorrect  = "Correct."
	feedbackTimedOut = "Skipped due to time limit."
	feedbackGated    = "Interview gated due to low skill overlap. Session ended."
	feedbackFinished = "Interview already completed."
)

// grade scores a submission for q and returns the answer record with the
// soft-skill observation it produced, if any.
func (s *Service) grade(ctx context.Context, sessionID string, q Question, text string, timedOut bool) (Answer, string) {
	a := Answer{
		QuestionID: q.ID,
		Type:       q.Type(),
		Skill:      q.Skill,
	}

	if timedOut {
		a.Feedback = feedbackTimedOut
		a.Confidence = s.settings.TimeoutConfidence
		a.TimedOut = true
		return a, ""
	}

	a.Text = text
	screen := s.detector.Screen(text)

	var observation string
	switch f := q.Format.(type) {
	case *MultipleChoice:
		a.Correct = matchesChoice(text, f.CorrectAnswer)
		if a.Correct {
			a.Score = 1
			a.Feedback = feedbackCorrect
		} else {
			a.Feedback = fmt.Sprintf("Incorrect. Correct answer is %s.", strings.ToUpper(f.CorrectAnswer))
		}
		a.Confidence = s.settings.DefaultConfidence
		observation = s.choiceObservation(text)

	case *OpenEnded:
		outcome := s.gradeOpen(ctx, q, f.Rubric, text)
		if outcome.Fallback {
			s.logger.Warn("grader unavailable, using neutral grade",
				append(logger.QuestionFields(sessionID, q.ID), zap.Error(outcome.Err))...)
		}

		a.GraderFallback = outcome.Fallback
		a.Score = clamp01(outcome.Grade.Total)
		a.Correct = a.Score >= s.settings.CorrectThreshold
		a.Feedback = outcome.Grade.Comments
		a.Confidence = s.settings.DefaultConfidence
		if outcome.Grade.Confidence != nil {
			a.Confidence = clamp01(*outcome.Grade.Confidence)
		}

		screen.Add(s.detector.Graded(text, a.Confidence))
		observation = s.explanationObservation(text)
	}

	a.CheatingDelta = screen.Delta
	a.Signals = screen.Names()
	if len(a.Signals) == 0 {
		a.Signals = nil
	}

	return a, observation
}

// matchesChoice compares the first letters of the answer and the label, ignoring case.
func matchesChoice(answer, correct string) bool {
	got := firstRune(answer)
	want := firstRune(correct)
	return got != "" && got == want
}

func firstRune(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(s)
	return string(r)
}

func (s *Service) choiceObservation(answer string) string {
	if utf8.RuneCountInString(answer) < s.settings.SoftSkills.ConciseMaxChars {
		return ObservationConcise
	}
	return ObservationVerbose
}

func (s *Service) explanationObservation(answer string) string {
	if len(strings.Split(answer, ".")) >= s.settings.SoftSkills.StructuredMinSegments {
		return ObservationStructured
	}
	return ObservationBrief
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
