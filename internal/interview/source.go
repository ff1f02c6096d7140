package interview

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/hh-interviewer/internal/ai"
	"github.com/spigell/hh-interviewer/internal/logger"
)

var (
	errNoGenerator = errors.New("question generator is not configured")
	errNoQuestions = errors.New("question generator returned no usable questions")
	errNoGrader    = errors.New("grader is not configured")
	errIncomplete  = errors.New("grader returned an incomplete result")
)

// Neutral grade reported for answers the grader could not assess.
const (
	fallbackComment         = "Grader unavailable."
	fallbackGradeConfidence = 0.5
)

// QuestionSet is the outcome of asking the generator for questions.
// When Fallback is set, Questions come from the bank and Err tells why.
type QuestionSet struct {
	Questions []Question
	Fallback  bool
	Err       error
}

// GradeOutcome is the outcome of asking the grader about an open answer.
// When Fallback is set, Grade holds the neutral zero grade and Err tells why.
type GradeOutcome struct {
	Grade    ai.Grade
	Fallback bool
	Err      error
}

func (s *Service) questionSet(ctx context.Context, req ai.QuestionRequest) QuestionSet {
	if s.questions == nil {
		return s.fallbackQuestions(errNoGenerator)
	}

	drafts, err := callGenerator(ctx, s.questions, req)
	if err != nil {
		return s.fallbackQuestions(err)
	}

	questions := buildQuestions(drafts, s.settings.MaxQuestions)
	if len(questions) == 0 {
		return s.fallbackQuestions(errNoQuestions)
	}

	return QuestionSet{Questions: questions}
}

func (s *Service) fallbackQuestions(err error) QuestionSet {
	return QuestionSet{
		Questions: s.bank.Questions(s.settings.MaxQuestions),
		Fallback:  true,
		Err:       err,
	}
}

func (s *Service) gradeOpen(ctx context.Context, q Question, rubric Rubric, answer string) GradeOutcome {
	if s.grader == nil {
		return fallbackGrade(rubric, errNoGrader)
	}

	grade, err := callGrader(ctx, s.grader, ai.GradeRequest{
		Question: q.Text,
		Criteria: rubric.Criteria,
		Weights:  rubric.Weights,
		Exemplar: rubric.Exemplar,
		Answer:   answer,
	})
	if err != nil {
		return fallbackGrade(rubric, err)
	}
	if grade == nil {
		return fallbackGrade(rubric, errIncomplete)
	}

	return GradeOutcome{Grade: *grade}
}

func fallbackGrade(rubric Rubric, err error) GradeOutcome {
	confidence := fallbackGradeConfidence
	return GradeOutcome{
		Grade: ai.Grade{
			Scores:     make([]float64, len(rubric.Criteria)),
			Comments:   fallbackComment,
			Confidence: &confidence,
		},
		Fallback: true,
		Err:      err,
	}
}

// callGenerator converts a provider panic into an error so a session always gets questions.
func callGenerator(ctx context.Context, g ai.QuestionGenerator, req ai.QuestionRequest) (drafts []ai.QuestionDraft, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("question generator panicked: %v", r)
		}
	}()
	return g.GenerateQuestions(ctx, req)
}

// callGrader converts a provider panic into an error so grading always yields a result.
func callGrader(ctx context.Context, g ai.Grader, req ai.GradeRequest) (grade *ai.Grade, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("grader panicked: %v", r)
		}
	}()
	return g.GradeAnswer(ctx, req)
}

func (s *Service) logQuestionFallback(sessionID string, set QuestionSet) {
	s.logger.Warn("using fallback question bank",
		zap.String(logger.FieldSession, sessionID),
		zap.Int("questions", len(set.Questions)),
		zap.Error(set.Err),
	)
}
