package gemini

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/hh-interviewer/internal/ai"
	"github.com/spigell/hh-interviewer/internal/utils"
)

//go:embed grading.md
var gradingPrompt string

// RubricGrader asks Gemini to grade open answers against a rubric.
type RubricGrader struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewRubricGrader(generator contentGenerator, maxLogLength int, logger *zap.Logger) *RubricGrader {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RubricGrader{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (g *RubricGrader) GradeAnswer(ctx context.Context, req ai.GradeRequest) (*ai.Grade, error) {
	message := buildGradingMessage(req)

	g.logger.Debug("gemini grading request",
		zap.Int("answer_length", utf8.RuneCountInString(req.Answer)),
		zap.String("message_preview", utils.TruncateForLog(message, g.maxLogLen)),
	)

	raw, err := g.generator.GenerateContent(ctx, gradingPrompt, message)
	if err != nil {
		return nil, err
	}

	g.logger.Debug("gemini grading response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, g.maxLogLen)),
	)

	grade, err := parseGrade(raw)
	if err != nil {
		return nil, err
	}

	grade.Raw = raw
	return grade, nil
}

func buildGradingMessage(req ai.GradeRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n", req.Question)
	fmt.Fprintf(&b, "Rubric criteria: %s\n", strings.Join(req.Criteria, ", "))
	fmt.Fprintf(&b, "Rubric weights: %v\n", req.Weights)
	fmt.Fprintf(&b, "Exemplar: %s\n", req.Exemplar)
	fmt.Fprintf(&b, "Candidate answer: %s", req.Answer)
	return b.String()
}

// parseGrade requires both "scores" and "total"; anything less is an incomplete result.
func parseGrade(raw string) (*ai.Grade, error) {
	data, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	for _, key := range []string{"scores", "total"} {
		if _, ok := data[key]; !ok {
			return nil, fmt.Errorf("incomplete grading response: missing %q", key)
		}
	}

	scores := coerceFloats(data["scores"])
	if scores == nil {
		return nil, fmt.Errorf("incomplete grading response: %q is not a list", "scores")
	}

	total := coerceFloat(data["total"])
	if math.IsNaN(total) {
		return nil, fmt.Errorf("incomplete grading response: %q is not a number", "total")
	}

	grade := &ai.Grade{
		Scores:   scores,
		Total:    total,
		Comments: coerceString(data["comments"]),
	}

	if c := coerceFloat(data["confidence"]); !math.IsNaN(c) {
		grade.Confidence = &c
	}

	return grade, nil
}
