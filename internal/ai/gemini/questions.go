package gemini

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/hh-interviewer/internal/ai"
	"github.com/spigell/hh-interviewer/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
}

//go:embed questions.md
var questionsPrompt string

const defaultMaxLogLength = 200

// QuestionSource asks Gemini for interview questions tailored to a resume.
type QuestionSource struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewQuestionSource(generator contentGenerator, maxLogLength int, logger *zap.Logger) *QuestionSource {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &QuestionSource{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (s *QuestionSource) GenerateQuestions(ctx context.Context, req ai.QuestionRequest) ([]ai.QuestionDraft, error) {
	system := buildQuestionsSystem(req)
	message := buildQuestionsMessage(req)

	s.logger.Debug("gemini questions request",
		zap.String("role", req.Role),
		zap.String("level", req.Level),
		zap.Int("message_length", utf8.RuneCountInString(message)),
		zap.String("message_preview", utils.TruncateForLog(message, s.maxLogLen)),
	)

	raw, err := s.generator.GenerateContent(ctx, system, message)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("gemini questions response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, s.maxLogLen)),
	)

	return parseQuestions(raw)
}

func buildQuestionsSystem(req ai.QuestionRequest) string {
	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = "Excel"
	}

	replacer := strings.NewReplacer(
		"{{SUBJECT}}", subject,
		"{{ROLE}}", strings.TrimSpace(req.Role),
		"{{LEVEL}}", strings.TrimSpace(req.Level),
	)
	return replacer.Replace(questionsPrompt)
}

func buildQuestionsMessage(req ai.QuestionRequest) string {
	var b strings.Builder
	b.WriteString("Resume text:\n")
	b.WriteString(req.ResumeText)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Matched resume skills: %s\n", strings.Join(req.MatchedSkills, ", "))
	fmt.Fprintf(&b, "Create up to %d questions.", req.MaxQuestions)
	return b.String()
}

func parseQuestions(raw string) ([]ai.QuestionDraft, error) {
	data, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	list, ok := data["questions"].([]any)
	if !ok {
		return nil, fmt.Errorf("parse gemini response: %q is missing or not a list", "questions")
	}

	drafts := make([]ai.QuestionDraft, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}

		draft := ai.QuestionDraft{
			Type:          coerceString(obj["type"]),
			Text:          coerceString(obj["text"]),
			Skill:         coerceString(obj["skill"]),
			Options:       coerceStrings(obj["options"]),
			CorrectAnswer: coerceString(obj["correct_answer"]),
		}

		if rubric, ok := obj["rubric"].(map[string]any); ok {
			draft.Rubric = &ai.RubricDraft{
				Criteria: coerceStrings(rubric["criteria"]),
				Weights:  coerceFloats(rubric["weights"]),
				Exemplar: coerceString(rubric["exemplar"]),
			}
		}

		drafts = append(drafts, draft)
	}

	return drafts, nil
}
