package interview

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/spigell/hh-interviewer/internal/ai"
)

//go:embed fallback.yaml
var defaultBankYAML []byte

// Bank is a fixed set of questions used when no provider questions are available.
type Bank struct {
	questions []Question
}

type bankFile struct {
	Questions []bankItem `yaml:"questions"`
}

type bankItem struct {
	Type          string      `yaml:"type"`
	Text          string      `yaml:"text"`
	Skill         string      `yaml:"skill"`
	Options       []string    `yaml:"options"`
	CorrectAnswer string      `yaml:"correct_answer"`
	Rubric        *bankRubric `yaml:"rubric"`
}

type bankRubric struct {
	Criteria []string  `yaml:"criteria"`
	Weights  []float64 `yaml:"weights"`
	Exemplar string    `yaml:"exemplar"`
}

// DefaultBank returns the built-in fallback bank.
func DefaultBank() *Bank {
	bank, err := ParseBank(defaultBankYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded fallback bank is invalid: %v", err))
	}
	return bank
}

// LoadBank reads a fallback bank from a YAML file. An empty path yields the built-in bank.
func LoadBank(path string) (*Bank, error) {
	if path == "" {
		return DefaultBank(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fallback bank: %w", err)
	}

	bank, err := ParseBank(data)
	if err != nil {
		return nil, fmt.Errorf("fallback bank %s: %w", path, err)
	}

	return bank, nil
}

// ParseBank decodes a YAML question bank. At least one valid question is required.
func ParseBank(data []byte) (*Bank, error) {
	var file bankFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	drafts := make([]ai.QuestionDraft, 0, len(file.Questions))
	for _, item := range file.Questions {
		d := ai.QuestionDraft{
			Type:          item.Type,
			Text:          item.Text,
			Skill:         item.Skill,
			Options:       item.Options,
			CorrectAnswer: item.CorrectAnswer,
		}
		if item.Rubric != nil {
			d.Rubric = &ai.RubricDraft{
				Criteria: item.Rubric.Criteria,
				Weights:  item.Rubric.Weights,
				Exemplar: item.Rubric.Exemplar,
			}
		}
		drafts = append(drafts, d)
	}

	questions := buildQuestions(drafts, 0)
	if len(questions) == 0 {
		return nil, errors.New("no questions with text")
	}

	return &Bank{questions: questions}, nil
}

// Questions returns up to limit questions with fresh ids.
func (b *Bank) Questions(limit int) []Question {
	n := len(b.questions)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]Question, n)
	copy(out, b.questions[:n])
	for i := range out {
		out[i].ID = i + 1
	}

	return out
}

// Len is the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.questions)
}
