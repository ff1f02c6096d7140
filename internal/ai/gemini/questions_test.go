package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/spigell/hh-interviewer/internal/ai"
)

type stubGenerator struct {
	response    string
	err         error
	lastSystem  string
	lastMessage string
}

func (s *stubGenerator) GenerateContent(_ context.Context, system, message string) (string, error) {
	s.lastSystem = system
	s.lastMessage = message
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestQuestionSourceGenerateQuestions(t *testing.T) {
	stub := &stubGenerator{response: "```json\n" + `{"questions":[
		{"type":"multiple_choice","text":"Which function looks left?","skill":"lookup","options":["A) VLOOKUP","B) XLOOKUP"],"correct_answer":"B"},
		{"type":"open_ended","text":"Explain a pivot table.","skill":"pivot tables","rubric":{"criteria":["steps","clarity"],"weights":[0.7,"0.3"],"exemplar":"Insert > PivotTable"}},
		{"type":"open_ended","text":"","skill":"vba"},
		"garbage"
	]}` + "\n```"}

	source := NewQuestionSource(stub, 0, zap.NewNop())

	drafts, err := source.GenerateQuestions(context.Background(), ai.QuestionRequest{
		Subject:       "Excel",
		ResumeText:    "Excel analyst",
		Role:          "Analyst",
		Level:         "Senior",
		MatchedSkills: []string{"excel", "lookup"},
		MaxQuestions:  10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(drafts) != 3 {
		t.Fatalf("expected 3 drafts, got %d", len(drafts))
	}

	mcq := drafts[0]
	if mcq.Type != "multiple_choice" || mcq.CorrectAnswer != "B" || len(mcq.Options) != 2 {
		t.Fatalf("unexpected mcq draft: %+v", mcq)
	}

	open := drafts[1]
	if open.Rubric == nil {
		t.Fatal("expected rubric")
	}
	if len(open.Rubric.Weights) != 2 || open.Rubric.Weights[1] != 0.3 {
		t.Fatalf("unexpected weights: %v", open.Rubric.Weights)
	}
	if open.Rubric.Exemplar != "Insert > PivotTable" {
		t.Fatalf("unexpected exemplar: %q", open.Rubric.Exemplar)
	}

	if drafts[2].Text != "" {
		t.Fatalf("expected textless draft to be passed through for validation, got %q", drafts[2].Text)
	}

	if !strings.Contains(stub.lastSystem, "Excel interview questions for a Analyst at Senior level") {
		t.Fatalf("unexpected system prompt: %s", stub.lastSystem)
	}
	if !strings.Contains(stub.lastMessage, "Matched resume skills: excel, lookup") {
		t.Fatalf("unexpected message: %s", stub.lastMessage)
	}
	if !strings.Contains(stub.lastMessage, "Create up to 10 questions.") {
		t.Fatalf("unexpected message: %s", stub.lastMessage)
	}
}

func TestQuestionSourcePropagatesErrors(t *testing.T) {
	cases := []struct {
		name string
		stub *stubGenerator
	}{
		{name: "generator error", stub: &stubGenerator{err: errors.New("boom")}},
		{name: "not json", stub: &stubGenerator{response: "Sure! Here are some questions"}},
		{name: "missing questions", stub: &stubGenerator{response: `{"items":[]}`}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			source := NewQuestionSource(tc.stub, 0, nil)
			if _, err := source.GenerateQuestions(context.Background(), ai.QuestionRequest{}); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
