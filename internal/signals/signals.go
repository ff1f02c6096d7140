// Package signals scores answers for patterns that suggest the candidate did not write them.
// Rules are evaluated in two phases: screening rules look at the raw answer before grading,
// graded rules also see the grader's confidence.
package signals

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Input is the material a rule inspects.
type Input struct {
	Answer     string
	Confidence float64
}

// Rule contributes a cheating delta for a single answer.
type Rule interface {
	Name() string
	Delta(in Input) float64
}

// Hit records a rule that fired.
type Hit struct {
	Rule  string
	Delta float64
}

// Result is the outcome of running a set of rules. Deltas are additive and not capped here.
type Result struct {
	Delta float64
	Hits  []Hit
}

// Add merges another result into r.
func (r *Result) Add(other Result) {
	r.Delta += other.Delta
	r.Hits = append(r.Hits, other.Hits...)
}

// Names lists the rules that fired.
func (r Result) Names() []string {
	names := make([]string, 0, len(r.Hits))
	for _, h := range r.Hits {
		names = append(names, h.Rule)
	}
	return names
}

// Config holds the heuristic limits and deltas.
type Config struct {
	LongAnswerChars    int     `mapstructure:"long-answer-chars"`
	LongAnswerDelta    float64 `mapstructure:"long-answer-delta"`
	LinkDelta          float64 `mapstructure:"link-delta"`
	NewlineLimit       int     `mapstructure:"newline-limit"`
	NewlineDelta       float64 `mapstructure:"newline-delta"`
	LowConfidence      float64 `mapstructure:"low-confidence"`
	LowConfidenceChars int     `mapstructure:"low-confidence-chars"`
	LowConfidenceDelta float64 `mapstructure:"low-confidence-delta"`
}

// DefaultConfig returns the stock heuristics.
func DefaultConfig() Config {
	return Config{
		LongAnswerChars:    1200,
		LongAnswerDelta:    0.2,
		LinkDelta:          0.2,
		NewlineLimit:       30,
		NewlineDelta:       0.1,
		LowConfidence:      0.4,
		LowConfidenceChars: 800,
		LowConfidenceDelta: 0.2,
	}
}

// Validate rejects negative limits and deltas.
func (c Config) Validate() error {
	if c.LongAnswerChars < 0 || c.NewlineLimit < 0 || c.LowConfidenceChars < 0 {
		return fmt.Errorf("cheating heuristic limits must not be negative")
	}
	if c.LongAnswerDelta < 0 || c.LinkDelta < 0 || c.NewlineDelta < 0 || c.LowConfidenceDelta < 0 {
		return fmt.Errorf("cheating heuristic deltas must not be negative")
	}
	if c.LowConfidence < 0 || c.LowConfidence > 1 {
		return fmt.Errorf("low-confidence must be within [0, 1], got %v", c.LowConfidence)
	}
	return nil
}

// Detector runs the screening and graded rule sets.
type Detector struct {
	screening []Rule
	graded    []Rule
}

// New builds a Detector from cfg.
func New(cfg Config) *Detector {
	return &Detector{
		screening: []Rule{
			longAnswer{limit: cfg.LongAnswerChars, delta: cfg.LongAnswerDelta},
			externalLink{delta: cfg.LinkDelta},
			manyLines{limit: cfg.NewlineLimit, delta: cfg.NewlineDelta},
		},
		graded: []Rule{
			unsureVerbose{confidence: cfg.LowConfidence, limit: cfg.LowConfidenceChars, delta: cfg.LowConfidenceDelta},
		},
	}
}

// Screen runs the rules that need only the answer text.
func (d *Detector) Screen(answer string) Result {
	return run(d.screening, Input{Answer: answer})
}

// Graded runs the rules that also depend on the grader's confidence.
func (d *Detector) Graded(answer string, confidence float64) Result {
	return run(d.graded, Input{Answer: answer, Confidence: confidence})
}

// Rules lists every rule name, screening rules first.
func (d *Detector) Rules() []string {
	names := make([]string, 0, len(d.screening)+len(d.graded))
	for _, r := range append(append([]Rule{}, d.screening...), d.graded...) {
		names = append(names, r.Name())
	}
	return names
}

func run(rules []Rule, in Input) Result {
	var res Result
	for _, rule := range rules {
		delta := rule.Delta(in)
		if delta == 0 {
			continue
		}
		res.Delta += delta
		res.Hits = append(res.Hits, Hit{Rule: rule.Name(), Delta: delta})
	}
	return res
}

type longAnswer struct {
	limit int
	delta float64
}

func (r longAnswer) Name() string { return "long_answer" }

func (r longAnswer) Delta(in Input) float64 {
	if utf8.RuneCountInString(in.Answer) > r.limit {
		return r.delta
	}
	return 0
}

type externalLink struct {
	delta float64
}

func (r externalLink) Name() string { return "external_link" }

func (r externalLink) Delta(in Input) float64 {
	if strings.Contains(in.Answer, "http://") || strings.Contains(in.Answer, "https://") {
		return r.delta
	}
	return 0
}

type manyLines struct {
	limit int
	delta float64
}

func (r manyLines) Name() string { return "many_lines" }

func (r manyLines) Delta(in Input) float64 {
	if strings.Count(in.Answer, "\n") > r.limit {
		return r.delta
	}
	return 0
}

// unsureVerbose flags long answers the grader was not confident about.
type unsureVerbose struct {
	confidence float64
	limit      int
	delta      float64
}

func (r unsureVerbose) Name() string { return "unsure_verbose" }

func (r unsureVerbose) Delta(in Input) float64 {
	if in.Confidence < r.confidence && utf8.RuneCountInString(in.Answer) > r.limit {
		return r.delta
	}
	return 0
}
