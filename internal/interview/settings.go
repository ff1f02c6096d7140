package interview

import (
	"errors"
	"fmt"
	"time"

	"github.com/spigell/hh-interviewer/internal/signals"
	"github.com/spigell/hh-interviewer/internal/skills"
)

// Settings holds every tunable of the interview engine.
// Zero values are replaced by defaults in ApplyDefaults.
type Settings struct {
	Subject        string   `mapstructure:"subject"`
	RequiredSkills []string `mapstructure:"required-skills"`
	// ScoredSkills extends RequiredSkills with the canonical tags that count
	// towards the required-skill score.
	ScoredSkills []string `mapstructure:"scored-skills"`

	MaxQuestions      int           `mapstructure:"max-questions"`
	QuestionTimeLimit time.Duration `mapstructure:"question-time-limit"`

	OverlapTopN         int     `mapstructure:"overlap-top-n"`
	SkillMatchThreshold float64 `mapstructure:"skill-match-threshold"`

	CheatingThreshold    float64 `mapstructure:"cheating-threshold"`
	ConfidenceMin        float64 `mapstructure:"confidence-min"`
	RequiredSkillPassMin float64 `mapstructure:"required-skill-pass-min"`
	SoftSkillPassMin     float64 `mapstructure:"soft-skill-pass-min"`
	CorrectThreshold     float64 `mapstructure:"correct-threshold"`

	DefaultConfidence float64 `mapstructure:"default-confidence"`
	TimeoutConfidence float64 `mapstructure:"timeout-confidence"`

	FallbackBankFile string `mapstructure:"fallback-bank-file"`

	Cheating   signals.Config  `mapstructure:"cheating"`
	SoftSkills SoftSkillConfig `mapstructure:"soft-skills"`
}

// SoftSkillConfig drives observation tagging and the soft-skill score.
type SoftSkillConfig struct {
	ConciseMaxChars       int     `mapstructure:"concise-max-chars"`
	StructuredMinSegments int     `mapstructure:"structured-min-segments"`
	StrongPoints          float64 `mapstructure:"strong-points"`
	WeakPoints            float64 `mapstructure:"weak-points"`
	DefaultScore          float64 `mapstructure:"default-score"`
}

// DefaultSettings returns the stock Excel interviewer configuration.
func DefaultSettings() Settings {
	return Settings{
		Subject: "Excel",
		RequiredSkills: []string{
			"excel", "formulas", "functions", "pivot tables", "charts",
			"data cleaning", "power query", "lookup", "index-match",
			"dynamic arrays", "vba", "macros", "goal seek", "solver",
		},
		ScoredSkills: []string{
			"lookup", "pivot tables", "dynamic arrays", "power query", "vba",
			"solver", "data cleaning", "formulas", "functions", "charts",
		},
		MaxQuestions:         10,
		QuestionTimeLimit:    120 * time.Second,
		OverlapTopN:          skills.DefaultTopN,
		SkillMatchThreshold:  7.0,
		CheatingThreshold:    0.75,
		ConfidenceMin:        0.4,
		RequiredSkillPassMin: 6.5,
		SoftSkillPassMin:     5.5,
		CorrectThreshold:     0.6,
		DefaultConfidence:    0.6,
		TimeoutConfidence:    0.5,
		Cheating:             signals.DefaultConfig(),
		SoftSkills: SoftSkillConfig{
			ConciseMaxChars:       6,
			StructuredMinSegments: 3,
			StrongPoints:          1.0,
			WeakPoints:            0.5,
			DefaultScore:          6.0,
		},
	}
}

// ApplyDefaults fills every zero-valued field from DefaultSettings.
func (s *Settings) ApplyDefaults() {
	d := DefaultSettings()

	setString(&s.Subject, d.Subject)
	if len(s.RequiredSkills) == 0 {
		s.RequiredSkills = d.RequiredSkills
	}
	if len(s.ScoredSkills) == 0 {
		s.ScoredSkills = d.ScoredSkills
	}
	setInt(&s.MaxQuestions, d.MaxQuestions)
	if s.QuestionTimeLimit == 0 {
		s.QuestionTimeLimit = d.QuestionTimeLimit
	}
	setInt(&s.OverlapTopN, d.OverlapTopN)
	setFloat(&s.SkillMatchThreshold, d.SkillMatchThreshold)
	setFloat(&s.CheatingThreshold, d.CheatingThreshold)
	setFloat(&s.ConfidenceMin, d.ConfidenceMin)
	setFloat(&s.RequiredSkillPassMin, d.RequiredSkillPassMin)
	setFloat(&s.SoftSkillPassMin, d.SoftSkillPassMin)
	setFloat(&s.CorrectThreshold, d.CorrectThreshold)
	setFloat(&s.DefaultConfidence, d.DefaultConfidence)
	setFloat(&s.TimeoutConfidence, d.TimeoutConfidence)

	c, dc := &s.Cheating, d.Cheating
	setInt(&c.LongAnswerChars, dc.LongAnswerChars)
	setFloat(&c.LongAnswerDelta, dc.LongAnswerDelta)
	setFloat(&c.LinkDelta, dc.LinkDelta)
	setInt(&c.NewlineLimit, dc.NewlineLimit)
	setFloat(&c.NewlineDelta, dc.NewlineDelta)
	setFloat(&c.LowConfidence, dc.LowConfidence)
	setInt(&c.LowConfidenceChars, dc.LowConfidenceChars)
	setFloat(&c.LowConfidenceDelta, dc.LowConfidenceDelta)

	ss, ds := &s.SoftSkills, d.SoftSkills
	setInt(&ss.ConciseMaxChars, ds.ConciseMaxChars)
	setInt(&ss.StructuredMinSegments, ds.StructuredMinSegments)
	setFloat(&ss.StrongPoints, ds.StrongPoints)
	setFloat(&ss.WeakPoints, ds.WeakPoints)
	setFloat(&ss.DefaultScore, ds.DefaultScore)
}

// Validate checks ranges of limits and thresholds.
func (s Settings) Validate() error {
	var errs []error

	if len(s.RequiredSkills) == 0 {
		errs = append(errs, errors.New("required-skills must not be empty"))
	}
	if s.MaxQuestions <= 0 {
		errs = append(errs, fmt.Errorf("max-questions must be positive, got %d", s.MaxQuestions))
	}
	if s.QuestionTimeLimit <= 0 {
		errs = append(errs, fmt.Errorf("question-time-limit must be positive, got %s", s.QuestionTimeLimit))
	}
	if s.OverlapTopN <= 0 {
		errs = append(errs, fmt.Errorf("overlap-top-n must be positive, got %d", s.OverlapTopN))
	}

	for name, v := range map[string]float64{
		"skill-match-threshold":     s.SkillMatchThreshold,
		"required-skill-pass-min":   s.RequiredSkillPassMin,
		"soft-skill-pass-min":       s.SoftSkillPassMin,
		"soft-skills.default-score": s.SoftSkills.DefaultScore,
	} {
		if v < 0 || v > 10 {
			errs = append(errs, fmt.Errorf("%s must be within [0, 10], got %v", name, v))
		}
	}

	for name, v := range map[string]float64{
		"cheating-threshold": s.CheatingThreshold,
		"confidence-min":     s.ConfidenceMin,
		"correct-threshold":  s.CorrectThreshold,
		"default-confidence": s.DefaultConfidence,
		"timeout-confidence": s.TimeoutConfidence,
	} {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0, 1], got %v", name, v))
		}
	}

	if s.SoftSkills.ConciseMaxChars < 0 || s.SoftSkills.StructuredMinSegments < 0 {
		errs = append(errs, errors.New("soft-skills limits must not be negative"))
	}
	if s.SoftSkills.StrongPoints < 0 || s.SoftSkills.WeakPoints < 0 {
		errs = append(errs, errors.New("soft-skills points must not be negative"))
	}

	if err := s.Cheating.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// TimeLimitSeconds is the per-question limit in whole seconds, as reported to callers.
func (s Settings) TimeLimitSeconds() int {
	return int(s.QuestionTimeLimit / time.Second)
}

func setString(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

func setInt(dst *int, def int) {
	if *dst == 0 {
		*dst = def
	}
}

func setFloat(dst *float64, def float64) {
	if *dst == 0 {
		*dst = def
	}
}
