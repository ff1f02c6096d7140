package interview

import (
	"math"
	"strings"

	"github.com/spigell/hh-interviewer/internal/skills"
	"github.com/spigell/hh-interviewer/internal/utils"
)

// Observation tags recorded per answer and consumed by the soft-skill score.
const (
	ObservationConcise    = "Concise on MCQ"
	ObservationVerbose    = "Verbose on MCQ"
	ObservationStructured = "Structured explanation"
	ObservationBrief      = "Brief explanation"
)

// Gates reports each pass condition separately.
type Gates struct {
	RequiredSkills bool `json:"required_skills"`
	SoftSkills     bool `json:"soft_skills"`
	Confidence     bool `json:"confidence"`
	Cheating       bool `json:"cheating"`
}

// Evaluation is the aggregate verdict over a Record.
type Evaluation struct {
	RequiredSkillScore float64 `json:"required_skill_score_10"`
	SoftSkillScore     float64 `json:"soft_skills_score_10"`
	ConfidenceScore    float64 `json:"confidence_score_10"`
	MeanConfidence     float64 `json:"mean_confidence"`
	CheatingScore      float64 `json:"cheating_score_0_1"`
	Gates              Gates   `json:"gates"`
	Passed             bool    `json:"passed"`
}

// Evaluate computes the aggregate ratings and the pass decision. It does not modify rec.
func Evaluate(rec Record, settings Settings) Evaluation {
	mean := meanConfidence(rec.Answers, settings.DefaultConfidence)
	cheating := math.Min(1, sum(rec.CheatingSignals))

	ev := Evaluation{
		RequiredSkillScore: requiredSkillScore(rec.Answers, scoredSkillSet(settings)),
		SoftSkillScore:     softSkillScore(rec.Observations, settings.SoftSkills),
		ConfidenceScore:    utils.Round2(mean * 10),
		MeanConfidence:     utils.Round2(mean),
		CheatingScore:      utils.Round2(cheating),
	}

	ev.Gates = Gates{
		RequiredSkills: ev.RequiredSkillScore >= settings.RequiredSkillPassMin,
		SoftSkills:     ev.SoftSkillScore >= settings.SoftSkillPassMin,
		Confidence:     mean >= settings.ConfidenceMin,
		Cheating:       cheating <= settings.CheatingThreshold,
	}
	ev.Passed = ev.Gates.RequiredSkills && ev.Gates.SoftSkills && ev.Gates.Confidence && ev.Gates.Cheating

	return ev
}

// scoredSkillSet is the union of the normalized required and scored skill tags.
func scoredSkillSet(settings Settings) map[string]struct{} {
	set := make(map[string]struct{}, len(settings.RequiredSkills)+len(settings.ScoredSkills))
	for _, list := range [][]string{settings.RequiredSkills, settings.ScoredSkills} {
		for _, s := range list {
			if tag := normalizeSkill(s); tag != "" {
				set[tag] = struct{}{}
			}
		}
	}
	return set
}

func normalizeSkill(s string) string {
	return strings.TrimSpace(skills.Normalize(s))
}

// requiredSkillScore averages, over the scored tags that were asked, the mean
// answer score per tag, scaled to 0..10.
func requiredSkillScore(answers []Answer, scored map[string]struct{}) float64 {
	type bucket struct {
		sum   float64
		count int
	}

	buckets := make(map[string]*bucket)
	for _, a := range answers {
		tag := normalizeSkill(a.Skill)
		if _, ok := scored[tag]; !ok {
			continue
		}
		b, ok := buckets[tag]
		if !ok {
			b = &bucket{}
			buckets[tag] = b
		}
		b.sum += a.Score
		b.count++
	}

	if len(buckets) == 0 {
		return 0
	}

	var total float64
	for _, b := range buckets {
		total += b.sum / float64(b.count)
	}

	return utils.Round2(total / float64(len(buckets)) * 10)
}

func softSkillScore(observations []string, cfg SoftSkillConfig) float64 {
	if len(observations) == 0 {
		return cfg.DefaultScore
	}

	var points float64
	for _, o := range observations {
		switch {
		case strings.Contains(o, "Structured"), strings.Contains(o, "Concise"):
			points += cfg.StrongPoints
		case strings.Contains(o, "Verbose"), strings.Contains(o, "Brief"):
			points += cfg.WeakPoints
		}
	}

	return utils.Round2(math.Min(10, points/float64(len(observations))*10))
}

func meanConfidence(answers []Answer, def float64) float64 {
	if len(answers) == 0 {
		return def
	}

	var total float64
	for _, a := range answers {
		total += a.Confidence
	}

	return total / float64(len(answers))
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
