package skills

import (
	"strings"

	"github.com/spigell/hh-interviewer/internal/utils"
)

// DefaultTopN caps the denominator of the overlap score.
const DefaultTopN = 10

// Overlap describes how many required skills a resume covers.
type Overlap struct {
	Count   int      `json:"overlap"`
	Score   float64  `json:"score_10"`
	Matched []string `json:"matched"`
}

// ScoreOverlap intersects the resume skills with the required ones and scales
// the match count to 0..10 against min(topN, len(required)).
func ScoreOverlap(resumeSkills, required []string, topN int) Overlap {
	if topN <= 0 {
		topN = DefaultTopN
	}

	have := make(map[string]struct{}, len(resumeSkills))
	for _, s := range resumeSkills {
		have[normalizeTag(s)] = struct{}{}
	}

	want := make(map[string]struct{}, len(required))
	for _, r := range required {
		want[normalizeTag(r)] = struct{}{}
	}

	matchedSet := make(map[string]struct{})
	for tag := range want {
		if _, ok := have[tag]; ok {
			matchedSet[tag] = struct{}{}
		}
	}
	matched := sortedKeys(matchedSet)

	denom := min(topN, len(want))
	if denom < 1 {
		denom = 1
	}

	return Overlap{
		Count:   len(matched),
		Score:   utils.Round2(float64(len(matched)) / float64(denom) * 10),
		Matched: matched,
	}
}

func normalizeTag(s string) string {
	return strings.TrimSpace(Normalize(s))
}
