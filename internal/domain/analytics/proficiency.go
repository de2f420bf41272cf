package analytics

import (
	"math"
	"strings"
)

type ProficiencyLevel string

const (
	LevelBeginner     ProficiencyLevel = "beginner"
	LevelIntermediate ProficiencyLevel = "intermediate"
	LevelAdvanced     ProficiencyLevel = "advanced"
	LevelExpert       ProficiencyLevel = "expert"
	LevelMaster       ProficiencyLevel = "master"
)

const (
	MinScore = 0
	MaxScore = 100
)

// proficiencyScale is the only level-to-ordinal table in the module. Every
// comparison between a learner level and a requirement goes through it.
var proficiencyScale = map[ProficiencyLevel]int{
	LevelBeginner:     1,
	LevelIntermediate: 2,
	LevelAdvanced:     3,
	LevelExpert:       4,
	LevelMaster:       5,
}

// Levels returns the scale in ascending order.
func Levels() []ProficiencyLevel {
	return []ProficiencyLevel{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert, LevelMaster}
}

// ProficiencyOrdinal maps a label to its ordinal, case-insensitively.
// Unknown or empty labels are "not attained" and map to 0.
func ProficiencyOrdinal(label ProficiencyLevel) int {
	return proficiencyScale[ProficiencyLevel(normalizeLabel(string(label)))]
}

// ParseProficiencyLevel normalises a label and rejects anything outside the
// scale.
func ParseProficiencyLevel(label string) (ProficiencyLevel, error) {
	lvl := ProficiencyLevel(normalizeLabel(label))
	if _, ok := proficiencyScale[lvl]; !ok {
		return "", invalid("proficiency level", "unknown level "+strings.TrimSpace(label))
	}
	return lvl, nil
}

func ClampScore(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

func sameLevel(a, b ProficiencyLevel) bool {
	return normalizeLabel(string(a)) == normalizeLabel(string(b))
}

func normalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
