package analytics

import (
	"math"

	"github.com/google/uuid"
)

type RequirementResult struct {
	SkillID         uuid.UUID        `json:"skill_id"`
	RequiredLevel   ProficiencyLevel `json:"required_level"`
	CurrentLevel    ProficiencyLevel `json:"current_level"`
	RequiredOrdinal int              `json:"required_ordinal"`
	CurrentOrdinal  int              `json:"current_ordinal"`
	Held            bool             `json:"held"`
	Met             bool             `json:"met"`
}

type ReadinessReport struct {
	Score        int                 `json:"score"`
	MetCount     int                 `json:"met_count"`
	MissingCount int                 `json:"missing_count"`
	Requirements []RequirementResult `json:"requirements"`
}

// ScoreReadiness returns how well the learner's levels cover a career path's
// requirements, as a rounded percentage.
func ScoreReadiness(records []SkillRecord, required []RequiredSkill) (int, error) {
	rep, err := AssessReadiness(records, required)
	if err != nil {
		return 0, err
	}
	return rep.Score, nil
}

// AssessReadiness credits each requirement with min(learner, required) on
// the proficiency scale, so surplus on one skill never offsets a deficit on
// another. A learner without a record for a skill is treated as a beginner.
func AssessReadiness(records []SkillRecord, required []RequiredSkill) (ReadinessReport, error) {
	if len(required) == 0 {
		return ReadinessReport{Score: 100, Requirements: []RequirementResult{}}, nil
	}

	byID := make(map[uuid.UUID]SkillRecord, len(records))
	for i, r := range records {
		if r.SkillID == uuid.Nil {
			return ReadinessReport{}, invalidAt("records", i, "skill id is required")
		}
		byID[r.SkillID] = r
	}

	rep := ReadinessReport{Requirements: make([]RequirementResult, 0, len(required))}
	var totalRequired, met int

	for i, req := range required {
		if req.SkillID == uuid.Nil {
			return ReadinessReport{}, invalidAt("required_skills", i, "skill id is required")
		}

		res := RequirementResult{
			SkillID:         req.SkillID,
			RequiredLevel:   req.RequiredLevel,
			RequiredOrdinal: ProficiencyOrdinal(req.RequiredLevel),
			CurrentLevel:    LevelBeginner,
		}
		if rec, ok := byID[req.SkillID]; ok {
			res.Held = true
			res.CurrentLevel = rec.Proficiency.Level
		} else {
			rep.MissingCount++
		}
		res.CurrentOrdinal = ProficiencyOrdinal(res.CurrentLevel)
		res.Met = res.CurrentOrdinal >= res.RequiredOrdinal
		if res.Met {
			rep.MetCount++
		}

		totalRequired += res.RequiredOrdinal
		met += min(res.CurrentOrdinal, res.RequiredOrdinal)
		rep.Requirements = append(rep.Requirements, res)
	}

	if totalRequired > 0 {
		rep.Score = int(math.Round(100 * float64(met) / float64(totalRequired)))
	}
	return rep, nil
}
