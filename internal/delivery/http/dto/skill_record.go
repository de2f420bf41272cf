package dto

import (
	"time"

	"skill-insight/internal/domain/analytics"

	"github.com/google/uuid"
)

// Scores outside 0..100 are accepted and clamped, so they carry no range
// rule here.
type UpsertSkillRecordRequest struct {
	SkillID uuid.UUID `json:"skill_id" validate:"required"`
	Level   string    `json:"level" validate:"max=32"`
	Score   int       `json:"score"`
}

type UpdateProficiencyRequest struct {
	Level *string `json:"level" validate:"omitempty,max=32"`
	Score *int    `json:"score"`
}

type AddEvidenceRequest struct {
	Type   string     `json:"type" validate:"required,max=64"`
	ItemID string     `json:"item_id" validate:"max=128"`
	Date   *time.Time `json:"date"`
}

type SetGoalRequest struct {
	TargetLevel string     `json:"target_level" validate:"required,max=32"`
	TargetDate  *time.Time `json:"target_date"`
}

type SkillRecordResponse struct {
	ID        uuid.UUID                  `json:"id"`
	SkillID   uuid.UUID                  `json:"skill_id"`
	SkillName string                     `json:"skill_name"`
	Category  string                     `json:"category"`
	Specialty string                     `json:"specialty"`
	Level     analytics.ProficiencyLevel `json:"level"`
	Score     int                        `json:"score"`
	Evidence  []analytics.Evidence       `json:"evidence"`
	Goal      *analytics.Goal            `json:"goal"`
	CreatedAt time.Time                  `json:"created_at"`
	UpdatedAt time.Time                  `json:"updated_at"`
}

func NewSkillRecordResponse(it analytics.SkillWithCatalog) SkillRecordResponse {
	ev := it.Record.Evidence
	if ev == nil {
		ev = []analytics.Evidence{}
	}
	return SkillRecordResponse{
		ID:        it.Record.ID,
		SkillID:   it.Record.SkillID,
		SkillName: it.Skill.Name,
		Category:  it.Skill.Category,
		Specialty: it.Skill.Specialty,
		Level:     it.Record.Proficiency.Level,
		Score:     it.Record.Proficiency.Score,
		Evidence:  ev,
		Goal:      it.Record.Goal,
		CreatedAt: it.Record.CreatedAt,
		UpdatedAt: it.Record.UpdatedAt,
	}
}

func NewSkillRecordResponses(items []analytics.SkillWithCatalog) []SkillRecordResponse {
	out := make([]SkillRecordResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewSkillRecordResponse(it))
	}
	return out
}
