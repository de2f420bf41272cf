package analytics

import (
	"time"

	"github.com/google/uuid"
)

type Learner struct {
	ID             uuid.UUID
	Specialization string
	CareerGoal     string
}

type SkillCatalogEntry struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Specialty string    `json:"specialty,omitempty"`
}

// Proficiency holds the level label and the 0-100 score. The two are set
// independently and never derived from each other.
type Proficiency struct {
	Level ProficiencyLevel `json:"level"`
	Score int              `json:"score"`
}

type Evidence struct {
	Type   string    `json:"type"`
	ItemID string    `json:"item_id"`
	Date   time.Time `json:"date"`
}

type Goal struct {
	TargetLevel ProficiencyLevel `json:"target_level"`
	TargetDate  *time.Time       `json:"target_date,omitempty"`
}

type SkillRecord struct {
	ID          uuid.UUID
	LearnerID   uuid.UUID
	SkillID     uuid.UUID
	Proficiency Proficiency
	Evidence    []Evidence
	Goal        *Goal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r SkillRecord) hasGoal() bool {
	return r.Goal != nil && normalizeLabel(string(r.Goal.TargetLevel)) != ""
}

// SkillWithCatalog is a skill record joined with the catalog entry it
// references.
type SkillWithCatalog struct {
	Record SkillRecord
	Skill  SkillCatalogEntry
}

type Grade string

type CourseEntry struct {
	ID         uuid.UUID
	CourseCode string
	CourseName string
	Credits    float64
	Grade      Grade
	Year       int
}

type GPA struct {
	CumulativeGPA float64 `json:"cumulative_gpa"`
	CurrentGPA    float64 `json:"current_gpa"`
}

type RequiredSkill struct {
	SkillID       uuid.UUID        `json:"skill_id"`
	RequiredLevel ProficiencyLevel `json:"required_level"`
}

type SalaryRange struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency,omitempty"`
}

type CareerPathEntry struct {
	ID             uuid.UUID       `json:"id"`
	Title          string          `json:"title"`
	Specialty      string          `json:"specialty"`
	SalaryRange    SalaryRange     `json:"salary_range"`
	RequiredSkills []RequiredSkill `json:"required_skills"`
}

type CourseCatalogEntry struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Specialty string    `json:"specialty"`
	Credits   float64   `json:"credits"`
}
