package dto

import (
	"skill-insight/internal/domain/analytics"
	"skill-insight/internal/usecase"

	"github.com/google/uuid"
)

type CreateSkillRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	Category  string `json:"category" validate:"max=100"`
	Specialty string `json:"specialty" validate:"max=100"`
}

type RequiredSkillRequest struct {
	SkillID uuid.UUID `json:"skill_id" validate:"required"`
	Level   string    `json:"level" validate:"required,max=32"`
}

func (r RequiredSkillRequest) Input() usecase.RequiredSkillInput {
	return usecase.RequiredSkillInput{SkillID: r.SkillID, Level: r.Level}
}

type CreateCareerPathRequest struct {
	Title          string                 `json:"title" validate:"required,max=200"`
	Specialty      string                 `json:"specialty" validate:"max=100"`
	SalaryMin      int                    `json:"salary_min" validate:"gte=0"`
	SalaryMax      int                    `json:"salary_max" validate:"gtefield=SalaryMin"`
	Currency       string                 `json:"currency" validate:"omitempty,len=3,alpha"`
	RequiredSkills []RequiredSkillRequest `json:"required_skills" validate:"dive"`
}

func (r CreateCareerPathRequest) Input() usecase.CreateCareerPathInput {
	skills := make([]usecase.RequiredSkillInput, 0, len(r.RequiredSkills))
	for _, s := range r.RequiredSkills {
		skills = append(skills, s.Input())
	}
	return usecase.CreateCareerPathInput{
		Title:     r.Title,
		Specialty: r.Specialty,
		SalaryRange: analytics.SalaryRange{
			Min:      r.SalaryMin,
			Max:      r.SalaryMax,
			Currency: r.Currency,
		},
		RequiredSkills: skills,
	}
}

type ReadinessResponse struct {
	CareerPath analytics.CareerPathEntry `json:"career_path"`
	Readiness  analytics.ReadinessReport `json:"readiness"`
}

func NewReadinessResponse(r usecase.CareerReadiness) ReadinessResponse {
	return ReadinessResponse{CareerPath: r.CareerPath, Readiness: r.Report}
}

func NewReadinessResponses(items []usecase.CareerReadiness) []ReadinessResponse {
	out := make([]ReadinessResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewReadinessResponse(it))
	}
	return out
}
