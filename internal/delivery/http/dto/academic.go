package dto

import (
	"skill-insight/internal/domain/analytics"
	"skill-insight/internal/usecase"

	"github.com/google/uuid"
)

// Credits default to 3 when omitted.
type CourseRequest struct {
	CourseCode string   `json:"course_code" validate:"required,max=32"`
	CourseName string   `json:"course_name" validate:"max=200"`
	Credits    *float64 `json:"credits" validate:"omitempty,gte=0,lte=40"`
	Grade      string   `json:"grade" validate:"required,max=3"`
	Year       int      `json:"year" validate:"required"`
}

func (r CourseRequest) Input() usecase.CourseInput {
	return usecase.CourseInput{
		CourseCode: r.CourseCode,
		CourseName: r.CourseName,
		Credits:    r.Credits,
		Grade:      r.Grade,
		Year:       r.Year,
	}
}

type CourseResponse struct {
	ID         uuid.UUID       `json:"id"`
	CourseCode string          `json:"course_code"`
	CourseName string          `json:"course_name"`
	Credits    float64         `json:"credits"`
	Grade      analytics.Grade `json:"grade"`
	Year       int             `json:"year"`
}

type AcademicRecordResponse struct {
	LearnerID     uuid.UUID        `json:"learner_id"`
	CumulativeGPA float64          `json:"cumulative_gpa"`
	CurrentGPA    float64          `json:"current_gpa"`
	Courses       []CourseResponse `json:"courses"`
}

func NewAcademicRecordResponse(v usecase.AcademicRecordView) AcademicRecordResponse {
	courses := make([]CourseResponse, 0, len(v.Courses))
	for _, c := range v.Courses {
		courses = append(courses, CourseResponse{
			ID:         c.ID,
			CourseCode: c.CourseCode,
			CourseName: c.CourseName,
			Credits:    c.Credits,
			Grade:      c.Grade,
			Year:       c.Year,
		})
	}
	return AcademicRecordResponse{
		LearnerID:     v.LearnerID,
		CumulativeGPA: v.GPA.CumulativeGPA,
		CurrentGPA:    v.GPA.CurrentGPA,
		Courses:       courses,
	}
}
