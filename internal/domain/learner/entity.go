package learner

import (
	"time"

	"skill-insight/internal/domain/analytics"

	"github.com/google/uuid"
)

type Learner struct {
	ID             uuid.UUID
	Email          string
	PasswordHash   string
	FullName       string
	Specialization string
	CareerGoal     string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Profile is the mutable subset of a learner. Nil fields are left unchanged.
type Profile struct {
	FullName       *string
	Specialization *string
	CareerGoal     *string
}

func (l Learner) Analytics() analytics.Learner {
	return analytics.Learner{
		ID:             l.ID,
		Specialization: l.Specialization,
		CareerGoal:     l.CareerGoal,
	}
}
