package usecase

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"skill-insight/internal/domain/learner"

	"github.com/google/uuid"
)

const maxProfileFieldLength = 200

type UpdateProfileInput struct {
	FullName       *string
	Specialization *string
	CareerGoal     *string
}

type LearnerUsecase interface {
	GetProfile(ctx context.Context, learnerID uuid.UUID) (learner.Learner, error)
	UpdateProfile(ctx context.Context, learnerID uuid.UUID, in UpdateProfileInput) (learner.Learner, error)
}

type Learner struct {
	learners learner.Repository
	notifier AnalyticsNotifier
}

func NewLearnerUsecase(learners learner.Repository, notifier AnalyticsNotifier) *Learner {
	return &Learner{learners: learners, notifier: notifierOrNop(notifier)}
}

func (u *Learner) GetProfile(ctx context.Context, learnerID uuid.UUID) (learner.Learner, error) {
	l, err := u.learners.GetByID(ctx, learnerID)
	if err != nil {
		if errors.Is(err, learner.ErrNotFound) {
			return learner.Learner{}, ErrLearnerNotFound
		}
		return learner.Learner{}, ErrInternal
	}
	l.PasswordHash = ""
	return l, nil
}

// UpdateProfile changes the fields that drive recommendations. Specialization
// feeds course and career path matching, so a change is announced to the
// learner's analytics subscribers.
func (u *Learner) UpdateProfile(ctx context.Context, learnerID uuid.UUID, in UpdateProfileInput) (learner.Learner, error) {
	p := learner.Profile{}
	var err error
	if p.FullName, err = trimmedField("full_name", in.FullName); err != nil {
		return learner.Learner{}, err
	}
	if p.Specialization, err = trimmedField("specialization", in.Specialization); err != nil {
		return learner.Learner{}, err
	}
	if p.CareerGoal, err = trimmedField("career_goal", in.CareerGoal); err != nil {
		return learner.Learner{}, err
	}

	l, err := u.learners.UpdateProfile(ctx, learnerID, p)
	if err != nil {
		if errors.Is(err, learner.ErrNotFound) {
			return learner.Learner{}, ErrLearnerNotFound
		}
		return learner.Learner{}, ErrInternal
	}
	u.notifier.NotifyAnalyticsUpdated(learnerID, SourceProfile)
	l.PasswordHash = ""
	return l, nil
}

func trimmedField(name string, v *string) (*string, error) {
	if v == nil {
		return nil, nil
	}
	s := strings.TrimSpace(*v)
	if utf8.RuneCountInString(s) > maxProfileFieldLength {
		return nil, invalidf("%s is longer than %d characters", name, maxProfileFieldLength)
	}
	return &s, nil
}
