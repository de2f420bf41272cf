package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"skill-insight/internal/domain/analytics"
	"skill-insight/internal/platform/metrics"
	"skill-insight/internal/repository"

	"github.com/google/uuid"
)

const (
	minCourseYear = 1900
	maxCourseYear = 2200
)

type CourseInput struct {
	CourseCode string
	CourseName string
	Credits    *float64
	Grade      string
	Year       int
}

type AcademicRecordView struct {
	LearnerID uuid.UUID
	GPA       analytics.GPA
	Courses   []analytics.CourseEntry
}

type AcademicUsecase interface {
	GetRecord(ctx context.Context, learnerID uuid.UUID) (AcademicRecordView, error)
	AddCourse(ctx context.Context, learnerID uuid.UUID, in CourseInput) (AcademicRecordView, error)
	UpdateCourse(ctx context.Context, learnerID, courseID uuid.UUID, in CourseInput) (AcademicRecordView, error)
	RemoveCourse(ctx context.Context, learnerID, courseID uuid.UUID) (AcademicRecordView, error)
	RecomputeGPA(ctx context.Context, learnerID uuid.UUID) (AcademicRecordView, error)
}

// Academic owns a learner's course list. Every mutation recomputes both GPA
// figures from the full list inside the same transaction, so stored values
// never drift from the courses.
type Academic struct {
	repo     repository.AcademicRepository
	notifier AnalyticsNotifier
	now      func() time.Time
}

func NewAcademicUsecase(repo repository.AcademicRepository, notifier AnalyticsNotifier) *Academic {
	return &Academic{repo: repo, notifier: notifierOrNop(notifier), now: time.Now}
}

// GetRecord recomputes the GPA from the course list against the current
// clock. The stored figures are only a snapshot of the last mutation.
func (u *Academic) GetRecord(ctx context.Context, learnerID uuid.UUID) (AcademicRecordView, error) {
	if _, err := u.repo.GetOrCreate(ctx, learnerID); err != nil {
		return AcademicRecordView{}, mapAcademicErr(err)
	}
	courses, err := u.repo.ListCourses(ctx, learnerID)
	if err != nil {
		return AcademicRecordView{}, ErrInternal
	}
	gpa, err := analytics.ComputeGPA(courses, u.now())
	if err != nil {
		return AcademicRecordView{}, mapAcademicErr(err)
	}
	return AcademicRecordView{LearnerID: learnerID, GPA: gpa, Courses: courses}, nil
}

func (u *Academic) AddCourse(ctx context.Context, learnerID uuid.UUID, in CourseInput) (AcademicRecordView, error) {
	c, err := courseFromInput(in)
	if err != nil {
		return AcademicRecordView{}, err
	}
	return u.mutate(ctx, learnerID, func(repo repository.AcademicRepository) error {
		_, err := repo.AddCourse(ctx, learnerID, c)
		return err
	})
}

func (u *Academic) UpdateCourse(ctx context.Context, learnerID, courseID uuid.UUID, in CourseInput) (AcademicRecordView, error) {
	c, err := courseFromInput(in)
	if err != nil {
		return AcademicRecordView{}, err
	}
	c.ID = courseID
	return u.mutate(ctx, learnerID, func(repo repository.AcademicRepository) error {
		_, err := repo.UpdateCourse(ctx, learnerID, c)
		return err
	})
}

func (u *Academic) RemoveCourse(ctx context.Context, learnerID, courseID uuid.UUID) (AcademicRecordView, error) {
	return u.mutate(ctx, learnerID, func(repo repository.AcademicRepository) error {
		return repo.RemoveCourse(ctx, learnerID, courseID)
	})
}

// RecomputeGPA rewrites the stored GPA from the current course list.
func (u *Academic) RecomputeGPA(ctx context.Context, learnerID uuid.UUID) (AcademicRecordView, error) {
	return u.mutate(ctx, learnerID, func(repository.AcademicRepository) error { return nil })
}

func (u *Academic) mutate(ctx context.Context, learnerID uuid.UUID, change func(repo repository.AcademicRepository) error) (AcademicRecordView, error) {
	started := time.Now()
	var view AcademicRecordView

	err := u.repo.InTx(ctx, func(repo repository.AcademicRepository) error {
		if _, err := repo.GetOrCreate(ctx, learnerID); err != nil {
			return err
		}
		if err := change(repo); err != nil {
			return err
		}

		courses, err := repo.ListCourses(ctx, learnerID)
		if err != nil {
			return err
		}
		gpa, err := analytics.ComputeGPA(courses, u.now())
		if err != nil {
			return err
		}
		if err := repo.SaveGPA(ctx, learnerID, gpa); err != nil {
			return err
		}

		view = AcademicRecordView{LearnerID: learnerID, GPA: gpa, Courses: courses}
		return nil
	})
	if err != nil {
		mapped := mapAcademicErr(err)
		metrics.ObserveAnalytics("gpa", resultFor(mapped), started)
		return AcademicRecordView{}, mapped
	}

	metrics.ObserveAnalytics("gpa", metrics.ResultOK, started)
	u.notifier.NotifyAnalyticsUpdated(learnerID, SourceAcademic)
	return view, nil
}

func courseFromInput(in CourseInput) (analytics.CourseEntry, error) {
	code := strings.TrimSpace(in.CourseCode)
	if code == "" {
		return analytics.CourseEntry{}, invalidf("course code is required")
	}
	grade := analytics.NormalizeGrade(in.Grade)
	if !analytics.IsValidGrade(grade) {
		return analytics.CourseEntry{}, invalidf("unknown grade %q", in.Grade)
	}
	credits := analytics.DefaultCredits
	if in.Credits != nil {
		credits = *in.Credits
	}
	if credits < 0 {
		return analytics.CourseEntry{}, invalidf("credits must not be negative")
	}
	if in.Year < minCourseYear || in.Year > maxCourseYear {
		return analytics.CourseEntry{}, invalidf("year %d is out of range", in.Year)
	}

	return analytics.CourseEntry{
		CourseCode: code,
		CourseName: strings.TrimSpace(in.CourseName),
		Credits:    credits,
		Grade:      grade,
		Year:       in.Year,
	}, nil
}

func mapAcademicErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrCourseNotFound):
		return ErrCourseNotFound
	case errors.Is(err, repository.ErrLearnerNotFound):
		return ErrLearnerNotFound
	case errors.Is(err, analytics.ErrInvalidInput):
		return invalidInput(err)
	default:
		return ErrInternal
	}
}

func resultFor(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrNotFound):
		return metrics.ResultInvalid
	default:
		return metrics.ResultError
	}
}
