package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"skill-insight/internal/domain/analytics"
	"skill-insight/internal/domain/learner"
	"skill-insight/internal/platform/metrics"
	"skill-insight/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type CareerReadiness struct {
	CareerPath analytics.CareerPathEntry
	Report     analytics.ReadinessReport
}

type AnalyticsUsecase interface {
	Progress(ctx context.Context, learnerID uuid.UUID) (analytics.ProgressSummary, error)
	Timeline(ctx context.Context, learnerID uuid.UUID) (analytics.Timeline, error)
	Readiness(ctx context.Context, learnerID, careerPathID uuid.UUID) (CareerReadiness, error)
	ReadinessAll(ctx context.Context, learnerID uuid.UUID) ([]CareerReadiness, error)
	Recommendations(ctx context.Context, learnerID uuid.UUID, f analytics.Filters) (analytics.Recommendations, error)
}

// Analytics loads a learner's records and runs them through the engine.
// Results are computed per request and never stored.
type Analytics struct {
	learners learner.Repository
	records  repository.SkillRecordRepository
	catalog  CatalogUsecase
	now      func() time.Time
}

func NewAnalyticsUsecase(learners learner.Repository, records repository.SkillRecordRepository, catalog CatalogUsecase) *Analytics {
	return &Analytics{learners: learners, records: records, catalog: catalog, now: time.Now}
}

func (u *Analytics) Progress(ctx context.Context, learnerID uuid.UUID) (out analytics.ProgressSummary, err error) {
	defer observe("progress", time.Now(), &err)

	items, err := u.learnerRecords(ctx, learnerID)
	if err != nil {
		return analytics.ProgressSummary{}, err
	}
	out, err = analytics.AggregateProgress(items, u.now())
	if err != nil {
		return analytics.ProgressSummary{}, engineErr(err)
	}
	return out, nil
}

func (u *Analytics) Timeline(ctx context.Context, learnerID uuid.UUID) (out analytics.Timeline, err error) {
	defer observe("timeline", time.Now(), &err)

	items, err := u.learnerRecords(ctx, learnerID)
	if err != nil {
		return analytics.Timeline{}, err
	}
	out, err = analytics.BuildTimeline(items)
	if err != nil {
		return analytics.Timeline{}, engineErr(err)
	}
	return out, nil
}

func (u *Analytics) Readiness(ctx context.Context, learnerID, careerPathID uuid.UUID) (out CareerReadiness, err error) {
	defer observe("readiness", time.Now(), &err)

	var (
		path  analytics.CareerPathEntry
		items []analytics.SkillWithCatalog
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := u.loadLearner(gctx, learnerID)
		return err
	})
	g.Go(func() error {
		var err error
		path, err = u.catalog.GetCareerPath(gctx, careerPathID)
		return err
	})
	g.Go(func() error {
		var err error
		if items, err = u.records.ListByLearner(gctx, learnerID); err != nil {
			return ErrInternal
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return CareerReadiness{}, err
	}

	report, err := analytics.AssessReadiness(repository.Records(items), path.RequiredSkills)
	if err != nil {
		return CareerReadiness{}, engineErr(err)
	}
	return CareerReadiness{CareerPath: path, Report: report}, nil
}

// ReadinessAll scores the learner against every career path, best match
// first. Paths with equal scores keep catalog order.
func (u *Analytics) ReadinessAll(ctx context.Context, learnerID uuid.UUID) (out []CareerReadiness, err error) {
	defer observe("readiness_all", time.Now(), &err)

	var (
		paths []analytics.CareerPathEntry
		items []analytics.SkillWithCatalog
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := u.loadLearner(gctx, learnerID)
		return err
	})
	g.Go(func() error {
		var err error
		paths, err = u.catalog.ListCareerPaths(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		if items, err = u.records.ListByLearner(gctx, learnerID); err != nil {
			return ErrInternal
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := repository.Records(items)
	out = make([]CareerReadiness, 0, len(paths))
	for _, p := range paths {
		report, err := analytics.AssessReadiness(records, p.RequiredSkills)
		if err != nil {
			return nil, engineErr(err)
		}
		out = append(out, CareerReadiness{CareerPath: p, Report: report})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Report.Score > out[j].Report.Score
	})
	return out, nil
}

func (u *Analytics) Recommendations(ctx context.Context, learnerID uuid.UUID, f analytics.Filters) (out analytics.Recommendations, err error) {
	defer observe("recommendations", time.Now(), &err)

	var (
		l        learner.Learner
		items    []analytics.SkillWithCatalog
		catalogs analytics.Catalogs
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		l, err = u.loadLearner(gctx, learnerID)
		return err
	})
	g.Go(func() error {
		var err error
		if items, err = u.records.ListByLearner(gctx, learnerID); err != nil {
			return ErrInternal
		}
		return nil
	})
	g.Go(func() error {
		var err error
		catalogs.Skills, err = u.catalog.ListSkills(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		catalogs.Courses, err = u.catalog.ListCourses(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		catalogs.CareerPaths, err = u.catalog.ListCareerPaths(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return analytics.Recommendations{}, err
	}

	out, err = analytics.FilterRecommendations(l.Analytics(), repository.Records(items), catalogs, f)
	if err != nil {
		return analytics.Recommendations{}, engineErr(err)
	}
	return out, nil
}

// learnerRecords lists the records of a learner that must exist. An unknown
// id is ErrLearnerNotFound, not an empty result.
func (u *Analytics) learnerRecords(ctx context.Context, learnerID uuid.UUID) ([]analytics.SkillWithCatalog, error) {
	var items []analytics.SkillWithCatalog
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := u.loadLearner(gctx, learnerID)
		return err
	})
	g.Go(func() error {
		var err error
		if items, err = u.records.ListByLearner(gctx, learnerID); err != nil {
			return ErrInternal
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

func (u *Analytics) loadLearner(ctx context.Context, learnerID uuid.UUID) (learner.Learner, error) {
	l, err := u.learners.GetByID(ctx, learnerID)
	if err != nil {
		if errors.Is(err, learner.ErrNotFound) {
			return learner.Learner{}, ErrLearnerNotFound
		}
		return learner.Learner{}, ErrInternal
	}
	return l, nil
}

func observe(op string, started time.Time, errp *error) {
	metrics.ObserveAnalytics(op, resultFor(*errp), started)
}
