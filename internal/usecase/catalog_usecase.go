package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"skill-insight/internal/domain/analytics"
	"skill-insight/internal/platform/metrics"
	"skill-insight/internal/repository"

	"github.com/google/uuid"
)

type CreateSkillInput struct {
	Name      string
	Category  string
	Specialty string
}

type CreateCareerPathInput struct {
	Title          string
	Specialty      string
	SalaryRange    analytics.SalaryRange
	RequiredSkills []RequiredSkillInput
}

type RequiredSkillInput struct {
	SkillID uuid.UUID
	Level   string
}

type CatalogUsecase interface {
	ListSkills(ctx context.Context) ([]analytics.SkillCatalogEntry, error)
	CreateSkill(ctx context.Context, in CreateSkillInput) (analytics.SkillCatalogEntry, error)
	ListCourses(ctx context.Context) ([]analytics.CourseCatalogEntry, error)
	ListCareerPaths(ctx context.Context) ([]analytics.CareerPathEntry, error)
	GetCareerPath(ctx context.Context, id uuid.UUID) (analytics.CareerPathEntry, error)
	CreateCareerPath(ctx context.Context, in CreateCareerPathInput) (analytics.CareerPathEntry, error)
	AddRequiredSkill(ctx context.Context, pathID uuid.UUID, in RequiredSkillInput) (analytics.CareerPathEntry, error)
	RemoveRequiredSkill(ctx context.Context, pathID, skillID uuid.UUID) (analytics.CareerPathEntry, error)
}

// Catalog serves reference data. Lists are read through the cache; every
// write invalidates all cached lists.
type Catalog struct {
	skills  repository.SkillCatalogRepository
	courses repository.CourseCatalogRepository
	paths   repository.CareerPathRepository
	cache   CatalogCache
	logger  *log.Logger
}

func NewCatalogUsecase(
	skills repository.SkillCatalogRepository,
	courses repository.CourseCatalogRepository,
	paths repository.CareerPathRepository,
	cache CatalogCache,
	logger *log.Logger,
) *Catalog {
	return &Catalog{skills: skills, courses: courses, paths: paths, cache: cache, logger: logger}
}

func (u *Catalog) ListSkills(ctx context.Context) ([]analytics.SkillCatalogEntry, error) {
	return readThrough(ctx, u, catalogSkillsKey, "skills", u.skills.List)
}

func (u *Catalog) ListCourses(ctx context.Context) ([]analytics.CourseCatalogEntry, error) {
	return readThrough(ctx, u, catalogCoursesKey, "courses", u.courses.List)
}

func (u *Catalog) ListCareerPaths(ctx context.Context) ([]analytics.CareerPathEntry, error) {
	return readThrough(ctx, u, catalogCareerPathsKey, "career_paths", u.paths.List)
}

func (u *Catalog) GetCareerPath(ctx context.Context, id uuid.UUID) (analytics.CareerPathEntry, error) {
	if id == uuid.Nil {
		return analytics.CareerPathEntry{}, invalidf("career path id is required")
	}
	p, err := u.paths.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCareerPathNotFound) {
			return analytics.CareerPathEntry{}, ErrCareerPathNotFound
		}
		return analytics.CareerPathEntry{}, ErrInternal
	}
	return p, nil
}

func (u *Catalog) CreateSkill(ctx context.Context, in CreateSkillInput) (analytics.SkillCatalogEntry, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return analytics.SkillCatalogEntry{}, invalidf("skill name is required")
	}

	created, err := u.skills.Create(ctx, analytics.SkillCatalogEntry{
		Name:      name,
		Category:  strings.TrimSpace(in.Category),
		Specialty: strings.TrimSpace(in.Specialty),
	})
	if err != nil {
		if errors.Is(err, repository.ErrSkillDuplicate) {
			return analytics.SkillCatalogEntry{}, ErrConflict
		}
		return analytics.SkillCatalogEntry{}, ErrInternal
	}
	u.invalidate(ctx)
	return created, nil
}

func (u *Catalog) CreateCareerPath(ctx context.Context, in CreateCareerPathInput) (analytics.CareerPathEntry, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return analytics.CareerPathEntry{}, invalidf("career path title is required")
	}
	if in.SalaryRange.Min < 0 || in.SalaryRange.Max < in.SalaryRange.Min {
		return analytics.CareerPathEntry{}, invalidf("salary range is inverted or negative")
	}

	required := make([]analytics.RequiredSkill, 0, len(in.RequiredSkills))
	seen := make(map[uuid.UUID]struct{}, len(in.RequiredSkills))
	for _, rs := range in.RequiredSkills {
		r, err := requiredSkill(rs)
		if err != nil {
			return analytics.CareerPathEntry{}, err
		}
		if _, dup := seen[r.SkillID]; dup {
			return analytics.CareerPathEntry{}, invalidf("skill %s is listed twice", r.SkillID)
		}
		seen[r.SkillID] = struct{}{}
		required = append(required, r)
	}

	created, err := u.paths.Create(ctx, analytics.CareerPathEntry{
		Title:          title,
		Specialty:      strings.TrimSpace(in.Specialty),
		SalaryRange:    in.SalaryRange,
		RequiredSkills: required,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCareerPathDuplicate):
			return analytics.CareerPathEntry{}, ErrConflict
		case errors.Is(err, repository.ErrSkillNotFound):
			return analytics.CareerPathEntry{}, ErrSkillNotFound
		default:
			return analytics.CareerPathEntry{}, ErrInternal
		}
	}
	u.invalidate(ctx)
	return created, nil
}

func (u *Catalog) AddRequiredSkill(ctx context.Context, pathID uuid.UUID, in RequiredSkillInput) (analytics.CareerPathEntry, error) {
	rs, err := requiredSkill(in)
	if err != nil {
		return analytics.CareerPathEntry{}, err
	}
	if err := u.paths.AddRequiredSkill(ctx, pathID, rs); err != nil {
		return analytics.CareerPathEntry{}, mapCareerPathErr(err)
	}
	u.invalidate(ctx)
	return u.GetCareerPath(ctx, pathID)
}

func (u *Catalog) RemoveRequiredSkill(ctx context.Context, pathID, skillID uuid.UUID) (analytics.CareerPathEntry, error) {
	if err := u.paths.RemoveRequiredSkill(ctx, pathID, skillID); err != nil {
		return analytics.CareerPathEntry{}, mapCareerPathErr(err)
	}
	u.invalidate(ctx)
	return u.GetCareerPath(ctx, pathID)
}

func (u *Catalog) invalidate(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.InvalidateCatalog(ctx); err != nil && u.logger != nil {
		u.logger.Printf("[Cache] catalog invalidation failed: %v", err)
	}
}

func readThrough[T any](ctx context.Context, u *Catalog, key, name string, load func(context.Context) ([]T, error)) ([]T, error) {
	if u.cache != nil {
		var cached []T
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err != nil && u.logger != nil {
			u.logger.Printf("[Cache] get %s failed: %v", key, err)
		}
		metrics.ObserveCache(name, hit)
		if hit {
			return cached, nil
		}
	}

	items, err := load(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, items, 0); err != nil && u.logger != nil {
			u.logger.Printf("[Cache] set %s failed: %v", key, err)
		}
	}
	return items, nil
}

func requiredSkill(in RequiredSkillInput) (analytics.RequiredSkill, error) {
	if in.SkillID == uuid.Nil {
		return analytics.RequiredSkill{}, invalidf("skill id is required")
	}
	level, err := analytics.ParseProficiencyLevel(in.Level)
	if err != nil {
		return analytics.RequiredSkill{}, invalidInput(err)
	}
	return analytics.RequiredSkill{SkillID: in.SkillID, RequiredLevel: level}, nil
}

func mapCareerPathErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrCareerPathNotFound):
		return ErrCareerPathNotFound
	case errors.Is(err, repository.ErrSkillNotFound):
		return ErrSkillNotFound
	default:
		return ErrInternal
	}
}
