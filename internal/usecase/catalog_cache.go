package usecase

import (
	"context"
	"time"
)

type CatalogCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	InvalidateCatalog(ctx context.Context) error
}

const (
	catalogSkillsKey      = "catalog:skills"
	catalogCoursesKey     = "catalog:courses"
	catalogCareerPathsKey = "catalog:career_paths"
)
