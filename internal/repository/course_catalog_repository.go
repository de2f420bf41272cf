package repository

import (
	"context"

	"skill-insight/internal/database"
	"skill-insight/internal/domain/analytics"
)

type CourseCatalogRepository interface {
	List(ctx context.Context) ([]analytics.CourseCatalogEntry, error)
}

type PostgresCourseCatalogRepository struct {
	db database.DB
}

func NewPostgresCourseCatalogRepository(db database.DB) *PostgresCourseCatalogRepository {
	return &PostgresCourseCatalogRepository{db: db}
}

func (r *PostgresCourseCatalogRepository) List(ctx context.Context) ([]analytics.CourseCatalogEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, code, title, category, specialty, credits FROM course_catalog ORDER BY code ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]analytics.CourseCatalogEntry, 0)
	for rows.Next() {
		var c analytics.CourseCatalogEntry
		if err := rows.Scan(&c.ID, &c.Code, &c.Title, &c.Category, &c.Specialty, &c.Credits); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
