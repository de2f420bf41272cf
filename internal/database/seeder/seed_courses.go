package seeder

import (
	"context"
	"fmt"

	"skill-insight/internal/database"
)

type CourseCatalogSeeder struct {
	Items []CourseSeed
}

func (CourseCatalogSeeder) Name() string { return "course_catalog" }

func (s CourseCatalogSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "course_catalog", "id", "code", "title", "category", "specialty", "credits"); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(q database.Querier) error {
		for _, it := range s.Items {
			_, err := q.Exec(
				ctx,
				`INSERT INTO course_catalog (id, code, title, category, specialty, credits)
				 VALUES (gen_random_uuid(), $1, $2, $3, $4, $5)
				 ON CONFLICT (code) DO NOTHING`,
				it.Code,
				it.Title,
				it.Category,
				it.Specialty,
				it.Credits,
			)
			if err != nil {
				return fmt.Errorf("course %s: %w", it.Code, err)
			}
		}
		return nil
	})
}
