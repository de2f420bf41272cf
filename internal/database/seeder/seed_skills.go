package seeder

import (
	"context"
	"fmt"

	"skill-insight/internal/database"
)

type SkillsSeeder struct {
	Items []SkillSeed
}

func (SkillsSeeder) Name() string { return "skills" }

func (s SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "category", "specialty"); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(q database.Querier) error {
		for _, it := range s.Items {
			_, err := q.Exec(
				ctx,
				`INSERT INTO skills (id, name, category, specialty) VALUES (gen_random_uuid(), $1, $2, $3)
				 ON CONFLICT (name) DO UPDATE SET category = EXCLUDED.category, specialty = EXCLUDED.specialty`,
				it.Name,
				it.Category,
				it.Specialty,
			)
			if err != nil {
				return fmt.Errorf("skill %s: %w", it.Name, err)
			}
		}
		return nil
	})
}
