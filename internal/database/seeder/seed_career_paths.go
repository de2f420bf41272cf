package seeder

import (
	"context"
	"fmt"
	"strings"

	"skill-insight/internal/database"
	"skill-insight/internal/domain/analytics"

	"github.com/google/uuid"
)

type CareerPathsSeeder struct {
	Items []CareerPathSeed
}

func (CareerPathsSeeder) Name() string { return "career_paths" }

func (s CareerPathsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "career_paths", "id", "title", "specialty", "salary_min", "salary_max", "salary_currency"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "career_path_skills", "career_path_id", "skill_id", "required_level", "position"); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(q database.Querier) error {
		for _, it := range s.Items {
			var pathID uuid.UUID
			err := q.QueryRow(
				ctx,
				`INSERT INTO career_paths (id, title, specialty, salary_min, salary_max, salary_currency)
				 VALUES (gen_random_uuid(), $1, $2, $3, $4, $5)
				 ON CONFLICT (title) DO UPDATE SET specialty = EXCLUDED.specialty
				 RETURNING id`,
				it.Title,
				it.Specialty,
				it.Salary.Min,
				it.Salary.Max,
				it.Salary.Currency,
			).Scan(&pathID)
			if err != nil {
				return fmt.Errorf("career path %s: %w", it.Title, err)
			}

			for pos, rs := range it.RequiredSkills {
				level, err := analytics.ParseProficiencyLevel(rs.Level)
				if err != nil {
					return fmt.Errorf("career path %s: %w", it.Title, err)
				}
				_, err = q.Exec(
					ctx,
					`INSERT INTO career_path_skills (career_path_id, skill_id, required_level, position)
					 SELECT $1, id, $3, $4 FROM skills WHERE name = $2
					 ON CONFLICT (career_path_id, skill_id) DO NOTHING`,
					pathID,
					strings.TrimSpace(rs.Skill),
					string(level),
					pos,
				)
				if err != nil {
					return fmt.Errorf("career path %s skill %s: %w", it.Title, rs.Skill, err)
				}
			}
		}
		return nil
	})
}
