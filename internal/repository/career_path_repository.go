package repository

import (
	"context"

	"skill-insight/internal/database"
	"skill-insight/internal/database/postgres"
	"skill-insight/internal/domain/analytics"

	"github.com/google/uuid"
)

type CareerPathRepository interface {
	List(ctx context.Context) ([]analytics.CareerPathEntry, error)
	GetByID(ctx context.Context, id uuid.UUID) (analytics.CareerPathEntry, error)
	Create(ctx context.Context, p analytics.CareerPathEntry) (analytics.CareerPathEntry, error)
	AddRequiredSkill(ctx context.Context, pathID uuid.UUID, rs analytics.RequiredSkill) error
	RemoveRequiredSkill(ctx context.Context, pathID, skillID uuid.UUID) error
}

type PostgresCareerPathRepository struct {
	db database.DB
}

func NewPostgresCareerPathRepository(db database.DB) *PostgresCareerPathRepository {
	return &PostgresCareerPathRepository{db: db}
}

const careerPathSelect = `SELECT id, title, specialty, salary_min, salary_max, salary_currency FROM career_paths`

func (r *PostgresCareerPathRepository) List(ctx context.Context) ([]analytics.CareerPathEntry, error) {
	rows, err := r.db.Query(ctx, careerPathSelect+` ORDER BY title ASC`)
	if err != nil {
		return nil, err
	}

	paths, err := scanCareerPaths(rows)
	if err != nil {
		return nil, err
	}
	index := make(map[uuid.UUID]int, len(paths))
	for i, p := range paths {
		index[p.ID] = i
	}

	skillRows, err := r.db.Query(ctx,
		`SELECT career_path_id, skill_id, required_level FROM career_path_skills ORDER BY career_path_id, position ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer skillRows.Close()

	for skillRows.Next() {
		var (
			pathID uuid.UUID
			rs     analytics.RequiredSkill
			level  string
		)
		if err := skillRows.Scan(&pathID, &rs.SkillID, &level); err != nil {
			return nil, err
		}
		rs.RequiredLevel = analytics.ProficiencyLevel(level)
		if i, ok := index[pathID]; ok {
			paths[i].RequiredSkills = append(paths[i].RequiredSkills, rs)
		}
	}
	if err := skillRows.Err(); err != nil {
		return nil, err
	}
	return paths, nil
}

func (r *PostgresCareerPathRepository) GetByID(ctx context.Context, id uuid.UUID) (analytics.CareerPathEntry, error) {
	var p analytics.CareerPathEntry
	if err := scanCareerPath(r.db.QueryRow(ctx, careerPathSelect+` WHERE id = $1`, id), &p); err != nil {
		if postgres.IsNoRows(err) {
			return analytics.CareerPathEntry{}, ErrCareerPathNotFound
		}
		return analytics.CareerPathEntry{}, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT skill_id, required_level FROM career_path_skills WHERE career_path_id = $1 ORDER BY position ASC`,
		id,
	)
	if err != nil {
		return analytics.CareerPathEntry{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rs    analytics.RequiredSkill
			level string
		)
		if err := rows.Scan(&rs.SkillID, &level); err != nil {
			return analytics.CareerPathEntry{}, err
		}
		rs.RequiredLevel = analytics.ProficiencyLevel(level)
		p.RequiredSkills = append(p.RequiredSkills, rs)
	}
	if err := rows.Err(); err != nil {
		return analytics.CareerPathEntry{}, err
	}
	return p, nil
}

func (r *PostgresCareerPathRepository) Create(ctx context.Context, p analytics.CareerPathEntry) (analytics.CareerPathEntry, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	err := database.WithTx(ctx, r.db, func(q database.Querier) error {
		_, err := q.Exec(ctx,
			`INSERT INTO career_paths (id, title, specialty, salary_min, salary_max, salary_currency)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			p.ID, p.Title, p.Specialty, p.SalaryRange.Min, p.SalaryRange.Max, p.SalaryRange.Currency,
		)
		if err != nil {
			return err
		}
		for pos, rs := range p.RequiredSkills {
			if err := insertRequiredSkill(ctx, q, p.ID, rs, pos); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		switch {
		case postgres.IsUniqueViolation(err):
			return analytics.CareerPathEntry{}, ErrCareerPathDuplicate
		case postgres.IsForeignKeyViolation(err):
			return analytics.CareerPathEntry{}, ErrSkillNotFound
		}
		return analytics.CareerPathEntry{}, err
	}
	return p, nil
}

// AddRequiredSkill appends the skill or updates its level if already required.
func (r *PostgresCareerPathRepository) AddRequiredSkill(ctx context.Context, pathID uuid.UUID, rs analytics.RequiredSkill) error {
	var pos int
	row := r.db.QueryRow(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM career_path_skills WHERE career_path_id = $1`,
		pathID,
	)
	if err := row.Scan(&pos); err != nil {
		return err
	}

	err := insertRequiredSkill(ctx, r.db, pathID, rs, pos)
	if postgres.IsForeignKeyViolation(err) {
		exists := false
		_ = r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM career_paths WHERE id = $1)`, pathID).Scan(&exists)
		if !exists {
			return ErrCareerPathNotFound
		}
		return ErrSkillNotFound
	}
	return err
}

func (r *PostgresCareerPathRepository) RemoveRequiredSkill(ctx context.Context, pathID, skillID uuid.UUID) error {
	rowsAffected, err := r.db.Exec(ctx,
		`DELETE FROM career_path_skills WHERE career_path_id = $1 AND skill_id = $2`,
		pathID, skillID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrSkillNotFound
	}
	return nil
}

func insertRequiredSkill(ctx context.Context, q database.Querier, pathID uuid.UUID, rs analytics.RequiredSkill, pos int) error {
	_, err := q.Exec(ctx,
		`INSERT INTO career_path_skills (career_path_id, skill_id, required_level, position)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (career_path_id, skill_id) DO UPDATE SET required_level = EXCLUDED.required_level`,
		pathID, rs.SkillID, string(rs.RequiredLevel), pos,
	)
	return err
}

func scanCareerPaths(rows database.Rows) ([]analytics.CareerPathEntry, error) {
	defer rows.Close()

	out := make([]analytics.CareerPathEntry, 0)
	for rows.Next() {
		var p analytics.CareerPathEntry
		if err := scanCareerPath(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanCareerPath(row database.Row, p *analytics.CareerPathEntry) error {
	p.RequiredSkills = []analytics.RequiredSkill{}
	return row.Scan(&p.ID, &p.Title, &p.Specialty, &p.SalaryRange.Min, &p.SalaryRange.Max, &p.SalaryRange.Currency)
}
