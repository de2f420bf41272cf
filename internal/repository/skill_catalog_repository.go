package repository

import (
	"context"

	"skill-insight/internal/database"
	"skill-insight/internal/database/postgres"
	"skill-insight/internal/domain/analytics"

	"github.com/google/uuid"
)

type SkillCatalogRepository interface {
	List(ctx context.Context) ([]analytics.SkillCatalogEntry, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]analytics.SkillCatalogEntry, error)
	GetByID(ctx context.Context, id uuid.UUID) (analytics.SkillCatalogEntry, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, s analytics.SkillCatalogEntry) (analytics.SkillCatalogEntry, error)
}

type PostgresSkillCatalogRepository struct {
	db database.DB
}

func NewPostgresSkillCatalogRepository(db database.DB) *PostgresSkillCatalogRepository {
	return &PostgresSkillCatalogRepository{db: db}
}

func (r *PostgresSkillCatalogRepository) List(ctx context.Context) ([]analytics.SkillCatalogEntry, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, category, specialty FROM skills ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	return scanSkills(rows)
}

func (r *PostgresSkillCatalogRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]analytics.SkillCatalogEntry, error) {
	if len(ids) == 0 {
		return []analytics.SkillCatalogEntry{}, nil
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, name, category, specialty FROM skills WHERE id = ANY($1) ORDER BY name ASC`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	return scanSkills(rows)
}

func (r *PostgresSkillCatalogRepository) GetByID(ctx context.Context, id uuid.UUID) (analytics.SkillCatalogEntry, error) {
	var s analytics.SkillCatalogEntry
	row := r.db.QueryRow(ctx, `SELECT id, name, category, specialty FROM skills WHERE id = $1`, id)
	if err := row.Scan(&s.ID, &s.Name, &s.Category, &s.Specialty); err != nil {
		if postgres.IsNoRows(err) {
			return analytics.SkillCatalogEntry{}, ErrSkillNotFound
		}
		return analytics.SkillCatalogEntry{}, err
	}
	return s, nil
}

func (r *PostgresSkillCatalogRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM skills WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresSkillCatalogRepository) Create(ctx context.Context, s analytics.SkillCatalogEntry) (analytics.SkillCatalogEntry, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO skills (id, name, category, specialty) VALUES ($1, $2, $3, $4)`,
		s.ID, s.Name, s.Category, s.Specialty,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return analytics.SkillCatalogEntry{}, ErrSkillDuplicate
		}
		return analytics.SkillCatalogEntry{}, err
	}
	return s, nil
}

func scanSkills(rows database.Rows) ([]analytics.SkillCatalogEntry, error) {
	defer rows.Close()

	out := make([]analytics.SkillCatalogEntry, 0)
	for rows.Next() {
		var s analytics.SkillCatalogEntry
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Specialty); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
