package repository

import (
	"context"
	"encoding/json"
	"time"

	"skill-insight/internal/database"
	"skill-insight/internal/database/postgres"
	"skill-insight/internal/domain/analytics"

	"github.com/google/uuid"
)

// ProficiencyUpdate carries independently optional level and score changes.
type ProficiencyUpdate struct {
	Level *analytics.ProficiencyLevel
	Score *int
}

type SkillRecordRepository interface {
	ListByLearner(ctx context.Context, learnerID uuid.UUID) ([]analytics.SkillWithCatalog, error)
	Get(ctx context.Context, learnerID, skillID uuid.UUID) (analytics.SkillWithCatalog, error)
	Upsert(ctx context.Context, learnerID, skillID uuid.UUID, p analytics.Proficiency) (analytics.SkillWithCatalog, error)
	UpdateProficiency(ctx context.Context, learnerID, skillID uuid.UUID, u ProficiencyUpdate) (analytics.SkillWithCatalog, error)
	AppendEvidence(ctx context.Context, learnerID, skillID uuid.UUID, e analytics.Evidence) (analytics.SkillWithCatalog, error)
	SetGoal(ctx context.Context, learnerID, skillID uuid.UUID, g analytics.Goal) (analytics.SkillWithCatalog, error)
	ClearGoal(ctx context.Context, learnerID, skillID uuid.UUID) (analytics.SkillWithCatalog, error)
	Delete(ctx context.Context, learnerID, skillID uuid.UUID) error
}

type PostgresSkillRecordRepository struct {
	db database.DB
}

func NewPostgresSkillRecordRepository(db database.DB) *PostgresSkillRecordRepository {
	return &PostgresSkillRecordRepository{db: db}
}

const skillRecordSelect = `SELECT sr.id, sr.learner_id, sr.skill_id, sr.level, sr.score, sr.evidence,
	sr.goal_target_level, sr.goal_target_date, sr.created_at, sr.updated_at,
	s.id, s.name, s.category, s.specialty
 FROM skill_records sr
 JOIN skills s ON s.id = sr.skill_id`

func (r *PostgresSkillRecordRepository) ListByLearner(ctx context.Context, learnerID uuid.UUID) ([]analytics.SkillWithCatalog, error) {
	rows, err := r.db.Query(ctx, skillRecordSelect+` WHERE sr.learner_id = $1 ORDER BY s.name ASC`, learnerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]analytics.SkillWithCatalog, 0)
	for rows.Next() {
		it, err := scanSkillRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRecordRepository) Get(ctx context.Context, learnerID, skillID uuid.UUID) (analytics.SkillWithCatalog, error) {
	row := r.db.QueryRow(ctx, skillRecordSelect+` WHERE sr.learner_id = $1 AND sr.skill_id = $2`, learnerID, skillID)
	it, err := scanSkillRecord(row)
	if err != nil {
		if postgres.IsNoRows(err) {
			return analytics.SkillWithCatalog{}, ErrSkillRecordNotFound
		}
		return analytics.SkillWithCatalog{}, err
	}
	return it, nil
}

func (r *PostgresSkillRecordRepository) Upsert(ctx context.Context, learnerID, skillID uuid.UUID, p analytics.Proficiency) (analytics.SkillWithCatalog, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO skill_records (id, learner_id, skill_id, level, score)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (learner_id, skill_id)
		 DO UPDATE SET level = EXCLUDED.level, score = EXCLUDED.score, updated_at = now()`,
		uuid.New(), learnerID, skillID, string(p.Level), p.Score,
	)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			if postgres.ViolatedConstraint(err) == "skill_records_learner_id_fkey" {
				return analytics.SkillWithCatalog{}, ErrLearnerNotFound
			}
			return analytics.SkillWithCatalog{}, ErrSkillNotFound
		}
		return analytics.SkillWithCatalog{}, err
	}
	return r.Get(ctx, learnerID, skillID)
}

func (r *PostgresSkillRecordRepository) UpdateProficiency(ctx context.Context, learnerID, skillID uuid.UUID, u ProficiencyUpdate) (analytics.SkillWithCatalog, error) {
	var level *string
	if u.Level != nil {
		s := string(*u.Level)
		level = &s
	}
	return r.update(ctx, learnerID, skillID,
		`UPDATE skill_records
		 SET level = COALESCE($3, level), score = COALESCE($4, score), updated_at = now()
		 WHERE learner_id = $1 AND skill_id = $2`,
		level, u.Score,
	)
}

func (r *PostgresSkillRecordRepository) AppendEvidence(ctx context.Context, learnerID, skillID uuid.UUID, e analytics.Evidence) (analytics.SkillWithCatalog, error) {
	b, err := json.Marshal([]analytics.Evidence{e})
	if err != nil {
		return analytics.SkillWithCatalog{}, err
	}
	return r.update(ctx, learnerID, skillID,
		`UPDATE skill_records
		 SET evidence = evidence || $3::jsonb, updated_at = now()
		 WHERE learner_id = $1 AND skill_id = $2`,
		string(b),
	)
}

func (r *PostgresSkillRecordRepository) SetGoal(ctx context.Context, learnerID, skillID uuid.UUID, g analytics.Goal) (analytics.SkillWithCatalog, error) {
	return r.update(ctx, learnerID, skillID,
		`UPDATE skill_records
		 SET goal_target_level = $3, goal_target_date = $4, updated_at = now()
		 WHERE learner_id = $1 AND skill_id = $2`,
		string(g.TargetLevel), g.TargetDate,
	)
}

func (r *PostgresSkillRecordRepository) ClearGoal(ctx context.Context, learnerID, skillID uuid.UUID) (analytics.SkillWithCatalog, error) {
	return r.update(ctx, learnerID, skillID,
		`UPDATE skill_records
		 SET goal_target_level = NULL, goal_target_date = NULL, updated_at = now()
		 WHERE learner_id = $1 AND skill_id = $2`,
	)
}

func (r *PostgresSkillRecordRepository) Delete(ctx context.Context, learnerID, skillID uuid.UUID) error {
	rowsAffected, err := r.db.Exec(ctx,
		`DELETE FROM skill_records WHERE learner_id = $1 AND skill_id = $2`,
		learnerID, skillID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrSkillRecordNotFound
	}
	return nil
}

func (r *PostgresSkillRecordRepository) update(ctx context.Context, learnerID, skillID uuid.UUID, query string, args ...any) (analytics.SkillWithCatalog, error) {
	rowsAffected, err := r.db.Exec(ctx, query, append([]any{learnerID, skillID}, args...)...)
	if err != nil {
		return analytics.SkillWithCatalog{}, err
	}
	if rowsAffected == 0 {
		return analytics.SkillWithCatalog{}, ErrSkillRecordNotFound
	}
	return r.Get(ctx, learnerID, skillID)
}

func scanSkillRecord(row database.Row) (analytics.SkillWithCatalog, error) {
	var (
		it         analytics.SkillWithCatalog
		level      string
		evidence   []byte
		goalLevel  *string
		goalTarget *time.Time
	)
	rec := &it.Record
	err := row.Scan(
		&rec.ID, &rec.LearnerID, &rec.SkillID, &level, &rec.Proficiency.Score, &evidence,
		&goalLevel, &goalTarget, &rec.CreatedAt, &rec.UpdatedAt,
		&it.Skill.ID, &it.Skill.Name, &it.Skill.Category, &it.Skill.Specialty,
	)
	if err != nil {
		return analytics.SkillWithCatalog{}, err
	}

	rec.Proficiency.Level = analytics.ProficiencyLevel(level)
	rec.Evidence, err = decodeEvidence(evidence)
	if err != nil {
		return analytics.SkillWithCatalog{}, err
	}
	if goalLevel != nil {
		rec.Goal = &analytics.Goal{TargetLevel: analytics.ProficiencyLevel(*goalLevel), TargetDate: goalTarget}
	}
	return it, nil
}

func decodeEvidence(b []byte) ([]analytics.Evidence, error) {
	out := make([]analytics.Evidence, 0)
	if len(b) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Records strips the catalog side of joined rows.
func Records(items []analytics.SkillWithCatalog) []analytics.SkillRecord {
	out := make([]analytics.SkillRecord, 0, len(items))
	for _, it := range items {
		out = append(out, it.Record)
	}
	return out
}
