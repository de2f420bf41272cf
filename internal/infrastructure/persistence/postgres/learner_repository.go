package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"skill-insight/internal/database"
	pgpool "skill-insight/internal/database/postgres"
	"skill-insight/internal/domain/learner"

	"github.com/google/uuid"
)

const learnerColumns = `id, email, password_hash, full_name, specialization, career_goal, created_at, updated_at`

type LearnerRepository struct {
	stmtCreate        *sql.Stmt
	stmtGetByID       *sql.Stmt
	stmtGetByEmail    *sql.Stmt
	stmtExistsByEmail *sql.Stmt
	stmtUpdate        *sql.Stmt
}

func NewLearnerRepository(ctx context.Context, db database.DB) (*LearnerRepository, error) {
	if db == nil || db.SQLDB() == nil {
		return nil, fmt.Errorf("nil db")
	}
	sqlDB := db.SQLDB()
	r := &LearnerRepository{}

	prepare := func(dst **sql.Stmt, query string) error {
		s, err := sqlDB.PrepareContext(ctx, query)
		if err != nil {
			return err
		}
		*dst = s
		return nil
	}

	stmts := []struct {
		dst   **sql.Stmt
		query string
	}{
		{&r.stmtCreate, `INSERT INTO learners (id, email, password_hash, full_name, specialization, career_goal) VALUES ($1, $2, $3, $4, $5, $6)`},
		{&r.stmtGetByID, `SELECT ` + learnerColumns + ` FROM learners WHERE id = $1`},
		{&r.stmtGetByEmail, `SELECT ` + learnerColumns + ` FROM learners WHERE lower(email) = lower($1)`},
		{&r.stmtExistsByEmail, `SELECT EXISTS(SELECT 1 FROM learners WHERE lower(email) = lower($1))`},
		{&r.stmtUpdate, `UPDATE learners
			SET full_name = COALESCE($2, full_name),
			    specialization = COALESCE($3, specialization),
			    career_goal = COALESCE($4, career_goal),
			    updated_at = now()
			WHERE id = $1
			RETURNING ` + learnerColumns},
	}
	for _, s := range stmts {
		if err := prepare(s.dst, s.query); err != nil {
			_ = r.Close()
			return nil, err
		}
	}

	return r, nil
}

func (r *LearnerRepository) Close() error {
	var firstErr error
	closeStmt := func(s *sql.Stmt) {
		if s == nil {
			return
		}
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	closeStmt(r.stmtCreate)
	closeStmt(r.stmtGetByID)
	closeStmt(r.stmtGetByEmail)
	closeStmt(r.stmtExistsByEmail)
	closeStmt(r.stmtUpdate)

	return firstErr
}

func (r *LearnerRepository) Create(ctx context.Context, l learner.Learner) error {
	_, err := r.stmtCreate.ExecContext(ctx, l.ID, l.Email, l.PasswordHash, l.FullName, l.Specialization, l.CareerGoal)
	if pgpool.IsUniqueViolation(err) {
		return learner.ErrEmailDuplicate
	}
	return err
}

func (r *LearnerRepository) GetByID(ctx context.Context, id uuid.UUID) (learner.Learner, error) {
	return scanLearner(r.stmtGetByID.QueryRowContext(ctx, id))
}

func (r *LearnerRepository) GetByEmail(ctx context.Context, email string) (learner.Learner, error) {
	return scanLearner(r.stmtGetByEmail.QueryRowContext(ctx, email))
}

func (r *LearnerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.stmtExistsByEmail.QueryRowContext(ctx, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *LearnerRepository) UpdateProfile(ctx context.Context, id uuid.UUID, p learner.Profile) (learner.Learner, error) {
	return scanLearner(r.stmtUpdate.QueryRowContext(ctx, id, p.FullName, p.Specialization, p.CareerGoal))
}

type learnerRow interface {
	Scan(dest ...any) error
}

func scanLearner(row learnerRow) (learner.Learner, error) {
	var l learner.Learner
	err := row.Scan(&l.ID, &l.Email, &l.PasswordHash, &l.FullName, &l.Specialization, &l.CareerGoal, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return learner.Learner{}, learner.ErrNotFound
		}
		return learner.Learner{}, err
	}
	return l, nil
}
