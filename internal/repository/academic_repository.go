package repository

import (
	"context"
	"time"

	"skill-insight/internal/database"
	"skill-insight/internal/database/postgres"
	"skill-insight/internal/domain/analytics"

	"github.com/google/uuid"
)

type AcademicRecord struct {
	LearnerID uuid.UUID
	GPA       analytics.GPA
	UpdatedAt time.Time
}

type AcademicRepository interface {
	// InTx runs fn against a repository bound to a single transaction.
	InTx(ctx context.Context, fn func(repo AcademicRepository) error) error

	GetOrCreate(ctx context.Context, learnerID uuid.UUID) (AcademicRecord, error)
	ListCourses(ctx context.Context, learnerID uuid.UUID) ([]analytics.CourseEntry, error)
	AddCourse(ctx context.Context, learnerID uuid.UUID, c analytics.CourseEntry) (analytics.CourseEntry, error)
	UpdateCourse(ctx context.Context, learnerID uuid.UUID, c analytics.CourseEntry) (analytics.CourseEntry, error)
	RemoveCourse(ctx context.Context, learnerID, courseID uuid.UUID) error
	SaveGPA(ctx context.Context, learnerID uuid.UUID, gpa analytics.GPA) error
}

type PostgresAcademicRepository struct {
	db database.DB
	q  database.Querier
}

func NewPostgresAcademicRepository(db database.DB) *PostgresAcademicRepository {
	return &PostgresAcademicRepository{db: db, q: db}
}

func (r *PostgresAcademicRepository) InTx(ctx context.Context, fn func(repo AcademicRepository) error) error {
	return database.WithTx(ctx, r.db, func(q database.Querier) error {
		return fn(&PostgresAcademicRepository{db: r.db, q: q})
	})
}

func (r *PostgresAcademicRepository) GetOrCreate(ctx context.Context, learnerID uuid.UUID) (AcademicRecord, error) {
	_, err := r.q.Exec(ctx,
		`INSERT INTO academic_records (learner_id) VALUES ($1) ON CONFLICT (learner_id) DO NOTHING`,
		learnerID,
	)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return AcademicRecord{}, ErrLearnerNotFound
		}
		return AcademicRecord{}, err
	}

	var rec AcademicRecord
	row := r.q.QueryRow(ctx,
		`SELECT learner_id, cumulative_gpa::float8, current_gpa::float8, updated_at FROM academic_records WHERE learner_id = $1`,
		learnerID,
	)
	if err := row.Scan(&rec.LearnerID, &rec.GPA.CumulativeGPA, &rec.GPA.CurrentGPA, &rec.UpdatedAt); err != nil {
		return AcademicRecord{}, err
	}
	return rec, nil
}

func (r *PostgresAcademicRepository) ListCourses(ctx context.Context, learnerID uuid.UUID) ([]analytics.CourseEntry, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, course_code, course_name, credits, grade, year
		 FROM course_entries
		 WHERE learner_id = $1
		 ORDER BY year ASC, created_at ASC`,
		learnerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]analytics.CourseEntry, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAcademicRepository) AddCourse(ctx context.Context, learnerID uuid.UUID, c analytics.CourseEntry) (analytics.CourseEntry, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO course_entries (id, learner_id, course_code, course_name, credits, grade, year)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, learnerID, c.CourseCode, c.CourseName, c.Credits, string(c.Grade), c.Year,
	)
	if err != nil {
		return analytics.CourseEntry{}, err
	}
	return c, nil
}

func (r *PostgresAcademicRepository) UpdateCourse(ctx context.Context, learnerID uuid.UUID, c analytics.CourseEntry) (analytics.CourseEntry, error) {
	row := r.q.QueryRow(ctx,
		`UPDATE course_entries
		 SET course_code = $3, course_name = $4, credits = $5, grade = $6, year = $7
		 WHERE id = $1 AND learner_id = $2
		 RETURNING id, course_code, course_name, credits, grade, year`,
		c.ID, learnerID, c.CourseCode, c.CourseName, c.Credits, string(c.Grade), c.Year,
	)
	updated, err := scanCourse(row)
	if err != nil {
		if postgres.IsNoRows(err) {
			return analytics.CourseEntry{}, ErrCourseNotFound
		}
		return analytics.CourseEntry{}, err
	}
	return updated, nil
}

func (r *PostgresAcademicRepository) RemoveCourse(ctx context.Context, learnerID, courseID uuid.UUID) error {
	rowsAffected, err := r.q.Exec(ctx,
		`DELETE FROM course_entries WHERE id = $1 AND learner_id = $2`,
		courseID, learnerID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrCourseNotFound
	}
	return nil
}

func (r *PostgresAcademicRepository) SaveGPA(ctx context.Context, learnerID uuid.UUID, gpa analytics.GPA) error {
	_, err := r.q.Exec(ctx,
		`UPDATE academic_records
		 SET cumulative_gpa = $2, current_gpa = $3, updated_at = now()
		 WHERE learner_id = $1`,
		learnerID, gpa.CumulativeGPA, gpa.CurrentGPA,
	)
	return err
}

func scanCourse(row database.Row) (analytics.CourseEntry, error) {
	var (
		c     analytics.CourseEntry
		grade string
	)
	if err := row.Scan(&c.ID, &c.CourseCode, &c.CourseName, &c.Credits, &grade, &c.Year); err != nil {
		return analytics.CourseEntry{}, err
	}
	c.Grade = analytics.Grade(grade)
	return c, nil
}
