package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"skill-insight/internal/domain/analytics"
	"skill-insight/internal/repository"

	"github.com/google/uuid"
)

type UpsertSkillRecordInput struct {
	SkillID uuid.UUID
	Level   string
	Score   int
}

// UpdateProficiencyInput sets level and score independently; nil leaves the
// stored value unchanged.
type UpdateProficiencyInput struct {
	Level *string
	Score *int
}

type AddEvidenceInput struct {
	Type   string
	ItemID string
	Date   *time.Time
}

type SetGoalInput struct {
	TargetLevel string
	TargetDate  *time.Time
}

type SkillRecordUsecase interface {
	List(ctx context.Context, learnerID uuid.UUID) ([]analytics.SkillWithCatalog, error)
	Upsert(ctx context.Context, learnerID uuid.UUID, in UpsertSkillRecordInput) (analytics.SkillWithCatalog, error)
	UpdateProficiency(ctx context.Context, learnerID, skillID uuid.UUID, in UpdateProficiencyInput) (analytics.SkillWithCatalog, error)
	AddEvidence(ctx context.Context, learnerID, skillID uuid.UUID, in AddEvidenceInput) (analytics.SkillWithCatalog, error)
	SetGoal(ctx context.Context, learnerID, skillID uuid.UUID, in SetGoalInput) (analytics.SkillWithCatalog, error)
	ClearGoal(ctx context.Context, learnerID, skillID uuid.UUID) (analytics.SkillWithCatalog, error)
	Delete(ctx context.Context, learnerID, skillID uuid.UUID) error
}

type SkillRecords struct {
	records  repository.SkillRecordRepository
	skills   repository.SkillCatalogRepository
	notifier AnalyticsNotifier
	now      func() time.Time
}

func NewSkillRecordUsecase(
	records repository.SkillRecordRepository,
	skills repository.SkillCatalogRepository,
	notifier AnalyticsNotifier,
) *SkillRecords {
	return &SkillRecords{records: records, skills: skills, notifier: notifierOrNop(notifier), now: time.Now}
}

func (u *SkillRecords) List(ctx context.Context, learnerID uuid.UUID) ([]analytics.SkillWithCatalog, error) {
	items, err := u.records.ListByLearner(ctx, learnerID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

// Upsert creates the learner's record for a skill on first write and
// overwrites level and score afterwards. An empty level means beginner.
func (u *SkillRecords) Upsert(ctx context.Context, learnerID uuid.UUID, in UpsertSkillRecordInput) (analytics.SkillWithCatalog, error) {
	if in.SkillID == uuid.Nil {
		return analytics.SkillWithCatalog{}, invalidf("skill id is required")
	}
	level := analytics.LevelBeginner
	if strings.TrimSpace(in.Level) != "" {
		var err error
		if level, err = analytics.ParseProficiencyLevel(in.Level); err != nil {
			return analytics.SkillWithCatalog{}, invalidInput(err)
		}
	}

	exists, err := u.skills.ExistsByID(ctx, in.SkillID)
	if err != nil {
		return analytics.SkillWithCatalog{}, ErrInternal
	}
	if !exists {
		return analytics.SkillWithCatalog{}, ErrSkillNotFound
	}

	it, err := u.records.Upsert(ctx, learnerID, in.SkillID, analytics.Proficiency{
		Level: level,
		Score: analytics.ClampScore(in.Score),
	})
	return u.afterWrite(learnerID, it, err)
}

func (u *SkillRecords) UpdateProficiency(ctx context.Context, learnerID, skillID uuid.UUID, in UpdateProficiencyInput) (analytics.SkillWithCatalog, error) {
	if in.Level == nil && in.Score == nil {
		return analytics.SkillWithCatalog{}, invalidf("level or score is required")
	}

	upd := repository.ProficiencyUpdate{}
	if in.Level != nil {
		level, err := analytics.ParseProficiencyLevel(*in.Level)
		if err != nil {
			return analytics.SkillWithCatalog{}, invalidInput(err)
		}
		upd.Level = &level
	}
	if in.Score != nil {
		score := analytics.ClampScore(*in.Score)
		upd.Score = &score
	}

	it, err := u.records.UpdateProficiency(ctx, learnerID, skillID, upd)
	return u.afterWrite(learnerID, it, err)
}

func (u *SkillRecords) AddEvidence(ctx context.Context, learnerID, skillID uuid.UUID, in AddEvidenceInput) (analytics.SkillWithCatalog, error) {
	typ := strings.TrimSpace(in.Type)
	if typ == "" {
		return analytics.SkillWithCatalog{}, invalidf("evidence type is required")
	}
	date := u.now().UTC()
	if in.Date != nil && !in.Date.IsZero() {
		date = in.Date.UTC()
	}

	it, err := u.records.AppendEvidence(ctx, learnerID, skillID, analytics.Evidence{
		Type:   typ,
		ItemID: strings.TrimSpace(in.ItemID),
		Date:   date,
	})
	return u.afterWrite(learnerID, it, err)
}

func (u *SkillRecords) SetGoal(ctx context.Context, learnerID, skillID uuid.UUID, in SetGoalInput) (analytics.SkillWithCatalog, error) {
	level, err := analytics.ParseProficiencyLevel(in.TargetLevel)
	if err != nil {
		return analytics.SkillWithCatalog{}, invalidInput(err)
	}
	goal := analytics.Goal{TargetLevel: level}
	if in.TargetDate != nil && !in.TargetDate.IsZero() {
		d := in.TargetDate.UTC()
		goal.TargetDate = &d
	}

	it, err := u.records.SetGoal(ctx, learnerID, skillID, goal)
	return u.afterWrite(learnerID, it, err)
}

func (u *SkillRecords) ClearGoal(ctx context.Context, learnerID, skillID uuid.UUID) (analytics.SkillWithCatalog, error) {
	it, err := u.records.ClearGoal(ctx, learnerID, skillID)
	return u.afterWrite(learnerID, it, err)
}

func (u *SkillRecords) Delete(ctx context.Context, learnerID, skillID uuid.UUID) error {
	if err := u.records.Delete(ctx, learnerID, skillID); err != nil {
		return mapSkillRecordErr(err)
	}
	u.notifier.NotifyAnalyticsUpdated(learnerID, SourceSkillRecord)
	return nil
}

func (u *SkillRecords) afterWrite(learnerID uuid.UUID, it analytics.SkillWithCatalog, err error) (analytics.SkillWithCatalog, error) {
	if err != nil {
		return analytics.SkillWithCatalog{}, mapSkillRecordErr(err)
	}
	u.notifier.NotifyAnalyticsUpdated(learnerID, SourceSkillRecord)
	return it, nil
}

func mapSkillRecordErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrSkillRecordNotFound):
		return ErrSkillRecordNotFound
	case errors.Is(err, repository.ErrSkillNotFound):
		return ErrSkillNotFound
	case errors.Is(err, repository.ErrLearnerNotFound):
		return ErrLearnerNotFound
	default:
		return ErrInternal
	}
}
