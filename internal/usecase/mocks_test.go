package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"skill-insight/internal/domain/analytics"
	"skill-insight/internal/domain/learner"
	"skill-insight/internal/repository"

	"github.com/google/uuid"
)

type mockLearnerRepo struct {
	mu       sync.Mutex
	learners map[uuid.UUID]learner.Learner
	err      error
}

func newMockLearnerRepo(ls ...learner.Learner) *mockLearnerRepo {
	m := &mockLearnerRepo{learners: map[uuid.UUID]learner.Learner{}}
	for _, l := range ls {
		m.learners[l.ID] = l
	}
	return m
}

func (m *mockLearnerRepo) Create(_ context.Context, l learner.Learner) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, existing := range m.learners {
		if existing.Email == l.Email {
			return learner.ErrEmailDuplicate
		}
	}
	m.learners[l.ID] = l
	return nil
}

func (m *mockLearnerRepo) GetByID(_ context.Context, id uuid.UUID) (learner.Learner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return learner.Learner{}, m.err
	}
	l, ok := m.learners[id]
	if !ok {
		return learner.Learner{}, learner.ErrNotFound
	}
	return l, nil
}

func (m *mockLearnerRepo) GetByEmail(_ context.Context, email string) (learner.Learner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.learners {
		if l.Email == email {
			return l, nil
		}
	}
	return learner.Learner{}, learner.ErrNotFound
}

func (m *mockLearnerRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

func (m *mockLearnerRepo) UpdateProfile(_ context.Context, id uuid.UUID, p learner.Profile) (learner.Learner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.learners[id]
	if !ok {
		return learner.Learner{}, learner.ErrNotFound
	}
	if p.FullName != nil {
		l.FullName = *p.FullName
	}
	if p.Specialization != nil {
		l.Specialization = *p.Specialization
	}
	if p.CareerGoal != nil {
		l.CareerGoal = *p.CareerGoal
	}
	m.learners[id] = l
	return l, nil
}

type mockSkillCatalogRepo struct {
	mu     sync.Mutex
	skills []analytics.SkillCatalogEntry
	calls  int
	err    error
}

func (m *mockSkillCatalogRepo) List(context.Context) ([]analytics.SkillCatalogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return append([]analytics.SkillCatalogEntry(nil), m.skills...), nil
}

func (m *mockSkillCatalogRepo) ListByIDs(_ context.Context, ids []uuid.UUID) ([]analytics.SkillCatalogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := map[uuid.UUID]bool{}
	for _, id := range ids {
		want[id] = true
	}
	out := []analytics.SkillCatalogEntry{}
	for _, s := range m.skills {
		if want[s.ID] {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSkillCatalogRepo) GetByID(_ context.Context, id uuid.UUID) (analytics.SkillCatalogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.skills {
		if s.ID == id {
			return s, nil
		}
	}
	return analytics.SkillCatalogEntry{}, repository.ErrSkillNotFound
}

func (m *mockSkillCatalogRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := m.GetByID(ctx, id)
	return err == nil, nil
}

func (m *mockSkillCatalogRepo) Create(_ context.Context, s analytics.SkillCatalogEntry) (analytics.SkillCatalogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.skills {
		if existing.Name == s.Name {
			return analytics.SkillCatalogEntry{}, repository.ErrSkillDuplicate
		}
	}
	s.ID = uuid.New()
	m.skills = append(m.skills, s)
	return s, nil
}

type mockCourseCatalogRepo struct {
	mu      sync.Mutex
	courses []analytics.CourseCatalogEntry
	calls   int
}

func (m *mockCourseCatalogRepo) List(context.Context) ([]analytics.CourseCatalogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.courses, nil
}

type mockCareerPathRepo struct {
	mu    sync.Mutex
	paths []analytics.CareerPathEntry
	calls int
}

func (m *mockCareerPathRepo) List(context.Context) ([]analytics.CareerPathEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return append([]analytics.CareerPathEntry(nil), m.paths...), nil
}

func (m *mockCareerPathRepo) GetByID(_ context.Context, id uuid.UUID) (analytics.CareerPathEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.paths {
		if p.ID == id {
			return p, nil
		}
	}
	return analytics.CareerPathEntry{}, repository.ErrCareerPathNotFound
}

func (m *mockCareerPathRepo) Create(_ context.Context, p analytics.CareerPathEntry) (analytics.CareerPathEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.paths {
		if existing.Title == p.Title {
			return analytics.CareerPathEntry{}, repository.ErrCareerPathDuplicate
		}
	}
	p.ID = uuid.New()
	m.paths = append(m.paths, p)
	return p, nil
}

func (m *mockCareerPathRepo) AddRequiredSkill(_ context.Context, pathID uuid.UUID, rs analytics.RequiredSkill) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.paths {
		if m.paths[i].ID == pathID {
			m.paths[i].RequiredSkills = append(m.paths[i].RequiredSkills, rs)
			return nil
		}
	}
	return repository.ErrCareerPathNotFound
}

func (m *mockCareerPathRepo) RemoveRequiredSkill(_ context.Context, pathID, skillID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.paths {
		if m.paths[i].ID != pathID {
			continue
		}
		kept := m.paths[i].RequiredSkills[:0]
		found := false
		for _, rs := range m.paths[i].RequiredSkills {
			if rs.SkillID == skillID {
				found = true
				continue
			}
			kept = append(kept, rs)
		}
		m.paths[i].RequiredSkills = kept
		if !found {
			return repository.ErrSkillNotFound
		}
		return nil
	}
	return repository.ErrCareerPathNotFound
}

// mockSkillRecordRepo keeps records keyed by learner and skill and joins them
// with its own catalog.
type mockSkillRecordRepo struct {
	mu      sync.Mutex
	catalog map[uuid.UUID]analytics.SkillCatalogEntry
	records map[[2]uuid.UUID]analytics.SkillRecord
	order   [][2]uuid.UUID
	err     error

	upsertErr error
}

func newMockSkillRecordRepo(skills ...analytics.SkillCatalogEntry) *mockSkillRecordRepo {
	m := &mockSkillRecordRepo{
		catalog: map[uuid.UUID]analytics.SkillCatalogEntry{},
		records: map[[2]uuid.UUID]analytics.SkillRecord{},
	}
	for _, s := range skills {
		m.catalog[s.ID] = s
	}
	return m
}

func (m *mockSkillRecordRepo) put(r analytics.SkillRecord) {
	key := [2]uuid.UUID{r.LearnerID, r.SkillID}
	if _, ok := m.records[key]; !ok {
		m.order = append(m.order, key)
	}
	m.records[key] = r
}

func (m *mockSkillRecordRepo) join(r analytics.SkillRecord) analytics.SkillWithCatalog {
	return analytics.SkillWithCatalog{Record: r, Skill: m.catalog[r.SkillID]}
}

func (m *mockSkillRecordRepo) ListByLearner(_ context.Context, learnerID uuid.UUID) ([]analytics.SkillWithCatalog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []analytics.SkillWithCatalog{}
	for _, key := range m.order {
		if key[0] == learnerID {
			out = append(out, m.join(m.records[key]))
		}
	}
	return out, nil
}

func (m *mockSkillRecordRepo) Get(_ context.Context, learnerID, skillID uuid.UUID) (analytics.SkillWithCatalog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[[2]uuid.UUID{learnerID, skillID}]
	if !ok {
		return analytics.SkillWithCatalog{}, repository.ErrSkillRecordNotFound
	}
	return m.join(r), nil
}

func (m *mockSkillRecordRepo) Upsert(_ context.Context, learnerID, skillID uuid.UUID, p analytics.Proficiency) (analytics.SkillWithCatalog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return analytics.SkillWithCatalog{}, m.upsertErr
	}
	key := [2]uuid.UUID{learnerID, skillID}
	r, ok := m.records[key]
	now := time.Now().UTC()
	if !ok {
		r = analytics.SkillRecord{ID: uuid.New(), LearnerID: learnerID, SkillID: skillID, CreatedAt: now}
	}
	r.Proficiency = p
	r.UpdatedAt = now
	m.put(r)
	return m.join(r), nil
}

func (m *mockSkillRecordRepo) modify(learnerID, skillID uuid.UUID, fn func(r *analytics.SkillRecord)) (analytics.SkillWithCatalog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]uuid.UUID{learnerID, skillID}
	r, ok := m.records[key]
	if !ok {
		return analytics.SkillWithCatalog{}, repository.ErrSkillRecordNotFound
	}
	fn(&r)
	r.UpdatedAt = time.Now().UTC()
	m.records[key] = r
	return m.join(r), nil
}

func (m *mockSkillRecordRepo) UpdateProficiency(_ context.Context, learnerID, skillID uuid.UUID, u repository.ProficiencyUpdate) (analytics.SkillWithCatalog, error) {
	return m.modify(learnerID, skillID, func(r *analytics.SkillRecord) {
		if u.Level != nil {
			r.Proficiency.Level = *u.Level
		}
		if u.Score != nil {
			r.Proficiency.Score = *u.Score
		}
	})
}

func (m *mockSkillRecordRepo) AppendEvidence(_ context.Context, learnerID, skillID uuid.UUID, e analytics.Evidence) (analytics.SkillWithCatalog, error) {
	return m.modify(learnerID, skillID, func(r *analytics.SkillRecord) {
		r.Evidence = append(r.Evidence, e)
	})
}

func (m *mockSkillRecordRepo) SetGoal(_ context.Context, learnerID, skillID uuid.UUID, g analytics.Goal) (analytics.SkillWithCatalog, error) {
	return m.modify(learnerID, skillID, func(r *analytics.SkillRecord) {
		r.Goal = &g
	})
}

func (m *mockSkillRecordRepo) ClearGoal(_ context.Context, learnerID, skillID uuid.UUID) (analytics.SkillWithCatalog, error) {
	return m.modify(learnerID, skillID, func(r *analytics.SkillRecord) {
		r.Goal = nil
	})
}

func (m *mockSkillRecordRepo) Delete(_ context.Context, learnerID, skillID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]uuid.UUID{learnerID, skillID}
	if _, ok := m.records[key]; !ok {
		return repository.ErrSkillRecordNotFound
	}
	delete(m.records, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// mockAcademicRepo applies transactional work to a copy and only keeps it
// when fn succeeds.
type mockAcademicRepo struct {
	gpa     map[uuid.UUID]analytics.GPA
	courses map[uuid.UUID][]analytics.CourseEntry
	saves   int

	// missing learners fail like the academic_records foreign key.
	missing map[uuid.UUID]struct{}
}

func newMockAcademicRepo() *mockAcademicRepo {
	return &mockAcademicRepo{
		gpa:     map[uuid.UUID]analytics.GPA{},
		courses: map[uuid.UUID][]analytics.CourseEntry{},
		missing: map[uuid.UUID]struct{}{},
	}
}

func (m *mockAcademicRepo) clone() *mockAcademicRepo {
	c := newMockAcademicRepo()
	for k, v := range m.gpa {
		c.gpa[k] = v
	}
	for k, v := range m.courses {
		c.courses[k] = append([]analytics.CourseEntry(nil), v...)
	}
	c.saves = m.saves
	for k := range m.missing {
		c.missing[k] = struct{}{}
	}
	return c
}

func (m *mockAcademicRepo) InTx(_ context.Context, fn func(repo repository.AcademicRepository) error) error {
	tx := m.clone()
	if err := fn(tx); err != nil {
		return err
	}
	*m = *tx
	return nil
}

func (m *mockAcademicRepo) GetOrCreate(_ context.Context, learnerID uuid.UUID) (repository.AcademicRecord, error) {
	if _, ok := m.missing[learnerID]; ok {
		return repository.AcademicRecord{}, repository.ErrLearnerNotFound
	}
	if _, ok := m.gpa[learnerID]; !ok {
		m.gpa[learnerID] = analytics.GPA{}
	}
	return repository.AcademicRecord{LearnerID: learnerID, GPA: m.gpa[learnerID]}, nil
}

func (m *mockAcademicRepo) ListCourses(_ context.Context, learnerID uuid.UUID) ([]analytics.CourseEntry, error) {
	return append([]analytics.CourseEntry{}, m.courses[learnerID]...), nil
}

func (m *mockAcademicRepo) AddCourse(_ context.Context, learnerID uuid.UUID, c analytics.CourseEntry) (analytics.CourseEntry, error) {
	c.ID = uuid.New()
	m.courses[learnerID] = append(m.courses[learnerID], c)
	return c, nil
}

func (m *mockAcademicRepo) UpdateCourse(_ context.Context, learnerID uuid.UUID, c analytics.CourseEntry) (analytics.CourseEntry, error) {
	for i, existing := range m.courses[learnerID] {
		if existing.ID == c.ID {
			m.courses[learnerID][i] = c
			return c, nil
		}
	}
	return analytics.CourseEntry{}, repository.ErrCourseNotFound
}

func (m *mockAcademicRepo) RemoveCourse(_ context.Context, learnerID, courseID uuid.UUID) error {
	list := m.courses[learnerID]
	for i, existing := range list {
		if existing.ID == courseID {
			m.courses[learnerID] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return repository.ErrCourseNotFound
}

func (m *mockAcademicRepo) SaveGPA(_ context.Context, learnerID uuid.UUID, gpa analytics.GPA) error {
	m.gpa[learnerID] = gpa
	m.saves++
	return nil
}

type mockCache struct {
	mu          sync.Mutex
	items       map[string][]byte
	invalidated int
}

func newMockCache() *mockCache {
	return &mockCache{items: map[string][]byte{}}
}

func (c *mockCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *mockCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.items[key] = b
	return nil
}

func (c *mockCache) InvalidateCatalog(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = map[string][]byte{}
	c.invalidated++
	return nil
}

type notification struct {
	LearnerID uuid.UUID
	Source    string
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []notification
}

func (n *recordingNotifier) NotifyAnalyticsUpdated(learnerID uuid.UUID, source string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notification{LearnerID: learnerID, Source: source})
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}
