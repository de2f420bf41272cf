package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"skill-insight/internal/delivery/http/middleware"
	"skill-insight/internal/domain/analytics"
	"skill-insight/internal/domain/learner"
	"skill-insight/internal/usecase"
	ucauth "skill-insight/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// newTestApp mounts routes behind the error middleware and a stub auth step
// that authenticates every request as learnerID.
func newTestApp(learnerID uuid.UUID, mount func(r fiber.Router)) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	app.Use(func(c fiber.Ctx) error {
		if learnerID != uuid.Nil {
			c.Locals(middleware.CtxLearnerIDKey, learnerID)
		}
		return c.Next()
	})
	mount(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

type fakeAnalytics struct {
	lastFilters analytics.Filters
	readiness   usecase.CareerReadiness
	err         error
}

func (f *fakeAnalytics) Progress(context.Context, uuid.UUID) (analytics.ProgressSummary, error) {
	return analytics.ProgressSummary{TotalSkills: 2}, f.err
}

func (f *fakeAnalytics) Timeline(context.Context, uuid.UUID) (analytics.Timeline, error) {
	return analytics.Timeline{}, f.err
}

func (f *fakeAnalytics) Readiness(context.Context, uuid.UUID, uuid.UUID) (usecase.CareerReadiness, error) {
	return f.readiness, f.err
}

func (f *fakeAnalytics) ReadinessAll(context.Context, uuid.UUID) ([]usecase.CareerReadiness, error) {
	return []usecase.CareerReadiness{f.readiness}, f.err
}

func (f *fakeAnalytics) Recommendations(_ context.Context, _ uuid.UUID, filters analytics.Filters) (analytics.Recommendations, error) {
	f.lastFilters = filters
	return analytics.Recommendations{}, f.err
}

func TestAnalyticsHandler_RecommendationFilters(t *testing.T) {
	fake := &fakeAnalytics{}
	app := newTestApp(uuid.New(), NewAnalyticsHandler(fake).RegisterRoutes)

	status, _ := doJSON(t, app, http.MethodGet,
		"/me/analytics/recommendations?categories=Programming,%20Math,&specialty=Backend&min_score=10&max_score=60&skill_level=beginner", "")
	require.Equal(t, fiber.StatusOK, status)

	f := fake.lastFilters
	assert.Equal(t, []string{"Programming", "Math"}, f.Categories)
	assert.Equal(t, "Backend", f.Specialty)
	require.NotNil(t, f.MinScore)
	require.NotNil(t, f.MaxScore)
	assert.Equal(t, 10, *f.MinScore)
	assert.Equal(t, 60, *f.MaxScore)
	assert.Equal(t, "beginner", f.SkillLevel)
}

func TestAnalyticsHandler_BadScore(t *testing.T) {
	app := newTestApp(uuid.New(), NewAnalyticsHandler(&fakeAnalytics{}).RegisterRoutes)

	status, env := doJSON(t, app, http.MethodGet, "/me/analytics/recommendations?min_score=high", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Invalid min_score", env.Message)
}

func TestAnalyticsHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid", fmt.Errorf("%w: min score is greater than max score", usecase.ErrInvalidInput), fiber.StatusBadRequest},
		{"not found", usecase.ErrCareerPathNotFound, fiber.StatusNotFound},
		{"internal", usecase.ErrInternal, fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(uuid.New(), NewAnalyticsHandler(&fakeAnalytics{err: tc.err}).RegisterRoutes)
			status, env := doJSON(t, app, http.MethodGet, "/me/analytics/readiness/"+uuid.NewString(), "")
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.status, env.Status)
		})
	}
}

func TestAnalyticsHandler_Readiness(t *testing.T) {
	pathID := uuid.New()
	fake := &fakeAnalytics{readiness: usecase.CareerReadiness{
		CareerPath: analytics.CareerPathEntry{ID: pathID, Title: "Backend Engineer"},
		Report:     analytics.ReadinessReport{Score: 67},
	}}
	app := newTestApp(uuid.New(), NewAnalyticsHandler(fake).RegisterRoutes)

	status, _ := doJSON(t, app, http.MethodGet, "/me/analytics/readiness/not-a-uuid", "")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, env := doJSON(t, app, http.MethodGet, "/me/analytics/readiness/"+pathID.String(), "")
	require.Equal(t, fiber.StatusOK, status)
	var body struct {
		CareerPath analytics.CareerPathEntry `json:"career_path"`
		Readiness  analytics.ReadinessReport `json:"readiness"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &body))
	assert.Equal(t, pathID, body.CareerPath.ID)
	assert.Equal(t, 67, body.Readiness.Score)
}

func TestAnalyticsHandler_RequiresLearner(t *testing.T) {
	app := newTestApp(uuid.Nil, NewAnalyticsHandler(&fakeAnalytics{}).RegisterRoutes)

	status, _ := doJSON(t, app, http.MethodGet, "/me/analytics/progress", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

type fakeSkillRecords struct {
	usecase.SkillRecordUsecase
	upserted usecase.UpsertSkillRecordInput
}

func (f *fakeSkillRecords) Upsert(_ context.Context, learnerID uuid.UUID, in usecase.UpsertSkillRecordInput) (analytics.SkillWithCatalog, error) {
	f.upserted = in
	return analytics.SkillWithCatalog{
		Record: analytics.SkillRecord{ID: uuid.New(), LearnerID: learnerID, SkillID: in.SkillID,
			Proficiency: analytics.Proficiency{Level: analytics.LevelBeginner, Score: analytics.ClampScore(in.Score)}},
		Skill: analytics.SkillCatalogEntry{ID: in.SkillID, Name: "Go"},
	}, nil
}

func (f *fakeSkillRecords) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	return usecase.ErrSkillRecordNotFound
}

func TestSkillRecordHandler_Upsert(t *testing.T) {
	fake := &fakeSkillRecords{}
	app := newTestApp(uuid.New(), NewSkillRecordHandler(fake).RegisterRoutes)
	skillID := uuid.New()

	status, env := doJSON(t, app, http.MethodPost, "/me/skills", `{"skill_id":"`+skillID.String()+`","score":140}`)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, skillID, fake.upserted.SkillID)

	var body map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &body))
	assert.Equal(t, "Go", body["skill_name"])
	assert.Equal(t, float64(100), body["score"])
	assert.Equal(t, []any{}, body["evidence"])
}

func TestSkillRecordHandler_ValidationErrorListsFields(t *testing.T) {
	app := newTestApp(uuid.New(), NewSkillRecordHandler(&fakeSkillRecords{}).RegisterRoutes)

	status, env := doJSON(t, app, http.MethodPost, "/me/skills", `{"score":10}`)
	require.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Validation failed", env.Message)

	var fields []map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &fields))
	require.Len(t, fields, 1)
	assert.Equal(t, "skill_id", fields[0]["field"])
	assert.Equal(t, "required", fields[0]["rule"])
}

func TestSkillRecordHandler_DeleteMissing(t *testing.T) {
	app := newTestApp(uuid.New(), NewSkillRecordHandler(&fakeSkillRecords{}).RegisterRoutes)

	status, env := doJSON(t, app, http.MethodDelete, "/me/skills/"+uuid.NewString(), "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "skill record not found", env.Message)
}

type fakeAuth struct {
	err error
}

func (f *fakeAuth) Register(_ context.Context, in ucauth.RegisterInput) (learner.Learner, usecase.TokenPair, error) {
	if f.err != nil {
		return learner.Learner{}, usecase.TokenPair{}, f.err
	}
	return learner.Learner{ID: uuid.New(), Email: in.Email, FullName: in.FullName},
		usecase.TokenPair{AccessToken: "a", RefreshToken: "r"}, nil
}

func (f *fakeAuth) Login(context.Context, ucauth.LoginInput) (learner.Learner, usecase.TokenPair, error) {
	return learner.Learner{}, usecase.TokenPair{}, ucauth.ErrInvalidCredentials
}

func (f *fakeAuth) Refresh(context.Context, string) (usecase.TokenPair, error) {
	return usecase.TokenPair{}, usecase.ErrRefreshTokenExpired
}

func TestAuthHandler(t *testing.T) {
	app := newTestApp(uuid.Nil, func(r fiber.Router) { NewAuthHandler(&fakeAuth{}).RegisterRoutes(r.Group("/auth")) })

	status, env := doJSON(t, app, http.MethodPost, "/auth/register", `{"email":"ana@example.com","password":"correct-horse","full_name":"Ana"}`)
	require.Equal(t, fiber.StatusCreated, status)
	var body map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &body))
	assert.Equal(t, "a", body["access_token"])
	assert.Equal(t, "ana@example.com", body["learner"].(map[string]any)["email"])

	status, _ = doJSON(t, app, http.MethodPost, "/auth/login", `{"email":"ana@example.com","password":"wrong"}`)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = doJSON(t, app, http.MethodPost, "/auth/register", `{"email":"not-an-email","password":"correct-horse"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.Header.Set("Authorization", "Bearer expired")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthHandler_Duplicate(t *testing.T) {
	app := newTestApp(uuid.Nil, func(r fiber.Router) {
		NewAuthHandler(&fakeAuth{err: ucauth.ErrEmailAlreadyRegistered}).RegisterRoutes(r)
	})

	status, env := doJSON(t, app, http.MethodPost, "/register", `{"email":"ana@example.com","password":"correct-horse"}`)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "Email already registered", env.Message)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	app := newTestApp(uuid.Nil, NewHealthHandler(stubPinger{}, stubPinger{err: errors.New("refused")}).RegisterRoutes)
	status, env := doJSON(t, app, http.MethodGet, "/health", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"database":"ok","cache":"bypass"}`, string(env.Data))

	app = newTestApp(uuid.Nil, NewHealthHandler(stubPinger{err: errors.New("down")}, nil).RegisterRoutes)
	status, env = doJSON(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.JSONEq(t, `{"database":"down","cache":"disabled"}`, string(env.Data))
}
