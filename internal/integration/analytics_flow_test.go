package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"skill-insight/internal/app"
	"skill-insight/internal/config"
	"skill-insight/internal/database/seeder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type named struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Title string    `json:"title"`
}

func TestIntegration_LearnerAnalyticsFlow(t *testing.T) {
	cfg := testConfig(t)

	c, err := app.NewContainer(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	require.NoError(t, seeder.Runner{Seeders: seeder.Defaults()}.Run(ctx, c.DB))

	a := app.New(c)

	email := fmt.Sprintf("it-%s@example.com", uuid.NewString()[:8])
	var auth struct {
		AccessToken string `json:"access_token"`
		Learner     struct {
			ID uuid.UUID `json:"id"`
		} `json:"learner"`
	}
	status := call(t, a, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email":          email,
		"password":       "correct-horse-battery",
		"full_name":      "Integration Learner",
		"specialization": "Backend Engineering",
	}, &auth)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, auth.AccessToken)
	t.Cleanup(func() {
		_, _ = c.DB.Exec(context.Background(), `DELETE FROM learners WHERE id = $1`, auth.Learner.ID)
	})
	tok := auth.AccessToken

	var skills struct {
		Items []named `json:"items"`
	}
	require.Equal(t, http.StatusOK, call(t, a, http.MethodGet, "/api/v1/skills", "", nil, &skills))
	goID := findID(t, skills.Items, "Go")

	var record struct {
		Level string `json:"level"`
		Score int    `json:"score"`
	}
	status = call(t, a, http.MethodPost, "/api/v1/me/skills", tok, map[string]any{
		"skill_id": goID,
		"level":    "intermediate",
		"score":    65,
	}, &record)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "intermediate", record.Level)
	assert.Equal(t, 65, record.Score)

	status = call(t, a, http.MethodPost, "/api/v1/me/skills/"+goID.String()+"/evidence", tok, map[string]any{
		"type":    "project",
		"item_id": "api-gateway",
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	var academic struct {
		CumulativeGPA float64 `json:"cumulative_gpa"`
		Courses       []any   `json:"courses"`
	}
	for _, course := range []map[string]any{
		{"course_code": "CS101", "course_name": "Introduction to Programming", "credits": 3, "grade": "A", "year": 2024},
		{"course_code": "CS220", "course_name": "Databases", "credits": 4, "grade": "B", "year": 2024},
		{"course_code": "CS310", "course_name": "Distributed Systems", "credits": 4, "grade": "W", "year": 2025},
	} {
		status = call(t, a, http.MethodPost, "/api/v1/me/academic/courses", tok, course, &academic)
		require.Equal(t, http.StatusCreated, status)
	}
	assert.Len(t, academic.Courses, 3)
	assert.InDelta(t, 24.0/7.0, academic.CumulativeGPA, 0.01)

	var readiness struct {
		Items []struct {
			CareerPath named `json:"career_path"`
			Readiness  struct {
				Score    int `json:"score"`
				MetCount int `json:"met_count"`
			} `json:"readiness"`
		} `json:"items"`
	}
	require.Equal(t, http.StatusOK, call(t, a, http.MethodGet, "/api/v1/me/analytics/readiness", tok, nil, &readiness))
	require.NotEmpty(t, readiness.Items)
	for i := 1; i < len(readiness.Items); i++ {
		assert.GreaterOrEqual(t, readiness.Items[i-1].Readiness.Score, readiness.Items[i].Readiness.Score)
	}
	var backendMet int
	for _, it := range readiness.Items {
		if it.CareerPath.Title == "Backend Engineer" {
			backendMet = it.Readiness.MetCount
		}
	}
	assert.GreaterOrEqual(t, backendMet, 1)

	var recs struct {
		NewSkills []named `json:"new_skills"`
		Courses   []named `json:"courses"`
	}
	status = call(t, a, http.MethodGet, "/api/v1/me/analytics/recommendations?specialty=Backend+Engineering", tok, nil, &recs)
	require.Equal(t, http.StatusOK, status)
	for _, s := range recs.NewSkills {
		assert.NotEqual(t, "Go", s.Name)
	}
	assert.NotEmpty(t, recs.Courses)

	var timeline struct {
		Total int `json:"total"`
	}
	require.Equal(t, http.StatusOK, call(t, a, http.MethodGet, "/api/v1/me/analytics/timeline", tok, nil, &timeline))
	assert.GreaterOrEqual(t, timeline.Total, 2)
}

func testConfig(t *testing.T) config.Config {
	t.Helper()

	env := func(key string) string {
		if v := strings.TrimSpace(os.Getenv("SKILLINSIGHT_TEST_" + key)); v != "" {
			return v
		}
		return strings.TrimSpace(os.Getenv(key))
	}

	db := config.DatabaseConfig{
		DBHost:     env("DB_HOST"),
		DBPort:     env("DB_PORT"),
		DBName:     env("DB_NAME"),
		DBUser:     env("DB_USER"),
		DBPassword: env("DB_PASSWORD"),
		DBSSLMode:  env("DB_SSLMODE"),
	}
	if db.DBHost == "" || db.DBPort == "" || db.DBName == "" || db.DBUser == "" {
		t.Skip("integration database not configured (set SKILLINSIGHT_TEST_DB_HOST/PORT/NAME/USER/PASSWORD)")
	}
	if db.DBSSLMode == "" {
		db.DBSSLMode = "disable"
	}

	return config.Config{
		App:      config.AppConfig{AppName: "skill-insight-it", AutoMigrate: true},
		Database: db,
		Redis:    config.RedisConfig{Host: env("REDIS_HOST"), Port: env("REDIS_PORT"), TTL: time.Minute},
		JWT: config.JWTConfig{
			AccessSecret:     "it-access",
			RefreshSecret:    "it-refresh",
			AccessExpiresIn:  time.Minute,
			RefreshExpiresIn: time.Hour,
		},
	}
}

func call(t *testing.T, a *app.App, method, path, token string, body any, out any) int {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.Fiber.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.Equal(t, resp.StatusCode, env.Status, env.Message)
	if out != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return resp.StatusCode
}

func findID(t *testing.T, items []named, name string) uuid.UUID {
	t.Helper()
	for _, it := range items {
		if it.Name == name {
			return it.ID
		}
	}
	t.Fatalf("seeded skill %q not found", name)
	return uuid.Nil
}
