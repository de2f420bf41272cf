package analytics

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(skillID uuid.UUID, level ProficiencyLevel, score int) SkillRecord {
	return SkillRecord{ID: uuid.New(), SkillID: skillID, Proficiency: Proficiency{Level: level, Score: score}}
}

func TestProficiencyOrdinal(t *testing.T) {
	tests := []struct {
		label ProficiencyLevel
		want  int
	}{
		{"beginner", 1},
		{"Intermediate", 2},
		{" ADVANCED ", 3},
		{"expert", 4},
		{"master", 5},
		{"", 0},
		{"guru", 0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ProficiencyOrdinal(tc.label), "label %q", tc.label)
	}
}

func TestParseProficiencyLevel(t *testing.T) {
	lvl, err := ParseProficiencyLevel("Expert")
	require.NoError(t, err)
	assert.Equal(t, LevelExpert, lvl)

	_, err = ParseProficiencyLevel("novice")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestScoreReadiness_EmptyRequirements(t *testing.T) {
	got, err := ScoreReadiness([]SkillRecord{record(uuid.New(), LevelBeginner, 5)}, nil)
	require.NoError(t, err)
	assert.Equal(t, 100, got)
}

func TestScoreReadiness_AbsentSkillIsBeginner(t *testing.T) {
	x := uuid.New()
	got, err := ScoreReadiness(nil, []RequiredSkill{{SkillID: x, RequiredLevel: LevelAdvanced}})
	require.NoError(t, err)
	assert.Equal(t, 33, got)
}

func TestScoreReadiness_UnattainedLevelsScoreZero(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	records := []SkillRecord{record(a, "", 0), record(b, "unknown", 80)}
	required := []RequiredSkill{
		{SkillID: a, RequiredLevel: LevelIntermediate},
		{SkillID: b, RequiredLevel: LevelExpert},
	}
	got, err := ScoreReadiness(records, required)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestScoreReadiness_SurplusDoesNotOffsetDeficit(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	records := []SkillRecord{record(a, LevelMaster, 100)}
	required := []RequiredSkill{
		{SkillID: a, RequiredLevel: LevelAdvanced},
		{SkillID: b, RequiredLevel: LevelAdvanced},
	}
	rep, err := AssessReadiness(records, required)
	require.NoError(t, err)
	// (3 + 1) / 6
	assert.Equal(t, 67, rep.Score)
	assert.Equal(t, 1, rep.MetCount)
	assert.Equal(t, 1, rep.MissingCount)
	require.Len(t, rep.Requirements, 2)
	assert.True(t, rep.Requirements[0].Held)
	assert.False(t, rep.Requirements[1].Held)
	assert.Equal(t, LevelBeginner, rep.Requirements[1].CurrentLevel)
}

func TestScoreReadiness_FullyReady(t *testing.T) {
	a := uuid.New()
	got, err := ScoreReadiness(
		[]SkillRecord{record(a, "EXPERT", 10)},
		[]RequiredSkill{{SkillID: a, RequiredLevel: "expert"}},
	)
	require.NoError(t, err)
	assert.Equal(t, 100, got)
}

func TestScoreReadiness_Monotonic(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	required := []RequiredSkill{
		{SkillID: a, RequiredLevel: LevelExpert},
		{SkillID: b, RequiredLevel: LevelIntermediate},
		{SkillID: c, RequiredLevel: LevelMaster},
	}
	others := []SkillRecord{record(b, LevelBeginner, 20)}

	prev := -1
	for _, lvl := range append([]ProficiencyLevel{""}, Levels()...) {
		records := append([]SkillRecord{record(a, lvl, 0)}, others...)
		got, err := ScoreReadiness(records, required)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, prev, "level %q", lvl)
		prev = got
	}
}

func TestScoreReadiness_UnknownRequiredLevels(t *testing.T) {
	got, err := ScoreReadiness(nil, []RequiredSkill{{SkillID: uuid.New(), RequiredLevel: "guru"}})
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestScoreReadiness_RejectsNilIDs(t *testing.T) {
	_, err := ScoreReadiness(nil, []RequiredSkill{{RequiredLevel: LevelAdvanced}})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = ScoreReadiness([]SkillRecord{{}}, []RequiredSkill{{SkillID: uuid.New(), RequiredLevel: LevelAdvanced}})
	require.ErrorIs(t, err, ErrInvalidInput)
}
