package analytics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asOfYear(y int) time.Time {
	return time.Date(y, time.June, 1, 0, 0, 0, 0, time.UTC)
}

func TestComputeGPA_Empty(t *testing.T) {
	got, err := ComputeGPA(nil, asOfYear(2024))
	require.NoError(t, err)
	assert.Equal(t, GPA{}, got)
}

func TestComputeGPA_OnlyNonGradable(t *testing.T) {
	courses := []CourseEntry{
		{CourseCode: "NUR100", Credits: 3, Grade: GradePass, Year: 2024},
		{CourseCode: "NUR101", Credits: 4, Grade: GradeIncomplete, Year: 2024},
		{CourseCode: "NUR102", Credits: 2, Grade: GradeWithdrawal, Year: 2023},
		{CourseCode: "NUR103", Credits: 1, Grade: GradeNoPass, Year: 2022},
	}
	got, err := ComputeGPA(courses, asOfYear(2024))
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.CumulativeGPA)
	assert.Equal(t, 0.0, got.CurrentGPA)
}

func TestComputeGPA_WeightedExample(t *testing.T) {
	courses := []CourseEntry{
		{CourseCode: "BIO201", Grade: GradeA, Credits: 3, Year: 2024},
		{CourseCode: "CHM110", Grade: GradeBMinus, Credits: 4, Year: 2023},
	}
	got, err := ComputeGPA(courses, asOfYear(2024))
	require.NoError(t, err)
	assert.Equal(t, 3.26, got.CumulativeGPA)
	assert.Equal(t, 3.26, got.CurrentGPA)
}

func TestComputeGPA_OrderInvariant(t *testing.T) {
	courses := []CourseEntry{
		{CourseCode: "A1", Grade: GradeAMinus, Credits: 3, Year: 2021},
		{CourseCode: "A2", Grade: GradeCPlus, Credits: 2, Year: 2022},
		{CourseCode: "A3", Grade: GradeDPlus, Credits: 4, Year: 2024},
		{CourseCode: "A4", Grade: GradeBPlus, Credits: 1, Year: 2023},
	}
	reversed := make([]CourseEntry, len(courses))
	for i := range courses {
		reversed[len(courses)-1-i] = courses[i]
	}

	a, err := ComputeGPA(courses, asOfYear(2024))
	require.NoError(t, err)
	b, err := ComputeGPA(reversed, asOfYear(2024))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestComputeGPA_CurrentWindow(t *testing.T) {
	courses := []CourseEntry{
		{CourseCode: "OLD1", Grade: GradeF, Credits: 3, Year: 2020},
		{CourseCode: "NEW1", Grade: GradeA, Credits: 3, Year: 2024},
	}
	got, err := ComputeGPA(courses, asOfYear(2024))
	require.NoError(t, err)
	assert.Equal(t, 2.0, got.CumulativeGPA)
	assert.Equal(t, 4.0, got.CurrentGPA)
}

func TestComputeGPA_CurrentFallsBackToCumulative(t *testing.T) {
	courses := []CourseEntry{
		{CourseCode: "OLD1", Grade: GradeB, Credits: 3, Year: 2018},
		{CourseCode: "OLD2", Grade: GradeAMinus, Credits: 3, Year: 2019},
		{CourseCode: "NEW1", Grade: GradePass, Credits: 3, Year: 2024},
	}
	got, err := ComputeGPA(courses, asOfYear(2024))
	require.NoError(t, err)
	assert.Equal(t, 3.35, got.CumulativeGPA)
	assert.Equal(t, got.CumulativeGPA, got.CurrentGPA)
}

func TestComputeGPA_ZeroCredits(t *testing.T) {
	courses := []CourseEntry{{CourseCode: "SEM0", Grade: GradeA, Credits: 0, Year: 2024}}
	got, err := ComputeGPA(courses, asOfYear(2024))
	require.NoError(t, err)
	assert.Equal(t, GPA{}, got)
}

func TestComputeGPA_GradeCaseInsensitive(t *testing.T) {
	courses := []CourseEntry{{CourseCode: "X1", Grade: " b+ ", Credits: 3, Year: 2024}}
	got, err := ComputeGPA(courses, asOfYear(2024))
	require.NoError(t, err)
	assert.Equal(t, 3.3, got.CumulativeGPA)
}

func TestComputeGPA_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		course CourseEntry
	}{
		{name: "unknown grade", course: CourseEntry{CourseCode: "X", Grade: "E", Credits: 3}},
		{name: "negative credits", course: CourseEntry{CourseCode: "X", Grade: GradeA, Credits: -1}},
		{name: "missing code", course: CourseEntry{CourseCode: "  ", Grade: GradeA, Credits: 3}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ComputeGPA([]CourseEntry{tc.course}, asOfYear(2024))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, "courses[0]", ve.Field)
		})
	}
}
