package analytics

import (
	"math"
	"strings"
	"time"
)

const (
	GradeAPlus  Grade = "A+"
	GradeA      Grade = "A"
	GradeAMinus Grade = "A-"
	GradeBPlus  Grade = "B+"
	GradeB      Grade = "B"
	GradeBMinus Grade = "B-"
	GradeCPlus  Grade = "C+"
	GradeC      Grade = "C"
	GradeCMinus Grade = "C-"
	GradeDPlus  Grade = "D+"
	GradeD      Grade = "D"
	GradeF      Grade = "F"

	GradePass       Grade = "P"
	GradeNoPass     Grade = "NP"
	GradeIncomplete Grade = "I"
	GradeWithdrawal Grade = "W"
)

const DefaultCredits = 3.0

var gradePoints = map[Grade]float64{
	GradeAPlus:  4.0,
	GradeA:      4.0,
	GradeAMinus: 3.7,
	GradeBPlus:  3.3,
	GradeB:      3.0,
	GradeBMinus: 2.7,
	GradeCPlus:  2.3,
	GradeC:      2.0,
	GradeCMinus: 1.7,
	GradeDPlus:  1.3,
	GradeD:      1.0,
	GradeF:      0.0,
}

// Markers are valid grades that carry no points and no credit weight.
var nonGradable = map[Grade]struct{}{
	GradePass:       {},
	GradeNoPass:     {},
	GradeIncomplete: {},
	GradeWithdrawal: {},
}

func NormalizeGrade(g string) Grade {
	return Grade(strings.ToUpper(strings.TrimSpace(g)))
}

func IsValidGrade(g Grade) bool {
	g = NormalizeGrade(string(g))
	if _, ok := gradePoints[g]; ok {
		return true
	}
	_, ok := nonGradable[g]
	return ok
}

// GradePoints reports the point value of a grade and whether it counts
// towards the average at all.
func GradePoints(g Grade) (float64, bool) {
	p, ok := gradePoints[NormalizeGrade(string(g))]
	return p, ok
}

// ComputeGPA derives the cumulative and current averages from scratch.
// The current window covers entries with year >= asOf.Year()-1 and falls
// back to the cumulative figure when it holds no weighted credit. Only
// gradable entries qualify, so a window of P/NP/I/W marks (or zero-credit
// courses) also falls back.
func ComputeGPA(courses []CourseEntry, asOf time.Time) (GPA, error) {
	if len(courses) == 0 {
		return GPA{}, nil
	}

	windowStart := asOf.Year() - 1

	var totalPoints, totalCredits float64
	var currentPoints, currentCredits float64

	for i, c := range courses {
		if strings.TrimSpace(c.CourseCode) == "" {
			return GPA{}, invalidAt("courses", i, "course code is required")
		}
		if c.Credits < 0 || math.IsNaN(c.Credits) || math.IsInf(c.Credits, 0) {
			return GPA{}, invalidAt("courses", i, "credits must be a non-negative number")
		}
		if !IsValidGrade(c.Grade) {
			return GPA{}, invalidAt("courses", i, "unknown grade "+string(c.Grade))
		}

		points, gradable := GradePoints(c.Grade)
		if !gradable {
			continue
		}

		totalPoints += points * c.Credits
		totalCredits += c.Credits

		if c.Year >= windowStart {
			currentPoints += points * c.Credits
			currentCredits += c.Credits
		}
	}

	cumulative := weightedAverage(totalPoints, totalCredits)
	current := cumulative
	if currentCredits > 0 {
		current = weightedAverage(currentPoints, currentCredits)
	}

	return GPA{CumulativeGPA: cumulative, CurrentGPA: current}, nil
}

func weightedAverage(points, credits float64) float64 {
	if credits <= 0 {
		return 0
	}
	return round2(points / credits)
}
