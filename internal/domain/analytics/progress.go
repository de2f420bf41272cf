package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	RecentActivityLimit = 10

	uncategorized    = "Uncategorized"
	generalSpecialty = "General"
	unratedLevel     = "unrated"
)

type GoalStatus string

const (
	GoalCompleted GoalStatus = "completed"
	GoalOverdue   GoalStatus = "overdue"
	GoalPending   GoalStatus = "pending"
)

type GoalStats struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	Overdue        int     `json:"overdue"`
	Pending        int     `json:"pending"`
	CompletionRate float64 `json:"completion_rate"`
}

type ActivityEntry struct {
	SkillID      uuid.UUID        `json:"skill_id"`
	SkillName    string           `json:"skill_name"`
	Category     string           `json:"category"`
	EvidenceType string           `json:"evidence_type"`
	ItemID       string           `json:"item_id"`
	Date         time.Time        `json:"date"`
	Level        ProficiencyLevel `json:"level"`
	Score        int              `json:"score"`
}

type ProgressSummary struct {
	TotalSkills    int             `json:"total_skills"`
	ByCategory     map[string]int  `json:"by_category"`
	BySpecialty    map[string]int  `json:"by_specialty"`
	ByLevel        map[string]int  `json:"by_level"`
	AverageScore   float64         `json:"average_score"`
	Goals          GoalStats       `json:"goals"`
	RecentActivity []ActivityEntry `json:"recent_activity"`

	activity []ActivityEntry
}

// AllActivity returns the untruncated feed, newest first.
func (p ProgressSummary) AllActivity() []ActivityEntry {
	out := make([]ActivityEntry, len(p.activity))
	copy(out, p.activity)
	return out
}

// ClassifyGoal reports the status of a record's goal as of asOf. ok is false
// when the record has no target level.
func ClassifyGoal(r SkillRecord, asOf time.Time) (status GoalStatus, ok bool) {
	if !r.hasGoal() {
		return "", false
	}
	if sameLevel(r.Proficiency.Level, r.Goal.TargetLevel) {
		return GoalCompleted, true
	}
	if r.Goal.TargetDate != nil && r.Goal.TargetDate.Before(asOf) {
		return GoalOverdue, true
	}
	return GoalPending, true
}

func AggregateProgress(records []SkillWithCatalog, asOf time.Time) (ProgressSummary, error) {
	sum := ProgressSummary{
		TotalSkills:    len(records),
		ByCategory:     map[string]int{},
		BySpecialty:    map[string]int{},
		ByLevel:        map[string]int{},
		RecentActivity: []ActivityEntry{},
	}

	var scoreTotal int
	feed := make([]ActivityEntry, 0, len(records))

	for i, it := range records {
		if err := validateJoined(it, i); err != nil {
			return ProgressSummary{}, err
		}
		rec := it.Record

		sum.ByCategory[bucket(it.Skill.Category, uncategorized)]++
		sum.BySpecialty[bucket(it.Skill.Specialty, generalSpecialty)]++
		sum.ByLevel[bucket(normalizeLabel(string(rec.Proficiency.Level)), unratedLevel)]++
		scoreTotal += ClampScore(rec.Proficiency.Score)

		if status, ok := ClassifyGoal(rec, asOf); ok {
			sum.Goals.Total++
			switch status {
			case GoalCompleted:
				sum.Goals.Completed++
			case GoalOverdue:
				sum.Goals.Overdue++
			}
		}

		if ev, ok := latestEvidence(rec.Evidence); ok {
			feed = append(feed, ActivityEntry{
				SkillID:      rec.SkillID,
				SkillName:    it.Skill.Name,
				Category:     it.Skill.Category,
				EvidenceType: ev.Type,
				ItemID:       ev.ItemID,
				Date:         ev.Date,
				Level:        rec.Proficiency.Level,
				Score:        ClampScore(rec.Proficiency.Score),
			})
		}
	}

	if len(records) > 0 {
		sum.AverageScore = round2(float64(scoreTotal) / float64(len(records)))
	}

	sum.Goals.Pending = sum.Goals.Total - sum.Goals.Completed - sum.Goals.Overdue
	if sum.Goals.Total > 0 {
		sum.Goals.CompletionRate = round2(float64(sum.Goals.Completed) / float64(sum.Goals.Total) * 100)
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Date.After(feed[j].Date)
	})
	sum.activity = feed
	if len(feed) > RecentActivityLimit {
		sum.RecentActivity = append(sum.RecentActivity, feed[:RecentActivityLimit]...)
	} else {
		sum.RecentActivity = append(sum.RecentActivity, feed...)
	}

	return sum, nil
}

// latestEvidence picks the most recently dated entry; on equal dates the
// earlier entry in the list wins.
func latestEvidence(evidence []Evidence) (Evidence, bool) {
	if len(evidence) == 0 {
		return Evidence{}, false
	}
	best := evidence[0]
	for _, ev := range evidence[1:] {
		if ev.Date.After(best.Date) {
			best = ev
		}
	}
	return best, true
}

func validateJoined(it SkillWithCatalog, idx int) error {
	if it.Record.SkillID == uuid.Nil {
		return invalidAt("records", idx, "skill id is required")
	}
	if it.Skill.ID != uuid.Nil && it.Skill.ID != it.Record.SkillID {
		return invalidAt("records", idx, "catalog entry does not match skill id")
	}
	return nil
}

func bucket(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
