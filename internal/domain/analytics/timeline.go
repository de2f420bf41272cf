package analytics

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

type EventKind string

const (
	EventSkillAdded         EventKind = "skill_added"
	EventEvidenceAdded      EventKind = "evidence_added"
	EventProficiencyUpdated EventKind = "proficiency_updated"
	EventGoalSet            EventKind = "goal_set"
)

type TimelineEvent struct {
	Kind      EventKind        `json:"kind"`
	Date      time.Time        `json:"date"`
	SkillID   uuid.UUID        `json:"skill_id"`
	SkillName string           `json:"skill_name"`
	Category  string           `json:"category"`
	Level     ProficiencyLevel `json:"level,omitempty"`
	Score     *int             `json:"score,omitempty"`
	Evidence  *Evidence        `json:"evidence,omitempty"`
	Goal      *Goal            `json:"goal,omitempty"`

	// Approximated marks a skill_added event whose level and score are the
	// record's current values; no creation-time snapshot is stored.
	Approximated bool `json:"approximated,omitempty"`
}

type Timeline struct {
	Events []TimelineEvent   `json:"events"`
	Counts map[EventKind]int `json:"counts"`
	Total  int               `json:"total"`
}

func BuildTimeline(records []SkillWithCatalog) (Timeline, error) {
	events := make([]TimelineEvent, 0, len(records)*2)

	for i, it := range records {
		if err := validateJoined(it, i); err != nil {
			return Timeline{}, err
		}
		rec := it.Record
		base := TimelineEvent{
			SkillID:   rec.SkillID,
			SkillName: it.Skill.Name,
			Category:  it.Skill.Category,
		}

		added := base
		added.Kind = EventSkillAdded
		added.Date = rec.CreatedAt
		added.Level = rec.Proficiency.Level
		added.Score = scorePtr(rec.Proficiency.Score)
		added.Approximated = true
		events = append(events, added)

		for _, ev := range rec.Evidence {
			ev := ev
			e := base
			e.Kind = EventEvidenceAdded
			e.Date = ev.Date
			e.Evidence = &ev
			events = append(events, e)
		}

		if rec.UpdatedAt.After(rec.CreatedAt) {
			upd := base
			upd.Kind = EventProficiencyUpdated
			upd.Date = rec.UpdatedAt
			upd.Level = rec.Proficiency.Level
			upd.Score = scorePtr(rec.Proficiency.Score)
			events = append(events, upd)
		}

		// No separate goal timestamp is stored, so the goal is dated at
		// record creation.
		if rec.hasGoal() {
			g := *rec.Goal
			gs := base
			gs.Kind = EventGoalSet
			gs.Date = rec.CreatedAt
			gs.Goal = &g
			events = append(events, gs)
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.After(events[j].Date)
	})

	counts := map[EventKind]int{
		EventSkillAdded:         0,
		EventEvidenceAdded:      0,
		EventProficiencyUpdated: 0,
		EventGoalSet:            0,
	}
	for _, e := range events {
		counts[e.Kind]++
	}

	return Timeline{Events: events, Counts: counts, Total: len(events)}, nil
}

func scorePtr(score int) *int {
	s := ClampScore(score)
	return &s
}
