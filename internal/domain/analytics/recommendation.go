package analytics

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

const (
	NewSkillsLimit       = 20
	ImproveSkillsLimit   = 10
	CourseLimit          = 10
	CareerPathLimit      = 10
	WeakSkillScoreCutoff = 50
)

type Filters struct {
	Categories []string
	// Specialty narrows courses and career paths by exact match. The learner's
	// declared specialization is not used as a default.
	Specialty  string
	MinScore   *int
	MaxScore   *int
	SkillLevel string
}

// HasProficiencyFilter reports whether the request asks for the learner's own
// records instead of unacquired catalog skills.
func (f Filters) HasProficiencyFilter() bool {
	return f.MinScore != nil || f.MaxScore != nil || strings.TrimSpace(f.SkillLevel) != ""
}

type Catalogs struct {
	Skills      []SkillCatalogEntry
	Courses     []CourseCatalogEntry
	CareerPaths []CareerPathEntry
}

type SkillSuggestion struct {
	SkillID   uuid.UUID        `json:"skill_id"`
	Name      string           `json:"name"`
	Category  string           `json:"category"`
	Specialty string           `json:"specialty,omitempty"`
	Held      bool             `json:"held"`
	Level     ProficiencyLevel `json:"level,omitempty"`
	Score     int              `json:"score"`
}

type Recommendations struct {
	NewSkills       []SkillSuggestion    `json:"new_skills"`
	SkillsToImprove []SkillSuggestion    `json:"skills_to_improve"`
	Courses         []CourseCatalogEntry `json:"courses"`
	CareerPaths     []CareerPathEntry    `json:"career_paths"`
}

// FilterRecommendations builds the four recommendation lists. Each list is
// computed independently of the others.
func FilterRecommendations(learner Learner, records []SkillRecord, catalogs Catalogs, f Filters) (Recommendations, error) {
	if learner.ID == uuid.Nil {
		return Recommendations{}, invalid("learner id", "is required")
	}
	bounds, err := resolveFilters(f)
	if err != nil {
		return Recommendations{}, err
	}

	catalogByID := make(map[uuid.UUID]SkillCatalogEntry, len(catalogs.Skills))
	for _, s := range catalogs.Skills {
		catalogByID[s.ID] = s
	}
	held := make(map[uuid.UUID]struct{}, len(records))
	for i, r := range records {
		if r.SkillID == uuid.Nil {
			return Recommendations{}, invalidAt("records", i, "skill id is required")
		}
		held[r.SkillID] = struct{}{}
	}

	cats := categorySet(f.Categories)

	out := Recommendations{}
	if f.HasProficiencyFilter() {
		out.NewSkills = matchingRecords(records, catalogByID, cats, bounds)
	} else {
		out.NewSkills = unacquiredSkills(catalogs.Skills, held, cats)
	}
	out.SkillsToImprove = weakSkills(records, catalogByID)
	out.Courses = coursesForSpecialty(catalogs.Courses, f.Specialty)
	out.CareerPaths = careerPathsForSpecialty(catalogs.CareerPaths, f.Specialty)
	return out, nil
}

type scoreBounds struct {
	min   int
	max   int
	level ProficiencyLevel
}

func resolveFilters(f Filters) (scoreBounds, error) {
	b := scoreBounds{min: MinScore, max: MaxScore}
	if f.MinScore != nil {
		b.min = ClampScore(*f.MinScore)
	}
	if f.MaxScore != nil {
		b.max = ClampScore(*f.MaxScore)
	}
	if b.min > b.max {
		return scoreBounds{}, invalid("filters", "min score is greater than max score")
	}
	if strings.TrimSpace(f.SkillLevel) != "" {
		lvl, err := ParseProficiencyLevel(f.SkillLevel)
		if err != nil {
			return scoreBounds{}, err
		}
		b.level = lvl
	}
	return b, nil
}

func categorySet(categories []string) map[string]struct{} {
	set := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		set[c] = struct{}{}
	}
	return set
}

func inCategories(set map[string]struct{}, category string) bool {
	if len(set) == 0 {
		return true
	}
	_, ok := set[strings.TrimSpace(category)]
	return ok
}

func unacquiredSkills(skills []SkillCatalogEntry, held map[uuid.UUID]struct{}, cats map[string]struct{}) []SkillSuggestion {
	out := make([]SkillSuggestion, 0, min(len(skills), NewSkillsLimit))
	for _, s := range skills {
		if len(out) == NewSkillsLimit {
			break
		}
		if _, ok := held[s.ID]; ok {
			continue
		}
		if !inCategories(cats, s.Category) {
			continue
		}
		out = append(out, SkillSuggestion{
			SkillID:   s.ID,
			Name:      s.Name,
			Category:  s.Category,
			Specialty: s.Specialty,
		})
	}
	return out
}

func matchingRecords(records []SkillRecord, catalog map[uuid.UUID]SkillCatalogEntry, cats map[string]struct{}, b scoreBounds) []SkillSuggestion {
	out := make([]SkillSuggestion, 0)
	for _, r := range records {
		if len(out) == NewSkillsLimit {
			break
		}
		score := ClampScore(r.Proficiency.Score)
		if score < b.min || score > b.max {
			continue
		}
		if b.level != "" && !sameLevel(r.Proficiency.Level, b.level) {
			continue
		}
		entry := catalog[r.SkillID]
		if !inCategories(cats, entry.Category) {
			continue
		}
		out = append(out, heldSuggestion(r, entry))
	}
	return out
}

// weakSkills returns records scoring below the cutoff or still at beginner,
// lowest score first.
func weakSkills(records []SkillRecord, catalog map[uuid.UUID]SkillCatalogEntry) []SkillSuggestion {
	out := make([]SkillSuggestion, 0)
	for _, r := range records {
		if ClampScore(r.Proficiency.Score) < WeakSkillScoreCutoff || sameLevel(r.Proficiency.Level, LevelBeginner) {
			out = append(out, heldSuggestion(r, catalog[r.SkillID]))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score < out[j].Score
	})
	if len(out) > ImproveSkillsLimit {
		out = out[:ImproveSkillsLimit]
	}
	return out
}

func heldSuggestion(r SkillRecord, entry SkillCatalogEntry) SkillSuggestion {
	return SkillSuggestion{
		SkillID:   r.SkillID,
		Name:      entry.Name,
		Category:  entry.Category,
		Specialty: entry.Specialty,
		Held:      true,
		Level:     r.Proficiency.Level,
		Score:     ClampScore(r.Proficiency.Score),
	}
}

func coursesForSpecialty(courses []CourseCatalogEntry, specialty string) []CourseCatalogEntry {
	specialty = strings.TrimSpace(specialty)
	out := make([]CourseCatalogEntry, 0, min(len(courses), CourseLimit))
	for _, c := range courses {
		if len(out) == CourseLimit {
			break
		}
		if specialty != "" && c.Specialty != specialty {
			continue
		}
		out = append(out, c)
	}
	return out
}

func careerPathsForSpecialty(paths []CareerPathEntry, specialty string) []CareerPathEntry {
	specialty = strings.TrimSpace(specialty)
	out := make([]CareerPathEntry, 0, min(len(paths), CareerPathLimit))
	for _, p := range paths {
		if len(out) == CareerPathLimit {
			break
		}
		if specialty != "" && p.Specialty != specialty {
			continue
		}
		out = append(out, p)
	}
	return out
}
