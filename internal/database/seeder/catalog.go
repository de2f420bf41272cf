package seeder

import (
	_ "embed"
	"fmt"
	"strings"

	"skill-insight/internal/domain/analytics"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var catalogYAML []byte

type SkillSeed struct {
	Name      string `yaml:"name"`
	Category  string `yaml:"category"`
	Specialty string `yaml:"specialty"`
}

type CourseSeed struct {
	Code      string  `yaml:"code"`
	Title     string  `yaml:"title"`
	Category  string  `yaml:"category"`
	Specialty string  `yaml:"specialty"`
	Credits   float64 `yaml:"credits"`
}

type RequiredSkillSeed struct {
	Skill string `yaml:"skill"`
	Level string `yaml:"level"`
}

type CareerPathSeed struct {
	Title     string `yaml:"title"`
	Specialty string `yaml:"specialty"`
	Salary    struct {
		Min      int    `yaml:"min"`
		Max      int    `yaml:"max"`
		Currency string `yaml:"currency"`
	} `yaml:"salary"`
	RequiredSkills []RequiredSkillSeed `yaml:"required_skills"`
}

type Catalog struct {
	Skills      []SkillSeed      `yaml:"skills"`
	Courses     []CourseSeed     `yaml:"courses"`
	CareerPaths []CareerPathSeed `yaml:"career_paths"`
}

// ParseCatalog decodes and validates seed data. Required skills must name a
// skill in the same document and carry a level on the proficiency scale.
func ParseCatalog(b []byte) (Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(b, &cat); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}

	names := make(map[string]struct{}, len(cat.Skills))
	for i, s := range cat.Skills {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return Catalog{}, fmt.Errorf("skills[%d]: empty name", i)
		}
		if _, dup := names[name]; dup {
			return Catalog{}, fmt.Errorf("skills[%d]: duplicate name %q", i, name)
		}
		names[name] = struct{}{}
	}

	for i, c := range cat.Courses {
		if strings.TrimSpace(c.Code) == "" {
			return Catalog{}, fmt.Errorf("courses[%d]: empty code", i)
		}
		if c.Credits < 0 {
			return Catalog{}, fmt.Errorf("courses[%d]: negative credits", i)
		}
	}

	for i, p := range cat.CareerPaths {
		if strings.TrimSpace(p.Title) == "" {
			return Catalog{}, fmt.Errorf("career_paths[%d]: empty title", i)
		}
		for j, rs := range p.RequiredSkills {
			if _, ok := names[strings.TrimSpace(rs.Skill)]; !ok {
				return Catalog{}, fmt.Errorf("career_paths[%d].required_skills[%d]: unknown skill %q", i, j, rs.Skill)
			}
			if _, err := analytics.ParseProficiencyLevel(rs.Level); err != nil {
				return Catalog{}, fmt.Errorf("career_paths[%d].required_skills[%d]: %w", i, j, err)
			}
		}
	}

	return cat, nil
}

func MustLoadCatalog() Catalog {
	cat, err := ParseCatalog(catalogYAML)
	if err != nil {
		panic(err)
	}
	return cat
}
