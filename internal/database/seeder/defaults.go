package seeder

// Defaults returns the seeders in dependency order: career paths reference
// skills by name.
func Defaults() []Seeder {
	cat := MustLoadCatalog()
	return []Seeder{
		SkillsSeeder{Items: cat.Skills},
		CourseCatalogSeeder{Items: cat.Courses},
		CareerPathsSeeder{Items: cat.CareerPaths},
	}
}
