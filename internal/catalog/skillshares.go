package catalog

import "github.com/starford/hirelens/internal/models"

var defaultSkillShares = []models.SkillShare{
	{
		ID:            "1",
		Skill:         "React Development",
		Description:   "Learn modern React patterns and hooks",
		Teacher:       "Sarah Chen",
		Rating:        4.8,
		Points:        150,
		Duration:      "2 hours",
		Level:         "Intermediate",
		EnrolledCount: 24,
	},
	{
		ID:            "2",
		Skill:         "Data Analysis with Python",
		Description:   "Master pandas and data visualization",
		Teacher:       "Mike Johnson",
		Rating:        4.9,
		Points:        200,
		Duration:      "3 hours",
		Level:         "Beginner",
		EnrolledCount: 18,
	},
	{
		ID:            "3",
		Skill:         "Project Management",
		Description:   "Agile methodologies and team leadership",
		Teacher:       "Lisa Wang",
		Rating:        4.7,
		Points:        180,
		Duration:      "1.5 hours",
		Level:         "Advanced",
		EnrolledCount: 31,
	},
}
