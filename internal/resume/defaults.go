package resume

const (
	DefaultTemplate = TemplateModern
	DefaultColor    = "hsl(168, 60%, 40%)"
)

// DefaultSkillCategories are the groups every resume starts with.
var DefaultSkillCategories = []string{"Technical Skills", "Soft Skills", "Tools & Technologies"}

// DefaultData returns an empty resume.
func DefaultData() Data {
	return Data{
		Education:  []Education{},
		Experience: []Experience{},
		Projects:   []Project{},
		Skills:     defaultSkills(),
	}
}

func defaultSkills() []SkillGroup {
	out := make([]SkillGroup, len(DefaultSkillCategories))
	for i, c := range DefaultSkillCategories {
		out[i] = SkillGroup{Category: c, Items: []string{}}
	}
	return out
}

// SampleData returns a fully filled example resume.
func SampleData() Data {
	return Data{
		Personal: Personal{
			FullName: "Alex Carter",
			Email:    "alex.carter@example.com",
			Phone:    "+1 555 0199",
			Location: "San Francisco, CA",
			LinkedIn: "linkedin.com/in/alexcarter",
			GitHub:   "github.com/alexcarter",
		},
		Summary: "Frontend Engineer with 4 years of experience building scalable web applications. Passionate about UI/UX and performance optimization. Skilled in React, TypeScript, and modern CSS frameworks, delivering high-quality code in agile environments.",
		Education: []Education{
			{ID: "edu-1", School: "University of Tech", Degree: "B.S. Computer Science", Year: "2020"},
		},
		Experience: []Experience{
			{ID: "exp-1", Company: "TechNova", Role: "Senior Frontend Dev", Duration: "2022 - Present", Description: "Led migration to Next.js, improving load times by 40%. Mentored 3 junior developers."},
			{ID: "exp-2", Company: "Creative Solutions", Role: "Web Developer", Duration: "2020 - 2022", Description: "Built responsive websites for 20+ clients using React and Tailwind."},
		},
		Projects: []Project{
			{ID: "proj-1", Name: "E-commerce Dashboard", TechStack: []string{"React", "Redux", "Node.js"}, Description: "Real-time analytics dashboard for shop owners, handling 10k+ daily events.", LiveURL: "example.com", GitHubURL: "github.com"},
			{ID: "proj-2", Name: "AI Chatbot", TechStack: []string{"Python", "OpenAI API"}, Description: "Customer support bot that reduced ticket volume by 25%.", GitHubURL: "github.com"},
		},
		Skills: []SkillGroup{
			{Category: "Technical Skills", Items: []string{"React", "TypeScript", "Tailwind CSS", "Redux", "Next.js"}},
			{Category: "Soft Skills", Items: []string{"Leadership", "Mentoring"}},
			{Category: "Tools & Technologies", Items: []string{"Git", "Docker", "AWS", "Jira"}},
		},
	}
}
