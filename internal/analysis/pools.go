package analysis

// Fixed content shared by every generated report.

var roleRelevance = []RoleRelevance{
	{Role: "Software Engineer", Score: 92, Status: "qualified"},
	{Role: "Senior Software Engineer", Score: 68, Status: "underqualified"},
	{Role: "Junior Developer", Score: 98, Status: "overqualified"},
	{Role: "Full Stack Developer", Score: 85, Status: "qualified"},
	{Role: "DevOps Engineer", Score: 45, Status: "underqualified"},
	{Role: "Tech Lead", Score: 55, Status: "underqualified"},
}

var skillSuggestions = []string{
	"Cloud Computing (AWS/Azure)",
	"Microservices Architecture",
	"Docker & Kubernetes",
	"System Design",
	"Leadership & Team Management",
	"Machine Learning Fundamentals",
	"API Design & Development",
}

// softSkillRanges holds each soft skill with the lower bound and span of its score.
var softSkillRanges = []struct {
	skill    string
	lo, span int
}{
	{"Communication", 80, 20},
	{"Leadership", 70, 30},
	{"Problem Solving", 85, 15},
	{"Teamwork", 80, 20},
	{"Adaptability", 75, 25},
	{"Critical Thinking", 80, 20},
}

var keywordMatches = []string{
	"JavaScript", "React", "Node.js", "Python", "SQL", "Git", "Agile", "REST API", "MongoDB", "TypeScript",
}

var resumeImprovementAreas = []string{
	"Add more quantified achievements with specific metrics",
	"Include relevant cloud computing certifications",
	"Optimize resume format for better ATS scanning",
	"Strengthen technical skills section with recent technologies",
	"Add leadership examples and team management experience",
	"Include open-source contributions or personal projects",
}

var careerProgression = CareerProgression{
	CurrentLevel:    "Mid-Level Developer",
	NextLevel:       "Senior Developer",
	TimeToPromotion: "18-24 months",
	SkillsNeeded:    []string{"System Design", "Leadership", "Mentoring", "Architecture Planning"},
}

var skillGapAnalysis = SkillGapAnalysis{
	CriticalGaps:        []string{"Cloud Architecture", "System Design", "Team Leadership"},
	MinorGaps:           []string{"DevOps Practices", "Performance Optimization", "Security Best Practices"},
	Strengths:           []string{"Frontend Development", "Database Design", "Problem Solving", "Code Quality"},
	DevelopmentPriority: "High",
}

var atsSuggestions = []string{
	"Use standard section headings (Experience, Education, Skills)",
	"Include more industry-specific keywords",
	"Improve formatting consistency",
	"Add relevant technical certifications",
	"Use bullet points for better readability",
}

var learningResources = []LearningResource{
	{Title: "AWS Certified Solutions Architect", URL: "/learning-resources", Type: "Certification"},
	{Title: "Microservices Design Patterns", URL: "/learning-resources", Type: "Course"},
	{Title: "Docker Mastery Course", URL: "/learning-resources", Type: "Video"},
	{Title: "System Design Interview Guide", URL: "/learning-resources", Type: "Book"},
	{Title: "Leadership in Tech Teams", URL: "/learning-resources", Type: "Course"},
	{Title: "Advanced JavaScript Patterns", URL: "/learning-resources", Type: "Tutorial"},
}

var alerts = []Alert{
	{Type: "success", Message: "Strong technical foundation detected with modern frameworks"},
	{Type: "warning", Message: "Consider adding more leadership experience for senior roles"},
	{Type: "info", Message: "Your profile matches well with mid-level to senior positions"},
	{Type: "success", Message: "Excellent bias-free evaluation - fair and objective assessment"},
	{Type: "warning", Message: "Cloud computing skills gap identified - high priority for development"},
	{Type: "info", Message: "ATS optimization score is good but can be improved with keyword enhancement"},
}

var (
	ratings         = []string{"High", "Medium", "Low"}
	tenures         = []string{"2-3 years", "3-5 years", "1-2 years", "5+ years"}
	educationFocus  = []string{"Skills", "Skills", "Mixed"}
	candidateGaps   = []string{"Cloud Computing", "Leadership Experience", "Data Analysis", "Project Management", "System Design"}
	candidateStrong = []string{
		"Strong technical background",
		"Excellent communication skills",
		"Leadership experience",
		"Industry-relevant experience",
		"Problem-solving abilities",
		"Team collaboration",
		"Continuous learning mindset",
	}
	candidateImprove = []string{
		"Could benefit from more cloud experience",
		"Limited project management exposure",
		"Needs stronger analytical skills",
		"Could improve presentation skills",
		"Requires system design knowledge",
	}
)

const candidateFeedback = "Strong candidate with relevant experience. Bias-free evaluation shows excellent potential."

var (
	verificationStatuses = []string{"Verified", "Suspicious", "Flagged"}
	suspiciousElements   = []string{"Inconsistent dates", "Unusual formatting"}
	versionChanges       = []string{"Updated contact information", "Added recent project"}
	previousVersions     = []string{"v1.0 - Initial", "v2.0 - Major update"}
	adminKeywords        = []string{"JavaScript", "React", "Node.js", "AWS", "Agile"}
	adminFormatIssues    = []string{"Missing contact section", "Inconsistent bullet points"}
	adminImprovements    = []string{"Add skills section", "Optimize for ATS scanning", "Include quantified achievements"}
	matchedPositions     = []MatchedPosition{
		{
			Title:        "Senior Software Engineer",
			Company:      "Tech Corp",
			MatchScore:   85,
			Requirements: []string{"5+ years experience", "React expertise", "Team leadership"},
		},
		{
			Title:        "Full Stack Developer",
			Company:      "StartupXYZ",
			MatchScore:   78,
			Requirements: []string{"JavaScript", "Node.js", "Database design"},
		},
	}
)

const currentRole = "Software Developer"

var stayReasons = []string{
	"Strong technical foundation in current role",
	"Established relationships with team members",
	"Upcoming project opportunities for skill development",
	"Company investment in your professional growth",
}

var transitionOpportunities = []TransitionOpportunity{
	{
		Title:      "Senior Software Engineer",
		Company:    "TechCorp Inc.",
		MatchScore: 92,
		Benefits:   []string{"Higher salary", "Leadership opportunities", "Remote work", "Stock options"},
	},
	{
		Title:      "Full Stack Developer",
		Company:    "Innovation Labs",
		MatchScore: 87,
		Benefits:   []string{"Flexible hours", "Learning budget", "Modern tech stack", "Career mentorship"},
	},
}

var actionPlan = []string{
	"Schedule a career discussion with your current manager",
	"Explore internal growth opportunities and projects",
	"Update your skills portfolio and LinkedIn profile",
	"Network with professionals in your target companies",
	"Consider negotiating current role improvements before leaving",
}

var reskillGaps = []string{
	"Machine Learning Algorithms",
	"Data Pipeline Architecture",
	"Cloud Platform Expertise",
	"Statistical Analysis",
	"Business Intelligence Tools",
}

var developmentPlan = []DevelopmentStep{
	{
		Skill:     "Machine Learning",
		Priority:  "High",
		Timeframe: "6-8 months",
		Resources: []string{"Coursera ML Course", "Kaggle Competitions", "Python for ML"},
	},
	{
		Skill:     "Cloud Platforms (AWS/Azure)",
		Priority:  "High",
		Timeframe: "4-6 months",
		Resources: []string{"AWS Certification", "Azure Fundamentals", "Cloud Architecture Patterns"},
	},
	{
		Skill:     "Data Visualization",
		Priority:  "Medium",
		Timeframe: "3-4 months",
		Resources: []string{"Tableau Training", "D3.js Tutorial", "Power BI Certification"},
	},
}

var companyInsights = CompanyInsights{
	Culture:      "Innovation-focused, collaborative environment with emphasis on continuous learning and data-driven decision making",
	Requirements: []string{"5+ years experience", "ML/AI expertise", "Cloud platform knowledge", "Team leadership skills"},
	Benefits:     []string{"Competitive salary", "Stock options", "Learning budget", "Flexible work arrangements", "Health benefits"},
}

const reskillFeasibility = 78
