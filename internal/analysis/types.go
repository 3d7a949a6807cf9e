package analysis

import "github.com/starford/hirelens/internal/intake"

// Kind selects which mock analysis is generated.
type Kind string

const (
	KindResume     Kind = "resume"
	KindCandidates Kind = "candidates"
	KindAdmin      Kind = "admin"
	KindTransition Kind = "transition"
	KindReskill    Kind = "reskill"
)

// Kinds lists every analysis kind.
var Kinds = []Kind{KindResume, KindCandidates, KindAdmin, KindTransition, KindReskill}

// ParseKind validates s as a Kind.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Input is what a page submits to trigger an analysis. Only the presence
// of the fields is checked; their content never influences scores beyond
// echoing and the quit reason category.
type Input struct {
	Files          []intake.Document `json:"files"`
	JobDescription string            `json:"jobDescription,omitempty"`
	JobRole        string            `json:"jobRole,omitempty"`
	QuitReason     string            `json:"quitReason,omitempty"`
	DreamCompany   string            `json:"dreamCompany,omitempty"`
	DreamRole      string            `json:"dreamRole,omitempty"`
}

// Result holds the output of exactly one kind.
type Result struct {
	Kind       Kind                    `json:"kind"`
	Files      []intake.Document       `json:"files,omitempty"`
	Resume     *ResumeAnalysis         `json:"resume,omitempty"`
	Candidates *CandidateReport        `json:"candidates,omitempty"`
	Admin      []AdminAnalysis         `json:"admin,omitempty"`
	Transition *RoleTransitionAnalysis `json:"transition,omitempty"`
	Reskill    *ReskillAnalysis        `json:"reskill,omitempty"`
}

// --- resume ---

type RoleRelevance struct {
	Role   string `json:"role"`
	Score  int    `json:"score"`
	Status string `json:"status"`
}

type LearningResource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

type Alert struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type SkillScore struct {
	Skill string `json:"skill"`
	Score int    `json:"score"`
}

type BiasAnalysis struct {
	GenderBias       int    `json:"genderBias"`
	AgeBias          int    `json:"ageBias"`
	EducationBias    int    `json:"educationBias"`
	OverallBiasScore int    `json:"overallBiasScore"`
	FairnessRating   string `json:"fairnessRating"`
}

type SalaryPrediction struct {
	MinSalary  int    `json:"minSalary"`
	MaxSalary  int    `json:"maxSalary"`
	Currency   string `json:"currency"`
	Confidence int    `json:"confidence"`
}

type CareerProgression struct {
	CurrentLevel    string   `json:"currentLevel"`
	NextLevel       string   `json:"nextLevel"`
	TimeToPromotion string   `json:"timeToPromotion"`
	SkillsNeeded    []string `json:"skillsNeeded"`
}

type SkillGapAnalysis struct {
	CriticalGaps        []string `json:"criticalGaps"`
	MinorGaps           []string `json:"minorGaps"`
	Strengths           []string `json:"strengths"`
	DevelopmentPriority string   `json:"developmentPriority"`
}

type ATSOptimization struct {
	Score            int      `json:"score"`
	Suggestions      []string `json:"suggestions"`
	KeywordDensity   int      `json:"keywordDensity"`
	FormatScore      int      `json:"formatScore"`
	ReadabilityScore int      `json:"readabilityScore"`
}

// ResumeAnalysis is the single-resume report of the resume analysis page.
type ResumeAnalysis struct {
	OverallScore      int                `json:"overallScore"`
	ATSScore          int                `json:"atsScore"`
	RoleRelevance     []RoleRelevance    `json:"roleRelevance"`
	SkillSuggestions  []string           `json:"skillSuggestions"`
	SoftSkills        []SkillScore       `json:"softSkills"`
	KeywordMatches    []string           `json:"keywordMatches"`
	ImprovementAreas  []string           `json:"improvementAreas"`
	BiasAnalysis      BiasAnalysis       `json:"biasAnalysis"`
	SalaryPrediction  SalaryPrediction   `json:"salaryPrediction"`
	CareerProgression CareerProgression  `json:"careerProgression"`
	SkillGapAnalysis  SkillGapAnalysis   `json:"skillGapAnalysis"`
	ATSOptimization   ATSOptimization    `json:"atsOptimization"`
	LearningResources []LearningResource `json:"learningResources"`
	Alerts            []Alert            `json:"alerts"`
}

// --- candidates ---

type DiversityMetrics struct {
	GenderNeutral  bool   `json:"genderNeutral"`
	AgeNeutral     bool   `json:"ageNeutral"`
	EducationFocus string `json:"educationFocus"`
}

// CandidateAnalysis scores one uploaded resume for a recruiter.
type CandidateAnalysis struct {
	CandidateName     string           `json:"candidateName"`
	OverallRating     string           `json:"overallRating"`
	SuitabilityScore  int              `json:"suitabilityScore"`
	KeywordMatchScore int              `json:"keywordMatchScore"`
	TenurePrediction  string           `json:"tenurePrediction"`
	RetentionScore    int              `json:"retentionScore"`
	Strengths         []string         `json:"strengths"`
	ImprovementAreas  []string         `json:"improvementAreas"`
	Feedback          string           `json:"feedback"`
	Ranking           int              `json:"ranking"`
	BiasScore         int              `json:"biasScore"`
	SkillGaps         []string         `json:"skillGaps"`
	ATSCompatibility  int              `json:"atsCompatibility"`
	DiversityMetrics  DiversityMetrics `json:"diversityMetrics"`
}

// CandidateSummary aggregates a ranked batch.
type CandidateSummary struct {
	High          int `json:"high"`
	Medium        int `json:"medium"`
	Low           int `json:"low"`
	AverageBias   int `json:"averageBias"`
	TotalAnalyzed int `json:"totalAnalyzed"`
}

// CandidateReport is the ranked recruiter view.
type CandidateReport struct {
	JobRole    string              `json:"jobRole,omitempty"`
	Candidates []CandidateAnalysis `json:"candidates"`
	Summary    CandidateSummary    `json:"summary"`
}

// --- admin ---

type FakeDetection struct {
	IsFake             bool     `json:"isFake"`
	Confidence         int      `json:"confidence"`
	SuspiciousElements []string `json:"suspiciousElements"`
	VerificationStatus string   `json:"verificationStatus"`
}

type VersionControl struct {
	Version          string   `json:"version"`
	LastModified     string   `json:"lastModified"`
	Changes          []string `json:"changes"`
	PreviousVersions []string `json:"previousVersions"`
}

type AdminATS struct {
	Score              int      `json:"score"`
	KeywordSuggestions []string `json:"keywordSuggestions"`
	FormatIssues       []string `json:"formatIssues"`
	Improvements       []string `json:"improvements"`
}

type MatchedPosition struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	MatchScore   int      `json:"matchScore"`
	Requirements []string `json:"requirements"`
}

type PlacementLinking struct {
	MatchedPositions []MatchedPosition `json:"matchedPositions"`
}

// AdminAnalysis is the per-file administrator report.
type AdminAnalysis struct {
	FileName         string           `json:"fileName"`
	FakeDetection    FakeDetection    `json:"fakeDetection"`
	VersionControl   VersionControl   `json:"versionControl"`
	ATSOptimization  AdminATS         `json:"atsOptimization"`
	PlacementLinking PlacementLinking `json:"placementLinking"`
}

// --- employee ---

type TransitionOpportunity struct {
	Title      string   `json:"title"`
	Company    string   `json:"company"`
	MatchScore int      `json:"matchScore"`
	Benefits   []string `json:"benefits"`
}

// RoleTransitionAnalysis answers "should I stay or move on".
type RoleTransitionAnalysis struct {
	CurrentRole             string                  `json:"currentRole"`
	QuitReason              string                  `json:"quitReason"`
	ReasonCategory          string                  `json:"reasonCategory"`
	Recommendation          string                  `json:"recommendation"`
	StayReasons             []string                `json:"stayReasons"`
	TransitionOpportunities []TransitionOpportunity `json:"transitionOpportunities"`
	ActionPlan              []string                `json:"actionPlan"`
}

type DevelopmentStep struct {
	Skill     string   `json:"skill"`
	Priority  string   `json:"priority"`
	Timeframe string   `json:"timeframe"`
	Resources []string `json:"resources"`
}

type CompanyInsights struct {
	Culture      string   `json:"culture"`
	Requirements []string `json:"requirements"`
	Benefits     []string `json:"benefits"`
}

// ReskillAnalysis plans the path towards a dream company and role.
type ReskillAnalysis struct {
	CurrentRole      string            `json:"currentRole"`
	DreamCompany     string            `json:"dreamCompany"`
	DreamRole        string            `json:"dreamRole"`
	FeasibilityScore int               `json:"feasibilityScore"`
	SkillGaps        []string          `json:"skillGaps"`
	DevelopmentPlan  []DevelopmentStep `json:"developmentPlan"`
	CompanyInsights  CompanyInsights   `json:"companyInsights"`
}
