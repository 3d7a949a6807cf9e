// Package analysis generates the mock resume analyses shown by the hub
// pages. Numbers are uniform random draws within fixed ranges and lists come
// from fixed pools; uploaded content never affects the scores.
package analysis

import (
	"cmp"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/hirelens/internal/apperr"
)

// Rand is the random source behind every draw.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

// Generator builds mock reports.
type Generator struct {
	rnd      Rand
	now      func() time.Time
	maxFiles int
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand replaces the default math/rand/v2 source.
func WithRand(r Rand) Option {
	return func(g *Generator) { g.rnd = r }
}

// WithClock replaces time.Now for the admin "last modified" date.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithMaxFiles caps the batch size of the candidates and admin kinds.
// Zero means unlimited.
func WithMaxFiles(n int) Option {
	return func(g *Generator) { g.maxFiles = n }
}

// NewGenerator returns a Generator using the global random source.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{rnd: globalRand{}, now: time.Now}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Validate checks the presence-only requirements of kind. The returned
// error wraps apperr.ErrInvalidInput.
func (g *Generator) Validate(kind Kind, in Input) error {
	in = in.normalized()
	var rules []*validation.FieldRules
	switch kind {
	case KindResume:
		rules = append(rules, validation.Field(&in.Files, validation.Required, validation.Length(1, 1)))
	case KindCandidates, KindAdmin:
		rules = append(rules, validation.Field(&in.Files, validation.Required, validation.Length(1, g.maxFiles)))
	case KindTransition:
		rules = append(rules,
			validation.Field(&in.Files, validation.Required, validation.Length(1, 1)),
			validation.Field(&in.QuitReason, validation.Required),
		)
	case KindReskill:
		rules = append(rules,
			validation.Field(&in.Files, validation.Required, validation.Length(1, 1)),
			validation.Field(&in.DreamCompany, validation.Required),
			validation.Field(&in.DreamRole, validation.Required),
		)
	default:
		return fmt.Errorf("%w: unknown analysis kind %q", apperr.ErrInvalidInput, kind)
	}
	if err := validation.ValidateStruct(&in, rules...); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err)
	}
	return nil
}

// Generate validates in and builds the report for kind.
func (g *Generator) Generate(kind Kind, in Input) (*Result, error) {
	if err := g.Validate(kind, in); err != nil {
		return nil, err
	}
	in = in.normalized()

	res := &Result{Kind: kind, Files: slices.Clone(in.Files)}
	switch kind {
	case KindResume:
		res.Resume = g.resume()
	case KindCandidates:
		res.Candidates = g.candidates(in)
	case KindAdmin:
		res.Admin = g.admin(in)
	case KindTransition:
		res.Transition = transition(in.QuitReason)
	case KindReskill:
		res.Reskill = reskill(in.DreamCompany, in.DreamRole)
	}
	return res, nil
}

func (in Input) normalized() Input {
	in.JobDescription = strings.TrimSpace(in.JobDescription)
	in.JobRole = strings.TrimSpace(in.JobRole)
	in.QuitReason = strings.TrimSpace(in.QuitReason)
	in.DreamCompany = strings.TrimSpace(in.DreamCompany)
	in.DreamRole = strings.TrimSpace(in.DreamRole)
	return in
}

// between draws an integer in [lo, lo+span-1].
func (g *Generator) between(lo, span int) int {
	return lo + g.rnd.IntN(span)
}

func (g *Generator) pick(pool []string) string {
	return pool[g.rnd.IntN(len(pool))]
}

// prefix returns a copy of the first n items of pool, n in [lo, lo+span-1].
func (g *Generator) prefix(pool []string, lo, span int) []string {
	return slices.Clone(pool[:g.between(lo, span)])
}

// chance reports true with probability 1-threshold.
func (g *Generator) chance(threshold float64) bool {
	return g.rnd.Float64() > threshold
}

func (g *Generator) resume() *ResumeAnalysis {
	soft := make([]SkillScore, len(softSkillRanges))
	for i, s := range softSkillRanges {
		soft[i] = SkillScore{Skill: s.skill, Score: g.between(s.lo, s.span)}
	}

	return &ResumeAnalysis{
		OverallScore:     g.between(75, 25),
		ATSScore:         g.between(70, 30),
		RoleRelevance:    slices.Clone(roleRelevance),
		SkillSuggestions: slices.Clone(skillSuggestions),
		SoftSkills:       soft,
		KeywordMatches:   slices.Clone(keywordMatches),
		ImprovementAreas: slices.Clone(resumeImprovementAreas),
		BiasAnalysis: BiasAnalysis{
			GenderBias:       g.between(2, 8),
			AgeBias:          g.between(3, 10),
			EducationBias:    g.between(5, 15),
			OverallBiasScore: g.between(5, 10),
			FairnessRating:   "Excellent",
		},
		SalaryPrediction: SalaryPrediction{
			MinSalary:  g.between(75000, 25000),
			MaxSalary:  g.between(95000, 35000),
			Currency:   "USD",
			Confidence: g.between(85, 15),
		},
		CareerProgression: CareerProgression{
			CurrentLevel:    careerProgression.CurrentLevel,
			NextLevel:       careerProgression.NextLevel,
			TimeToPromotion: careerProgression.TimeToPromotion,
			SkillsNeeded:    slices.Clone(careerProgression.SkillsNeeded),
		},
		SkillGapAnalysis: SkillGapAnalysis{
			CriticalGaps:        slices.Clone(skillGapAnalysis.CriticalGaps),
			MinorGaps:           slices.Clone(skillGapAnalysis.MinorGaps),
			Strengths:           slices.Clone(skillGapAnalysis.Strengths),
			DevelopmentPriority: skillGapAnalysis.DevelopmentPriority,
		},
		ATSOptimization: ATSOptimization{
			Score:            g.between(75, 25),
			Suggestions:      slices.Clone(atsSuggestions),
			KeywordDensity:   g.between(70, 20),
			FormatScore:      g.between(85, 15),
			ReadabilityScore: g.between(80, 20),
		},
		LearningResources: slices.Clone(learningResources),
		Alerts:            slices.Clone(alerts),
	}
}

func (g *Generator) candidates(in Input) *CandidateReport {
	out := make([]CandidateAnalysis, len(in.Files))
	for i, f := range in.Files {
		out[i] = CandidateAnalysis{
			CandidateName:     f.Stem(),
			OverallRating:     g.pick(ratings),
			SuitabilityScore:  g.between(60, 40),
			KeywordMatchScore: g.between(70, 30),
			TenurePrediction:  g.pick(tenures),
			RetentionScore:    g.between(70, 30),
			BiasScore:         g.between(5, 10),
			ATSCompatibility:  g.between(75, 25),
			SkillGaps:         g.prefix(candidateGaps, 1, 3),
			DiversityMetrics: DiversityMetrics{
				GenderNeutral:  g.chance(0.2),
				AgeNeutral:     g.chance(0.15),
				EducationFocus: g.pick(educationFocus),
			},
			Strengths:        g.prefix(candidateStrong, 2, 3),
			ImprovementAreas: g.prefix(candidateImprove, 1, 2),
			Feedback:         candidateFeedback,
			Ranking:          i + 1,
		}
	}

	slices.SortStableFunc(out, func(a, b CandidateAnalysis) int {
		return cmp.Compare(b.SuitabilityScore, a.SuitabilityScore)
	})

	report := &CandidateReport{JobRole: in.JobRole, Candidates: out}
	biasSum := 0
	for i := range out {
		out[i].Ranking = i + 1
		biasSum += out[i].BiasScore
		switch out[i].OverallRating {
		case "High":
			report.Summary.High++
		case "Medium":
			report.Summary.Medium++
		case "Low":
			report.Summary.Low++
		}
	}
	report.Summary.TotalAnalyzed = len(out)
	if len(out) > 0 {
		report.Summary.AverageBias = int(math.Round(float64(biasSum) / float64(len(out))))
	}
	return report
}

func (g *Generator) admin(in Input) []AdminAnalysis {
	today := g.now().Format("1/2/2006")
	out := make([]AdminAnalysis, len(in.Files))
	for i, f := range in.Files {
		suspicious := []string{}
		isFake := g.chance(0.8)
		confidence := g.between(70, 30)
		if g.chance(0.5) {
			suspicious = slices.Clone(suspiciousElements)
		}
		out[i] = AdminAnalysis{
			FileName: f.Name,
			FakeDetection: FakeDetection{
				IsFake:             isFake,
				Confidence:         confidence,
				SuspiciousElements: suspicious,
				VerificationStatus: g.pick(verificationStatuses),
			},
			VersionControl: VersionControl{
				Version:          "2.1",
				LastModified:     today,
				Changes:          slices.Clone(versionChanges),
				PreviousVersions: slices.Clone(previousVersions),
			},
			ATSOptimization: AdminATS{
				Score:              g.between(60, 40),
				KeywordSuggestions: slices.Clone(adminKeywords),
				FormatIssues:       slices.Clone(adminFormatIssues),
				Improvements:       slices.Clone(adminImprovements),
			},
			PlacementLinking: PlacementLinking{MatchedPositions: clonePositions(matchedPositions)},
		}
	}
	return out
}

// ReasonCategory maps a free-text quit reason onto a category by substring.
func ReasonCategory(reason string) string {
	r := strings.ToLower(reason)
	switch {
	case strings.Contains(r, "growth"):
		return "Career Growth"
	case strings.Contains(r, "balance"):
		return "Work-Life Balance"
	case strings.Contains(r, "pay"):
		return "Compensation"
	default:
		return "Job Satisfaction"
	}
}

func transition(reason string) *RoleTransitionAnalysis {
	rec := "Consider Options"
	if strings.Contains(strings.ToLower(reason), "growth") {
		rec = "Transition"
	}
	opps := make([]TransitionOpportunity, len(transitionOpportunities))
	for i, o := range transitionOpportunities {
		o.Benefits = slices.Clone(o.Benefits)
		opps[i] = o
	}
	return &RoleTransitionAnalysis{
		CurrentRole:             currentRole,
		QuitReason:              reason,
		ReasonCategory:          ReasonCategory(reason),
		Recommendation:          rec,
		StayReasons:             slices.Clone(stayReasons),
		TransitionOpportunities: opps,
		ActionPlan:              slices.Clone(actionPlan),
	}
}

func reskill(company, role string) *ReskillAnalysis {
	plan := make([]DevelopmentStep, len(developmentPlan))
	for i, s := range developmentPlan {
		s.Resources = slices.Clone(s.Resources)
		plan[i] = s
	}
	return &ReskillAnalysis{
		CurrentRole:      currentRole,
		DreamCompany:     company,
		DreamRole:        role,
		FeasibilityScore: reskillFeasibility,
		SkillGaps:        slices.Clone(reskillGaps),
		DevelopmentPlan:  plan,
		CompanyInsights: CompanyInsights{
			Culture:      companyInsights.Culture,
			Requirements: slices.Clone(companyInsights.Requirements),
			Benefits:     slices.Clone(companyInsights.Benefits),
		},
	}
}

func clonePositions(in []MatchedPosition) []MatchedPosition {
	out := make([]MatchedPosition, len(in))
	for i, p := range in {
		p.Requirements = slices.Clone(p.Requirements)
		out[i] = p
	}
	return out
}
