package mcpserver

// AnalysisShapes describes the generated report shapes and the ranges their
// numbers are drawn from. Ranges are inclusive.
const AnalysisShapes = `# Hirelens Mock Analysis Shapes

Every analysis is a mock. Scores are uniform random draws inside the ranges
below and lists come from fixed pools. Uploaded files only contribute their
echoed metadata (name, type, size, pages or words); they never change a score.

## resume (one file)

| Field | Range |
|---|---|
| overallScore | 75-99 |
| atsScore | 70-99 |
| softSkills[].score | per skill, e.g. Communication 80-99 |
| biasAnalysis.genderBias | 2-9 |
| biasAnalysis.ageBias | 3-12 |
| biasAnalysis.educationBias | 5-19 |
| biasAnalysis.overallBiasScore | 5-14 |
| salaryPrediction.minSalary | 75000-99999 USD |
| salaryPrediction.maxSalary | 95000-129999 USD |
| salaryPrediction.confidence | 85-99 |
| atsOptimization.score | 75-99 |
| atsOptimization.keywordDensity | 70-89 |
| atsOptimization.formatScore | 85-99 |
| atsOptimization.readabilityScore | 80-99 |

roleRelevance, skillSuggestions, keywordMatches, improvementAreas,
careerProgression, skillGapAnalysis, learningResources and alerts are fixed.

## candidates (one or more files, optional jobRole)

One entry per file, named after the file stem, sorted by suitabilityScore
(descending, ties keep upload order) and ranked from 1.

| Field | Range |
|---|---|
| overallRating | High, Medium or Low |
| suitabilityScore | 60-99 |
| keywordMatchScore | 70-99 |
| retentionScore | 70-99 |
| biasScore | 5-14 |
| atsCompatibility | 75-99 |
| skillGaps | first 1-3 of a fixed pool |
| strengths | first 2-4 of a fixed pool |
| improvementAreas | first 1-2 of a fixed pool |

summary counts ratings and reports the rounded mean biasScore.

## admin (one or more files)

One entry per file. fakeDetection.isFake is true with probability 0.2,
confidence is 70-99, suspiciousElements is non-empty about half the time.
atsOptimization.score is 60-99. versionControl.lastModified is today (M/D/YYYY).

## transition (one file, quitReason)

Deterministic. reasonCategory is derived from the quit reason:
"growth" -> Career Growth, "balance" -> Work-Life Balance,
"pay" -> Compensation, otherwise Job Satisfaction. The recommendation is
Transition when the reason mentions growth, otherwise Consider Options.

## reskill (one file, dreamCompany, dreamRole)

Deterministic. Echoes the company and role with a fixed feasibility score,
skill gaps, development plan and company insights.
`
