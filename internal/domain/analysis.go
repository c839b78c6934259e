package domain

import "time"

// =============================================================================
// Analysis Result
// =============================================================================

// AnalysisResult is the canonical analysis report. Every response shape the
// backend produces is normalized into this type at the network boundary.
type AnalysisResult struct {
	ContractType     ContractType
	ComplianceScore  int    // 0-100
	ComplianceLevel  string // Free text, translated for display
	OverallRisk      string // Free text, translated for display
	AnalysisDate     time.Time
	Violations       []Violation
	MissingClauses   []MissingClause
	Risks            []Risk
	CompliantClauses []CompliantClause
	Recommendations  []string
}

// Violation is a clause contradicting a named legal reference.
type Violation struct {
	Rule           string
	Description    string
	Reference      string
	Recommendation string
	RiskLevel      RiskLevel
}

// MissingClause is a legally expected clause absent from the contract.
type MissingClause struct {
	Name           string
	Description    string
	Recommendation string
	RiskLevel      RiskLevel
}

// Risk is a clause that is present but potentially unenforceable or
// disadvantageous.
type Risk struct {
	Description string
	Explanation string
	Reference   string
	Severity    RiskLevel
}

// CompliantClause is a required clause the analysis found in the contract.
type CompliantClause struct {
	Description string
	Reference   string
}

// EnsureLists replaces nil list fields with empty slices so an absent list
// and an empty one are indistinguishable to consumers.
func (r *AnalysisResult) EnsureLists() {
	if r.Violations == nil {
		r.Violations = []Violation{}
	}
	if r.MissingClauses == nil {
		r.MissingClauses = []MissingClause{}
	}
	if r.Risks == nil {
		r.Risks = []Risk{}
	}
	if r.CompliantClauses == nil {
		r.CompliantClauses = []CompliantClause{}
	}
	if r.Recommendations == nil {
		r.Recommendations = []string{}
	}
}

// ClampScore bounds the compliance score to 0-100.
func (r *AnalysisResult) ClampScore() {
	switch {
	case r.ComplianceScore < 0:
		r.ComplianceScore = 0
	case r.ComplianceScore > 100:
		r.ComplianceScore = 100
	}
}

// Clone returns a copy that shares no slices with r.
func (r *AnalysisResult) Clone() *AnalysisResult {
	if r == nil {
		return nil
	}
	c := *r
	c.Violations = append([]Violation{}, r.Violations...)
	c.MissingClauses = append([]MissingClause{}, r.MissingClauses...)
	c.Risks = append([]Risk{}, r.Risks...)
	c.CompliantClauses = append([]CompliantClause{}, r.CompliantClauses...)
	c.Recommendations = append([]string{}, r.Recommendations...)
	return &c
}

// =============================================================================
// Compliance Levels
// =============================================================================

// ComplianceBand is a score range with a fixed display grade.
type ComplianceBand struct {
	ID       string // Message key suffix, e.g. "very_good"
	MinScore int
	MaxScore int
}

// ComplianceBands lists the grades from best to worst. The thresholds are
// shared by the backend and the results view.
var ComplianceBands = []ComplianceBand{
	{ID: "excellent", MinScore: 90, MaxScore: 100},
	{ID: "very_good", MinScore: 80, MaxScore: 89},
	{ID: "good", MinScore: 70, MaxScore: 79},
	{ID: "average", MinScore: 60, MaxScore: 69},
	{ID: "poor", MinScore: 0, MaxScore: 59},
}

// BandFor returns the band containing score. Scores out of range are clamped.
func BandFor(score int) ComplianceBand {
	for _, b := range ComplianceBands {
		if score >= b.MinScore {
			return b
		}
	}
	return ComplianceBands[len(ComplianceBands)-1]
}
