package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/DukeRupert/aqdi/internal/domain"
)

// The backend has shipped three response shapes. The canonical one wraps the
// result in an envelope:
//
//	{"status": "completed", "analysis_result": {"compliance_score": 80,
//	  "compliance_level": "...", "analysis_date": "...", "issues": [...],
//	  "missing_clauses": [{"importance": "high", ...}], "compliant_clauses": [...]}}
//
// Two legacy shapes are flat objects. One uses violations/risk,
// missing_clauses/name, risks/explanation/severity and overall_risk; the
// demo data uses rule/risk_level/clause. Both are accepted and mapped to the
// same canonical fields.

type wireEnvelope struct {
	Status         string          `json:"status"`
	Error          string          `json:"error"`
	Message        string          `json:"message"`
	AnalysisResult json.RawMessage `json:"analysis_result"`
}

type wireResult struct {
	Status           string          `json:"status"`
	Error            string          `json:"error"`
	Message          string          `json:"message"`
	ContractType     string          `json:"contract_type"`
	ComplianceScore  *float64        `json:"compliance_score"`
	ComplianceLevel  string          `json:"compliance_level"`
	OverallRisk      string          `json:"overall_risk"`
	AnalysisDate     string          `json:"analysis_date"`
	Issues           []wireIssue     `json:"issues"`
	Violations       []wireIssue     `json:"violations"`
	MissingClauses   []wireMissing   `json:"missing_clauses"`
	Risks            []wireRisk      `json:"risks"`
	CompliantClauses []wireCompliant `json:"compliant_clauses"`
	Recommendations  []string        `json:"recommendations"`
}

type wireIssue struct {
	Rule           string `json:"rule"`
	Description    string `json:"description"`
	Reference      string `json:"reference"`
	Recommendation string `json:"recommendation"`
	Severity       string `json:"severity"`
	RiskLevel      string `json:"risk_level"`
	Risk           string `json:"risk"`
}

type wireMissing struct {
	Name           string `json:"name"`
	Clause         string `json:"clause"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
	Importance     string `json:"importance"`
	RiskLevel      string `json:"risk_level"`
}

type wireRisk struct {
	Rule        string `json:"rule"`
	Description string `json:"description"`
	Explanation string `json:"explanation"`
	Reference   string `json:"reference"`
	Severity    string `json:"severity"`
	RiskLevel   string `json:"risk_level"`
}

type wireCompliant struct {
	Description string `json:"description"`
	Reference   string `json:"reference"`
}

// Normalize decodes a successful backend response body into the canonical
// result. A body reporting a failed analysis yields a *BackendError; a body
// that is not a recognizable result yields ErrMalformedResponse.
func Normalize(body []byte) (*domain.AnalysisResult, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrMalformedResponse)
	}

	var env wireEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if failed(env.Status, env.Error) {
		return nil, &BackendError{Status: http.StatusOK, Detail: firstNonEmpty(env.Message, env.Error)}
	}

	inner := trimmed
	if len(env.AnalysisResult) > 0 && !bytes.Equal(env.AnalysisResult, []byte("null")) {
		inner = env.AnalysisResult
	}

	var w wireResult
	if err := json.Unmarshal(inner, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if failed(w.Status, w.Error) {
		return nil, &BackendError{Status: http.StatusOK, Detail: firstNonEmpty(w.Message, w.Error)}
	}
	if w.ComplianceScore == nil {
		return nil, fmt.Errorf("%w: missing compliance_score", ErrMalformedResponse)
	}

	return w.toDomain(), nil
}

func failed(status, errMsg string) bool {
	return status == "failed" || errMsg != ""
}

func (w *wireResult) toDomain() *domain.AnalysisResult {
	r := &domain.AnalysisResult{
		ContractType:    domain.ContractType(w.ContractType),
		ComplianceScore: int(math.Round(*w.ComplianceScore)),
		ComplianceLevel: w.ComplianceLevel,
		OverallRisk:     w.OverallRisk,
		AnalysisDate:    parseDate(w.AnalysisDate),
		Recommendations: w.Recommendations,
	}
	if !r.ContractType.IsValid() {
		r.ContractType = ""
	}

	for _, v := range append(w.Issues, w.Violations...) {
		r.Violations = append(r.Violations, domain.Violation{
			Rule:           v.Rule,
			Description:    v.Description,
			Reference:      v.Reference,
			Recommendation: v.Recommendation,
			RiskLevel:      domain.ParseRiskLevel(firstNonEmpty(v.Severity, v.RiskLevel, v.Risk)),
		})
	}

	for _, m := range w.MissingClauses {
		r.MissingClauses = append(r.MissingClauses, domain.MissingClause{
			Name:           firstNonEmpty(m.Name, m.Clause),
			Description:    m.Description,
			Recommendation: m.Recommendation,
			RiskLevel:      domain.ParseRiskLevel(firstNonEmpty(m.Importance, m.RiskLevel)),
		})
	}

	for _, k := range w.Risks {
		risk := domain.Risk{
			Description: k.Description,
			Explanation: k.Explanation,
			Reference:   k.Reference,
			Severity:    domain.ParseRiskLevel(firstNonEmpty(k.Severity, k.RiskLevel)),
		}
		// Demo shape: rule is the headline, description the explanation.
		if k.Rule != "" && k.Explanation == "" {
			risk.Description, risk.Explanation = k.Rule, k.Description
		}
		r.Risks = append(r.Risks, risk)
	}

	for _, c := range w.CompliantClauses {
		r.CompliantClauses = append(r.CompliantClauses, domain.CompliantClause(c))
	}

	// The envelope shape carries recommendations per item only.
	if w.Recommendations == nil {
		for _, v := range r.Violations {
			if v.Recommendation != "" {
				r.Recommendations = append(r.Recommendations, v.Recommendation)
			}
		}
		for _, m := range r.MissingClauses {
			if m.Recommendation != "" {
				r.Recommendations = append(r.Recommendations, m.Recommendation)
			}
		}
	}

	r.ClampScore()
	r.EnsureLists()
	return r
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
