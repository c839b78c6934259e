// Package report turns an analysis result into the localized view model the
// results partial renders. Build is pure: no I/O, no clock.
package report

import (
	"fmt"
	"time"

	twmerge "github.com/Oudwins/tailwind-merge-go"

	"github.com/DukeRupert/aqdi/internal/domain"
	"github.com/DukeRupert/aqdi/internal/i18n"
	"github.com/DukeRupert/aqdi/internal/locale"
)

// =============================================================================
// View Model
// =============================================================================

// View is a fully localized analysis report.
type View struct {
	Dir              string
	ContractType     string
	AnalysisDate     string
	Score            int
	ScoreClass       string
	ScoreLabel       string
	Level            string
	OverallRisk      Badge
	Violations       Section[ViolationItem]
	MissingClauses   Section[MissingClauseItem]
	Risks            Section[RiskItem]
	CompliantClauses Section[CompliantItem]
	Recommendations  Section[string]
	ReferencePrefix  string
	RecommendPrefix  string
	SeverityPrefix   string
	CompliantBadge   string
	ScoreNote        string
}

// Section is one report block. Empty holds the affirmation shown when
// there are no items.
type Section[T any] struct {
	Title string
	Items []T
	Empty string
}

// HasItems reports whether the section has anything to list.
func (s Section[T]) HasItems() bool {
	return len(s.Items) > 0
}

// Badge is a severity label and its classes.
type Badge struct {
	Label string
	Class string
}

type ViolationItem struct {
	Rule           string
	Description    string
	Reference      string
	Recommendation string
	Badge          Badge
}

type MissingClauseItem struct {
	Name           string
	Description    string
	Recommendation string
	Badge          Badge
}

type RiskItem struct {
	Description string
	Explanation string
	Reference   string
	Badge       Badge
}

type CompliantItem struct {
	Description string
	Reference   string
}

// =============================================================================
// Styling
// =============================================================================

const badgeBase = "inline-flex items-center rounded-full px-2.5 py-0.5 text-xs font-medium bg-gray-100 text-gray-800"

var severityClasses = map[domain.RiskLevel]string{
	domain.RiskHigh:   "bg-red-100 text-red-800",
	domain.RiskMedium: "bg-orange-100 text-orange-800",
	domain.RiskLow:    "bg-yellow-100 text-yellow-800",
}

var bandClasses = map[string]string{
	"excellent": "bg-green-500",
	"very_good": "bg-green-400",
	"good":      "bg-yellow-400",
	"average":   "bg-orange-400",
	"poor":      "bg-red-500",
}

// SeverityClass returns the badge classes for level. Unknown levels keep
// the neutral gray base.
func SeverityClass(level domain.RiskLevel) string {
	return twmerge.Merge(badgeBase, severityClasses[level])
}

// ScoreClass returns the background class of the score band.
func ScoreClass(score int) string {
	return bandClasses[domain.BandFor(score).ID]
}

// =============================================================================
// Build
// =============================================================================

// Build localizes result for l. A nil result yields the zero View.
func Build(result *domain.AnalysisResult, l locale.Locale, cat *i18n.Catalog) View {
	if result == nil {
		return View{}
	}
	r := result.Clone()
	r.EnsureLists()

	tr := func(s string) string { return i18n.Translate(s, l) }
	band := domain.BandFor(r.ComplianceScore)

	v := View{
		Dir:             l.Dir(),
		ContractType:    ContractTypeLabel(r.ContractType, l, cat),
		AnalysisDate:    FormatDate(r.AnalysisDate, l),
		Score:           r.ComplianceScore,
		ScoreClass:      ScoreClass(r.ComplianceScore),
		ScoreLabel:      cat.T(l, "level."+band.ID),
		Level:           tr(r.ComplianceLevel),
		ReferencePrefix: cat.T(l, "results.reference"),
		RecommendPrefix: cat.T(l, "results.recommendation"),
		SeverityPrefix:  cat.T(l, "results.severity"),
		CompliantBadge:  cat.T(l, "results.compliantBadge"),
		ScoreNote:       cat.T(l, "results.scoreNote"),
	}
	if v.Level == "" {
		v.Level = v.ScoreLabel
	}
	if r.OverallRisk != "" {
		v.OverallRisk = overallBadge(r.OverallRisk, l, cat)
	}

	v.Violations = Section[ViolationItem]{
		Title: cat.T(l, "results.violations"),
		Empty: cat.T(l, "results.violations.empty"),
	}
	for _, x := range r.Violations {
		v.Violations.Items = append(v.Violations.Items, ViolationItem{
			Rule:           tr(x.Rule),
			Description:    tr(x.Description),
			Reference:      tr(x.Reference),
			Recommendation: tr(x.Recommendation),
			Badge:          badge(x.RiskLevel, l, cat),
		})
	}

	v.MissingClauses = Section[MissingClauseItem]{
		Title: cat.T(l, "results.missing"),
		Empty: cat.T(l, "results.missing.empty"),
	}
	for _, x := range r.MissingClauses {
		v.MissingClauses.Items = append(v.MissingClauses.Items, MissingClauseItem{
			Name:           tr(x.Name),
			Description:    tr(x.Description),
			Recommendation: tr(x.Recommendation),
			Badge:          badge(x.RiskLevel, l, cat),
		})
	}

	v.Risks = Section[RiskItem]{
		Title: cat.T(l, "results.risks"),
		Empty: cat.T(l, "results.risks.empty"),
	}
	for _, x := range r.Risks {
		v.Risks.Items = append(v.Risks.Items, RiskItem{
			Description: tr(x.Description),
			Explanation: tr(x.Explanation),
			Reference:   tr(x.Reference),
			Badge:       badge(x.Severity, l, cat),
		})
	}

	v.CompliantClauses = Section[CompliantItem]{
		Title: cat.T(l, "results.compliant"),
		Empty: cat.T(l, "results.compliant.empty"),
	}
	for _, x := range r.CompliantClauses {
		v.CompliantClauses.Items = append(v.CompliantClauses.Items, CompliantItem{
			Description: tr(x.Description),
			Reference:   tr(x.Reference),
		})
	}

	v.Recommendations = Section[string]{
		Title: cat.T(l, "results.recommendations"),
		Empty: cat.T(l, "results.recommendations.empty"),
	}
	for _, rec := range r.Recommendations {
		v.Recommendations.Items = append(v.Recommendations.Items, tr(rec))
	}

	return v
}

func badge(level domain.RiskLevel, l locale.Locale, cat *i18n.Catalog) Badge {
	return Badge{
		Label: SeverityLabel(level, l, cat),
		Class: SeverityClass(level),
	}
}

// overallBadge styles the free-text overall risk by the level it names,
// keeping the backend's wording when it names none.
func overallBadge(text string, l locale.Locale, cat *i18n.Catalog) Badge {
	level := domain.ParseRiskLevel(text)
	if level == "" {
		return Badge{Label: i18n.Translate(text, l), Class: SeverityClass(level)}
	}
	return badge(level, l, cat)
}

// SeverityLabel returns the localized label for level. Levels outside the
// known set are passed through the phrase translator.
func SeverityLabel(level domain.RiskLevel, l locale.Locale, cat *i18n.Catalog) string {
	key := "risk." + string(level)
	if cat.Has(key) {
		return cat.T(l, key)
	}
	return i18n.Translate(string(level), l)
}

// ContractTypeLabel returns the localized contract type name.
func ContractTypeLabel(t domain.ContractType, l locale.Locale, cat *i18n.Catalog) string {
	key := "contractType." + string(t)
	if cat.Has(key) {
		return cat.T(l, key)
	}
	return string(t)
}

var arabicMonths = [...]string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

// FormatDate renders t as a long date in l. The zero time renders empty.
func FormatDate(t time.Time, l locale.Locale) string {
	if t.IsZero() {
		return ""
	}
	if l.IsArabic() {
		return fmt.Sprintf("%d %s %d", t.Day(), arabicMonths[t.Month()-1], t.Year())
	}
	return t.Format("January 2, 2006")
}
