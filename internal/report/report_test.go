package report

import (
	"testing"
	"time"

	"github.com/DukeRupert/aqdi/internal/analysis/sample"
	"github.com/DukeRupert/aqdi/internal/domain"
	"github.com/DukeRupert/aqdi/internal/i18n"
	"github.com/DukeRupert/aqdi/internal/locale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cat = i18n.MustCatalog()

func TestScoreClass_Bands(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "bg-green-500"},
		{90, "bg-green-500"},
		{89, "bg-green-400"},
		{80, "bg-green-400"},
		{79, "bg-yellow-400"},
		{70, "bg-yellow-400"},
		{69, "bg-orange-400"},
		{60, "bg-orange-400"},
		{59, "bg-red-500"},
		{0, "bg-red-500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ScoreClass(tt.score), "score %d", tt.score)
	}
}

func TestSeverityClass(t *testing.T) {
	tests := []struct {
		level   domain.RiskLevel
		want    string
		notWant string
	}{
		{domain.RiskHigh, "bg-red-100", "bg-gray-100"},
		{domain.RiskMedium, "bg-orange-100", "bg-gray-100"},
		{domain.RiskLow, "bg-yellow-100", "bg-gray-100"},
		{domain.RiskLevel("critical"), "bg-gray-100", "bg-red-100"},
	}
	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			class := SeverityClass(tt.level)
			assert.Contains(t, class, tt.want)
			assert.NotContains(t, class, tt.notWant)
			assert.Contains(t, class, "rounded-full")
		})
	}
}

func TestBuild_NilResult(t *testing.T) {
	assert.Equal(t, View{}, Build(nil, locale.Arabic, cat))
}

func TestBuild_RentalArabic(t *testing.T) {
	r := sample.Result(domain.ContractTypeRental)
	r.AnalysisDate = time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC)

	v := Build(r, locale.Arabic, cat)

	assert.Equal(t, "rtl", v.Dir)
	assert.Equal(t, 80, v.Score)
	assert.Equal(t, "bg-green-400", v.ScoreClass)
	assert.Equal(t, "جيد جداً", v.ScoreLabel)
	assert.Equal(t, "عقد إيجار", v.ContractType)
	assert.Equal(t, "9 مارس 2025", v.AnalysisDate)

	require.Len(t, v.Violations.Items, 1)
	assert.Equal(t, "متوسطة", v.Violations.Items[0].Badge.Label)
	assert.Contains(t, v.Violations.Items[0].Badge.Class, "bg-orange-100")
}

func TestBuild_EmptySectionsShowAffirmation(t *testing.T) {
	r := &domain.AnalysisResult{ContractType: domain.ContractTypeSales, ComplianceScore: 95}

	ar := Build(r, locale.Arabic, cat)
	assert.False(t, ar.Violations.HasItems())
	assert.Equal(t, "لا توجد مخالفات قانونية", ar.Violations.Empty)
	assert.Equal(t, "جميع البنود المطلوبة موجودة", ar.MissingClauses.Empty)

	en := Build(r, locale.English, cat)
	assert.Equal(t, "No legal violations found", en.Violations.Empty)
	assert.Equal(t, "Legal Violations", en.Violations.Title)
	assert.False(t, en.Recommendations.HasItems())
	assert.Empty(t, en.AnalysisDate)
}

func TestBuild_TranslatesFreeTextOnlyInArabic(t *testing.T) {
	r := &domain.AnalysisResult{
		ContractType:    domain.ContractTypeEmployment,
		ComplianceScore: 55,
		ComplianceLevel: "Poor Compliance",
		Violations: []domain.Violation{{
			Rule:        "Legal Violation",
			Description: "Clause is High Risk for the employer",
			RiskLevel:   domain.RiskHigh,
		}},
		Recommendations: []string{"Recommendations"},
	}

	ar := Build(r, locale.Arabic, cat)
	assert.Equal(t, "امتثال ضعيف", ar.Level)
	assert.Equal(t, "مخالفة قانونية", ar.Violations.Items[0].Rule)
	assert.Equal(t, "Clause is مخاطر عالية for the employer", ar.Violations.Items[0].Description)
	assert.Equal(t, []string{"التوصيات"}, ar.Recommendations.Items)
	assert.Equal(t, "bg-red-500", ar.ScoreClass)

	en := Build(r, locale.English, cat)
	assert.Equal(t, "Poor Compliance", en.Level)
	assert.Equal(t, "Legal Violation", en.Violations.Items[0].Rule)
	assert.Equal(t, "High", en.Violations.Items[0].Badge.Label)
}

func TestBuild_LevelFallsBackToBand(t *testing.T) {
	v := Build(&domain.AnalysisResult{ComplianceScore: 72}, locale.English, cat)
	assert.Equal(t, "Good", v.Level)
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	r := &domain.AnalysisResult{ComplianceScore: 70}
	Build(r, locale.Arabic, cat)
	assert.Nil(t, r.Violations)
}

func TestBuild_OverallRiskBadge(t *testing.T) {
	v := Build(&domain.AnalysisResult{OverallRisk: "Medium Risk"}, locale.Arabic, cat)
	assert.Equal(t, "متوسطة", v.OverallRisk.Label)
	assert.Contains(t, v.OverallRisk.Class, "bg-orange-100")

	v = Build(&domain.AnalysisResult{OverallRisk: "Critical"}, locale.English, cat)
	assert.Equal(t, "Critical", v.OverallRisk.Label)
	assert.Contains(t, v.OverallRisk.Class, "bg-gray-100")

	v = Build(&domain.AnalysisResult{}, locale.English, cat)
	assert.Empty(t, v.OverallRisk.Label)
}

func TestSeverityLabel_UnknownLevel(t *testing.T) {
	assert.Equal(t, "مخاطر عالية", SeverityLabel("High Risk", locale.Arabic, cat))
	assert.Equal(t, "severe", SeverityLabel("severe", locale.English, cat))
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "December 1, 2024", FormatDate(d, locale.English))
	assert.Equal(t, "1 ديسمبر 2024", FormatDate(d, locale.Arabic))
	assert.Empty(t, FormatDate(time.Time{}, locale.English))
}
