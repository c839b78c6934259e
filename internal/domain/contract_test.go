package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContractType(t *testing.T) {
	tests := []struct {
		input   string
		want    ContractType
		wantErr bool
	}{
		{"employment", ContractTypeEmployment, false},
		{"Rental", ContractTypeRental, false},
		{" sales ", ContractTypeSales, false},
		{"partnership", ContractTypePartnership, false},
		{"lease", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseContractType(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, EINVALID, ErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRiskLevel(t *testing.T) {
	tests := []struct {
		input string
		want  RiskLevel
	}{
		{"high", RiskHigh},
		{"High", RiskHigh},
		{"Medium Risk", RiskMedium},
		{" low ", RiskLow},
		{"critical", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRiskLevel(tt.input))
		})
	}
}

func TestUploadedFile_Extension(t *testing.T) {
	assert.Equal(t, ".pdf", (&UploadedFile{Name: "lease.PDF"}).Extension())
	assert.Equal(t, ".docx", (&UploadedFile{Name: "a.b.docx"}).Extension())
	assert.Equal(t, "", (&UploadedFile{Name: "README"}).Extension())
}

func TestEnsureLists(t *testing.T) {
	r := &AnalysisResult{ComplianceScore: 92}
	r.EnsureLists()

	assert.NotNil(t, r.Violations)
	assert.NotNil(t, r.MissingClauses)
	assert.NotNil(t, r.Risks)
	assert.NotNil(t, r.CompliantClauses)
	assert.NotNil(t, r.Recommendations)
	assert.Empty(t, r.Violations)
}

func TestClampScore(t *testing.T) {
	r := &AnalysisResult{ComplianceScore: 140}
	r.ClampScore()
	assert.Equal(t, 100, r.ComplianceScore)

	r.ComplianceScore = -5
	r.ClampScore()
	assert.Equal(t, 0, r.ComplianceScore)
}

func TestClone_DoesNotShareSlices(t *testing.T) {
	r := &AnalysisResult{Recommendations: []string{"a"}}
	c := r.Clone()
	c.Recommendations[0] = "b"
	assert.Equal(t, "a", r.Recommendations[0])

	var nilResult *AnalysisResult
	assert.Nil(t, nilResult.Clone())
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "excellent"},
		{90, "excellent"},
		{89, "very_good"},
		{80, "very_good"},
		{79, "good"},
		{70, "good"},
		{69, "average"},
		{60, "average"},
		{59, "poor"},
		{0, "poor"},
		{-3, "poor"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BandFor(tt.score).ID, "score %d", tt.score)
	}
}
