package sample

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/DukeRupert/aqdi/internal/analysis"
	"github.com/DukeRupert/aqdi/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProvider_ReturnsCannedResultPerType(t *testing.T) {
	tests := []struct {
		contractType   domain.ContractType
		wantScore      int
		wantViolations int
	}{
		{domain.ContractTypeEmployment, 60, 2},
		{domain.ContractTypeRental, 80, 1},
		{domain.ContractTypeSales, 92, 0},
		{domain.ContractTypePartnership, 90, 0},
	}

	for _, tt := range tests {
		t.Run(tt.contractType.String(), func(t *testing.T) {
			p := New(0, discardLogger())
			r, err := p.Analyze(context.Background(), analysis.Request{
				File:         strings.NewReader("contract"),
				ContractType: tt.contractType,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.contractType, r.ContractType)
			assert.Equal(t, tt.wantScore, r.ComplianceScore)
			assert.Len(t, r.Violations, tt.wantViolations)
			assert.NotNil(t, r.Violations)
			assert.NotEmpty(t, r.Recommendations)
			assert.False(t, r.AnalysisDate.IsZero())
		})
	}
}

func TestProvider_DrainsFileThroughProgress(t *testing.T) {
	p := New(0, discardLogger())

	var sent int64
	_, err := p.Analyze(context.Background(), analysis.Request{
		File:         strings.NewReader("0123456789"),
		Size:         10,
		ContractType: domain.ContractTypeRental,
		OnProgress:   func(s, _ int64) { sent = s },
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), sent)
	assert.Equal(t, int64(10), p.BytesRead)
	assert.Equal(t, 1, p.CallCount())
}

func TestProvider_ConfiguredResponseAndError(t *testing.T) {
	p := New(0, discardLogger())
	p.Response = &domain.AnalysisResult{ComplianceScore: 42}

	r, err := p.Analyze(context.Background(), analysis.Request{File: strings.NewReader(""), ContractType: domain.ContractTypeSales})
	require.NoError(t, err)
	assert.Equal(t, 42, r.ComplianceScore)

	p.Error = errors.New("backend down")
	_, err = p.Analyze(context.Background(), analysis.Request{File: strings.NewReader(""), ContractType: domain.ContractTypeSales})
	assert.EqualError(t, err, "backend down")
	assert.Equal(t, 2, p.CallCount())
}

func TestProvider_HonoursCancellation(t *testing.T) {
	p := New(time.Minute, discardLogger())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.Analyze(ctx, analysis.Request{File: strings.NewReader("x"), ContractType: domain.ContractTypeSales})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestResult_UnknownTypeFallsBackToEmployment(t *testing.T) {
	assert.Equal(t, 60, Result("lease").ComplianceScore)
}
