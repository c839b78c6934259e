package analysis

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DukeRupert/aqdi/internal/domain"
	"github.com/DukeRupert/aqdi/internal/locale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := NewClient(Config{BaseURL: url + "/", Timeout: 5 * time.Second}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return c
}

func rentalRequest(body string) Request {
	return Request{
		File:         strings.NewReader(body),
		Filename:     "lease.pdf",
		Size:         int64(len(body)),
		ContentType:  "application/pdf",
		ContractType: domain.ContractTypeRental,
		Language:     locale.Arabic,
	}
}

func TestClient_Analyze_SendsMultipartAndNormalizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/upload-contract/", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "rental", r.FormValue("contract_type"))
		assert.Equal(t, "ar", r.FormValue("language"))

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "lease.pdf", hdr.Filename)
		assert.Equal(t, "application/pdf", hdr.Header.Get("Content-Type"))
		assert.Equal(t, "%PDF-1.7 contract", string(data))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"status": "completed",
			"analysis_result": {
				"contract_type": "rental",
				"compliance_score": 80,
				"compliance_level": "جيد جداً",
				"issues": [{"severity": "medium", "description": "Deposit too high", "reference": "Ejar Art. 12", "recommendation": "Reduce deposit"}],
				"missing_clauses": [],
				"compliant_clauses": []
			}
		}`)
	}))
	defer srv.Close()

	result, err := newTestClient(t, srv.URL).Analyze(context.Background(), rentalRequest("%PDF-1.7 contract"))
	require.NoError(t, err)

	assert.Equal(t, 80, result.ComplianceScore)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, domain.RiskMedium, result.Violations[0].RiskLevel)
	assert.Equal(t, []string{"Reduce deposit"}, result.Recommendations)
}

func TestClient_Analyze_ReportsTransportProgress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		_, _ = io.WriteString(w, `{"compliance_score": 90}`)
	}))
	defer srv.Close()

	body := strings.Repeat("x", 64<<10)
	req := rentalRequest(body)

	var last, calls int64
	req.OnProgress = func(sent, total int64) {
		atomic.AddInt64(&calls, 1)
		assert.GreaterOrEqual(t, sent, atomic.LoadInt64(&last))
		atomic.StoreInt64(&last, sent)
		assert.Equal(t, int64(len(body)), total)
	}

	_, err := newTestClient(t, srv.URL).Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.Positive(t, atomic.LoadInt64(&calls))
	assert.Equal(t, int64(len(body)), atomic.LoadInt64(&last))
}

func TestClient_Analyze_BackendErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{"fastapi detail", http.StatusBadRequest, `{"detail": "X"}`, "X"},
		{"flask error", http.StatusBadRequest, `{"error": "No file provided"}`, "No file provided"},
		{"validation list", http.StatusUnprocessableEntity, `{"detail": [{"loc": ["body","file"], "msg": "field required"}]}`, ""},
		{"non json", http.StatusBadGateway, `<html>bad gateway</html>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.Copy(io.Discard, r.Body)
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			result, err := newTestClient(t, srv.URL).Analyze(context.Background(), rentalRequest("data"))
			require.Error(t, err)
			assert.Nil(t, result)

			var be *BackendError
			require.True(t, errors.As(err, &be))
			assert.Equal(t, tt.status, be.Status)

			detail, ok := Detail(err)
			assert.Equal(t, tt.wantDetail, detail)
			assert.Equal(t, tt.wantDetail != "", ok)
		})
	}
}

func TestClient_Analyze_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		_, _ = io.WriteString(w, `{"analysis_result": `)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Analyze(context.Background(), rentalRequest("data"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.True(t, IsTransportError(err))
}

func TestClient_Analyze_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestClient(t, url).Analyze(context.Background(), rentalRequest("data"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_Analyze_WithoutFileMakesNoRequest(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	req := rentalRequest("")
	req.File = nil

	_, err := newTestClient(t, srv.URL).Analyze(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestClient_Analyze_Cancelled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := newTestClient(t, srv.URL).Analyze(ctx, rentalRequest("data"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(Config{}, slog.Default())
	assert.Error(t, err)
}
