package internal

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("ANALYZER", "")
	t.Setenv("ANALYSIS_API_URL", "")
	t.Setenv("STORAGE_PROVIDER", "")
	t.Setenv("SMTP_PORT", "")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "http", cfg.Analyzer)
	assert.Equal(t, "http://localhost:8000", cfg.AnalysisAPIURL)
	assert.Equal(t, 500*time.Millisecond, cfg.ProgressInterval)
	assert.Equal(t, 10, cfg.ProgressStep)
	assert.Equal(t, "memory", cfg.StorageProvider)
	assert.Equal(t, 1025, cfg.SMTPPort)
	assert.True(t, cfg.IsDevelopment())
}

func TestNewConfig_TrimsTrailingSlashFromAPIURL(t *testing.T) {
	t.Setenv("ANALYSIS_API_URL", "https://api.example.com/")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.AnalysisAPIURL)
}

func TestNewConfig_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "unknown analyzer",
			env:  map[string]string{"ANALYZER": "gpt"},
			want: "ANALYZER",
		},
		{
			name: "unknown storage provider",
			env:  map[string]string{"STORAGE_PROVIDER": "ftp"},
			want: "STORAGE_PROVIDER",
		},
		{
			name: "r2 without account",
			env:  map[string]string{"STORAGE_PROVIDER": "r2", "R2_ACCOUNT_ID": ""},
			want: "R2_ACCOUNT_ID",
		},
		{
			name: "minio without credentials",
			env:  map[string]string{"STORAGE_PROVIDER": "minio", "MINIO_ACCESS_KEY": ""},
			want: "MINIO_ACCESS_KEY",
		},
		{
			name: "progress step above ceiling",
			env:  map[string]string{"PROGRESS_STEP": "95"},
			want: "PROGRESS_STEP",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := NewConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewLogger_FormatByEnvironment(t *testing.T) {
	var text bytes.Buffer
	NewLogger(&text, "development", "info").Info("hello", "k", "v")
	assert.Contains(t, text.String(), "msg=hello")

	var js bytes.Buffer
	NewLogger(&js, "production", "info").Info("hello", "k", "v")
	assert.True(t, strings.HasPrefix(js.String(), "{"))
	assert.Contains(t, js.String(), `"service":"aqdi"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("WARN"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("nonsense"))
}
