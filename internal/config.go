package internal

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	Port     int
	LogLevel string

	// Templates directory for the html/template renderer
	TemplatesDir string
	StaticDir    string

	// Analysis backend
	Analyzer         string // "http" or "sample"
	AnalysisAPIURL   string
	AnalysisTimeout  time.Duration
	SampleDelay      time.Duration
	ProgressInterval time.Duration
	ProgressStep     int

	// Upload limits
	MaxUploadBytes int64

	// Browser sessions
	SessionTTL time.Duration

	// Staging storage for selected contract files
	StorageProvider  string // "memory", "local", "r2" or "minio"
	LocalStoragePath string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	// Rate limits (requests per minute per IP)
	UploadRateLimit   int
	FeedbackRateLimit int

	// Feedback forwarding; disabled when SMTPHost is empty
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	FeedbackTo   string

	// Metrics endpoint authentication
	// If both are empty, the /metrics endpoint will be unprotected (not recommended)
	MetricsUsername string
	MetricsPassword string
}

func NewConfig() (*Config, error) {
	// Load .env file if it exists (ignored in production)
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		TemplatesDir: getEnv("TEMPLATES_DIR", "web/templates"),
		StaticDir:    getEnv("STATIC_DIR", "web/static"),

		// The analysis backend listens on :8000 during local development
		Analyzer:         getEnv("ANALYZER", "http"),
		AnalysisAPIURL:   strings.TrimSuffix(getEnv("ANALYSIS_API_URL", "http://localhost:8000"), "/"),
		AnalysisTimeout:  getEnvDuration("ANALYSIS_TIMEOUT", 2*time.Minute),
		SampleDelay:      getEnvDuration("SAMPLE_DELAY", 2*time.Second),
		ProgressInterval: getEnvDuration("PROGRESS_INTERVAL", 500*time.Millisecond),
		ProgressStep:     getEnvInt("PROGRESS_STEP", 10),

		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 10<<20)),

		SessionTTL: getEnvDuration("SESSION_TTL", 2*time.Hour),

		StorageProvider:  getEnv("STORAGE_PROVIDER", "memory"),
		LocalStoragePath: getEnv("LOCAL_STORAGE_PATH", "./staging"),

		R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:      getEnv("R2_BUCKET_NAME", ""),

		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getEnv("MINIO_BUCKET", "contracts-staging"),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),

		UploadRateLimit:   getEnvInt("UPLOAD_RATE_LIMIT", 20),
		FeedbackRateLimit: getEnvInt("FEEDBACK_RATE_LIMIT", 5),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 1025),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", ""),
		FeedbackTo:   getEnv("FEEDBACK_TO", ""),

		MetricsUsername: getEnv("METRICS_USERNAME", ""),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Analyzer {
	case "http":
		if c.AnalysisAPIURL == "" {
			return fmt.Errorf("ANALYSIS_API_URL is required when ANALYZER is 'http'")
		}
	case "sample":
	default:
		return fmt.Errorf("ANALYZER must be either 'http' or 'sample', got: %s", c.Analyzer)
	}

	if c.ProgressStep < 1 || c.ProgressStep > 90 {
		return fmt.Errorf("PROGRESS_STEP must be between 1 and 90, got: %d", c.ProgressStep)
	}
	if c.ProgressInterval <= 0 {
		return fmt.Errorf("PROGRESS_INTERVAL must be positive, got: %s", c.ProgressInterval)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got: %d", c.MaxUploadBytes)
	}

	switch c.StorageProvider {
	case "memory", "local":
	case "r2":
		if c.R2AccountID == "" {
			return fmt.Errorf("R2_ACCOUNT_ID is required when STORAGE_PROVIDER is 'r2'")
		}
		if c.R2AccessKeyID == "" {
			return fmt.Errorf("R2_ACCESS_KEY_ID is required when STORAGE_PROVIDER is 'r2'")
		}
		if c.R2SecretAccessKey == "" {
			return fmt.Errorf("R2_SECRET_ACCESS_KEY is required when STORAGE_PROVIDER is 'r2'")
		}
		if c.R2BucketName == "" {
			return fmt.Errorf("R2_BUCKET_NAME is required when STORAGE_PROVIDER is 'r2'")
		}
	case "minio":
		if c.MinioAccessKey == "" || c.MinioSecretKey == "" {
			return fmt.Errorf("MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required when STORAGE_PROVIDER is 'minio'")
		}
	default:
		return fmt.Errorf("STORAGE_PROVIDER must be one of 'memory', 'local', 'r2', 'minio', got: %s", c.StorageProvider)
	}

	return nil
}

// IsDevelopment reports whether the server runs with development defaults
// (text logs, template hot-reload, insecure cookies).
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
