// Package sample provides an Analyzer that returns canned per-contract-type
// reports without contacting a backend. It backs local development
// (ANALYZER=sample) and tests.
package sample

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/DukeRupert/aqdi/internal/analysis"
	"github.com/DukeRupert/aqdi/internal/domain"
)

// Provider is a canned analyzer.
type Provider struct {
	logger *slog.Logger
	delay  time.Duration

	mu sync.Mutex

	// Configurable responses for testing
	Response *domain.AnalysisResult
	Error    error

	// Call tracking for testing
	Calls       int
	LastRequest analysis.Request
	BytesRead   int64
}

// New creates a sample provider that answers after delay.
func New(delay time.Duration, logger *slog.Logger) *Provider {
	return &Provider{
		logger: logger,
		delay:  delay,
	}
}

// Analyze drains the file through the progress callback, waits for the
// configured delay and returns the canned report for the contract type.
func (p *Provider) Analyze(ctx context.Context, req analysis.Request) (*domain.AnalysisResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.Calls++
	p.LastRequest = req
	resp, respErr := p.Response, p.Error
	p.mu.Unlock()

	n, err := io.Copy(io.Discard, analysis.NewProgressReader(req.File, req.Size, req.OnProgress))
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.BytesRead += n
	p.mu.Unlock()

	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if respErr != nil {
		return nil, respErr
	}
	if resp != nil {
		return resp.Clone(), nil
	}

	p.logger.Debug("returning sample analysis", "contract_type", req.ContractType, "filename", req.Filename)
	return Result(req.ContractType), nil
}

// CallCount returns the number of Analyze calls so far.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Calls
}

// Result returns the canned report for t. Unknown types get the
// employment report.
func Result(t domain.ContractType) *domain.AnalysisResult {
	build, ok := results[t]
	if !ok {
		build = results[domain.ContractTypeEmployment]
	}
	r := build()
	r.AnalysisDate = time.Now()
	r.EnsureLists()
	return r
}

var results = map[domain.ContractType]func() *domain.AnalysisResult{
	domain.ContractTypeEmployment: func() *domain.AnalysisResult {
		return &domain.AnalysisResult{
			ContractType:    domain.ContractTypeEmployment,
			ComplianceScore: 60,
			Violations: []domain.Violation{
				{
					Rule:        "الحد الأقصى لساعات العمل",
					Description: "يتجاوز العقد الحد الأقصى القانوني لساعات العمل (48 ساعة في الأسبوع) بتحديد 54 ساعة أسبوعياً",
					Reference:   "نظام العمل السعودي، المادة 98",
					RiskLevel:   domain.RiskHigh,
				},
				{
					Rule:        "مدة فترة التجربة",
					Description: "فترة التجربة المحددة (6 أشهر) تتجاوز الحد الأقصى المسموح به قانونياً (90 يوماً)",
					Reference:   "نظام العمل السعودي، المادة 53",
					RiskLevel:   domain.RiskMedium,
				},
			},
			MissingClauses: []domain.MissingClause{
				{
					Name:        "بند الإجازة السنوية",
					Description: "يجب أن يتضمن العقد تفاصيل الإجازة السنوية المدفوعة وفقاً للقانون",
					RiskLevel:   domain.RiskMedium,
				},
				{
					Name:        "التأمين الطبي",
					Description: "يجب أن يتضمن العقد بنداً يوضح تغطية التأمين الطبي للموظف",
					RiskLevel:   domain.RiskMedium,
				},
			},
			Risks: []domain.Risk{
				{
					Description: "شرط عدم المنافسة",
					Explanation: "مدة شرط عدم المنافسة (3 سنوات) طويلة جداً وقد تعتبر غير قابلة للتنفيذ",
					Reference:   "نظام العمل السعودي، المادة 83",
					Severity:    domain.RiskMedium,
				},
			},
			Recommendations: []string{
				"تعديل ساعات العمل الأسبوعية لتكون 48 ساعة كحد أقصى",
				"تقليل فترة التجربة إلى 90 يوماً",
				"إضافة بند يوضح تفاصيل الإجازة السنوية المدفوعة",
				"إضافة بند يوضح تغطية التأمين الطبي",
				"تقليل مدة شرط عدم المنافسة إلى سنة واحدة كحد أقصى",
			},
		}
	},
	domain.ContractTypeRental: func() *domain.AnalysisResult {
		return &domain.AnalysisResult{
			ContractType:    domain.ContractTypeRental,
			ComplianceScore: 80,
			Violations: []domain.Violation{
				{
					Rule:        "نسبة مبلغ التأمين",
					Description: "مبلغ التأمين المحدد (شهرين) يتجاوز الحد الأقصى المسموح به (شهر واحد)",
					Reference:   "أنظمة إيجار، المادة 12",
					RiskLevel:   domain.RiskMedium,
				},
			},
			MissingClauses: []domain.MissingClause{
				{
					Name:        "آلية فض المنازعات",
					Description: "يجب أن يتضمن العقد آلية واضحة لفض المنازعات بين المؤجر والمستأجر",
					RiskLevel:   domain.RiskLow,
				},
			},
			Risks: []domain.Risk{
				{
					Description: "شرط التجديد التلقائي",
					Explanation: "شرط التجديد التلقائي غير محدد المدة قد يكون غير قابل للتنفيذ",
					Reference:   "أنظمة إيجار، المادة 25",
					Severity:    domain.RiskLow,
				},
			},
			Recommendations: []string{
				"تعديل مبلغ التأمين ليكون شهراً واحداً",
				"إضافة بند يوضح آلية فض المنازعات",
				"تحديد مدة محددة للتجديد التلقائي (مثل سنة واحدة)",
			},
		}
	},
	domain.ContractTypeSales: func() *domain.AnalysisResult {
		return &domain.AnalysisResult{
			ContractType:    domain.ContractTypeSales,
			ComplianceScore: 92,
			MissingClauses: []domain.MissingClause{
				{
					Name:        "تفاصيل التسجيل الضريبي",
					Description: "يجب أن يتضمن العقد رقم التسجيل الضريبي للبائع",
					RiskLevel:   domain.RiskLow,
				},
			},
			Risks: []domain.Risk{
				{
					Description: "شروط الضمان",
					Explanation: "شروط الضمان غير محددة بوضوح وقد تتعارض مع حقوق المستهلك",
					Reference:   "نظام حماية المستهلك، المادة 14",
					Severity:    domain.RiskLow,
				},
			},
			Recommendations: []string{
				"إضافة رقم التسجيل الضريبي للبائع",
				"توضيح شروط الضمان بشكل أكثر تفصيلاً",
			},
		}
	},
	domain.ContractTypePartnership: func() *domain.AnalysisResult {
		return &domain.AnalysisResult{
			ContractType:    domain.ContractTypePartnership,
			ComplianceScore: 90,
			MissingClauses: []domain.MissingClause{
				{
					Name:        "آلية تسوية الخلافات",
					Description: "يجب أن يتضمن العقد آلية واضحة لتسوية الخلافات بين الشركاء",
					RiskLevel:   domain.RiskMedium,
				},
			},
			Risks: []domain.Risk{
				{
					Description: "توزيع الأرباح",
					Explanation: "آلية توزيع الأرباح غير محددة بوضوح وقد تؤدي إلى نزاعات مستقبلية",
					Reference:   "نظام الشركات، المادة 9",
					Severity:    domain.RiskMedium,
				},
			},
			Recommendations: []string{
				"إضافة بند يوضح آلية تسوية الخلافات بين الشركاء",
				"تحديد آلية توزيع الأرباح بشكل أكثر تفصيلاً ووضوحاً",
			},
		}
	},
}
