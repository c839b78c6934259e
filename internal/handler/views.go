package handler

import (
	"strings"
	"time"

	"github.com/DukeRupert/aqdi/internal/content"
	"github.com/DukeRupert/aqdi/internal/domain"
	"github.com/DukeRupert/aqdi/internal/i18n"
	"github.com/DukeRupert/aqdi/internal/locale"
	"github.com/DukeRupert/aqdi/internal/report"
	"github.com/DukeRupert/aqdi/internal/submission"
)

// =============================================================================
// Template Data Types
// =============================================================================

// PageData contains data for the home page.
type PageData struct {
	Locale      locale.Locale    // Active display language
	CSRFToken   string           // CSRF token for hx-headers
	CurrentPath string           // Current URL path
	Content     *content.Content // Marketing copy
	Upload      UploadView       // Upload widget
	Feedback    FeedbackView     // Feedback form
}

// UploadView contains data for the upload widget partial.
type UploadView struct {
	Locale        locale.Locale
	CSRFToken     string
	State         submission.State
	Report        report.View          // Populated once State.Result is set
	ContractTypes []ContractTypeOption // Select options in display order
	Notice        string               // Inline message not held in state
	PollEvery     string               // htmx polling interval, e.g. "500ms"
	Accept        string               // File picker filter
	MaxBytes      int64                // Upload size limit
}

// ContractTypeOption is one entry of the contract type select.
type ContractTypeOption struct {
	Value    string
	Label    string
	Selected bool
}

// FeedbackView contains data for the feedback form partial.
type FeedbackView struct {
	Locale    locale.Locale
	CSRFToken string
	Form      map[string]string // Submitted values, echoed back on error
	Errors    map[string]string // Field-level validation messages
	Sent      bool              // Thank-you state
	Contact   content.Contact
}

// HasError reports whether field failed validation.
func (f FeedbackView) HasError(field string) bool {
	_, ok := f.Errors[field]
	return ok
}

// ShowForm reports whether the widget shows the upload form rather than
// progress or results.
func (u UploadView) ShowForm() bool {
	return !u.State.IsAnalyzing && u.State.Result == nil
}

// =============================================================================
// View Builders
// =============================================================================

func newUploadView(l locale.Locale, token string, st submission.State, cat *i18n.Catalog, notice string, poll time.Duration, maxBytes int64) UploadView {
	v := UploadView{
		Locale:    l,
		CSRFToken: token,
		State:     st,
		Notice:    notice,
		PollEvery: poll.String(),
		Accept:    strings.Join(domain.AcceptedExtensions, ","),
		MaxBytes:  maxBytes,
	}
	if st.Result != nil {
		v.Report = report.Build(st.Result, l, cat)
	}
	for _, t := range domain.ContractTypes {
		v.ContractTypes = append(v.ContractTypes, ContractTypeOption{
			Value:    t.String(),
			Label:    report.ContractTypeLabel(t, l, cat),
			Selected: t == st.ContractType,
		})
	}
	return v
}
