package handler

import (
	"log/slog"
	"net/http"

	"github.com/DukeRupert/aqdi/internal/domain"
	"github.com/DukeRupert/aqdi/internal/i18n"
	"github.com/DukeRupert/aqdi/internal/locale"
)

// APIHandler serves the read-only JSON reference data.
type APIHandler struct {
	catalog *i18n.Catalog
	logger  *slog.Logger
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(catalog *i18n.Catalog, logger *slog.Logger) *APIHandler {
	return &APIHandler{catalog: catalog, logger: logger}
}

// RegisterRoutes registers the API routes.
//
// Routes:
// - GET /api/contract-types     -> ContractTypes
// - GET /api/compliance-levels  -> ComplianceLevels
// - GET /health                 -> Health
func (h *APIHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/contract-types", h.ContractTypes)
	mux.HandleFunc("GET /api/compliance-levels", h.ComplianceLevels)
	mux.HandleFunc("GET /health", h.Health)
}

// LabeledValue is an enumerated value with its labels in both languages.
type LabeledValue struct {
	ID string `json:"id"`
	AR string `json:"ar"`
	EN string `json:"en"`
}

// ComplianceLevel is a score band with its labels.
type ComplianceLevel struct {
	LabeledValue
	MinScore int `json:"min_score"`
	MaxScore int `json:"max_score"`
}

// ContractTypes lists the supported contract types.
func (h *APIHandler) ContractTypes(w http.ResponseWriter, r *http.Request) {
	types := make([]LabeledValue, 0, len(domain.ContractTypes))
	for _, t := range domain.ContractTypes {
		types = append(types, h.labeled(t.String(), "contractType."+t.String()))
	}
	writeJSON(w, map[string]any{"contract_types": types})
}

// ComplianceLevels lists the score bands, best first.
func (h *APIHandler) ComplianceLevels(w http.ResponseWriter, r *http.Request) {
	levels := make([]ComplianceLevel, 0, len(domain.ComplianceBands))
	for _, b := range domain.ComplianceBands {
		levels = append(levels, ComplianceLevel{
			LabeledValue: h.labeled(b.ID, "level."+b.ID),
			MinScore:     b.MinScore,
			MaxScore:     b.MaxScore,
		})
	}
	writeJSON(w, map[string]any{"compliance_levels": levels})
}

// Health reports liveness.
func (h *APIHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OK"))
}

func (h *APIHandler) labeled(id, key string) LabeledValue {
	return LabeledValue{
		ID: id,
		AR: h.catalog.T(locale.Arabic, key),
		EN: h.catalog.T(locale.English, key),
	}
}
