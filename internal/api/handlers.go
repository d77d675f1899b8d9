package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rgehrsitz/rpfire/internal/calculation"
	"github.com/rgehrsitz/rpfire/internal/config"
	"github.com/rgehrsitz/rpfire/internal/domain"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

// Handler holds the dependencies shared by all endpoints.
// The engine is read-only after construction, so one Handler serves concurrent requests.
type Handler struct {
	engine *calculation.CalculationEngine
	parser *config.InputParser
	log    *logrus.Logger
}

// NewHandler creates a new handler.
func NewHandler(engine *calculation.CalculationEngine, parser *config.InputParser, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.New()
	}
	return &Handler{engine: engine, parser: parser, log: log}
}

// Health reports liveness.
// GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", TaxYear: h.engine.TaxYear()})
}

// GetTaxRules returns the active tax snapshot.
// GET /api/tax-rules
func (h *Handler) GetTaxRules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.TaxCalc.Rules)
}

// CalculateTaxes returns the tax breakdown for one income amount.
// POST /api/taxes
func (h *Handler) CalculateTaxes(w http.ResponseWriter, r *http.Request) {
	var req TaxRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "Invalid request body", err)
		return
	}
	if req.Income.IsNegative() {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "income cannot be negative", nil)
		return
	}

	mode := domain.TaxModeOrdinary
	if req.CapitalGains {
		mode = domain.TaxModeCapitalGains
	}
	writeJSON(w, http.StatusOK, h.engine.CalculateTaxes(req.Income, mode))
}

// GrossWithdrawal inverts an after-tax spend into the capital-gains withdrawal that funds it.
// POST /api/withdrawal
func (h *Handler) GrossWithdrawal(w http.ResponseWriter, r *http.Request) {
	var req WithdrawalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "Invalid request body", err)
		return
	}
	if req.AfterTaxSpend.IsNegative() {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "after_tax_spend cannot be negative", nil)
		return
	}

	gross, err := h.engine.GrossWithdrawal(req.AfterTaxSpend)
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}
	tax := h.engine.CalculateTaxes(gross, domain.TaxModeCapitalGains).Total
	writeJSON(w, http.StatusOK, WithdrawalResponse{
		AfterTaxSpend:   req.AfterTaxSpend,
		GrossWithdrawal: gross.Round(2),
		Tax:             tax.Round(2),
	})
}

// Simulate runs the retirement projection for a JSON input.
// POST /api/simulate
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	var input domain.SimulationInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "Invalid request body", err)
		return
	}
	if err := h.parser.Prepare(&input); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, err.Error(), nil)
		return
	}

	result, err := h.engine.RunSimulation(r.Context(), input)
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, calculation.ErrInversion) {
		writeError(w, http.StatusUnprocessableEntity, codeInversionFailed, err.Error(), nil)
		return
	}
	h.log.WithError(err).WithField("path", r.URL.Path).Error("calculation failed")
	writeError(w, http.StatusInternalServerError, codeInternal, "calculation failed", nil)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		message = message + ": " + err.Error()
	}
	writeJSON(w, status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}
