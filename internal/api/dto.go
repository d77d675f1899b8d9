package api

import "github.com/shopspring/decimal"

// TaxRequest is the body of POST /api/taxes.
type TaxRequest struct {
	Income       decimal.Decimal `json:"income"`
	CapitalGains bool            `json:"capital_gains"`
}

// WithdrawalRequest is the body of POST /api/withdrawal.
type WithdrawalRequest struct {
	AfterTaxSpend decimal.Decimal `json:"after_tax_spend"`
}

// WithdrawalResponse reports the gross withdrawal that nets the requested spend.
type WithdrawalResponse struct {
	AfterTaxSpend   decimal.Decimal `json:"after_tax_spend"`
	GrossWithdrawal decimal.Decimal `json:"gross_withdrawal"`
	Tax             decimal.Decimal `json:"tax"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	TaxYear int    `json:"tax_year"`
}

// ErrorResponse is the error envelope used by every JSON endpoint.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries a stable code and a human-readable message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	codeInvalidRequest  = "invalid_request"
	codeInvalidInput    = "invalid_input"
	codeInversionFailed = "inversion_failed"
	codeInternal        = "internal_error"
)
