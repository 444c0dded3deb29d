package models

import "github.com/shopspring/decimal"

// Verdict is the outcome of dual validation.
type Verdict string

const (
	VerdictPassed  Verdict = "PASSED"
	VerdictWarning Verdict = "WARNING"
	VerdictFailed  Verdict = "FAILED"
)

// DeclaredTotals are the summary figures the document itself prints,
// recovered independently of line-item extraction. A nil field means the
// document did not declare that figure.
type DeclaredTotals struct {
	TotalDebits     *decimal.Decimal `json:"totalDebits,omitempty"`
	TotalCredits    *decimal.Decimal `json:"totalCredits,omitempty"`
	PreviousBalance *decimal.Decimal `json:"previousBalance,omitempty"`
	NewBalance      *decimal.Decimal `json:"newBalance,omitempty"`
}

// TotalPair is one extracted-vs-declared comparison.
type TotalPair struct {
	Label     string          `json:"label"`
	Extracted decimal.Decimal `json:"extracted"`
	Declared  decimal.Decimal `json:"declared"`
	Diff      decimal.Decimal `json:"diff"`
}

// ValidationResult is the dual validator's verdict for one statement.
// Failed statements must not be auto-posted downstream; they are still
// stored for audit and routed to manual review.
type ValidationResult struct {
	Confidence int         `json:"confidence"` // 0-100
	Verdict    Verdict     `json:"verdict"`
	Errors     []string    `json:"errors,omitempty"`
	Warnings   []string    `json:"warnings,omitempty"`
	Totals     []TotalPair `json:"totals,omitempty"`
}
