package models

import "github.com/shopspring/decimal"

// LedgerPeriodBalance is the two-round balance snapshot for one card in one
// statement period. The FinalThirdPartyOutstanding of period N is the
// PreviousBalance input of period N+1; that chaining is the core invariant
// of the whole engine.
type LedgerPeriodBalance struct {
	ID       string `json:"id,omitempty"` // assigned by the caller on persist
	PeriodID string `json:"periodId"`     // e.g. "2024-05"
	CardID   string `json:"cardId"`

	PreviousBalance decimal.Decimal `json:"previousBalance"`

	// Round 1
	OwnerExpenses               decimal.Decimal `json:"ownerExpenses"`
	ThirdPartyExpenses          decimal.Decimal `json:"thirdPartyExpenses"`
	ServiceFees                 decimal.Decimal `json:"serviceFees"`
	OwnerPayments               decimal.Decimal `json:"ownerPayments"`
	ThirdPartyPaymentsRound1    decimal.Decimal `json:"thirdPartyPaymentsRound1"`
	OwnerOutstandingRound1      decimal.Decimal `json:"ownerOutstandingRound1"`
	ThirdPartyOutstandingRound1 decimal.Decimal `json:"thirdPartyOutstandingRound1"`

	// Round 2
	ThirdPartyPaymentRound2    decimal.Decimal `json:"thirdPartyPaymentRound2"`
	FinalOwnerOutstanding      decimal.Decimal `json:"finalOwnerOutstanding"`
	FinalThirdPartyOutstanding decimal.Decimal `json:"finalThirdPartyOutstanding"`

	// Diagnostic check values (reported for audit, not a gate)
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	BalanceDiff decimal.Decimal `json:"balanceDiff"`
}
