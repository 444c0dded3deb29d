package models

import "github.com/shopspring/decimal"

// Category is the classification assigned to every transaction. Exactly one
// of the four values applies to any line; unclassifiable debits default to
// OwnerExpense rather than being left unset.
type Category string

const (
	OwnerExpense      Category = "OWNER_EXPENSE"
	ThirdPartyExpense Category = "THIRD_PARTY_EXPENSE"
	OwnerPayment      Category = "OWNER_PAYMENT"
	ThirdPartyPayment Category = "THIRD_PARTY_PAYMENT"
)

// IsExpense reports whether the category sits on the debit side of the ledger.
func (c Category) IsExpense() bool {
	return c == OwnerExpense || c == ThirdPartyExpense
}

// Confidence grades how certain the classifier is about a category.
// Advisory only: it flags rows for human review, never blocks processing.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ClassifiedTransaction is a RawTransaction with its category resolved.
type ClassifiedTransaction struct {
	RawTransaction
	Category   Category        `json:"category"`
	Supplier   string          `json:"supplier,omitempty"` // matched allow-list supplier
	Payer      string          `json:"payer,omitempty"`    // who sent a third-party payment
	ServiceFee decimal.Decimal `json:"serviceFee"`
	Confidence Confidence      `json:"confidence"`
}
