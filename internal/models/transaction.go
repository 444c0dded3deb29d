package models

import "github.com/shopspring/decimal"

// Direction tells whether a statement line moves money onto or off the card.
type Direction string

const (
	Debit  Direction = "DEBIT"
	Credit Direction = "CREDIT"
)

// IssuerID identifies the bank that produced a statement document.
type IssuerID string

const (
	IssuerHSBC        IssuerID = "hsbc"
	IssuerBarclaycard IssuerID = "barclaycard"
	IssuerAmex        IssuerID = "amex"
	IssuerGeneric     IssuerID = "generic"
)

// RawTransaction is a single line recovered from a statement document,
// before classification.
type RawTransaction struct {
	TransactionDate string          `json:"transactionDate"`
	PostingDate     string          `json:"postingDate"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	Direction       Direction       `json:"direction"`
	// LowConfidence marks lines whose amount had non-numeric residue and
	// resolved to zero instead of being dropped.
	LowConfidence bool   `json:"lowConfidence,omitempty"`
	ParseMethod   string `json:"parseMethod,omitempty"` // debug: which strategy matched
}

// StatementInfo holds metadata extracted once per document.
// Immutable after extraction.
type StatementInfo struct {
	Issuer          IssuerID        `json:"issuer"`
	StatementPeriod string          `json:"statementPeriod"` // e.g. "2024-05"
	StatementDate   string          `json:"statementDate"`
	DueDate         string          `json:"dueDate"`
	PreviousBalance decimal.Decimal `json:"previousBalance"`
	NewBalance      decimal.Decimal `json:"newBalance"`
	MinimumPayment  decimal.Decimal `json:"minimumPayment"`
	CardNumber      string          `json:"cardNumber"` // masked, e.g. "4123 **** **** 9876"
}
