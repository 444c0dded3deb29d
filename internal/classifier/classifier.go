// Package classifier assigns every extracted transaction to exactly one of
// the four ledger categories. It is a pure function of the line's
// description, direction and amount plus a static supplier allow-list, so
// identical inputs always classify identically.
package classifier

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-ledger/internal/models"
)

// UnknownPayer labels third-party payments whose source name could not be
// recovered from the description.
const UnknownPayer = "Unknown"

// defaultFeeRate is the fixed service fee charged on supplier-routed
// expenses: 1% of the transaction amount.
var defaultFeeRate = decimal.New(1, -2)

// defaultSuppliers is the pre-approved supplier allow-list. Matching is
// case-insensitive substring on the description.
var defaultSuppliers = []string{
	"EASTERN WHOLESALE",
	"GOLDEN HARVEST SUPPLIES",
	"PRIME LOGISTICS",
	"UNITED TRADE HOUSE",
	"CAPITAL EQUIPMENT CO",
	"MERIDIAN IMPORTS",
}

// ownerPaymentKeywords mark credits the accountholder paid in themselves.
var ownerPaymentKeywords = []string{
	"DIRECT DEBIT",
	"AUTOPAY",
	"STANDING ORDER",
	"OWN ACCOUNT",
	"INTERNET BANKING",
	"MOBILE BANKING",
}

// payerNamePattern recovers the sender on inbound transfer descriptions,
// e.g. "FASTER PAYMENT FROM J SMITH" or "TRANSFER RECEIVED - A PATEL".
var payerNamePattern = regexp.MustCompile(
	`(?i)(?:FROM|RECEIVED\s*[-–]|BY)\s+([A-Z][A-Z .'-]{2,40})$`)

// Classifier resolves categories against a fixed supplier list and fee
// rate. The zero-argument constructor gives the production configuration.
type Classifier struct {
	suppliers []string
	feeRate   decimal.Decimal
}

// New returns a classifier with the default supplier allow-list and fee rate.
func New() *Classifier {
	return NewWithSuppliers(defaultSuppliers, defaultFeeRate)
}

// NewWithSuppliers returns a classifier over a custom allow-list; used by
// tests and by callers that load a tenant-specific list.
func NewWithSuppliers(suppliers []string, feeRate decimal.Decimal) *Classifier {
	return &Classifier{suppliers: suppliers, feeRate: feeRate}
}

// Classify resolves a single transaction to its category. It is total:
// every input yields exactly one category, and expense lines that match
// nothing default to OwnerExpense rather than being left unset.
func (c *Classifier) Classify(txn models.RawTransaction) models.ClassifiedTransaction {
	out := models.ClassifiedTransaction{
		RawTransaction: txn,
		ServiceFee:     decimal.Zero,
	}

	if txn.Direction == models.Credit {
		c.classifyPayment(&out)
	} else {
		c.classifyExpense(&out)
	}
	return out
}

// ClassifyAll classifies a statement's transactions in order.
func (c *Classifier) ClassifyAll(txns []models.RawTransaction) []models.ClassifiedTransaction {
	out := make([]models.ClassifiedTransaction, 0, len(txns))
	for _, t := range txns {
		out = append(out, c.Classify(t))
	}
	return out
}

func (c *Classifier) classifyPayment(out *models.ClassifiedTransaction) {
	upper := strings.ToUpper(out.Description)
	for _, kw := range ownerPaymentKeywords {
		if strings.Contains(upper, kw) {
			out.Category = models.OwnerPayment
			out.Confidence = models.ConfidenceHigh
			return
		}
	}

	out.Category = models.ThirdPartyPayment
	if m := payerNamePattern.FindStringSubmatch(strings.TrimSpace(out.Description)); m != nil {
		name := strings.TrimSpace(m[1])
		if !isCourtesyPhrase(name) {
			out.Payer = name
			out.Confidence = models.ConfidenceMedium
			return
		}
	}
	// Name extraction failure never fails classification.
	out.Payer = UnknownPayer
	out.Confidence = models.ConfidenceLow
}

// Statement courtesy phrases that sit where a payer name would, e.g.
// "PAYMENT RECEIVED - THANK YOU".
func isCourtesyPhrase(name string) bool {
	switch strings.ToUpper(name) {
	case "THANK YOU", "WITH THANKS", "THANKS":
		return true
	}
	return false
}

func (c *Classifier) classifyExpense(out *models.ClassifiedTransaction) {
	upper := strings.ToUpper(out.Description)
	for _, supplier := range c.suppliers {
		if strings.Contains(upper, strings.ToUpper(supplier)) {
			out.Category = models.ThirdPartyExpense
			out.Supplier = supplier
			out.ServiceFee = out.Amount.Mul(c.feeRate).Round(2)
			out.Confidence = models.ConfidenceHigh
			return
		}
	}

	out.Category = models.OwnerExpense
	out.Confidence = models.ConfidenceHigh
}
