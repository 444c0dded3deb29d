package extractor

import (
	"regexp"

	"github.com/insightdelivered/statement-ledger/internal/models"
	"github.com/insightdelivered/statement-ledger/internal/patterns"
)

// Generic fallback for issuers with no registered pattern set: two adjacent
// date tokens, a 10-80 character description, a decimal amount and an
// optional trailing credit marker.
//
//	07 MAY 08 MAY ONLINE PURCHASE REF 558821  129.50
//	03/05  04/05  PAYMENT RECEIVED WITH THANKS  450.00 CR
var genericTxnPattern = regexp.MustCompile(
	`(?i)^(` + genericDateToken + `)\s+(` + genericDateToken + `)\s+` +
		`(.{10,80}?)\s+[$\x{00A3}]?(-?` + patterns.AmountToken + `)\s*(CR)?\s*$`)

// extractGeneric applies the loose line heuristics to every line.
func extractGeneric(lines []string) []models.RawTransaction {
	var txns []models.RawTransaction
	for _, raw := range lines {
		line := normalizeLine(raw)
		if line == "" || isSummaryLine(line) {
			continue
		}
		m := genericTxnPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		txns = append(txns, buildTransaction(m, "generic"))
	}
	return txns
}

// genericFieldSet recovers statement metadata with the label spellings most
// issuers share, for documents handled by the generic extractor.
var genericFieldSet = &patterns.PatternSet{
	Issuer: models.IssuerGeneric,

	StatementDate:   regexp.MustCompile(`(?i)Statement Date[:\s]+([\w ,/-]{6,30}?)(?:\n|$)`),
	DueDate:         regexp.MustCompile(`(?i)(?:Payment )?Due Date[:\s]+([\w ,/-]{6,30}?)(?:\n|$)`),
	PreviousBalance: regexp.MustCompile(`(?i)Previous Balance[:\s]+[$\x{00A3}]?\s*(-?[\d,]+\.\d{2})`),
	NewBalance:      regexp.MustCompile(`(?i)(?:New|Closing) Balance[:\s]+[$\x{00A3}]?\s*(-?[\d,]+\.\d{2})`),
	MinimumPayment:  regexp.MustCompile(`(?i)Minimum Payment(?:\s+Due)?[:\s]+[$\x{00A3}]?\s*([\d,]+\.\d{2})`),
	CardNumber:      regexp.MustCompile(`((?:\d{4}|\*{4}|X{4})[\s-](?:\*{4}|X{4})[\s-](?:\*{4}|X{4})[\s-]\d{4})`),
}
