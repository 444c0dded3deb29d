// Package extractor turns raw statement text into a StatementInfo and the
// list of RawTransactions printed on the document. It applies the issuer's
// pattern set when one is known and falls back to a generic line-oriented
// extractor otherwise.
package extractor

import (
	"errors"
	"strings"

	"github.com/insightdelivered/statement-ledger/internal/models"
	"github.com/insightdelivered/statement-ledger/internal/patterns"
)

var (
	// ErrUnrecognizedIssuer means no pattern set matched the document and
	// the generic fallback also recovered nothing. The statement should be
	// routed to manual entry.
	ErrUnrecognizedIssuer = errors.New("unrecognized issuer: no pattern set matched and generic extraction found no transactions")

	// ErrNoTransactionsExtracted means the issuer was identified but no
	// transaction lines could be recovered. Downstream stages must not run.
	ErrNoTransactionsExtracted = errors.New("no transactions extracted from statement")
)

// strategy is one ordered extraction attempt. It returns the transactions it
// recovered; an empty slice means no match and the next strategy runs.
type strategy struct {
	name  string
	apply func(lines []string) []models.RawTransaction
}

// Extract applies the pattern library to raw document text. The issuer hint
// selects a pattern set directly; an empty or unknown hint falls back to
// content-based detection, and the generic extractor is always the last
// strategy tried.
func Extract(text string, hint models.IssuerID) (*models.StatementInfo, []models.RawTransaction, error) {
	lines := strings.Split(text, "\n")

	ps, known := resolvePatternSet(text, hint)

	var strategies []strategy
	if known {
		strategies = append(strategies, strategy{
			name:  string(ps.Issuer),
			apply: func(lines []string) []models.RawTransaction { return extractWithPatternSet(ps, lines) },
		})
	}
	strategies = append(strategies, strategy{name: "generic", apply: extractGeneric})

	var txns []models.RawTransaction
	var matched string
	for _, s := range strategies {
		if txns = s.apply(lines); len(txns) > 0 {
			matched = s.name
			break
		}
	}

	if len(txns) == 0 {
		if !known {
			return nil, nil, ErrUnrecognizedIssuer
		}
		return nil, nil, ErrNoTransactionsExtracted
	}

	info := buildStatementInfo(ps, known, matched, text)
	return info, txns, nil
}

// resolvePatternSet picks the pattern set for the document: hint first, then
// content-based detection.
func resolvePatternSet(text string, hint models.IssuerID) (*patterns.PatternSet, bool) {
	if hint != "" && hint != models.IssuerGeneric {
		if ps, ok := patterns.Lookup(hint); ok {
			return ps, true
		}
	}
	if issuer, ok := patterns.Detect(text); ok {
		if ps, ok := patterns.Lookup(issuer); ok {
			return ps, true
		}
	}
	return nil, false
}

// extractWithPatternSet recovers transaction lines using one issuer's
// transaction-line pattern. Lines that follow a transaction without starting
// a new one are treated as description continuations, matching how PDF
// extraction splits long merchant names.
func extractWithPatternSet(ps *patterns.PatternSet, lines []string) []models.RawTransaction {
	var txns []models.RawTransaction

	for _, raw := range lines {
		line := normalizeLine(raw)
		if line == "" || isSummaryLine(line) {
			continue
		}

		m := ps.TxnLine.FindStringSubmatch(line)
		if m == nil {
			if len(txns) > 0 && !startsWithDate(line) && looksLikeContinuation(line) {
				last := &txns[len(txns)-1]
				last.Description += " " + line
			}
			continue
		}

		txns = append(txns, buildTransaction(m, string(ps.Issuer)))
	}

	return txns
}

// buildTransaction converts a TxnLine submatch into a RawTransaction.
// Group order is fixed across all pattern sets: transaction date, posting
// date, description, amount, optional credit marker.
//
// Direction comes only from the explicit marker token; a missing marker
// means debit. Sign heuristics on the description are deliberately avoided.
func buildTransaction(m []string, method string) models.RawTransaction {
	amount, ok := parseAmount(m[4])

	txn := models.RawTransaction{
		TransactionDate: strings.TrimSpace(m[1]),
		PostingDate:     strings.TrimSpace(m[2]),
		Description:     strings.TrimSpace(m[3]),
		Amount:          amount,
		Direction:       models.Debit,
		LowConfidence:   !ok,
		ParseMethod:     method,
	}
	if strings.TrimSpace(m[5]) != "" {
		txn.Direction = models.Credit
	}
	return txn
}

// looksLikeContinuation filters out page furniture that would otherwise be
// glued onto a description.
func looksLikeContinuation(line string) bool {
	if len(line) > 60 {
		return false
	}
	lower := strings.ToLower(line)
	for _, skip := range []string{"page ", "continued", "statement", "www.", "telephone"} {
		if strings.Contains(lower, skip) {
			return false
		}
	}
	return true
}

// buildStatementInfo recovers the labeled metadata fields. When only the
// generic extractor matched, a loose set of common labels is used instead of
// issuer patterns.
func buildStatementInfo(ps *patterns.PatternSet, known bool, matched, text string) *models.StatementInfo {
	info := &models.StatementInfo{Issuer: models.IssuerGeneric}

	set := genericFieldSet
	if known {
		// The issuer identity holds even when the generic strategy did the
		// line recovery; the field patterns follow the matched strategy.
		info.Issuer = ps.Issuer
		if matched != "generic" {
			set = ps
		}
	}

	info.StatementDate = patterns.Field(set.StatementDate, text)
	info.DueDate = patterns.Field(set.DueDate, text)
	info.CardNumber = patterns.Field(set.CardNumber, text)
	info.StatementPeriod = periodFromDate(info.StatementDate)

	if v := patterns.Field(set.PreviousBalance, text); v != "" {
		info.PreviousBalance, _ = parseAmount(v)
	}
	if v := patterns.Field(set.NewBalance, text); v != "" {
		info.NewBalance, _ = parseAmount(v)
	}
	if v := patterns.Field(set.MinimumPayment, text); v != "" {
		info.MinimumPayment, _ = parseAmount(v)
	}

	return info
}
