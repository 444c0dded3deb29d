// Package validator cross-checks the totals recovered from line-item
// extraction against the totals the document itself declares. The two paths
// are independent, so agreement is evidence the extraction is right.
package validator

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-ledger/internal/models"
)

// Tolerance for comparing money values. Never compare decimals for exact
// equality across extraction paths.
var tolerance = decimal.NewFromFloat(0.01)

// Scoring: confidence starts at 100; each error costs 20 points, each
// warning 5, floor 0. Any error forces a Failed verdict regardless of score.
const (
	errorPenalty   = 20
	warningPenalty = 5

	passedThreshold  = 95
	warningThreshold = 80
)

// Declared-total labels as printed by the issuers we handle.
var (
	declaredDebitPattern = regexp.MustCompile(
		`(?i)Total (?:Debits|New Spend|Purchases|Charges)[:\s]+[$\x{00A3}]?\s*([\d,]+\.\d{2})`)
	declaredCreditPattern = regexp.MustCompile(
		`(?i)Total (?:Credits|Payments(?: and Credits)?)[:\s]+[$\x{00A3}]?\s*([\d,]+\.\d{2})`)
	declaredPrevBalancePattern = regexp.MustCompile(
		`(?i)Previous Balance[:\s]+[$\x{00A3}]?\s*(-?[\d,]+\.\d{2})`)
	declaredNewBalancePattern = regexp.MustCompile(
		`(?i)(?:New|Closing) Balance[:\s]+[$\x{00A3}]?\s*(-?[\d,]+\.\d{2})`)
)

// ExtractDeclaredTotals recovers the document's self-declared summary
// figures. It runs on the raw text, independent of the extractor's pattern
// sets. Absent figures stay nil; the document may simply omit a summary.
func ExtractDeclaredTotals(text string) models.DeclaredTotals {
	var dt models.DeclaredTotals
	dt.TotalDebits = findAmount(declaredDebitPattern, text)
	dt.TotalCredits = findAmount(declaredCreditPattern, text)
	dt.PreviousBalance = findAmount(declaredPrevBalancePattern, text)
	dt.NewBalance = findAmount(declaredNewBalancePattern, text)
	return dt
}

func findAmount(pat *regexp.Regexp, text string) *decimal.Decimal {
	m := pat.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	d, err := decimal.NewFromString(stripAmount(m[1]))
	if err != nil {
		return nil
	}
	return &d
}

func stripAmount(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= '0' && c <= '9') || c == '.' || c == '-' {
			out = append(out, c)
		}
	}
	return string(out)
}

// Validate compares extracted transactions against the declared totals and
// produces the quality-gate verdict. Failed statements must not proceed to
// automatic posting; they are stored for audit and manual review.
func Validate(info *models.StatementInfo, txns []models.RawTransaction, declared models.DeclaredTotals) models.ValidationResult {
	res := models.ValidationResult{Confidence: 100}

	if len(txns) == 0 {
		res.Errors = append(res.Errors, "no transactions to validate")
		res.Confidence = 0
		res.Verdict = models.VerdictFailed
		return res
	}

	extractedDebit := decimal.Zero
	extractedCredit := decimal.Zero
	for _, t := range txns {
		if t.Direction == models.Credit {
			extractedCredit = extractedCredit.Add(t.Amount)
		} else {
			extractedDebit = extractedDebit.Add(t.Amount)
		}
		if t.LowConfidence {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("amount unparseable on line %q; resolved to zero", t.Description))
		}
	}

	checkTotal(&res, "total debits", extractedDebit, declared.TotalDebits)
	checkTotal(&res, "total credits", extractedCredit, declared.TotalCredits)

	if declared.PreviousBalance != nil && !info.PreviousBalance.Sub(*declared.PreviousBalance).Abs().LessThanOrEqual(tolerance) {
		res.Errors = append(res.Errors, fmt.Sprintf(
			"previous balance mismatch: extracted %s, declared %s",
			info.PreviousBalance.StringFixed(2), declared.PreviousBalance.StringFixed(2)))
		res.Totals = append(res.Totals, pair("previous balance", info.PreviousBalance, *declared.PreviousBalance))
	}
	if declared.NewBalance != nil && !info.NewBalance.Sub(*declared.NewBalance).Abs().LessThanOrEqual(tolerance) {
		res.Errors = append(res.Errors, fmt.Sprintf(
			"new balance mismatch: extracted %s, declared %s",
			info.NewBalance.StringFixed(2), declared.NewBalance.StringFixed(2)))
		res.Totals = append(res.Totals, pair("new balance", info.NewBalance, *declared.NewBalance))
	}

	for _, dup := range findDuplicates(txns) {
		res.Errors = append(res.Errors, "duplicate transaction: "+dup)
	}

	res.Confidence = score(len(res.Errors), len(res.Warnings))
	res.Verdict = verdict(res.Confidence, len(res.Errors))
	return res
}

// checkTotal compares one extracted sum against its declared counterpart.
// A missing declared figure degrades confidence instead of failing: the
// document may not print that summary line.
func checkTotal(res *models.ValidationResult, label string, extracted decimal.Decimal, declared *decimal.Decimal) {
	if declared == nil {
		res.Warnings = append(res.Warnings, "document does not declare "+label)
		return
	}
	res.Totals = append(res.Totals, pair(label, extracted, *declared))
	if !extracted.Sub(*declared).Abs().LessThanOrEqual(tolerance) {
		res.Errors = append(res.Errors, fmt.Sprintf(
			"%s mismatch: extracted %s, declared %s",
			label, extracted.StringFixed(2), declared.StringFixed(2)))
	}
}

func pair(label string, extracted, declared decimal.Decimal) models.TotalPair {
	return models.TotalPair{
		Label:     label,
		Extracted: extracted,
		Declared:  declared,
		Diff:      extracted.Sub(declared),
	}
}

// findDuplicates reports identical (date, description, amount) triples.
// Each duplicated triple is reported once, however many extra copies exist.
func findDuplicates(txns []models.RawTransaction) []string {
	seen := make(map[string]int, len(txns))
	var dups []string
	for _, t := range txns {
		key := t.TransactionDate + "|" + t.Description + "|" + t.Amount.StringFixed(2)
		seen[key]++
		if seen[key] == 2 {
			dups = append(dups, fmt.Sprintf("%s %s %s", t.TransactionDate, t.Description, t.Amount.StringFixed(2)))
		}
	}
	return dups
}

func score(errs, warns int) int {
	s := 100 - errs*errorPenalty - warns*warningPenalty
	if s < 0 {
		return 0
	}
	return s
}

func verdict(confidence, errs int) models.Verdict {
	switch {
	case errs == 0 && confidence >= passedThreshold:
		return models.VerdictPassed
	case errs == 0 && confidence >= warningThreshold:
		return models.VerdictWarning
	default:
		return models.VerdictFailed
	}
}
