package validator

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-ledger/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func txn(date, desc, amount string, direction models.Direction) models.RawTransaction {
	return models.RawTransaction{
		TransactionDate: date,
		PostingDate:     date,
		Description:     desc,
		Amount:          dec(amount),
		Direction:       direction,
	}
}

func declared(debits, credits string) models.DeclaredTotals {
	var dt models.DeclaredTotals
	if debits != "" {
		d := dec(debits)
		dt.TotalDebits = &d
	}
	if credits != "" {
		c := dec(credits)
		dt.TotalCredits = &c
	}
	return dt
}

func TestExtractDeclaredTotals(t *testing.T) {
	text := `HSBC Credit Card Statement
Previous Balance: 500.00
Total New Spend: £1,045.99
Total Payments: £450.00
New Balance: £1,095.99`

	dt := ExtractDeclaredTotals(text)

	if dt.TotalDebits == nil || !dt.TotalDebits.Equal(dec("1045.99")) {
		t.Errorf("total debits: got %v, want 1045.99", dt.TotalDebits)
	}
	if dt.TotalCredits == nil || !dt.TotalCredits.Equal(dec("450.00")) {
		t.Errorf("total credits: got %v, want 450.00", dt.TotalCredits)
	}
	if dt.PreviousBalance == nil || !dt.PreviousBalance.Equal(dec("500.00")) {
		t.Errorf("previous balance: got %v, want 500.00", dt.PreviousBalance)
	}
	if dt.NewBalance == nil || !dt.NewBalance.Equal(dec("1095.99")) {
		t.Errorf("new balance: got %v, want 1095.99", dt.NewBalance)
	}
}

func TestExtractDeclaredTotalsAbsent(t *testing.T) {
	dt := ExtractDeclaredTotals("a statement with no summary block at all")
	if dt.TotalDebits != nil || dt.TotalCredits != nil || dt.PreviousBalance != nil || dt.NewBalance != nil {
		t.Errorf("expected all nil, got %+v", dt)
	}
}

func TestValidatePassed(t *testing.T) {
	txns := []models.RawTransaction{
		txn("07 MAY", "TESCO STORES", "45.99", models.Debit),
		txn("08 MAY", "EASTERN WHOLESALE", "1000.00", models.Debit),
		txn("09 MAY", "PAYMENT RECEIVED", "450.00", models.Credit),
	}

	res := Validate(&models.StatementInfo{}, txns, declared("1045.99", "450.00"))

	if res.Verdict != models.VerdictPassed {
		t.Fatalf("verdict: got %s, want %s (errors: %v, warnings: %v)", res.Verdict, models.VerdictPassed, res.Errors, res.Warnings)
	}
	if res.Confidence != 100 {
		t.Errorf("confidence: got %d, want 100", res.Confidence)
	}
	if len(res.Totals) != 2 {
		t.Errorf("expected 2 total pairs, got %d", len(res.Totals))
	}
}

func TestValidateWithinTolerance(t *testing.T) {
	txns := []models.RawTransaction{
		txn("07 MAY", "TESCO STORES", "45.99", models.Debit),
	}

	// One cent off is inside the tolerance.
	res := Validate(&models.StatementInfo{}, txns, declared("46.00", ""))

	for _, e := range res.Errors {
		if strings.Contains(e, "mismatch") {
			t.Errorf("unexpected mismatch error: %s", e)
		}
	}
}

func TestValidateTotalMismatch(t *testing.T) {
	txns := []models.RawTransaction{
		txn("07 MAY", "TESCO STORES", "45.99", models.Debit),
	}

	res := Validate(&models.StatementInfo{}, txns, declared("99.99", ""))

	if res.Verdict != models.VerdictFailed {
		t.Errorf("verdict: got %s, want %s", res.Verdict, models.VerdictFailed)
	}
	found := false
	for _, e := range res.Errors {
		if strings.Contains(e, "total debits mismatch") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a total debits mismatch error, got %v", res.Errors)
	}
}

func TestValidateMissingDeclaredTotalsWarn(t *testing.T) {
	txns := []models.RawTransaction{
		txn("07 MAY", "TESCO STORES", "45.99", models.Debit),
	}

	res := Validate(&models.StatementInfo{}, txns, models.DeclaredTotals{})

	if len(res.Errors) != 0 {
		t.Fatalf("missing declared totals must not error, got %v", res.Errors)
	}
	if len(res.Warnings) != 2 {
		t.Errorf("expected 2 warnings (debits, credits), got %v", res.Warnings)
	}
	// 100 - 2*5
	if res.Confidence != 90 {
		t.Errorf("confidence: got %d, want 90", res.Confidence)
	}
	if res.Verdict != models.VerdictWarning {
		t.Errorf("verdict: got %s, want %s", res.Verdict, models.VerdictWarning)
	}
}

func TestValidateDuplicateTransaction(t *testing.T) {
	txns := []models.RawTransaction{
		txn("07 MAY", "TESCO STORES", "45.99", models.Debit),
		txn("07 MAY", "TESCO STORES", "45.99", models.Debit),
	}

	res := Validate(&models.StatementInfo{}, txns, declared("91.98", ""))

	dupErrors := 0
	for _, e := range res.Errors {
		if strings.Contains(e, "duplicate transaction") {
			dupErrors++
		}
	}
	if dupErrors != 1 {
		t.Errorf("expected exactly one duplicate error, got %d (%v)", dupErrors, res.Errors)
	}
	if res.Verdict == models.VerdictPassed {
		t.Error("duplicates must not pass validation")
	}
}

func TestValidateDistinctLinesAreNotDuplicates(t *testing.T) {
	txns := []models.RawTransaction{
		txn("07 MAY", "TESCO STORES", "45.99", models.Debit),
		txn("08 MAY", "TESCO STORES", "45.99", models.Debit),
		txn("07 MAY", "TESCO STORES", "46.99", models.Debit),
	}

	res := Validate(&models.StatementInfo{}, txns, models.DeclaredTotals{})

	for _, e := range res.Errors {
		if strings.Contains(e, "duplicate") {
			t.Errorf("unexpected duplicate error: %s", e)
		}
	}
}

func TestValidateLowConfidenceLineWarns(t *testing.T) {
	low := txn("07 MAY", "GARBLED ####", "0", models.Debit)
	low.LowConfidence = true

	res := Validate(&models.StatementInfo{}, []models.RawTransaction{low}, models.DeclaredTotals{})

	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "unparseable") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an unparseable-amount warning, got %v", res.Warnings)
	}
}

func TestValidateEmptyInputFails(t *testing.T) {
	res := Validate(&models.StatementInfo{}, nil, models.DeclaredTotals{})
	if res.Verdict != models.VerdictFailed {
		t.Errorf("verdict: got %s, want %s", res.Verdict, models.VerdictFailed)
	}
	if res.Confidence != 0 {
		t.Errorf("confidence: got %d, want 0", res.Confidence)
	}
}

func TestValidateBalanceMismatch(t *testing.T) {
	prev := dec("500.00")
	info := &models.StatementInfo{PreviousBalance: dec("400.00")}
	txns := []models.RawTransaction{txn("07 MAY", "TESCO STORES", "45.99", models.Debit)}

	res := Validate(info, txns, models.DeclaredTotals{PreviousBalance: &prev})

	found := false
	for _, e := range res.Errors {
		if strings.Contains(e, "previous balance mismatch") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected previous balance mismatch, got %v", res.Errors)
	}
	if res.Verdict != models.VerdictFailed {
		t.Errorf("verdict: got %s, want %s", res.Verdict, models.VerdictFailed)
	}
}

func TestValidateIdempotent(t *testing.T) {
	txns := []models.RawTransaction{
		txn("07 MAY", "TESCO STORES", "45.99", models.Debit),
		txn("09 MAY", "PAYMENT RECEIVED", "450.00", models.Credit),
	}
	dt := declared("45.99", "450.00")

	a := Validate(&models.StatementInfo{}, txns, dt)
	b := Validate(&models.StatementInfo{}, txns, dt)

	if a.Verdict != b.Verdict || a.Confidence != b.Confidence || len(a.Errors) != len(b.Errors) {
		t.Errorf("identical inputs validated differently: %+v vs %+v", a, b)
	}
}
