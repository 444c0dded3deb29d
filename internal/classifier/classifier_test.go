package classifier

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-ledger/internal/models"
)

func raw(desc string, direction models.Direction, amount string) models.RawTransaction {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		panic(err)
	}
	return models.RawTransaction{
		TransactionDate: "07 MAY",
		PostingDate:     "08 MAY",
		Description:     desc,
		Amount:          d,
		Direction:       direction,
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		txn          models.RawTransaction
		wantCategory models.Category
		wantSupplier string
		wantPayer    string
		wantFee      string
	}{
		{
			name:         "owner payment by direct debit",
			txn:          raw("PAYMENT BY DIRECT DEBIT", models.Credit, "450.00"),
			wantCategory: models.OwnerPayment,
		},
		{
			name:         "owner payment via internet banking",
			txn:          raw("INTERNET BANKING TRANSFER", models.Credit, "120.00"),
			wantCategory: models.OwnerPayment,
		},
		{
			name:         "third-party payment with payer name",
			txn:          raw("FASTER PAYMENT FROM J SMITH", models.Credit, "300.00"),
			wantCategory: models.ThirdPartyPayment,
			wantPayer:    "J SMITH",
		},
		{
			name:         "payment received with no extractable name",
			txn:          raw("PAYMENT RECEIVED", models.Credit, "450.00"),
			wantCategory: models.ThirdPartyPayment,
			wantPayer:    UnknownPayer,
		},
		{
			name:         "courtesy phrase is not a payer name",
			txn:          raw("PAYMENT RECEIVED - THANK YOU", models.Credit, "450.00"),
			wantCategory: models.ThirdPartyPayment,
			wantPayer:    UnknownPayer,
		},
		{
			name:         "supplier expense with fee",
			txn:          raw("EASTERN WHOLESALE LONDON", models.Debit, "1000.00"),
			wantCategory: models.ThirdPartyExpense,
			wantSupplier: "EASTERN WHOLESALE",
			wantFee:      "10.00",
		},
		{
			name:         "supplier match is case-insensitive",
			txn:          raw("prime logistics invoice 8841", models.Debit, "250.00"),
			wantCategory: models.ThirdPartyExpense,
			wantSupplier: "PRIME LOGISTICS",
			wantFee:      "2.50",
		},
		{
			name:         "unmatched debit defaults to owner expense",
			txn:          raw("TESCO STORES 2104 LONDON", models.Debit, "45.99"),
			wantCategory: models.OwnerExpense,
		},
		{
			name:         "zero amount still classifies",
			txn:          raw("UNPARSEABLE LINE", models.Debit, "0"),
			wantCategory: models.OwnerExpense,
		},
	}

	c := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.txn)

			if got.Category != tt.wantCategory {
				t.Errorf("category: got %s, want %s", got.Category, tt.wantCategory)
			}
			if got.Supplier != tt.wantSupplier {
				t.Errorf("supplier: got %q, want %q", got.Supplier, tt.wantSupplier)
			}
			if got.Payer != tt.wantPayer {
				t.Errorf("payer: got %q, want %q", got.Payer, tt.wantPayer)
			}
			wantFee := tt.wantFee
			if wantFee == "" {
				wantFee = "0"
			}
			if !got.ServiceFee.Equal(decimal.RequireFromString(wantFee)) {
				t.Errorf("fee: got %s, want %s", got.ServiceFee.StringFixed(2), wantFee)
			}
			if got.Confidence == "" {
				t.Error("confidence not set")
			}
		})
	}
}

// Classification must be total: every input resolves to exactly one of the
// four categories.
func TestClassifyTotality(t *testing.T) {
	valid := map[models.Category]bool{
		models.OwnerExpense:      true,
		models.ThirdPartyExpense: true,
		models.OwnerPayment:      true,
		models.ThirdPartyPayment: true,
	}

	descriptions := []string{
		"", "X", "???", "12345", "PAYMENT", "CR", "TOTAL",
		"EASTERN WHOLESALE", "DIRECT DEBIT", "FROM",
		"some lower case description with numbers 42",
	}

	c := New()
	for _, desc := range descriptions {
		for _, dir := range []models.Direction{models.Debit, models.Credit} {
			got := c.Classify(raw(desc, dir, "10.00"))
			if !valid[got.Category] {
				t.Errorf("Classify(%q, %s): invalid category %q", desc, dir, got.Category)
			}
		}
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := New()
	txn := raw("FASTER PAYMENT FROM A PATEL", models.Credit, "77.70")

	first := c.Classify(txn)
	second := c.Classify(txn)

	if first.Category != second.Category || first.Payer != second.Payer ||
		!first.ServiceFee.Equal(second.ServiceFee) || first.Confidence != second.Confidence {
		t.Errorf("identical inputs classified differently: %+v vs %+v", first, second)
	}
}

func TestClassifyCustomSuppliers(t *testing.T) {
	c := NewWithSuppliers([]string{"ACME CORP"}, decimal.RequireFromString("0.02"))

	got := c.Classify(raw("ACME CORP INVOICE 1", models.Debit, "500.00"))
	if got.Category != models.ThirdPartyExpense {
		t.Fatalf("category: got %s, want %s", got.Category, models.ThirdPartyExpense)
	}
	if !got.ServiceFee.Equal(decimal.RequireFromString("10.00")) {
		t.Errorf("fee at 2%%: got %s, want 10.00", got.ServiceFee.StringFixed(2))
	}

	// Default list suppliers are not matched by the custom classifier.
	got = c.Classify(raw("EASTERN WHOLESALE", models.Debit, "100.00"))
	if got.Category != models.OwnerExpense {
		t.Errorf("category: got %s, want %s", got.Category, models.OwnerExpense)
	}
}
