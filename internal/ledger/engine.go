// Package ledger runs the two-round balance computation that carries a
// rolling balance forward month to month for one card. The engine is purely
// functional: the only cross-period coupling is the explicit previous
// balance input, so the caller fetches and saves LedgerPeriodBalance
// records and serializes periods per card in chronological order.
package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-ledger/internal/models"
)

// ErrMissingOpeningBalance means a non-initial period was computed without
// the prior period's snapshot. Assuming zero here would corrupt the rolling
// chain invisibly, so the engine fails fast instead.
var ErrMissingOpeningBalance = errors.New("missing opening balance: prior period snapshot required for non-initial period")

var tolerance = decimal.NewFromFloat(0.01)

// Inputs are everything one period's computation needs.
type Inputs struct {
	PeriodID string
	CardID   string

	// Initial marks the first period of a card's chain; OpeningBalance is
	// then the explicit opening value. Every later period must supply
	// Previous instead.
	Initial        bool
	OpeningBalance decimal.Decimal
	Previous       *models.LedgerPeriodBalance

	Transactions []models.ClassifiedTransaction

	// SettlementRound2 is the optional out-of-band transfer reconciled
	// after the statement closed; it reduces the third-party side only.
	SettlementRound2 decimal.Decimal
}

// Compute runs both rounds for one period and emits the closing snapshot.
// The result's FinalThirdPartyOutstanding becomes the next period's
// previous balance.
func Compute(in Inputs) (*models.LedgerPeriodBalance, error) {
	previous, err := openingBalance(in)
	if err != nil {
		return nil, err
	}

	b := &models.LedgerPeriodBalance{
		PeriodID:        in.PeriodID,
		CardID:          in.CardID,
		PreviousBalance: previous,

		OwnerExpenses:            decimal.Zero,
		ThirdPartyExpenses:       decimal.Zero,
		ServiceFees:              decimal.Zero,
		OwnerPayments:            decimal.Zero,
		ThirdPartyPaymentsRound1: decimal.Zero,
		ThirdPartyPaymentRound2:  in.SettlementRound2,
	}

	for _, t := range in.Transactions {
		switch t.Category {
		case models.OwnerExpense:
			b.OwnerExpenses = b.OwnerExpenses.Add(t.Amount)
		case models.ThirdPartyExpense:
			b.ThirdPartyExpenses = b.ThirdPartyExpenses.Add(t.Amount)
			b.ServiceFees = b.ServiceFees.Add(t.ServiceFee)
		case models.OwnerPayment:
			b.OwnerPayments = b.OwnerPayments.Add(t.Amount)
		case models.ThirdPartyPayment:
			b.ThirdPartyPaymentsRound1 = b.ThirdPartyPaymentsRound1.Add(t.Amount)
		default:
			return nil, fmt.Errorf("transaction %q has unknown category %q", t.Description, t.Category)
		}
	}

	// Round 1. The rolled-in previous balance sits entirely on the
	// third-party side: it is the prior period's final third-party
	// outstanding. The owner side opens at zero each period.
	b.OwnerOutstandingRound1 = b.OwnerExpenses.Sub(b.OwnerPayments)
	b.ThirdPartyOutstandingRound1 = previous.
		Add(b.ThirdPartyExpenses).
		Add(b.ServiceFees).
		Sub(b.ThirdPartyPaymentsRound1)

	// Round 2: only the third-party side is adjusted.
	b.FinalOwnerOutstanding = b.OwnerOutstandingRound1
	b.FinalThirdPartyOutstanding = b.ThirdPartyOutstandingRound1.Sub(b.ThirdPartyPaymentRound2)

	// Debit/credit check values are diagnostics for audit, not a gate.
	// Service fees are billed separately and excluded from TotalDebit.
	b.TotalDebit = b.OwnerExpenses.Add(b.ThirdPartyExpenses)
	b.TotalCredit = b.OwnerPayments.Add(b.ThirdPartyPaymentsRound1)
	b.BalanceDiff = b.TotalDebit.Sub(b.TotalCredit)

	return b, nil
}

func openingBalance(in Inputs) (decimal.Decimal, error) {
	if in.Initial {
		return in.OpeningBalance, nil
	}
	if in.Previous == nil {
		return decimal.Zero, fmt.Errorf("card %s period %s: %w", in.CardID, in.PeriodID, ErrMissingOpeningBalance)
	}
	return in.Previous.FinalThirdPartyOutstanding, nil
}

// VerifyChain checks rolling-balance continuity over a card's period
// sequence: each period's previous balance must equal the prior period's
// final third-party outstanding, to the cent.
func VerifyChain(periods []models.LedgerPeriodBalance) error {
	for i := 1; i < len(periods); i++ {
		prev, curr := periods[i-1], periods[i]
		if curr.CardID != prev.CardID {
			return fmt.Errorf("period %s belongs to card %s, expected %s", curr.PeriodID, curr.CardID, prev.CardID)
		}
		diff := curr.PreviousBalance.Sub(prev.FinalThirdPartyOutstanding).Abs()
		if diff.GreaterThan(tolerance) {
			return fmt.Errorf(
				"broken chain between %s and %s: previous balance %s does not match prior outstanding %s",
				prev.PeriodID, curr.PeriodID,
				curr.PreviousBalance.StringFixed(2), prev.FinalThirdPartyOutstanding.StringFixed(2))
		}
	}
	return nil
}
