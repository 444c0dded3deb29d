// Package writer dumps processing results to CSV for inspection. Report
// templating and presentation belong to collaborating subsystems; this is a
// plain data dump.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-ledger/internal/models"
)

// CSVWriter writes classified transactions and the period balance to CSV.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes the statement's results to a CSV file at path.
func (w *CSVWriter) WriteToFile(path string, info *models.StatementInfo, txns []models.ClassifiedTransaction, balance *models.LedgerPeriodBalance) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, info, txns, balance)
}

// Write writes the results in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, info *models.StatementInfo, txns []models.ClassifiedTransaction, balance *models.LedgerPeriodBalance) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	if w.IncludeHeader && info != nil {
		if info.Issuer != "" {
			writer.Write([]string{"# Issuer", string(info.Issuer)})
		}
		if info.StatementPeriod != "" {
			writer.Write([]string{"# Statement Period", info.StatementPeriod})
		}
		if info.CardNumber != "" {
			writer.Write([]string{"# Card", info.CardNumber})
		}
		if info.DueDate != "" {
			writer.Write([]string{"# Due Date", info.DueDate})
		}
	}

	header := []string{"Date", "Posted", "Description", "Direction", "Amount", "Category", "Supplier", "Payer", "Fee", "Confidence"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, txn := range txns {
		row := []string{
			txn.TransactionDate,
			txn.PostingDate,
			txn.Description,
			string(txn.Direction),
			txn.Amount.StringFixed(2),
			string(txn.Category),
			txn.Supplier,
			txn.Payer,
			formatAmount(txn.ServiceFee),
			string(txn.Confidence),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	if balance != nil {
		writer.Write([]string{})
		writer.Write([]string{"# Previous Balance", "", "", "", balance.PreviousBalance.StringFixed(2)})
		writer.Write([]string{"# Total Debit", "", "", "", balance.TotalDebit.StringFixed(2)})
		writer.Write([]string{"# Total Credit", "", "", "", balance.TotalCredit.StringFixed(2)})
		writer.Write([]string{"# Service Fees", "", "", "", balance.ServiceFees.StringFixed(2)})
		writer.Write([]string{"# Final Owner Outstanding", "", "", "", balance.FinalOwnerOutstanding.StringFixed(2)})
		writer.Write([]string{"# Final Third-Party Outstanding", "", "", "", balance.FinalThirdPartyOutstanding.StringFixed(2)})
	}

	return nil
}

func formatAmount(amount decimal.Decimal) string {
	if amount.IsZero() {
		return ""
	}
	return amount.StringFixed(2)
}
