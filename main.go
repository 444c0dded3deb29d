package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-ledger/internal/classifier"
	"github.com/insightdelivered/statement-ledger/internal/extractor"
	"github.com/insightdelivered/statement-ledger/internal/ledger"
	"github.com/insightdelivered/statement-ledger/internal/models"
	"github.com/insightdelivered/statement-ledger/internal/reader"
	"github.com/insightdelivered/statement-ledger/internal/validator"
	"github.com/insightdelivered/statement-ledger/internal/writer"
)

const version = "1.0.0"

func main() {
	// Optional .env overrides; missing file is fine.
	godotenv.Load()

	issuerFlag := flag.String("issuer", envOr("LEDGER_ISSUER", ""), "Issuer hint: hsbc, barclaycard, amex (auto-detected if omitted)")
	cardFlag := flag.String("card", envOr("LEDGER_CARD", ""), "Card identifier for the ledger chain (defaults to the masked number on the statement)")
	outputFlag := flag.String("output", "", "Output CSV file path (defaults to input filename with .csv extension)")
	prevFlag := flag.String("prev", "", "Path to the prior period's ledger snapshot JSON")
	openingFlag := flag.String("opening", envOr("LEDGER_OPENING_BALANCE", ""), "Opening balance for the first period of a card's chain")
	settlementFlag := flag.String("settlement", envOr("LEDGER_SETTLEMENT", ""), "Round-2 third-party settlement amount (applies to the first file)")
	headerFlag := flag.Bool("header", true, "Include statement metadata header rows in CSV")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Statement Ledger
by Insight Delivered

Converts credit-card statement documents into a classified transaction
ledger, validates extracted totals against the document's own figures, and
carries the third-party outstanding balance forward period to period.

Usage:
  statement-ledger [flags] <statement.pdf|statement.xlsx|statement.txt> [more ...]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # First period of a card's chain
  statement-ledger --opening=0.00 may.pdf

  # Subsequent period, chained to the prior snapshot
  statement-ledger --prev=may.ledger.json --settlement=300.00 june.pdf

  # Consecutive periods in one run: files chain in argument order
  statement-ledger --opening=0.00 may.pdf june.pdf july.pdf

Supported issuers: hsbc, barclaycard, amex (plus a generic fallback).
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("statement-ledger v%s\n", version)
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	opts := options{
		issuer:     models.IssuerID(strings.ToLower(*issuerFlag)),
		cardID:     *cardFlag,
		outputPath: *outputFlag,
		prevPath:   *prevFlag,
		header:     *headerFlag,
	}

	var err error
	if opts.opening, opts.hasOpening, err = parseMoneyFlag(*openingFlag); err != nil {
		fatalf("Invalid --opening value %q: %v\n", *openingFlag, err)
	}
	if opts.settlement, _, err = parseMoneyFlag(*settlementFlag); err != nil {
		fatalf("Invalid --settlement value %q: %v\n", *settlementFlag, err)
	}

	// Multiple files in one invocation are treated as consecutive periods of
	// the same chain: each file's closing snapshot becomes the next file's
	// previous balance. The --prev/--opening/--settlement flags seed only
	// the first file.
	var chained *models.LedgerPeriodBalance
	for i, inputPath := range flag.Args() {
		fileOpts := opts
		if i > 0 {
			fileOpts.settlement = decimal.Zero
		}
		balance, err := processFile(inputPath, fileOpts, chained)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
		if balance != nil {
			chained = balance
		}
	}
}

type options struct {
	issuer     models.IssuerID
	cardID     string
	outputPath string
	prevPath   string
	opening    decimal.Decimal
	hasOpening bool
	settlement decimal.Decimal
	header     bool
}

// processFile runs one statement through the pipeline and returns the
// period's closing snapshot, or nil when validation failed and no ledger
// posting happened. chained, when non-nil, is the snapshot of the preceding
// file in the same invocation and takes precedence over --prev/--opening.
func processFile(inputPath string, opts options, chained *models.LedgerPeriodBalance) (*models.LedgerPeriodBalance, error) {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("input file not found: %s", inputPath)
	}

	fmt.Printf("Processing: %s\n", inputPath)

	text, err := reader.ReadDocument(inputPath)
	if err != nil {
		return nil, fmt.Errorf("document read failed: %w", err)
	}

	// Extract
	info, txns, err := extractor.Extract(text, opts.issuer)
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}
	fmt.Printf("  Issuer: %s, %d transaction(s)\n", info.Issuer, len(txns))

	// Dual validation gates everything downstream.
	declared := validator.ExtractDeclaredTotals(text)
	result := validator.Validate(info, txns, declared)
	fmt.Printf("  Validation: %s (confidence %d)\n", result.Verdict, result.Confidence)
	for _, w := range result.Warnings {
		fmt.Printf("    warning: %s\n", w)
	}
	for _, e := range result.Errors {
		fmt.Printf("    error: %s\n", e)
	}

	// Classify
	classified := classifier.New().ClassifyAll(txns)

	outPath := opts.outputPath
	if outPath == "" {
		outPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".csv"
	}

	if result.Verdict == models.VerdictFailed {
		// Stored for audit, never auto-posted.
		fmt.Println("  FAILED validation: statement requires manual reconciliation; ledger posting skipped.")
		w := &writer.CSVWriter{IncludeHeader: opts.header}
		if err := w.WriteToFile(outPath, info, classified, nil); err != nil {
			return nil, fmt.Errorf("CSV write failed: %w", err)
		}
		fmt.Printf("  Output (audit only): %s\n", outPath)
		return nil, nil
	}

	// Ledger
	in := ledger.Inputs{
		PeriodID:         info.StatementPeriod,
		CardID:           cardID(opts, info),
		Transactions:     classified,
		SettlementRound2: opts.settlement,
	}
	if chained != nil {
		in.Previous = chained
	} else if opts.prevPath != "" {
		prev, err := loadSnapshot(opts.prevPath)
		if err != nil {
			return nil, err
		}
		in.Previous = prev
	} else if opts.hasOpening {
		in.Initial = true
		in.OpeningBalance = opts.opening
	}

	balance, err := ledger.Compute(in)
	if err != nil {
		return nil, fmt.Errorf("ledger computation failed: %w", err)
	}
	balance.ID = uuid.NewString()

	fmt.Printf("  Owner outstanding: %s\n", balance.FinalOwnerOutstanding.StringFixed(2))
	fmt.Printf("  Third-party outstanding: %s\n", balance.FinalThirdPartyOutstanding.StringFixed(2))

	snapPath := strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".ledger.json"
	if err := saveSnapshot(snapPath, balance); err != nil {
		return nil, err
	}

	w := &writer.CSVWriter{IncludeHeader: opts.header}
	if err := w.WriteToFile(outPath, info, classified, balance); err != nil {
		return nil, fmt.Errorf("CSV write failed: %w", err)
	}

	fmt.Printf("  Output: %s\n", outPath)
	fmt.Printf("  Snapshot: %s\n", snapPath)
	fmt.Println("  Done.")
	return balance, nil
}

// cardID prefers the explicit flag, then the masked number on the
// statement, so chains stay stable across months.
func cardID(opts options, info *models.StatementInfo) string {
	if opts.cardID != "" {
		return opts.cardID
	}
	if info.CardNumber != "" {
		return info.CardNumber
	}
	return "unknown-card"
}

func loadSnapshot(path string) (*models.LedgerPeriodBalance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prior snapshot: %w", err)
	}
	var b models.LedgerPeriodBalance
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decode prior snapshot %s: %w", path, err)
	}
	return &b, nil
}

func saveSnapshot(path string, b *models.LedgerPeriodBalance) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func parseMoneyFlag(s string) (decimal.Decimal, bool, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, false, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, false, err
	}
	return d, true, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
