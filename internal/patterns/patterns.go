// Package patterns holds the per-issuer field and transaction recovery
// rules. A PatternSet is pure data plus matching logic; adding support for a
// new issuer means registering a new value here, never branching inside the
// extractor.
package patterns

import (
	"regexp"
	"sort"
	"strings"

	"github.com/insightdelivered/statement-ledger/internal/models"
)

// PatternSet describes how to recover labeled fields and transaction lines
// from one issuer's statement layout.
//
// TxnLine must capture, in order: transaction date, posting date,
// description, amount, optional credit marker. Field patterns capture the
// value in group 1.
type PatternSet struct {
	Issuer models.IssuerID

	// DetectMarkers identify the issuer from raw text when no hint is given.
	DetectMarkers []string

	StatementDate   *regexp.Regexp
	DueDate         *regexp.Regexp
	PreviousBalance *regexp.Regexp
	NewBalance      *regexp.Regexp
	MinimumPayment  *regexp.Regexp
	CardNumber      *regexp.Regexp

	TxnLine *regexp.Regexp
}

// Field extracts the first capture group of pat from text, or "".
func Field(pat *regexp.Regexp, text string) string {
	if pat == nil {
		return ""
	}
	m := pat.FindStringSubmatch(text)
	if m == nil || len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

var registry = map[models.IssuerID]*PatternSet{}

// Register adds a pattern set to the registry, replacing any prior set for
// the same issuer.
func Register(ps *PatternSet) {
	registry[ps.Issuer] = ps
}

// Lookup returns the pattern set for an issuer.
func Lookup(issuer models.IssuerID) (*PatternSet, bool) {
	ps, ok := registry[issuer]
	return ps, ok
}

// Detect tries to identify the issuer from the statement text content.
func Detect(text string) (models.IssuerID, bool) {
	lower := strings.ToLower(text)
	for _, ps := range ordered() {
		for _, marker := range ps.DetectMarkers {
			if strings.Contains(lower, strings.ToLower(marker)) {
				return ps.Issuer, true
			}
		}
	}
	return "", false
}

// ordered returns registered sets in a stable order so detection is
// deterministic when markers overlap: the built-in issuers first, then any
// custom registrations sorted by issuer ID.
func ordered() []*PatternSet {
	var out []*PatternSet
	for _, id := range []models.IssuerID{models.IssuerHSBC, models.IssuerBarclaycard, models.IssuerAmex} {
		if ps, ok := registry[id]; ok {
			out = append(out, ps)
		}
	}

	var rest []models.IssuerID
	for id := range registry {
		switch id {
		case models.IssuerHSBC, models.IssuerBarclaycard, models.IssuerAmex:
		default:
			rest = append(rest, id)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	for _, id := range rest {
		out = append(out, registry[id])
	}
	return out
}

const monthAlt = `(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)`

// AmountToken matches the trailing amount of a transaction line. It accepts
// the OCR confusion characters O, I, l and S alongside digits so that a line
// with a garbled amount is still recovered as a transaction; the parse step
// decides whether the token is numeric and flags the residue cases
// low-confidence rather than dropping the line.
const AmountToken = `[\d,OIlS]*\d[\d,OIlS]*\.\S{2}`

// HSBC credit card statements.
//
//	07 MAY   08 MAY   TESCO STORES 2104 LONDON          45.99
//	07 MAY   07 MAY   PAYMENT RECEIVED - THANK YOU     450.00 CR
var hsbcSet = &PatternSet{
	Issuer:        models.IssuerHSBC,
	DetectMarkers: []string{"HSBC", "hsbc.co.uk"},

	StatementDate:   regexp.MustCompile(`(?i)Statement Date[:\s]+(\d{1,2}\s+` + monthAlt + `[a-z]*\s+\d{4})`),
	DueDate:         regexp.MustCompile(`(?i)Payment Due Date[:\s]+(\d{1,2}\s+` + monthAlt + `[a-z]*\s+\d{4})`),
	PreviousBalance: regexp.MustCompile(`(?i)Previous Balance[:\s]+\x{00A3}?\s*(-?[\d,]+\.\d{2})`),
	NewBalance:      regexp.MustCompile(`(?i)New Balance[:\s]+\x{00A3}?\s*(-?[\d,]+\.\d{2})`),
	MinimumPayment:  regexp.MustCompile(`(?i)Minimum Payment(?:\s+Due)?[:\s]+\x{00A3}?\s*([\d,]+\.\d{2})`),
	CardNumber:      regexp.MustCompile(`(\d{4}[\s-]\*{4}[\s-]\*{4}[\s-]\d{4})`),

	TxnLine: regexp.MustCompile(
		`(?i)^(\d{1,2}\s+` + monthAlt + `)\s+(\d{1,2}\s+` + monthAlt + `)\s+` +
			`(.+?)\s+\x{00A3}?(` + AmountToken + `)\s*(CR)?\s*$`),
}

// Barclaycard statements.
//
//	7 May 24   8 May 24   SAINSBURYS S/MKT CROYDON      £45.99
//	7 May 24   7 May 24   PAYMENT BY DIRECT DEBIT      £450.00 CR
var barclaycardSet = &PatternSet{
	Issuer:        models.IssuerBarclaycard,
	DetectMarkers: []string{"Barclaycard", "barclaycard.co.uk"},

	StatementDate:   regexp.MustCompile(`(?i)Statement date[:\s]+(\d{1,2}\s+` + monthAlt + `[a-z]*\s+\d{2,4})`),
	DueDate:         regexp.MustCompile(`(?i)(?:Payment due|Due) date[:\s]+(\d{1,2}\s+` + monthAlt + `[a-z]*\s+\d{2,4})`),
	PreviousBalance: regexp.MustCompile(`(?i)(?:Previous|Balance from your last) (?:balance|statement)[:\s]+\x{00A3}?\s*(-?[\d,]+\.\d{2})`),
	NewBalance:      regexp.MustCompile(`(?i)(?:New|Your new) balance[:\s]+\x{00A3}?\s*(-?[\d,]+\.\d{2})`),
	MinimumPayment:  regexp.MustCompile(`(?i)Minimum payment[:\s]+\x{00A3}?\s*([\d,]+\.\d{2})`),
	CardNumber:      regexp.MustCompile(`(?i)Card (?:number )?ending[:\s]+(\d{4})`),

	TxnLine: regexp.MustCompile(
		`(?i)^(\d{1,2}\s+` + monthAlt + `[a-z]*\s+\d{2})\s+(\d{1,2}\s+` + monthAlt + `[a-z]*\s+\d{2})\s+` +
			`(.+?)\s+\x{00A3}?(` + AmountToken + `)\s*(CR)?\s*$`),
}

// American Express statements.
//
//	May 7   May 8   WAITROSE 104 LONDON                45.99
//	May 7   May 7   PAYMENT RECEIVED THANK YOU        450.00 CR
var amexSet = &PatternSet{
	Issuer:        models.IssuerAmex,
	DetectMarkers: []string{"American Express", "americanexpress.com", "AMEX"},

	StatementDate:   regexp.MustCompile(`(?i)Closing Date[:\s]+(` + monthAlt + `[a-z]*\s+\d{1,2},?\s+\d{4})`),
	DueDate:         regexp.MustCompile(`(?i)Payment Due(?:\s+Date)?[:\s]+(` + monthAlt + `[a-z]*\s+\d{1,2},?\s+\d{4})`),
	PreviousBalance: regexp.MustCompile(`(?i)Previous Balance[:\s]+[$\x{00A3}]?\s*(-?[\d,]+\.\d{2})`),
	NewBalance:      regexp.MustCompile(`(?i)(?:New|Closing) Balance[:\s]+[$\x{00A3}]?\s*(-?[\d,]+\.\d{2})`),
	MinimumPayment:  regexp.MustCompile(`(?i)Minimum (?:Payment|Amount) Due[:\s]+[$\x{00A3}]?\s*([\d,]+\.\d{2})`),
	CardNumber:      regexp.MustCompile(`(?i)Account Ending[:\s]+((?:[\dX*]{4,5}[\s-]){0,3}\d{4,5})`),

	TxnLine: regexp.MustCompile(
		`(?i)^(` + monthAlt + `[a-z]*\s+\d{1,2})\s+(` + monthAlt + `[a-z]*\s+\d{1,2})\s+` +
			`(.+?)\s+[$\x{00A3}]?(` + AmountToken + `)\s*(CR)?\s*$`),
}

func init() {
	Register(hsbcSet)
	Register(barclaycardSet)
	Register(amexSet)
}
