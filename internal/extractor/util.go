package extractor

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var amountStrip = strings.NewReplacer("£", "", "$", "", "€", "", ",", "")

// parseAmount converts a string like "1,234.56" or "-£1,234.56" to a
// decimal. Thousands separators, currency symbols and stray whitespace are
// stripped first. The second return value is false when non-numeric residue
// remained after stripping; the amount is then zero and the caller flags the
// line low-confidence instead of dropping it.
func parseAmount(s string) (decimal.Decimal, bool) {
	s = amountStrip.Replace(s)
	// Collapse all whitespace, including non-breaking spaces.
	s = strings.Join(strings.Fields(s), "")

	if s == "" || s == "-" {
		return decimal.Zero, true
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// normalizeLine cleans up common PDF extraction artifacts: tabs become
// spaces, zero-width spaces are dropped, non-breaking spaces become plain
// spaces.
func normalizeLine(line string) string {
	line = strings.ReplaceAll(line, "\t", " ")
	line = strings.ReplaceAll(line, string(rune(0x200B)), "")
	line = strings.ReplaceAll(line, string(rune(0x00A0)), " ")
	return strings.TrimSpace(line)
}

// Summary rows print totals the dual validator checks against; they must not
// be recovered as transactions.
var summaryLinePattern = regexp.MustCompile(
	`(?i)^(?:total|sub[- ]?total|previous balance|new balance|closing balance|opening balance|balance (?:brought|carried) forward|minimum payment|credit limit|available credit)`)

func isSummaryLine(line string) bool {
	return summaryLinePattern.MatchString(strings.TrimSpace(line))
}

// Date token shapes accepted by the generic fallback.
const monthAlt = `(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)`

var genericDateToken = `(?:\d{1,2}\s+` + monthAlt + `[a-z]*(?:\s+\d{2,4})?|` +
	monthAlt + `[a-z]*\s+\d{1,2}|\d{1,2}[/-]\d{1,2}(?:[/-]\d{2,4})?)`

var startsWithDatePattern = regexp.MustCompile(`(?i)^\s*` + genericDateToken)

// startsWithDate checks if a line begins with any recognized date token.
func startsWithDate(line string) bool {
	return startsWithDatePattern.MatchString(line)
}

var monthNumbers = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04", "may": "05", "jun": "06",
	"jul": "07", "aug": "08", "sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

// periodFromDate converts a statement date string to a "YYYY-MM" period
// identifier, or "" when the date shape is not recognized.
func periodFromDate(date string) string {
	fields := strings.Fields(strings.ToLower(strings.ReplaceAll(date, ",", " ")))
	var month, year string
	for _, f := range fields {
		if len(f) >= 3 {
			if m, ok := monthNumbers[f[:3]]; ok && month == "" {
				month = m
				continue
			}
		}
		if len(f) == 4 && isDigits(f) {
			year = f
		}
	}
	if month == "" || year == "" {
		return ""
	}
	return year + "-" + month
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
