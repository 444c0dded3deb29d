package reader

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExtractSheetText flattens a spreadsheet statement into line-oriented text
// so the same pattern matchers work on spreadsheet and PDF inputs. Cells in
// a row are joined with double spaces, mirroring the column gaps of
// layout-preserving PDF extraction.
func ExtractSheetText(path string) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	var lines []string
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		for _, row := range rows {
			var cells []string
			for _, cell := range row {
				if c := strings.TrimSpace(cell); c != "" {
					cells = append(cells, c)
				}
			}
			if len(cells) > 0 {
				lines = append(lines, strings.Join(cells, "  "))
			}
		}
	}

	if len(lines) == 0 {
		return "", fmt.Errorf("spreadsheet %s contains no data", path)
	}
	return strings.Join(lines, "\n"), nil
}
