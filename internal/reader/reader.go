// Package reader decodes statement documents into raw text for the
// extraction core. The core itself never touches the filesystem; this
// package is the document-acquisition collaborator the CLI wires in front
// of it.
package reader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadDocument decodes a statement file into its text content, dispatching
// on the file extension. Supported inputs: .pdf, .xlsx, .txt.
func ReadDocument(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		pages, err := ExtractPDFText(path)
		if err != nil {
			return "", err
		}
		return strings.Join(pages, "\n"), nil
	case ".xlsx":
		return ExtractSheetText(path)
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read text file: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported document type %q (expected .pdf, .xlsx or .txt)", filepath.Ext(path))
	}
}
