package report

import (
	"fmt"
	"path/filepath"
	"strings"
)

type Writer interface {
	Write(path string, rows []Row) error
}

// WriterForFormat returns the writer for csv, excel/xlsx or pdf. title is
// only used by formats that print a heading.
func WriterForFormat(format, title string) (Writer, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	case "pdf":
		return &PDFWriter{Title: title}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// DetectFormat infers the output format from the file extension, falling
// back to csv.
func DetectFormat(path string) string {
	switch strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".") {
	case "xlsx", "xlsm":
		return "excel"
	case "pdf":
		return "pdf"
	default:
		return "csv"
	}
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}
