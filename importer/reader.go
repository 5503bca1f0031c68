package importer

import (
	"fmt"
	"strings"
)

// Reader turns a tabular file into header-keyed rows.
type Reader interface {
	Read(path string) ([]Record, error)
}

func ReaderForFormat(format string) (Reader, error) {
	switch normalizeHeader(format) {
	case "csv":
		return &CSVReader{}, nil
	case "excel", "xlsx", "xlsm":
		return &ExcelReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported input format: %s", format)
	}
}

// buildRecords keys every data row by the normalized header row. Rows without
// any non-blank cell are dropped; RowNumber stays the 1-based sheet row.
func buildRecords(headers []string, rows [][]string, firstRow int) []Record {
	normalizedHeaders := make([]string, len(headers))
	for i, header := range headers {
		normalizedHeaders[i] = normalizeHeader(header)
	}

	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		if isBlankRow(row) {
			continue
		}
		values := make(map[string]string, len(normalizedHeaders))
		for col, header := range normalizedHeaders {
			if header == "" {
				continue
			}
			if col < len(row) {
				values[header] = row[col]
			} else {
				values[header] = ""
			}
		}
		records = append(records, Record{RowNumber: firstRow + i, Values: values})
	}
	return records
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
