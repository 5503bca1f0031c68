package importer

import (
	"strings"
)

// Record is one spreadsheet row keyed by normalized header.
type Record struct {
	RowNumber int
	Values    map[string]string
}

// Get returns the trimmed value of the first alias present in the row.
func (r Record) Get(keys ...string) string {
	for _, key := range keys {
		normalized := normalizeHeader(key)
		if value, ok := r.Values[normalized]; ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// Has reports whether any alias is a column of the row.
func (r Record) Has(keys ...string) bool {
	for _, key := range keys {
		if _, ok := r.Values[normalizeHeader(key)]; ok {
			return true
		}
	}
	return false
}

func normalizeHeader(input string) string {
	trimmed := strings.TrimSpace(strings.ToLower(input))
	trimmed = strings.TrimPrefix(trimmed, "\ufeff")
	trimmed = strings.ReplaceAll(trimmed, "_", "")
	trimmed = strings.ReplaceAll(trimmed, "-", "")
	trimmed = strings.ReplaceAll(trimmed, " ", "")
	trimmed = strings.ReplaceAll(trimmed, ".", "")
	return trimmed
}
