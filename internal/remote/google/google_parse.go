package google

import (
	"strings"

	"snackledger/internal/remote"
)

// parseValues maps raw sheet cells onto remote rows. Column order is
// id, date, type, category, amount, note. A header row is recognized by a
// non-numeric id cell and skipped; short rows are padded with empties so the
// normalizer sees them as missing-amount rows rather than crashing.
func parseValues(values [][]any) []remote.Row {
	rows := make([]remote.Row, 0, len(values))
	for i, v := range values {
		if i == 0 && isHeader(v) {
			continue
		}
		rows = append(rows, remote.Row{
			ID:       cell(v, 0),
			Date:     cellString(v, 1),
			Type:     cellString(v, 2),
			Category: cellString(v, 3),
			Amount:   cell(v, 4),
			Note:     cellString(v, 5),
		})
	}
	return rows
}

func isHeader(row []any) bool {
	if len(row) == 0 {
		return false
	}
	s, ok := row[0].(string)
	if !ok {
		return false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return true
		}
	}
	return false
}

func cell(row []any, i int) any {
	if i >= len(row) {
		return nil
	}
	return row[i]
}

func cellString(row []any, i int) string {
	if i >= len(row) {
		return ""
	}
	s, ok := row[i].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}
