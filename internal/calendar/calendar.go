// Package calendar derives calendar-presence views from a ledger snapshot.
// Matching is done on the canonical date string, never on reconstructed time
// values, so no time-zone reinterpretation can creep in here.
package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"snackledger/internal/core"
)

// DaysWithRecords returns the sorted day-of-month numbers of the given month
// that have at least one record.
func DaysWithRecords(records []core.Record, year int, month time.Month) []int {
	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	seen := make(map[int]struct{})
	for _, r := range records {
		if strings.HasPrefix(r.Date.String(), prefix) {
			seen[r.Date.Day] = struct{}{}
		}
	}
	days := make([]int, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}

// RecordsOnDate returns all records whose date matches the given "YYYY-MM-DD"
// string, preserving ledger order. Prefix matching mirrors the tolerance the
// day-detail view has always had toward longer date strings.
func RecordsOnDate(records []core.Record, date string) []core.Record {
	var out []core.Record
	for _, r := range records {
		if strings.HasPrefix(r.Date.String(), date) {
			out = append(out, r)
		}
	}
	return out
}
