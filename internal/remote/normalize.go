package remote

import (
	"strconv"
	"strings"
	"time"

	"snackledger/internal/core"
)

// Row is one record as the remote endpoint serializes it. The endpoint is a
// spreadsheet script, so id and amount arrive as whatever the sheet holds:
// numbers, numeric strings, or nothing at all.
type Row struct {
	ID       any    `json:"id"`
	Date     string `json:"date"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Amount   any    `json:"amount"`
	Note     string `json:"note"`
}

// DeletePayload is the tombstone POSTed when a record is removed. The date is
// the civil date of the deleted record, which the sheet script uses to narrow
// its scan.
type DeletePayload struct {
	ID     int64  `json:"id"`
	Action string `json:"action"`
	Date   string `json:"date"`
}

const DeleteAction = "delete"

// NormalizeRows converts raw remote rows into records:
//
//   - rows with a missing, zero, or non-numeric amount are dropped and counted;
//   - timestamps are reinterpreted as UTC+8 civil dates, so an evening UTC
//     instant lands on the following business day;
//   - an unparseable date falls back to now;
//   - a missing id gets a synthetic one, now in milliseconds plus the row
//     index, keeping ids unique within one fetch.
//
// The wire income label maps to the income kind; any other type label is
// treated as an expense.
func NormalizeRows(rows []Row, now time.Time) (records []core.Record, dropped int) {
	records = make([]core.Record, 0, len(rows))
	for i, row := range rows {
		cents, ok := amountCents(row.Amount)
		if !ok || cents == 0 {
			dropped++
			continue
		}
		id, ok := rowID(row.ID)
		if !ok {
			id = now.UnixMilli() + int64(i)
		}
		records = append(records, core.Record{
			ID:       id,
			Date:     civilDate(row.Date, now),
			Kind:     core.KindFromLabel(row.Type),
			Category: row.Category,
			Amount:   core.Money{Cents: cents},
			Note:     row.Note,
		})
	}
	return records, dropped
}

// amountCents coerces a spreadsheet cell into cents. JSON numbers arrive as
// float64; everything else goes through string parsing.
func amountCents(v any) (int64, bool) {
	switch a := v.(type) {
	case nil:
		return 0, false
	case float64:
		if a < 0 {
			return int64(a*100 - 0.5), true
		}
		return int64(a*100 + 0.5), true
	case string:
		if strings.TrimSpace(a) == "" {
			return 0, false
		}
		cents, err := core.ParseAmount(a)
		if err != nil {
			return 0, false
		}
		return cents, true
	default:
		return 0, false
	}
}

func rowID(v any) (int64, bool) {
	switch id := v.(type) {
	case float64:
		if id == 0 {
			return 0, false
		}
		return int64(id), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
		if err != nil || n == 0 {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// civilDate resolves a remote date string to a business-zone civil date.
// Plain "YYYY-MM-DD" strings are taken verbatim; timestamps are parsed and
// reinterpreted in the business zone; anything else falls back to now.
func civilDate(s string, now time.Time) core.CivilDate {
	s = strings.TrimSpace(s)
	if d, err := core.ParseCivilDate(s); err == nil {
		return d
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return core.CivilDateOf(t)
	}
	return core.CivilDateOf(now)
}
