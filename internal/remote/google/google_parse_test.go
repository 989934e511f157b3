package google

import (
	"context"
	"testing"
	"time"

	"snackledger/internal/remote"
)

func TestParseValuesSkipsHeader(t *testing.T) {
	values := [][]any{
		{"id", "date", "type", "category", "amount", "note"},
		{float64(1), "2024-03-01", "收入", "現金收入", float64(500), "開市"},
		{float64(2), "2024-03-02", "支出", "食材"},
	}
	rows := parseValues(values)
	if len(rows) != 2 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[0].Category != "現金收入" || rows[0].Note != "開市" {
		t.Fatalf("row 0: %+v", rows[0])
	}
	// Short row: amount cell missing, normalizer drops it.
	if rows[1].Amount != nil {
		t.Fatalf("row 1 amount should be nil, got %v", rows[1].Amount)
	}
	records, dropped := remote.NormalizeRows(rows, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	if len(records) != 1 || dropped != 1 {
		t.Fatalf("records=%d dropped=%d", len(records), dropped)
	}
}

func TestParseValuesNumericFirstRowKept(t *testing.T) {
	values := [][]any{
		{"1700000000000", "2024-03-01", "收入", "現金收入", "500", ""},
	}
	rows := parseValues(values)
	if len(rows) != 1 {
		t.Fatalf("numeric string id must not look like a header, got %d rows", len(rows))
	}
}

func TestNewRequiresSpreadsheetID(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatal("expected error for missing spreadsheet id")
	}
}
