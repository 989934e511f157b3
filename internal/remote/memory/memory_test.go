package memory

import (
	"context"
	"errors"
	"testing"

	"snackledger/internal/core"
)

func rec(id int64, cents int64) core.Record {
	d, _ := core.ParseCivilDate("2024-03-01")
	return core.Record{ID: id, Date: d, Kind: core.Expense, Category: "食材", Amount: core.Money{Cents: cents}}
}

func TestPushUpsertsById(t *testing.T) {
	c := New()
	ctx := context.Background()
	if err := c.Push(ctx, rec(1, 100)); err != nil {
		t.Fatal(err)
	}
	if err := c.Push(ctx, rec(1, 999)); err != nil {
		t.Fatal(err)
	}
	rows := c.Rows()
	if len(rows) != 1 || rows[0].Amount.Cents != 999 {
		t.Fatalf("got %+v", rows)
	}
}

func TestPushDeleteRecordsTombstone(t *testing.T) {
	c := New()
	ctx := context.Background()
	c.Seed([]core.Record{rec(1, 100), rec(2, 200)})
	d, _ := core.ParseCivilDate("2024-03-01")
	if err := c.PushDelete(ctx, 1, d); err != nil {
		t.Fatal(err)
	}
	if len(c.Rows()) != 1 {
		t.Fatalf("rows: %+v", c.Rows())
	}
	if got := c.Deleted(); len(got) != 1 || got[0] != 1 {
		t.Fatalf("deleted: %v", got)
	}
}

func TestFailureInjection(t *testing.T) {
	c := New()
	boom := errors.New("boom")
	c.FailFetch = boom
	if _, _, err := c.FetchAll(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}
