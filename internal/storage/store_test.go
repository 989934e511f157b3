package storage

import (
	"context"
	"path/filepath"
	"testing"

	"snackledger/internal/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func rec(id int64, date string, cents int64) core.Record {
	d, err := core.ParseCivilDate(date)
	if err != nil {
		panic(err)
	}
	return core.Record{ID: id, Date: d, Kind: core.Income, Category: "現金收入", Amount: core.Money{Cents: cents}}
}

func TestLoadEmptyStore(t *testing.T) {
	s := newTestStore(t)
	records, err := s.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if records != nil {
		t.Fatalf("fresh store should load nil, got %+v", records)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	in := []core.Record{
		rec(1700000000000, "2024-03-01", 50000),
		rec(1700000000001, "2024-03-02", 12050),
	}
	if err := s.Save(ctx, in); err != nil {
		t.Fatal(err)
	}
	out, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d records", len(out))
	}
	if out[0].ID != in[0].ID || out[0].Date.String() != "2024-03-01" || out[0].Amount.Cents != 50000 {
		t.Fatalf("got %+v", out[0])
	}
}

func TestSaveOverwritesSlot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if err := s.Save(ctx, []core.Record{rec(1, "2024-03-01", 100)}); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, []core.Record{rec(2, "2024-03-02", 200)}); err != nil {
		t.Fatal(err)
	}
	out, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].ID != 2 {
		t.Fatalf("slot not overwritten: %+v", out)
	}
}

func TestSaveNilMeansEmpty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if err := s.Save(ctx, []core.Record{rec(1, "2024-03-01", 100)}); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, nil); err != nil {
		t.Fatal(err)
	}
	out, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty ledger, got %+v", out)
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.db")
	ctx := context.Background()

	s, err := NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, []core.Record{rec(7, "2024-05-05", 700)}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s2, err := NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	out, err := s2.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].ID != 7 {
		t.Fatalf("got %+v", out)
	}
}
