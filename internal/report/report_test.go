package report

import (
	"testing"
	"time"

	"snackledger/internal/core"
)

func rec(date string, kind core.Kind, category string, cents int64) core.Record {
	d, err := core.ParseCivilDate(date)
	if err != nil {
		panic(err)
	}
	return core.Record{ID: cents, Date: d, Kind: kind, Category: category, Amount: core.Money{Cents: cents}}
}

func TestPeriodTotalsScenario(t *testing.T) {
	// Empty ledger, then a single March 2024 income of NT$ 500.
	records := []core.Record{rec("2024-03-01", core.Income, "現金收入", 50000)}
	got := PeriodTotals(FilterByYearMonth(records, 2024, time.March))
	if got.Income.Cents != 50000 || got.Expense.Cents != 0 || got.Net.Cents != 50000 {
		t.Fatalf("got %+v", got)
	}
}

func TestPeriodTotalsNetCanBeNegative(t *testing.T) {
	records := []core.Record{
		rec("2024-01-01", core.Income, "現金收入", 10000),
		rec("2024-01-02", core.Expense, "食材", 25000),
	}
	got := PeriodTotals(records)
	if got.Net.Cents != -15000 {
		t.Fatalf("net = %d, want -15000", got.Net.Cents)
	}
}

func TestFilterByYearMonth(t *testing.T) {
	records := []core.Record{
		rec("2024-03-01", core.Income, "現金收入", 100),
		rec("2024-04-01", core.Income, "現金收入", 200),
		rec("2023-03-01", core.Income, "現金收入", 400),
	}
	if got := FilterByYear(records, 2024); len(got) != 2 {
		t.Fatalf("year filter: got %d records", len(got))
	}
	got := FilterByYearMonth(records, 2024, time.March)
	if len(got) != 1 || got[0].Amount.Cents != 100 {
		t.Fatalf("month filter: %+v", got)
	}
}

func TestTrendMonthSumsMatchPeriodTotals(t *testing.T) {
	records := []core.Record{
		rec("2024-01-15", core.Income, "現金收入", 11100),
		rec("2024-01-20", core.Expense, "食材", 5000),
		rec("2024-06-30", core.Income, "FoodPanda", 22200),
		rec("2024-12-31", core.Income, "其他收入", 300),
		rec("2023-05-05", core.Income, "現金收入", 99999),
	}
	s, err := Trend(records, ByMonth, 2024)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Income) != 12 || len(s.Labels) != 12 {
		t.Fatalf("expected 12 buckets, got %d", len(s.Income))
	}
	if s.Labels[0] != "1月" || s.Labels[11] != "12月" {
		t.Fatalf("labels: %v", s.Labels)
	}
	var sum int64
	for _, m := range s.Income {
		sum += m.Cents
	}
	want := PeriodTotals(FilterByYear(records, 2024)).Income.Cents
	if sum != want {
		t.Fatalf("bucket sum %d != year income %d", sum, want)
	}
	if s.Net[0].Cents != 11100-5000 {
		t.Fatalf("net[0] = %d", s.Net[0].Cents)
	}
}

func TestTrendWeekBucketing(t *testing.T) {
	// 2024-01-10 is day-of-year index 9, bucket floor(9/7)=1, label W2.
	records := []core.Record{
		rec("2024-01-10", core.Income, "現金收入", 700),
		rec("2024-12-31", core.Expense, "食材", 900), // index 365 -> clamped to 51
	}
	s, err := Trend(records, ByWeek, 2024)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Income) != 52 {
		t.Fatalf("expected 52 buckets, got %d", len(s.Income))
	}
	if s.Income[1].Cents != 700 {
		t.Fatalf("income[1] = %d, want 700", s.Income[1].Cents)
	}
	if s.Labels[1] != "W2" {
		t.Fatalf("label = %q, want W2", s.Labels[1])
	}
	if s.Expense[51].Cents != 900 {
		t.Fatalf("overflow week not clamped: expense[51] = %d", s.Expense[51].Cents)
	}
}

func TestTrendDayBucketCounts(t *testing.T) {
	leap, err := Trend(nil, ByDay, 2024)
	if err != nil {
		t.Fatal(err)
	}
	if len(leap.Income) != 366 {
		t.Fatalf("2024 should have 366 buckets, got %d", len(leap.Income))
	}
	plain, err := Trend(nil, ByDay, 2023)
	if err != nil {
		t.Fatal(err)
	}
	if len(plain.Income) != 365 {
		t.Fatalf("2023 should have 365 buckets, got %d", len(plain.Income))
	}
	if leap.Labels[0] != "1/1" || leap.Labels[365] != "12/31" || leap.Labels[59] != "2/29" {
		t.Fatalf("labels: %q %q %q", leap.Labels[0], leap.Labels[365], leap.Labels[59])
	}
}

func TestTrendDayMatchesExactDate(t *testing.T) {
	records := []core.Record{
		rec("2024-02-29", core.Expense, "食材", 1200),
		rec("2024-03-01", core.Income, "現金收入", 3400),
	}
	s, err := Trend(records, ByDay, 2024)
	if err != nil {
		t.Fatal(err)
	}
	if s.Expense[59].Cents != 1200 { // Feb 29 is index 59
		t.Fatalf("expense[59] = %d", s.Expense[59].Cents)
	}
	if s.Income[60].Cents != 3400 {
		t.Fatalf("income[60] = %d", s.Income[60].Cents)
	}
}

func TestTrendUnknownGranularity(t *testing.T) {
	if _, err := Trend(nil, Granularity("hour"), 2024); err == nil {
		t.Fatal("expected error")
	}
}

func TestCostBreakdownWageMerge(t *testing.T) {
	records := []core.Record{
		rec("2024-03-01", core.Expense, core.WageDaily, 10000),
		rec("2024-03-02", core.Expense, core.WageMonthly, 20000),
		rec("2024-03-03", core.Income, "現金收入", 99900), // income must be ignored
	}
	got := CostBreakdown(records)
	if len(got) != 1 {
		t.Fatalf("expected one merged entry, got %+v", got)
	}
	if got[0].Category != core.WageMerged || got[0].Amount.Cents != 30000 {
		t.Fatalf("got %+v", got[0])
	}
}

func TestCostBreakdownSortStable(t *testing.T) {
	records := []core.Record{
		rec("2024-03-01", core.Expense, "食材", 5000),
		rec("2024-03-01", core.Expense, "耗材", 9000),
		rec("2024-03-01", core.Expense, "雜項", 5000),
	}
	got := CostBreakdown(records)
	if len(got) != 3 {
		t.Fatalf("got %d entries", len(got))
	}
	if got[0].Category != "耗材" {
		t.Fatalf("largest first, got %q", got[0].Category)
	}
	// Equal totals keep first-encountered order.
	if got[1].Category != "食材" || got[2].Category != "雜項" {
		t.Fatalf("tie order broken: %q, %q", got[1].Category, got[2].Category)
	}
	if empty := CostBreakdown(nil); len(empty) != 0 {
		t.Fatalf("empty input should yield empty breakdown, got %+v", empty)
	}
}

func TestYears(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	records := []core.Record{
		rec("2023-03-01", core.Income, "現金收入", 100),
		rec("2024-03-01", core.Income, "現金收入", 100),
		rec("2023-07-01", core.Income, "現金收入", 100),
	}
	got := Years(records, now)
	want := []int{2025, 2024, 2023}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
