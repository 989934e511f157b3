// Package report turns a flat list of dated records into the aggregates the
// rendering collaborator consumes: period totals, time-bucketed trend series
// and category cost breakdowns. Everything here is a pure function over a
// snapshot; the ledger is never mutated.
package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"snackledger/internal/core"
)

// Totals is the income/expense/net summary of a record subset.
type Totals struct {
	Income  core.Money `json:"income"`
	Expense core.Money `json:"expense"`
	Net     core.Money `json:"net"`
}

// PeriodTotals folds amounts partitioned by kind. Net is income minus expense
// and may be negative.
func PeriodTotals(records []core.Record) Totals {
	var income, expense int64
	for _, r := range records {
		if r.Kind == core.Income {
			income += r.Amount.Cents
		} else {
			expense += r.Amount.Cents
		}
	}
	return Totals{
		Income:  core.Money{Cents: income},
		Expense: core.Money{Cents: expense},
		Net:     core.Money{Cents: income - expense},
	}
}

// FilterByYear selects records whose civil date falls in the given year,
// by prefix on the canonical date string.
func FilterByYear(records []core.Record, year int) []core.Record {
	prefix := fmt.Sprintf("%04d-", year)
	var out []core.Record
	for _, r := range records {
		if strings.HasPrefix(r.Date.String(), prefix) {
			out = append(out, r)
		}
	}
	return out
}

// FilterByYearMonth narrows FilterByYear to a single calendar month.
func FilterByYearMonth(records []core.Record, year int, month time.Month) []core.Record {
	var out []core.Record
	for _, r := range FilterByYear(records, year) {
		if r.Date.Month == month {
			out = append(out, r)
		}
	}
	return out
}

// Granularity selects the trend bucketing scheme.
type Granularity string

const (
	ByMonth Granularity = "month"
	ByWeek  Granularity = "week"
	ByDay   Granularity = "day"
)

func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case ByMonth, ByWeek, ByDay:
		return Granularity(s), nil
	default:
		return "", fmt.Errorf("unknown granularity %q", s)
	}
}

// TrendSeries is a fixed-size bucketed series with a parallel label sequence.
// Labels are presentational metadata for the chart axis; the aggregation
// contract is the three value slices.
type TrendSeries struct {
	Labels  []string     `json:"labels"`
	Income  []core.Money `json:"income"`
	Expense []core.Money `json:"expense"`
	Net     []core.Money `json:"net"`
}

// Trend buckets records of the given year into fixed-size income/expense
// series and derives the per-bucket net.
//
//   - month: 12 buckets by calendar month.
//   - week: 52 buckets, index floor((day_of_year-1)/7) clamped to 51. This is
//     a deliberate simplification, not ISO week numbering; a 53rd partial week
//     folds into the last bucket.
//   - day: 365 or 366 buckets depending on leap status, bucket i matching the
//     civil date year-01-01 + i days by exact date-string equality.
//
// Records outside the year are ignored, so callers may pass either a
// pre-filtered subset or the full snapshot.
func Trend(records []core.Record, g Granularity, year int) (TrendSeries, error) {
	switch g {
	case ByMonth:
		return trendByMonth(records, year), nil
	case ByWeek:
		return trendByWeek(records, year), nil
	case ByDay:
		return trendByDay(records, year), nil
	default:
		return TrendSeries{}, fmt.Errorf("unknown granularity %q", g)
	}
}

func newSeries(n int) TrendSeries {
	return TrendSeries{
		Labels:  make([]string, n),
		Income:  make([]core.Money, n),
		Expense: make([]core.Money, n),
		Net:     make([]core.Money, n),
	}
}

func (s *TrendSeries) add(i int, r core.Record) {
	if r.Kind == core.Income {
		s.Income[i].Cents += r.Amount.Cents
	} else {
		s.Expense[i].Cents += r.Amount.Cents
	}
}

func (s *TrendSeries) deriveNet() {
	for i := range s.Net {
		s.Net[i].Cents = s.Income[i].Cents - s.Expense[i].Cents
	}
}

func trendByMonth(records []core.Record, year int) TrendSeries {
	s := newSeries(12)
	for i := range s.Labels {
		s.Labels[i] = strconv.Itoa(i+1) + "月"
	}
	for _, r := range records {
		if r.Date.Year != year {
			continue
		}
		s.add(int(r.Date.Month)-1, r)
	}
	s.deriveNet()
	return s
}

func trendByWeek(records []core.Record, year int) TrendSeries {
	s := newSeries(52)
	for i := range s.Labels {
		s.Labels[i] = "W" + strconv.Itoa(i+1)
	}
	for _, r := range records {
		if r.Date.Year != year {
			continue
		}
		idx := (r.Date.DayOfYear() - 1) / 7
		if idx > 51 {
			idx = 51
		}
		s.add(idx, r)
	}
	s.deriveNet()
	return s
}

func trendByDay(records []core.Record, year int) TrendSeries {
	days := core.DaysInYear(year)
	s := newSeries(days)
	bucketOf := make(map[string]int, days)
	d := core.NewCivilDate(year, time.January, 1)
	for i := 0; i < days; i++ {
		s.Labels[i] = fmt.Sprintf("%d/%d", int(d.Month), d.Day)
		bucketOf[d.String()] = i
		d = d.AddDays(1)
	}
	for _, r := range records {
		if i, ok := bucketOf[r.Date.String()]; ok {
			s.add(i, r)
		}
	}
	s.deriveNet()
	return s
}

// CategoryTotal is one cost-breakdown entry.
type CategoryTotal struct {
	Category string     `json:"category"`
	Amount   core.Money `json:"amount"`
}

// CostBreakdown groups expense records by category after collapsing the two
// wage labels, sorted by total descending. Ties keep first-encountered order.
// Zero expense records yield an empty breakdown, which the renderer treats as
// nothing to display.
func CostBreakdown(records []core.Record) []CategoryTotal {
	sums := make(map[string]int64)
	var order []string
	for _, r := range records {
		if r.Kind != core.Expense {
			continue
		}
		name := core.MergeWageCategory(r.Category)
		if _, seen := sums[name]; !seen {
			order = append(order, name)
		}
		sums[name] += r.Amount.Cents
	}
	out := make([]CategoryTotal, 0, len(order))
	for _, name := range order {
		out = append(out, CategoryTotal{Category: name, Amount: core.Money{Cents: sums[name]}})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.Cents > out[j].Amount.Cents
	})
	return out
}

// Years lists the distinct record years plus the current year, newest first.
// Used to populate the report period pickers.
func Years(records []core.Record, now time.Time) []int {
	seen := map[int]struct{}{core.CivilDateOf(now).Year: {}}
	for _, r := range records {
		seen[r.Date.Year] = struct{}{}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}
