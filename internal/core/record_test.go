package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
		ok    bool
	}{
		{"500", 50000, true},
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"12.344", 1234, true},
		{"12.345", 1235, true},
		{"-5", -500, true},
		{"0", 0, true},
		{"", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("ParseAmount(%q): %v", tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseAmount(%q): expected error", tc.in)
		}
		if got != tc.cents {
			t.Fatalf("ParseAmount(%q) = %d, want %d", tc.in, got, tc.cents)
		}
	}
}

func TestKindLabels(t *testing.T) {
	if Income.WireLabel() != "收入" || Expense.WireLabel() != "支出" {
		t.Fatalf("unexpected wire labels: %q %q", Income.WireLabel(), Expense.WireLabel())
	}
	if KindFromLabel("收入") != Income {
		t.Fatal("收入 should map to income")
	}
	// Anything else is treated as expense, matching the remote convention.
	for _, label := range []string{"支出", "", "whatever"} {
		if KindFromLabel(label) != Expense {
			t.Fatalf("%q should map to expense", label)
		}
	}
}

func TestRecordValidate(t *testing.T) {
	good := Record{
		ID:       1,
		Date:     NewCivilDate(2024, time.March, 1),
		Kind:     Income,
		Category: "現金收入",
		Amount:   Money{Cents: 50000},
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Record{
		{Date: CivilDate{}, Kind: Income, Category: "c", Amount: Money{Cents: 100}},
		{Date: NewCivilDate(2024, 3, 1), Kind: "neither", Category: "c", Amount: Money{Cents: 100}},
		{Date: NewCivilDate(2024, 3, 1), Kind: Expense, Category: "  ", Amount: Money{Cents: 100}},
		{Date: NewCivilDate(2024, 3, 1), Kind: Expense, Category: "c", Amount: Money{Cents: 0}},
		{Date: NewCivilDate(2024, 3, 1), Kind: Expense, Category: "c", Amount: Money{Cents: -100}},
	}
	for i, r := range bads {
		if err := r.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestRecordJSONShape(t *testing.T) {
	r := Record{
		ID:       1700000000000,
		Date:     NewCivilDate(2024, time.March, 1),
		Kind:     Income,
		Category: "現金收入",
		Amount:   Money{Cents: 50000},
		Note:     "開市",
	}
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"id":1700000000000,"date":"2024-03-01","type":"income","category":"現金收入","amount":500,"note":"開市"}`
	if string(b) != want {
		t.Fatalf("got %s\nwant %s", b, want)
	}
	var back Record
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back != r {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}

func TestMergeWageCategory(t *testing.T) {
	if MergeWageCategory(WageDaily) != WageMerged || MergeWageCategory(WageMonthly) != WageMerged {
		t.Fatal("wage labels should collapse")
	}
	if MergeWageCategory("食材") != "食材" {
		t.Fatal("other categories must pass through")
	}
}
