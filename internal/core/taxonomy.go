package core

// The category taxonomy is fixed shop configuration, not user-editable at
// runtime. Expense groups exist for presentation only; aggregation ignores
// them except for the wage merge below.

const (
	WageDaily   = "薪資 (日)"
	WageMonthly = "薪資 (月)"
	WageMerged  = "薪資"
)

// ExpenseGroup is a named presentation grouping of expense categories.
type ExpenseGroup struct {
	Name       string   `json:"group"`
	Categories []string `json:"categories"`
}

var incomeCategories = []string{"現金收入", "FoodPanda", "Uber Eats", "其他收入"}

var expenseGroups = []ExpenseGroup{
	{Name: "日支出 (經常支出)", Categories: []string{"食材", "耗材", WageDaily, "雜項"}},
	{Name: "月支出 (浮動支出)", Categories: []string{"米糧", "蔬菜", "火鍋料", "調味料", "FoodPanda", "Uber Eats", "稅務", "維修"}},
	{Name: "月支出 (固定支出)", Categories: []string{"租金", "水費", "電費", "瓦斯類", "電話費", "清潔維護費", WageMonthly}},
}

// IncomeCategories returns the flat income taxonomy.
func IncomeCategories() []string {
	return append([]string(nil), incomeCategories...)
}

// ExpenseGroups returns the grouped expense taxonomy.
func ExpenseGroups() []ExpenseGroup {
	out := make([]ExpenseGroup, len(expenseGroups))
	for i, g := range expenseGroups {
		out[i] = ExpenseGroup{Name: g.Name, Categories: append([]string(nil), g.Categories...)}
	}
	return out
}

// MergeWageCategory collapses the daily and monthly wage labels into the
// single wage label. Applied during cost-breakdown aggregation only.
func MergeWageCategory(category string) string {
	if category == WageDaily || category == WageMonthly {
		return WageMerged
	}
	return category
}
