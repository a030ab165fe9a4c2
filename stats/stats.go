// Package stats 基于记录快照计算统计数据，所有函数无副作用。
package stats

import (
	"cmp"
	"iter"
	"slices"
	"time"

	"agencybooks/models"
	"agencybooks/store"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// TotalOf 对集合中的金额字段求和
func TotalOf[T any](items []T, amount func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(amount(item))
	}
	return total
}

// MonthFilter 筛选日期落在指定自然月的记录
func MonthFilter[T any](items []T, date func(T) models.Date, month time.Month, year int) []T {
	var out []T
	for _, item := range items {
		d := date(item)
		if d.Month() == month && d.Year() == year {
			out = append(out, item)
		}
	}
	return out
}

// GrowthRate 增长率（百分比）
// previous > 0 时为 (current - previous) / previous * 100；否则 current > 0 为 100，其余为 0
func GrowthRate(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsPositive() {
		return current.Sub(previous).Div(previous).Mul(hundred)
	}
	if current.IsPositive() {
		return hundred
	}
	return decimal.Zero
}

// ExpenseControl 支出控制率，支出下降为正
func ExpenseControl(current, previous decimal.Decimal) decimal.Decimal {
	return GrowthRate(current, previous).Neg()
}

// CategoryAmount 类别汇总
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Count    int             `json:"count"`
}

// groupByCategory 按类别汇总，结果按金额降序、同额按名称升序
func groupByCategory[T any](items []T, category func(T) string, amount func(T) decimal.Decimal) []CategoryAmount {
	index := make(map[string]int)
	var groups []CategoryAmount
	for _, item := range items {
		name := category(item)
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, CategoryAmount{Category: name, Amount: decimal.Zero})
		}
		groups[i].Amount = groups[i].Amount.Add(amount(item))
		groups[i].Count++
	}
	slices.SortFunc(groups, func(a, b CategoryAmount) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return groups
}

// TopCategory 金额最大的类别，金额相同时取名称字母序最前者
func TopCategory[T any](items []T, category func(T) string, amount func(T) decimal.Decimal) (CategoryAmount, bool) {
	groups := groupByCategory(items, category, amount)
	if len(groups) == 0 {
		return CategoryAmount{}, false
	}
	return groups[0], true
}

// CategoryBreakdown 支出按类别汇总
func CategoryBreakdown(expenses []models.Expense) []CategoryAmount {
	return groupByCategory(expenses, expenseCategory, expenseAmount)
}

// DayTotals 单日汇总
type DayTotals struct {
	Date     models.Date     `json:"date"`
	Sales    decimal.Decimal `json:"sales"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
}

// DailySeries 截至 today 的最近 days 天逐日汇总，日期升序
// 销售额取 SalesRate，支出取支出集合（含工资支出），利润 = 销售额 - 支出
// 返回的序列可重复遍历
func DailySeries(today time.Time, days int, snap store.Snapshot) iter.Seq[DayTotals] {
	return func(yield func(DayTotals) bool) {
		if days <= 0 {
			return
		}
		sales := make(map[string]decimal.Decimal)
		for _, s := range snap.Sales {
			key := s.Date.String()
			sales[key] = sales[key].Add(s.SalesRate)
		}
		expenses := make(map[string]decimal.Decimal)
		for _, e := range snap.Expenses {
			key := e.Date.String()
			expenses[key] = expenses[key].Add(e.Amount)
		}

		end := models.DateOf(today)
		for i := days - 1; i >= 0; i-- {
			day := models.DateOf(end.AddDate(0, 0, -i))
			key := day.String()
			t := DayTotals{
				Date:     day,
				Sales:    sales[key],
				Expenses: expenses[key],
			}
			t.Profit = t.Sales.Sub(t.Expenses)
			if !yield(t) {
				return
			}
		}
	}
}

// MonthTotals 单月汇总
type MonthTotals struct {
	Month    int             `json:"month"`
	Sales    decimal.Decimal `json:"sales"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
}

// MonthlySeries 指定年份 12 个月的汇总
func MonthlySeries(snap store.Snapshot, year int) []MonthTotals {
	out := make([]MonthTotals, 12)
	for m := time.January; m <= time.December; m++ {
		t := MonthTotals{
			Month:    int(m),
			Sales:    TotalOf(MonthFilter(snap.Sales, saleDate, m, year), saleRevenue),
			Expenses: TotalOf(MonthFilter(snap.Expenses, expenseDate, m, year), expenseAmount),
		}
		t.Profit = t.Sales.Sub(t.Expenses)
		out[m-1] = t
	}
	return out
}

func saleDate(s models.Sale) models.Date { return s.Date }
func saleRevenue(s models.Sale) decimal.Decimal { return s.SalesRate }
func saleProfit(s models.Sale) decimal.Decimal { return s.Profit }
func expenseDate(e models.Expense) models.Date { return e.Date }
func expenseAmount(e models.Expense) decimal.Decimal { return e.Amount }
func expenseCategory(e models.Expense) string { return e.Category.Name() }
func supplierAmount(p models.SupplierPayment) decimal.Decimal { return p.Amount }
func salaryTotal(p models.SalaryPayment) decimal.Decimal { return p.TotalAmount }
