package stats

import (
	"time"

	"agencybooks/models"
	"agencybooks/store"

	"github.com/shopspring/decimal"
)

// Dashboard 仪表盘统计
type Dashboard struct {
	TotalSales            decimal.Decimal `json:"totalSales"`
	TotalSaleProfit       decimal.Decimal `json:"totalSaleProfit"`
	TotalExpenses         decimal.Decimal `json:"totalExpenses"`
	TotalSupplierPayments decimal.Decimal `json:"totalSupplierPayments"`
	TotalSalaryPayments   decimal.Decimal `json:"totalSalaryPayments"`
	NetProfit             decimal.Decimal `json:"netProfit"`
	ProfitMargin          decimal.Decimal `json:"profitMargin"`

	CurrentMonthSales     decimal.Decimal `json:"currentMonthSales"`
	PreviousMonthSales    decimal.Decimal `json:"previousMonthSales"`
	SalesGrowth           decimal.Decimal `json:"salesGrowth"`
	CurrentMonthExpenses  decimal.Decimal `json:"currentMonthExpenses"`
	PreviousMonthExpenses decimal.Decimal `json:"previousMonthExpenses"`
	ExpenseControl        decimal.Decimal `json:"expenseControl"`

	TopExpenseCategory string          `json:"topExpenseCategory"`
	TopExpenseAmount   decimal.Decimal `json:"topExpenseAmount"`

	SalesCount           int `json:"salesCount"`
	ExpenseCount         int `json:"expenseCount"`
	SupplierPaymentCount int `json:"supplierPaymentCount"`
	StaffCount           int `json:"staffCount"`
	SalaryPaymentCount   int `json:"salaryPaymentCount"`
}

// Summarize 计算仪表盘统计，now 决定本月与上月
// 净利润 = 销售额 - 支出 - 供应商付款，工资已通过工资支出计入支出
func Summarize(snap store.Snapshot, now time.Time) Dashboard {
	d := Dashboard{
		TotalSales:            TotalOf(snap.Sales, saleRevenue),
		TotalSaleProfit:       TotalOf(snap.Sales, saleProfit),
		TotalExpenses:         TotalOf(snap.Expenses, expenseAmount),
		TotalSupplierPayments: TotalOf(snap.SupplierPayments, supplierAmount),
		TotalSalaryPayments:   TotalOf(snap.SalaryPayments, salaryTotal),
		SalesCount:            len(snap.Sales),
		ExpenseCount:          len(snap.Expenses),
		SupplierPaymentCount:  len(snap.SupplierPayments),
		StaffCount:            len(snap.StaffMembers),
		SalaryPaymentCount:    len(snap.SalaryPayments),
	}
	d.NetProfit = d.TotalSales.Sub(d.TotalExpenses).Sub(d.TotalSupplierPayments)
	d.ProfitMargin = ProfitMargin(d.NetProfit, d.TotalSales)

	cur, prev := currentAndPreviousMonth(now)
	d.CurrentMonthSales = TotalOf(MonthFilter(snap.Sales, saleDate, cur.Month(), cur.Year()), saleRevenue)
	d.PreviousMonthSales = TotalOf(MonthFilter(snap.Sales, saleDate, prev.Month(), prev.Year()), saleRevenue)
	d.SalesGrowth = GrowthRate(d.CurrentMonthSales, d.PreviousMonthSales).Round(2)

	d.CurrentMonthExpenses = TotalOf(MonthFilter(snap.Expenses, expenseDate, cur.Month(), cur.Year()), expenseAmount)
	d.PreviousMonthExpenses = TotalOf(MonthFilter(snap.Expenses, expenseDate, prev.Month(), prev.Year()), expenseAmount)
	d.ExpenseControl = ExpenseControl(d.CurrentMonthExpenses, d.PreviousMonthExpenses).Round(2)

	if top, ok := TopCategory(snap.Expenses, expenseCategory, expenseAmount); ok {
		d.TopExpenseCategory = top.Category
		d.TopExpenseAmount = top.Amount
	}
	return d
}

// ProfitMargin 利润率（百分比，保留两位），销售额为 0 时返回 0
func ProfitMargin(netProfit, sales decimal.Decimal) decimal.Decimal {
	if !sales.IsPositive() {
		return decimal.Zero
	}
	return netProfit.Div(sales).Mul(hundred).Round(2)
}

// currentAndPreviousMonth 以月初计算上月，避免 31 日减一个月落回本月
func currentAndPreviousMonth(now time.Time) (time.Time, time.Time) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return first, first.AddDate(0, -1, 0)
}

// RecentSales 最近 n 条销售，按日期降序
func RecentSales(sales []models.Sale, n int) []models.Sale {
	out := append([]models.Sale{}, sales...)
	sortByDateDesc(out, saleDate)
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
