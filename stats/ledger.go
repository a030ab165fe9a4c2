package stats

import (
	"fmt"
	"slices"

	"agencybooks/models"
	"agencybooks/store"

	"github.com/shopspring/decimal"
)

// Transaction 流水账条目
// Amount 带符号：支出、供应商付款、工资为负，销售与员工入职为正
type Transaction struct {
	Date        models.Date     `json:"date"`
	Kind        models.Kind     `json:"kind"`
	ID          int             `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	Details     string          `json:"details"`
}

// BuildTransactionLedger 汇总五类记录为统一流水，按日期降序
// kind 为空时包含全部类型
func BuildTransactionLedger(snap store.Snapshot, kind models.Kind) []Transaction {
	include := func(k models.Kind) bool { return kind == "" || kind == k }

	var rows []Transaction
	if include(models.KindSale) {
		for _, s := range snap.Sales {
			rows = append(rows, Transaction{
				Date:        s.Date,
				Kind:        models.KindSale,
				ID:          s.ID,
				Description: fmt.Sprintf("%s - %s", s.Service, s.Agency),
				Amount:      s.SalesRate,
				Status:      snap.StatusOf(models.KindSale, s.ID),
				Details:     fmt.Sprintf("Supplier: %s, Profit: %s", s.Supplier, s.Profit.StringFixed(2)),
			})
		}
	}
	if include(models.KindExpense) {
		for _, e := range snap.Expenses {
			desc := e.Description
			if desc == "" {
				desc = e.Category.Name()
			}
			rows = append(rows, Transaction{
				Date:        e.Date,
				Kind:        models.KindExpense,
				ID:          e.ID,
				Description: desc,
				Amount:      e.Amount.Neg(),
				Status:      snap.StatusOf(models.KindExpense, e.ID),
				Details:     "Category: " + e.Category.Name(),
			})
		}
	}
	if include(models.KindSupplier) {
		for _, p := range snap.SupplierPayments {
			rows = append(rows, Transaction{
				Date:        p.Date,
				Kind:        models.KindSupplier,
				ID:          p.ID,
				Description: "Payment to " + p.SupplierName,
				Amount:      p.Amount.Neg(),
				Status:      snap.StatusOf(models.KindSupplier, p.ID),
				Details:     "Supplier: " + p.SupplierName,
			})
		}
	}
	if include(models.KindSalary) {
		for _, p := range snap.SalaryPayments {
			rows = append(rows, Transaction{
				Date:        p.Date,
				Kind:        models.KindSalary,
				ID:          p.ID,
				Description: fmt.Sprintf("Salary - %s (%s)", p.StaffName, p.SalaryForMonth),
				Amount:      p.TotalAmount.Neg(),
				Status:      snap.StatusOf(models.KindSalary, p.ID),
				Details:     fmt.Sprintf("Advance: %s, Salary: %s", p.AdvanceAmount.StringFixed(2), p.SalaryAmount.StringFixed(2)),
			})
		}
	}
	if include(models.KindStaff) {
		for _, m := range snap.StaffMembers {
			rows = append(rows, Transaction{
				Date:        m.JoinDate,
				Kind:        models.KindStaff,
				ID:          m.ID,
				Description: "Staff joined: " + m.Name,
				Amount:      m.Salary,
				Status:      snap.StatusOf(models.KindStaff, m.ID),
				Details:     fmt.Sprintf("Role: %s, Staff ID: %s", m.Role, m.StaffID),
			})
		}
	}

	// 同日记录保持合并顺序
	sortByDateDesc(rows, func(t Transaction) models.Date { return t.Date })
	return rows
}

func sortByDateDesc[T any](items []T, date func(T) models.Date) {
	slices.SortStableFunc(items, func(a, b T) int {
		return date(b).Compare(date(a).Time)
	})
}
