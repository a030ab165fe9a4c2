package models

import (
	"github.com/shopspring/decimal"
)

// ExpenseType 支出类型
type ExpenseType string

const (
	ExpenseTypeGeneral ExpenseType = "general"
	// ExpenseTypeSalary 由工资发放自动生成的支出，与 SalaryPayment 一一对应
	ExpenseTypeSalary ExpenseType = "salary"
)

// Expense 支出记录
type Expense struct {
	ID          int             `json:"id"`
	Category    Category        `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        Date            `json:"date"`
	Description string          `json:"description"`
	Receipt     string          `json:"receipt,omitempty"`
	Type        ExpenseType     `json:"type"`
	SalaryID    *int            `json:"salaryId,omitempty"`
}

// IsSalary 是否为工资支出
func (e Expense) IsSalary() bool {
	return e.Type == ExpenseTypeSalary
}
