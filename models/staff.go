package models

import (
	"github.com/shopspring/decimal"
)

// StaffMember 员工
type StaffMember struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	StaffID  string          `json:"staffId"` // 外部员工编号
	Role     string          `json:"role"`
	Phone    string          `json:"phone,omitempty"`
	Email    string          `json:"email,omitempty"`
	Address  string          `json:"address,omitempty"`
	JoinDate Date            `json:"joinDate"`
	Salary   decimal.Decimal `json:"salary"` // 月基本工资
}

// SalaryPayment 工资发放记录
// StaffName / StaffSalary 为发放时的快照
type SalaryPayment struct {
	ID             int             `json:"id"`
	StaffID        int             `json:"staffId"`
	StaffName      string          `json:"staffName"`
	StaffSalary    decimal.Decimal `json:"staffSalary"`
	AdvanceAmount  decimal.Decimal `json:"advanceAmount"`
	SalaryAmount   decimal.Decimal `json:"salaryAmount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	Date           Date            `json:"date"`
	SalaryForMonth string          `json:"salaryForMonth"` // 2006-01
	Description    string          `json:"description,omitempty"`
	Receipt        string          `json:"receipt,omitempty"`
}
