package store

import (
	"strings"

	"agencybooks/models"

	"github.com/shopspring/decimal"
)

// ExpenseInput 支出表单
type ExpenseInput struct {
	Category      string
	OtherCategory string // Category 为 Other 时填写
	Amount        string
	Date          string
	Description   string
	Receipt       string
}

// SaleInput 销售表单
type SaleInput struct {
	Agency         string
	Supplier       string
	National       string
	PassportNumber string
	Service        string
	NetRate        string
	SalesRate      string
	Comment        string
	Date           string
	Documents      []string
}

// SupplierPaymentInput 供应商付款表单
type SupplierPaymentInput struct {
	SupplierName string
	Amount       string
	Date         string
	Receipt      string
}

// StaffInput 员工表单
type StaffInput struct {
	Name     string
	StaffID  string
	Role     string
	Phone    string
	Email    string
	Address  string
	JoinDate string
	Salary   string
}

// SalaryInput 工资发放表单
// SalaryAmount 为空时按 员工工资 - 预支 计算
type SalaryInput struct {
	StaffID        int
	AdvanceAmount  string
	SalaryAmount   string
	Date           string
	SalaryForMonth string
	Description    string
	Receipt        string
}

func parseAmount(field, raw string, allowZero bool) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, invalid(field, field+" 不能为空")
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, invalid(field, field+" 必须是数字")
	}
	if d.IsNegative() || (!allowZero && d.IsZero()) {
		return decimal.Zero, invalid(field, field+" 必须大于0")
	}
	return d, nil
}

func parseOptionalAmount(field, raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero, nil
	}
	return parseAmount(field, raw, true)
}

func parseDate(field, raw string) (models.Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.Date{}, invalid(field, field+" 不能为空")
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return models.Date{}, invalid(field, err.Error())
	}
	return d, nil
}

func required(field, raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", invalid(field, field+" 不能为空")
	}
	return v, nil
}

func (in ExpenseInput) build(id int) (models.Expense, error) {
	category, ok := models.ResolveCategory(in.Category, in.OtherCategory)
	if !ok {
		return models.Expense{}, invalid("category", "请选择类别，选择 Other 时需填写自定义类别")
	}
	amount, err := parseAmount("amount", in.Amount, false)
	if err != nil {
		return models.Expense{}, err
	}
	date, err := parseDate("date", in.Date)
	if err != nil {
		return models.Expense{}, err
	}
	return models.Expense{
		ID:          id,
		Category:    category,
		Amount:      amount,
		Date:        date,
		Description: strings.TrimSpace(in.Description),
		Receipt:     in.Receipt,
		Type:        models.ExpenseTypeGeneral,
	}, nil
}

func (in SaleInput) build(id int) (models.Sale, error) {
	var sale models.Sale
	var err error
	if sale.Agency, err = required("agency", in.Agency); err != nil {
		return sale, err
	}
	if sale.Supplier, err = required("supplier", in.Supplier); err != nil {
		return sale, err
	}
	if sale.Service, err = required("service", in.Service); err != nil {
		return sale, err
	}
	if sale.NetRate, err = parseAmount("netRate", in.NetRate, true); err != nil {
		return sale, err
	}
	if sale.SalesRate, err = parseAmount("salesRate", in.SalesRate, true); err != nil {
		return sale, err
	}
	if sale.Date, err = parseDate("date", in.Date); err != nil {
		return sale, err
	}
	sale.ID = id
	sale.National = strings.TrimSpace(in.National)
	sale.PassportNumber = strings.TrimSpace(in.PassportNumber)
	sale.Comment = strings.TrimSpace(in.Comment)
	sale.Profit = sale.SalesRate.Sub(sale.NetRate)
	sale.Documents = append([]string{}, in.Documents...)
	return sale, nil
}

func (in SupplierPaymentInput) build(id int) (models.SupplierPayment, error) {
	name, err := required("supplierName", in.SupplierName)
	if err != nil {
		return models.SupplierPayment{}, err
	}
	amount, err := parseAmount("amount", in.Amount, false)
	if err != nil {
		return models.SupplierPayment{}, err
	}
	date, err := parseDate("date", in.Date)
	if err != nil {
		return models.SupplierPayment{}, err
	}
	return models.SupplierPayment{
		ID:           id,
		SupplierName: name,
		Amount:       amount,
		Date:         date,
		Receipt:      in.Receipt,
	}, nil
}

func (in StaffInput) build(id int) (models.StaffMember, error) {
	var staff models.StaffMember
	var err error
	if staff.Name, err = required("name", in.Name); err != nil {
		return staff, err
	}
	if staff.StaffID, err = required("staffId", in.StaffID); err != nil {
		return staff, err
	}
	if staff.Role, err = required("role", in.Role); err != nil {
		return staff, err
	}
	if staff.JoinDate, err = parseDate("joinDate", in.JoinDate); err != nil {
		return staff, err
	}
	if staff.Salary, err = parseAmount("salary", in.Salary, false); err != nil {
		return staff, err
	}
	staff.ID = id
	staff.Phone = strings.TrimSpace(in.Phone)
	staff.Email = strings.TrimSpace(in.Email)
	staff.Address = strings.TrimSpace(in.Address)
	return staff, nil
}

// build 根据员工快照计算工资金额
func (in SalaryInput) build(id int, staff models.StaffMember) (models.SalaryPayment, error) {
	advance, err := parseOptionalAmount("advanceAmount", in.AdvanceAmount)
	if err != nil {
		return models.SalaryPayment{}, err
	}

	var salaryAmount decimal.Decimal
	if strings.TrimSpace(in.SalaryAmount) != "" {
		if salaryAmount, err = parseAmount("salaryAmount", in.SalaryAmount, true); err != nil {
			return models.SalaryPayment{}, err
		}
	} else {
		if advance.GreaterThan(staff.Salary) {
			return models.SalaryPayment{}, invalid("advanceAmount", "预支金额不能超过员工工资")
		}
		salaryAmount = staff.Salary.Sub(advance)
	}

	date, err := parseDate("date", in.Date)
	if err != nil {
		return models.SalaryPayment{}, err
	}
	month := strings.TrimSpace(in.SalaryForMonth)
	if !models.ValidMonth(month) {
		return models.SalaryPayment{}, invalid("salaryForMonth", "工资月份格式错误，应为: "+models.MonthLayout)
	}

	return models.SalaryPayment{
		ID:             id,
		StaffID:        staff.ID,
		StaffName:      staff.Name,
		StaffSalary:    staff.Salary,
		AdvanceAmount:  advance,
		SalaryAmount:   salaryAmount,
		TotalAmount:    advance.Add(salaryAmount),
		Date:           date,
		SalaryForMonth: month,
		Description:    strings.TrimSpace(in.Description),
		Receipt:        in.Receipt,
	}, nil
}
