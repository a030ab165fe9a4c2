// Package report 导出记录报表（CSV 文本与 Excel 工作簿）
package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"agencybooks/models"
	"agencybooks/stats"
	"agencybooks/store"

	"github.com/shopspring/decimal"
)

// 报表分节标题
const (
	SectionSales            = "SALES DATA"
	SectionExpenses         = "EXPENSES DATA"
	SectionSupplierPayments = "SUPPLIER PAYMENTS"
	SectionSalaryPayments   = "SALARY PAYMENTS"
	SectionStaff            = "STAFF DATA"
	SectionSummary          = "FINANCIAL SUMMARY"
)

var (
	salesHeader    = []string{"ID", "Date", "Agency", "Supplier", "National", "Passport Number", "Service", "Net Rate", "Sales Rate", "Profit", "Status", "Comment"}
	expensesHeader = []string{"ID", "Date", "Category", "Amount", "Type", "Status", "Description"}
	supplierHeader = []string{"ID", "Date", "Supplier Name", "Amount", "Status"}
	salaryHeader   = []string{"ID", "Date", "Staff Name", "Salary For Month", "Staff Salary", "Advance Amount", "Salary Amount", "Total Amount", "Status", "Description"}
	staffHeader    = []string{"ID", "Staff ID", "Name", "Role", "Phone", "Email", "Address", "Join Date", "Salary", "Status"}
	summaryHeader  = []string{"Metric", "Value"}
)

// Filename 报表文件名，形如 travel_agency_report_2024-01-10.csv
func Filename(now time.Time, ext string) string {
	return fmt.Sprintf("travel_agency_report_%s.%s", now.Format(models.DateLayout), strings.TrimPrefix(ext, "."))
}

// WriteCSV 按固定分节写出报表
// 字段以逗号分隔，仅描述与备注字段加引号，记录状态取自备注，未设置时为 "No Status"
func WriteCSV(w io.Writer, snap store.Snapshot, generatedAt time.Time) error {
	bw := bufio.NewWriter(w)
	cw := &sectionWriter{w: bw}

	cw.section(SectionSales, salesHeader)
	for _, s := range snap.Sales {
		cw.row(
			strconv.Itoa(s.ID), s.Date.String(), s.Agency, s.Supplier, s.National, s.PassportNumber, s.Service,
			money(s.NetRate), money(s.SalesRate), money(s.Profit),
			snap.StatusOf(models.KindSale, s.ID), quoted(s.Comment),
		)
	}

	cw.section(SectionExpenses, expensesHeader)
	for _, e := range snap.Expenses {
		cw.row(
			strconv.Itoa(e.ID), e.Date.String(), e.Category.Name(), money(e.Amount), string(e.Type),
			snap.StatusOf(models.KindExpense, e.ID), quoted(e.Description),
		)
	}

	cw.section(SectionSupplierPayments, supplierHeader)
	for _, p := range snap.SupplierPayments {
		cw.row(
			strconv.Itoa(p.ID), p.Date.String(), p.SupplierName, money(p.Amount),
			snap.StatusOf(models.KindSupplier, p.ID),
		)
	}

	cw.section(SectionSalaryPayments, salaryHeader)
	for _, p := range snap.SalaryPayments {
		cw.row(
			strconv.Itoa(p.ID), p.Date.String(), p.StaffName, p.SalaryForMonth,
			money(p.StaffSalary), money(p.AdvanceAmount), money(p.SalaryAmount), money(p.TotalAmount),
			snap.StatusOf(models.KindSalary, p.ID), quoted(p.Description),
		)
	}

	cw.section(SectionStaff, staffHeader)
	for _, m := range snap.StaffMembers {
		cw.row(
			strconv.Itoa(m.ID), m.StaffID, m.Name, m.Role, m.Phone, m.Email, m.Address,
			m.JoinDate.String(), money(m.Salary), snap.StatusOf(models.KindStaff, m.ID),
		)
	}

	cw.section(SectionSummary, summaryHeader)
	for _, line := range summaryLines(snap, generatedAt) {
		cw.row(line[0], line[1])
	}

	if cw.err != nil {
		return cw.err
	}
	return bw.Flush()
}

// summaryLines 汇总区的指标与取值
func summaryLines(snap store.Snapshot, generatedAt time.Time) [][2]string {
	d := stats.Summarize(snap, generatedAt)
	return [][2]string{
		{"Total Sales", money(d.TotalSales)},
		{"Total Sale Profit", money(d.TotalSaleProfit)},
		{"Total Expenses", money(d.TotalExpenses)},
		{"Total Supplier Payments", money(d.TotalSupplierPayments)},
		{"Total Salary Payments", money(d.TotalSalaryPayments)},
		{"Net Profit", money(d.NetProfit)},
		{"Profit Margin (%)", money(d.ProfitMargin)},
		{"Generated At", generatedAt.Format("2006-01-02 15:04:05")},
	}
}

// sectionWriter 记录首个写入错误，后续写入直接跳过
type sectionWriter struct {
	w       *bufio.Writer
	err     error
	started bool
}

func (sw *sectionWriter) section(title string, header []string) {
	if sw.started {
		sw.line("")
	}
	sw.started = true
	sw.line(title)
	sw.row(header...)
}

func (sw *sectionWriter) row(fields ...string) {
	sw.line(strings.Join(fields, ","))
}

func (sw *sectionWriter) line(s string) {
	if sw.err != nil {
		return
	}
	_, sw.err = sw.w.WriteString(s + "\n")
}

func quoted(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
