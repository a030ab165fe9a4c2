package report

import (
	"fmt"
	"time"

	"agencybooks/models"
	"agencybooks/store"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// 工作表名称
const (
	SheetSales            = "Sales"
	SheetExpenses         = "Expenses"
	SheetSupplierPayments = "Supplier Payments"
	SheetSalaryPayments   = "Salary Payments"
	SheetStaff            = "Staff"
	SheetSummary          = "Summary"
)

type workbookStyles struct {
	header  int
	data    int
	summary int
}

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
}

func newStyles(f *excelize.File) (workbookStyles, error) {
	var st workbookStyles
	var err error

	// 表头样式
	st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
	if err != nil {
		return st, err
	}

	// 数据样式
	st.data, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
	if err != nil {
		return st, err
	}

	// 汇总样式
	st.summary, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
	return st, err
}

// sheetData 单个工作表的内容，total 非 nil 时追加合计行
type sheetData struct {
	name   string
	header []string
	rows   [][]any
	total  *decimal.Decimal
	// totalCol 合计金额所在列（从 1 开始）
	totalCol int
}

// BuildWorkbook 生成 Excel 报表，每个分节一个工作表，最后一个为汇总
// 调用方负责 Close
func BuildWorkbook(snap store.Snapshot, generatedAt time.Time) (*excelize.File, error) {
	f := excelize.NewFile()
	styles, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("创建样式失败: %w", err)
	}

	sheets := []sheetData{
		salesSheet(snap),
		expensesSheet(snap),
		supplierSheet(snap),
		salarySheet(snap),
		staffSheet(snap),
		summarySheet(snap, generatedAt),
	}
	for i, sd := range sheets {
		if i == 0 {
			err = f.SetSheetName("Sheet1", sd.name)
		} else {
			_, err = f.NewSheet(sd.name)
		}
		if err == nil {
			err = writeSheet(f, sd, styles)
		}
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("写入工作表 %s 失败: %w", sd.name, err)
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeSheet(f *excelize.File, sd sheetData, st workbookStyles) error {
	last, err := excelize.ColumnNumberToName(len(sd.header))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sd.name, "A", last, 18); err != nil {
		return err
	}

	// 写入表头
	if err := f.SetSheetRow(sd.name, "A1", &sd.header); err != nil {
		return err
	}
	if err := f.SetCellStyle(sd.name, "A1", last+"1", st.header); err != nil {
		return err
	}

	// 写入数据
	for i, row := range sd.rows {
		r := i + 2
		if err := f.SetSheetRow(sd.name, fmt.Sprintf("A%d", r), &row); err != nil {
			return err
		}
		if err := f.SetCellStyle(sd.name, fmt.Sprintf("A%d", r), fmt.Sprintf("%s%d", last, r), st.data); err != nil {
			return err
		}
	}

	if sd.total == nil {
		return nil
	}

	// 添加汇总行
	r := len(sd.rows) + 2
	totalCell, err := excelize.CoordinatesToCellName(sd.totalCol, r)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sd.name, fmt.Sprintf("A%d", r), "Total"); err != nil {
		return err
	}
	if err := f.SetCellValue(sd.name, totalCell, sd.total.InexactFloat64()); err != nil {
		return err
	}
	if err := f.SetCellValue(sd.name, fmt.Sprintf("%s%d", last, r), fmt.Sprintf("%d records", len(sd.rows))); err != nil {
		return err
	}
	return f.SetCellStyle(sd.name, fmt.Sprintf("A%d", r), fmt.Sprintf("%s%d", last, r), st.summary)
}

func num(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func salesSheet(snap store.Snapshot) sheetData {
	sd := sheetData{name: SheetSales, header: salesHeader, totalCol: 9}
	total := decimal.Zero
	for _, s := range snap.Sales {
		sd.rows = append(sd.rows, []any{
			s.ID, s.Date.String(), s.Agency, s.Supplier, s.National, s.PassportNumber, s.Service,
			num(s.NetRate), num(s.SalesRate), num(s.Profit), snap.StatusOf(models.KindSale, s.ID), s.Comment,
		})
		total = total.Add(s.SalesRate)
	}
	sd.total = &total
	return sd
}

func expensesSheet(snap store.Snapshot) sheetData {
	sd := sheetData{name: SheetExpenses, header: expensesHeader, totalCol: 4}
	total := decimal.Zero
	for _, e := range snap.Expenses {
		sd.rows = append(sd.rows, []any{
			e.ID, e.Date.String(), e.Category.Name(), num(e.Amount), string(e.Type),
			snap.StatusOf(models.KindExpense, e.ID), e.Description,
		})
		total = total.Add(e.Amount)
	}
	sd.total = &total
	return sd
}

func supplierSheet(snap store.Snapshot) sheetData {
	sd := sheetData{name: SheetSupplierPayments, header: supplierHeader, totalCol: 4}
	total := decimal.Zero
	for _, p := range snap.SupplierPayments {
		sd.rows = append(sd.rows, []any{
			p.ID, p.Date.String(), p.SupplierName, num(p.Amount), snap.StatusOf(models.KindSupplier, p.ID),
		})
		total = total.Add(p.Amount)
	}
	sd.total = &total
	return sd
}

func salarySheet(snap store.Snapshot) sheetData {
	sd := sheetData{name: SheetSalaryPayments, header: salaryHeader, totalCol: 8}
	total := decimal.Zero
	for _, p := range snap.SalaryPayments {
		sd.rows = append(sd.rows, []any{
			p.ID, p.Date.String(), p.StaffName, p.SalaryForMonth,
			num(p.StaffSalary), num(p.AdvanceAmount), num(p.SalaryAmount), num(p.TotalAmount),
			snap.StatusOf(models.KindSalary, p.ID), p.Description,
		})
		total = total.Add(p.TotalAmount)
	}
	sd.total = &total
	return sd
}

func staffSheet(snap store.Snapshot) sheetData {
	sd := sheetData{name: SheetStaff, header: staffHeader}
	for _, m := range snap.StaffMembers {
		sd.rows = append(sd.rows, []any{
			m.ID, m.StaffID, m.Name, m.Role, m.Phone, m.Email, m.Address,
			m.JoinDate.String(), num(m.Salary), snap.StatusOf(models.KindStaff, m.ID),
		})
	}
	return sd
}

func summarySheet(snap store.Snapshot, generatedAt time.Time) sheetData {
	sd := sheetData{name: SheetSummary, header: summaryHeader}
	for _, line := range summaryLines(snap, generatedAt) {
		sd.rows = append(sd.rows, []any{line[0], line[1]})
	}
	return sd
}
