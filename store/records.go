package store

import (
	"context"
	"fmt"
	"slices"

	"agencybooks/models"
)

// CreateExpense 新增支出
func (s *Store) CreateExpense(ctx context.Context, in ExpenseInput) (models.Expense, error) {
	var created models.Expense
	err := s.mutate(func(saved *[]string) error {
		expense, err := in.build(nextID(s.expenses, expenseID))
		if err != nil {
			return err
		}
		next := append(slices.Clone(s.expenses), expense)
		if err := s.save(ctx, KeyExpenses, next); err != nil {
			return err
		}
		s.expenses = next
		*saved = append(*saved, KeyExpenses)
		created = expense
		return nil
	})
	return created, err
}

// UpdateExpense 按 id 更新普通支出
// 工资支出跟随工资记录，只能通过 UpdateSalaryPayment 修改
func (s *Store) UpdateExpense(ctx context.Context, id int, in ExpenseInput) (models.Expense, error) {
	var updated models.Expense
	err := s.mutate(func(saved *[]string) error {
		i := indexOf(s.expenses, expenseID, id)
		if i < 0 {
			return fmt.Errorf("支出 %d: %w", id, ErrNotFound)
		}
		if s.expenses[i].IsSalary() {
			return invalid("type", "工资支出请通过工资发放记录修改")
		}
		expense, err := in.build(id)
		if err != nil {
			return err
		}
		expense.Type = s.expenses[i].Type
		expense.SalaryID = s.expenses[i].SalaryID

		next := slices.Clone(s.expenses)
		next[i] = expense
		if err := s.save(ctx, KeyExpenses, next); err != nil {
			return err
		}
		s.expenses = next
		*saved = append(*saved, KeyExpenses)
		updated = expense
		return nil
	})
	return updated, err
}

// CreateSale 新增销售，利润在此时计算并保存
func (s *Store) CreateSale(ctx context.Context, in SaleInput) (models.Sale, error) {
	var created models.Sale
	err := s.mutate(func(saved *[]string) error {
		sale, err := in.build(nextID(s.sales, saleID))
		if err != nil {
			return err
		}
		next := append(slices.Clone(s.sales), sale)
		if err := s.save(ctx, KeySales, next); err != nil {
			return err
		}
		s.sales = next
		*saved = append(*saved, KeySales)
		created = sale
		return nil
	})
	return created, err
}

// UpdateSale 按 id 更新销售，利润按提交的价格重新计算
func (s *Store) UpdateSale(ctx context.Context, id int, in SaleInput) (models.Sale, error) {
	var updated models.Sale
	err := s.mutate(func(saved *[]string) error {
		i := indexOf(s.sales, saleID, id)
		if i < 0 {
			return fmt.Errorf("销售 %d: %w", id, ErrNotFound)
		}
		sale, err := in.build(id)
		if err != nil {
			return err
		}
		next := slices.Clone(s.sales)
		next[i] = sale
		if err := s.save(ctx, KeySales, next); err != nil {
			return err
		}
		s.sales = next
		*saved = append(*saved, KeySales)
		updated = sale
		return nil
	})
	return updated, err
}

// CreateSupplierPayment 新增供应商付款
func (s *Store) CreateSupplierPayment(ctx context.Context, in SupplierPaymentInput) (models.SupplierPayment, error) {
	var created models.SupplierPayment
	err := s.mutate(func(saved *[]string) error {
		payment, err := in.build(nextID(s.supplierPayments, supplierPaymentID))
		if err != nil {
			return err
		}
		next := append(slices.Clone(s.supplierPayments), payment)
		if err := s.save(ctx, KeySupplierPayments, next); err != nil {
			return err
		}
		s.supplierPayments = next
		*saved = append(*saved, KeySupplierPayments)
		created = payment
		return nil
	})
	return created, err
}

// UpdateSupplierPayment 按 id 更新供应商付款
func (s *Store) UpdateSupplierPayment(ctx context.Context, id int, in SupplierPaymentInput) (models.SupplierPayment, error) {
	var updated models.SupplierPayment
	err := s.mutate(func(saved *[]string) error {
		i := indexOf(s.supplierPayments, supplierPaymentID, id)
		if i < 0 {
			return fmt.Errorf("供应商付款 %d: %w", id, ErrNotFound)
		}
		payment, err := in.build(id)
		if err != nil {
			return err
		}
		next := slices.Clone(s.supplierPayments)
		next[i] = payment
		if err := s.save(ctx, KeySupplierPayments, next); err != nil {
			return err
		}
		s.supplierPayments = next
		*saved = append(*saved, KeySupplierPayments)
		updated = payment
		return nil
	})
	return updated, err
}

// CreateStaffMember 新增员工
func (s *Store) CreateStaffMember(ctx context.Context, in StaffInput) (models.StaffMember, error) {
	var created models.StaffMember
	err := s.mutate(func(saved *[]string) error {
		staff, err := in.build(nextID(s.staffMembers, staffID))
		if err != nil {
			return err
		}
		next := append(slices.Clone(s.staffMembers), staff)
		if err := s.save(ctx, KeyStaffMembers, next); err != nil {
			return err
		}
		s.staffMembers = next
		*saved = append(*saved, KeyStaffMembers)
		created = staff
		return nil
	})
	return created, err
}

// UpdateStaffMember 按 id 更新员工，已有工资记录中的快照不变
func (s *Store) UpdateStaffMember(ctx context.Context, id int, in StaffInput) (models.StaffMember, error) {
	var updated models.StaffMember
	err := s.mutate(func(saved *[]string) error {
		i := indexOf(s.staffMembers, staffID, id)
		if i < 0 {
			return fmt.Errorf("员工 %d: %w", id, ErrNotFound)
		}
		staff, err := in.build(id)
		if err != nil {
			return err
		}
		next := slices.Clone(s.staffMembers)
		next[i] = staff
		if err := s.save(ctx, KeyStaffMembers, next); err != nil {
			return err
		}
		s.staffMembers = next
		*saved = append(*saved, KeyStaffMembers)
		updated = staff
		return nil
	})
	return updated, err
}

// DeleteResult 删除员工时级联删除的记录数
type DeleteResult struct {
	SalaryPayments int `json:"salaryPayments"`
	Expenses       int `json:"expenses"`
	Remarks        int `json:"remarks"`
}

// DeleteStaffMember 删除员工，并级联删除其工资记录、对应的工资支出及这些记录的备注
func (s *Store) DeleteStaffMember(ctx context.Context, id int) (DeleteResult, error) {
	var result DeleteResult
	err := s.mutate(func(saved *[]string) error {
		i := indexOf(s.staffMembers, staffID, id)
		if i < 0 {
			return fmt.Errorf("员工 %d: %w", id, ErrNotFound)
		}

		removedSalary := make(map[int]bool)
		payments := make([]models.SalaryPayment, 0, len(s.salaryPayments))
		for _, p := range s.salaryPayments {
			if p.StaffID == id {
				removedSalary[p.ID] = true
				continue
			}
			payments = append(payments, p)
		}

		var removedExpenses []int
		expenses := make([]models.Expense, 0, len(s.expenses))
		for _, e := range s.expenses {
			if e.IsSalary() && e.SalaryID != nil && removedSalary[*e.SalaryID] {
				removedExpenses = append(removedExpenses, e.ID)
				continue
			}
			expenses = append(expenses, e)
		}

		if len(removedSalary) > 0 {
			if err := s.save(ctx, KeySalaryPayments, payments); err != nil {
				return err
			}
			s.salaryPayments = payments
			*saved = append(*saved, KeySalaryPayments)
			result.SalaryPayments = len(removedSalary)
		}
		if len(removedExpenses) > 0 {
			if err := s.save(ctx, KeyExpenses, expenses); err != nil {
				return err
			}
			s.expenses = expenses
			*saved = append(*saved, KeyExpenses)
			result.Expenses = len(removedExpenses)
		}

		staff := slices.Delete(slices.Clone(s.staffMembers), i, i+1)
		if err := s.save(ctx, KeyStaffMembers, staff); err != nil {
			return err
		}
		s.staffMembers = staff
		*saved = append(*saved, KeyStaffMembers)

		keys := []string{models.RemarkKey(models.KindStaff, id)}
		for salaryID := range removedSalary {
			keys = append(keys, models.RemarkKey(models.KindSalary, salaryID))
		}
		for _, eid := range removedExpenses {
			keys = append(keys, models.RemarkKey(models.KindExpense, eid))
		}
		remarks := cloneRemarks(s.remarks)
		for _, k := range keys {
			if _, ok := remarks[k]; ok {
				delete(remarks, k)
				result.Remarks++
			}
		}
		if result.Remarks > 0 {
			if err := s.save(ctx, KeyRemarks, remarks); err != nil {
				return err
			}
			s.remarks = remarks
			*saved = append(*saved, KeyRemarks)
		}
		return nil
	})
	return result, err
}

// CreateSalaryPayment 发放工资，同时生成一条对应的工资支出
func (s *Store) CreateSalaryPayment(ctx context.Context, in SalaryInput) (models.SalaryPayment, error) {
	var created models.SalaryPayment
	err := s.mutate(func(saved *[]string) error {
		i := indexOf(s.staffMembers, staffID, in.StaffID)
		if i < 0 {
			return fmt.Errorf("员工 %d: %w", in.StaffID, ErrStaffNotFound)
		}
		payment, err := in.build(nextID(s.salaryPayments, salaryPaymentID), s.staffMembers[i])
		if err != nil {
			return err
		}

		payments := append(slices.Clone(s.salaryPayments), payment)
		if err := s.save(ctx, KeySalaryPayments, payments); err != nil {
			return err
		}
		s.salaryPayments = payments
		*saved = append(*saved, KeySalaryPayments)

		expenses := append(slices.Clone(s.expenses), companionExpense(nextID(s.expenses, expenseID), payment))
		if err := s.save(ctx, KeyExpenses, expenses); err != nil {
			return err
		}
		s.expenses = expenses
		*saved = append(*saved, KeyExpenses)

		created = payment
		return nil
	})
	return created, err
}

// UpdateSalaryPayment 按 id 更新工资记录
// 不会新建工资支出；已有的对应支出同步金额、日期与描述
func (s *Store) UpdateSalaryPayment(ctx context.Context, id int, in SalaryInput) (models.SalaryPayment, error) {
	var updated models.SalaryPayment
	err := s.mutate(func(saved *[]string) error {
		i := indexOf(s.salaryPayments, salaryPaymentID, id)
		if i < 0 {
			return fmt.Errorf("工资记录 %d: %w", id, ErrNotFound)
		}
		si := indexOf(s.staffMembers, staffID, in.StaffID)
		if si < 0 {
			return fmt.Errorf("员工 %d: %w", in.StaffID, ErrStaffNotFound)
		}
		payment, err := in.build(id, s.staffMembers[si])
		if err != nil {
			return err
		}

		payments := slices.Clone(s.salaryPayments)
		payments[i] = payment
		if err := s.save(ctx, KeySalaryPayments, payments); err != nil {
			return err
		}
		s.salaryPayments = payments
		*saved = append(*saved, KeySalaryPayments)

		ei := slices.IndexFunc(s.expenses, func(e models.Expense) bool {
			return e.IsSalary() && e.SalaryID != nil && *e.SalaryID == id
		})
		if ei >= 0 {
			expenses := slices.Clone(s.expenses)
			companion := companionExpense(expenses[ei].ID, payment)
			companion.Receipt = expenses[ei].Receipt
			expenses[ei] = companion
			if err := s.save(ctx, KeyExpenses, expenses); err != nil {
				return err
			}
			s.expenses = expenses
			*saved = append(*saved, KeyExpenses)
		}

		updated = payment
		return nil
	})
	return updated, err
}

// companionExpense 工资发放对应的支出记录
func companionExpense(id int, p models.SalaryPayment) models.Expense {
	salaryID := p.ID
	return models.Expense{
		ID:          id,
		Category:    models.Known(models.CategorySalary),
		Amount:      p.TotalAmount,
		Date:        p.Date,
		Description: fmt.Sprintf("Salary payment - %s (%s)", p.StaffName, p.SalaryForMonth),
		Receipt:     p.Receipt,
		Type:        models.ExpenseTypeSalary,
		SalaryID:    &salaryID,
	}
}

// SetRemark 设置记录的备注状态，不校验记录是否存在
func (s *Store) SetRemark(ctx context.Context, kind models.Kind, id int, status models.Status) error {
	if !kind.Valid() {
		return invalid("kind", fmt.Sprintf("无效的记录类型: %s", kind))
	}
	if !status.Valid() {
		return invalid("status", fmt.Sprintf("无效的状态: %s", status))
	}
	return s.mutate(func(saved *[]string) error {
		remarks := cloneRemarks(s.remarks)
		remarks[models.RemarkKey(kind, id)] = status
		if err := s.save(ctx, KeyRemarks, remarks); err != nil {
			return err
		}
		s.remarks = remarks
		*saved = append(*saved, KeyRemarks)
		return nil
	})
}

// ClearRemark 清除记录的备注状态
func (s *Store) ClearRemark(ctx context.Context, kind models.Kind, id int) error {
	return s.mutate(func(saved *[]string) error {
		key := models.RemarkKey(kind, id)
		if _, ok := s.remarks[key]; !ok {
			return nil
		}
		remarks := cloneRemarks(s.remarks)
		delete(remarks, key)
		if err := s.save(ctx, KeyRemarks, remarks); err != nil {
			return err
		}
		s.remarks = remarks
		*saved = append(*saved, KeyRemarks)
		return nil
	})
}

// Remark 查询记录的备注状态
func (s *Store) Remark(kind models.Kind, id int) (models.Status, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	status, ok := s.remarks[models.RemarkKey(kind, id)]
	return status, ok
}

// Remarks 全部备注状态的副本
func (s *Store) Remarks() map[string]models.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRemarks(s.remarks)
}

func cloneRemarks(src map[string]models.Status) map[string]models.Status {
	dst := make(map[string]models.Status, len(src)+1)
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
