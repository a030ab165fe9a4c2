package store

import (
	"slices"

	"agencybooks/models"
)

// Snapshot 某一时刻全部记录的副本，供统计与导出使用
type Snapshot struct {
	Expenses         []models.Expense
	Sales            []models.Sale
	SupplierPayments []models.SupplierPayment
	StaffMembers     []models.StaffMember
	SalaryPayments   []models.SalaryPayment
	Remarks          map[string]models.Status
}

// Snapshot 获取当前记录副本
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Expenses:         make([]models.Expense, len(s.expenses)),
		Sales:            make([]models.Sale, len(s.sales)),
		SupplierPayments: slices.Clone(s.supplierPayments),
		StaffMembers:     slices.Clone(s.staffMembers),
		SalaryPayments:   slices.Clone(s.salaryPayments),
		Remarks:          cloneRemarks(s.remarks),
	}
	for i, e := range s.expenses {
		if e.SalaryID != nil {
			id := *e.SalaryID
			e.SalaryID = &id
		}
		snap.Expenses[i] = e
	}
	for i, sale := range s.sales {
		sale.Documents = slices.Clone(sale.Documents)
		snap.Sales[i] = sale
	}
	if snap.SupplierPayments == nil {
		snap.SupplierPayments = []models.SupplierPayment{}
	}
	if snap.StaffMembers == nil {
		snap.StaffMembers = []models.StaffMember{}
	}
	if snap.SalaryPayments == nil {
		snap.SalaryPayments = []models.SalaryPayment{}
	}
	return snap
}

// StatusOf 记录的备注状态，未设置时返回 "No Status"
func (s Snapshot) StatusOf(kind models.Kind, id int) string {
	if status, ok := s.Remarks[models.RemarkKey(kind, id)]; ok {
		return string(status)
	}
	return models.NoStatus
}

// FindStaffMember 按 id 查找员工
func (s Snapshot) FindStaffMember(id int) (models.StaffMember, bool) {
	i := indexOf(s.StaffMembers, staffID, id)
	if i < 0 {
		return models.StaffMember{}, false
	}
	return s.StaffMembers[i], true
}
