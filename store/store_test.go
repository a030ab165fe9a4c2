package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"agencybooks/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memKV 内存键值存储
type memKV struct {
	mu      sync.Mutex
	data    map[string]string
	failOn  string
	setKeys []string
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string]string)}
}

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if key == m.failOn {
		return errors.New("disk full")
	}
	m.data[key] = value
	m.setKeys = append(m.setKeys, key)
	return nil
}

func newTestStore(t *testing.T) (*Store, *memKV) {
	t.Helper()
	kv := newMemKV()
	s := New(kv)
	require.NoError(t, s.Load(context.Background()))
	return s, kv
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCreateExpense_AssignsNextID(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	e1, err := s.CreateExpense(ctx, ExpenseInput{Category: models.CategoryUtilities, Amount: "40", Date: "2024-01-10"})
	require.NoError(t, err)
	assert.Equal(t, 1, e1.ID)
	assert.Equal(t, models.ExpenseTypeGeneral, e1.Type)

	e2, err := s.CreateExpense(ctx, ExpenseInput{Category: models.CategoryOther, OtherCategory: "Visa fees", Amount: "12.50", Date: "2024-01-11"})
	require.NoError(t, err)
	assert.Equal(t, 2, e2.ID)
	assert.True(t, e2.Category.IsCustom())
	assert.Equal(t, "Visa fees", e2.Category.Name())

	assert.Contains(t, kv.data[KeyExpenses], `"Visa fees"`)
}

func TestNextID_UsesMaxNotLength(t *testing.T) {
	kv := newMemKV()
	kv.data[KeySales] = `[{"id":7,"agency":"A","supplier":"S","service":"Visa","netRate":"1","salesRate":"2","profit":"1","date":"2024-01-01","documents":[]},
		{"id":3,"agency":"A","supplier":"S","service":"Visa","netRate":"1","salesRate":"2","profit":"1","date":"2024-01-01","documents":[]}]`
	s := New(kv)
	require.NoError(t, s.Load(context.Background()))

	sale, err := s.CreateSale(context.Background(), SaleInput{
		Agency: "Blue Sky", Supplier: "Emirates", Service: "Ticket",
		NetRate: "100", SalesRate: "150", Date: "2024-01-10",
	})
	require.NoError(t, err)
	assert.Equal(t, 8, sale.ID)
}

func TestCreateExpense_Validation(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	cases := []ExpenseInput{
		{Category: models.CategoryUtilities, Amount: "abc", Date: "2024-01-10"},
		{Category: models.CategoryUtilities, Amount: "0", Date: "2024-01-10"},
		{Category: models.CategoryUtilities, Amount: "-5", Date: "2024-01-10"},
		{Category: models.CategoryOther, Amount: "5", Date: "2024-01-10"},
		{Category: "", Amount: "5", Date: "2024-01-10"},
		{Category: models.CategoryUtilities, Amount: "5", Date: "10/01/2024"},
	}
	for i, in := range cases {
		_, err := s.CreateExpense(ctx, in)
		assert.ErrorIs(t, err, ErrValidation, "case %d", i)
	}
	assert.Empty(t, s.Snapshot().Expenses)
	assert.Empty(t, kv.setKeys)
}

func TestCreateSale_ComputesProfit(t *testing.T) {
	s, _ := newTestStore(t)
	sale, err := s.CreateSale(context.Background(), SaleInput{
		Agency: "Blue Sky", Supplier: "Emirates", Service: "Ticket",
		NetRate: "100", SalesRate: "150", Date: "2024-01-10",
		Documents: []string{"passport.pdf"},
	})
	require.NoError(t, err)
	assert.True(t, sale.Profit.Equal(dec("50")))

	updated, err := s.UpdateSale(context.Background(), sale.ID, SaleInput{
		Agency: "Blue Sky", Supplier: "Emirates", Service: "Ticket",
		NetRate: "100", SalesRate: "180", Date: "2024-01-10",
	})
	require.NoError(t, err)
	assert.True(t, updated.Profit.Equal(dec("80")))
	assert.Len(t, s.Snapshot().Sales, 1)
}

func TestUpdate_NotFound(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.UpdateExpense(ctx, 9, ExpenseInput{Category: models.CategoryUtilities, Amount: "1", Date: "2024-01-10"})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.UpdateSupplierPayment(ctx, 9, SupplierPaymentInput{SupplierName: "X", Amount: "1", Date: "2024-01-10"})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.UpdateStaffMember(ctx, 9, StaffInput{})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.DeleteStaffMember(ctx, 9)
	assert.ErrorIs(t, err, ErrNotFound)
}

func createStaff(t *testing.T, s *Store, salary string) models.StaffMember {
	t.Helper()
	staff, err := s.CreateStaffMember(context.Background(), StaffInput{
		Name: "Amina", StaffID: "EMP-001", Role: "Agent",
		JoinDate: "2023-06-01", Salary: salary,
	})
	require.NoError(t, err)
	return staff
}

func TestCreateSalaryPayment_CreatesCompanionExpense(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	staff := createStaff(t, s, "2000")

	payment, err := s.CreateSalaryPayment(ctx, SalaryInput{
		StaffID: staff.ID, AdvanceAmount: "500", Date: "2024-01-31", SalaryForMonth: "2024-01",
	})
	require.NoError(t, err)
	assert.True(t, payment.SalaryAmount.Equal(dec("1500")))
	assert.True(t, payment.TotalAmount.Equal(dec("2000")))
	assert.Equal(t, "Amina", payment.StaffName)

	snap := s.Snapshot()
	require.Len(t, snap.Expenses, 1)
	companion := snap.Expenses[0]
	assert.Equal(t, models.ExpenseTypeSalary, companion.Type)
	assert.True(t, companion.Amount.Equal(payment.TotalAmount))
	require.NotNil(t, companion.SalaryID)
	assert.Equal(t, payment.ID, *companion.SalaryID)
	assert.Equal(t, models.CategorySalary, companion.Category.Name())
}

func TestCreateSalaryPayment_StaffNotFound(t *testing.T) {
	s, kv := newTestStore(t)
	_, err := s.CreateSalaryPayment(context.Background(), SalaryInput{
		StaffID: 42, Date: "2024-01-31", SalaryForMonth: "2024-01",
	})
	assert.ErrorIs(t, err, ErrStaffNotFound)
	assert.Empty(t, kv.setKeys)
}

func TestCreateSalaryPayment_AdvanceExceedsSalary(t *testing.T) {
	s, _ := newTestStore(t)
	staff := createStaff(t, s, "1000")
	_, err := s.CreateSalaryPayment(context.Background(), SalaryInput{
		StaffID: staff.ID, AdvanceAmount: "1200", Date: "2024-01-31", SalaryForMonth: "2024-01",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateSalaryPayment_KeepsSingleCompanion(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	staff := createStaff(t, s, "2000")
	payment, err := s.CreateSalaryPayment(ctx, SalaryInput{
		StaffID: staff.ID, Date: "2024-01-31", SalaryForMonth: "2024-01",
	})
	require.NoError(t, err)

	updated, err := s.UpdateSalaryPayment(ctx, payment.ID, SalaryInput{
		StaffID: staff.ID, AdvanceAmount: "200", SalaryAmount: "2100", Date: "2024-02-01", SalaryForMonth: "2024-01",
	})
	require.NoError(t, err)
	assert.True(t, updated.TotalAmount.Equal(dec("2300")))

	snap := s.Snapshot()
	require.Len(t, snap.Expenses, 1)
	assert.True(t, snap.Expenses[0].Amount.Equal(dec("2300")))
	assert.Equal(t, "2024-02-01", snap.Expenses[0].Date.String())
}

func TestDeleteStaffMember_Cascades(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	staff := createStaff(t, s, "2000")
	other, err := s.CreateStaffMember(ctx, StaffInput{
		Name: "Omar", StaffID: "EMP-002", Role: "Driver", JoinDate: "2023-07-01", Salary: "1500",
	})
	require.NoError(t, err)

	general, err := s.CreateExpense(ctx, ExpenseInput{Category: models.CategoryMarketing, Amount: "99", Date: "2024-01-05"})
	require.NoError(t, err)
	p1, err := s.CreateSalaryPayment(ctx, SalaryInput{StaffID: staff.ID, Date: "2024-01-31", SalaryForMonth: "2024-01"})
	require.NoError(t, err)
	_, err = s.CreateSalaryPayment(ctx, SalaryInput{StaffID: staff.ID, Date: "2024-02-29", SalaryForMonth: "2024-02"})
	require.NoError(t, err)
	kept, err := s.CreateSalaryPayment(ctx, SalaryInput{StaffID: other.ID, Date: "2024-01-31", SalaryForMonth: "2024-01"})
	require.NoError(t, err)

	require.NoError(t, s.SetRemark(ctx, models.KindSalary, p1.ID, models.StatusCleared))
	require.NoError(t, s.SetRemark(ctx, models.KindExpense, general.ID, models.StatusPending))

	result, err := s.DeleteStaffMember(ctx, staff.ID)
	require.NoError(t, err)
	assert.Equal(t, DeleteResult{SalaryPayments: 2, Expenses: 2, Remarks: 1}, result)

	snap := s.Snapshot()
	require.Len(t, snap.StaffMembers, 1)
	assert.Equal(t, other.ID, snap.StaffMembers[0].ID)
	require.Len(t, snap.SalaryPayments, 1)
	assert.Equal(t, kept.ID, snap.SalaryPayments[0].ID)
	require.Len(t, snap.Expenses, 2)
	assert.Equal(t, general.ID, snap.Expenses[0].ID)
	assert.Equal(t, kept.ID, *snap.Expenses[1].SalaryID)
	assert.Equal(t, string(models.StatusPending), snap.StatusOf(models.KindExpense, general.ID))
	assert.Equal(t, models.NoStatus, snap.StatusOf(models.KindSalary, p1.ID))
}

func TestRemarks(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetRemark(ctx, models.KindSale, 3, models.StatusOnHold))
	status, ok := s.Remark(models.KindSale, 3)
	assert.True(t, ok)
	assert.Equal(t, models.StatusOnHold, status)
	assert.JSONEq(t, `{"sale_3":"on-hold"}`, kv.data[KeyRemarks])
	assert.Equal(t, map[string]models.Status{"sale_3": models.StatusOnHold}, s.Remarks())

	assert.ErrorIs(t, s.SetRemark(ctx, models.KindSale, 3, "lost"), ErrValidation)
	assert.ErrorIs(t, s.SetRemark(ctx, "invoice", 3, models.StatusCleared), ErrValidation)

	require.NoError(t, s.ClearRemark(ctx, models.KindSale, 3))
	_, ok = s.Remark(models.KindSale, 3)
	assert.False(t, ok)
}

func TestLoad_RoundTrip(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()
	staff := createStaff(t, s, "2000")
	_, err := s.CreateSalaryPayment(ctx, SalaryInput{StaffID: staff.ID, AdvanceAmount: "500", Date: "2024-01-31", SalaryForMonth: "2024-01"})
	require.NoError(t, err)
	_, err = s.CreateExpense(ctx, ExpenseInput{Category: models.CategoryOther, OtherCategory: "Visa fees", Amount: "12.5", Date: "2024-01-11", Description: `He said "ok"`})
	require.NoError(t, err)
	_, err = s.CreateSale(ctx, SaleInput{Agency: "A", Supplier: "S", Service: "Umrah", NetRate: "100", SalesRate: "150", Date: "2024-01-10", Documents: []string{"a.pdf", "b.pdf"}})
	require.NoError(t, err)
	_, err = s.CreateSupplierPayment(ctx, SupplierPaymentInput{SupplierName: "Emirates", Amount: "300", Date: "2024-01-12"})
	require.NoError(t, err)
	require.NoError(t, s.SetRemark(ctx, models.KindSale, 1, models.StatusCredited))
	require.NoError(t, s.SetLastPage(ctx, "sales"))

	reloaded := New(kv)
	require.NoError(t, reloaded.Load(ctx))

	before, err := json.Marshal(s.Snapshot())
	require.NoError(t, err)
	after, err := json.Marshal(reloaded.Snapshot())
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
	assert.Len(t, reloaded.Snapshot().Expenses, 2)
	assert.Equal(t, "sales", reloaded.LastPage())
}

func TestUpdateExpense_RejectsSalaryCompanion(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()
	staff := createStaff(t, s, "2000")
	payment, err := s.CreateSalaryPayment(ctx, SalaryInput{
		StaffID: staff.ID, AdvanceAmount: "500", Date: "2024-01-31", SalaryForMonth: "2024-01",
	})
	require.NoError(t, err)
	companion := s.Snapshot().Expenses[0]
	kv.setKeys = nil

	_, err = s.UpdateExpense(ctx, companion.ID, ExpenseInput{
		Category: models.CategoryMarketing, Amount: "1", Date: "2024-02-01",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "type", verr.Field)
	assert.Empty(t, kv.setKeys)

	// 工资支出仍与工资记录一致
	got := s.Snapshot().Expenses[0]
	assert.True(t, got.Amount.Equal(payment.TotalAmount))
	assert.Equal(t, models.CategorySalary, got.Category.Name())
	assert.Equal(t, "2024-01-31", got.Date.String())
}

func TestLoad_RoundTrip_OtherNamingPreset(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()
	created, err := s.CreateExpense(ctx, ExpenseInput{
		Category: models.CategoryOther, OtherCategory: " Marketing ", Amount: "20", Date: "2024-01-11",
	})
	require.NoError(t, err)
	assert.False(t, created.Category.IsCustom())

	reloaded := New(kv)
	require.NoError(t, reloaded.Load(ctx))
	after := reloaded.Snapshot().Expenses
	require.Len(t, after, 1)
	assert.Equal(t, created.Category, after[0].Category)
	assert.True(t, created.Amount.Equal(after[0].Amount))
	assert.True(t, created.Date.SameDay(after[0].Date))
}

func TestLoad_CorruptEntriesDefaultToEmpty(t *testing.T) {
	kv := newMemKV()
	kv.data[KeyExpenses] = `{not json`
	kv.data[KeyRemarks] = `[1,2,3]`
	kv.data[KeyStaffMembers] = `null`
	kv.data[KeySupplierPayments] = `[{"id":1,"supplierName":"X","amount":"10","date":"2024-01-01"}]`

	s := New(kv)
	require.NoError(t, s.Load(context.Background()))

	snap := s.Snapshot()
	assert.Empty(t, snap.Expenses)
	assert.Empty(t, snap.StaffMembers)
	assert.Empty(t, snap.Remarks)
	require.Len(t, snap.SupplierPayments, 1)

	// 重置后的集合可以正常写入
	e, err := s.CreateExpense(context.Background(), ExpenseInput{Category: models.CategoryUtilities, Amount: "1", Date: "2024-01-01"})
	require.NoError(t, err)
	assert.Equal(t, 1, e.ID)
}

func TestPersistFailure_LeavesMemoryUntouched(t *testing.T) {
	s, kv := newTestStore(t)
	kv.failOn = KeyExpenses

	_, err := s.CreateExpense(context.Background(), ExpenseInput{Category: models.CategoryUtilities, Amount: "1", Date: "2024-01-01"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Empty(t, s.Snapshot().Expenses)
}

func TestSubscribe_NotifiedAfterPersist(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()
	staff := createStaff(t, s, "2000")

	var changes []Change
	s.Subscribe(func(c Change) {
		// 回调中可以读取最新快照
		_, persisted := kv.data[KeyExpenses]
		assert.True(t, persisted)
		assert.NotEmpty(t, s.Snapshot().Expenses)
		changes = append(changes, c)
	})

	_, err := s.CreateSalaryPayment(ctx, SalaryInput{StaffID: staff.ID, Date: "2024-01-31", SalaryForMonth: "2024-01"})
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, []string{KeySalaryPayments, KeyExpenses}, changes[0].Keys)
}
