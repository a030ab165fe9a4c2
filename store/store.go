// Package store 维护五类业务记录与备注状态，每次变更先持久化再通知订阅者。
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"agencybooks/models"
)

// 持久化 key
const (
	KeyExpenses         = "expenses"
	KeySales            = "sales"
	KeySupplierPayments = "supplierPayments"
	KeyStaffMembers     = "staffMembers"
	KeySalaryPayments   = "salaryPayments"
	KeyRemarks          = "remarks"
	KeyCurrentPage      = "currentPage"
)

// KV 持久化键值存储
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

var (
	// ErrValidation 表单校验失败，未做任何修改
	ErrValidation = errors.New("表单校验失败")
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("记录不存在")
	// ErrStaffNotFound 工资发放引用的员工不存在
	ErrStaffNotFound = errors.New("员工不存在")
)

// ValidationError 字段校验错误
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// Change 一次变更中已持久化的集合 key
type Change struct {
	Keys []string
}

// Store 记录存储
type Store struct {
	kv KV

	mu               sync.RWMutex
	expenses         []models.Expense
	sales            []models.Sale
	supplierPayments []models.SupplierPayment
	staffMembers     []models.StaffMember
	salaryPayments   []models.SalaryPayment
	remarks          map[string]models.Status
	currentPage      string

	listenerMu sync.Mutex
	listeners  []func(Change)
}

// New 创建记录存储，需调用 Load 读取已有数据
func New(kv KV) *Store {
	return &Store{
		kv:      kv,
		remarks: make(map[string]models.Status),
	}
}

// Load 读取全部集合
// 键不存在或内容无法解析时该集合置空，仅存储后端错误会返回
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expenses, s.sales, s.supplierPayments = nil, nil, nil
	s.staffMembers, s.salaryPayments = nil, nil
	s.remarks = nil

	if err := s.loadJSON(ctx, KeyExpenses, &s.expenses); err != nil {
		return err
	}
	if err := s.loadJSON(ctx, KeySales, &s.sales); err != nil {
		return err
	}
	if err := s.loadJSON(ctx, KeySupplierPayments, &s.supplierPayments); err != nil {
		return err
	}
	if err := s.loadJSON(ctx, KeyStaffMembers, &s.staffMembers); err != nil {
		return err
	}
	if err := s.loadJSON(ctx, KeySalaryPayments, &s.salaryPayments); err != nil {
		return err
	}
	if err := s.loadJSON(ctx, KeyRemarks, &s.remarks); err != nil {
		return err
	}
	if s.remarks == nil {
		s.remarks = make(map[string]models.Status)
	}

	page, ok, err := s.kv.Get(ctx, KeyCurrentPage)
	if err != nil {
		return err
	}
	if ok {
		s.currentPage = page
	}

	log.Printf("已加载记录: 支出 %d, 销售 %d, 供应商付款 %d, 员工 %d, 工资 %d, 备注 %d",
		len(s.expenses), len(s.sales), len(s.supplierPayments),
		len(s.staffMembers), len(s.salaryPayments), len(s.remarks))
	return nil
}

func (s *Store) loadJSON(ctx context.Context, key string, dst any) error {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return err
	}
	if !ok || raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		log.Printf("警告: %s 数据无法解析，已重置为空: %v", key, err)
		resetEmpty(dst)
	}
	return nil
}

// resetEmpty 丢弃解析到一半的数据
func resetEmpty(dst any) {
	switch v := dst.(type) {
	case *[]models.Expense:
		*v = nil
	case *[]models.Sale:
		*v = nil
	case *[]models.SupplierPayment:
		*v = nil
	case *[]models.StaffMember:
		*v = nil
	case *[]models.SalaryPayment:
		*v = nil
	case *map[string]models.Status:
		*v = make(map[string]models.Status)
	}
}

// Subscribe 订阅变更，回调在数据持久化之后执行
func (s *Store) Subscribe(fn func(Change)) {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify(change Change) {
	s.listenerMu.Lock()
	listeners := append([]func(Change){}, s.listeners...)
	s.listenerMu.Unlock()
	for _, fn := range listeners {
		fn(change)
	}
}

// mutate 在写锁内执行变更，返回已持久化的 key 并在解锁后通知
// 多个集合依次写入，中途失败时已写入的集合保持新状态
func (s *Store) mutate(fn func(saved *[]string) error) error {
	var saved []string
	s.mu.Lock()
	err := fn(&saved)
	s.mu.Unlock()
	if len(saved) > 0 {
		s.notify(Change{Keys: saved})
	}
	return err
}

func (s *Store) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("序列化 %s 失败: %w", key, err)
	}
	return s.kv.Set(ctx, key, string(data))
}

// nextID 最大 id + 1，空集合为 1
func nextID[T any](items []T, id func(T) int) int {
	maxID := 0
	for _, item := range items {
		if v := id(item); v > maxID {
			maxID = v
		}
	}
	return maxID + 1
}

func indexOf[T any](items []T, id func(T) int, want int) int {
	for i, item := range items {
		if id(item) == want {
			return i
		}
	}
	return -1
}

func expenseID(e models.Expense) int { return e.ID }
func saleID(e models.Sale) int { return e.ID }
func supplierPaymentID(e models.SupplierPayment) int { return e.ID }
func staffID(e models.StaffMember) int { return e.ID }
func salaryPaymentID(e models.SalaryPayment) int { return e.ID }

// LastPage 最近浏览的页面
func (s *Store) LastPage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentPage
}

// SetLastPage 记录最近浏览的页面
func (s *Store) SetLastPage(ctx context.Context, page string) error {
	return s.mutate(func(saved *[]string) error {
		if err := s.kv.Set(ctx, KeyCurrentPage, page); err != nil {
			return err
		}
		s.currentPage = page
		*saved = append(*saved, KeyCurrentPage)
		return nil
	})
}
