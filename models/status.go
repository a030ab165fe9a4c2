package models

import "fmt"

// Status 记录备注状态
type Status string

// 备注状态常量
const (
	StatusPending     Status = "pending"
	StatusCredited    Status = "credited"
	StatusTransferred Status = "transferred"
	StatusCanceled    Status = "canceled"
	StatusCleared     Status = "cleared"
	StatusOnHold      Status = "on-hold"
)

// NoStatus 未设置状态时的显示文本
const NoStatus = "No Status"

// GetStatuses 获取所有状态
func GetStatuses() []Status {
	return []Status{
		StatusPending,
		StatusCredited,
		StatusTransferred,
		StatusCanceled,
		StatusCleared,
		StatusOnHold,
	}
}

// Valid 是否为合法状态
func (s Status) Valid() bool {
	for _, v := range GetStatuses() {
		if v == s {
			return true
		}
	}
	return false
}

// Kind 记录种类，用于备注 key 与流水分类
type Kind string

// 记录种类常量
const (
	KindExpense  Kind = "expense"
	KindSale     Kind = "sale"
	KindSupplier Kind = "supplier"
	KindStaff    Kind = "staff"
	KindSalary   Kind = "salary"
)

// GetKinds 获取所有记录种类
func GetKinds() []Kind {
	return []Kind{KindExpense, KindSale, KindSupplier, KindStaff, KindSalary}
}

// Valid 是否为合法种类
func (k Kind) Valid() bool {
	for _, v := range GetKinds() {
		if v == k {
			return true
		}
	}
	return false
}

// RemarkKey 备注 key："<kind>_<id>"
func RemarkKey(kind Kind, id int) string {
	return fmt.Sprintf("%s_%d", kind, id)
}
