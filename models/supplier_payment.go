package models

import (
	"github.com/shopspring/decimal"
)

// SupplierPayment 供应商付款
type SupplierPayment struct {
	ID           int             `json:"id"`
	SupplierName string          `json:"supplierName"`
	Amount       decimal.Decimal `json:"amount"`
	Date         Date            `json:"date"`
	Receipt      string          `json:"receipt,omitempty"`
}
