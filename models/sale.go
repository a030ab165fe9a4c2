package models

import (
	"github.com/shopspring/decimal"
)

// Sale 销售记录
// Profit 在录入时按 SalesRate - NetRate 计算后保存
type Sale struct {
	ID             int             `json:"id"`
	Agency         string          `json:"agency"`
	Supplier       string          `json:"supplier"`
	National       string          `json:"national"`
	PassportNumber string          `json:"passportNumber"`
	Service        string          `json:"service"`
	NetRate        decimal.Decimal `json:"netRate"`
	SalesRate      decimal.Decimal `json:"salesRate"`
	Profit         decimal.Decimal `json:"profit"`
	Comment        string          `json:"comment,omitempty"`
	Date           Date            `json:"date"`
	Documents      []string        `json:"documents"`
}
