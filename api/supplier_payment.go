package api

import (
	"encoding/json"

	"agencybooks/models"
	"agencybooks/store"

	"github.com/gin-gonic/gin"
)

// SupplierPaymentHandler 供应商付款处理器
type SupplierPaymentHandler struct {
	store *store.Store
}

// NewSupplierPaymentHandler 创建供应商付款处理器
func NewSupplierPaymentHandler(s *store.Store) *SupplierPaymentHandler {
	return &SupplierPaymentHandler{store: s}
}

// SupplierPaymentRequest 供应商付款请求
type SupplierPaymentRequest struct {
	SupplierName string      `json:"supplierName" binding:"required" example:"Air Co"`
	Amount       json.Number `json:"amount" binding:"required" swaggertype:"string" example:"500"`
	Date         string      `json:"date" binding:"required" example:"2024-01-11"`
	Receipt      string      `json:"receipt"`
}

func (r SupplierPaymentRequest) input() store.SupplierPaymentInput {
	return store.SupplierPaymentInput{
		SupplierName: r.SupplierName,
		Amount:       r.Amount.String(),
		Date:         r.Date,
		Receipt:      r.Receipt,
	}
}

// List 供应商付款列表
// @Summary 供应商付款列表
// @Tags 供应商付款
// @Produce json
// @Success 200 {object} Response{data=ListResponse{list=[]models.SupplierPayment}}
// @Router /api/v1/supplier-payments [get]
func (h *SupplierPaymentHandler) List(c *gin.Context) {
	payments := h.store.Snapshot().SupplierPayments
	Success(c, ListResponse{Total: len(payments), List: payments})
}

// Get 获取单条供应商付款
// @Summary 获取供应商付款
// @Tags 供应商付款
// @Produce json
// @Param id path int true "付款ID"
// @Success 200 {object} Response{data=models.SupplierPayment}
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/supplier-payments/{id} [get]
func (h *SupplierPaymentHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	payment, found := findByID(h.store.Snapshot().SupplierPayments, func(p models.SupplierPayment) int { return p.ID }, id)
	if !found {
		NotFound(c, store.ErrNotFound.Error())
		return
	}
	Success(c, payment)
}

// Create 创建供应商付款
// @Summary 创建供应商付款
// @Tags 供应商付款
// @Accept json
// @Produce json
// @Param request body SupplierPaymentRequest true "付款信息"
// @Success 200 {object} Response{data=models.SupplierPayment} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/supplier-payments [post]
func (h *SupplierPaymentHandler) Create(c *gin.Context) {
	var req SupplierPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	payment, err := h.store.CreateSupplierPayment(c.Request.Context(), req.input())
	if err != nil {
		StoreError(c, err, "创建失败")
		return
	}
	SuccessWithMessage(c, "创建成功", payment)
}

// Update 更新供应商付款
// @Summary 更新供应商付款
// @Tags 供应商付款
// @Accept json
// @Produce json
// @Param id path int true "付款ID"
// @Param request body SupplierPaymentRequest true "付款信息"
// @Success 200 {object} Response{data=models.SupplierPayment} "更新成功"
// @Router /api/v1/supplier-payments/{id} [put]
func (h *SupplierPaymentHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req SupplierPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	payment, err := h.store.UpdateSupplierPayment(c.Request.Context(), id, req.input())
	if err != nil {
		StoreError(c, err, "更新失败")
		return
	}
	SuccessWithMessage(c, "更新成功", payment)
}
