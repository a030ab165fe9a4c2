package api

import (
	"encoding/json"

	"agencybooks/models"
	"agencybooks/stats"
	"agencybooks/store"

	"github.com/gin-gonic/gin"
)

// SaleHandler 销售处理器
type SaleHandler struct {
	store *store.Store
}

// NewSaleHandler 创建销售处理器
func NewSaleHandler(s *store.Store) *SaleHandler {
	return &SaleHandler{store: s}
}

// SaleRequest 销售请求，利润由服务端按 salesRate - netRate 计算
type SaleRequest struct {
	Agency         string      `json:"agency" binding:"required" example:"Sky Travel"`
	Supplier       string      `json:"supplier" binding:"required" example:"Air Co"`
	National       string      `json:"national" example:"PT"`
	PassportNumber string      `json:"passportNumber" example:"P1234567"`
	Service        string      `json:"service" binding:"required" example:"Ticket"`
	NetRate        json.Number `json:"netRate" binding:"required" swaggertype:"string" example:"100"`
	SalesRate      json.Number `json:"salesRate" binding:"required" swaggertype:"string" example:"150"`
	Comment        string      `json:"comment"`
	Date           string      `json:"date" binding:"required" example:"2024-01-10"`
	Documents      []string    `json:"documents"`
}

func (r SaleRequest) input() store.SaleInput {
	return store.SaleInput{
		Agency:         r.Agency,
		Supplier:       r.Supplier,
		National:       r.National,
		PassportNumber: r.PassportNumber,
		Service:        r.Service,
		NetRate:        r.NetRate.String(),
		SalesRate:      r.SalesRate.String(),
		Comment:        r.Comment,
		Date:           r.Date,
		Documents:      r.Documents,
	}
}

// List 销售列表
// @Summary 销售列表
// @Tags 销售
// @Produce json
// @Param month query string false "月份 (2024-01)"
// @Success 200 {object} Response{data=ListResponse{list=[]models.Sale}}
// @Router /api/v1/sales [get]
func (h *SaleHandler) List(c *gin.Context) {
	month, year, byMonth, ok := parseMonthQuery(c)
	if !ok {
		return
	}
	sales := h.store.Snapshot().Sales
	if byMonth {
		sales = stats.MonthFilter(sales, func(s models.Sale) models.Date { return s.Date }, month, year)
	}
	if sales == nil {
		sales = []models.Sale{}
	}
	Success(c, ListResponse{Total: len(sales), List: sales})
}

// Get 获取单条销售
// @Summary 获取销售
// @Tags 销售
// @Produce json
// @Param id path int true "销售ID"
// @Success 200 {object} Response{data=models.Sale}
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/sales/{id} [get]
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	sale, found := findByID(h.store.Snapshot().Sales, func(s models.Sale) int { return s.ID }, id)
	if !found {
		NotFound(c, store.ErrNotFound.Error())
		return
	}
	Success(c, sale)
}

// Create 创建销售
// @Summary 创建销售
// @Tags 销售
// @Accept json
// @Produce json
// @Param request body SaleRequest true "销售信息"
// @Success 200 {object} Response{data=models.Sale} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/sales [post]
func (h *SaleHandler) Create(c *gin.Context) {
	var req SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	sale, err := h.store.CreateSale(c.Request.Context(), req.input())
	if err != nil {
		StoreError(c, err, "创建失败")
		return
	}
	SuccessWithMessage(c, "创建成功", sale)
}

// Update 更新销售，利润按提交的价格重新计算
// @Summary 更新销售
// @Tags 销售
// @Accept json
// @Produce json
// @Param id path int true "销售ID"
// @Param request body SaleRequest true "销售信息"
// @Success 200 {object} Response{data=models.Sale} "更新成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/sales/{id} [put]
func (h *SaleHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	sale, err := h.store.UpdateSale(c.Request.Context(), id, req.input())
	if err != nil {
		StoreError(c, err, "更新失败")
		return
	}
	SuccessWithMessage(c, "更新成功", sale)
}
