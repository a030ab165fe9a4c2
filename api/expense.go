package api

import (
	"encoding/json"

	"agencybooks/models"
	"agencybooks/stats"
	"agencybooks/store"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler 支出处理器
type ExpenseHandler struct {
	store *store.Store
}

// NewExpenseHandler 创建支出处理器
func NewExpenseHandler(s *store.Store) *ExpenseHandler {
	return &ExpenseHandler{store: s}
}

// ExpenseRequest 支出请求
type ExpenseRequest struct {
	Category      string      `json:"category" binding:"required" example:"Office Rent"`
	OtherCategory string      `json:"otherCategory" example:"Visa fees"`
	Amount        json.Number `json:"amount" binding:"required" swaggertype:"string" example:"99.99"`
	Date          string      `json:"date" binding:"required" example:"2024-01-15"`
	Description   string      `json:"description" example:"January rent"`
	Receipt       string      `json:"receipt"`
}

func (r ExpenseRequest) input() store.ExpenseInput {
	return store.ExpenseInput{
		Category:      r.Category,
		OtherCategory: r.OtherCategory,
		Amount:        r.Amount.String(),
		Date:          r.Date,
		Description:   r.Description,
		Receipt:       r.Receipt,
	}
}

// List 支出列表
// @Summary 支出列表
// @Tags 支出
// @Produce json
// @Param month query string false "月份 (2024-01)"
// @Param type query string false "类型 general/salary"
// @Success 200 {object} Response{data=ListResponse{list=[]models.Expense}}
// @Router /api/v1/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	month, year, byMonth, ok := parseMonthQuery(c)
	if !ok {
		return
	}
	expenses := h.store.Snapshot().Expenses
	if byMonth {
		expenses = stats.MonthFilter(expenses, func(e models.Expense) models.Date { return e.Date }, month, year)
	}
	if t := models.ExpenseType(c.Query("type")); t != "" {
		filtered := []models.Expense{}
		for _, e := range expenses {
			if e.Type == t {
				filtered = append(filtered, e)
			}
		}
		expenses = filtered
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	Success(c, ListResponse{Total: len(expenses), List: expenses})
}

// Get 获取单条支出
// @Summary 获取支出
// @Tags 支出
// @Produce json
// @Param id path int true "支出ID"
// @Success 200 {object} Response{data=models.Expense}
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/expenses/{id} [get]
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	expense, found := findByID(h.store.Snapshot().Expenses, func(e models.Expense) int { return e.ID }, id)
	if !found {
		NotFound(c, store.ErrNotFound.Error())
		return
	}
	Success(c, expense)
}

// Create 创建支出
// @Summary 创建支出
// @Description 类别选择 Other 时需填写 otherCategory
// @Tags 支出
// @Accept json
// @Produce json
// @Param request body ExpenseRequest true "支出信息"
// @Success 200 {object} Response{data=models.Expense} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	expense, err := h.store.CreateExpense(c.Request.Context(), req.input())
	if err != nil {
		StoreError(c, err, "创建失败")
		return
	}
	SuccessWithMessage(c, "创建成功", expense)
}

// Update 更新支出
// @Summary 更新支出
// @Tags 支出
// @Accept json
// @Produce json
// @Param id path int true "支出ID"
// @Param request body ExpenseRequest true "支出信息"
// @Success 200 {object} Response{data=models.Expense} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	expense, err := h.store.UpdateExpense(c.Request.Context(), id, req.input())
	if err != nil {
		StoreError(c, err, "更新失败")
		return
	}
	SuccessWithMessage(c, "更新成功", expense)
}
