package api

import (
	"encoding/json"
	"strconv"

	"agencybooks/models"
	"agencybooks/store"

	"github.com/gin-gonic/gin"
)

// StaffHandler 员工与工资处理器
type StaffHandler struct {
	store *store.Store
}

// NewStaffHandler 创建员工处理器
func NewStaffHandler(s *store.Store) *StaffHandler {
	return &StaffHandler{store: s}
}

// StaffRequest 员工请求
type StaffRequest struct {
	Name     string      `json:"name" binding:"required" example:"Ana"`
	StaffID  string      `json:"staffId" binding:"required" example:"S-001"`
	Role     string      `json:"role" binding:"required" example:"Agent"`
	Phone    string      `json:"phone"`
	Email    string      `json:"email"`
	Address  string      `json:"address"`
	JoinDate string      `json:"joinDate" binding:"required" example:"2023-05-01"`
	Salary   json.Number `json:"salary" binding:"required" swaggertype:"string" example:"2000"`
}

func (r StaffRequest) input() store.StaffInput {
	return store.StaffInput{
		Name:     r.Name,
		StaffID:  r.StaffID,
		Role:     r.Role,
		Phone:    r.Phone,
		Email:    r.Email,
		Address:  r.Address,
		JoinDate: r.JoinDate,
		Salary:   r.Salary.String(),
	}
}

// SalaryRequest 工资发放请求
// salaryAmount 为空时按 员工工资 - 预支 计算
type SalaryRequest struct {
	StaffID        int         `json:"staffId" binding:"required" example:"1"`
	AdvanceAmount  json.Number `json:"advanceAmount" swaggertype:"string" example:"500"`
	SalaryAmount   json.Number `json:"salaryAmount" swaggertype:"string"`
	Date           string      `json:"date" binding:"required" example:"2024-01-31"`
	SalaryForMonth string      `json:"salaryForMonth" binding:"required" example:"2024-01"`
	Description    string      `json:"description"`
	Receipt        string      `json:"receipt"`
}

func (r SalaryRequest) input() store.SalaryInput {
	return store.SalaryInput{
		StaffID:        r.StaffID,
		AdvanceAmount:  r.AdvanceAmount.String(),
		SalaryAmount:   r.SalaryAmount.String(),
		Date:           r.Date,
		SalaryForMonth: r.SalaryForMonth,
		Description:    r.Description,
		Receipt:        r.Receipt,
	}
}

// List 员工列表
// @Summary 员工列表
// @Tags 员工
// @Produce json
// @Success 200 {object} Response{data=ListResponse{list=[]models.StaffMember}}
// @Router /api/v1/staff [get]
func (h *StaffHandler) List(c *gin.Context) {
	staff := h.store.Snapshot().StaffMembers
	Success(c, ListResponse{Total: len(staff), List: staff})
}

// Get 获取员工
// @Summary 获取员工
// @Tags 员工
// @Produce json
// @Param id path int true "员工ID"
// @Success 200 {object} Response{data=models.StaffMember}
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/staff/{id} [get]
func (h *StaffHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	member, found := h.store.Snapshot().FindStaffMember(id)
	if !found {
		NotFound(c, store.ErrNotFound.Error())
		return
	}
	Success(c, member)
}

// Create 创建员工
// @Summary 创建员工
// @Tags 员工
// @Accept json
// @Produce json
// @Param request body StaffRequest true "员工信息"
// @Success 200 {object} Response{data=models.StaffMember} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/staff [post]
func (h *StaffHandler) Create(c *gin.Context) {
	var req StaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	member, err := h.store.CreateStaffMember(c.Request.Context(), req.input())
	if err != nil {
		StoreError(c, err, "创建失败")
		return
	}
	SuccessWithMessage(c, "创建成功", member)
}

// Update 更新员工，已发放的工资记录保留发放时的姓名与工资
// @Summary 更新员工
// @Tags 员工
// @Accept json
// @Produce json
// @Param id path int true "员工ID"
// @Param request body StaffRequest true "员工信息"
// @Success 200 {object} Response{data=models.StaffMember} "更新成功"
// @Router /api/v1/staff/{id} [put]
func (h *StaffHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req StaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	member, err := h.store.UpdateStaffMember(c.Request.Context(), id, req.input())
	if err != nil {
		StoreError(c, err, "更新失败")
		return
	}
	SuccessWithMessage(c, "更新成功", member)
}

// Delete 删除员工，同时删除其工资记录与对应的工资支出
// @Summary 删除员工
// @Tags 员工
// @Produce json
// @Param id path int true "员工ID"
// @Success 200 {object} Response{data=store.DeleteResult} "删除成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/staff/{id} [delete]
func (h *StaffHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.store.DeleteStaffMember(c.Request.Context(), id)
	if err != nil {
		StoreError(c, err, "删除失败")
		return
	}
	SuccessWithMessage(c, "删除成功", result)
}

// ListSalaryPayments 工资发放列表
// @Summary 工资发放列表
// @Tags 工资
// @Produce json
// @Param staffId query int false "员工ID"
// @Success 200 {object} Response{data=ListResponse{list=[]models.SalaryPayment}}
// @Router /api/v1/salary-payments [get]
func (h *StaffHandler) ListSalaryPayments(c *gin.Context) {
	payments := h.store.Snapshot().SalaryPayments
	if raw := c.Query("staffId"); raw != "" {
		staffID, err := strconv.Atoi(raw)
		if err != nil {
			BadRequest(c, "无效的员工ID")
			return
		}
		filtered := []models.SalaryPayment{}
		for _, p := range payments {
			if p.StaffID == staffID {
				filtered = append(filtered, p)
			}
		}
		payments = filtered
	}
	Success(c, ListResponse{Total: len(payments), List: payments})
}

// GetSalaryPayment 获取工资发放记录
// @Summary 获取工资发放记录
// @Tags 工资
// @Produce json
// @Param id path int true "工资发放ID"
// @Success 200 {object} Response{data=models.SalaryPayment}
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/salary-payments/{id} [get]
func (h *StaffHandler) GetSalaryPayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	payment, found := findByID(h.store.Snapshot().SalaryPayments, func(p models.SalaryPayment) int { return p.ID }, id)
	if !found {
		NotFound(c, store.ErrNotFound.Error())
		return
	}
	Success(c, payment)
}

// CreateSalaryPayment 发放工资，同时生成一条工资支出
// @Summary 发放工资
// @Tags 工资
// @Accept json
// @Produce json
// @Param request body SalaryRequest true "工资信息"
// @Success 200 {object} Response{data=models.SalaryPayment} "创建成功"
// @Failure 400 {object} Response "请求参数错误或员工不存在"
// @Router /api/v1/salary-payments [post]
func (h *StaffHandler) CreateSalaryPayment(c *gin.Context) {
	var req SalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	payment, err := h.store.CreateSalaryPayment(c.Request.Context(), req.input())
	if err != nil {
		StoreError(c, err, "创建失败")
		return
	}
	SuccessWithMessage(c, "创建成功", payment)
}

// UpdateSalaryPayment 更新工资发放记录
// @Summary 更新工资发放
// @Tags 工资
// @Accept json
// @Produce json
// @Param id path int true "工资记录ID"
// @Param request body SalaryRequest true "工资信息"
// @Success 200 {object} Response{data=models.SalaryPayment} "更新成功"
// @Router /api/v1/salary-payments/{id} [put]
func (h *StaffHandler) UpdateSalaryPayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req SalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	payment, err := h.store.UpdateSalaryPayment(c.Request.Context(), id, req.input())
	if err != nil {
		StoreError(c, err, "更新失败")
		return
	}
	SuccessWithMessage(c, "更新成功", payment)
}
