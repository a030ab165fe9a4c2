package api

import (
	"strconv"

	"agencybooks/models"
	"agencybooks/store"

	"github.com/gin-gonic/gin"
)

// RemarkHandler 备注状态处理器
type RemarkHandler struct {
	store *store.Store
}

// NewRemarkHandler 创建备注处理器
func NewRemarkHandler(s *store.Store) *RemarkHandler {
	return &RemarkHandler{store: s}
}

// RemarkRequest 设置备注请求
type RemarkRequest struct {
	Status models.Status `json:"status" binding:"required" example:"pending"`
}

// RemarkView 单条备注
type RemarkView struct {
	Kind   models.Kind `json:"kind"`
	ID     int         `json:"id"`
	Status string      `json:"status"`
}

func parseRemarkPath(c *gin.Context) (models.Kind, int, bool) {
	kind := models.Kind(c.Param("kind"))
	if !kind.Valid() {
		BadRequest(c, "无效的记录类型")
		return "", 0, false
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		BadRequest(c, "无效的ID")
		return "", 0, false
	}
	return kind, id, true
}

// List 全部备注
// @Summary 备注列表
// @Description 返回 "<kind>_<id>" 到状态的映射
// @Tags 备注
// @Produce json
// @Success 200 {object} Response{data=map[string]string}
// @Router /api/v1/remarks [get]
func (h *RemarkHandler) List(c *gin.Context) {
	Success(c, gin.H{
		"remarks":  h.store.Remarks(),
		"statuses": models.GetStatuses(),
	})
}

// Get 查询单条记录的备注，未设置时为 "No Status"
// @Summary 查询备注
// @Tags 备注
// @Produce json
// @Param kind path string true "记录类型 expense/sale/supplier/staff/salary"
// @Param id path int true "记录ID"
// @Success 200 {object} Response{data=RemarkView}
// @Router /api/v1/remarks/{kind}/{id} [get]
func (h *RemarkHandler) Get(c *gin.Context) {
	kind, id, ok := parseRemarkPath(c)
	if !ok {
		return
	}
	view := RemarkView{Kind: kind, ID: id, Status: models.NoStatus}
	if status, found := h.store.Remark(kind, id); found {
		view.Status = string(status)
	}
	Success(c, view)
}

// Set 设置备注
// @Summary 设置备注
// @Tags 备注
// @Accept json
// @Produce json
// @Param kind path string true "记录类型"
// @Param id path int true "记录ID"
// @Param request body RemarkRequest true "状态"
// @Success 200 {object} Response{data=RemarkView} "设置成功"
// @Failure 400 {object} Response "无效的状态"
// @Router /api/v1/remarks/{kind}/{id} [put]
func (h *RemarkHandler) Set(c *gin.Context) {
	kind, id, ok := parseRemarkPath(c)
	if !ok {
		return
	}
	var req RemarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	if err := h.store.SetRemark(c.Request.Context(), kind, id, req.Status); err != nil {
		StoreError(c, err, "设置失败")
		return
	}
	SuccessWithMessage(c, "设置成功", RemarkView{Kind: kind, ID: id, Status: string(req.Status)})
}

// Clear 清除备注
// @Summary 清除备注
// @Tags 备注
// @Produce json
// @Param kind path string true "记录类型"
// @Param id path int true "记录ID"
// @Success 200 {object} Response "清除成功"
// @Router /api/v1/remarks/{kind}/{id} [delete]
func (h *RemarkHandler) Clear(c *gin.Context) {
	kind, id, ok := parseRemarkPath(c)
	if !ok {
		return
	}
	if err := h.store.ClearRemark(c.Request.Context(), kind, id); err != nil {
		StoreError(c, err, "清除失败")
		return
	}
	SuccessWithMessage(c, "清除成功", nil)
}
