package api

import (
	"agencybooks/store"

	"github.com/gin-gonic/gin"
)

// PreferenceHandler 界面偏好处理器
type PreferenceHandler struct {
	store *store.Store
}

// NewPreferenceHandler 创建偏好处理器
func NewPreferenceHandler(s *store.Store) *PreferenceHandler {
	return &PreferenceHandler{store: s}
}

// PageRequest 最近浏览页面
type PageRequest struct {
	Page string `json:"page" binding:"required,max=64" example:"dashboard"`
}

// GetPage 获取最近浏览的页面
// @Summary 最近浏览页面
// @Tags 偏好
// @Produce json
// @Success 200 {object} Response{data=PageRequest}
// @Router /api/v1/preferences/page [get]
func (h *PreferenceHandler) GetPage(c *gin.Context) {
	Success(c, PageRequest{Page: h.store.LastPage()})
}

// SetPage 保存最近浏览的页面
// @Summary 保存最近浏览页面
// @Tags 偏好
// @Accept json
// @Produce json
// @Param request body PageRequest true "页面"
// @Success 200 {object} Response "保存成功"
// @Router /api/v1/preferences/page [put]
func (h *PreferenceHandler) SetPage(c *gin.Context) {
	var req PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}
	if err := h.store.SetLastPage(c.Request.Context(), req.Page); err != nil {
		StoreError(c, err, "保存失败")
		return
	}
	SuccessWithMessage(c, "保存成功", req)
}
