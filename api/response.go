package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"agencybooks/middleware"
	"agencybooks/models"
	"agencybooks/store"

	"github.com/gin-gonic/gin"
)

// Response 通用响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ListResponse 列表响应结构
type ListResponse struct {
	Total int         `json:"total"`
	List  interface{} `json:"list"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    200,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage 带消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    200,
		Message: message,
		Data:    data,
	})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest 400 错误响应
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// InternalError 500 错误响应
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// NotFound 404 错误响应
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// StoreError 按记录存储返回的错误类型响应
// 校验错误与员工不存在为 400，记录不存在为 404，其余为 500
func StoreError(c *gin.Context, err error, fallback string) {
	var verr *store.ValidationError
	switch {
	case errors.As(err, &verr):
		BadRequest(c, verr.Message)
	case errors.Is(err, store.ErrStaffNotFound):
		BadRequest(c, err.Error())
	case errors.Is(err, store.ErrNotFound):
		NotFound(c, err.Error())
	default:
		log.Printf("[%s] %s: %v", middleware.GetRequestID(c), fallback, err)
		InternalError(c, SafeErrorMessage(err, fallback))
	}
}

// parseID 解析路径参数 id
func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		BadRequest(c, "无效的ID")
		return 0, false
	}
	return id, true
}

// findByID 按 id 查找记录
func findByID[T any](items []T, id func(T) int, want int) (T, bool) {
	for _, item := range items {
		if id(item) == want {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// parseMonthQuery 解析可选的 month 查询参数（YYYY-MM）
func parseMonthQuery(c *gin.Context) (month time.Month, year int, set bool, ok bool) {
	raw := c.Query("month")
	if raw == "" {
		return 0, 0, false, true
	}
	t, err := time.Parse(models.MonthLayout, raw)
	if err != nil {
		BadRequest(c, "月份格式错误，应为: "+models.MonthLayout)
		return 0, 0, false, false
	}
	return t.Month(), t.Year(), true, true
}
