package api

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"

	"agencybooks/middleware"
	"agencybooks/report"
	"agencybooks/service"
	"agencybooks/stats"
	"agencybooks/store"

	"github.com/gin-gonic/gin"
)

const (
	csvContentType  = "text/csv; charset=utf-8"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ReportMailer 报表邮件发送
type ReportMailer interface {
	Enabled() bool
	SendReport(r service.ReportMail) (string, error)
}

// ExportHandler 导出处理器
type ExportHandler struct {
	store  *store.Store
	clock  Clock
	mailer ReportMailer
}

// NewExportHandler 创建导出处理器
func NewExportHandler(s *store.Store, clock Clock, mailer ReportMailer) *ExportHandler {
	return &ExportHandler{store: s, clock: clock, mailer: mailer}
}

// EmailReportRequest 邮件发送报表请求
type EmailReportRequest struct {
	To     string `json:"to" binding:"omitempty,email" example:"owner@example.com"`
	Format string `json:"format" binding:"omitempty,oneof=csv xlsx" example:"csv"`
}

// buildCSV 生成 CSV 报表
func (h *ExportHandler) buildCSV(snap store.Snapshot) ([]byte, error) {
	buf := new(bytes.Buffer)
	// 添加 BOM 以支持 Excel 正确显示
	buf.WriteString("\xEF\xBB\xBF")
	if err := report.WriteCSV(buf, snap, h.clock.Now()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// buildXLSX 生成 Excel 报表
func (h *ExportHandler) buildXLSX(snap store.Snapshot) ([]byte, error) {
	f, err := report.BuildWorkbook(snap, h.clock.Now())
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportCSV 导出 CSV 报表
// @Summary 导出 CSV 报表
// @Description 包含销售、支出、供应商付款、工资、员工与财务汇总六个分节
// @Tags 导出
// @Produce text/csv
// @Success 200 {file} file "CSV 文件"
// @Router /api/v1/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	data, err := h.buildCSV(h.store.Snapshot())
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "生成 CSV 失败"))
		return
	}

	// 设置响应头
	filename := report.Filename(h.clock.Now(), "csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", len(data)))

	c.Data(http.StatusOK, csvContentType, data)
}

// ExportExcel 导出 Excel 报表
// @Summary 导出 Excel 报表
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "Excel 文件"
// @Router /api/v1/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	data, err := h.buildXLSX(h.store.Snapshot())
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "生成 Excel 失败"))
		return
	}

	filename := report.Filename(h.clock.Now(), "xlsx")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// EmailReport 通过邮件发送报表
// @Summary 邮件发送报表
// @Description 未指定收件人时发送到配置的默认邮箱，format 默认为 csv
// @Tags 导出
// @Accept json
// @Produce json
// @Param request body EmailReportRequest false "收件人与格式"
// @Success 200 {object} Response "发送成功"
// @Failure 400 {object} Response "邮件服务未启用或参数错误"
// @Failure 429 {object} Response "发送过于频繁"
// @Router /api/v1/export/email [post]
func (h *ExportHandler) EmailReport(c *gin.Context) {
	if !h.mailer.Enabled() {
		BadRequest(c, service.ErrMailDisabled.Error())
		return
	}

	var req EmailReportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			BadRequest(c, SafeErrorMessage(err, "参数错误"))
			return
		}
	}
	if req.Format == "" {
		req.Format = "csv"
	}

	snap := h.store.Snapshot()
	now := h.clock.Now()
	mail := service.ReportMail{
		To:          req.To,
		Filename:    report.Filename(now, req.Format),
		Summary:     stats.Summarize(snap, now),
		GeneratedAt: now,
	}

	var err error
	if req.Format == "xlsx" {
		mail.ContentType = xlsxContentType
		mail.Attachment, err = h.buildXLSX(snap)
	} else {
		mail.ContentType = csvContentType
		mail.Attachment, err = h.buildCSV(snap)
	}
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "生成报表失败"))
		return
	}

	to, err := h.mailer.SendReport(mail)
	if err != nil {
		if errors.Is(err, service.ErrMailDisabled) || errors.Is(err, service.ErrNoRecipient) {
			BadRequest(c, err.Error())
			return
		}
		log.Printf("[%s] 发送报表邮件失败: %v", middleware.GetRequestID(c), err)
		InternalError(c, SafeErrorMessage(err, "发送邮件失败"))
		return
	}
	SuccessWithMessage(c, "发送成功", gin.H{"to": to, "filename": mail.Filename})
}
