package api

import (
	"slices"
	"strconv"
	"time"

	"agencybooks/models"
	"agencybooks/service"
	"agencybooks/stats"
	"agencybooks/store"

	"github.com/gin-gonic/gin"
)

// 逐日统计的天数范围
const (
	defaultSeriesDays = 7
	maxSeriesDays     = 366
	recentSalesLimit  = 5
)

// Clock 当前时间来源
type Clock interface {
	Now() time.Time
	Status() service.ClockStatus
}

// DashboardHandler 仪表盘与统计处理器
type DashboardHandler struct {
	store *store.Store
	clock Clock
}

// NewDashboardHandler 创建仪表盘处理器
func NewDashboardHandler(s *store.Store, clock Clock) *DashboardHandler {
	return &DashboardHandler{store: s, clock: clock}
}

// DashboardView 仪表盘数据
type DashboardView struct {
	Summary     stats.Dashboard        `json:"summary"`
	Categories  []stats.CategoryAmount `json:"categories"`
	RecentSales []models.Sale          `json:"recentSales"`
}

// Get 仪表盘统计
// @Summary 仪表盘
// @Description 总销售额、支出、净利润、利润率、本月与上月对比、支出类别分布
// @Tags 统计
// @Produce json
// @Success 200 {object} Response{data=DashboardView}
// @Router /api/v1/dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	snap := h.store.Snapshot()
	categories := stats.CategoryBreakdown(snap.Expenses)
	if categories == nil {
		categories = []stats.CategoryAmount{}
	}
	Success(c, DashboardView{
		Summary:     stats.Summarize(snap, h.clock.Now()),
		Categories:  categories,
		RecentSales: stats.RecentSales(snap.Sales, recentSalesLimit),
	})
}

// Daily 最近 N 天逐日统计
// @Summary 逐日统计
// @Tags 统计
// @Produce json
// @Param days query int false "天数，默认 7，最大 366"
// @Success 200 {object} Response{data=[]stats.DayTotals}
// @Router /api/v1/dashboard/daily [get]
func (h *DashboardHandler) Daily(c *gin.Context) {
	days := defaultSeriesDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxSeriesDays {
			BadRequest(c, "days 必须在 1 到 366 之间")
			return
		}
		days = n
	}
	series := slices.Collect(stats.DailySeries(h.clock.Now(), days, h.store.Snapshot()))
	Success(c, series)
}

// Monthly 指定年份逐月统计
// @Summary 逐月统计
// @Tags 统计
// @Produce json
// @Param year query int false "年份，默认今年"
// @Success 200 {object} Response{data=[]stats.MonthTotals}
// @Router /api/v1/dashboard/monthly [get]
func (h *DashboardHandler) Monthly(c *gin.Context) {
	year := h.clock.Now().Year()
	if raw := c.Query("year"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1900 || n > 9999 {
			BadRequest(c, "无效的年份")
			return
		}
		year = n
	}
	Success(c, gin.H{
		"year":   year,
		"months": stats.MonthlySeries(h.store.Snapshot(), year),
	})
}

// Transactions 统一流水
// @Summary 流水账
// @Description 五类记录合并后按日期降序，支出类金额为负
// @Tags 统计
// @Produce json
// @Param kind query string false "记录类型 expense/sale/supplier/staff/salary"
// @Success 200 {object} Response{data=ListResponse{list=[]stats.Transaction}}
// @Router /api/v1/transactions [get]
func (h *DashboardHandler) Transactions(c *gin.Context) {
	kind := models.Kind(c.Query("kind"))
	if kind == "all" {
		kind = ""
	}
	if kind != "" && !kind.Valid() {
		BadRequest(c, "无效的记录类型")
		return
	}
	rows := stats.BuildTransactionLedger(h.store.Snapshot(), kind)
	if rows == nil {
		rows = []stats.Transaction{}
	}
	Success(c, ListResponse{Total: len(rows), List: rows})
}

// Categories 可选的支出类别、备注状态与记录类型
// @Summary 基础选项
// @Tags 统计
// @Produce json
// @Success 200 {object} Response
// @Router /api/v1/categories [get]
func (h *DashboardHandler) Categories(c *gin.Context) {
	Success(c, gin.H{
		"categories": models.GetCategories(),
		"statuses":   models.GetStatuses(),
		"kinds":      models.GetKinds(),
	})
}

// ClockStatus 当前时间
// @Summary 当前时间
// @Description 远程时间服务可用时返回校准后的时间，否则为本机时间
// @Tags 系统
// @Produce json
// @Success 200 {object} Response{data=service.ClockStatus}
// @Router /api/v1/clock [get]
func (h *DashboardHandler) ClockStatus(c *gin.Context) {
	Success(c, h.clock.Status())
}
