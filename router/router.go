package router

import (
	"agencybooks/api"
	"agencybooks/config"
	_ "agencybooks/docs"
	"agencybooks/middleware"
	"agencybooks/store"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Deps 路由依赖
type Deps struct {
	Store  *store.Store
	Clock  api.Clock
	Mailer api.ReportMailer
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, deps Deps) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	r.Use(middleware.RequestID())
	// CORS 中间件
	r.Use(middleware.CORS())

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 统计
		dashboardHandler := api.NewDashboardHandler(deps.Store, deps.Clock)
		v1.GET("/dashboard", dashboardHandler.Get)
		v1.GET("/dashboard/daily", dashboardHandler.Daily)
		v1.GET("/dashboard/monthly", dashboardHandler.Monthly)
		v1.GET("/transactions", dashboardHandler.Transactions)
		v1.GET("/categories", dashboardHandler.Categories)
		v1.GET("/clock", dashboardHandler.ClockStatus)

		// 支出
		expenseHandler := api.NewExpenseHandler(deps.Store)
		expenses := v1.Group("/expenses")
		{
			expenses.GET("", expenseHandler.List)
			expenses.POST("", expenseHandler.Create)
			expenses.GET("/:id", expenseHandler.Get)
			expenses.PUT("/:id", expenseHandler.Update)
		}

		// 销售
		saleHandler := api.NewSaleHandler(deps.Store)
		sales := v1.Group("/sales")
		{
			sales.GET("", saleHandler.List)
			sales.POST("", saleHandler.Create)
			sales.GET("/:id", saleHandler.Get)
			sales.PUT("/:id", saleHandler.Update)
		}

		// 供应商付款
		supplierHandler := api.NewSupplierPaymentHandler(deps.Store)
		suppliers := v1.Group("/supplier-payments")
		{
			suppliers.GET("", supplierHandler.List)
			suppliers.POST("", supplierHandler.Create)
			suppliers.GET("/:id", supplierHandler.Get)
			suppliers.PUT("/:id", supplierHandler.Update)
		}

		// 员工与工资，只有员工支持删除
		staffHandler := api.NewStaffHandler(deps.Store)
		staff := v1.Group("/staff")
		{
			staff.GET("", staffHandler.List)
			staff.POST("", staffHandler.Create)
			staff.GET("/:id", staffHandler.Get)
			staff.PUT("/:id", staffHandler.Update)
			staff.DELETE("/:id", staffHandler.Delete)
		}
		salaries := v1.Group("/salary-payments")
		{
			salaries.GET("", staffHandler.ListSalaryPayments)
			salaries.POST("", staffHandler.CreateSalaryPayment)
			salaries.GET("/:id", staffHandler.GetSalaryPayment)
			salaries.PUT("/:id", staffHandler.UpdateSalaryPayment)
		}

		// 备注状态
		remarkHandler := api.NewRemarkHandler(deps.Store)
		remarks := v1.Group("/remarks")
		{
			remarks.GET("", remarkHandler.List)
			remarks.GET("/:kind/:id", remarkHandler.Get)
			remarks.PUT("/:kind/:id", remarkHandler.Set)
			remarks.DELETE("/:kind/:id", remarkHandler.Clear)
		}

		preferenceHandler := api.NewPreferenceHandler(deps.Store)
		v1.GET("/preferences/page", preferenceHandler.GetPage)
		v1.PUT("/preferences/page", preferenceHandler.SetPage)

		// 导出
		exportHandler := api.NewExportHandler(deps.Store, deps.Clock, deps.Mailer)
		export := v1.Group("/export")
		{
			export.GET("/csv", exportHandler.ExportCSV)
			export.GET("/excel", exportHandler.ExportExcel)
			export.POST("/email",
				middleware.RateLimit(cfg.Export.RateLimit, cfg.Export.RateWindow, "发送过于频繁，请稍后再试"),
				exportHandler.EmailReport)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}
