package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"agencybooks/database"
	"agencybooks/middleware"
	"agencybooks/models"
	"agencybooks/service"
	"agencybooks/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time { return f.now }

func (f fixedClock) Status() service.ClockStatus {
	return service.ClockStatus{Time: f.now, Source: service.ClockSourceLocal, Offset: "0s"}
}

type fakeMailer struct {
	disabled bool
	err      error
	sent     []service.ReportMail
}

func (m *fakeMailer) Enabled() bool { return !m.disabled }

func (m *fakeMailer) SendReport(r service.ReportMail) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.sent = append(m.sent, r)
	if r.To == "" {
		return "owner@example.com", nil
	}
	return r.To, nil
}

var testNow = time.Date(2024, 1, 10, 9, 30, 0, 0, time.Local)

// setupSQLiteKV 每个测试独立的内存数据库
func setupSQLiteKV(t *testing.T) *database.KVStore {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.StorageEntry{}))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return database.NewKVStore(db)
}

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, *gorm.DB, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return mock, gormDB, func() {
		sqlDB.Close()
	}
}

// newTestRouter 注册全部接口，路由与正式环境一致
func newTestRouter(s *store.Store, mailer ReportMailer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	clock := fixedClock{now: testNow}

	v1 := r.Group("/api/v1")

	dashboardHandler := NewDashboardHandler(s, clock)
	v1.GET("/dashboard", dashboardHandler.Get)
	v1.GET("/dashboard/daily", dashboardHandler.Daily)
	v1.GET("/dashboard/monthly", dashboardHandler.Monthly)
	v1.GET("/transactions", dashboardHandler.Transactions)
	v1.GET("/categories", dashboardHandler.Categories)
	v1.GET("/clock", dashboardHandler.ClockStatus)

	expenseHandler := NewExpenseHandler(s)
	v1.GET("/expenses", expenseHandler.List)
	v1.GET("/expenses/:id", expenseHandler.Get)
	v1.POST("/expenses", expenseHandler.Create)
	v1.PUT("/expenses/:id", expenseHandler.Update)

	saleHandler := NewSaleHandler(s)
	v1.GET("/sales", saleHandler.List)
	v1.GET("/sales/:id", saleHandler.Get)
	v1.POST("/sales", saleHandler.Create)
	v1.PUT("/sales/:id", saleHandler.Update)

	supplierHandler := NewSupplierPaymentHandler(s)
	v1.GET("/supplier-payments", supplierHandler.List)
	v1.POST("/supplier-payments", supplierHandler.Create)
	v1.PUT("/supplier-payments/:id", supplierHandler.Update)

	staffHandler := NewStaffHandler(s)
	v1.GET("/staff", staffHandler.List)
	v1.GET("/staff/:id", staffHandler.Get)
	v1.POST("/staff", staffHandler.Create)
	v1.PUT("/staff/:id", staffHandler.Update)
	v1.DELETE("/staff/:id", staffHandler.Delete)
	v1.GET("/salary-payments", staffHandler.ListSalaryPayments)
	v1.GET("/salary-payments/:id", staffHandler.GetSalaryPayment)
	v1.POST("/salary-payments", staffHandler.CreateSalaryPayment)
	v1.PUT("/salary-payments/:id", staffHandler.UpdateSalaryPayment)

	remarkHandler := NewRemarkHandler(s)
	v1.GET("/remarks", remarkHandler.List)
	v1.GET("/remarks/:kind/:id", remarkHandler.Get)
	v1.PUT("/remarks/:kind/:id", remarkHandler.Set)
	v1.DELETE("/remarks/:kind/:id", remarkHandler.Clear)

	preferenceHandler := NewPreferenceHandler(s)
	v1.GET("/preferences/page", preferenceHandler.GetPage)
	v1.PUT("/preferences/page", preferenceHandler.SetPage)

	exportHandler := NewExportHandler(s, clock, mailer)
	v1.GET("/export/csv", exportHandler.ExportCSV)
	v1.GET("/export/excel", exportHandler.ExportExcel)
	v1.POST("/export/email", exportHandler.EmailReport)

	return r
}

type testEnv struct {
	router *gin.Engine
	store  *store.Store
	kv     *database.KVStore
	mailer *fakeMailer
}

func newTestEnv(t *testing.T) *testEnv {
	kv := setupSQLiteKV(t)
	s := store.New(kv)
	mailer := &fakeMailer{}
	return &testEnv{router: newTestRouter(s, mailer), store: s, kv: kv, mailer: mailer}
}

type testResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (e *testEnv) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, testResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp testResponse
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

// decodeData 解析响应中的 data 字段
func decodeData[T any](t *testing.T, resp testResponse) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(resp.Data, &v))
	return v
}
