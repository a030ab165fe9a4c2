package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"agencybooks/config"
	"agencybooks/docs"
	"agencybooks/service"
	"agencybooks/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memKV struct {
	data map[string]string
}

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, key, value string) error {
	m.data[key] = value
	return nil
}

func newTestEngine(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Export: config.ExportConfig{RateLimit: 1, RateWindow: time.Minute},
	}
	s := store.New(&memKV{data: map[string]string{}})
	require.NoError(t, s.Load(context.Background()))

	return SetupRouter(cfg, Deps{
		Store:  s,
		Clock:  service.NewClock(config.ClockConfig{}),
		Mailer: service.NewMailer(config.EmailConfig{}),
	})
}

func TestSetupRouter_Health(t *testing.T) {
	r := newTestEngine(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestSetupRouter_Routes(t *testing.T) {
	r := newTestEngine(t)

	for _, path := range []string{
		"/api/v1/dashboard",
		"/api/v1/dashboard/daily",
		"/api/v1/transactions",
		"/api/v1/expenses",
		"/api/v1/sales",
		"/api/v1/supplier-payments",
		"/api/v1/staff",
		"/api/v1/salary-payments",
		"/api/v1/remarks",
		"/api/v1/preferences/page",
		"/api/v1/clock",
		"/api/v1/export/csv",
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestSetupRouter_EmailRateLimited(t *testing.T) {
	r := newTestEngine(t)

	send := func() int {
		req := httptest.NewRequest("POST", "/api/v1/export/email", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	// 邮件服务未启用
	assert.Equal(t, http.StatusBadRequest, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}

func TestSetupRouter_NoDeleteForSales(t *testing.T) {
	r := newTestEngine(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("DELETE", "/api/v1/sales/1", nil))
	assert.NotEqual(t, http.StatusOK, w.Code)
}

func TestSwaggerDocCoversRoutes(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Export: config.ExportConfig{RateLimit: 1, RateWindow: time.Minute},
	}
	s := store.New(&memKV{data: map[string]string{}})
	r := SetupRouter(cfg, Deps{Store: s, Clock: service.NewClock(config.ClockConfig{}), Mailer: service.NewMailer(config.EmailConfig{})})

	var doc struct {
		Paths map[string]map[string]struct {
			Tags []string `json:"tags"`
		} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc))

	param := regexp.MustCompile(`:(\w+)`)
	for _, route := range r.Routes() {
		if !strings.HasPrefix(route.Path, "/api/v1/") {
			continue
		}
		path := param.ReplaceAllString(route.Path, "{$1}")
		ops, ok := doc.Paths[path]
		if assert.True(t, ok, path) {
			_, ok = ops[strings.ToLower(route.Method)]
			assert.True(t, ok, route.Method+" "+path)
		}
	}

	assert.Equal(t, []string{"系统"}, doc.Paths["/api/v1/clock"]["get"].Tags)
	assert.Equal(t, []string{"工资"}, doc.Paths["/api/v1/salary-payments"]["post"].Tags)
}
