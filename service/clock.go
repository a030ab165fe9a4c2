package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"agencybooks/config"
)

// 时间来源
const (
	ClockSourceRemote = "remote"
	ClockSourceLocal  = "local"
)

// timeResponse 时间服务响应 { "datetime": "2024-01-10T12:00:00.000000+08:00", ... }
type timeResponse struct {
	Datetime string `json:"datetime"`
}

// ClockStatus 当前时间与来源
type ClockStatus struct {
	Time     time.Time  `json:"time"`
	Source   string     `json:"source"`
	Offset   string     `json:"offset"`
	SyncedAt *time.Time `json:"syncedAt,omitempty"`
}

// Clock 远程时间服务客户端
// 请求失败时等待 RetryDelay 重试一次，仍失败则回退到本机时间，失败不影响其他功能
type Clock struct {
	cfg    config.ClockConfig
	client *http.Client
	now    func() time.Time

	mu       sync.RWMutex
	offset   time.Duration
	source   string
	syncedAt time.Time
}

// NewClock 创建时钟
func NewClock(cfg config.ClockConfig) *Clock {
	return &Clock{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		now:    time.Now,
		source: ClockSourceLocal,
	}
}

// Fetch 请求一次远程时间
func (c *Clock) Fetch(ctx context.Context) (time.Time, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return time.Time{}, fmt.Errorf("创建请求失败: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return time.Time{}, fmt.Errorf("请求时间服务失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return time.Time{}, fmt.Errorf("时间服务返回状态码 %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return time.Time{}, fmt.Errorf("读取响应失败: %w", err)
	}

	var body timeResponse
	if err := json.Unmarshal(data, &body); err != nil {
		return time.Time{}, fmt.Errorf("解析响应失败: %w", err)
	}
	if body.Datetime == "" {
		return time.Time{}, errors.New("时间服务响应中无 datetime")
	}

	t, err := time.Parse(time.RFC3339Nano, body.Datetime)
	if err != nil {
		return time.Time{}, fmt.Errorf("解析 datetime 失败: %w", err)
	}
	return t, nil
}

// Sync 同步远程时间，失败时重试一次
// 两次都失败时回退到本机时间并返回最后一次错误
func (c *Clock) Sync(ctx context.Context) error {
	remote, err := c.Fetch(ctx)
	if err != nil {
		log.Printf("获取远程时间失败，%v 后重试: %v", c.cfg.RetryDelay, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.cfg.RetryDelay):
		}
		remote, err = c.Fetch(ctx)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.offset = 0
		c.source = ClockSourceLocal
		return err
	}
	local := c.now()
	c.offset = remote.Sub(local)
	c.source = ClockSourceRemote
	c.syncedAt = local
	return nil
}

// Now 当前时间，未同步或同步失败时为本机时间
func (c *Clock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now().Add(c.offset)
}

// Status 当前时间与来源
func (c *Clock) Status() ClockStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	st := ClockStatus{
		Time:   c.now().Add(c.offset),
		Source: c.source,
		Offset: c.offset.String(),
	}
	if !c.syncedAt.IsZero() {
		synced := c.syncedAt
		st.SyncedAt = &synced
	}
	return st
}

// Run 立即同步一次，之后按 RefreshInterval 定期同步，直到 ctx 结束
func (c *Clock) Run(ctx context.Context) error {
	if !c.cfg.Enabled {
		log.Println("远程时间服务未启用，使用本机时间")
		return nil
	}

	c.syncAndLog(ctx)

	ticker := time.NewTicker(c.cfg.RefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			c.syncAndLog(ctx)
		}
	}
}

func (c *Clock) syncAndLog(ctx context.Context) {
	if err := c.Sync(ctx); err != nil {
		if ctx.Err() == nil {
			log.Printf("远程时间不可用，使用本机时间: %v", err)
		}
		return
	}
	log.Printf("远程时间已同步，偏移 %v", c.Status().Offset)
}
