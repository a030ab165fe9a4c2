package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"agencybooks/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClock(url string) *Clock {
	return NewClock(config.ClockConfig{
		Enabled:         true,
		URL:             url,
		Timeout:         time.Second,
		RetryDelay:      10 * time.Millisecond,
		RefreshInterval: time.Hour,
	})
}

func TestClock_Sync(t *testing.T) {
	remote := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"datetime":%q,"timezone":"UTC"}`, remote.Format(time.RFC3339Nano))
	}))
	defer srv.Close()

	c := newTestClock(srv.URL)
	local := time.Date(2030, 6, 1, 11, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return local }

	require.NoError(t, c.Sync(context.Background()))
	assert.True(t, remote.Equal(c.Now()))

	st := c.Status()
	assert.Equal(t, ClockSourceRemote, st.Source)
	assert.Equal(t, "1h0m0s", st.Offset)
	require.NotNil(t, st.SyncedAt)
}

func TestClock_RetriesOnce(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"datetime":"2030-06-01T12:00:00+00:00"}`)
	}))
	defer srv.Close()

	c := newTestClock(srv.URL)
	require.NoError(t, c.Sync(context.Background()))
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, ClockSourceRemote, c.Status().Source)
}

func TestClock_FallsBackToLocal(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := newTestClock(srv.URL)
	local := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return local }

	err := c.Sync(context.Background())
	assert.Error(t, err)
	assert.Equal(t, int32(2), calls.Load(), "只重试一次")
	assert.True(t, local.Equal(c.Now()))

	st := c.Status()
	assert.Equal(t, ClockSourceLocal, st.Source)
	assert.Nil(t, st.SyncedAt)
}

func TestClock_MissingDatetime(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"timezone":"UTC"}`))
	}))
	defer srv.Close()

	_, err := newTestClock(srv.URL).Fetch(context.Background())
	assert.ErrorContains(t, err, "datetime")
}

func TestClock_SyncCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClock(srv.URL)
	c.cfg.RetryDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	assert.ErrorIs(t, c.Sync(ctx), context.Canceled)
}

func TestClock_RunDisabled(t *testing.T) {
	c := NewClock(config.ClockConfig{Enabled: false})
	assert.NoError(t, c.Run(context.Background()))
	assert.Equal(t, ClockSourceLocal, c.Status().Source)
}

func TestClock_RunStopsOnCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"datetime":"2030-06-01T12:00:00Z"}`)
	}))
	defer srv.Close()

	c := newTestClock(srv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	require.Eventually(t, func() bool {
		return c.Status().Source == ClockSourceRemote
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run 未在取消后退出")
	}
}
