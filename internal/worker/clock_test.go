package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestClock_Format тестирует формат в поясе Asia/Kolkata
func TestClock_Format(t *testing.T) {
	clock, err := NewClock(time.Second, "Asia/Kolkata", nil)
	require.NoError(t, err)

	// 09:30 UTC это 15:00 IST
	at := time.Date(2024, 1, 1, 9, 30, 5, 0, time.UTC)
	assert.Equal(t, "3:00:05 pm", clock.Format(at))

	// 20:00 UTC это 01:30 IST следующего дня
	at = time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "1:30:00 am", clock.Format(at))
}

// TestNewClock_Defaults тестирует значения по умолчанию и неверный пояс
func TestNewClock_Defaults(t *testing.T) {
	clock, err := NewClock(0, "", nil)
	require.NoError(t, err)
	assert.Equal(t, time.Second, clock.interval)
	assert.Equal(t, time.UTC, clock.location)

	_, err = NewClock(time.Second, "Not/AZone", nil)
	assert.Error(t, err)
}

// TestClock_StartStops тестирует тики и остановку по контексту
func TestClock_StartStops(t *testing.T) {
	var (
		mtx   sync.Mutex
		ticks []string
	)
	clock, err := NewClock(10*time.Millisecond, "UTC", func(s string) {
		mtx.Lock()
		ticks = append(ticks, s)
		mtx.Unlock()
	})
	require.NoError(t, err)
	clock.now = func() time.Time { return time.Date(2024, 1, 1, 13, 4, 5, 0, time.UTC) }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		clock.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		mtx.Lock()
		defer mtx.Unlock()
		return len(ticks) >= 3
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("часы не остановились")
	}

	mtx.Lock()
	defer mtx.Unlock()
	assert.Equal(t, "1:04:05 pm", ticks[0])
}
