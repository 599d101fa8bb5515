package worker

import (
	"context"
	"fmt"
	"taskClient/internal/logger"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"
)

// ClockLayout 12-часовой формат вида "3:04:05 pm"
const ClockLayout = "3:04:05 pm"

type Clock struct {
	interval time.Duration
	location *time.Location
	publish  func(string)
	now      func() time.Time
}

// NewClock часы, которые раз в interval отдают время в publish.
// Пустая зона это UTC, интервал по умолчанию одна секунда.
func NewClock(interval time.Duration, zone string, publish func(string)) (*Clock, error) {
	if interval <= 0 {
		interval = time.Second
	}

	location := time.UTC
	if zone != "" {
		loaded, err := time.LoadLocation(zone)
		if err != nil {
			return nil, fmt.Errorf("загрузка часового пояса %q: %w", zone, err)
		}
		location = loaded
	}

	return &Clock{
		interval: interval,
		location: location,
		publish:  publish,
		now:      time.Now,
	}, nil
}

// Start блокирует до отмены ctx. Первое значение публикуется сразу.
func (c *Clock) Start(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	logger.Info("Worker: Часы запущены", zap.String("location", c.location.String()), zap.Duration("interval", c.interval))
	c.Tick()

	for {
		select {
		case <-ticker.C:
			c.Tick()
		case <-ctx.Done():
			logger.Info("Worker: Часы останавливаются")
			return
		}
	}
}

func (c *Clock) Tick() {
	if c.publish != nil {
		c.publish(c.Format(c.now()))
	}
}

func (c *Clock) Format(t time.Time) string {
	return t.In(c.location).Format(ClockLayout)
}
