// Package workers holds background loops that run alongside the HTTP
// server. They observe task state; they never mutate it.
package workers

import (
	"context"
	"time"

	"github.com/taskflow-app/taskflow/internal/engine"
	"github.com/taskflow-app/taskflow/internal/models"
	"go.uber.org/zap"
)

// DefaultCountdownInterval is the default refresh interval. Countdown
// labels must never lag real time by more than a minute.
const DefaultCountdownInterval = time.Minute

// TaskSource provides the current task list to the monitor.
type TaskSource interface {
	Snapshot() []models.Task
}

// CountdownMonitor periodically recomputes time-left labels for all dated
// tasks so displayed countdowns stay current. Labels are derived values;
// each tick reads the task list and logs the aggregate picture.
type CountdownMonitor struct {
	source   TaskSource
	logger   *zap.Logger
	interval time.Duration
	now      func() int64
}

// NewCountdownMonitor creates a monitor over the given task source. An
// interval of zero means DefaultCountdownInterval.
func NewCountdownMonitor(source TaskSource, logger *zap.Logger, interval time.Duration) *CountdownMonitor {
	if interval <= 0 {
		interval = DefaultCountdownInterval
	}
	return &CountdownMonitor{
		source:   source,
		logger:   logger,
		interval: interval,
		now:      models.NowMilli,
	}
}

// Run ticks until ctx is cancelled. One tick fires immediately on start.
func (m *CountdownMonitor) Run(ctx context.Context) {
	m.logger.Info("countdown_monitor_started",
		zap.Duration("interval", m.interval),
	)

	m.Tick()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("countdown_monitor_stopped")
			return
		case <-ticker.C:
			m.Tick()
		}
	}
}

// Tick recomputes countdown labels for every dated, incomplete task and
// logs the aggregate counts.
func (m *CountdownMonitor) Tick() {
	now := m.now()
	tasks := m.source.Snapshot()

	var dated, overdue, dueToday int
	for i := range tasks {
		t := &tasks[i]
		if t.DueDate == nil || t.Completed {
			continue
		}
		dated++
		label := engine.DescribeTimeLeft(t.DueDate, t.Completed, now)
		switch {
		case label == engine.OverdueLabel:
			overdue++
		case *t.DueDate-now < 24*int64(time.Hour/time.Millisecond):
			dueToday++
		}
	}

	if overdue > 0 {
		m.logger.Warn("countdown_tick",
			zap.Int("dated_tasks", dated),
			zap.Int("overdue", overdue),
			zap.Int("due_within_day", dueToday),
		)
		return
	}
	m.logger.Debug("countdown_tick",
		zap.Int("dated_tasks", dated),
		zap.Int("overdue", overdue),
		zap.Int("due_within_day", dueToday),
	)
}
