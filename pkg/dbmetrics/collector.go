package dbmetrics

import (
	"database/sql"
	"time"
)

// StatsSource источник статистики пула (*sql.DB)
type StatsSource interface {
	Stats() sql.DBStats
}

// StatsRecorder получатель статистики пула
type StatsRecorder interface {
	SetDBStats(open, inUse, idle int, waitCount int64, waitDuration time.Duration)
}

// DefaultCollectInterval период опроса статистики пула
const DefaultCollectInterval = 15 * time.Second

// StartPoolCollector периодически переносит db.Stats() в метрики до закрытия stop
func StartPoolCollector(db StatsSource, recorder StatsRecorder, interval time.Duration, stop <-chan struct{}) {
	if interval <= 0 {
		interval = DefaultCollectInterval
	}

	record := func() {
		s := db.Stats()
		recorder.SetDBStats(s.OpenConnections, s.InUse, s.Idle, s.WaitCount, s.WaitDuration)
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		record()
		for {
			select {
			case <-ticker.C:
				record()
			case <-stop:
				return
			}
		}
	}()
}
