package utils

import (
	"database/sql"
	"sync"
	"time"
)

// HealthStatus represents current status of the backing store.
type HealthStatus struct {
	Store     bool      `json:"store"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor performs periodic health checks and updates in-memory state.
func StartHealthMonitor(db *sql.DB) {
	record := func() {
		healthMu.Lock()
		currentHealth = HealthStatus{
			Store:     db.Ping() == nil,
			CheckedAt: time.Now(),
		}
		healthMu.Unlock()
	}
	record()

	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			record()
		}
	}()
}
