package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthStatus struct {
	Status      string    `json:"status"`
	Database    string    `json:"database"`
	LastChecked time.Time `json:"last_checked"`
	Uptime      string    `json:"uptime"`
}

var (
	healthMutex   sync.Mutex
	startTime     = time.Now()
	lastStatus    *HealthStatus
	lastCheckedAt time.Time
	cacheDuration = 5 * time.Second
)

// HealthCheckHandler reports process and database health. The database ping
// result is cached briefly so the supervisor probing every second does not
// hammer the pool.
func HealthCheckHandler(ping func() error) gin.HandlerFunc {
	return func(c *gin.Context) {
		healthMutex.Lock()
		defer healthMutex.Unlock()

		if lastStatus == nil || time.Since(lastCheckedAt) >= cacheDuration {
			status := HealthStatus{
				Status:   "ok",
				Database: "ok",
			}
			if err := ping(); err != nil {
				status.Status = "degraded"
				status.Database = "unreachable"
			}
			lastStatus = &status
			lastCheckedAt = time.Now()
		}

		lastStatus.LastChecked = lastCheckedAt
		lastStatus.Uptime = time.Since(startTime).String()

		code := http.StatusOK
		if lastStatus.Status != "ok" {
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, lastStatus)
	}
}
