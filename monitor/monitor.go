package monitor

import (
	"runtime"
	"time"

	"orbit-api/config"

	"github.com/gin-gonic/gin"
)

var startedAt = time.Now()

// RegisterMonitorRoute exposes a small runtime-status payload for the ops
// dashboard. Database reachability is checked on every call.
func RegisterMonitorRoute(router *gin.Engine) {
	router.GET("/monitor", func(c *gin.Context) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		dbStatus := "ok"
		if sqlDB, err := config.DB.DB(); err != nil {
			dbStatus = "error: " + err.Error()
		} else if err := sqlDB.Ping(); err != nil {
			dbStatus = "error: " + err.Error()
		}

		c.JSON(200, gin.H{
			"uptime_seconds": int64(time.Since(startedAt).Seconds()),
			"goroutines":     runtime.NumGoroutine(),
			"heap_alloc_mb":  float64(m.HeapAlloc) / (1024 * 1024),
			"num_gc":         m.NumGC,
			"database":       dbStatus,
		})
	})
}
