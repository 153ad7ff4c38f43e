package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"event-schedule/config"
	"event-schedule/internal/api/handler"
	"event-schedule/internal/api/middleware"
)

// Setup 初始化并返回 Gin 路由引擎
// limiter 为 nil 时不限流（Redis 不可用）；db 为 nil 时健康检查只返回进程存活
func Setup(cfg *config.Config, h *handler.Handler, limiter middleware.RateLimiter, db *gorm.DB, logger *zap.Logger) *gin.Engine {
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimitBytes))

	// ── 健康检查 ──
	r.GET("/health", healthCheck(db))

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 活动
		events := v1.Group("/events")
		{
			events.GET("", h.Event.ListEvents)
			events.GET("/:slug", h.Event.GetEvent)
			events.GET("/:slug/calendar.ics", h.Event.GetCalendar)
		}

		// 活动日网格与导出
		days := v1.Group("/days")
		{
			days.GET("/:id/grid", h.Day.GetDayGrid)
			days.GET("/:id/locations/:locationId/slots", h.Day.GetLocationSlots)
			days.GET("/:id/export", h.Day.ExportDayGrid)
		}

		// 地点
		locations := v1.Group("/locations")
		{
			locations.GET("", h.Location.ListLocations)
			locations.GET("/:id", h.Location.GetLocation)
			locations.POST("", h.Location.CreateLocation)
			locations.PUT("/:id", h.Location.UpdateLocation)
			locations.DELETE("/:id", h.Location.DeleteLocation)
		}

		// 嘉宾
		v1.GET("/guests", h.Guest.ListGuests)

		// 场次
		sessions := v1.Group("/sessions")
		{
			sessions.GET("", h.Session.ListSessions)
			sessions.GET("/:id", h.Session.GetSession)
			sessions.POST("",
				middleware.RateLimit(limiter, cfg.Schedule.RateLimit, cfg.Schedule.RateWindow, logger),
				h.Session.CreateSession,
			)
			sessions.POST("/validate", h.Session.ValidateSession)
		}
	}

	return r
}

func healthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}

		sqlDB, err := db.DB()
		if err == nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
	}
}
