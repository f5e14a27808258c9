package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/wyfcoding/tradereview/pkg/config"
	"github.com/wyfcoding/tradereview/pkg/metrics"
	"github.com/wyfcoding/tradereview/pkg/middleware"
)

// NewRouter 组装 Gin 引擎：全局中间件、系统路由、指标端点与业务路由
func NewRouter(cfg *config.Config, h *ReviewHandler, m *metrics.Metrics) *gin.Engine {
	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	e := gin.New()
	if cfg.Tracing.Enabled {
		e.Use(otelgin.Middleware(cfg.ServiceName))
	}
	e.Use(middleware.GinLoggingMiddleware())
	// 指标中间件位于恢复中间件之外，panic 转成的 500 同样计入
	if m != nil {
		e.Use(middleware.GinMetricsMiddleware(m))
	}
	e.Use(
		middleware.GinRecoveryMiddleware(),
		middleware.GinCORSMiddleware(),
	)

	// 1. 系统路由组
	sys := e.Group("/sys")
	{
		sys.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":    "UP",
				"service":   cfg.ServiceName,
				"timestamp": time.Now().Unix(),
			})
		})
		sys.GET("/ready", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "READY"})
		})
	}

	if cfg.Metrics.Enabled && m != nil {
		e.GET(cfg.Metrics.Path, gin.WrapH(m.Handler()))
	}

	// 2. 业务路由
	h.RegisterRoutes(e)

	return e
}
