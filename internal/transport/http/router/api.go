package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"lawlink-api/internal/core/auth"
	mdw "lawlink-api/internal/transport/http/middleware"
)

// Deps 引擎装配所需的全部依赖，由 main 显式注入
type Deps struct {
	Log      *zap.Logger
	JWT      *auth.JWTer
	Registry *Registry
}

func NewEngine(d Deps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(d.Log, true),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
		cors.Default(),
		// 守卫必须先于全部页面 handler；API/静态/探活路径自行跳过
		mdw.RouteGuard(d.JWT),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	d.Registry.MountAPI(api)

	web := r.Group("")
	d.Registry.MountWeb(web)

	return r
}
