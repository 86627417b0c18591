package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"car-lease-service/internal/core/auth"
	"car-lease-service/internal/domain"
	"car-lease-service/internal/transport/http/handler"
	mdw "car-lease-service/internal/transport/http/middleware"
)

// Deps 引擎装配所需的全部依赖。
type Deps struct {
	Log      *zap.Logger
	JWTer    *auth.JWTer
	GuardOn  bool // 为 true 时 /api/admin 要求 ADMIN 令牌
	Admin    *handler.AdminHandler
	Owner    *handler.OwnerHandler
	Customer *handler.CustomerHandler
	Auth     *handler.AuthHandler
}

func NewAPIEngine(d Deps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(d.Log, true),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	d.Auth.Mount(api.Group("/auth"))

	admin := api.Group("/admin")
	if d.GuardOn {
		admin.Use(mdw.AuthJWT(d.JWTer, string(domain.RoleAdmin)))
	}
	d.Admin.Mount(admin)

	d.Owner.Mount(api.Group("/owners"))
	d.Customer.Mount(api.Group("/customers"))

	return r
}
