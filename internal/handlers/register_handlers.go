package handlers

import (
	"github.com/SscSPs/payhub_backend/cmd/docs"
	portssvc "github.com/SscSPs/payhub_backend/internal/core/ports/services"
	"github.com/SscSPs/payhub_backend/internal/middleware"
	"github.com/SscSPs/payhub_backend/internal/platform/config"
	"github.com/SscSPs/payhub_backend/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RouteDeps carries the optional cross-cutting pieces built in main.
// Nil limiters disable throttling; a nil Posthog client disables analytics.
type RouteDeps struct {
	LoginLimiter *limiter.Limiter
	APILimiter   *limiter.Limiter
	Posthog      *utils.PosthogClientWrapper
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	r.GET("/health", getHealth)

	RegisterAuthRoutes(r.Group("/api/v1/auth"), services, deps.LoginLimiter)

	setupAPIV1Routes(r, cfg, services, deps)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the protected /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	chain := []gin.HandlerFunc{middleware.AuthMiddleware(cfg.JWTSecret)}
	if deps.APILimiter != nil {
		chain = append(chain, middleware.RateLimit(deps.APILimiter))
	}
	chain = append(chain, middleware.PosthogMiddleware(deps.Posthog))

	v1 := r.Group("/api/v1", chain...)

	RegisterAccountRoutes(v1, services.Account, services.User)
	RegisterTransactionRoutes(v1, services.Ledger, deps.Posthog)
	RegisterCardRoutes(v1, services.Card)
	RegisterContactRoutes(v1, services.Contact)
	RegisterQRCodeRoutes(v1, services.QRCode)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
