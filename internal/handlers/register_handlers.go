package handlers

import (
	"github.com/SscSPs/merchant_payments/cmd/docs"
	portssvc "github.com/SscSPs/merchant_payments/internal/core/ports/services"
	"github.com/SscSPs/merchant_payments/internal/middleware"
	"github.com/SscSPs/merchant_payments/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// withdrawalLimiter may be nil.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	withdrawalLimiter *limiter.Limiter,
) {
	registerValidators()

	r.GET("/health", getHealth(services.RateStore))

	setupAPIV1Routes(r, cfg, services, withdrawalLimiter)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	withdrawalLimiter *limiter.Limiter,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	registerConversionRateRoutes(v1, services.ConversionRate, cfg.Precision, cfg.RateAdminIDs)

	merchant := v1.Group("/merchants/:merchantID", middleware.RequireMerchantMatch("merchantID"))
	registerBalanceRoutes(merchant, services.Balance)
	registerWithdrawalRoutes(merchant, services.Withdrawal, withdrawalLimiter)
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
