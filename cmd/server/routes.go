package main

import (
	"net/http"

	"contract-registry.backend/internal/interfaces/http/handlers"
	"contract-registry.backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	serviceName    = "contract-registry"
	serviceVersion = "0.1.0"
)

type routeDeps struct {
	contractTypeHandler *handlers.ContractTypeHandler
	contractHandler     *handlers.ContractHandler
	adminHandler        *handlers.AdminHandler
	authMiddleware      gin.HandlerFunc
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, Idempotency-Key, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
			"version": serviceVersion,
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		contractTypes := v1.Group("/contract-types")
		{
			contractTypes.GET("", d.contractTypeHandler.ListContractTypes)
			contractTypes.GET("/remote/:name", d.contractTypeHandler.GetByRemoteName)
			contractTypes.GET("/:type", d.contractTypeHandler.GetContractType)
			contractTypes.POST("/:type/validate", d.contractTypeHandler.ValidateMetadata)
		}

		contracts := v1.Group("/contracts")
		{
			contracts.POST("/detect", d.contractHandler.DetectContract)
			contracts.POST("/resolve", middleware.IdempotencyMiddleware(), d.contractHandler.ResolveContract)
			contracts.GET("/resolutions", d.contractHandler.ListResolutions)
			contracts.GET("/resolutions/:id", d.contractHandler.GetResolution)
			contracts.GET("/resolutions/:id/metadata", d.contractHandler.GetResolutionMetadata)
			contracts.GET("/resolutions/:id/roles/:role", d.contractHandler.GetResolutionRoleMembers)
			contracts.DELETE("/resolutions/:id", d.authMiddleware, middleware.RequireAdmin(), d.contractHandler.DeleteResolution)
		}

		admin := v1.Group("/admin")
		{
			admin.POST("/token", d.adminHandler.IssueToken)
		}
	}
}
