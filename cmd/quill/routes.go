package main

import (
	"codeberg.org/llamaquill/quill/api/rest/generate"
	"codeberg.org/llamaquill/quill/api/rest/health"
	"codeberg.org/llamaquill/quill/api/web"
	apperrors "codeberg.org/llamaquill/quill/internal/errors"
	"codeberg.org/llamaquill/quill/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// sets up all routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(gin.Recovery())
	router.Use(RequestLogger())
	router.Use(metrics.Middleware())
	router.Use(CORSMiddleware(server.cfg.CORSOrigins))

	limit := RateLimitMiddleware(server.rate)

	router.GET("/health", health.Handler(version, string(server.cfg.Provider), server.gate))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	web.RegisterRoutes(router, server.page, limit)

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		generate.RegisterRoutes(v1, server.service, server.gate, server.defaults, limit)
	}

	router.NoRoute(func(c *gin.Context) {
		apperrors.NotFound(c, "route")
	})
}
