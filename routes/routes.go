// Package routes cung cấp routing cho Listing Resolver Service
//
// Cấu trúc:
// - api.go: API routes (/v1/*)
// - web.go: Web routes (/, /docs)
// - middleware.go: request id, access log
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/listing-resolver/app/controllers"
	"go.uber.org/zap"
)

// SetupAllRoutes thiết lập middleware và tất cả routes
func SetupAllRoutes(router *gin.Engine, pageController *controllers.PageController, adminController *controllers.AdminController, logger *zap.Logger) {
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(AccessLog(logger))

	SetupWebRoutes(router)
	SetupHealthRoutes(router, pageController)
	SetupAPIRoutes(router, pageController, adminController)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":  "Route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}
