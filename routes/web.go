package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupWebRoutes thiết lập web routes
func SetupWebRoutes(router *gin.Engine) {
	web := router.Group("/")
	{
		web.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"message": "Listing Resolver Service",
				"version": "1.0.0",
				"docs":    "/docs",
			})
		})

		web.GET("/docs", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"api": "Listing Resolver API v1",
				"endpoints": map[string]string{
					"page":     "GET /v1/pages/*path",
					"classify": "GET /v1/routes/classify?path=",
					"seed":     "POST /v1/admin/units",
					"posts":    "POST /v1/admin/posts",
					"reindex":  "POST /v1/admin/posts/reindex",
					"stats":    "GET /v1/admin/stats",
					"export":   "GET /v1/admin/export/:type",
					"indexes":  "POST /v1/admin/indexes/build",
					"cache":    "POST /v1/admin/cache/invalidate",
					"health":   "GET /health",
				},
			})
		})
	}
}
