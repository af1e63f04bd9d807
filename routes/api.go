package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/listing-resolver/app/controllers"
)

// SetupAPIRoutes thiết lập tất cả API routes
func SetupAPIRoutes(router *gin.Engine, pageController *controllers.PageController, adminController *controllers.AdminController) {
	v1 := router.Group("/v1")
	{
		v1.GET("/pages/*path", pageController.ResolvePage)
		v1.GET("/routes/classify", pageController.ClassifyRoute)

		if adminController != nil {
			admin := v1.Group("/admin")
			{
				admin.POST("/units", adminController.SeedUnits)
				admin.POST("/posts", adminController.SeedPosts)
				admin.POST("/posts/reindex", adminController.ReindexPosts)
				admin.POST("/indexes/build", adminController.BuildIndexes)
				admin.POST("/cache/invalidate", adminController.InvalidateCache)
				admin.GET("/stats", adminController.GetStats)
				admin.GET("/export/:type", adminController.ExportData)
			}
		}

		v1.GET("/health", pageController.HealthCheck)
	}
}

// SetupHealthRoutes thiết lập health check routes
func SetupHealthRoutes(router *gin.Engine, pageController *controllers.PageController) {
	router.GET("/health", pageController.HealthCheck)
	router.GET("/ready", pageController.HealthCheck)
	router.GET("/live", pageController.HealthCheck)
}
