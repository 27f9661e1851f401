package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupWebRoutes thiết lập web routes (nếu cần trong tương lai)
func SetupWebRoutes(router *gin.Engine) {
	// Web routes group
	web := router.Group("/")
	{
		// Home page
		web.GET("/", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"message": "Address Parser Service",
				"version": "1.0.0",
				"docs":    "/docs",
			})
		})
		
		// API documentation
		web.GET("/docs", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"api": "Address Parser API v1",
				"endpoints": map[string]string{
					"parse":     "POST /v1/addresses/parse",
					"batch":     "POST /v1/addresses/jobs",
					"job_status": "GET /v1/addresses/jobs/:jobID/status",
					"job_results": "GET /v1/addresses/jobs/:jobID/results",
					"health":    "GET /v1/health",
				},
			})
		})
		
		// Status page
		web.GET("/status", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "running",
				"service": "Address Parser",
				"uptime": "to be implemented",
			})
		})
	}
}
