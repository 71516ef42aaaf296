package transport

import (
	"github.com/gin-gonic/gin"
)

func InitRoutes(docHandler *DocumentHandler) *gin.Engine {
	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.POST("/compress/basic", docHandler.CompressBasic)
	router.POST("/upload", docHandler.UploadDocument)
	router.GET("/document/:id", docHandler.GetDocument)
	router.GET("/document/:id/download", docHandler.DownloadDocument)
	router.DELETE("/document/:id", docHandler.DeleteDocument)
	router.POST("/optimize", docHandler.OptimizePDF)
	router.POST("/pdf-to-images", docHandler.PDFToImages)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "pdf-compressor-service",
		})
	})
	return router
}
