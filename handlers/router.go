package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the API routes onto a gin engine.
func NewRouter(stegoHandler *StegoHandler, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.MaxMultipartMemory = stegoHandler.maxUploadBytes

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"}
	config.ExposeHeaders = []string{
		"Content-Disposition",
		"X-Stego-Key-Exponent",
		"X-Stego-Message-Bits",
		"X-Stego-Segment-Size",
		"X-Stego-PSNR",
		"X-Stego-Verified",
		"X-Cover-PSNR",
		"X-Cover-Sample-Rate",
	}
	config.AllowCredentials = true
	router.Use(cors.New(config))
	router.Use(limitUploads(stegoHandler.maxUploadBytes))

	// API Routes
	api := router.Group("/api/v1")
	{
		api.GET("/health", stegoHandler.HealthCheck)

		stego := api.Group("/stego")
		{
			stego.POST("/embed", stegoHandler.EmbedMessage)
			stego.POST("/extract", stegoHandler.ExtractMessage)
		}

		audio := api.Group("/audio")
		{
			audio.POST("/convert", stegoHandler.ConvertCover)
			audio.POST("/inspect", stegoHandler.InspectAudio)
		}
	}

	return router
}
