package routes

import (
	"github.com/ImpulsoLocal2024/impulso-local-back/src/controllers"
	"github.com/ImpulsoLocal2024/impulso-local-back/src/middleware"
	"github.com/ImpulsoLocal2024/impulso-local-back/src/services"
	"github.com/gin-gonic/gin"
)

func SetupFileRoutes(router *gin.Engine, files *services.FileService) {
	controller := controllers.NewFileController(files)

	recordFiles := router.Group("/tables/:table")
	recordFiles.Use(middleware.AuthMiddleware())
	{
		recordFiles.POST("/records/:id/files", controller.UploadFile)
		recordFiles.GET("/records/:id/files", controller.GetFiles)
		recordFiles.GET("/records/:id/files/zip", controller.DownloadZip)
		recordFiles.POST("/files-zip", controller.DownloadMultipleZip)
	}

	fileGroup := router.Group("/files")
	fileGroup.Use(middleware.AuthMiddleware())
	{
		fileGroup.PUT("/:fileId/compliance", controller.UpdateCompliance)
		fileGroup.DELETE("/:fileId", controller.DeleteFile)
	}
}
