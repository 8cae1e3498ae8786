package routes

import (
	"github.com/ImpulsoLocal2024/impulso-local-back/src/controllers"
	"github.com/ImpulsoLocal2024/impulso-local-back/src/middleware"
	"github.com/ImpulsoLocal2024/impulso-local-back/src/services"
	"github.com/gin-gonic/gin"
)

func SetupTransferRoutes(router *gin.Engine, transfer *services.TransferService) {
	controller := controllers.NewTransferController(transfer)

	transferGroup := router.Group("/tables/:table")
	transferGroup.Use(middleware.AuthMiddleware())
	{
		transferGroup.GET("/csv", controller.ExportCSV)
		transferGroup.GET("/csv-template", controller.ExportTemplate)
		transferGroup.POST("/csv", controller.ImportCSV)
		transferGroup.GET("/xlsx", controller.ExportExcel)
	}
}
