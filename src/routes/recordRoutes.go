package routes

import (
	"github.com/ImpulsoLocal2024/impulso-local-back/src/controllers"
	"github.com/ImpulsoLocal2024/impulso-local-back/src/middleware"
	"github.com/ImpulsoLocal2024/impulso-local-back/src/services"
	"github.com/gin-gonic/gin"
)

func SetupRecordRoutes(router *gin.Engine, records *services.RecordService) {
	controller := controllers.NewRecordController(records)

	// Record CRUD over provider_/inscription_ tables (and reads over pi_)
	recordGroup := router.Group("/tables/:table")
	recordGroup.Use(middleware.AuthMiddleware())
	{
		recordGroup.GET("/records", controller.ListRecords)
		recordGroup.POST("/records", controller.CreateRecord)
		recordGroup.GET("/records/:id", controller.GetRecordByID)
		recordGroup.PUT("/records/:id", controller.UpdateRecord)
		recordGroup.POST("/bulk-update", controller.BulkUpdate)
	}

	// Plan (pi_) variants: partial update, idempotent upsert and hard delete
	planGroup := router.Group("/pi/tables/:table")
	planGroup.Use(middleware.AuthMiddleware())
	{
		planGroup.POST("/records", controller.UpsertPlanRecord)
		planGroup.PUT("/records/:id", controller.UpdatePlanRecord)
		planGroup.DELETE("/records/:id", controller.DeleteRecord)
	}
}
