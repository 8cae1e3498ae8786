package routes

import (
	"github.com/ImpulsoLocal2024/impulso-local-back/src/controllers"
	"github.com/ImpulsoLocal2024/impulso-local-back/src/middleware"
	"github.com/ImpulsoLocal2024/impulso-local-back/src/services"
	"github.com/gin-gonic/gin"
)

func SetupTableRoutes(router *gin.Engine, schema *services.SchemaService) {
	controller := controllers.NewTableController(schema)

	// Protected routes
	tableGroup := router.Group("/tables")
	tableGroup.Use(middleware.AuthMiddleware())
	{
		tableGroup.GET("", controller.ListTables)
		tableGroup.POST("", controller.CreateTable)
		tableGroup.GET("/:table", controller.DescribeTable)
		tableGroup.PUT("/:table", controller.EditTable)
		tableGroup.DELETE("/:table", controller.DeleteTable)

		tableGroup.PUT("/:table/status", controller.UpdatePrimaryStatus)
		tableGroup.GET("/:table/preferences", controller.GetFieldPreference)
		tableGroup.PUT("/:table/preferences", controller.SaveFieldPreference)
	}
}
