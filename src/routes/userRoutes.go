package routes

import (
	"github.com/ImpulsoLocal2024/impulso-local-back/src/controllers"
	"github.com/ImpulsoLocal2024/impulso-local-back/src/services"
	"github.com/gin-gonic/gin"
)

func SetupUserRoutes(router *gin.Engine, service *services.UserService) {
	controller := controllers.NewUserController(service)

	// Public routes
	router.POST("/login", controller.AuthenticateUser)
	router.POST("/register", controller.CreateUser)
}
