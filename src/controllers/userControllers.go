package controllers

import (
	"github.com/ImpulsoLocal2024/impulso-local-back/src/models"
	"github.com/ImpulsoLocal2024/impulso-local-back/src/services"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{service: service}
}

func (uc *UserController) CreateUser(c *gin.Context) {
	var request models.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if request.Username == "" || request.Password == "" {
		c.JSON(400, gin.H{"error": "username y password son obligatorios"})
		return
	}

	user := models.UserModel{Username: request.Username, Password: request.Password}
	created, err := uc.service.CreateUser(&user)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, models.RegisterResponse{ID: created.Id, Username: created.Username})
}

func (uc *UserController) AuthenticateUser(c *gin.Context) {
	var request models.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	token, err := uc.service.AuthenticateUser(request.Username, request.Password)
	if err != nil {
		c.JSON(401, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"token": token})
}
