package handlers

import (
	"errors"
	"net/http"

	"animix/services"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Login            string `json:"login" binding:"required"`
	Password         string `json:"password" binding:"required"`
	NickName         string `json:"nickName" binding:"required"`
	Description      string `json:"description"`
	TelegramNickName string `json:"telegramNickName"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (api *API) Register(c *gin.Context) {
	var req RegisterRequest
	// Проверка обязательных полей идет до проверки уникальности
	// никнейма, чтобы не возвращать ложный duplicate-ответ
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Login, password, and nickname are required"})
		return
	}

	user, err := api.Users.Register(c.Request.Context(),
		req.Login, req.Password, req.NickName, req.Description, req.TelegramNickName)
	if err != nil {
		if errors.Is(err, services.ErrNicknameTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User with this nickname already exists"})
			return
		}
		internalError(c, "Error registering user")
		return
	}

	c.JSON(http.StatusOK, user)
}

func (api *API) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Login and password are required"})
		return
	}

	user, err := api.Users.FindByCredentials(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found or credentials are incorrect"})
			return
		}
		internalError(c, "Error reading users")
		return
	}

	c.JSON(http.StatusOK, user)
}
