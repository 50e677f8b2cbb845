package handlers

import (
	"net/http"
	"strconv"

	"animix/services"

	"github.com/gin-gonic/gin"
)

// API хендлеры всех эндпоинтов. Хранилище и загрузчик передаются
// явно, глобальных клиентов нет.
type API struct {
	Users *services.UserService
	Anime *services.AnimeService
	Media services.Uploader
}

func NewAPI(users *services.UserService, anime *services.AnimeService, media services.Uploader) *API {
	return &API{Users: users, Anime: anime, Media: media}
}

// userIDParam парсит :userId из пути. Нечисловой id трактуется как
// несуществующий пользователь, как и в первой версии бэкенда.
func userIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return 0, false
	}
	return id, true
}

func internalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, gin.H{"message": message})
}
