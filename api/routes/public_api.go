package routes

import (
	"animix/api/handlers"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PublicApi регистрирует эндпоинты. Пути совпадают с первой версией
// бэкенда, чтобы фронтенд работал без изменений.
func PublicApi(router *gin.Engine, api *handlers.API) {
	router.GET("/anime", api.AnimeList)
	router.POST("/register", api.Register)
	router.POST("/login", api.Login)

	router.GET("/users", api.UserList)
	router.PUT("/users/:userId/updateRecentlyWatched", api.UpdateRecentlyWatched)
	router.PUT("/users/:userId/updateCollection", api.UpdateCollection)
	router.PUT("/users/:userId/addComment", api.UserAddComment)
	router.PUT("/users/:userId/changePassword", api.ChangePassword)

	router.PUT("/anime/:animeId/addComment", api.AnimeAddComment)

	router.POST("/upload", api.Upload)
	router.POST("/profile", api.UpdateProfile)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
