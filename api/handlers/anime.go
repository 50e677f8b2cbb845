package handlers

import (
	"errors"
	"net/http"

	"animix/models"
	"animix/services"

	"github.com/gin-gonic/gin"
)

type AnimeCommentRequest struct {
	UserID        *models.FlexInt `json:"userId" binding:"required"`
	ReviewComment string          `json:"reviewComment" binding:"required"`
	Rating        *models.FlexInt `json:"rating" binding:"required"`
	Avatar        string          `json:"avatar" binding:"required"`
	Date          string          `json:"date" binding:"required"`
}

func (api *API) AnimeList(c *gin.Context) {
	list, err := api.Anime.List(c.Request.Context())
	if err != nil {
		internalError(c, "Error reading anime")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (api *API) AnimeAddComment(c *gin.Context) {
	animeID := c.Param("animeId")

	var req AnimeCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "userId, reviewComment, rating, avatar and date are required"})
		return
	}

	comment := models.AnimeComment{
		UserID:        *req.UserID,
		ReviewComment: req.ReviewComment,
		Rating:        *req.Rating,
		Avatar:        req.Avatar,
		Date:          req.Date,
	}
	anime, err := api.Anime.AddComment(c.Request.Context(), animeID, comment)
	if err != nil {
		if errors.Is(err, services.ErrAnimeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Anime not found"})
			return
		}
		internalError(c, "Error adding comment")
		return
	}

	c.JSON(http.StatusOK, anime)
}
