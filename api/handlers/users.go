package handlers

import (
	"errors"
	"net/http"

	"animix/models"
	"animix/services"

	"github.com/gin-gonic/gin"
)

type RecentlyWatchedRequest struct {
	MovieID string          `json:"movieId" binding:"required"`
	Season  *models.FlexInt `json:"season" binding:"required"`
	Episode *models.FlexInt `json:"episode" binding:"required"`
}

type CollectionRequest struct {
	CollectionType string          `json:"collectionType" binding:"required"`
	MovieID        string          `json:"movieId" binding:"required"`
	Season         *models.FlexInt `json:"season" binding:"required"`
	Episode        *models.FlexInt `json:"episode" binding:"required"`
}

type UserCommentRequest struct {
	AnimeID       string          `json:"animeId" binding:"required"`
	ReviewComment string          `json:"reviewComment" binding:"required"`
	Rating        *models.FlexInt `json:"rating" binding:"required"`
	Cover         string          `json:"cover" binding:"required"`
	Date          string          `json:"date" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

func (api *API) UserList(c *gin.Context) {
	users, err := api.Users.List(c.Request.Context())
	if err != nil {
		internalError(c, "Error reading users")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (api *API) UpdateRecentlyWatched(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	var req RecentlyWatchedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "movieId, season and episode are required"})
		return
	}

	item := models.WatchedEpisode{
		MovieID: req.MovieID,
		Season:  *req.Season,
		Episode: *req.Episode,
	}
	recentlyWatched, err := api.Users.UpdateRecentlyWatched(c.Request.Context(), userID, item)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		internalError(c, "Error updating recently watched")
		return
	}

	c.JSON(http.StatusOK, gin.H{"recentlyWatched": recentlyWatched})
}

func (api *API) UpdateCollection(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	var req CollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "collectionType, movieId, season and episode are required"})
		return
	}

	item := models.WatchedEpisode{
		MovieID: req.MovieID,
		Season:  *req.Season,
		Episode: *req.Episode,
	}
	collection, err := api.Users.UpdateCollection(c.Request.Context(), userID, req.CollectionType, item)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		internalError(c, "Error updating collection")
		return
	}

	c.JSON(http.StatusOK, gin.H{"userCollection": collection})
}

func (api *API) UserAddComment(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	var req UserCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "animeId, reviewComment, rating, cover and date are required"})
		return
	}

	comment := models.UserComment{
		AnimeID:       req.AnimeID,
		ReviewComment: req.ReviewComment,
		Rating:        *req.Rating,
		Cover:         req.Cover,
		Date:          req.Date,
	}
	user, err := api.Users.AddComment(c.Request.Context(), userID, comment)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		internalError(c, "Error adding comment")
		return
	}

	c.JSON(http.StatusOK, user)
}

func (api *API) ChangePassword(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "oldPassword and newPassword are required"})
		return
	}

	user, err := api.Users.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		case errors.Is(err, services.ErrWrongPassword):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Old password is incorrect"})
		default:
			internalError(c, "Error changing password")
		}
		return
	}

	c.JSON(http.StatusOK, user)
}
