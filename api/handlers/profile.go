package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"animix/services"

	"github.com/gin-gonic/gin"
)

type ProfileRequest struct {
	UserID      string `form:"userId" binding:"required"`
	Nickname    string `form:"nickname"`
	Description string `form:"description"`
	Telegram    string `form:"telegram"`
}

func readFormFile(fh *multipart.FileHeader) (*services.ProfileUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	body, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &services.ProfileUpload{
		FileName:    fh.Filename,
		Body:        body,
		ContentType: fh.Header.Get("Content-Type"),
	}, nil
}

// Upload принимает multipart-поле image и возвращает публичный URL
func (api *API) Upload(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Image file is required"})
		return
	}

	upload, err := readFormFile(fh)
	if err != nil {
		internalError(c, "Image upload failed")
		return
	}

	key := fmt.Sprintf("images/%d_%s", time.Now().UnixMilli(), upload.FileName)
	url, err := api.Media.Upload(c.Request.Context(), key, upload.Body, upload.ContentType)
	if err != nil {
		internalError(c, "Image upload failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"imageUrl": url})
}

// UpdateProfile сливает текстовые поля и вложения profilePic/profileBg
// в профиль пользователя
func (api *API) UpdateProfile(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "userId is required"})
		return
	}

	userID, err := strconv.ParseInt(req.UserID, 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	upd := services.ProfileUpdate{
		Nickname:    req.Nickname,
		Description: req.Description,
		Telegram:    req.Telegram,
	}

	if fh, err := c.FormFile("profilePic"); err == nil {
		upload, err := readFormFile(fh)
		if err != nil {
			internalError(c, "Error uploading profile picture")
			return
		}
		upd.ProfilePic = upload
	}
	if fh, err := c.FormFile("profileBg"); err == nil {
		upload, err := readFormFile(fh)
		if err != nil {
			internalError(c, "Error uploading profile background")
			return
		}
		upd.ProfileBg = upload
	}

	user, err := api.Users.UpdateProfile(c.Request.Context(), userID, upd)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		case errors.Is(err, services.ErrProfilePicUploadFailed):
			internalError(c, "Error uploading profile picture")
		case errors.Is(err, services.ErrProfileBgUploadFailed):
			internalError(c, "Error uploading profile background")
		default:
			internalError(c, "Error updating profile")
		}
		return
	}

	c.JSON(http.StatusOK, user)
}
