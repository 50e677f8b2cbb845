package services

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrAnimeNotFound      = errors.New("anime not found")
	ErrNicknameTaken      = errors.New("user with this nickname already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongPassword      = errors.New("old password is incorrect")

	ErrProfilePicUploadFailed = errors.New("profile picture upload failed")
	ErrProfileBgUploadFailed  = errors.New("profile background upload failed")
)
