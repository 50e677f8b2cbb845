package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubUploader struct {
	fail bool
	keys []string
}

func (u *stubUploader) Upload(_ context.Context, key string, _ []byte, _ string) (string, error) {
	if u.fail {
		return "", errors.New("s3 is down")
	}
	u.keys = append(u.keys, key)
	return "https://cdn.test/animix-media/" + key, nil
}

func TestUpdateProfileTextFields(t *testing.T) {
	s := newTestUserService(t)
	ctx := context.Background()

	user, err := s.Register(ctx, "a", "p", "nick", "old description", "@old")
	require.NoError(t, err)

	updated, err := s.UpdateProfile(ctx, user.ID, ProfileUpdate{
		Nickname: "newnick",
		Telegram: "@new",
	})
	require.NoError(t, err)
	require.Equal(t, "newnick", updated.Nickname)
	require.Equal(t, "@new", updated.TelegramNickName)
	// Пустые поля не затирают старые значения
	require.Equal(t, "old description", updated.Description)
}

func TestUpdateProfileUploadsAttachments(t *testing.T) {
	s := newTestUserService(t)
	uploader := &stubUploader{}
	s.Media = uploader
	ctx := context.Background()

	user, err := s.Register(ctx, "a", "p", "nick", "", "")
	require.NoError(t, err)

	updated, err := s.UpdateProfile(ctx, user.ID, ProfileUpdate{
		ProfilePic: &ProfileUpload{FileName: "me.png", Body: []byte("pic"), ContentType: "image/png"},
		ProfileBg:  &ProfileUpload{FileName: "bg.jpg", Body: []byte("bg"), ContentType: "image/jpeg"},
	})
	require.NoError(t, err)

	require.Contains(t, updated.Avatar, "profilePics/1/me.png")
	require.Contains(t, updated.ProfileBg, "profileBgs/1/bg.jpg")
	require.Equal(t, []string{"profilePics/1/me.png", "profileBgs/1/bg.jpg"}, uploader.keys)

	got, err := s.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, updated.Avatar, got.Avatar)
}

func TestUpdateProfileUploadFailureDoesNotPersist(t *testing.T) {
	s := newTestUserService(t)
	s.Media = &stubUploader{fail: true}
	ctx := context.Background()

	user, err := s.Register(ctx, "a", "p", "nick", "", "")
	require.NoError(t, err)

	_, err = s.UpdateProfile(ctx, user.ID, ProfileUpdate{
		Nickname:   "newnick",
		ProfilePic: &ProfileUpload{FileName: "me.png", Body: []byte("pic"), ContentType: "image/png"},
	})
	require.ErrorIs(t, err, ErrProfilePicUploadFailed)

	// Ничего не сохранилось, даже текстовые изменения
	got, err := s.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "nick", got.Nickname)
	require.Empty(t, got.Avatar)
}

func TestUpdateProfileUserNotFound(t *testing.T) {
	s := newTestUserService(t)

	_, err := s.UpdateProfile(context.Background(), 404, ProfileUpdate{Nickname: "x"})
	require.ErrorIs(t, err, ErrUserNotFound)
}
