package services

import (
	"context"
	"fmt"
	"testing"

	"animix/models"
	"animix/store"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestUserService(t *testing.T) *UserService {
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	documents, err := store.NewGormStore(database)
	require.NoError(t, err)

	return &UserService{Store: documents}
}

func registerTestUser(t *testing.T, s *UserService) *models.User {
	nickname := gofakeit.Username() + "_" + gofakeit.LetterN(6)
	user, err := s.Register(context.Background(),
		gofakeit.Username(), gofakeit.Password(true, true, true, false, false, 12),
		nickname, gofakeit.Sentence(5), "@"+gofakeit.Username())
	require.NoError(t, err)
	return user
}

func TestRegisterDefaults(t *testing.T) {
	s := newTestUserService(t)

	user, err := s.Register(context.Background(), "a", "p", "nick", "", "")
	require.NoError(t, err)

	require.Equal(t, int64(1), user.ID)
	require.Equal(t, "nick", user.Nickname)
	require.Empty(t, user.RecentlyWatched)
	require.NotNil(t, user.RecentlyWatched)
	require.Empty(t, user.Comments)
	require.Empty(t, user.FriendsList)
	require.Zero(t, user.WatchTime)
	require.False(t, user.RegistrationDay.IsZero())

	// Четыре пустые коллекции создаются сразу
	require.Len(t, user.UserCollection, 4)
	for _, name := range []string{
		models.CollectionWatched, models.CollectionLeaved,
		models.CollectionPostponed, models.CollectionInProcess,
	} {
		list, ok := user.UserCollection[name]
		require.True(t, ok, name)
		require.Empty(t, list)
	}
}

func TestRegisterAssignsIncreasingIDs(t *testing.T) {
	s := newTestUserService(t)

	var lastID int64
	for i := 0; i < 5; i++ {
		user := registerTestUser(t, s)
		require.Greater(t, user.ID, lastID)
		lastID = user.ID
	}
}

func TestRegisterDuplicateNickname(t *testing.T) {
	s := newTestUserService(t)

	_, err := s.Register(context.Background(), "a", "p", "nick", "", "")
	require.NoError(t, err)

	_, err = s.Register(context.Background(), "other", "other", "nick", "desc", "@tg")
	require.ErrorIs(t, err, ErrNicknameTaken)

	users, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestFindByCredentials(t *testing.T) {
	s := newTestUserService(t)

	_, err := s.Register(context.Background(), "a", "p", "nick", "", "")
	require.NoError(t, err)

	user, err := s.FindByCredentials(context.Background(), "a", "p")
	require.NoError(t, err)
	require.Equal(t, "nick", user.Nickname)

	_, err = s.FindByCredentials(context.Background(), "a", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.FindByCredentials(context.Background(), "missing", "p")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func episode(movieID string, season, episode int64) models.WatchedEpisode {
	return models.WatchedEpisode{
		MovieID: movieID,
		Season:  models.FlexInt(season),
		Episode: models.FlexInt(episode),
	}
}

func TestRecentlyWatchedEvictsOldest(t *testing.T) {
	s := newTestUserService(t)
	user := registerTestUser(t, s)
	ctx := context.Background()

	for i := 1; i <= 4; i++ {
		_, err := s.UpdateRecentlyWatched(ctx, user.ID, episode(fmt.Sprintf("anime-%d", i), 1, 1))
		require.NoError(t, err)
	}

	got, err := s.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, []models.WatchedEpisode{
		episode("anime-2", 1, 1),
		episode("anime-3", 1, 1),
		episode("anime-4", 1, 1),
	}, got.RecentlyWatched)
}

func TestRecentlyWatchedDuplicateIsNoop(t *testing.T) {
	s := newTestUserService(t)
	user := registerTestUser(t, s)
	ctx := context.Background()

	first, err := s.UpdateRecentlyWatched(ctx, user.ID, episode("anime-1", 2, 7))
	require.NoError(t, err)

	again, err := s.UpdateRecentlyWatched(ctx, user.ID, episode("anime-1", 2, 7))
	require.NoError(t, err)
	require.Equal(t, first, again)
	require.Len(t, again, 1)
}

func TestRecentlyWatchedDistinguishesEpisodes(t *testing.T) {
	s := newTestUserService(t)
	user := registerTestUser(t, s)
	ctx := context.Background()

	// Другой эпизод того же тайтла это отдельная запись
	_, err := s.UpdateRecentlyWatched(ctx, user.ID, episode("anime-1", 1, 1))
	require.NoError(t, err)
	list, err := s.UpdateRecentlyWatched(ctx, user.ID, episode("anime-1", 1, 2))
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestUpdateRecentlyWatchedUserNotFound(t *testing.T) {
	s := newTestUserService(t)

	_, err := s.UpdateRecentlyWatched(context.Background(), 999, episode("anime-1", 1, 1))
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateCollectionDeduplicatesByMovieID(t *testing.T) {
	s := newTestUserService(t)
	user := registerTestUser(t, s)
	ctx := context.Background()

	_, err := s.UpdateCollection(ctx, user.ID, models.CollectionWatched, episode("anime-1", 1, 1))
	require.NoError(t, err)

	// Тот же movieId с другим сезоном не добавляется
	collection, err := s.UpdateCollection(ctx, user.ID, models.CollectionWatched, episode("anime-1", 2, 5))
	require.NoError(t, err)

	require.Equal(t, []models.WatchedEpisode{episode("anime-1", 1, 1)}, collection[models.CollectionWatched])
}

func TestUpdateCollectionCreatesUnknownType(t *testing.T) {
	s := newTestUserService(t)
	user := registerTestUser(t, s)
	ctx := context.Background()

	collection, err := s.UpdateCollection(ctx, user.ID, "favorites", episode("anime-9", 1, 1))
	require.NoError(t, err)
	require.Len(t, collection["favorites"], 1)

	// Стандартные коллекции при этом не трогаются
	require.Empty(t, collection[models.CollectionWatched])
}

func TestAddCommentNewestFirst(t *testing.T) {
	s := newTestUserService(t)
	user := registerTestUser(t, s)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		_, err := s.AddComment(ctx, user.ID, models.UserComment{
			AnimeID:       fmt.Sprintf("anime-%d", i),
			ReviewComment: fmt.Sprintf("comment %d", i),
			Rating:        models.FlexInt(i),
			Date:          "2024-06-01",
		})
		require.NoError(t, err)
	}

	got, err := s.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 3)
	require.Equal(t, "anime-3", got.Comments[0].AnimeID)
	require.Equal(t, "anime-1", got.Comments[2].AnimeID)
}

func TestChangePassword(t *testing.T) {
	s := newTestUserService(t)
	ctx := context.Background()

	user, err := s.Register(ctx, "a", "old-pass", "nick", "", "")
	require.NoError(t, err)

	updated, err := s.ChangePassword(ctx, user.ID, "old-pass", "new-pass")
	require.NoError(t, err)
	require.Equal(t, "new-pass", updated.Password)

	got, err := s.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "new-pass", got.Password)
}

func TestChangePasswordWrongOldPassword(t *testing.T) {
	s := newTestUserService(t)
	ctx := context.Background()

	user, err := s.Register(ctx, "a", "old-pass", "nick", "", "")
	require.NoError(t, err)

	_, err = s.ChangePassword(ctx, user.ID, "wrong", "new-pass")
	require.ErrorIs(t, err, ErrWrongPassword)

	// Пароль не изменился
	got, err := s.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "old-pass", got.Password)
}
