package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"

	"animix/models"
	"animix/store"
)

// UserService операции над документами пользователей. Каждая мутация
// читает документ целиком, меняет его в памяти и записывает обратно;
// при конкурирующих запросах побеждает последняя запись.
type UserService struct {
	Store store.DocumentStore
	Media Uploader
}

func userKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

// List возвращает всех пользователей
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	docs, err := s.Store.ScanAll(ctx, store.UsersTable)
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(docs))
	for _, doc := range docs {
		var u models.User
		if err := json.Unmarshal(doc, &u); err != nil {
			return nil, fmt.Errorf("corrupted user document: %w", err)
		}
		users = append(users, u)
	}
	return users, nil
}

// Register создает нового пользователя. Никнейм должен быть уникален;
// идентификатор выдает хранилище, а не количество документов.
func (s *UserService) Register(ctx context.Context, login, password, nickname, description, telegram string) (*models.User, error) {
	users, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Nickname == nickname {
			return nil, ErrNicknameTaken
		}
	}

	id, err := s.Store.NextID(ctx, store.UsersTable)
	if err != nil {
		return nil, err
	}

	user := models.NewUser(id, login, password, nickname, description, telegram)
	if err := s.Store.PutOne(ctx, store.UsersTable, userKey(id), user); err != nil {
		return nil, err
	}
	log.Printf("registered user %d (%s)", user.ID, user.Nickname)
	return user, nil
}

// FindByCredentials ищет пользователя по точному совпадению логина и
// пароля (пароли хранятся открытым текстом, хеширование вне скоупа)
func (s *UserService) FindByCredentials(ctx context.Context, login, password string) (*models.User, error) {
	users, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Login == login && users[i].Password == password {
			return &users[i], nil
		}
	}
	return nil, ErrInvalidCredentials
}

// GetByID читает пользователя по ключу
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	doc, err := s.Store.GetOne(ctx, store.UsersTable, userKey(id))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	var u models.User
	if err := json.Unmarshal(doc, &u); err != nil {
		return nil, fmt.Errorf("corrupted user document: %w", err)
	}
	return &u, nil
}

func (s *UserService) save(ctx context.Context, u *models.User) error {
	return s.Store.PutOne(ctx, store.UsersTable, userKey(u.ID), u)
}

// UpdateRecentlyWatched добавляет эпизод в список недавно
// просмотренного. Список работает как FIFO на три элемента: при
// переполнении вытесняется самый старый. Повторная отметка того же
// эпизода ничего не меняет.
func (s *UserService) UpdateRecentlyWatched(ctx context.Context, userID int64, item models.WatchedEpisode) ([]models.WatchedEpisode, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	exists := false
	for _, it := range user.RecentlyWatched {
		if it == item {
			exists = true
			break
		}
	}
	if !exists {
		if len(user.RecentlyWatched) >= models.RecentlyWatchedLimit {
			user.RecentlyWatched = user.RecentlyWatched[1:]
		}
		user.RecentlyWatched = append(user.RecentlyWatched, item)
	}

	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	return user.RecentlyWatched, nil
}

// UpdateCollection добавляет тайтл в именованную коллекцию. Дубликаты
// отсекаются только по movieId: другой сезон того же тайтла не
// добавляется заново. Неизвестное имя коллекции создает новую.
func (s *UserService) UpdateCollection(ctx context.Context, userID int64, collectionType string, item models.WatchedEpisode) (map[string][]models.WatchedEpisode, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.UserCollection == nil {
		user.UserCollection = map[string][]models.WatchedEpisode{}
	}
	list, ok := user.UserCollection[collectionType]
	if !ok {
		list = []models.WatchedEpisode{}
	}

	exists := false
	for _, it := range list {
		if it.MovieID == item.MovieID {
			exists = true
			break
		}
	}
	if !exists {
		list = append(list, item)
	}
	user.UserCollection[collectionType] = list

	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	return user.UserCollection, nil
}

// AddComment добавляет комментарий в профиль (новые всегда в начале)
func (s *UserService) AddComment(ctx context.Context, userID int64, comment models.UserComment) (*models.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Comments == nil {
		user.Comments = []models.UserComment{}
	}
	user.Comments = append([]models.UserComment{comment}, user.Comments...)

	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword меняет пароль после проверки старого
func (s *UserService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) (*models.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Password != oldPassword {
		return nil, ErrWrongPassword
	}

	user.Password = newPassword
	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ProfileUpload вложение из multipart-формы профиля
type ProfileUpload struct {
	FileName    string
	Body        []byte
	ContentType string
}

// ProfileUpdate необязательные изменения профиля: пустые текстовые
// поля не трогают текущие значения
type ProfileUpdate struct {
	Nickname    string
	Description string
	Telegram    string
	ProfilePic  *ProfileUpload
	ProfileBg   *ProfileUpload
}

// UpdateProfile сливает изменения в профиль и загружает вложения.
// Если загрузка падает, пользователь не сохраняется: изменения,
// примененные до сбоя, остаются только в памяти.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, upd ProfileUpdate) (*models.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if upd.Nickname != "" {
		user.Nickname = upd.Nickname
	}
	if upd.Description != "" {
		user.Description = upd.Description
	}
	if upd.Telegram != "" {
		user.TelegramNickName = upd.Telegram
	}

	if upd.ProfilePic != nil {
		key := fmt.Sprintf("profilePics/%d/%s", userID, upd.ProfilePic.FileName)
		url, err := s.Media.Upload(ctx, key, upd.ProfilePic.Body, upd.ProfilePic.ContentType)
		if err != nil {
			log.Printf("profile picture upload failed for user %d: %v", userID, err)
			return nil, fmt.Errorf("%w: %v", ErrProfilePicUploadFailed, err)
		}
		user.Avatar = url
	}

	if upd.ProfileBg != nil {
		key := fmt.Sprintf("profileBgs/%d/%s", userID, upd.ProfileBg.FileName)
		url, err := s.Media.Upload(ctx, key, upd.ProfileBg.Body, upd.ProfileBg.ContentType)
		if err != nil {
			log.Printf("profile background upload failed for user %d: %v", userID, err)
			return nil, fmt.Errorf("%w: %v", ErrProfileBgUploadFailed, err)
		}
		user.ProfileBg = url
	}

	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
