package models

import (
	"time"
)

// Типы коллекций, которые создаются при регистрации. Эндпоинт
// updateCollection принимает и другие имена — они становятся
// новыми ключами в UserCollection.
const (
	CollectionWatched   = "watched"
	CollectionLeaved    = "leaved"
	CollectionPostponed = "postponed"
	CollectionInProcess = "inProcess"
)

// RecentlyWatchedLimit максимальная длина списка недавно просмотренного
const RecentlyWatchedLimit = 3

// WatchedEpisode элемент recentlyWatched и коллекций пользователя
type WatchedEpisode struct {
	MovieID string  `json:"movieId"`
	Season  FlexInt `json:"season"`
	Episode FlexInt `json:"episode"`
}

// UserComment комментарий в профиле пользователя (новые в начале списка)
type UserComment struct {
	AnimeID       string  `json:"animeId"`
	ReviewComment string  `json:"reviewComment"`
	Rating        FlexInt `json:"rating"`
	Cover         string  `json:"cover"`
	Date          string  `json:"date"`
}

type User struct {
	ID               int64                       `json:"id"`
	Login            string                      `json:"login"`
	Password         string                      `json:"password"`
	Nickname         string                      `json:"nickname"`
	Description      string                      `json:"description"`
	RegistrationDay  time.Time                   `json:"registrationDay"`
	Avatar           string                      `json:"avatar"`
	ProfileBg        string                      `json:"profileBg,omitempty"`
	TelegramNickName string                      `json:"telegramNickName"`
	FriendsList      []int64                     `json:"friendsList"`
	RecentlyWatched  []WatchedEpisode            `json:"recentlyWatched"`
	WatchTime        int64                       `json:"watchTime"`
	UserCollection   map[string][]WatchedEpisode `json:"userCollection"`
	Comments         []UserComment               `json:"comments,omitempty"`
}

// NewUser заполняет пустые подструктуры нового пользователя
func NewUser(id int64, login, password, nickname, description, telegram string) *User {
	return &User{
		ID:               id,
		Login:            login,
		Password:         password,
		Nickname:         nickname,
		Description:      description,
		RegistrationDay:  time.Now(),
		Avatar:           "",
		TelegramNickName: telegram,
		FriendsList:      []int64{},
		RecentlyWatched:  []WatchedEpisode{},
		WatchTime:        0,
		UserCollection: map[string][]WatchedEpisode{
			CollectionWatched:   {},
			CollectionLeaved:    {},
			CollectionPostponed: {},
			CollectionInProcess: {},
		},
	}
}
