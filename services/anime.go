package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"animix/models"
	"animix/store"
)

// AnimeService операции над каталогом аниме. Записи каталога
// создаются снаружи, здесь они только читаются и дополняются
// комментариями.
type AnimeService struct {
	Store store.DocumentStore
}

// List возвращает весь каталог
func (s *AnimeService) List(ctx context.Context) ([]models.Anime, error) {
	docs, err := s.Store.ScanAll(ctx, store.AnimeTable)
	if err != nil {
		return nil, err
	}
	list := make([]models.Anime, 0, len(docs))
	for _, doc := range docs {
		var a models.Anime
		if err := json.Unmarshal(doc, &a); err != nil {
			return nil, fmt.Errorf("corrupted anime document: %w", err)
		}
		list = append(list, a)
	}
	return list, nil
}

// AddComment добавляет комментарий к аниме (новые всегда в начале,
// без дедупликации)
func (s *AnimeService) AddComment(ctx context.Context, animeID string, comment models.AnimeComment) (*models.Anime, error) {
	doc, err := s.Store.GetOne(ctx, store.AnimeTable, animeID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrAnimeNotFound
	}
	if err != nil {
		return nil, err
	}

	var anime models.Anime
	if err := json.Unmarshal(doc, &anime); err != nil {
		return nil, fmt.Errorf("corrupted anime document: %w", err)
	}

	anime.Comments = append([]models.AnimeComment{comment}, anime.Comments...)

	if err := s.Store.PutOne(ctx, store.AnimeTable, animeID, anime); err != nil {
		return nil, err
	}
	return &anime, nil
}
