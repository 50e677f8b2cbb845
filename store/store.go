package store

import (
	"context"
	"encoding/json"
	"errors"
)

// Имена таблиц, унаследованные от первоначального деплоя в DynamoDB
const (
	UsersTable = "animix-users"
	AnimeTable = "animix-anime"
)

var ErrNotFound = errors.New("document not found")

// DocumentStore хранилище JSON-документов. Каждая запись читается и
// перезаписывается целиком, частичных обновлений нет. NextID выдает
// монотонные идентификаторы и принадлежит хранилищу, поэтому id не
// зависят от количества документов и не повторяются после удалений.
type DocumentStore interface {
	// ScanAll возвращает все документы таблицы
	ScanAll(ctx context.Context, table string) ([]json.RawMessage, error)
	// GetOne возвращает документ по ключу, ErrNotFound если его нет
	GetOne(ctx context.Context, table, id string) (json.RawMessage, error)
	// PutOne перезаписывает документ по ключу (upsert)
	PutOne(ctx context.Context, table, id string, doc interface{}) error
	// NextID атомарно выдает следующий идентификатор для таблицы
	NextID(ctx context.Context, table string) (int64, error)
}
