package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"
)

// Document строка таблицы documents: один JSON-документ логической
// таблицы (collection соответствует TableName из DynamoDB-версии)
type Document struct {
	Collection string `gorm:"primaryKey;size:100"`
	DocID      string `gorm:"primaryKey;size:100;column:doc_id"`
	Body       string `gorm:"type:text"`
}

func (Document) TableName() string {
	return "documents"
}

// Counter счетчик идентификаторов на логическую таблицу
type Counter struct {
	Collection string `gorm:"primaryKey;size:100"`
	Value      int64
}

func (Counter) TableName() string {
	return "counters"
}

// GormStore реализация DocumentStore поверх реляционной базы.
// Чтения уходят на реплики, записи на мастер (dbresolver).
type GormStore struct {
	orm *gorm.DB
}

func NewGormStore(orm *gorm.DB) (*GormStore, error) {
	if err := orm.AutoMigrate(&Document{}, &Counter{}); err != nil {
		return nil, fmt.Errorf("failed to migrate document tables: %w", err)
	}
	return &GormStore{orm: orm}, nil
}

func (s *GormStore) read(ctx context.Context) *gorm.DB {
	return s.orm.WithContext(ctx).Clauses(dbresolver.Read)
}

func (s *GormStore) write(ctx context.Context) *gorm.DB {
	return s.orm.WithContext(ctx).Clauses(dbresolver.Write)
}

func (s *GormStore) ScanAll(ctx context.Context, table string) ([]json.RawMessage, error) {
	var rows []Document
	err := s.read(ctx).
		Where("collection = ?", table).
		Order("doc_id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to scan table %s: %w", table, err)
	}

	docs := make([]json.RawMessage, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, json.RawMessage(row.Body))
	}
	return docs, nil
}

func (s *GormStore) GetOne(ctx context.Context, table, id string) (json.RawMessage, error) {
	var row Document
	err := s.read(ctx).
		Where("collection = ? AND doc_id = ?", table, id).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s/%s: %w", table, id, err)
	}
	return json.RawMessage(row.Body), nil
}

func (s *GormStore) PutOne(ctx context.Context, table, id string, doc interface{}) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	row := Document{Collection: table, DocID: id, Body: string(body)}
	err = s.write(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection"}, {Name: "doc_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"body"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to write %s/%s: %w", table, id, err)
	}
	return nil
}

func (s *GormStore) NextID(ctx context.Context, table string) (int64, error) {
	var counter Counter
	err := s.write(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&Counter{Collection: table}).Error
		if err != nil {
			return err
		}
		err = tx.Model(&Counter{}).
			Where("collection = ?", table).
			Update("value", gorm.Expr("value + 1")).Error
		if err != nil {
			return err
		}
		return tx.Where("collection = ?", table).First(&counter).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to allocate id for %s: %w", table, err)
	}
	return counter.Value, nil
}
