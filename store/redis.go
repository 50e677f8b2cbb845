package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"animix/config"

	"github.com/go-redis/redis/v8"
)

// RedisStore хранит каждый документ отдельным JSON-значением под
// ключом "<таблица>:<id>". Счетчики идентификаторов живут под
// отдельным префиксом, чтобы не попадать в скан таблицы.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(conf config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", conf.Host, conf.Port),
		Password: conf.Password,
		DB:       conf.DB,
	})

	// Тест соединения
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func docKey(table, id string) string {
	return table + ":" + id
}

func counterKey(table string) string {
	return "counter:" + table
}

func (s *RedisStore) ScanAll(ctx context.Context, table string) ([]json.RawMessage, error) {
	prefix := table + ":"
	var keys []string
	var cursor uint64
	for {
		batch, next, err := s.client.Scan(ctx, cursor, prefix+"*", 500).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan table %s: %w", table, err)
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if len(keys) == 0 {
		return []json.RawMessage{}, nil
	}

	// SCAN не гарантирует порядок — сортируем ключи, чтобы выдача
	// списков была стабильной
	sort.Strings(keys)

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read documents of %s: %w", table, err)
	}

	docs := make([]json.RawMessage, 0, len(values))
	for _, v := range values {
		str, ok := v.(string)
		if !ok {
			// Ключ исчез между SCAN и MGET
			continue
		}
		docs = append(docs, json.RawMessage(str))
	}
	return docs, nil
}

func (s *RedisStore) GetOne(ctx context.Context, table, id string) (json.RawMessage, error) {
	val, err := s.client.Get(ctx, docKey(table, id)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s/%s: %w", table, id, err)
	}
	return json.RawMessage(val), nil
}

func (s *RedisStore) PutOne(ctx context.Context, table, id string, doc interface{}) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, docKey(table, id), body, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s/%s: %w", table, id, err)
	}
	return nil
}

func (s *RedisStore) NextID(ctx context.Context, table string) (int64, error) {
	id, err := s.client.Incr(ctx, counterKey(table)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate id for %s: %w", table, err)
	}
	return id, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
