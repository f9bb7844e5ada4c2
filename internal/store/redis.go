package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/ayush/todo-api/internal/models"
)

const (
	itemSeqKey   = "todo:seq"
	itemIndexKey = "todo:index"
)

// NewRedisClient creates and pings a Redis client with optional password auth.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}

// RedisItemStore keeps todo items in Redis: a counter for id assignment, one
// hash per item and a sorted set (scored by id) as the listing index.
type RedisItemStore struct {
	rdb *redis.Client
}

func NewRedisItemStore(rdb *redis.Client) *RedisItemStore {
	return &RedisItemStore{rdb: rdb}
}

func itemKey(id int64) string {
	return "todo:item:" + strconv.FormatInt(id, 10)
}

func (s *RedisItemStore) List(ctx context.Context) ([]models.Item, error) {
	ids, err := s.rdb.ZRange(ctx, itemIndexKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	var items []models.Item
	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt item index entry %q: %w", raw, err)
		}
		it, err := s.Get(ctx, id)
		if err == ErrNotFound {
			// index entry outlived the hash, skip it
			continue
		}
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, nil
}

func (s *RedisItemStore) Create(ctx context.Context, title, description string, done bool) (*models.Item, error) {
	id, err := s.rdb.Incr(ctx, itemSeqKey).Result()
	if err != nil {
		return nil, fmt.Errorf("assign item id: %w", err)
	}

	it := &models.Item{ID: id, Title: title, Description: description, Done: done}
	if err := s.writeItem(ctx, it); err != nil {
		return nil, err
	}
	err = s.rdb.ZAdd(ctx, itemIndexKey, redis.Z{
		Score:  float64(id),
		Member: strconv.FormatInt(id, 10),
	}).Err()
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (s *RedisItemStore) Get(ctx context.Context, id int64) (*models.Item, error) {
	fields, err := s.rdb.HGetAll(ctx, itemKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}
	done, _ := strconv.ParseBool(fields["done"])
	return &models.Item{
		ID:          id,
		Title:       fields["title"],
		Description: fields["description"],
		Done:        done,
	}, nil
}

func (s *RedisItemStore) Update(ctx context.Context, item *models.Item) error {
	exists, err := s.rdb.Exists(ctx, itemKey(item.ID)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return ErrNotFound
	}
	return s.writeItem(ctx, item)
}

// Delete removes the item and returns its prior state.
func (s *RedisItemStore) Delete(ctx context.Context, id int64) (*models.Item, error) {
	it, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.rdb.Del(ctx, itemKey(id)).Err(); err != nil {
		return nil, err
	}
	if err := s.rdb.ZRem(ctx, itemIndexKey, strconv.FormatInt(id, 10)).Err(); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *RedisItemStore) writeItem(ctx context.Context, it *models.Item) error {
	return s.rdb.HSet(ctx, itemKey(it.ID),
		"title", it.Title,
		"description", it.Description,
		"done", it.Done,
	).Err()
}
