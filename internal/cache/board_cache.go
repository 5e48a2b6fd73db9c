package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	dom "github.com/hueyning/kanban-app/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyBoardPrefix = "board:"

// BoardCache caches the per-user three-column board in Redis. Every write to
// a user's tasks invalidates that user's entry.
type BoardCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewBoardCache returns a new BoardCache.
func NewBoardCache(rdb *redis.Client, ttl time.Duration) *BoardCache {
	return &BoardCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached board for ownerID, or nil on a miss.
func (c *BoardCache) Get(ctx context.Context, ownerID int64) (*dom.Board, error) {
	b, err := c.rdb.Get(ctx, boardKey(ownerID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var board dom.Board
	if err := json.Unmarshal(b, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

// Set stores the board for ownerID.
func (c *BoardCache) Set(ctx context.Context, ownerID int64, board dom.Board) error {
	b, err := json.Marshal(board)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, boardKey(ownerID), b, c.ttl).Err()
}

// Invalidate removes the cached board for ownerID.
func (c *BoardCache) Invalidate(ctx context.Context, ownerID int64) error {
	return c.rdb.Del(ctx, boardKey(ownerID)).Err()
}

func boardKey(ownerID int64) string {
	return keyBoardPrefix + strconv.FormatInt(ownerID, 10)
}
