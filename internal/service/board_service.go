package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	dom "github.com/hueyning/kanban-app/internal/domain"
	"github.com/hueyning/kanban-app/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNotFound      = errors.New("task not found")
	ErrForbidden     = errors.New("task belongs to another user")
	ErrMissingFields = errors.New("title and body are required")
)

// Cache is the per-owner board read cache. Get returns nil on a miss.
type Cache interface {
	Get(ctx context.Context, ownerID int64) (*dom.Board, error)
	Set(ctx context.Context, ownerID int64, board dom.Board) error
	Invalidate(ctx context.Context, ownerID int64) error
}

// BoardService enforces ownership and status transitions in front of the
// task store.
type BoardService struct {
	repo  repo.TaskRepo
	cache Cache
	sf    singleflight.Group
}

// NewBoardService creates a BoardService. If c is nil, caching is disabled.
func NewBoardService(r repo.TaskRepo, c Cache) *BoardService {
	return &BoardService{repo: r, cache: c}
}

// Create inserts a task for ownerID. New tasks always start in TODO.
func (s *BoardService) Create(ctx context.Context, ownerID int64, title, body string) (dom.Task, error) {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" || body == "" {
		return dom.Task{}, ErrMissingFields
	}
	t, err := s.repo.Insert(ctx, dom.Task{
		OwnerID: ownerID,
		Title:   title,
		Body:    body,
		Status:  dom.StatusTodo,
	})
	if err != nil {
		return dom.Task{}, err
	}
	s.invalidateCache(ctx, ownerID)
	return t, nil
}

// Board returns the owner's three columns. Reads go through the Redis cache
// with singleflight so concurrent misses for the same owner fill it once.
func (s *BoardService) Board(ctx context.Context, ownerID int64) (dom.Board, error) {
	if s.cache != nil {
		key := "board:" + strconv.FormatInt(ownerID, 10)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if b, err := s.cache.Get(ctx, ownerID); err == nil && b != nil {
				return *b, nil
			}
			b, err := s.loadBoard(ctx, ownerID)
			if err != nil {
				return dom.Board{}, err
			}
			_ = s.cache.Set(ctx, ownerID, b)
			return b, nil
		})
		if err != nil {
			return dom.Board{}, err
		}
		return v.(dom.Board), nil
	}
	return s.loadBoard(ctx, ownerID)
}

func (s *BoardService) loadBoard(ctx context.Context, ownerID int64) (dom.Board, error) {
	var b dom.Board
	var err error
	if b.Todo, err = s.repo.ListByOwnerAndStatus(ctx, ownerID, dom.StatusTodo); err != nil {
		return dom.Board{}, err
	}
	if b.Doing, err = s.repo.ListByOwnerAndStatus(ctx, ownerID, dom.StatusDoing); err != nil {
		return dom.Board{}, err
	}
	if b.Done, err = s.repo.ListByOwnerAndStatus(ctx, ownerID, dom.StatusDone); err != nil {
		return dom.Board{}, err
	}
	return b, nil
}

// SetStatus moves the task to status. Any column is reachable from any other;
// setting the current column again is an idempotent no-op write. Only the
// task's owner may move it.
func (s *BoardService) SetStatus(ctx context.Context, ownerID, taskID int64, status dom.Status) error {
	t, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if t.OwnerID != ownerID {
		return ErrForbidden
	}
	if err := s.repo.UpdateStatus(ctx, taskID, status); err != nil {
		return err
	}
	s.invalidateCache(ctx, ownerID)
	return nil
}

// Delete removes the task if the caller owns it. A task id that does not
// exist is a silent no-op; a task owned by someone else is rejected.
func (s *BoardService) Delete(ctx context.Context, ownerID, taskID int64) error {
	t, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}
	if t.OwnerID != ownerID {
		return ErrForbidden
	}
	if err := s.repo.Delete(ctx, taskID); err != nil {
		return err
	}
	s.invalidateCache(ctx, ownerID)
	return nil
}

func (s *BoardService) invalidateCache(ctx context.Context, ownerID int64) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, ownerID)
	}
}
