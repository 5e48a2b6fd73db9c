package repo

import (
	"context"

	dom "github.com/hueyning/kanban-app/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepo interface {
	Insert(ctx context.Context, t dom.Task) (dom.Task, error)
	GetByID(ctx context.Context, id int64) (dom.Task, error)
	ListByOwnerAndStatus(ctx context.Context, ownerID int64, status dom.Status) ([]dom.Task, error)
	UpdateStatus(ctx context.Context, id int64, status dom.Status) error
	Delete(ctx context.Context, id int64) error
}

type PGTaskRepo struct {
	db *pgxpool.Pool
}

func NewPGTaskRepo(db *pgxpool.Pool) *PGTaskRepo {
	return &PGTaskRepo{db: db}
}

func (r *PGTaskRepo) Insert(ctx context.Context, t dom.Task) (dom.Task, error) {
	query := `
		INSERT INTO tasks (owner_id, title, body, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, owner_id, title, body, status, created_at`
	var out dom.Task
	err := r.db.QueryRow(ctx, query, t.OwnerID, t.Title, t.Body, t.Status.String()).Scan(
		&out.ID, &out.OwnerID, &out.Title, &out.Body, &out.Status, &out.CreatedAt,
	)
	return out, err
}

func (r *PGTaskRepo) GetByID(ctx context.Context, id int64) (dom.Task, error) {
	query := `
		SELECT id, owner_id, title, body, status, created_at
		FROM tasks WHERE id = $1`
	var t dom.Task
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.OwnerID, &t.Title, &t.Body, &t.Status, &t.CreatedAt,
	)
	return t, err
}

// ListByOwnerAndStatus returns the owner's tasks in one column, most recently
// created first.
func (r *PGTaskRepo) ListByOwnerAndStatus(ctx context.Context, ownerID int64, status dom.Status) ([]dom.Task, error) {
	query := `
		SELECT id, owner_id, title, body, status, created_at
		FROM tasks WHERE owner_id = $1 AND status = $2 ORDER BY id DESC`
	rows, err := r.db.Query(ctx, query, ownerID, status.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Task
	for rows.Next() {
		var t dom.Task
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Body, &t.Status, &t.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *PGTaskRepo) UpdateStatus(ctx context.Context, id int64, status dom.Status) error {
	_, err := r.db.Exec(ctx, `UPDATE tasks SET status = $2 WHERE id = $1`, id, status.String())
	return err
}

// Delete removes the task by id. Deleting an id that does not exist is a
// no-op, not an error.
func (r *PGTaskRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}
