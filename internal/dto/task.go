package dto

import (
	"time"

	dom "github.com/hueyning/kanban-app/internal/domain"
)

// CreateTaskRequest is the body for POST /do.
type CreateTaskRequest struct {
	Title string `form:"title" json:"title" binding:"required"`
	Body  string `form:"text" json:"text" binding:"required"`
}

// TaskIDRequest is the body for POST /doing, /done and /delete.
type TaskIDRequest struct {
	ID int64 `form:"id" json:"id" binding:"required,min=1"`
}

type TaskResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"text"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// BoardResponse carries the three ordered columns for GET /.
type BoardResponse struct {
	Todo  []TaskResponse `json:"todo"`
	Doing []TaskResponse `json:"doing"`
	Done  []TaskResponse `json:"done"`
}

// FromTask converts a domain task for the wire.
func FromTask(t dom.Task) TaskResponse {
	return TaskResponse{
		ID:        t.ID,
		Title:     t.Title,
		Body:      t.Body,
		Status:    t.Status.String(),
		CreatedAt: t.CreatedAt,
	}
}

// FromBoard converts a domain board for the wire.
func FromBoard(b dom.Board) BoardResponse {
	return BoardResponse{
		Todo:  fromTasks(b.Todo),
		Doing: fromTasks(b.Doing),
		Done:  fromTasks(b.Done),
	}
}

func fromTasks(list []dom.Task) []TaskResponse {
	out := make([]TaskResponse, len(list))
	for i := range list {
		out[i] = FromTask(list[i])
	}
	return out
}
