package model

import "time"

// Todo represents a to-do item owned by exactly one user. All reads and
// writes are scoped by the owner's id.
type Todo struct {
	ID        int64
	UserID    int64
	Title     string
	Completed bool
	CreatedAt time.Time
}

// CreateTodoRequest represents a new to-do submission.
type CreateTodoRequest struct {
	Title string `json:"title"`
}

// UpdateTodoRequest represents a partial to-do update. Nil fields are left
// unchanged.
type UpdateTodoRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

// TodoResponse represents a to-do in API responses.
type TodoResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// Response converts a Todo to its API representation.
func (t *Todo) Response() TodoResponse {
	return TodoResponse{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
		CreatedAt: t.CreatedAt,
	}
}
