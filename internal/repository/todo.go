package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/taskfeed/taskfeed-go/internal/model"
)

var ErrTodoNotFound = errors.New("todo not found")

// TodoRepository handles to-do persistence operations. Every query that
// touches an existing row filters by owner id as well as record id, so a
// wrong id and a wrong owner are indistinguishable to the caller.
type TodoRepository struct {
	db *sql.DB
}

// NewTodoRepository creates a new TodoRepository.
func NewTodoRepository(db *sql.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

// Create inserts a new to-do and sets the generated ID and creation time.
func (r *TodoRepository) Create(ctx context.Context, todo *model.Todo) error {
	query := `INSERT INTO todos (user_id, title, completed) VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, todo.UserID, todo.Title, todo.Completed)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	todo.ID = id
	return r.db.QueryRowContext(ctx, `SELECT created_at FROM todos WHERE id = ?`, id).Scan(&todo.CreatedAt)
}

// ListByUser retrieves all to-dos owned by a user, newest first.
func (r *TodoRepository) ListByUser(ctx context.Context, userID int64) ([]model.Todo, error) {
	query := `SELECT id, user_id, title, completed, created_at
		FROM todos WHERE user_id = ? ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var todos []model.Todo
	for rows.Next() {
		var t model.Todo
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Completed, &t.CreatedAt); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}

	return todos, rows.Err()
}

// GetByUser retrieves a single to-do by id, scoped to its owner.
func (r *TodoRepository) GetByUser(ctx context.Context, userID, todoID int64) (*model.Todo, error) {
	query := `SELECT id, user_id, title, completed, created_at
		FROM todos WHERE id = ? AND user_id = ?`

	todo := &model.Todo{}
	err := r.db.QueryRowContext(ctx, query, todoID, userID).Scan(
		&todo.ID, &todo.UserID, &todo.Title, &todo.Completed, &todo.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}

	return todo, nil
}

// Update writes the title and completed flag of a to-do in a single
// owner-guarded statement. Zero rows affected means the id does not exist or
// belongs to someone else; both report ErrTodoNotFound.
func (r *TodoRepository) Update(ctx context.Context, todo *model.Todo) error {
	query := `UPDATE todos SET title = ?, completed = ? WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, todo.Title, todo.Completed, todo.ID, todo.UserID)
	if err != nil {
		return err
	}

	matched, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrTodoNotFound
	}

	return nil
}

// Delete removes a to-do in a single owner-guarded statement.
func (r *TodoRepository) Delete(ctx context.Context, userID, todoID int64) error {
	query := `DELETE FROM todos WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, todoID, userID)
	if err != nil {
		return err
	}

	matched, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrTodoNotFound
	}

	return nil
}
