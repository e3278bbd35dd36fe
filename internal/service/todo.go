package service

import (
	"context"
	"errors"
	"strings"

	"github.com/taskfeed/taskfeed-go/internal/model"
	"github.com/taskfeed/taskfeed-go/internal/repository"
)

var (
	ErrTitleRequired = errors.New("Title is required")
	ErrTodoNotFound  = errors.New("Todo not found")
)

// TodoService handles to-do business logic. Every operation is scoped to the
// calling user; a record that exists but belongs to someone else is reported
// exactly like a record that does not exist.
type TodoService struct {
	repo *repository.TodoRepository
}

// NewTodoService creates a new TodoService.
func NewTodoService(repo *repository.TodoRepository) *TodoService {
	return &TodoService{repo: repo}
}

// List returns the caller's to-dos, newest first.
func (s *TodoService) List(ctx context.Context, userID int64) ([]model.TodoResponse, error) {
	todos, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]model.TodoResponse, len(todos))
	for i, t := range todos {
		result[i] = t.Response()
	}
	return result, nil
}

// Create adds a new to-do for the caller. The title is trimmed and must be
// non-empty.
func (s *TodoService) Create(ctx context.Context, userID int64, req model.CreateTodoRequest) (model.TodoResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return model.TodoResponse{}, ErrTitleRequired
	}

	todo := &model.Todo{
		UserID: userID,
		Title:  title,
	}

	if err := s.repo.Create(ctx, todo); err != nil {
		return model.TodoResponse{}, err
	}

	return todo.Response(), nil
}

// Update applies a partial update (title and/or completed) to a to-do owned
// by the caller.
func (s *TodoService) Update(ctx context.Context, userID, todoID int64, req model.UpdateTodoRequest) (model.TodoResponse, error) {
	todo, err := s.repo.GetByUser(ctx, userID, todoID)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return model.TodoResponse{}, ErrTodoNotFound
		}
		return model.TodoResponse{}, err
	}

	if req.Title != nil {
		todo.Title = strings.TrimSpace(*req.Title)
	}
	if req.Completed != nil {
		todo.Completed = *req.Completed
	}

	if err := s.repo.Update(ctx, todo); err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return model.TodoResponse{}, ErrTodoNotFound
		}
		return model.TodoResponse{}, err
	}

	return todo.Response(), nil
}

// Delete removes a to-do owned by the caller.
func (s *TodoService) Delete(ctx context.Context, userID, todoID int64) error {
	err := s.repo.Delete(ctx, userID, todoID)
	if errors.Is(err, repository.ErrTodoNotFound) {
		return ErrTodoNotFound
	}
	return err
}
