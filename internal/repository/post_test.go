package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/taskfeed/taskfeed-go/internal/model"
)

func newPostMock(t *testing.T) (*PostRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() unexpected error: %v", err)
	}
	return NewPostRepository(db), mock, func() { db.Close() }
}

var postRows = []string{"id", "author_id", "username", "title", "content", "likes", "dislikes", "created_at"}

func TestPostGetByID(t *testing.T) {
	repo, mock, done := newPostMock(t)
	defer done()

	created := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM posts p JOIN users u ON u.id = p.author_id WHERE p.id = ?`)).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(postRows).
			AddRow(int64(3), int64(1), "jane", "hello", "first post", []byte(`[1,2]`), []byte(`[5]`), created))

	post, err := repo.GetByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetByID() unexpected error: %v", err)
	}
	if post.AuthorName != "jane" {
		t.Errorf("GetByID() AuthorName = %q, want %q", post.AuthorName, "jane")
	}
	if len(post.Likes) != 2 || post.Likes[0] != 1 || post.Likes[1] != 2 {
		t.Errorf("GetByID() Likes = %v, want [1 2]", post.Likes)
	}
	if len(post.Dislikes) != 1 || post.Dislikes[0] != 5 {
		t.Errorf("GetByID() Dislikes = %v, want [5]", post.Dislikes)
	}
}

func TestPostGetByIDNotFound(t *testing.T) {
	repo, mock, done := newPostMock(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE p.id = ?`)).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(postRows))

	if _, err := repo.GetByID(context.Background(), 404); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("GetByID() error = %v, want ErrPostNotFound", err)
	}
}

func TestPostList(t *testing.T) {
	repo, mock, done := newPostMock(t)
	defer done()

	created := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM posts p JOIN users u ON u.id = p.author_id ORDER BY p.created_at DESC`)).
		WillReturnRows(sqlmock.NewRows(postRows).
			AddRow(int64(2), int64(1), "jane", "second", "newer", []byte(`[]`), []byte(`[]`), created).
			AddRow(int64(1), int64(1), "jane", "first", "older", []byte(`[2]`), []byte(`[]`), created.Add(-time.Hour)))

	posts, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("List() returned %d posts, want 2", len(posts))
	}
	if posts[0].Title != "second" {
		t.Errorf("List() first title = %q, want newest first", posts[0].Title)
	}
}

func TestPostUpdateAuthorGuard(t *testing.T) {
	repo, mock, done := newPostMock(t)
	defer done()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE posts SET title = ?, content = ? WHERE id = ? AND author_id = ?`)).
		WithArgs("t", "c", int64(3), int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &model.Post{ID: 3, AuthorID: 99, Title: "t", Content: "c"})
	if !errors.Is(err, ErrPostNotFound) {
		t.Errorf("Update() error = %v, want ErrPostNotFound", err)
	}
}

func TestPostDeleteAuthorGuard(t *testing.T) {
	repo, mock, done := newPostMock(t)
	defer done()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM posts WHERE id = ? AND author_id = ?`)).
		WithArgs(int64(3), int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), 99, 3); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("Delete() error = %v, want ErrPostNotFound", err)
	}
}

func TestPostSaveReactions(t *testing.T) {
	repo, mock, done := newPostMock(t)
	defer done()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE posts SET likes = ?, dislikes = ? WHERE id = ?`)).
		WithArgs([]byte(`[2]`), []byte(`[1]`), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	post := &model.Post{ID: 3, Likes: []int64{2}, Dislikes: []int64{1}}
	if err := repo.SaveReactions(context.Background(), post); err != nil {
		t.Fatalf("SaveReactions() unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPostSaveReactionsEmptySetsAreArrays(t *testing.T) {
	repo, mock, done := newPostMock(t)
	defer done()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE posts SET likes = ?, dislikes = ?`)).
		WithArgs([]byte(`[]`), []byte(`[]`), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	post := &model.Post{ID: 3}
	if err := repo.SaveReactions(context.Background(), post); err != nil {
		t.Fatalf("SaveReactions() unexpected error: %v", err)
	}
}
