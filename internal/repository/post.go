package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/taskfeed/taskfeed-go/internal/model"
)

var ErrPostNotFound = errors.New("post not found")

// PostRepository handles post persistence operations. The like and dislike
// sets are stored as JSON-encoded id arrays on the post row, so a reaction
// mutation is a fetch, an in-memory set edit, and a save. There is no version
// check on the save; two concurrent reactions to the same post can race.
type PostRepository struct {
	db *sql.DB
}

// NewPostRepository creates a new PostRepository.
func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

const postColumns = `p.id, p.author_id, u.username, p.title, p.content, p.likes, p.dislikes, p.created_at`

// Create inserts a new post with empty reaction sets and sets the generated
// ID on the post struct.
func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	query := `INSERT INTO posts (author_id, title, content, likes, dislikes) VALUES (?, ?, ?, '[]', '[]')`

	result, err := r.db.ExecContext(ctx, query, post.AuthorID, post.Title, post.Content)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	post.ID = id
	return nil
}

// GetByID retrieves a post with its author's username resolved.
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	query := `SELECT ` + postColumns + `
		FROM posts p JOIN users u ON u.id = p.author_id WHERE p.id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	return post, nil
}

// List retrieves all posts with authors resolved, newest first.
func (r *PostRepository) List(ctx context.Context) ([]model.Post, error) {
	query := `SELECT ` + postColumns + `
		FROM posts p JOIN users u ON u.id = p.author_id ORDER BY p.created_at DESC, p.id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}

	return posts, rows.Err()
}

// Update writes the title and content of a post in a single author-guarded
// statement. Zero matched rows means the id does not exist or the caller is
// not the author; both report ErrPostNotFound.
func (r *PostRepository) Update(ctx context.Context, post *model.Post) error {
	query := `UPDATE posts SET title = ?, content = ? WHERE id = ? AND author_id = ?`

	result, err := r.db.ExecContext(ctx, query, post.Title, post.Content, post.ID, post.AuthorID)
	if err != nil {
		return err
	}

	matched, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrPostNotFound
	}

	return nil
}

// Delete removes a post in a single author-guarded statement.
func (r *PostRepository) Delete(ctx context.Context, authorID, postID int64) error {
	query := `DELETE FROM posts WHERE id = ? AND author_id = ?`

	result, err := r.db.ExecContext(ctx, query, postID, authorID)
	if err != nil {
		return err
	}

	matched, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrPostNotFound
	}

	return nil
}

// SaveReactions persists both reaction sets of a post.
func (r *PostRepository) SaveReactions(ctx context.Context, post *model.Post) error {
	likes, err := encodeIDSet(post.Likes)
	if err != nil {
		return err
	}
	dislikes, err := encodeIDSet(post.Dislikes)
	if err != nil {
		return err
	}

	query := `UPDATE posts SET likes = ?, dislikes = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, likes, dislikes, post.ID)
	if err != nil {
		return err
	}

	matched, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrPostNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*model.Post, error) {
	post := &model.Post{}
	var likes, dislikes []byte

	err := row.Scan(
		&post.ID, &post.AuthorID, &post.AuthorName, &post.Title, &post.Content,
		&likes, &dislikes, &post.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if post.Likes, err = decodeIDSet(likes); err != nil {
		return nil, err
	}
	if post.Dislikes, err = decodeIDSet(dislikes); err != nil {
		return nil, err
	}

	return post, nil
}

func encodeIDSet(ids []int64) ([]byte, error) {
	if ids == nil {
		ids = []int64{}
	}
	return json.Marshal(ids)
}

func decodeIDSet(raw []byte) ([]int64, error) {
	if len(raw) == 0 {
		return []int64{}, nil
	}
	var ids []int64
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}
