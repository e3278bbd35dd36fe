package service

import (
	"context"
	"errors"

	"github.com/taskfeed/taskfeed-go/internal/model"
	"github.com/taskfeed/taskfeed-go/internal/repository"
)

var (
	ErrPostTitleRequired   = errors.New("Title is required")
	ErrPostContentRequired = errors.New("Content is required")
	ErrPostNotFound        = errors.New("Post not found")
	ErrAlreadyLiked        = errors.New("You have already liked this post")
	ErrAlreadyDisliked     = errors.New("You have already disliked this post")
)

// PostService handles post business logic, including the like/dislike
// toggle. Reaction state per (post, user) is one of none, liked, or
// disliked, modeled as membership in at most one of the two id sets.
type PostService struct {
	repo *repository.PostRepository
}

// NewPostService creates a new PostService.
func NewPostService(repo *repository.PostRepository) *PostService {
	return &PostService{repo: repo}
}

// List returns all posts with authors resolved, newest first. Public; no
// caller identity required.
func (s *PostService) List(ctx context.Context) ([]model.PostResponse, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]model.PostResponse, len(posts))
	for i := range posts {
		result[i] = posts[i].Response()
	}
	return result, nil
}

// Create adds a new post authored by the caller and returns it with the
// author resolved.
func (s *PostService) Create(ctx context.Context, userID int64, req model.CreatePostRequest) (model.PostResponse, error) {
	if req.Title == "" {
		return model.PostResponse{}, ErrPostTitleRequired
	}
	if req.Content == "" {
		return model.PostResponse{}, ErrPostContentRequired
	}

	post := &model.Post{
		AuthorID: userID,
		Title:    req.Title,
		Content:  req.Content,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return model.PostResponse{}, err
	}

	created, err := s.repo.GetByID(ctx, post.ID)
	if err != nil {
		return model.PostResponse{}, err
	}

	return created.Response(), nil
}

// Update edits a post's title and content. Author-only; a post that exists
// but belongs to someone else is reported as not found.
func (s *PostService) Update(ctx context.Context, userID, postID int64, req model.UpdatePostRequest) (model.PostResponse, error) {
	post := &model.Post{
		ID:       postID,
		AuthorID: userID,
		Title:    req.Title,
		Content:  req.Content,
	}

	if err := s.repo.Update(ctx, post); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return model.PostResponse{}, ErrPostNotFound
		}
		return model.PostResponse{}, err
	}

	updated, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return model.PostResponse{}, ErrPostNotFound
		}
		return model.PostResponse{}, err
	}

	return updated.Response(), nil
}

// Delete removes a post. Author-only.
func (s *PostService) Delete(ctx context.Context, userID, postID int64) error {
	err := s.repo.Delete(ctx, userID, postID)
	if errors.Is(err, repository.ErrPostNotFound) {
		return ErrPostNotFound
	}
	return err
}

// Like adds the caller to a post's like set, removing them from the dislike
// set first. Rejects a repeated like without touching the sets.
func (s *PostService) Like(ctx context.Context, userID, postID int64) (model.PostResponse, error) {
	return s.react(ctx, postID, func(post *model.Post) error {
		if post.HasLiked(userID) {
			return ErrAlreadyLiked
		}
		post.AddLike(userID)
		return nil
	})
}

// Dislike adds the caller to a post's dislike set, removing them from the
// like set first. Rejects a repeated dislike without touching the sets.
func (s *PostService) Dislike(ctx context.Context, userID, postID int64) (model.PostResponse, error) {
	return s.react(ctx, postID, func(post *model.Post) error {
		if post.HasDisliked(userID) {
			return ErrAlreadyDisliked
		}
		post.AddDislike(userID)
		return nil
	})
}

// RemoveReaction drops the caller from both reaction sets. Idempotent.
func (s *PostService) RemoveReaction(ctx context.Context, userID, postID int64) (model.PostResponse, error) {
	return s.react(ctx, postID, func(post *model.Post) error {
		post.RemoveReaction(userID)
		return nil
	})
}

// react is the shared fetch → mutate → save → re-fetch sequence behind every
// reaction mutation. The save carries no version check, so two concurrent
// reactions to the same post can race (a documented trade-off).
func (s *PostService) react(ctx context.Context, postID int64, mutate func(*model.Post) error) (model.PostResponse, error) {
	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return model.PostResponse{}, ErrPostNotFound
		}
		return model.PostResponse{}, err
	}

	if err := mutate(post); err != nil {
		return model.PostResponse{}, err
	}

	if err := s.repo.SaveReactions(ctx, post); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return model.PostResponse{}, ErrPostNotFound
		}
		return model.PostResponse{}, err
	}

	updated, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return model.PostResponse{}, ErrPostNotFound
		}
		return model.PostResponse{}, err
	}

	return updated.Response(), nil
}
