package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/taskfeed/taskfeed-go/internal/middleware"
	"github.com/taskfeed/taskfeed-go/internal/model"
	"github.com/taskfeed/taskfeed-go/internal/service"
)

// PostHandler handles HTTP requests for post operations and reactions.
type PostHandler struct {
	service *service.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(svc *service.PostService) *PostHandler {
	return &PostHandler{service: svc}
}

// HandleList handles GET /api/posts requests. Public.
func (h *PostHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse(err.Error()))
		return
	}
	if posts == nil {
		posts = []model.PostResponse{}
	}

	writeJSON(w, http.StatusOK, posts)
}

// HandleCreate handles POST /api/posts requests.
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Unauthorized"))
		return
	}

	var req model.CreatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	post, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostTitleRequired), errors.Is(err, service.ErrPostContentRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse(err.Error()))
		}
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

// HandleUpdate handles PUT /api/posts/{id} requests. Author-only.
func (h *PostHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Unauthorized"))
		return
	}

	postID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req model.UpdatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	post, err := h.service.Update(r.Context(), userID, postID, req)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// HandleDelete handles DELETE /api/posts/{id} requests. Author-only.
func (h *PostHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Unauthorized"))
		return
	}

	postID, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, postID); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Post deleted successfully"})
}

// HandleLike handles POST /api/posts/{id}/like requests.
func (h *PostHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, h.service.Like)
}

// HandleDislike handles POST /api/posts/{id}/dislike requests.
func (h *PostHandler) HandleDislike(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, h.service.Dislike)
}

// HandleRemoveReaction handles DELETE /api/posts/{id}/reaction requests.
func (h *PostHandler) HandleRemoveReaction(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, h.service.RemoveReaction)
}

func (h *PostHandler) react(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, userID, postID int64) (model.PostResponse, error)) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Unauthorized"))
		return
	}

	postID, ok := pathID(w, r)
	if !ok {
		return
	}

	post, err := op(r.Context(), userID, postID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		case errors.Is(err, service.ErrAlreadyLiked), errors.Is(err, service.ErrAlreadyDisliked):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse(err.Error()))
		}
		return
	}

	writeJSON(w, http.StatusOK, post)
}
