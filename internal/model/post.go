package model

import "time"

// Post represents a social post. Likes and Dislikes are sets of user ids;
// a user id appears in at most one of the two at any time, enforced by
// removing it from the opposite set before inserting.
type Post struct {
	ID         int64
	AuthorID   int64
	AuthorName string
	Title      string
	Content    string
	Likes      []int64
	Dislikes   []int64
	CreatedAt  time.Time
}

// HasLiked reports whether the user is in the post's like set.
func (p *Post) HasLiked(userID int64) bool {
	return contains(p.Likes, userID)
}

// HasDisliked reports whether the user is in the post's dislike set.
func (p *Post) HasDisliked(userID int64) bool {
	return contains(p.Dislikes, userID)
}

// AddLike moves the user into the like set, removing them from the dislike
// set first.
func (p *Post) AddLike(userID int64) {
	p.Dislikes = remove(p.Dislikes, userID)
	if !contains(p.Likes, userID) {
		p.Likes = append(p.Likes, userID)
	}
}

// AddDislike moves the user into the dislike set, removing them from the
// like set first.
func (p *Post) AddDislike(userID int64) {
	p.Likes = remove(p.Likes, userID)
	if !contains(p.Dislikes, userID) {
		p.Dislikes = append(p.Dislikes, userID)
	}
}

// RemoveReaction drops the user from both sets. Idempotent.
func (p *Post) RemoveReaction(userID int64) {
	p.Likes = remove(p.Likes, userID)
	p.Dislikes = remove(p.Dislikes, userID)
}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids []int64, id int64) []int64 {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// CreatePostRequest represents a new post submission.
type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdatePostRequest represents a post edit by its author.
type UpdatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// AuthorResponse is the resolved author identity embedded in post responses.
type AuthorResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// PostResponse represents a post in API responses, with the author resolved
// for display.
type PostResponse struct {
	ID        int64          `json:"id"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	Author    AuthorResponse `json:"author"`
	Likes     []int64        `json:"likes"`
	Dislikes  []int64        `json:"dislikes"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Response converts a Post to its API representation. The reaction sets are
// never nil in the response so clients always see JSON arrays.
func (p *Post) Response() PostResponse {
	likes := p.Likes
	if likes == nil {
		likes = []int64{}
	}
	dislikes := p.Dislikes
	if dislikes == nil {
		dislikes = []int64{}
	}
	return PostResponse{
		ID:      p.ID,
		Title:   p.Title,
		Content: p.Content,
		Author: AuthorResponse{
			ID:       p.AuthorID,
			Username: p.AuthorName,
		},
		Likes:     likes,
		Dislikes:  dislikes,
		CreatedAt: p.CreatedAt,
	}
}
