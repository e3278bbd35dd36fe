package model

import "time"

// User represents a user record in the database.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// SignupRequest represents a user registration request.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SigninRequest represents a user login request.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest carries the refresh token used to mint a new access token.
type RefreshRequest struct {
	Token string `json:"token"`
}

// AuthResponse is returned by signup and signin: a token pair plus the
// public view of the user.
type AuthResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

// RefreshResponse carries the newly minted access token. The refresh token
// itself is not rotated.
type RefreshResponse struct {
	Token string `json:"token"`
}

// UserResponse represents user data safe for API responses (never the hash).
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// PublicView converts a User to its API representation.
func (u *User) PublicView() UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}
