package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims represents the JWT claims carried by both access and refresh tokens.
// The two token kinds differ only in lifetime and signing secret; possession
// of a valid refresh token is sufficient to mint new access tokens until it
// expires (there is no revocation list).
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

// GenerateAccessToken signs a short-lived access token for the given user.
func GenerateAccessToken(userID int64, secret string, ttl time.Duration) (string, error) {
	return generateToken(userID, secret, ttl)
}

// GenerateRefreshToken signs a long-lived refresh token for the given user.
// The secret must be distinct from the access-token secret so that tokens
// from one path are never accepted on the other.
func GenerateRefreshToken(userID int64, secret string, ttl time.Duration) (string, error) {
	return generateToken(userID, secret, ttl)
}

func generateToken(userID int64, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "taskfeed",
			Audience:  jwt.ClaimStrings{"taskfeed-api"},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses and validates a token against the given secret,
// returning the claims if valid. Fails with ErrInvalidToken on a bad
// signature, malformed payload, or expiry.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	}, jwt.WithIssuer("taskfeed"), jwt.WithAudience("taskfeed-api"))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
