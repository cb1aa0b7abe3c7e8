package auth

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// VideoTokenProvider issues short-lived viewer tokens for the external
// video-call provider, signed with the provider's shared secret.
type VideoTokenProvider struct {
	apiKey string
	secret []byte
	ttl    time.Duration
}

// NewVideoTokenProvider builds a provider.
func NewVideoTokenProvider(apiKey, secret string, ttl time.Duration) *VideoTokenProvider {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &VideoTokenProvider{apiKey: apiKey, secret: []byte(secret), ttl: ttl}
}

// APIKey returns the provider API key handed to clients with the token.
func (p *VideoTokenProvider) APIKey() string {
	return p.apiKey
}

// CreateToken signs a viewer token for the given user id.
func (p *VideoTokenProvider) CreateToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(p.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}
