// Package auth issues and validates the bearer tokens solve clients
// use to authenticate against internal/server. There are no end-user
// passwords here: callers are services holding a shared API key, so
// token issuance is a local key check rather than a credential
// exchange with a user store.
package auth

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidToken       = errors.New("invalid token")
)

// Claims identifies the calling service and what it's allowed to do.
type Claims struct {
	ClientID string   `json:"clientId"`
	Scopes   []string `json:"scopes"`
	jwt.RegisteredClaims
}

// HasScope reports whether the claims grant the given scope.
func (c *Claims) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// AuthService issues and validates Claims-bearing JWTs, and checks
// presented API keys against the configured set using constant-time
// comparison.
type AuthService struct {
	jwtSecret     []byte
	tokenDuration time.Duration
	apiKeys       map[string]string // key -> clientID
}

// NewAuthService builds an AuthService. apiKeys maps a shared secret
// to the client ID it authenticates as.
func NewAuthService(jwtSecret string, apiKeys map[string]string) *AuthService {
	return &AuthService{
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 24 * time.Hour,
		apiKeys:       apiKeys,
	}
}

// CheckAPIKey compares key against every configured key in constant
// time and returns the client ID it belongs to.
func (s *AuthService) CheckAPIKey(key string) (string, bool) {
	for candidate, clientID := range s.apiKeys {
		if subtle.ConstantTimeCompare([]byte(key), []byte(candidate)) == 1 {
			return clientID, true
		}
	}
	return "", false
}

// GenerateToken creates a new JWT token for a client with the given scopes.
func (s *AuthService) GenerateToken(clientID string, scopes []string) (string, error) {
	claims := &Claims{
		ClientID: clientID,
		Scopes:   scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "fillengine",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken validates a JWT token and returns the claims.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// RefreshToken creates a new token with extended expiration.
func (s *AuthService) RefreshToken(claims *Claims) (string, error) {
	return s.GenerateToken(claims.ClientID, claims.Scopes)
}
