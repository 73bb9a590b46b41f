// internal/pkg/session/token.go
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/your-org/storefront/internal/config"
)

const tokenType = "visitor"

// ErrInvalidToken is returned for tokens that fail signature or claim checks
var ErrInvalidToken = errors.New("invalid session token")

// Claims represents the visitor session claims
type Claims struct {
	SessionID string `json:"sid"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Manager issues and validates visitor session tokens. A session ID plays
// the role of a browser's local storage: every persisted key is scoped to it.
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates a new session token manager
func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		secret: []byte(cfg.Session.Secret),
		issuer: cfg.App.Name,
		ttl:    cfg.Session.TTL,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// TTL returns how long issued tokens stay valid
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// NewSession creates a fresh session ID and its signed token
func (m *Manager) NewSession() (string, string, error) {
	sessionID := uuid.New().String()
	token, err := m.Issue(sessionID)
	if err != nil {
		return "", "", err
	}
	return sessionID, token, nil
}

// Issue signs a token for an existing session ID
func (m *Manager) Issue(sessionID string) (string, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return "", fmt.Errorf("session id must be a uuid: %w", err)
	}

	now := m.now()
	claims := &Claims{
		SessionID: sessionID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			Subject:   "session:" + sessionID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate parses a token and returns its session ID
func (m *Manager) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithIssuer(m.issuer))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.TokenType != tokenType {
		return "", fmt.Errorf("%w: unexpected token type %q", ErrInvalidToken, claims.TokenType)
	}
	if _, err := uuid.Parse(claims.SessionID); err != nil {
		return "", fmt.Errorf("%w: malformed session id", ErrInvalidToken)
	}

	return claims.SessionID, nil
}
