package session

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/config"
)

func newTestManager(secret string) *Manager {
	cfg := &config.Config{}
	cfg.App.Name = "storefront-test"
	cfg.Session.Secret = secret
	cfg.Session.TTL = time.Hour
	return NewManager(cfg)
}

func TestManager_NewSessionRoundTrip(t *testing.T) {
	m := newTestManager("0123456789abcdef0123456789abcdef")

	sid, token, err := m.NewSession()
	require.NoError(t, err)
	_, err = uuid.Parse(sid)
	require.NoError(t, err)

	got, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, sid, got)
}

func TestManager_RejectsForeignSignature(t *testing.T) {
	issuer := newTestManager("0123456789abcdef0123456789abcdef")
	verifier := newTestManager("fedcba9876543210fedcba9876543210")

	_, token, err := issuer.NewSession()
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestManager_RejectsExpired(t *testing.T) {
	m := newTestManager("0123456789abcdef0123456789abcdef")
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return start }

	_, token, err := m.NewSession()
	require.NoError(t, err)

	m.now = func() time.Time { return start.Add(2 * time.Hour) }
	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_IssueRequiresUUID(t *testing.T) {
	m := newTestManager("0123456789abcdef0123456789abcdef")
	_, err := m.Issue("not-a-uuid")
	assert.Error(t, err)
}

func TestManager_RejectsGarbage(t *testing.T) {
	m := newTestManager("0123456789abcdef0123456789abcdef")
	_, err := m.Validate("garbage.token.value")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
