package contact

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/domain/events"
	"github.com/your-org/storefront/internal/infrastructure/storage"
	"github.com/your-org/storefront/internal/pkg/validation"
)

func newTestService() *Service {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewService(storage.NewMemory(), storage.NewLocker(), events.Nop{}, log)
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	at := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	svc.now = func() time.Time { return at }

	msg, err := svc.Submit(ctx, "sid", SubmitRequest{Name: " Asha ", Email: "asha@example.com", Message: "Is the Aurum in stock?"})
	require.NoError(t, err)
	assert.Equal(t, "1770091506000", msg.ID)
	assert.Equal(t, "Asha", msg.Name)
	assert.True(t, msg.Date.Equal(at))

	messages, err := svc.List(ctx, "sid")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, msg.ID, messages[0].ID)
}

func TestSubmit_AllFieldsRequired(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	for _, req := range []SubmitRequest{
		{Email: "a@example.com", Message: "hi"},
		{Name: "A", Message: "hi"},
		{Name: "A", Email: "a@example.com", Message: "   "},
	} {
		_, err := svc.Submit(ctx, "sid", req)
		assert.ErrorIs(t, err, validation.ErrInvalid)
	}

	messages, err := svc.List(ctx, "sid")
	require.NoError(t, err)
	assert.Empty(t, messages)
}
