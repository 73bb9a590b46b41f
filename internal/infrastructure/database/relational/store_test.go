package relational

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/infrastructure/storage"
	"github.com/your-org/storefront/internal/infrastructure/storage/storagetest"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	s := NewStore(db)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_Conformance(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store {
		return newTestStore(t)
	})
}

func TestStore_UpsertRefreshesUpdatedAt(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return first }
	require.NoError(t, s.Set(ctx, "sid", storage.KeyUserWallet, []byte(`{"balance":0}`)))

	second := first.Add(time.Hour)
	s.now = func() time.Time { return second }
	require.NoError(t, s.Set(ctx, "sid", storage.KeyUserWallet, []byte(`{"balance":500}`)))

	var records []Record
	require.NoError(t, s.db.Where("session_id = ?", "sid").Find(&records).Error)
	require.Len(t, records, 1)
	assert.JSONEq(t, `{"balance":500}`, string(records[0].Value))
	assert.True(t, records[0].UpdatedAt.Equal(second))
}

func TestStore_SetManyInsertsAndUpdates(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Set(ctx, "sid", storage.KeyCart, []byte(`[{"name":"A"}]`)))
	require.NoError(t, s.SetMany(ctx, "sid", map[string][]byte{
		storage.KeyCart:       []byte(`[]`),
		storage.KeyUserOrders: []byte(`[{"id":"654321"}]`),
	}))

	cart, ok, err := s.Get(ctx, "sid", storage.KeyCart)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[]`, string(cart))

	var count int64
	require.NoError(t, s.db.Model(&Record{}).Where("session_id = ?", "sid").Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestGormLogger_WritesThroughLogrus(t *testing.T) {
	ctx := context.Background()
	log, hook := logtest.NewNullLogger()

	newGormLogger(log, true).Warn(ctx, "slow query on %s", "storefront_records")
	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Contains(t, entry.Message, "slow query on storefront_records")
	assert.Equal(t, "gorm", entry.Data["component"])

	hook.Reset()
	newGormLogger(log, false).Warn(ctx, "ignored")
	newGormLogger(logrus.NewEntry(log), false).Error(ctx, "ignored")
	assert.Empty(t, hook.AllEntries())
}
