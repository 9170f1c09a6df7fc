package yatgsubscription_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/YaCodeDev/GoYaTgBotKit/yatgsubscription"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

const (
	botID  = 123456
	userID = 1000
)

func newMockDB(t *testing.T) *gorm.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite in memory")
	}

	// Every pooled connection to ":memory:" would get its own empty database.
	sqlDB.SetMaxOpenConns(1)

	poolDB, err := gorm.Open(
		gorm.Dialector(
			sqlite.Dialector{
				Conn:       sqlDB,
				DriverName: "sqlite",
			},
		), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory database: %v", err)
	}

	return poolDB
}

func newStore(t *testing.T) *yatgsubscription.Store {
	t.Helper()

	store, err := yatgsubscription.NewGormStore(newMockDB(t))
	require.Nil(t, err)

	return store
}

func TestAutoMigrate_Works(t *testing.T) {
	t.Parallel()

	poolDB := newMockDB(t)

	_, err := yatgsubscription.NewGormStore(poolDB)
	require.Nil(t, err)

	assert.True(t, poolDB.Migrator().HasTable(&yatgsubscription.BotSubscriber{}))
}

func TestStore_WorkflowWorks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newStore(t)

	ok, err := store.IsSubscriber(ctx, botID, userID)
	require.Nil(t, err)
	assert.False(t, ok)

	t.Run("Subscribe works", func(t *testing.T) {
		changed, err := store.Subscribe(ctx, botID, userID)
		require.Nil(t, err)
		assert.True(t, changed)

		changed, err = store.Subscribe(ctx, botID, userID)
		require.Nil(t, err)
		assert.False(t, changed)

		ok, err := store.IsSubscriber(ctx, botID, userID)
		require.Nil(t, err)
		assert.True(t, ok)
	})

	t.Run("Unsubscribe works", func(t *testing.T) {
		changed, err := store.Unsubscribe(ctx, botID, userID)
		require.Nil(t, err)
		assert.True(t, changed)

		changed, err = store.Unsubscribe(ctx, botID, userID)
		require.Nil(t, err)
		assert.False(t, changed)

		ok, err := store.IsSubscriber(ctx, botID, userID)
		require.Nil(t, err)
		assert.False(t, ok)
	})

	t.Run("Resubscribe reactivates", func(t *testing.T) {
		changed, err := store.Subscribe(ctx, botID, userID)
		require.Nil(t, err)
		assert.True(t, changed)

		ok, err := store.IsSubscriber(ctx, botID, userID)
		require.Nil(t, err)
		assert.True(t, ok)
	})
}

func TestStore_Count(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newStore(t)

	for _, id := range []int64{1, 2, 3} {
		_, err := store.Subscribe(ctx, botID, id)
		require.Nil(t, err)
	}

	_, err := store.Subscribe(ctx, botID+1, 1)
	require.Nil(t, err)

	_, err = store.Unsubscribe(ctx, botID, 2)
	require.Nil(t, err)

	count, err := store.Count(ctx, botID)
	require.Nil(t, err)
	assert.Equal(t, int64(2), count)
}
