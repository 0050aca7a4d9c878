package repositories

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"resetd/internal/models"
)

// openTestDB connects to MONGODB_TEST_URL and returns a throwaway database.
func openTestDB(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGODB_TEST_URL")
	if uri == "" {
		t.Skip("MONGODB_TEST_URL not set")
	}
	ctx := context.Background()
	client, err := Connect(ctx, uri, 5*time.Second)
	require.NoError(t, err)

	db := client.Database("resetd_test_" + bson.NewObjectID().Hex())
	require.NoError(t, EnsureIndexes(ctx, db))
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return db
}

func TestUserRepository_CreateAndGetByEmail(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()

	u := &models.User{Name: "Ann", Email: "ann@x.com", Password: "hash"}
	require.NoError(t, repo.Create(ctx, u))
	require.False(t, u.ID.IsZero())

	got, err := repo.GetByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "Ann", got.Name)
	assert.Nil(t, got.ResetToken)
	assert.Nil(t, got.ResetTokenExpiry)

	_, err = repo.GetByEmail(ctx, "nobody@x.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_UniqueEmail(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Name: "Ann", Email: "ann@x.com", Password: "h"}))
	err := repo.Create(ctx, &models.User{Name: "Ann2", Email: "ann@x.com", Password: "h"})
	require.ErrorIs(t, err, ErrDuplicate)
}

func TestUserRepository_ResetTokenLookups(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	u := &models.User{Name: "Ann", Email: "ann@x.com", Password: "h"}
	require.NoError(t, repo.Create(ctx, u))
	u.SetReset("tok", now.Add(time.Hour))
	require.NoError(t, repo.Save(ctx, u))

	got, err := repo.GetByResetToken(ctx, "tok")
	require.NoError(t, err)
	require.NotNil(t, got.ResetTokenExpiry)
	assert.True(t, got.ResetTokenExpiry.Equal(now.Add(time.Hour)))

	_, err = repo.GetByActiveResetToken(ctx, "tok", now)
	require.NoError(t, err)
	_, err = repo.GetByActiveResetToken(ctx, "tok", now.Add(2*time.Hour))
	require.ErrorIs(t, err, ErrNotFound)

	got.ClearReset()
	require.NoError(t, repo.Save(ctx, got))
	_, err = repo.GetByResetToken(ctx, "tok")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_List(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	require.NoError(t, repo.Create(ctx, &models.User{Name: "A", Email: "a@x.com", Password: "h"}))
	require.NoError(t, repo.Create(ctx, &models.User{Name: "B", Email: "b@x.com", Password: "h"}))
	users, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUserRepository_SaveMissing(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	err := repo.Save(context.Background(), &models.User{ID: bson.NewObjectID(), Email: "x@x.com"})
	require.ErrorIs(t, err, ErrNotFound)
}
