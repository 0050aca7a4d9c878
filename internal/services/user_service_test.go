package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resetd/internal/models"
	"resetd/internal/repositories"
	"resetd/internal/testutil"
)

func TestUserService_RegisterThenExists(t *testing.T) {
	repo := testutil.NewUserRepo()
	auth := testAuth()
	svc := NewUserService(repo, auth)
	ctx := context.Background()

	u, err := svc.Register(ctx, "Ann", "ann@x.com", "secret1")
	require.NoError(t, err)
	assert.False(t, u.ID.IsZero())
	assert.NotEqual(t, "secret1", u.Password)
	require.NoError(t, auth.CheckPassword(u.Password, "secret1"))

	exists, err := svc.Exists(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.Exists(ctx, "bob@x.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserService_RegisterMissingFields(t *testing.T) {
	svc := NewUserService(testutil.NewUserRepo(), testAuth())
	cases := []struct{ name, email, password string }{
		{"", "a@x.com", "secret1"},
		{"Ann", "", "secret1"},
		{"Ann", "a@x.com", ""},
	}
	for _, tc := range cases {
		_, err := svc.Register(context.Background(), tc.name, tc.email, tc.password)
		require.ErrorIs(t, err, ErrMissingFields)
	}
}

func TestUserService_RegisterDuplicateKeepsOriginal(t *testing.T) {
	repo := testutil.NewUserRepo()
	svc := NewUserService(repo, testAuth())
	ctx := context.Background()

	first, err := svc.Register(ctx, "Ann", "ann@x.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Impostor", "ann@x.com", "other-pass")
	require.ErrorIs(t, err, ErrUserExists)

	stored := repo.Get("ann@x.com")
	assert.Equal(t, "Ann", stored.Name)
	assert.Equal(t, first.Password, stored.Password)
}

// raceRepo hides existing users from the pre-check so the insert hits the unique index.
type raceRepo struct {
	*testutil.UserRepo
}

func (r raceRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, repositories.ErrNotFound
}

func TestUserService_RegisterDuplicateKeyIsConflict(t *testing.T) {
	mem := testutil.NewUserRepo()
	require.NoError(t, mem.Create(context.Background(), &models.User{Name: "Ann", Email: "ann@x.com", Password: "h"}))
	svc := NewUserService(raceRepo{mem}, testAuth())

	_, err := svc.Register(context.Background(), "Ann", "ann@x.com", "secret1")
	require.ErrorIs(t, err, ErrUserExists)
}

func TestUserService_RegisterLookupError(t *testing.T) {
	repo := testutil.NewUserRepo()
	repo.FindErr = errBoom
	svc := NewUserService(repo, testAuth())

	_, err := svc.Register(context.Background(), "Ann", "ann@x.com", "secret1")
	require.ErrorIs(t, err, errBoom)
}

func TestUserService_ExistsBlankEmail(t *testing.T) {
	svc := NewUserService(testutil.NewUserRepo(), testAuth())
	_, err := svc.Exists(context.Background(), "  ")
	require.ErrorIs(t, err, ErrEmailRequired)
}

func TestUserService_GetByEmail(t *testing.T) {
	svc := NewUserService(testutil.NewUserRepo(), testAuth())
	_, err := svc.GetByEmail(context.Background(), "ghost@x.com")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_List(t *testing.T) {
	svc := NewUserService(testutil.NewUserRepo(), testAuth())
	ctx := context.Background()

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	_, err = svc.Register(ctx, "Ann", "ann@x.com", "secret1")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "Bob", "bob@x.com", "secret2")
	require.NoError(t, err)

	users, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	for _, u := range users {
		assert.NotEmpty(t, u.Password)
	}
}

func TestUserService_RegisterTrimsEmail(t *testing.T) {
	repo := testutil.NewUserRepo()
	svc := NewUserService(repo, testAuth())
	ctx := context.Background()

	u, err := svc.Register(ctx, "Ann", "  ann@x.com\t", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", u.Email)
	assert.NotNil(t, repo.Get("ann@x.com"))

	_, err = svc.Register(ctx, "Ann", "ann@x.com", "secret1")
	require.ErrorIs(t, err, ErrUserExists)

	_, err = svc.Register(ctx, "Ann", "   ", "secret1")
	require.ErrorIs(t, err, ErrMissingFields)

	got, err := svc.GetByEmail(ctx, " ann@x.com ")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}
