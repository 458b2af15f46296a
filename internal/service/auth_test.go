package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelist/cinelist-server/internal/auth"
	domainerrors "github.com/cinelist/cinelist-server/internal/errors"
	"github.com/cinelist/cinelist-server/internal/id"
	"github.com/cinelist/cinelist-server/internal/store"
)

// setupAuthTest creates an auth service over an in-memory store.
func setupAuthTest(t *testing.T, seed bool) (*AuthService, *store.MemoryStore) {
	t.Helper()

	key, err := auth.LoadOrGenerateKey(t.TempDir())
	require.NoError(t, err)

	tokens, err := auth.NewTokenService(key, 15*time.Minute)
	require.NoError(t, err)

	s := store.NewMemoryStore()
	return NewAuthService(s, tokens, seed, quietLogger()), s
}

func TestAuthService_Login_CreatesUser(t *testing.T) {
	svc, s := setupAuthTest(t, false)
	ctx := context.Background()

	result, err := svc.Login(ctx, "  ada@example.com ", "")
	require.NoError(t, err)

	assert.NotEmpty(t, result.AccessToken)
	assert.True(t, result.ExpiresAt.After(time.Now()))
	assert.Equal(t, id.ForEmail("ada@example.com"), result.User.ID)
	assert.Equal(t, "ada", result.User.Name)
	assert.Equal(t, "ada@example.com", result.User.Email)
	assert.Equal(t, "/cover-collage.jpg", result.User.CoverImageURL)
	assert.True(t, strings.HasPrefix(result.User.AvatarURL, "/dp/"))
	assert.Empty(t, result.User.Lists)

	stored, err := s.LoadUser(ctx, result.User.ID)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, stored.ID)
}

func TestAuthService_Login_ReturnsExistingUser(t *testing.T) {
	svc, _ := setupAuthTest(t, true)
	ctx := context.Background()

	first, err := svc.Login(ctx, "grace@example.com", "Grace Hopper")
	require.NoError(t, err)
	require.Len(t, first.User.Lists, 2)

	second, err := svc.Login(ctx, "grace@example.com", "Someone Else")
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, "Grace Hopper", second.User.Name)
	assert.Equal(t, listIDs(first.User.Lists), listIDs(second.User.Lists))
}

func TestAuthService_Login_RejectsBadEmail(t *testing.T) {
	svc, _ := setupAuthTest(t, false)

	for _, email := range []string{"", "   ", "not-an-email"} {
		_, err := svc.Login(context.Background(), email, "")
		assert.ErrorIs(t, err, domainerrors.ErrValidation, email)
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	svc, _ := setupAuthTest(t, false)

	result, err := svc.Login(context.Background(), "ada@example.com", "Ada")
	require.NoError(t, err)

	userID, err := svc.Authenticate(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, userID)

	_, err = svc.Authenticate("v4.local.garbage")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestAvatarPreset_IsStable(t *testing.T) {
	a := AvatarPreset("usr-abc")
	assert.Equal(t, a, AvatarPreset("usr-abc"))
	assert.Regexp(t, `^/dp/([1-9]|10)\.png$`, a)
}

func TestSampleLists(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	lists := SampleLists(now)

	require.Len(t, lists, 2)
	assert.True(t, lists[0].Pinned)
	assert.False(t, lists[1].Pinned)
	assert.NotEqual(t, lists[0].ID, lists[1].ID)
	for _, l := range lists {
		for _, item := range l.Items {
			assert.True(t, now.Equal(item.AddedOn))
		}
	}
}
