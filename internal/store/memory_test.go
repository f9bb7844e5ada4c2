package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUserStore_CreateAndLookup(t *testing.T) {
	t.Parallel()

	s := NewMemoryUserStore()
	ctx := context.Background()

	u, err := s.CreateUser(ctx, "a@x.com", "alice", "Pass123!")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "a@x.com", u.Email)
	assert.Equal(t, "alice", u.Username)

	got, err := s.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.NotEqual(t, "Pass123!", got.Password, "password must be stored hashed")

	_, err = s.GetUserByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUserStore_DuplicateEmail(t *testing.T) {
	t.Parallel()

	s := NewMemoryUserStore()
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "a@x.com", "alice", "Pass123!")
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, "a@x.com", "bob", "Other456?")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestMemoryUserStore_CheckPassword(t *testing.T) {
	t.Parallel()

	s := NewMemoryUserStore()
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "a@x.com", "alice", "Pass123!")
	require.NoError(t, err)

	ok, err := s.CheckPassword(ctx, "a@x.com", "Pass123!")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.CheckPassword(ctx, "a@x.com", "Wrong123!")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.CheckPassword(ctx, "nobody@x.com", "Pass123!")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPasswordPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		reasons  int
	}{
		{"valid", "Pass123!", 0},
		{"too short but complete", "P1a!", 1},
		{"no digit", "Password!", 1},
		{"no uppercase", "password1!", 1},
		{"no lowercase", "PASSWORD1!", 1},
		{"no special", "Password1", 1},
		{"everything wrong", "aaaa", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkPasswordPolicy(tt.password)
			if tt.reasons == 0 {
				assert.NoError(t, err)
				return
			}
			var credErr *CredentialError
			require.ErrorAs(t, err, &credErr)
			assert.Len(t, credErr.Reasons, tt.reasons)
		})
	}
}

func TestMemoryItemStore_CRUD(t *testing.T) {
	t.Parallel()

	s := NewMemoryItemStore()
	ctx := context.Background()

	a, err := s.Create(ctx, "first", "desc", false)
	require.NoError(t, err)
	b, err := s.Create(ctx, "second", "", true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, *a, items[0])

	removed, err := s.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, removed)
	_, err = s.Get(ctx, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// id not reused after delete
	c, err := s.Create(ctx, "third", "", false)
	require.NoError(t, err)
	assert.Equal(t, int64(3), c.ID)
}
