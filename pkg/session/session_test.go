package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	id      *Identity
	saveErr error
	loadErr error
	cleared int
}

func (m *memStore) SaveIdentity(_ context.Context, id Identity) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.id = &id
	return nil
}

func (m *memStore) LoadIdentity(_ context.Context) (Identity, error) {
	if m.loadErr != nil {
		return Identity{}, m.loadErr
	}
	if m.id == nil {
		return Identity{}, ErrNoIdentity
	}
	return *m.id, nil
}

func (m *memStore) ClearIdentity(_ context.Context) error {
	m.cleared++
	m.id = nil
	return nil
}

func TestSession_Transitions(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	s := New(WithStore(store))

	assert.False(t, s.Authenticated())
	assert.Equal(t, "guest@social-terminal:~$", s.Prompt())

	require.NoError(t, s.Set(ctx, Identity{UserID: 1, Username: "bob", Token: "t"}))
	id, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "bob", id.Username)
	assert.Equal(t, "t", s.Token())
	assert.Equal(t, "bob@social-terminal:~$", s.Prompt())
	require.NotNil(t, store.id)

	require.NoError(t, s.Clear(ctx))
	assert.False(t, s.Authenticated())
	assert.Equal(t, "", s.Token())
	assert.Nil(t, store.id)
	assert.Equal(t, 1, store.cleared)
}

func TestSession_SetKeepsIdentityWhenStoreFails(t *testing.T) {
	s := New(WithStore(&memStore{saveErr: errors.New("locked")}))
	err := s.Set(context.Background(), Identity{Username: "bob", Token: "t"})
	assert.Error(t, err)
	assert.True(t, s.Authenticated())
}

func TestSession_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing saved", func(t *testing.T) {
		s := New(WithStore(&memStore{}))
		_, ok, err := s.Restore(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("saved identity", func(t *testing.T) {
		store := &memStore{id: &Identity{UserID: 3, Username: "ann", Token: "tok"}}
		s := New(WithStore(store))
		id, ok, err := s.Restore(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "ann", id.Username)
		assert.True(t, s.Authenticated())
	})

	t.Run("load error", func(t *testing.T) {
		s := New(WithStore(&memStore{loadErr: errors.New("corrupt")}))
		_, ok, err := s.Restore(ctx)
		assert.Error(t, err)
		assert.False(t, ok)
		assert.False(t, s.Authenticated())
	})

	t.Run("no store", func(t *testing.T) {
		_, ok, err := New().Restore(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestSession_DefaultHistory(t *testing.T) {
	s := New()
	require.NotNil(t, s.History())
	assert.Equal(t, 0, s.History().Len())

	h := NewHistory(WithEntries([]string{"x"}))
	assert.Same(t, h, New(WithHistory(h)).History())
}
