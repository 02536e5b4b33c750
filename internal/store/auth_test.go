package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranavmanvics24/ecowave-client/internal/state"
)

func newTestAuthStore() (*AuthStore, *TokenStore, *state.MemoryStorage) {
	storage := state.NewMemoryStorage()
	tokens := NewTokenStore(storage)
	return NewAuthStore(storage, tokens), tokens, storage
}

// ============================================
// Login / Logout Tests
// ============================================

func TestAuthStore_InitialState(t *testing.T) {
	auth, _, _ := newTestAuthStore()

	assert.False(t, auth.IsAuthenticated())
	assert.Nil(t, auth.User())
}

func TestAuthStore_Login(t *testing.T) {
	auth, _, _ := newTestAuthStore()

	auth.Login(User{Name: "Alice", Email: "alice@example.com"})

	assert.True(t, auth.IsAuthenticated())
	require.NotNil(t, auth.User())
	assert.Equal(t, "Alice", auth.User().Name)
	assert.Equal(t, "alice@example.com", auth.User().Email)
	assert.NotEmpty(t, auth.SessionID())
}

func TestAuthStore_Login_ReplacesPreviousUser(t *testing.T) {
	auth, _, _ := newTestAuthStore()

	auth.Login(User{Name: "Alice", Email: "alice@example.com"})
	first := auth.SessionID()
	auth.Login(User{Name: "Bob", Email: "bob@example.com"})

	require.NotNil(t, auth.User())
	assert.Equal(t, "bob@example.com", auth.User().Email)
	assert.NotEqual(t, first, auth.SessionID())
}

func TestAuthStore_LogoutRestoresInitialState(t *testing.T) {
	auth, _, _ := newTestAuthStore()

	auth.Login(User{Name: "Alice", Email: "alice@example.com"})
	auth.Logout()

	assert.False(t, auth.IsAuthenticated())
	assert.Nil(t, auth.User())
	assert.Empty(t, auth.SessionID())
}

func TestAuthStore_LogoutClearsToken(t *testing.T) {
	auth, tokens, storage := newTestAuthStore()

	auth.Login(User{Name: "Alice", Email: "alice@example.com"})
	tokens.Set("jwt-token")

	auth.Logout()

	assert.Empty(t, tokens.Get())
	_, ok, err := storage.Load(TokenStorageName)
	require.NoError(t, err)
	assert.False(t, ok)
}

// ============================================
// Persistence Tests
// ============================================

func TestAuthStore_PersistsAcrossRestart(t *testing.T) {
	storage := state.NewMemoryStorage()
	tokens := NewTokenStore(storage)
	auth := NewAuthStore(storage, tokens)

	auth.Login(User{Name: "Alice", Email: "alice@example.com"})

	restored := NewAuthStore(storage, NewTokenStore(storage))

	assert.True(t, restored.IsAuthenticated())
	require.NotNil(t, restored.User())
	assert.Equal(t, "alice@example.com", restored.User().Email)
	assert.Equal(t, auth.SessionID(), restored.SessionID())
}

func TestAuthStore_IndependentOfCartRecord(t *testing.T) {
	storage := state.NewMemoryStorage()
	tokens := NewTokenStore(storage)
	auth := NewAuthStore(storage, tokens)
	cart := NewCartStore(storage)

	auth.Login(User{Name: "Alice", Email: "alice@example.com"})
	cart.AddItem(product("p1", 100))

	auth.Logout()

	// Logging out does not touch the cart record.
	restoredCart := NewCartStore(storage)
	assert.Equal(t, 1, restoredCart.Count())
}

// ============================================
// Token Keeper Tests
// ============================================

func TestTokenStore_SetGetClear(t *testing.T) {
	storage := state.NewMemoryStorage()
	tokens := NewTokenStore(storage)

	assert.Empty(t, tokens.Get())

	tokens.Set("jwt-token")
	assert.Equal(t, "jwt-token", tokens.Get())

	// Survives a restart under the fixed name.
	restored := NewTokenStore(storage)
	assert.Equal(t, "jwt-token", restored.Get())

	restored.Clear()
	assert.Empty(t, restored.Get())
	assert.Empty(t, NewTokenStore(storage).Get())
}
