package store

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/pranavmanvics24/ecowave-client/internal/state"
)

// AuthStorageName is the fixed record name the auth state persists under,
// independent of the cart's record.
const AuthStorageName = "auth-storage"

// User is the current session's identity.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type authState struct {
	IsAuthenticated bool   `json:"is_authenticated"`
	User            *User  `json:"user"`
	SessionID       string `json:"session_id,omitempty"`
}

// AuthStore holds the single current-session identity. Exactly one user can
// be active at a time; there is no concept of multiple concurrent sessions
// within one client instance.
type AuthStore struct {
	storage state.Storage
	tokens  *TokenStore
	state   authState
}

// NewAuthStore creates an auth store bound to the given storage, restoring
// any previously persisted session. The token store is cleared on logout so
// a stale credential never outlives its session.
func NewAuthStore(storage state.Storage, tokens *TokenStore) *AuthStore {
	s := &AuthStore{storage: storage, tokens: tokens}

	raw, ok, err := storage.Load(AuthStorageName)
	if err != nil {
		log.Printf("[Auth] Failed to load persisted session: %v", err)
		return s
	}
	if ok {
		if err := json.Unmarshal(raw, &s.state); err != nil {
			log.Printf("[Auth] Failed to decode persisted session: %v", err)
			s.state = authState{}
		}
	}
	return s
}

// Login records the user as the active session, replacing any previous one.
func (s *AuthStore) Login(user User) {
	s.state = authState{
		IsAuthenticated: true,
		User:            &user,
		SessionID:       uuid.New().String(),
	}
	s.persist()
}

// Logout restores the initial state: no user, not authenticated. The bearer
// token is discarded as well, so login and credential lifetimes always
// match.
func (s *AuthStore) Logout() {
	s.state = authState{}
	s.persist()
	if s.tokens != nil {
		s.tokens.Clear()
	}
}

// IsAuthenticated reports whether a session is active.
func (s *AuthStore) IsAuthenticated() bool {
	return s.state.IsAuthenticated
}

// User returns the active session's identity, or nil when logged out.
func (s *AuthStore) User() *User {
	if s.state.User == nil {
		return nil
	}
	u := *s.state.User
	return &u
}

// SessionID returns the identifier minted at login, or "" when logged out.
func (s *AuthStore) SessionID() string {
	return s.state.SessionID
}

func (s *AuthStore) persist() {
	raw, err := json.Marshal(s.state)
	if err != nil {
		log.Printf("[Auth] Failed to encode session state: %v", err)
		return
	}
	if err := s.storage.Save(AuthStorageName, raw); err != nil {
		log.Printf("[Auth] Failed to persist session: %v", err)
	}
}
