package store

import (
	"encoding/json"
	"log"

	"github.com/pranavmanvics24/ecowave-client/internal/state"
)

// TokenStorageName is the record name the bearer token persists under,
// deliberately separate from the cart and auth records.
const TokenStorageName = "token"

type tokenState struct {
	Token string `json:"token"`
}

// TokenStore keeps the bearer credential obtained at login. Callers attach
// it manually to requests that require authentication (mark-sold, impact
// stats).
type TokenStore struct {
	storage state.Storage
	token   string
}

// NewTokenStore creates a token store bound to the given storage, restoring
// any previously persisted token.
func NewTokenStore(storage state.Storage) *TokenStore {
	s := &TokenStore{storage: storage}

	raw, ok, err := storage.Load(TokenStorageName)
	if err != nil {
		log.Printf("[Auth] Failed to load persisted token: %v", err)
		return s
	}
	if ok {
		var persisted tokenState
		if err := json.Unmarshal(raw, &persisted); err != nil {
			log.Printf("[Auth] Failed to decode persisted token: %v", err)
			return s
		}
		s.token = persisted.Token
	}
	return s
}

// Set stores a new bearer token, replacing any previous one.
func (s *TokenStore) Set(token string) {
	s.token = token
	raw, err := json.Marshal(tokenState{Token: token})
	if err != nil {
		log.Printf("[Auth] Failed to encode token: %v", err)
		return
	}
	if err := s.storage.Save(TokenStorageName, raw); err != nil {
		log.Printf("[Auth] Failed to persist token: %v", err)
	}
}

// Get returns the stored token, or "" when none is held.
func (s *TokenStore) Get() string {
	return s.token
}

// Clear discards the stored token.
func (s *TokenStore) Clear() {
	s.token = ""
	if err := s.storage.Delete(TokenStorageName); err != nil {
		log.Printf("[Auth] Failed to delete persisted token: %v", err)
	}
}
