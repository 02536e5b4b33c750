package state

import (
	"encoding/json"
	"time"
)

// Record is a point-in-time serialized state persisted under a fixed name.
// Each store owns exactly one record; the whole state is rewritten on every
// mutation.
type Record struct {
	Name      string          `json:"name"`
	State     json.RawMessage `json:"state"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Storage is the persistence adapter for client-side state. The contract is
// simply "state survives a restart under a named key": read on init, write
// on every mutation.
type Storage interface {
	// Load returns the serialized state for a name. The second return is
	// false when no record exists yet.
	Load(name string) (json.RawMessage, bool, error)

	// Save writes the serialized state for a name, replacing any previous
	// record.
	Save(name string, state json.RawMessage) error

	// Delete removes the record for a name. Deleting an absent record is
	// not an error.
	Delete(name string) error
}
