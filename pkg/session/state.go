package session

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

// State is the view of a Store scoped to one session. It implements the
// skills.State contract handed to skill handlers.
type State struct {
	store     Store
	sessionID string
}

// NewState scopes store to sessionID
func NewState(store Store, sessionID string) *State {
	return &State{store: store, sessionID: sessionID}
}

// SessionID returns the id of the session the state is scoped to
func (s *State) SessionID() string {
	return s.sessionID
}

// Load decodes the JSON value under key into out
func (s *State) Load(ctx context.Context, key string, out any) (bool, error) {
	raw, ok, err := s.store.Get(ctx, s.sessionID, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, errors.Wrapf(err, "failed to decode session key %s", key)
	}
	return true, nil
}

// Save encodes value as JSON and stores it under key
func (s *State) Save(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "failed to encode session key %s", key)
	}
	return s.store.Put(ctx, s.sessionID, key, raw)
}
