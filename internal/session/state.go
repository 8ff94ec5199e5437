// Package session tracks the single authenticated identity, if any.
//
// The state machine has two states, Anonymous and Authenticated. The initial
// state is whatever the store recovers; every transition is persisted.
package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/deliciousbites/internal/logging"
	"github.com/dmitrijs2005/deliciousbites/internal/models"
)

// Store persists the session record. A nil account clears it.
type Store interface {
	SaveSession(ctx context.Context, a *models.Account) error
	LoadSession(ctx context.Context) *models.Account
}

type State struct {
	store   Store
	current *models.Account
	log     logging.Logger
}

// New recovers the session from store. A nil logger is allowed.
func New(ctx context.Context, store Store, log logging.Logger) *State {
	if log == nil {
		log = logging.Nop()
	}
	s := &State{store: store, log: log}
	if a := store.LoadSession(ctx); a != nil {
		s.current = a
		log.Debug(ctx, "session recovered", "email", a.Email)
	}
	return s
}

// LogIn makes a the current session, replacing any previous one. The
// in-memory state changes even when persisting fails.
func (s *State) LogIn(ctx context.Context, a models.Account) error {
	s.current = &a
	if err := s.store.SaveSession(ctx, &a); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// LogOut returns to Anonymous and clears the stored record.
func (s *State) LogOut(ctx context.Context) error {
	s.current = nil
	if err := s.store.SaveSession(ctx, nil); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Current returns the authenticated account.
func (s *State) Current() (models.Account, bool) {
	if s.current == nil {
		return models.Account{}, false
	}
	return *s.current, true
}
