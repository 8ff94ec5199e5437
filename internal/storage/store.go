// Package storage is the typed persistence layer of the storefront. It keeps
// the account directory in a durable repository and the active session in
// an ephemeral one.
//
// Read failures are never returned: an unreadable, undecodable or invalid
// record is logged and treated as absent.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/deliciousbites/internal/kvstore"
	"github.com/dmitrijs2005/deliciousbites/internal/logging"
	"github.com/dmitrijs2005/deliciousbites/internal/models"
)

// Record keys.
const (
	AccountsKey = "deliciousBitesUsers"
	SessionKey  = "currentUser"
)

// Record scopes reported by Records.
const (
	ScopeDurable = "durable"
	ScopeSession = "session"
)

// Record describes one stored key without exposing its value.
type Record struct {
	Scope string
	Key   string
	Size  int
}

type Store struct {
	durable   kvstore.Repository
	ephemeral kvstore.Repository
	codec     *TokenCodec
	log       logging.Logger
}

func New(durable, ephemeral kvstore.Repository, codec *TokenCodec, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{
		durable:   durable,
		ephemeral: ephemeral,
		codec:     codec,
		log:       log.With("component", "storage"),
	}
}

// SaveAccounts overwrites the stored directory with accounts.
func (s *Store) SaveAccounts(ctx context.Context, accounts []models.Account) error {
	if accounts == nil {
		accounts = []models.Account{}
	}
	data, err := json.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("failed to encode accounts: %w", err)
	}
	if err := s.durable.Set(ctx, AccountsKey, data); err != nil {
		return fmt.Errorf("failed to save accounts: %w", err)
	}
	return nil
}

// LoadAccounts returns the stored directory, or an empty slice.
func (s *Store) LoadAccounts(ctx context.Context) []models.Account {
	data, err := s.durable.Get(ctx, AccountsKey)
	if err != nil {
		s.log.Warn(ctx, "failed to read accounts, starting empty", "err", err)
		return []models.Account{}
	}
	if data == nil {
		return []models.Account{}
	}

	var accounts []models.Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		s.log.Warn(ctx, "discarding undecodable accounts record", "err", err)
		return []models.Account{}
	}
	if accounts == nil {
		accounts = []models.Account{}
	}
	return accounts
}

// SaveSession stores a, or clears the session record when a is nil.
func (s *Store) SaveSession(ctx context.Context, a *models.Account) error {
	if a == nil {
		if err := s.ephemeral.Delete(ctx, SessionKey); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		return nil
	}

	token, err := s.codec.Encode(*a)
	if err != nil {
		return err
	}
	if err := s.ephemeral.Set(ctx, SessionKey, []byte(token)); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// LoadSession returns the stored session account, or nil.
func (s *Store) LoadSession(ctx context.Context) *models.Account {
	data, err := s.ephemeral.Get(ctx, SessionKey)
	if err != nil {
		s.log.Warn(ctx, "failed to read session, starting anonymous", "err", err)
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	a, err := s.codec.Decode(string(data))
	if err != nil {
		s.log.Warn(ctx, "discarding invalid session record", "err", err)
		return nil
	}
	return &a
}

// Records lists the keys held by both repositories, durable first and
// sorted by key within a scope.
func (s *Store) Records(ctx context.Context) ([]Record, error) {
	var out []Record
	for _, src := range []struct {
		scope string
		repo  kvstore.Repository
	}{
		{ScopeDurable, s.durable},
		{ScopeSession, s.ephemeral},
	} {
		all, err := src.repo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s records: %w", src.scope, err)
		}
		start := len(out)
		for k, v := range all {
			out = append(out, Record{Scope: src.scope, Key: k, Size: len(v)})
		}
		part := out[start:]
		sort.Slice(part, func(i, j int) bool { return part[i].Key < part[j].Key })
	}
	return out, nil
}

// ForgetSessions wipes every record of the ephemeral repository. Accounts
// are left untouched.
func (s *Store) ForgetSessions(ctx context.Context) error {
	if err := s.ephemeral.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session store: %w", err)
	}
	s.log.Info(ctx, "session store cleared")
	return nil
}
