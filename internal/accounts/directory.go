// Package accounts holds the registry of known customers: registration with
// field validation and email uniqueness, and credential verification.
package accounts

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/deliciousbites/internal/common"
	"github.com/dmitrijs2005/deliciousbites/internal/logging"
	"github.com/dmitrijs2005/deliciousbites/internal/models"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// Store persists the whole directory. LoadAccounts never fails; an
// unreadable record yields an empty directory.
type Store interface {
	SaveAccounts(ctx context.Context, accounts []models.Account) error
	LoadAccounts(ctx context.Context) []models.Account
}

// RegisterRequest carries the signup form fields.
type RegisterRequest struct {
	Name            string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
}

type Option func(*Directory)

// WithClock overrides the time source used for account ids.
func WithClock(now func() time.Time) Option {
	return func(d *Directory) { d.now = now }
}

func WithLogger(l logging.Logger) Option {
	return func(d *Directory) { d.log = l }
}

// Directory is the in-memory account registry, hydrated from a Store.
type Directory struct {
	store    Store
	accounts []models.Account
	now      func() time.Time
	log      logging.Logger
}

// New builds a Directory and loads existing accounts from store.
func New(ctx context.Context, store Store, opts ...Option) *Directory {
	d := &Directory{store: store, now: time.Now, log: logging.Nop()}
	for _, o := range opts {
		o(d)
	}
	d.accounts = store.LoadAccounts(ctx)
	d.log.Debug(ctx, "account directory loaded", "accounts", len(d.accounts))
	return d
}

// Register validates req, appends a new account and persists the directory.
//
// Checks run in order: every field non-empty after trimming, every field
// valid UTF-8, password length, password confirmation, email uniqueness (exact, case-sensitive).
// Name, email and phone are stored trimmed; the password is stored as typed.
// When persisting fails the account is not kept and the error is returned.
func (d *Directory) Register(ctx context.Context, req RegisterRequest) (models.Account, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	phone := strings.TrimSpace(req.Phone)

	if name == "" || email == "" || phone == "" ||
		strings.TrimSpace(req.Password) == "" || strings.TrimSpace(req.ConfirmPassword) == "" {
		return models.Account{}, common.ErrMissingField
	}
	for _, f := range []string{name, email, phone, req.Password, req.ConfirmPassword} {
		if !utf8.ValidString(f) {
			return models.Account{}, common.ErrInvalidText
		}
	}
	if len(req.Password) < MinPasswordLength {
		return models.Account{}, common.ErrWeakPassword
	}
	if req.Password != req.ConfirmPassword {
		return models.Account{}, common.ErrPasswordMismatch
	}
	if _, exists := d.find(email); exists {
		return models.Account{}, common.ErrDuplicateEmail
	}

	acc := models.Account{
		ID:       d.nextID(),
		Name:     name,
		Email:    email,
		Phone:    phone,
		Password: req.Password,
	}

	d.accounts = append(d.accounts, acc)
	if err := d.store.SaveAccounts(ctx, d.accounts); err != nil {
		d.accounts = d.accounts[:len(d.accounts)-1]
		return models.Account{}, fmt.Errorf("register %s: %w", email, err)
	}

	d.log.Info(ctx, "account registered", "email", email)
	return acc, nil
}

// Authenticate returns the account whose email and password both match.
// Email is trimmed before matching; the password is compared as given.
func (d *Directory) Authenticate(email, password string) (models.Account, bool) {
	acc, ok := d.find(strings.TrimSpace(email))
	if !ok {
		return models.Account{}, false
	}
	if subtle.ConstantTimeCompare([]byte(acc.Password), []byte(password)) != 1 {
		return models.Account{}, false
	}
	return acc, true
}

// Len returns the number of registered accounts.
func (d *Directory) Len() int {
	return len(d.accounts)
}

func (d *Directory) find(email string) (models.Account, bool) {
	for _, a := range d.accounts {
		if a.Email == email {
			return a, true
		}
	}
	return models.Account{}, false
}

// nextID derives an id from the clock, bumped past the newest existing id so
// accounts created within the same millisecond stay distinct.
func (d *Directory) nextID() int64 {
	id := d.now().UnixMilli()
	for _, a := range d.accounts {
		if a.ID >= id {
			id = a.ID + 1
		}
	}
	return id
}
