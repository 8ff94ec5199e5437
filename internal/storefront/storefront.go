// Package storefront is the application context of the shop. It owns the
// catalog, account directory, session and cart, and is driven through a
// single Dispatch entry point. Observers registered with OnChange receive a
// Snapshot after every state change.
package storefront

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/deliciousbites/internal/accounts"
	"github.com/dmitrijs2005/deliciousbites/internal/cart"
	"github.com/dmitrijs2005/deliciousbites/internal/catalog"
	"github.com/dmitrijs2005/deliciousbites/internal/common"
	"github.com/dmitrijs2005/deliciousbites/internal/logging"
	"github.com/dmitrijs2005/deliciousbites/internal/models"
	"github.com/dmitrijs2005/deliciousbites/internal/session"
)

// Store is the persistence the storefront needs; *storage.Store satisfies it.
type Store interface {
	accounts.Store
	session.Store
}

type Storefront struct {
	mu sync.Mutex

	catalog  *catalog.Catalog
	accounts *accounts.Directory
	session  *session.State
	cart     *cart.Cart
	log      logging.Logger

	observers map[int]func(Snapshot)
	nextObs   int
}

// New hydrates the directory and session from store. The cart starts empty.
func New(ctx context.Context, cat *catalog.Catalog, store Store, log logging.Logger, opts ...accounts.Option) *Storefront {
	if log == nil {
		log = logging.Nop()
	}
	opts = append([]accounts.Option{accounts.WithLogger(log.With("component", "accounts"))}, opts...)
	sess := session.New(ctx, store, log.With("component", "session"))

	return &Storefront{
		catalog:   cat,
		accounts:  accounts.New(ctx, store, opts...),
		session:   sess,
		cart:      cart.New(cat, sess),
		log:       log.With("component", "storefront"),
		observers: make(map[int]func(Snapshot)),
	}
}

// Catalog returns the menu.
func (s *Storefront) Catalog() *catalog.Catalog {
	return s.catalog
}

// Snapshot returns the current session and cart state.
func (s *Storefront) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Storefront) snapshot() Snapshot {
	snap := Snapshot{
		Lines:     s.cart.Lines(),
		ItemCount: s.cart.ItemCount(),
		Total:     s.cart.Total(),
	}
	if acc, ok := s.session.Current(); ok {
		snap.Account = &acc
	}
	return snap
}

// OnChange registers fn to be called after every successful state change.
// Callbacks run outside the storefront lock and their order is unspecified.
// The returned func unregisters fn.
func (s *Storefront) OnChange(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// Dispatch applies intent and returns its outcome. Errors are the sentinel
// errors of package common; NotAuthenticated failures come with
// Outcome.Next == ViewLogin.
func (s *Storefront) Dispatch(ctx context.Context, intent Intent) (Outcome, error) {
	s.mu.Lock()
	out, changed, err := s.apply(ctx, intent)
	var (
		snap      Snapshot
		observers []func(Snapshot)
	)
	if changed {
		snap = s.snapshot()
		observers = make([]func(Snapshot), 0, len(s.observers))
		for _, fn := range s.observers {
			observers = append(observers, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
	return out, err
}

func (s *Storefront) apply(ctx context.Context, intent Intent) (Outcome, bool, error) {
	switch in := intent.(type) {
	case RegisterRequested:
		return s.register(ctx, in)
	case LoginRequested:
		return s.login(ctx, in)
	case LogoutRequested:
		return s.logout(ctx)
	case AddToCartRequested:
		return s.addToCart(in)
	case RemoveFromCartRequested:
		return s.removeFromCart(in)
	case CheckoutRequested:
		return s.checkout(ctx)
	case OrderNowRequested:
		return s.orderNow(ctx, in)
	default:
		return Outcome{}, false, fmt.Errorf("%w: %T", common.ErrUnknownIntent, intent)
	}
}

func (s *Storefront) register(ctx context.Context, in RegisterRequested) (Outcome, bool, error) {
	_, err := s.accounts.Register(ctx, accounts.RegisterRequest{
		Name:            in.Name,
		Email:           in.Email,
		Phone:           in.Phone,
		Password:        in.Password,
		ConfirmPassword: in.ConfirmPassword,
	})
	if err != nil {
		return Outcome{}, false, err
	}
	return Outcome{Message: "Account created successfully!", Next: ViewLogin}, true, nil
}

func (s *Storefront) login(ctx context.Context, in LoginRequested) (Outcome, bool, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return Outcome{}, false, common.ErrMissingField
	}
	acc, ok := s.accounts.Authenticate(in.Email, in.Password)
	if !ok {
		s.log.Info(ctx, "login rejected")
		return Outcome{}, false, common.ErrInvalidCredentials
	}
	if err := s.session.LogIn(ctx, acc); err != nil {
		s.log.Warn(ctx, "session not persisted", "err", err)
	}
	return Outcome{Message: fmt.Sprintf("Welcome back, %s!", acc.Name), Next: ViewHome}, true, nil
}

func (s *Storefront) logout(ctx context.Context) (Outcome, bool, error) {
	s.cart.Clear()
	if err := s.session.LogOut(ctx); err != nil {
		s.log.Warn(ctx, "session record not cleared", "err", err)
	}
	return Outcome{Message: "Logged out successfully", Next: ViewLogin}, true, nil
}

func (s *Storefront) addToCart(in AddToCartRequested) (Outcome, bool, error) {
	line, err := s.cart.Add(in.ItemID)
	if err != nil {
		return denied(err, "Please login to add items to cart")
	}
	return Outcome{Message: fmt.Sprintf("%s added to cart!", line.Item.Name)}, true, nil
}

func (s *Storefront) removeFromCart(in RemoveFromCartRequested) (Outcome, bool, error) {
	before := s.cart.ItemCount()
	if err := s.cart.Remove(in.ItemID); err != nil {
		return denied(err, "Please login to view cart")
	}
	return Outcome{}, s.cart.ItemCount() != before, nil
}

func (s *Storefront) checkout(ctx context.Context) (Outcome, bool, error) {
	order, err := s.cart.Checkout()
	if err != nil {
		return denied(err, "Please login to place order")
	}
	s.log.Info(ctx, "order placed", "order", order.ID, "items", len(order.Lines), "total", order.Total.String())
	return Outcome{Message: "Order placed successfully!", Order: &order}, true, nil
}

func (s *Storefront) orderNow(ctx context.Context, in OrderNowRequested) (Outcome, bool, error) {
	order, err := s.cart.OrderNow(in.ItemID)
	if err != nil {
		return denied(err, "Please login to place order")
	}
	s.log.Info(ctx, "order placed", "order", order.ID, "items", 1, "total", order.Total.String())
	return Outcome{Message: fmt.Sprintf("Order placed for %s!", order.Lines[0].Item.Name), Order: &order}, false, nil
}

// denied maps a cart failure to an outcome, redirecting to login when the
// session is missing.
func denied(err error, loginMessage string) (Outcome, bool, error) {
	if errors.Is(err, common.ErrNotAuthenticated) {
		return Outcome{Message: loginMessage, Next: ViewLogin}, false, err
	}
	return Outcome{}, false, err
}

// Current returns the authenticated account.
func (s *Storefront) Current() (models.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Current()
}

// AccountCount returns the number of registered accounts.
func (s *Storefront) AccountCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts.Len()
}
