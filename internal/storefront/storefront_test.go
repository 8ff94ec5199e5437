package storefront

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/deliciousbites/internal/accounts"
	"github.com/dmitrijs2005/deliciousbites/internal/catalog"
	"github.com/dmitrijs2005/deliciousbites/internal/common"
	"github.com/dmitrijs2005/deliciousbites/internal/kvstore"
	"github.com/dmitrijs2005/deliciousbites/internal/models"
	"github.com/dmitrijs2005/deliciousbites/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backing struct {
	durable   *kvstore.MemoryRepository
	ephemeral *kvstore.MemoryRepository
}

func (b backing) store() *storage.Store {
	return storage.New(b.durable, b.ephemeral, storage.NewTokenCodec([]byte("test"), 0), nil)
}

func newBacking() backing {
	return backing{durable: kvstore.NewMemoryRepository(), ephemeral: kvstore.NewMemoryRepository()}
}

func newStorefront(t *testing.T, b backing) *Storefront {
	t.Helper()
	clock := accounts.WithClock(func() time.Time { return time.UnixMilli(1700000000000) })
	return New(context.Background(), catalog.Default(), b.store(), nil, clock)
}

func registerAna(t *testing.T, s *Storefront) {
	t.Helper()
	_, err := s.Dispatch(context.Background(), RegisterRequested{
		Name: "Ana", Email: "a@x.com", Phone: "555", Password: "secret1", ConfirmPassword: "secret1",
	})
	require.NoError(t, err)
}

func login(t *testing.T, s *Storefront, email, password string) (Outcome, error) {
	t.Helper()
	return s.Dispatch(context.Background(), LoginRequested{Email: email, Password: password})
}

func TestScenario_RegisterLoginCartCheckoutLogout(t *testing.T) {
	s := newStorefront(t, newBacking())
	ctx := context.Background()

	out, err := s.Dispatch(ctx, RegisterRequested{
		Name: "Ana", Email: "a@x.com", Phone: "555", Password: "secret1", ConfirmPassword: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, ViewLogin, out.Next)
	assert.Equal(t, 1, s.AccountCount())

	out, err = login(t, s, "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Welcome back, Ana!", out.Message)
	acc, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "Ana", acc.Name)

	for i := 0; i < 2; i++ {
		_, err = s.Dispatch(ctx, AddToCartRequested{ItemID: 1})
		require.NoError(t, err)
	}
	snap := s.Snapshot()
	assert.Equal(t, 2, snap.ItemCount)
	assert.Equal(t, "25.98", snap.Total.String())

	_, err = s.Dispatch(ctx, RemoveFromCartRequested{ItemID: 1})
	require.NoError(t, err)
	snap = s.Snapshot()
	assert.Equal(t, 1, snap.ItemCount)
	assert.Equal(t, "12.99", snap.Total.String())

	out, err = s.Dispatch(ctx, CheckoutRequested{})
	require.NoError(t, err)
	require.NotNil(t, out.Order)
	assert.Equal(t, models.Money(1299), out.Order.Total)
	assert.Equal(t, 0, s.Snapshot().ItemCount)
	assert.Empty(t, s.Snapshot().Lines)

	_, err = s.Dispatch(ctx, LogoutRequested{})
	require.NoError(t, err)

	out, err = s.Dispatch(ctx, AddToCartRequested{ItemID: 1})
	require.ErrorIs(t, err, common.ErrNotAuthenticated)
	assert.Equal(t, ViewLogin, out.Next)
	assert.Equal(t, "Please login to add items to cart", out.Message)
}

func TestLogin_WrongPasswordRevealsNothing(t *testing.T) {
	s := newStorefront(t, newBacking())
	registerAna(t, s)

	out, err := login(t, s, "a@x.com", "wrongpass")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
	assert.Equal(t, Outcome{}, out)

	_, err = login(t, s, "nobody@x.com", "secret1")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, ok := s.Current()
	assert.False(t, ok)
}

func TestLogin_RequiresBothFields(t *testing.T) {
	s := newStorefront(t, newBacking())
	registerAna(t, s)

	_, err := login(t, s, "", "secret1")
	require.ErrorIs(t, err, common.ErrMissingField)
	_, err = login(t, s, "a@x.com", "")
	require.ErrorIs(t, err, common.ErrMissingField)
}

func TestRegister_DuplicateLeavesDirectoryUnchanged(t *testing.T) {
	b := newBacking()
	s := newStorefront(t, b)
	registerAna(t, s)
	before, _ := b.durable.Get(context.Background(), storage.AccountsKey)

	_, err := s.Dispatch(context.Background(), RegisterRequested{
		Name: "Other", Email: "a@x.com", Phone: "1", Password: "another", ConfirmPassword: "another",
	})
	require.ErrorIs(t, err, common.ErrDuplicateEmail)
	assert.Equal(t, 1, s.AccountCount())

	after, _ := b.durable.Get(context.Background(), storage.AccountsKey)
	assert.Equal(t, before, after)
}

func TestLogout_BlocksCartUntilNextLogin(t *testing.T) {
	s := newStorefront(t, newBacking())
	registerAna(t, s)
	ctx := context.Background()

	_, err := login(t, s, "a@x.com", "secret1")
	require.NoError(t, err)
	_, err = s.Dispatch(ctx, AddToCartRequested{ItemID: 2})
	require.NoError(t, err)

	_, err = s.Dispatch(ctx, LogoutRequested{})
	require.NoError(t, err)
	assert.Equal(t, 0, s.Snapshot().ItemCount)

	for _, in := range []Intent{
		AddToCartRequested{ItemID: 2},
		RemoveFromCartRequested{ItemID: 2},
		CheckoutRequested{},
		OrderNowRequested{ItemID: 2},
	} {
		out, err := s.Dispatch(ctx, in)
		require.ErrorIs(t, err, common.ErrNotAuthenticated, "%T", in)
		assert.Equal(t, ViewLogin, out.Next)
	}

	_, err = login(t, s, "a@x.com", "secret1")
	require.NoError(t, err)
	_, err = s.Dispatch(ctx, AddToCartRequested{ItemID: 2})
	require.NoError(t, err)
}

func TestCheckout_EmptyCart(t *testing.T) {
	s := newStorefront(t, newBacking())
	registerAna(t, s)
	_, err := login(t, s, "a@x.com", "secret1")
	require.NoError(t, err)

	out, err := s.Dispatch(context.Background(), CheckoutRequested{})
	require.ErrorIs(t, err, common.ErrEmptyCart)
	assert.Equal(t, ViewNone, out.Next)
}

func TestOrderNow_DoesNotTouchCart(t *testing.T) {
	s := newStorefront(t, newBacking())
	registerAna(t, s)
	_, err := login(t, s, "a@x.com", "secret1")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Dispatch(ctx, AddToCartRequested{ItemID: 6})
	require.NoError(t, err)

	out, err := s.Dispatch(ctx, OrderNowRequested{ItemID: 4})
	require.NoError(t, err)
	assert.Equal(t, "Order placed for Pasta Carbonara!", out.Message)
	require.NotNil(t, out.Order)
	assert.Equal(t, "a@x.com", out.Order.Customer)
	assert.Equal(t, 1, s.Snapshot().ItemCount)
}

func TestRestart_RecoversAccountsAndSessionButNotCart(t *testing.T) {
	b := newBacking()
	s := newStorefront(t, b)
	registerAna(t, s)
	_, err := login(t, s, "a@x.com", "secret1")
	require.NoError(t, err)
	_, err = s.Dispatch(context.Background(), AddToCartRequested{ItemID: 1})
	require.NoError(t, err)

	restarted := newStorefront(t, b)
	assert.Equal(t, 1, restarted.AccountCount())
	acc, ok := restarted.Current()
	require.True(t, ok)
	assert.Equal(t, "a@x.com", acc.Email)
	assert.Equal(t, 0, restarted.Snapshot().ItemCount)
}

func TestRestart_AccountRoundTripsExactly(t *testing.T) {
	b := newBacking()
	s := newStorefront(t, b)

	_, err := s.Dispatch(context.Background(), RegisterRequested{
		Name: "Ana", Email: "a@x.com", Phone: "555", Password: "secret\xff1", ConfirmPassword: "secret\xff1",
	})
	require.ErrorIs(t, err, common.ErrInvalidText)

	_, err = s.Dispatch(context.Background(), RegisterRequested{
		Name: "Zoë 🍕", Email: "z@x.com", Phone: "+1 555", Password: "pässwörd", ConfirmPassword: "pässwörd",
	})
	require.NoError(t, err)
	_, err = login(t, s, "z@x.com", "pässwörd")
	require.NoError(t, err)

	restarted := newStorefront(t, b)
	assert.Equal(t, 1, restarted.AccountCount())
	_, err = login(t, restarted, "z@x.com", "pässwörd")
	require.NoError(t, err)
	acc, ok := restarted.Current()
	require.True(t, ok)
	assert.Equal(t, "Zoë 🍕", acc.Name)
}

func TestRestart_AfterLogoutIsAnonymous(t *testing.T) {
	b := newBacking()
	s := newStorefront(t, b)
	registerAna(t, s)
	_, err := login(t, s, "a@x.com", "secret1")
	require.NoError(t, err)
	_, err = s.Dispatch(context.Background(), LogoutRequested{})
	require.NoError(t, err)

	restarted := newStorefront(t, b)
	_, ok := restarted.Current()
	assert.False(t, ok)
}

func TestStaleSession_StaysAuthenticated(t *testing.T) {
	b := newBacking()
	s := newStorefront(t, b)
	registerAna(t, s)
	_, err := login(t, s, "a@x.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, b.durable.Clear(context.Background()))
	restarted := newStorefront(t, b)
	assert.Equal(t, 0, restarted.AccountCount())

	_, err = restarted.Dispatch(context.Background(), AddToCartRequested{ItemID: 3})
	require.NoError(t, err)
}

func TestCorruptStorage_StartsEmpty(t *testing.T) {
	b := newBacking()
	ctx := context.Background()
	require.NoError(t, b.durable.Set(ctx, storage.AccountsKey, []byte("garbage")))
	require.NoError(t, b.ephemeral.Set(ctx, storage.SessionKey, []byte("not-a-token")))

	s := newStorefront(t, b)
	assert.Equal(t, 0, s.AccountCount())
	_, ok := s.Current()
	assert.False(t, ok)

	registerAna(t, s)
	assert.Equal(t, 1, s.AccountCount())
}

type unknownIntent struct{ LogoutRequested }

func TestDispatch_UnknownIntent(t *testing.T) {
	s := newStorefront(t, newBacking())

	_, err := s.Dispatch(context.Background(), unknownIntent{})
	require.ErrorIs(t, err, common.ErrUnknownIntent)
}

func TestOnChange_NotifiedAfterMutations(t *testing.T) {
	s := newStorefront(t, newBacking())
	registerAna(t, s)
	ctx := context.Background()

	var snaps []Snapshot
	unsubscribe := s.OnChange(func(snap Snapshot) { snaps = append(snaps, snap) })

	_, err := login(t, s, "a@x.com", "secret1")
	require.NoError(t, err)
	_, err = s.Dispatch(ctx, AddToCartRequested{ItemID: 5})
	require.NoError(t, err)
	_, err = s.Dispatch(ctx, RemoveFromCartRequested{ItemID: 1})
	require.NoError(t, err)
	_, err = s.Dispatch(ctx, CheckoutRequested{})
	require.NoError(t, err)

	require.Len(t, snaps, 3)
	require.NotNil(t, snaps[0].Account)
	assert.Equal(t, "Ana", snaps[0].Account.Name)
	assert.Equal(t, 1, snaps[1].ItemCount)
	assert.Equal(t, models.Money(1699), snaps[1].Total)
	assert.Equal(t, 0, snaps[2].ItemCount)

	unsubscribe()
	_, err = s.Dispatch(ctx, LogoutRequested{})
	require.NoError(t, err)
	assert.Len(t, snaps, 3)
}

func TestOnChange_ObserverMayReadState(t *testing.T) {
	s := newStorefront(t, newBacking())
	registerAna(t, s)

	var seen int
	s.OnChange(func(Snapshot) { seen = s.Snapshot().ItemCount })

	_, err := login(t, s, "a@x.com", "secret1")
	require.NoError(t, err)
	_, err = s.Dispatch(context.Background(), AddToCartRequested{ItemID: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, seen)
}

func TestDispatch_ConcurrentAddsAreSerialized(t *testing.T) {
	s := newStorefront(t, newBacking())
	registerAna(t, s)
	_, err := login(t, s, "a@x.com", "secret1")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 40)
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_, err := s.Dispatch(context.Background(), AddToCartRequested{ItemID: id%6 + 1})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, 40, s.Snapshot().ItemCount)
}

func TestDenied_PassesThroughOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	out, changed, err := denied(boom, "ignored")
	assert.Equal(t, Outcome{}, out)
	assert.False(t, changed)
	assert.Equal(t, boom, err)
}
