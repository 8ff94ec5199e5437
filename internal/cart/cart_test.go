package cart

import (
	"math/rand"
	"testing"
	"time"

	"github.com/dmitrijs2005/deliciousbites/internal/catalog"
	"github.com/dmitrijs2005/deliciousbites/internal/common"
	"github.com/dmitrijs2005/deliciousbites/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGate struct {
	acc *models.Account
}

func (g *fakeGate) Current() (models.Account, bool) {
	if g.acc == nil {
		return models.Account{}, false
	}
	return *g.acc, true
}

func newCart(t *testing.T, loggedIn bool) (*Cart, *fakeGate) {
	t.Helper()
	g := &fakeGate{}
	if loggedIn {
		g.acc = &models.Account{ID: 1, Name: "Ana", Email: "a@x.com"}
	}
	c := New(catalog.Default(), g)
	c.newID = func() string { return "order-1" }
	c.now = func() time.Time { return time.Date(2025, 3, 1, 18, 30, 0, 0, time.UTC) }
	return c, g
}

func TestAdd_IncrementOrInsert(t *testing.T) {
	c, _ := newCart(t, true)

	line, err := c.Add(1)
	require.NoError(t, err)
	assert.Equal(t, 1, line.Quantity)

	line, err = c.Add(1)
	require.NoError(t, err)
	assert.Equal(t, 2, line.Quantity)

	_, err = c.Add(3)
	require.NoError(t, err)

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].Item.ID)
	assert.Equal(t, 3, lines[1].Item.ID)
	assert.Equal(t, 3, c.ItemCount())
	assert.Equal(t, 2, len(c.Lines()))
}

func TestAdd_RequiresSession(t *testing.T) {
	c, _ := newCart(t, false)

	_, err := c.Add(1)
	require.ErrorIs(t, err, common.ErrNotAuthenticated)
	assert.Equal(t, 0, c.ItemCount())
}

func TestAdd_UnknownItem(t *testing.T) {
	c, _ := newCart(t, true)

	_, err := c.Add(42)
	require.ErrorIs(t, err, common.ErrUnknownItem)
	assert.ErrorIs(t, err, common.ErrCart)
	assert.Equal(t, 0, len(c.Lines()))
}

func TestRemove_DecrementsThenDrops(t *testing.T) {
	c, _ := newCart(t, true)
	_, _ = c.Add(2)
	_, _ = c.Add(2)

	require.NoError(t, c.Remove(2))
	assert.Equal(t, 1, c.ItemCount())
	assert.Equal(t, 1, len(c.Lines()))

	require.NoError(t, c.Remove(2))
	assert.Equal(t, 0, c.ItemCount())
	assert.Equal(t, 0, len(c.Lines()))
}

func TestRemove_MissingIsNoop(t *testing.T) {
	c, _ := newCart(t, true)

	require.NoError(t, c.Remove(1))
	assert.Equal(t, 0, len(c.Lines()))

	_, _ = c.Add(3)
	before := c.Lines()
	require.NoError(t, c.Remove(1))
	require.NoError(t, c.Remove(99))
	assert.Equal(t, before, c.Lines())
}

func TestRemove_RequiresSession(t *testing.T) {
	c, g := newCart(t, true)
	_, _ = c.Add(1)
	acc := g.acc
	g.acc = nil

	require.ErrorIs(t, c.Remove(1), common.ErrNotAuthenticated)
	g.acc = acc
	assert.Equal(t, 1, c.ItemCount())
}

func TestAddThenRemove_RoundTrip(t *testing.T) {
	c, _ := newCart(t, true)
	_, _ = c.Add(4)
	_, _ = c.Add(5)
	before := c.Lines()

	_, err := c.Add(6)
	require.NoError(t, err)
	require.NoError(t, c.Remove(6))

	assert.Equal(t, before, c.Lines())
}

func TestTotal_NoIntermediateRounding(t *testing.T) {
	c, _ := newCart(t, true)
	_, _ = c.Add(1)
	_, _ = c.Add(1)

	assert.Equal(t, models.Money(2598), c.Total())
	assert.Equal(t, "25.98", c.Total().String())

	for i := 0; i < 3; i++ {
		_, _ = c.Add(6)
	}
	assert.Equal(t, "46.95", c.Total().String())
}

func TestLines_SnapshotIsIndependentCopy(t *testing.T) {
	c, _ := newCart(t, true)
	_, _ = c.Add(1)

	lines := c.Lines()
	lines[0].Quantity = 99
	lines[0].Item.Price = 1

	assert.Equal(t, 1, c.ItemCount())
	assert.Equal(t, models.Money(1299), c.Total())
}

func TestCheckout(t *testing.T) {
	c, _ := newCart(t, true)
	_, _ = c.Add(1)
	_, _ = c.Add(2)
	_, _ = c.Add(2)

	order, err := c.Checkout()
	require.NoError(t, err)

	assert.Equal(t, "order-1", order.ID)
	assert.Equal(t, "a@x.com", order.Customer)
	assert.Equal(t, models.Money(1299+2*899), order.Total)
	require.Len(t, order.Lines, 2)
	assert.Equal(t, 2, order.Lines[1].Quantity)
	assert.Equal(t, 0, c.ItemCount())
	assert.Equal(t, 0, len(c.Lines()))
}

func TestCheckout_EmptyCart(t *testing.T) {
	c, _ := newCart(t, true)

	_, err := c.Checkout()
	require.ErrorIs(t, err, common.ErrEmptyCart)
}

func TestCheckout_RequiresSession(t *testing.T) {
	c, _ := newCart(t, false)

	_, err := c.Checkout()
	require.ErrorIs(t, err, common.ErrNotAuthenticated)
}

func TestOrderNow_LeavesCartUntouched(t *testing.T) {
	c, _ := newCart(t, true)
	_, _ = c.Add(3)

	order, err := c.OrderNow(5)
	require.NoError(t, err)
	require.Len(t, order.Lines, 1)
	assert.Equal(t, "Grilled Salmon", order.Lines[0].Item.Name)
	assert.Equal(t, models.Money(1699), order.Total)
	assert.Equal(t, 1, c.ItemCount())

	_, err = c.OrderNow(77)
	require.ErrorIs(t, err, common.ErrUnknownItem)
}

func TestOrderNow_RequiresSession(t *testing.T) {
	c, _ := newCart(t, false)

	_, err := c.OrderNow(1)
	require.ErrorIs(t, err, common.ErrNotAuthenticated)
}

func TestItemCount_TracksRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for run := 0; run < 50; run++ {
		c, _ := newCart(t, true)
		want := map[int]int{}

		for step := 0; step < 200; step++ {
			id := rng.Intn(6) + 1
			if rng.Intn(3) == 0 {
				require.NoError(t, c.Remove(id))
				if want[id] > 0 {
					want[id]--
				}
			} else {
				_, err := c.Add(id)
				require.NoError(t, err)
				want[id]++
			}

			total := 0
			for _, q := range want {
				total += q
			}
			require.Equal(t, total, c.ItemCount())
			require.GreaterOrEqual(t, c.ItemCount(), 0)
			for _, l := range c.Lines() {
				require.GreaterOrEqual(t, l.Quantity, 1)
			}
		}
	}
}
