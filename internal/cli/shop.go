package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/deliciousbites/internal/storefront"
)

var errUsage = errors.New("usage")

func (a *App) Menu(context.Context) error {
	renderMenu(a.out, a.shop.Catalog().Items())
	return nil
}

// Cart shows the cart. Anonymous users are sent to the login prompt.
func (a *App) Cart(ctx context.Context) error {
	if !a.isLoggedIn() {
		return a.navigate(ctx, storefront.Outcome{Message: "Please login to view cart", Next: storefront.ViewLogin})
	}
	renderCart(a.out, a.snap)
	return nil
}

func (a *App) Add(ctx context.Context, args []string) error {
	id, err := a.itemArg("add", args)
	if err != nil {
		return err
	}
	return a.dispatch(ctx, storefront.AddToCartRequested{ItemID: id})
}

func (a *App) Remove(ctx context.Context, args []string) error {
	id, err := a.itemArg("remove", args)
	if err != nil {
		return err
	}
	if err := a.dispatch(ctx, storefront.RemoveFromCartRequested{ItemID: id}); err != nil {
		return err
	}
	renderCart(a.out, a.snap)
	return nil
}

// Order places a one-item order without touching the cart.
func (a *App) Order(ctx context.Context, args []string) error {
	id, err := a.itemArg("order", args)
	if err != nil {
		return err
	}
	return a.dispatch(ctx, storefront.OrderNowRequested{ItemID: id})
}

func (a *App) Checkout(ctx context.Context) error {
	return a.dispatch(ctx, storefront.CheckoutRequested{})
}

func (a *App) itemArg(cmd string, args []string) (int, error) {
	if len(args) == 0 {
		fmt.Fprintf(a.out, "Usage: %s <id>\n", cmd)
		return 0, errUsage
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(a.out, "Usage: %s <id>\n", cmd)
		return 0, fmt.Errorf("%w: %s", errUsage, err)
	}
	return id, nil
}

// dispatch sends intent to the storefront and renders the outcome.
func (a *App) dispatch(ctx context.Context, intent storefront.Intent) error {
	out, err := a.shop.Dispatch(ctx, intent)
	if err != nil && out.Next != storefront.ViewLogin {
		a.log.Debug(ctx, "intent rejected", "intent", fmt.Sprintf("%T", intent), "err", err)
		fmt.Fprintf(a.out, "Error: %s\n", err)
		return err
	}
	if navErr := a.navigate(ctx, out); navErr != nil {
		return navErr
	}
	return err
}

// navigate prints the outcome message, shows any order and then follows
// the requested view.
func (a *App) navigate(ctx context.Context, out storefront.Outcome) error {
	if out.Message != "" {
		fmt.Fprintln(a.out, out.Message)
	}
	renderOrder(a.out, out.Order)

	switch {
	case out.Next == storefront.ViewLogin:
		sleep(a.config.RedirectDelay)
		fmt.Fprintln(a.out, "Redirecting to login...")
		return a.Login(ctx)
	case out.Next == storefront.ViewHome:
		sleep(a.config.ConfirmDelay)
		return a.Menu(ctx)
	case out.Order != nil:
		sleep(a.config.ConfirmDelay)
	}
	return nil
}
