package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/deliciousbites/internal/storefront"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the signup form and dispatches it. On success the
// user is taken to the login prompt after the redirect delay.
func (a *App) Register(ctx context.Context) error {
	var in storefront.RegisterRequested
	fields := []struct {
		prompt string
		dst    *string
		secret bool
	}{
		{"Full name", &in.Name, false},
		{"Email", &in.Email, false},
		{"Phone", &in.Phone, false},
		{"Password", &in.Password, true},
		{"Confirm password", &in.ConfirmPassword, true},
	}
	for _, f := range fields {
		var (
			v   string
			err error
		)
		if f.secret {
			v, err = getPassword(a.reader, f.prompt, a.out)
		} else {
			v, err = getSimpleText(a.reader, f.prompt, a.out)
		}
		if err != nil {
			return err
		}
		*f.dst = v
	}

	return a.dispatch(ctx, in)
}

// Login prompts for credentials and dispatches them.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}

	return a.dispatch(ctx, storefront.LoginRequested{Email: email, Password: password})
}

// Logout ends the session and empties the cart. Unlike other redirects to
// the login view it does not prompt for credentials.
func (a *App) Logout(ctx context.Context) error {
	out, err := a.shop.Dispatch(ctx, storefront.LogoutRequested{})
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err)
		return err
	}
	fmt.Fprintln(a.out, out.Message)
	sleep(a.config.ConfirmDelay)
	return nil
}

// WhoAmI prints the signed-in account.
func (a *App) WhoAmI(context.Context) error {
	acc := a.snap.Account
	if acc == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "[%s] %s <%s>", acc.Initial(), acc.Name, acc.Email)
	if acc.Phone != "" {
		fmt.Fprintf(a.out, " %s", acc.Phone)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Reload rebuilds the storefront from storage. The session survives, the
// cart does not.
func (a *App) Reload(ctx context.Context) error {
	a.open(ctx)
	if acc := a.snap.Account; acc != nil {
		fmt.Fprintf(a.out, "Reloaded, signed in as %s\n", acc.Name)
	} else {
		fmt.Fprintln(a.out, "Reloaded")
	}
	return nil
}

// Records lists what the storage backends currently hold, keys and sizes
// only.
func (a *App) Records(ctx context.Context) error {
	recs, err := a.store.Records(ctx)
	if err != nil {
		a.log.Error(ctx, "failed to list records", "err", err)
		fmt.Fprintln(a.out, "Could not list stored records")
		return err
	}
	renderRecords(a.out, recs)
	return nil
}

// Forget wipes the session store and rebuilds the shop, which leaves the
// user logged out with an empty cart. Accounts are kept.
func (a *App) Forget(ctx context.Context) error {
	if err := a.store.ForgetSessions(ctx); err != nil {
		a.log.Error(ctx, "failed to forget sessions", "err", err)
		fmt.Fprintln(a.out, "Could not clear session data")
		return err
	}
	a.open(ctx)
	fmt.Fprintln(a.out, "Session data cleared")
	return nil
}
