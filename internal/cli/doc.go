// Package cli provides the interactive Delicious Bites command-line shop.
//
// It wires configuration, the storage backends and one storefront.Storefront,
// then runs a REPL that turns commands into storefront intents. Page
// navigation of a browser front end maps onto the REPL like this:
//
//   - redirects to the login page prompt for credentials after the
//     configured redirect delay,
//   - confirmations pause for the confirm delay,
//   - reload rebuilds the storefront from storage like a page refresh.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See NewApp and runREPL for details.
package cli
