package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Menu(ctx context.Context) error
	Cart(ctx context.Context) error
	Add(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
	Order(ctx context.Context, args []string) error
	Checkout(ctx context.Context) error
	Reload(ctx context.Context) error
	Records(ctx context.Context) error
	Forget(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the shop.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF, on ctx cancellation, or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  - help           - show available commands
//	  - menu           - list the catalog
//	  - reload         - rebuild the shop from storage
//	  - records        - list stored keys and their sizes
//	  - forget         - wipe the session store
//	  - exit | quit    - leave the program
//
//	Not logged in:
//	  - register       - create an account
//	  - login          - authenticate
//
//	Logged in:
//	  - cart           - show the cart
//	  - add <id>       - add one unit of an item
//	  - remove <id>    - remove one unit of an item
//	  - order <id>     - order one unit right away
//	  - checkout       - place an order for the whole cart
//	  - whoami         - show the signed-in account
//	  - logout         - log out
//
// Cart commands issued while logged out redirect to the login prompt.
// Handlers report their own errors to the user, so they are ignored here.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("deliciousbites%s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: menu, cart, add <id>, remove <id>, order <id>, checkout, whoami, logout, reload, records, forget, exit")
			} else {
				printlnFn("Available commands: menu, register, login, add <id>, order <id>, reload, records, forget, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "menu", "m":
			_ = a.Menu(ctx)

		case "cart", "c":
			_ = a.Cart(ctx)

		case "add":
			_ = a.Add(ctx, args)

		case "remove", "rm":
			_ = a.Remove(ctx, args)

		case "order":
			_ = a.Order(ctx, args)

		case "checkout":
			_ = a.Checkout(ctx)

		case "reload":
			_ = a.Reload(ctx)

		case "records":
			_ = a.Records(ctx)

		case "forget":
			_ = a.Forget(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
