package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Status(ctx context.Context) error
	Menu(ctx context.Context) error
	Open(ctx context.Context, path string) error
	Overview(ctx context.Context) error
	ClearError(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the StoreConsole CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF, when ctx is done, or when
// the user types "exit" or "quit".
//
// Prompt & Commands
//
//	Not logged in:
//	  - help             show available commands
//	  - login            authenticate
//	  - status           show session and server state
//	  - open <path>      open a page (asks for login when needed)
//	  - exit | quit      leave the program
//
//	Logged in:
//	  - help             show available commands
//	  - whoami           show the signed-in user
//	  - status           show session and server state
//	  - menu             list pages available to your role
//	  - open <path>      open a page
//	  - overview         point-of-sale summary
//	  - clear            dismiss the last error
//	  - logout           log out
//	  - exit | quit      leave the program
//
// Any errors returned by command handlers are ignored here; handlers print
// their own messages.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("pos %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, status, menu, open <path>, overview, clear, logout, exit")
			} else {
				printlnFn("Available commands: login, status, open <path>, clear, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "status":
			_ = a.Status(ctx)

		case "menu":
			_ = a.Menu(ctx)

		case "open":
			if len(args) == 0 {
				printlnFn("Usage: open <path>")
				continue
			}
			_ = a.Open(ctx, args[0])

		case "overview":
			_ = a.Overview(ctx)

		case "clear":
			_ = a.ClearError(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
