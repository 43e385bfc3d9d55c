package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

func (a *App) getStatus() string {
	s := ""
	if snap := a.provider.Snapshot(); snap.IsAuthenticated() {
		s = snap.User.Username + " "
	}
	if m := a.mode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root restores any saved session, asks for credentials when there is none,
// starts the background watcher and hands control to the REPL. It blocks
// until the user exits or ctx is done.
func (a *App) Root(ctx context.Context) {
	a.println("Welcome to StoreConsole (type 'help' for commands)")

	snap := a.provider.Init(ctx)
	if snap.IsAuthenticated() {
		a.printf("Signed in as %s (%s)\n", snap.User.DisplayName(), snap.User.Role)
	} else {
		_ = a.Login(ctx)
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.input()))
}

// input shares the buffered reader used by the prompts so the REPL does not
// lose input they already buffered.
func (a *App) input() *bufio.Reader {
	if a.reader == nil {
		a.reader = bufio.NewReader(os.Stdin)
	}
	return a.reader
}
