package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storeconsole/internal/client/client"
	"github.com/dmitrijs2005/storeconsole/internal/client/guard"
	"github.com/dmitrijs2005/storeconsole/internal/client/nav"
)

// Menu lists the pages the signed-in user's role may open.
func (a *App) Menu(ctx context.Context) error {
	s := a.provider.Snapshot()
	if !s.IsAuthenticated() {
		a.println("Log in to see the menu.")
		return nil
	}
	items := nav.Menu(s.User.Role)
	if len(items) == 0 {
		a.printf("Role %q has no pages.\n", s.User.Role)
		return nil
	}
	for _, r := range items {
		a.printf("  %-15s %s\n", r.Path, r.Title)
	}
	return nil
}

// Open navigates to a page, subject to the route guard.
func (a *App) Open(ctx context.Context, path string) error {
	r, ok := nav.Lookup(path)
	if !ok {
		a.println("Unknown page:", path)
		return nil
	}

	d := guard.Decide(a.provider.Snapshot(), r)
	switch d.Outcome {
	case guard.Wait:
		a.println("Checking your session, try again in a moment.")
		return nil

	case guard.Redirect:
		a.mu.Lock()
		a.pendingPath = d.From
		a.mu.Unlock()
		a.printf("%s requires login.\n", r.Title)
		return a.Login(ctx)

	case guard.Forbid:
		a.printf("Access denied: %s requires the %s role.\n", r.Title, r.MinRole)
		return nil
	}

	switch r.Path {
	case nav.PathLogin:
		return a.Login(ctx)
	case nav.PathOverview:
		return a.showOverview(ctx)
	}
	a.printf("== %s ==\n", r.Title)
	return nil
}

// Overview opens the overview page.
func (a *App) Overview(ctx context.Context) error {
	return a.Open(ctx, nav.PathOverview)
}

func (a *App) showOverview(ctx context.Context) error {
	a.println("== Overview ==")

	s, err := a.authService.Summary(ctx)
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		// the server no longer accepts the token
		a.provider.Logout(ctx)
		a.println("The server rejected your session. Type 'login' to sign in again.")
		return err
	case errors.Is(err, client.ErrUnavailable):
		a.setMode(ModeOffline)
		a.println("Summary unavailable: server is offline.")
		return err
	case err != nil:
		a.println("Summary unavailable:", err)
		return err
	}

	a.printf("  Sales today:      %s\n", money(s.SalesTotal, s.Currency))
	a.printf("  Transactions:     %d\n", s.TransactionCount)
	a.printf("  Average ticket:   %s\n", money(s.AverageTicket, s.Currency))
	a.printf("  Low-stock items:  %d\n", s.LowStockProducts)
	if !s.GeneratedAt.IsZero() {
		a.printf("  As of:            %s\n", s.GeneratedAt.Local().Format(time.DateTime))
	}
	return nil
}

func money(minor int64, currency string) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	s := fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
	if currency != "" {
		s += " " + currency
	}
	return s
}

// Status prints the authentication state and server reachability.
func (a *App) Status(ctx context.Context) error {
	s := a.provider.Snapshot()
	a.printf("State:  %s\n", s.State)
	if s.IsAuthenticated() {
		a.printf("User:   %s (%s)\n", s.User.Username, s.User.Role)
		a.printf("Expires in %s\n", a.authService.Store().Remaining().Round(time.Second))
	}
	if m := a.mode(); m != "" {
		a.printf("Server: %s\n", m)
	}
	if s.Error != "" {
		a.printf("Last error: %s\n", s.Error)
	}
	return nil
}

// ClearError dismisses the last login or session error.
func (a *App) ClearError(ctx context.Context) error {
	a.provider.ClearError()
	return nil
}
