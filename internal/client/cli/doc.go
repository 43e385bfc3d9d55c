// Package cli provides the interactive StoreConsole command-line client.
//
// It wires configuration, session storage, the API client and the auth
// provider into a REPL. Typical flow: restore the saved session or prompt
// for credentials, start a background watcher that tracks server
// reachability and session expiry, then execute user commands.
//
// Key features:
//   - Login / Logout / WhoAmI
//   - Role-based menu and guarded page navigation (open <path>)
//   - Point-of-sale overview fetched with the session token
//   - One-time warning before the session expires
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
