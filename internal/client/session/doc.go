// Package session holds the client's single authenticated session.
//
// A Store caches the session in memory and writes it through to a
// Persistence backend so that a restart keeps the user signed in until the
// session expires. Three backends are provided: MemoryPersistence (tests and
// throw-away runs), FilePersistence (a 0600 JSON file) and SQLitePersistence
// (the metadata table of the local client database).
//
// The Store owns the on-disk record format. A record that cannot be decoded
// or lacks required fields is reported as ErrSessionCorrupt; a record whose
// expiry has passed is reported as ErrSessionExpired. In both cases nothing
// is cached and the caller is expected to clear the store.
package session
