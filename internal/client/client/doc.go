// Package client contains the client-side building blocks for talking to the
// job-board backend.
//
// # Overview
//
// The package provides:
//  1. The API contract (see Client and the smaller OpportunitiesAPI,
//     BookmarksAPI and AuthAPI it is made of).
//  2. A REST implementation (see HTTPClient). Every call issues exactly one
//     request; a round-tripper attaches the bearer token and a request id.
//     There are no retries, no caching and no pagination.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) that opens
//     the SQLite session database and applies the embedded goose migrations.
//
// # Error Handling
//
// Failures are normalised into sentinel and typed errors that callers match
// with errors.Is / errors.As: ErrAuthenticationRequired, ErrAuthExpired,
// ErrNotFound (ErrJobNotFound and ErrBookmarkNotFound match it too),
// ErrAlreadyBookmarked, ErrNetwork, *APIError and *HTTPError. Error() of each
// is the text shown to the user.
//
// Contexts
//
// HTTPClient is safe for concurrent use. Every operation accepts a
// context.Context; a cancelled context is returned as is, not as ErrNetwork.
package client
