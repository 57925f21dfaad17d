// Package cli provides the interactive job-board command-line client.
//
// It wires configuration, the local session database, the REST client,
// services and views behind a small REPL. Typical flow: restore the saved
// session or prompt for credentials, load the bookmark set, then the job
// list, and execute user commands until exit.
//
// Key features:
//   - Signup / Verify / Login / Logout
//   - List, search and sort jobs; show one job in detail
//   - Toggle bookmarks by id or list number; bookmarked-jobs tab
//   - Retry of a failed load
//
// The shell is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
