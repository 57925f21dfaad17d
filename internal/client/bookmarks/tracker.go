// Package bookmarks owns the signed-in user's bookmark set and the toggle
// protocol that keeps every view's copy of a job's bookmark flag in step.
//
// A toggle never flips the flag before the server has answered. On success
// the new value is broadcast to every subscriber; on failure the flag keeps
// its old value and the error is recorded on the job's State. Nothing is
// retried.
package bookmarks

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/dmitrijs2005/jobboard/internal/client/client"
	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/dmitrijs2005/jobboard/internal/logging"
)

var (
	ErrLoginRequired = errors.New("Please login to bookmark jobs")
	ErrPending       = errors.New("bookmark update already in progress")
)

const fallbackMessage = "Failed to update bookmark"

// State is the toggle state of a single job.
type State struct {
	Bookmarked bool
	Pending    bool
	LastError  string
}

// Listener is told about every successful toggle.
type Listener func(jobID string, bookmarked bool)

// Authenticator reports whether a user is signed in.
type Authenticator interface {
	IsAuthenticated() bool
}

type subscription struct {
	id int
	fn Listener
}

// Tracker is safe for concurrent use. Listeners are called synchronously,
// in subscription order, without the tracker lock held, so they may call
// back into the tracker.
type Tracker struct {
	api  client.BookmarksAPI
	auth Authenticator
	log  logging.Logger

	mu        sync.Mutex
	ids       map[string]struct{}
	states    map[string]*State
	listeners []subscription
	nextSubID int
}

func NewTracker(api client.BookmarksAPI, auth Authenticator, log logging.Logger) *Tracker {
	return &Tracker{
		api:    api,
		auth:   auth,
		log:    log,
		ids:    make(map[string]struct{}),
		states: make(map[string]*State),
	}
}

// Load fetches the bookmark set, makes it authoritative and returns the
// records as the server sent them. On error the previous set is kept.
// Subscribers are not notified.
func (t *Tracker) Load(ctx context.Context) ([]models.Bookmark, error) {
	list, err := t.api.ListBookmarks(ctx)
	if err != nil {
		t.log.Warn(ctx, "loading bookmarks failed", "error", err)
		return nil, err
	}

	ids := make(map[string]struct{}, len(list))
	for _, id := range models.BookmarkIDs(list) {
		ids[id] = struct{}{}
	}

	t.mu.Lock()
	t.ids = ids
	for id, st := range t.states {
		_, st.Bookmarked = ids[id]
	}
	t.mu.Unlock()

	t.log.Debug(ctx, "bookmarks loaded", "count", len(ids))
	return list, nil
}

// Reset forgets the bookmark set and all per-job state, e.g. on logout.
func (t *Tracker) Reset() {
	t.mu.Lock()
	t.ids = make(map[string]struct{})
	t.states = make(map[string]*State)
	t.mu.Unlock()
}

// Toggle asks the server to flip jobID's bookmark from current and returns
// the resulting value. When not signed in, or while a toggle for the same
// job is in flight, it fails without any network call.
func (t *Tracker) Toggle(ctx context.Context, jobID string, current bool) (bool, error) {
	t.mu.Lock()
	st := t.stateLocked(jobID)
	if !t.auth.IsAuthenticated() {
		st.LastError = ErrLoginRequired.Error()
		t.mu.Unlock()
		return current, ErrLoginRequired
	}
	if st.Pending {
		t.mu.Unlock()
		return current, ErrPending
	}
	st.Pending = true
	st.LastError = ""
	t.mu.Unlock()

	var err error
	if current {
		err = t.api.RemoveBookmark(ctx, jobID)
	} else {
		err = t.api.AddBookmark(ctx, jobID)
	}

	t.mu.Lock()
	st = t.stateLocked(jobID)
	st.Pending = false
	if err != nil {
		st.Bookmarked = current
		st.LastError = message(err)
		t.mu.Unlock()

		t.log.Warn(ctx, "bookmark toggle failed", "job_id", jobID, "from", current, "error", err)
		return current, err
	}

	next := !current
	st.Bookmarked = next
	st.LastError = ""
	if next {
		t.ids[jobID] = struct{}{}
	} else {
		delete(t.ids, jobID)
	}
	listeners := make([]Listener, 0, len(t.listeners))
	for _, s := range t.listeners {
		listeners = append(listeners, s.fn)
	}
	t.mu.Unlock()

	t.log.Info(ctx, "bookmark updated", "job_id", jobID, "bookmarked", next)
	for _, fn := range listeners {
		fn(jobID, next)
	}
	return next, nil
}

// Subscribe registers fn and returns a function that removes it again.
func (t *Tracker) Subscribe(fn Listener) (unsubscribe func()) {
	t.mu.Lock()
	t.nextSubID++
	id := t.nextSubID
	t.listeners = append(t.listeners, subscription{id: id, fn: fn})
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			for i, s := range t.listeners {
				if s.id == id {
					t.listeners = append(t.listeners[:i:i], t.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// State returns a copy of jobID's toggle state.
func (t *Tracker) State(jobID string) State {
	t.mu.Lock()
	defer t.mu.Unlock()
	if st, ok := t.states[jobID]; ok {
		return *st
	}
	_, in := t.ids[jobID]
	return State{Bookmarked: in}
}

// ClearError drops the recorded error for jobID.
func (t *Tracker) ClearError(jobID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if st, ok := t.states[jobID]; ok {
		st.LastError = ""
	}
}

func (t *Tracker) IsBookmarked(jobID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.ids[jobID]
	return ok
}

// IDs returns the bookmarked job ids, sorted.
func (t *Tracker) IDs() []string {
	t.mu.Lock()
	ids := make([]string, 0, len(t.ids))
	for id := range t.ids {
		ids = append(ids, id)
	}
	t.mu.Unlock()

	sort.Strings(ids)
	return ids
}

func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.ids)
}

// Annotate sets IsBookmarked on every job from the current set.
func (t *Tracker) Annotate(jobs []models.Job) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range jobs {
		_, jobs[i].IsBookmarked = t.ids[jobs[i].ID]
	}
}

func (t *Tracker) stateLocked(jobID string) *State {
	st, ok := t.states[jobID]
	if !ok {
		_, in := t.ids[jobID]
		st = &State{Bookmarked: in}
		t.states[jobID] = st
	}
	return st
}

func message(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallbackMessage
}
