package views

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/jobboard/internal/client/bookmarks"
	"github.com/dmitrijs2005/jobboard/internal/client/models"
)

// Status of a view's async section.
type Status int

const (
	StatusLoading Status = iota
	StatusError
	StatusReady
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	case StatusReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Section is a snapshot of a view's async state. Message is set only for
// StatusError; the view's Retry repeats the failed load.
type Section struct {
	Status  Status
	Message string
}

// JobSource is what the views load jobs from. services.JobService
// satisfies it.
type JobSource interface {
	List(ctx context.Context) ([]models.Job, error)
	Search(ctx context.Context, query string) ([]models.Job, error)
	Get(ctx context.Context, id string) (*models.Job, error)
	Bookmarked(ctx context.Context) ([]models.Job, error)
}

// BookmarkFeed is the part of bookmarks.Tracker the views read.
type BookmarkFeed interface {
	Subscribe(fn bookmarks.Listener) (unsubscribe func())
	State(jobID string) bookmarks.State
}

// base carries the state machine shared by all views. mu guards the
// embedding view's data too.
type base struct {
	mu      sync.Mutex
	section Section
	gen     uint64
	closed  bool
	unsub   func()
}

// begin enters Loading and returns the token the load must present to
// finish.
func (b *base) begin() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gen++
	b.section = Section{Status: StatusLoading}
	return b.gen
}

// finish applies the outcome of the load started with gen. Results of
// superseded loads, or loads finishing after Close, are dropped and
// finish reports false. apply runs with mu held.
func (b *base) finish(gen uint64, err error, fallback string, apply func()) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || gen != b.gen {
		return false
	}
	if err != nil {
		b.section = Section{Status: StatusError, Message: errorMessage(err, fallback)}
		return true
	}
	apply()
	b.section = Section{Status: StatusReady}
	return true
}

func (b *base) Section() Section {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.section
}

// Close unsubscribes the view. Loads still running are discarded when
// they return. Close is idempotent.
func (b *base) Close() {
	b.mu.Lock()
	b.closed = true
	unsub := b.unsub
	b.unsub = nil
	b.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}

func errorMessage(err error, fallback string) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
