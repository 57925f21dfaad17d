package views

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/client/models"
)

// SortMode orders the all-jobs list.
type SortMode string

const (
	SortRelevant SortMode = "relevant"
	SortNewest   SortMode = "newest"
	SortOldest   SortMode = "oldest"
)

func ParseSortMode(s string) (SortMode, error) {
	switch m := SortMode(strings.ToLower(strings.TrimSpace(s))); m {
	case SortRelevant, SortNewest, SortOldest:
		return m, nil
	default:
		return "", fmt.Errorf("unknown sort mode %q (want relevant, newest or oldest)", s)
	}
}

// JobList is the all-jobs view: every opportunity, or the results of the
// current search.
type JobList struct {
	base

	src  JobSource
	feed BookmarkFeed
	now  func() time.Time

	jobs  []models.Job
	query string
	sort  SortMode
}

func NewJobList(src JobSource, feed BookmarkFeed) *JobList {
	l := &JobList{src: src, feed: feed, now: time.Now, sort: SortRelevant}
	l.unsub = feed.Subscribe(l.onBookmark)
	return l
}

// Load fetches the list for the current query. The returned error is also
// recorded on the section.
func (l *JobList) Load(ctx context.Context) error {
	l.mu.Lock()
	query := l.query
	l.mu.Unlock()

	gen := l.begin()
	var (
		jobs []models.Job
		err  error
	)
	if query == "" {
		jobs, err = l.src.List(ctx)
	} else {
		jobs, err = l.src.Search(ctx, query)
	}
	l.finish(gen, err, "Failed to fetch opportunities", func() { l.jobs = jobs })
	return err
}

// Search sets the query and reloads. A blank query lists everything.
func (l *JobList) Search(ctx context.Context, query string) error {
	l.mu.Lock()
	l.query = strings.TrimSpace(query)
	l.mu.Unlock()
	return l.Load(ctx)
}

// Retry repeats the last load.
func (l *JobList) Retry(ctx context.Context) error { return l.Load(ctx) }

func (l *JobList) SetSort(m SortMode) {
	l.mu.Lock()
	l.sort = m
	l.mu.Unlock()
}

func (l *JobList) Sort() SortMode {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sort
}

func (l *JobList) Query() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.query
}

// Jobs returns a copy of the list in display order.
func (l *JobList) Jobs() []models.Job {
	l.mu.Lock()
	defer l.mu.Unlock()
	return sortJobs(l.jobs, l.sort)
}

func (l *JobList) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.jobs)
}

func (l *JobList) onBookmark(jobID string, bookmarked bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.jobs {
		if l.jobs[i].ID == jobID {
			l.jobs[i].IsBookmarked = bookmarked
		}
	}
}

func (l *JobList) Render(w io.Writer) {
	sec := l.Section()
	switch sec.Status {
	case StatusLoading:
		fmt.Fprintln(w, "Loading opportunities...")
		return
	case StatusError:
		renderError(w, sec.Message)
		return
	}

	jobs := l.Jobs()
	if len(jobs) == 0 {
		fmt.Fprintln(w, "No opportunities found")
		return
	}

	header := fmt.Sprintf("Showing %d results", len(jobs))
	if q := l.Query(); q != "" {
		header += fmt.Sprintf(" for %q", q)
	}
	fmt.Fprintf(w, "%s (sort: %s)\n\n", header, l.Sort())

	now := l.now()
	for i, j := range jobs {
		newCard(i+1, j, l.feed).Render(w, now)
		fmt.Fprintln(w)
	}
}

// sortJobs returns a sorted copy. Relevant keeps server order; the date
// modes put jobs without a posting date last.
func sortJobs(jobs []models.Job, m SortMode) []models.Job {
	out := slices.Clone(jobs)
	if m != SortNewest && m != SortOldest {
		return out
	}
	slices.SortStableFunc(out, func(a, b models.Job) int {
		ta, okA := a.PostedAt()
		tb, okB := b.PostedAt()
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return 1
		case !okB:
			return -1
		}
		if m == SortNewest {
			return tb.Compare(ta)
		}
		return ta.Compare(tb)
	})
	return out
}

func renderError(w io.Writer, msg string) {
	fmt.Fprintf(w, "Error: %s\n", msg)
	fmt.Fprintln(w, "Type 'retry' to try again.")
}
