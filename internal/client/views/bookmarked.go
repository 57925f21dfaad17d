package views

import (
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/client/models"
)

// Bookmarked lists the full job of every bookmark. An unbookmark anywhere
// removes the job here; new bookmarks show up on the next Load.
type Bookmarked struct {
	base

	src  JobSource
	feed BookmarkFeed
	now  func() time.Time

	jobs []models.Job
}

func NewBookmarked(src JobSource, feed BookmarkFeed) *Bookmarked {
	b := &Bookmarked{src: src, feed: feed, now: time.Now}
	b.unsub = feed.Subscribe(b.onBookmark)
	return b
}

// Load refetches the bookmark list and every job on it. Any failure
// fails the whole section.
func (b *Bookmarked) Load(ctx context.Context) error {
	gen := b.begin()
	jobs, err := b.src.Bookmarked(ctx)
	b.finish(gen, err, "Failed to load bookmarked jobs", func() { b.jobs = jobs })
	return err
}

func (b *Bookmarked) Retry(ctx context.Context) error { return b.Load(ctx) }

func (b *Bookmarked) Jobs() []models.Job {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.jobs)
}

func (b *Bookmarked) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.jobs)
}

func (b *Bookmarked) onBookmark(jobID string, bookmarked bool) {
	if bookmarked {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.jobs = slices.DeleteFunc(b.jobs, func(j models.Job) bool { return j.ID == jobID })
}

func (b *Bookmarked) Render(w io.Writer) {
	sec := b.Section()
	switch sec.Status {
	case StatusLoading:
		fmt.Fprintln(w, "Loading bookmarked jobs...")
		return
	case StatusError:
		renderError(w, sec.Message)
		return
	}

	jobs := b.Jobs()
	if len(jobs) == 0 {
		fmt.Fprintln(w, "No bookmarked jobs")
		fmt.Fprintln(w, "Start bookmarking jobs to see them here")
		return
	}

	fmt.Fprintf(w, "Your bookmarked jobs\n\n")
	now := b.now()
	for i, j := range jobs {
		newCard(i+1, j, b.feed).Render(w, now)
		fmt.Fprintln(w)
	}
}
