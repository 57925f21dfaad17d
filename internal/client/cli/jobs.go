package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/dmitrijs2005/jobboard/internal/client/views"
)

var errNoSuchJob = errors.New("no job with that number on screen")

// List reloads all jobs (keeping the current search) and shows them.
func (a *App) List(ctx context.Context) error {
	a.tab, a.screen = TabAll, screenList
	_ = a.list.Load(ctx)
	a.renderList()
	return nil
}

// Search lists jobs whose title contains query. An empty query lists all.
func (a *App) Search(ctx context.Context, query string) error {
	a.tab, a.screen = TabAll, screenList
	_ = a.list.Search(ctx, query)
	a.renderList()
	return nil
}

func (a *App) Sort(ctx context.Context, mode string) error {
	m, err := views.ParseSortMode(mode)
	if err != nil {
		return err
	}
	a.list.SetSort(m)
	a.tab, a.screen = TabAll, screenList
	a.renderList()
	return nil
}

// Show opens the detail screen for a job given by id or by its #n on the
// current list.
func (a *App) Show(ctx context.Context, ref string) error {
	id, err := a.resolve(ref)
	if err != nil {
		return err
	}
	a.screen = screenDetail
	_ = a.detail.Load(ctx, id)
	a.detail.Render(a.out)
	return nil
}

// Bookmark toggles the bookmark of a job given by id or #n. On the detail
// screen "." means the job shown.
func (a *App) Bookmark(ctx context.Context, ref string) error {
	var (
		id  string
		err error
	)
	if ref == "." && a.screen == screenDetail {
		j := a.detail.Job()
		if j == nil {
			return errNoSuchJob
		}
		id = j.ID
	} else if id, err = a.resolve(ref); err != nil {
		return err
	}

	current, title := a.bookmarkedOnScreen(id)
	now, err := a.tracker.Toggle(ctx, id, current)
	if err == nil {
		if now {
			printlnFn("Bookmarked:", title)
		} else {
			printlnFn("Removed bookmark:", title)
		}
	}
	a.render()
	return err
}

func (a *App) Bookmarks(ctx context.Context) error {
	return a.Tab(ctx, string(TabBookmarked))
}

// Tab switches the main screen. Each switch reloads the chosen list.
func (a *App) Tab(ctx context.Context, name string) error {
	switch Tab(strings.ToLower(name)) {
	case TabAll:
		return a.List(ctx)
	case TabBookmarked:
		a.tab, a.screen = TabBookmarked, screenList
		_ = a.saved.Load(ctx)
		a.renderList()
		return nil
	default:
		return fmt.Errorf("unknown tab %q (want all or bookmarked)", name)
	}
}

// Retry repeats the load of whatever is on screen.
func (a *App) Retry(ctx context.Context) error {
	switch {
	case a.screen == screenDetail:
		_ = a.detail.Retry(ctx)
	case a.tab == TabBookmarked:
		_ = a.saved.Retry(ctx)
	default:
		_ = a.list.Retry(ctx)
	}
	a.render()
	return nil
}

// Back leaves the detail screen without reloading the list.
func (a *App) Back(ctx context.Context) error {
	a.screen = screenList
	a.renderList()
	return nil
}

// resolve turns "#n" (or a bare n) into the id of the n-th job on the
// current list; anything else is taken as an id.
func (a *App) resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	num := strings.TrimPrefix(ref, "#")
	n, err := strconv.Atoi(num)
	if err != nil {
		if strings.HasPrefix(ref, "#") {
			return "", errNoSuchJob
		}
		return ref, nil
	}

	jobs := a.visibleJobs()
	if n < 1 || n > len(jobs) {
		return "", errNoSuchJob
	}
	return jobs[n-1].ID, nil
}

func (a *App) visibleJobs() []models.Job {
	if a.tab == TabBookmarked {
		return a.saved.Jobs()
	}
	return a.list.Jobs()
}

// bookmarkedOnScreen returns the bookmark flag of the copy the user is
// looking at, falling back to the tracker for jobs not on screen.
func (a *App) bookmarkedOnScreen(id string) (bool, string) {
	if a.screen == screenDetail {
		if j := a.detail.Job(); j != nil && j.ID == id {
			return j.IsBookmarked, j.Title
		}
	}
	for _, j := range a.visibleJobs() {
		if j.ID == id {
			return j.IsBookmarked, j.Title
		}
	}
	return a.tracker.IsBookmarked(id), id
}

func (a *App) render() {
	if a.screen == screenDetail {
		a.detail.Render(a.out)
		return
	}
	a.renderList()
}

// renderList prints the header, the tab bar and the active list.
func (a *App) renderList() {
	if u := a.authService.CurrentUser(); u != nil {
		fmt.Fprintf(a.out, "Welcome, %s\n", u.Name)
	}

	all := fmt.Sprintf("All Jobs (%d)", a.list.Count())
	saved := fmt.Sprintf("Bookmarked (%d)", a.tracker.Count())
	if a.tab == TabBookmarked {
		saved = "[" + saved + "]"
	} else {
		all = "[" + all + "]"
	}
	fmt.Fprintf(a.out, "%s  %s\n\n", all, saved)

	if a.tab == TabBookmarked {
		a.saved.Render(a.out)
	} else {
		a.list.Render(a.out)
	}
}
