package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/jobboard/internal/client/bookmarks"
	"github.com/dmitrijs2005/jobboard/internal/client/client"
	"github.com/dmitrijs2005/jobboard/internal/client/config"
	"github.com/dmitrijs2005/jobboard/internal/client/services"
	"github.com/dmitrijs2005/jobboard/internal/client/session"
	"github.com/dmitrijs2005/jobboard/internal/client/views"
	"github.com/dmitrijs2005/jobboard/internal/filex"
	"github.com/dmitrijs2005/jobboard/internal/logging"
)

// Tab selects which list the main screen shows.
type Tab string

const (
	TabAll        Tab = "all"
	TabBookmarked Tab = "bookmarked"
)

type screen int

const (
	screenList screen = iota
	screenDetail
)

// App is the interactive shell. It is driven by a single REPL goroutine.
type App struct {
	config *config.Config
	log    logging.Logger

	db          *sql.DB
	api         client.Client
	authService services.AuthService
	jobService  services.JobService
	tracker     *bookmarks.Tracker

	list   *views.JobList
	detail *views.JobDetail
	saved  *views.Bookmarked

	tab    Tab
	screen screen

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the session database, restores any saved session and wires
// the API client, services and views.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if _, err := filex.EnsureParentDir(c.DBPath); err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.DBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DBPath, "error", err)
		return nil, err
	}

	store, err := session.Open(ctx, db, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	api, err := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, store, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	tracker := bookmarks.NewTracker(api, store, log)

	a := &App{
		config:      c,
		log:         log,
		db:          db,
		api:         api,
		authService: services.NewAuthService(api, store, log),
		jobService:  services.NewJobService(api, tracker, c.FetchConcurrency, log),
		tracker:     tracker,
		tab:         TabAll,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}
	a.openViews()
	return a, nil
}

// Run starts the shell and blocks until the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	printlnFn("Job Board CLI (type 'help' for commands)")
	if a.isLoggedIn() {
		a.afterLogin(ctx)
	} else if err := a.Login(ctx); err != nil {
		printlnFn("Error:", err)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

// Close releases the views, the API client and the database.
func (a *App) Close() {
	a.closeViews()
	if a.api != nil {
		_ = a.api.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.authService.IsAuthenticated()
}

// getStatus is shown in the prompt: "(Abebe | all)".
func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return "(signed out)"
	}
	name := ""
	if u := a.authService.CurrentUser(); u != nil {
		name = u.Name
		if name == "" {
			name = u.Email
		}
	}
	return fmt.Sprintf("(%s | %s)", name, a.tab)
}

func (a *App) openViews() {
	a.list = views.NewJobList(a.jobService, a.tracker)
	a.detail = views.NewJobDetail(a.jobService, a.tracker)
	a.saved = views.NewBookmarked(a.jobService, a.tracker)
}

func (a *App) closeViews() {
	if a.list != nil {
		a.list.Close()
	}
	if a.detail != nil {
		a.detail.Close()
	}
	if a.saved != nil {
		a.saved.Close()
	}
}
