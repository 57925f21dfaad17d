package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/jobboard/internal/client/bookmarks"
	"github.com/dmitrijs2005/jobboard/internal/client/client"
	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/dmitrijs2005/jobboard/internal/logging"
)

// ---- fakes ----

type fakeAuth struct {
	user        *models.User
	pending     string
	signupMsg   string
	signupErr   error
	verifyMsg   string
	verifyErr   error
	loginErr    error
	logoutErr   error
	lastForm    models.SignupForm
	lastCreds   models.Credentials
	lastOTP     string
	logoutCalls int
}

func (f *fakeAuth) Signup(_ context.Context, form models.SignupForm) (string, error) {
	f.lastForm = form
	if f.signupErr != nil {
		return "", f.signupErr
	}
	f.pending = form.Email
	return f.signupMsg, nil
}

func (f *fakeAuth) VerifyEmail(_ context.Context, otp string) (string, error) {
	f.lastOTP = otp
	if f.verifyErr != nil {
		return "", f.verifyErr
	}
	f.pending = ""
	return f.verifyMsg, nil
}

func (f *fakeAuth) Login(_ context.Context, creds models.Credentials) (*models.User, error) {
	f.lastCreds = creds
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.user = &models.User{ID: "u1", Name: "Abebe", Email: creds.Email}
	return f.user, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalls++
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.user = nil
	return nil
}

func (f *fakeAuth) CurrentUser() *models.User   { return f.user }
func (f *fakeAuth) IsAuthenticated() bool       { return f.user != nil }
func (f *fakeAuth) AccessToken() string         { return "" }
func (f *fakeAuth) PendingVerification() string { return f.pending }

type fakeJobs struct {
	jobs      []models.Job
	listErr   error
	listCalls int
	saved     []models.Job
	tracker   *bookmarks.Tracker
}

func (f *fakeJobs) List(context.Context) ([]models.Job, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := append([]models.Job(nil), f.jobs...)
	f.tracker.Annotate(out)
	return out, nil
}

func (f *fakeJobs) Search(_ context.Context, q string) ([]models.Job, error) {
	var out []models.Job
	for _, j := range f.jobs {
		if j.MatchesTitle(q) {
			out = append(out, j)
		}
	}
	f.tracker.Annotate(out)
	return out, nil
}

func (f *fakeJobs) Get(_ context.Context, id string) (*models.Job, error) {
	for _, j := range f.jobs {
		if j.ID == id {
			j.IsBookmarked = f.tracker.IsBookmarked(id)
			return &j, nil
		}
	}
	return nil, client.ErrJobNotFound
}

func (f *fakeJobs) Bookmarked(context.Context) ([]models.Job, error) {
	return append([]models.Job(nil), f.saved...), nil
}

type fakeBookmarks struct {
	list  []models.Bookmark
	err   error
	calls []string
}

func (f *fakeBookmarks) ListBookmarks(context.Context) ([]models.Bookmark, error) {
	f.calls = append(f.calls, "list")
	return f.list, f.err
}

func (f *fakeBookmarks) AddBookmark(_ context.Context, id string) error {
	f.calls = append(f.calls, "add:"+id)
	return nil
}

func (f *fakeBookmarks) RemoveBookmark(_ context.Context, id string) error {
	f.calls = append(f.calls, "remove:"+id)
	return nil
}

// ---- helpers ----

type testApp struct {
	*App
	auth *fakeAuth
	jobs *fakeJobs
	bms  *fakeBookmarks
	out  *bytes.Buffer
}

func newTestApp(t *testing.T, in string) *testApp {
	t.Helper()
	auth := &fakeAuth{}
	bms := &fakeBookmarks{}
	tracker := bookmarks.NewTracker(bms, auth, logging.Discard())
	jobs := &fakeJobs{
		tracker: tracker,
		jobs: []models.Job{
			{ID: "j1", Title: "Backend Engineer", OrgName: "Acme"},
			{ID: "j2", Title: "Designer", OrgName: "Globex"},
		},
	}
	out := &bytes.Buffer{}
	a := &App{
		log:         logging.Discard(),
		authService: auth,
		jobService:  jobs,
		tracker:     tracker,
		tab:         TabAll,
		reader:      bufio.NewReader(strings.NewReader(in)),
		out:         out,
	}
	a.openViews()
	t.Cleanup(a.closeViews)
	return &testApp{App: a, auth: auth, jobs: jobs, bms: bms, out: out}
}

func stubInputs(t *testing.T, texts []string, passwords ...string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		s := texts[0]
		texts = texts[1:]
		return s, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		p := passwords[0]
		passwords = passwords[1:]
		return []byte(p), nil
	}
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func loggedIn(t *testing.T, ta *testApp) {
	t.Helper()
	ta.auth.user = &models.User{ID: "u1", Name: "Abebe", Email: "abebe@example.com"}
}
