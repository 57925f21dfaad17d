package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/client/bookmarks"
	"github.com/dmitrijs2005/jobboard/internal/client/client"
	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/dmitrijs2005/jobboard/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type fakeJobsAPI struct {
	mu sync.Mutex

	Jobs      map[string]models.Job
	ListErr   error
	GetErrs   map[string]error
	Delays    map[string]time.Duration
	Bookmarks []models.Bookmark

	LastQuery string
	Searches  int

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (f *fakeJobsAPI) ListOpportunities(ctx context.Context) ([]models.Job, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.all(), nil
}

func (f *fakeJobsAPI) SearchOpportunities(ctx context.Context, query string) ([]models.Job, error) {
	f.mu.Lock()
	f.LastQuery = query
	f.Searches++
	f.mu.Unlock()

	var out []models.Job
	for _, j := range f.all() {
		if j.MatchesTitle(query) {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakeJobsAPI) GetOpportunity(ctx context.Context, id string) (*models.Job, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		m := f.maxInFlight.Load()
		if n <= m || f.maxInFlight.CompareAndSwap(m, n) {
			break
		}
	}

	if d := f.Delays[id]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := f.GetErrs[id]; err != nil {
		return nil, err
	}
	j, ok := f.Jobs[id]
	if !ok {
		return nil, client.ErrJobNotFound
	}
	return &j, nil
}

func (f *fakeJobsAPI) ListBookmarks(ctx context.Context) ([]models.Bookmark, error) {
	return f.Bookmarks, nil
}

func (f *fakeJobsAPI) AddBookmark(ctx context.Context, jobID string) error    { return nil }
func (f *fakeJobsAPI) RemoveBookmark(ctx context.Context, jobID string) error { return nil }

// all returns jobs in id order so results are stable.
func (f *fakeJobsAPI) all() []models.Job {
	out := make([]models.Job, 0, len(f.Jobs))
	for _, id := range []string{"j1", "j2", "j3", "j4"} {
		if j, ok := f.Jobs[id]; ok {
			out = append(out, j)
		}
	}
	return out
}

type signedIn bool

func (s signedIn) IsAuthenticated() bool { return bool(s) }

// ---- helpers ----

func sampleJobs() map[string]models.Job {
	return map[string]models.Job{
		"j1": {ID: "j1", Title: "Backend Engineer", OrgName: "Acme"},
		"j2": {ID: "j2", Title: "Frontend Developer", OrgName: "Globex"},
		"j3": {ID: "j3", Title: "Data Engineer", OrgName: "Initech"},
		"j4": {ID: "j4", Title: "Designer", OrgName: "Umbrella"},
	}
}

func newJobService(t *testing.T, api *fakeJobsAPI, concurrency int) (JobService, *bookmarks.Tracker) {
	t.Helper()
	tr := bookmarks.NewTracker(api, signedIn(true), logging.Discard())
	return NewJobService(api, tr, concurrency, logging.Discard()), tr
}

func ids(jobs []models.Job) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.ID
	}
	return out
}

// ---- tests ----

func TestList_MarksBookmarkedJobs(t *testing.T) {
	api := &fakeJobsAPI{Jobs: sampleJobs(), Bookmarks: []models.Bookmark{{EventID: "j2"}}}
	svc, tr := newJobService(t, api, 0)
	_, err := tr.Load(context.Background())
	require.NoError(t, err)

	jobs, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, jobs, 4)
	for _, j := range jobs {
		assert.Equal(t, j.ID == "j2", j.IsBookmarked, j.ID)
	}
}

func TestList_PropagatesError(t *testing.T) {
	api := &fakeJobsAPI{ListErr: client.ErrNetwork}
	svc, _ := newJobService(t, api, 0)

	_, err := svc.List(context.Background())

	require.ErrorIs(t, err, client.ErrNetwork)
}

func TestSearch_BlankQueryListsEverything(t *testing.T) {
	api := &fakeJobsAPI{Jobs: sampleJobs()}
	svc, _ := newJobService(t, api, 0)

	jobs, err := svc.Search(context.Background(), "   ")

	require.NoError(t, err)
	assert.Len(t, jobs, 4)
	assert.Zero(t, api.Searches)
}

func TestSearch_FiltersByTitle(t *testing.T) {
	api := &fakeJobsAPI{Jobs: sampleJobs()}
	svc, _ := newJobService(t, api, 0)

	jobs, err := svc.Search(context.Background(), " engineer ")

	require.NoError(t, err)
	assert.Equal(t, []string{"j1", "j3"}, ids(jobs))
	assert.Equal(t, "engineer", api.LastQuery)
}

func TestGet_MarksBookmark(t *testing.T) {
	api := &fakeJobsAPI{Jobs: sampleJobs(), Bookmarks: []models.Bookmark{{EventID: "j3"}}}
	svc, tr := newJobService(t, api, 0)
	_, err := tr.Load(context.Background())
	require.NoError(t, err)

	job, err := svc.Get(context.Background(), "j3")
	require.NoError(t, err)
	assert.True(t, job.IsBookmarked)

	job, err = svc.Get(context.Background(), "j1")
	require.NoError(t, err)
	assert.False(t, job.IsBookmarked)
}

func TestBookmarked_PreservesBookmarkOrder(t *testing.T) {
	api := &fakeJobsAPI{
		Jobs:      sampleJobs(),
		Bookmarks: []models.Bookmark{{EventID: "j4"}, {EventID: "j1"}, {EventID: "j3"}},
		// the first bookmark finishes last
		Delays: map[string]time.Duration{"j4": 20 * time.Millisecond},
	}
	svc, tr := newJobService(t, api, 0)

	jobs, err := svc.Bookmarked(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"j4", "j1", "j3"}, ids(jobs))
	for _, j := range jobs {
		assert.True(t, j.IsBookmarked, j.ID)
	}
	assert.Equal(t, 3, tr.Count())
}

func TestBookmarked_Empty(t *testing.T) {
	api := &fakeJobsAPI{Jobs: sampleJobs()}
	svc, _ := newJobService(t, api, 0)

	jobs, err := svc.Bookmarked(context.Background())

	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestBookmarked_OneFailureFailsAll(t *testing.T) {
	api := &fakeJobsAPI{
		Jobs:      sampleJobs(),
		Bookmarks: []models.Bookmark{{EventID: "j1"}, {EventID: "gone"}, {EventID: "j2"}},
	}
	svc, _ := newJobService(t, api, 0)

	jobs, err := svc.Bookmarked(context.Background())

	require.ErrorIs(t, err, client.ErrJobNotFound)
	assert.Nil(t, jobs)
}

func TestBookmarked_RespectsConcurrencyLimit(t *testing.T) {
	api := &fakeJobsAPI{
		Jobs:      sampleJobs(),
		Bookmarks: []models.Bookmark{{EventID: "j1"}, {EventID: "j2"}, {EventID: "j3"}, {EventID: "j4"}},
		Delays: map[string]time.Duration{
			"j1": 10 * time.Millisecond, "j2": 10 * time.Millisecond,
			"j3": 10 * time.Millisecond, "j4": 10 * time.Millisecond,
		},
	}
	svc, _ := newJobService(t, api, 2)

	_, err := svc.Bookmarked(context.Background())

	require.NoError(t, err)
	assert.LessOrEqual(t, api.maxInFlight.Load(), int32(2))
}

func TestBookmarked_BookmarkListError(t *testing.T) {
	boom := errors.New("boom")
	api := &failingBookmarks{fakeJobsAPI: &fakeJobsAPI{Jobs: sampleJobs()}, err: boom}
	tr := bookmarks.NewTracker(api, signedIn(true), logging.Discard())
	svc := NewJobService(api, tr, 0, logging.Discard())

	_, err := svc.Bookmarked(context.Background())

	require.ErrorIs(t, err, boom)
}

type failingBookmarks struct {
	*fakeJobsAPI
	err error
}

func (f *failingBookmarks) ListBookmarks(ctx context.Context) ([]models.Bookmark, error) {
	return nil, f.err
}
