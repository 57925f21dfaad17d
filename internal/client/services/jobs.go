package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/jobboard/internal/client/bookmarks"
	"github.com/dmitrijs2005/jobboard/internal/client/client"
	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/dmitrijs2005/jobboard/internal/logging"
	"golang.org/x/sync/errgroup"
)

// JobService loads opportunities and marks each with the tracker's
// bookmark flag. Every call is a fresh fetch.
type JobService interface {
	List(ctx context.Context) ([]models.Job, error)
	Search(ctx context.Context, query string) ([]models.Job, error)
	Get(ctx context.Context, id string) (*models.Job, error)
	// Bookmarked refreshes the bookmark set and returns the full job for
	// every bookmark, in bookmark order. One failed fetch fails the lot.
	Bookmarked(ctx context.Context) ([]models.Job, error)
}

type jobService struct {
	api         client.OpportunitiesAPI
	tracker     *bookmarks.Tracker
	concurrency int
	log         logging.Logger
}

// NewJobService returns a JobService. concurrency bounds the parallel
// detail fetches of Bookmarked; zero or less means unbounded.
func NewJobService(api client.OpportunitiesAPI, tracker *bookmarks.Tracker, concurrency int, log logging.Logger) JobService {
	return &jobService{api: api, tracker: tracker, concurrency: concurrency, log: log}
}

func (s *jobService) List(ctx context.Context) ([]models.Job, error) {
	jobs, err := s.api.ListOpportunities(ctx)
	if err != nil {
		return nil, err
	}
	s.tracker.Annotate(jobs)
	return jobs, nil
}

func (s *jobService) Search(ctx context.Context, query string) ([]models.Job, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.List(ctx)
	}

	jobs, err := s.api.SearchOpportunities(ctx, query)
	if err != nil {
		return nil, err
	}
	s.tracker.Annotate(jobs)
	return jobs, nil
}

func (s *jobService) Get(ctx context.Context, id string) (*models.Job, error) {
	job, err := s.api.GetOpportunity(ctx, id)
	if err != nil {
		return nil, err
	}
	job.IsBookmarked = s.tracker.IsBookmarked(job.ID)
	return job, nil
}

func (s *jobService) Bookmarked(ctx context.Context) ([]models.Job, error) {
	list, err := s.tracker.Load(ctx)
	if err != nil {
		return nil, err
	}
	ids := models.BookmarkIDs(list)

	limit := s.concurrency
	if limit <= 0 {
		limit = -1
	}

	jobs := make([]models.Job, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			job, err := s.api.GetOpportunity(gctx, id)
			if err != nil {
				s.log.Warn(gctx, "fetching bookmarked job failed", "job_id", id, "error", err)
				return err
			}
			job.IsBookmarked = true
			jobs[i] = *job
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.log.Debug(ctx, "bookmarked jobs loaded", "count", len(jobs))
	return jobs, nil
}
