package client

import (
	"context"

	"github.com/dmitrijs2005/jobboard/internal/client/models"
)

// OpportunitiesAPI covers the public job listing endpoints.
type OpportunitiesAPI interface {
	ListOpportunities(ctx context.Context) ([]models.Job, error)
	SearchOpportunities(ctx context.Context, query string) ([]models.Job, error)
	GetOpportunity(ctx context.Context, id string) (*models.Job, error)
}

// BookmarksAPI covers the per-user bookmark endpoints. Every method fails
// with ErrAuthenticationRequired, without any I/O, when no token is present.
type BookmarksAPI interface {
	ListBookmarks(ctx context.Context) ([]models.Bookmark, error)
	AddBookmark(ctx context.Context, jobID string) error
	RemoveBookmark(ctx context.Context, jobID string) error
}

// AuthAPI covers the account endpoints. Signup and VerifyEmail return the
// server's confirmation message.
type AuthAPI interface {
	Signup(ctx context.Context, form models.SignupForm) (string, error)
	Login(ctx context.Context, creds models.Credentials) (*models.Session, error)
	VerifyEmail(ctx context.Context, req models.VerifyEmailRequest) (string, error)
}

type Client interface {
	OpportunitiesAPI
	BookmarksAPI
	AuthAPI
	Close() error
}

// TokenSource supplies the current access token; "" means signed out.
type TokenSource interface {
	AccessToken() string
}
