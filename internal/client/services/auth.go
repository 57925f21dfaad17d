// Package services contains the application services of the job-board
// client. This file holds the authentication flows: sign-up, e-mail
// verification, login and logout.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/jobboard/internal/client/client"
	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/dmitrijs2005/jobboard/internal/client/validation"
	"github.com/dmitrijs2005/jobboard/internal/logging"
)

var ErrNoPendingVerification = errors.New("no sign-up is waiting for verification")

// SessionStore is the part of session.Store the auth flows need.
type SessionStore interface {
	Save(ctx context.Context, sess *models.Session) error
	Clear(ctx context.Context) error
	CurrentUser() *models.User
	IsAuthenticated() bool
	AccessToken() string
	SetVerificationEmail(email string)
	VerificationEmail() string
	ClearVerificationEmail()
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Signup: validate the form, create the account and remember the
//     e-mail that now awaits verification.
//   - VerifyEmail: confirm the remembered e-mail with a 4-character code.
//   - Login: validate, authenticate and persist the resulting session.
//     A failed login surfaces the server's message; nothing is retried.
//   - Logout: forget the session and any pending verification.
//
// Form problems are returned as validation.Errors before any request.
type AuthService interface {
	Signup(ctx context.Context, form models.SignupForm) (string, error)
	VerifyEmail(ctx context.Context, otp string) (string, error)
	Login(ctx context.Context, creds models.Credentials) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser() *models.User
	IsAuthenticated() bool
	AccessToken() string
	PendingVerification() string
}

type authService struct {
	client client.AuthAPI
	store  SessionStore
	log    logging.Logger
}

func NewAuthService(c client.AuthAPI, store SessionStore, log logging.Logger) AuthService {
	return &authService{client: c, store: store, log: log}
}

func (a *authService) Signup(ctx context.Context, form models.SignupForm) (string, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	if errs := validation.Signup(form); len(errs) > 0 {
		return "", errs
	}

	msg, err := a.client.Signup(ctx, form)
	if err != nil {
		a.log.Warn(ctx, "signup failed", "email", form.Email, "error", err)
		return "", err
	}

	a.store.SetVerificationEmail(form.Email)
	a.log.Info(ctx, "signup accepted, awaiting verification", "email", form.Email)
	return msg, nil
}

func (a *authService) VerifyEmail(ctx context.Context, otp string) (string, error) {
	email := a.store.VerificationEmail()
	if email == "" {
		return "", ErrNoPendingVerification
	}

	otp = strings.TrimSpace(otp)
	if errs := validation.OTP(otp); len(errs) > 0 {
		return "", errs
	}

	msg, err := a.client.VerifyEmail(ctx, models.VerifyEmailRequest{Email: email, OTP: otp})
	if err != nil {
		a.log.Warn(ctx, "email verification failed", "email", email, "error", err)
		return "", err
	}

	a.store.ClearVerificationEmail()
	return msg, nil
}

func (a *authService) Login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if errs := validation.Signin(creds); len(errs) > 0 {
		return nil, errs
	}

	sess, err := a.client.Login(ctx, creds)
	if err != nil {
		a.log.Warn(ctx, "login failed", "email", creds.Email, "error", err)
		return nil, err
	}
	if sess.User == nil {
		sess.User = &models.User{Email: creds.Email}
	}

	if err := a.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}

	a.log.Info(ctx, "logged in", "user_id", sess.User.ID)
	return a.store.CurrentUser(), nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.store.Clear(ctx)
}

func (a *authService) CurrentUser() *models.User { return a.store.CurrentUser() }

func (a *authService) IsAuthenticated() bool { return a.store.IsAuthenticated() }

func (a *authService) AccessToken() string { return a.store.AccessToken() }

// PendingVerification returns the e-mail awaiting verification, or "".
func (a *authService) PendingVerification() string { return a.store.VerificationEmail() }
