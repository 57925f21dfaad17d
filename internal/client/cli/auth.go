package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/dmitrijs2005/jobboard/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup prompts for name, e-mail and a password typed twice, and creates
// the account. The server then mails a 4-digit code for Verify.
// Password bytes are wiped before returning.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	printlnFn("Confirm password")
	confirm, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	msg, err := a.authService.Signup(ctx, models.SignupForm{
		Name:            name,
		Email:           email,
		Password:        string(password),
		ConfirmPassword: string(confirm),
	})
	if err != nil {
		return err
	}

	if msg != "" {
		printlnFn(msg)
	}
	printlnFn(fmt.Sprintf("We sent a verification code to %s. Type 'verify <code>' to confirm.", a.authService.PendingVerification()))
	return nil
}

// Verify confirms the pending sign-up. Without code on the command line
// it is asked for.
func (a *App) Verify(ctx context.Context, code string) error {
	if code == "" {
		var err error
		code, err = getSimpleText(a.reader, "Enter the 4-digit verification code", os.Stdout)
		if err != nil {
			return err
		}
	}

	msg, err := a.authService.VerifyEmail(ctx, code)
	if err != nil {
		return err
	}
	if msg == "" {
		msg = "Email verified."
	}
	printlnFn(msg, "You can now login.")
	return nil
}

// Login prompts for credentials, stores the session and loads the
// bookmark set and the job list. Password bytes are wiped before
// returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.authService.Login(ctx, models.Credentials{Email: email, Password: string(password)}); err != nil {
		a.log.Info(ctx, "login unsuccessful", "error", err)
		return err
	}

	a.afterLogin(ctx)
	return nil
}

// afterLogin loads bookmark ids first so the list can mark them. A failed
// bookmark load is only logged; the list still loads.
func (a *App) afterLogin(ctx context.Context) {
	if _, err := a.tracker.Load(ctx); err != nil {
		a.log.Warn(ctx, "error loading bookmarked ids", "error", err)
	}
	a.tab = TabAll
	a.screen = screenList
	_ = a.list.Load(ctx)
	a.renderList()
}

// Logout forgets the session and every loaded job.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.tracker.Reset()
	a.closeViews()
	a.openViews()
	a.tab = TabAll
	a.screen = screenList
	printlnFn("Logged out.")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	u := a.authService.CurrentUser()
	if u == nil {
		printlnFn("Not logged in.")
		return nil
	}
	printlnFn(fmt.Sprintf("%s <%s>", u.Name, u.Email))
	if u.Role != "" {
		printlnFn("Role:", u.Role)
	}
	return nil
}
