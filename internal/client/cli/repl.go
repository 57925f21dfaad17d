package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Verify(ctx context.Context, code string) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	List(ctx context.Context) error
	Search(ctx context.Context, query string) error
	Sort(ctx context.Context, mode string) error
	Show(ctx context.Context, ref string) error
	Bookmark(ctx context.Context, ref string) error
	Bookmarks(ctx context.Context) error
	Tab(ctx context.Context, name string) error
	Retry(ctx context.Context) error
	Back(ctx context.Context) error
}

const (
	helpSignedOut = "Available commands: signup, verify [code], login, help, exit"
	helpSignedIn  = "Available commands: list, search <query>, sort <relevant|newest|oldest>, show <id|#n>, " +
		"bookmark <id|#n|.>, bookmarks, tab <all|bookmarked>, retry, back, whoami, logout, help, exit"
)

// runREPL starts the read–eval–print loop of the job-board CLI.
//
// It reads a line from reader, parses the first token as the
// command and the rest as its argument, and dispatches to methods on 'a'.
// The loop exits on EOF or when the user types "exit" or "quit".
//
//	Always:
//	  - help                          show available commands
//	  - signup                        create an account
//	  - verify [code]                 confirm the e-mail of the last signup
//	  - login                         authenticate
//	  - bookmark <id|#n>              toggle a bookmark (asks to log in when needed)
//	  - exit | quit                   leave the program
//
//	Logged in:
//	  - list | l                      all jobs
//	  - search <query>                jobs whose title matches
//	  - sort <relevant|newest|oldest> order of the all-jobs list
//	  - show <id|#n>                  job details
//	  - bookmarks                     bookmarked jobs
//	  - tab <all|bookmarked>          switch list
//	  - retry                         repeat a failed load
//	  - back                          leave the detail screen
//	  - whoami                        current user
//	  - logout                        log out
//
// Errors returned by command handlers are printed and the loop goes on.
//
// Commands that prompt for more input read from the same reader, so the
// loop must not buffer ahead of them.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("jb %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)
		if cmd == "" {
			continue
		}

		err = nil
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpSignedOut)
			}

		case "signup":
			err = a.Signup(ctx)

		case "verify":
			err = a.Verify(ctx, arg)

		case "login":
			err = a.Login(ctx)

		case "bookmark":
			if arg == "" {
				printlnFn("Usage: bookmark <id|#n>")
				continue
			}
			err = a.Bookmark(ctx, arg)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "logout", "whoami", "l", "list", "search", "sort", "show", "bookmarks", "tab", "retry", "back":
			if !a.isLoggedIn() {
				printlnFn("Please login first (type 'login' or 'signup')")
				continue
			}
			err = dispatch(ctx, a, cmd, arg)

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}

// dispatch runs the commands that need a signed-in user.
func dispatch(ctx context.Context, a execIface, cmd, arg string) error {
	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "whoami":
		return a.Whoami(ctx)
	case "l", "list":
		return a.List(ctx)
	case "search":
		return a.Search(ctx, arg)
	case "sort":
		if arg == "" {
			printlnFn("Usage: sort <relevant|newest|oldest>")
			return nil
		}
		return a.Sort(ctx, arg)
	case "show":
		if arg == "" {
			printlnFn("Usage: show <id|#n>")
			return nil
		}
		return a.Show(ctx, arg)
	case "bookmarks":
		return a.Bookmarks(ctx)
	case "tab":
		if arg == "" {
			printlnFn("Usage: tab <all|bookmarked>")
			return nil
		}
		return a.Tab(ctx, arg)
	case "retry":
		return a.Retry(ctx)
	case "back":
		return a.Back(ctx)
	}
	return nil
}
