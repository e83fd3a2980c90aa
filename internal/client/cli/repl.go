package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

const (
	helpHome    = "Available commands: signin [token], resumes, signout, exit"
	helpResumes = "Available commands: (r)efresh, ls, view, year [YYYY], major [name], years, majors, " +
		"clear, sel <id>..., all, dl, width <n>|auto, home, signout, exit"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	currentRoute() Route
	SignIn(ctx context.Context, args []string) error
	Open(ctx context.Context) error
	Refresh(ctx context.Context) error
	List(ctx context.Context) error
	ToggleView(ctx context.Context) error
	Year(ctx context.Context, args []string) error
	Major(ctx context.Context, args []string) error
	Years(ctx context.Context) error
	Majors(ctx context.Context) error
	ClearFilter(ctx context.Context) error
	Select(ctx context.Context, ids []string) error
	SelectAll(ctx context.Context) error
	Download(ctx context.Context) error
	Width(ctx context.Context, args []string) error
	Home(ctx context.Context) error
	SignOut(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the Resume Book console.
//
// It reads a line from the provided scanner, parses the first token as the
// command and dispatches to methods on 'a'. Book commands are only accepted
// on the /resumes route. The loop exits on scanner EOF or when the user
// types "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers report
// their own failures.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("rb %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.currentRoute() == RouteResumes {
				printlnFn(helpResumes)
			} else {
				printlnFn(helpHome)
			}
			continue

		case "signin":
			_ = a.SignIn(ctx, args)
			continue

		case "resumes":
			_ = a.Open(ctx)
			continue

		case "signout":
			_ = a.SignOut(ctx)
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if a.currentRoute() != RouteResumes {
			if isBookCommand(cmd) {
				printlnFn("Open the book first: type 'signin' or 'resumes'.")
			} else {
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "r", "refresh":
			_ = a.Refresh(ctx)
		case "ls", "list":
			_ = a.List(ctx)
		case "view":
			_ = a.ToggleView(ctx)
		case "year":
			_ = a.Year(ctx, args)
		case "major":
			_ = a.Major(ctx, args)
		case "years":
			_ = a.Years(ctx)
		case "majors":
			_ = a.Majors(ctx)
		case "clear":
			_ = a.ClearFilter(ctx)
		case "sel", "select":
			_ = a.Select(ctx, args)
		case "all":
			_ = a.SelectAll(ctx)
		case "dl", "download":
			_ = a.Download(ctx)
		case "width":
			_ = a.Width(ctx, args)
		case "home":
			_ = a.Home(ctx)
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func isBookCommand(cmd string) bool {
	switch cmd {
	case "r", "refresh", "ls", "list", "view", "year", "major", "years", "majors", "clear",
		"sel", "select", "all", "dl", "download", "width", "home":
		return true
	}
	return false
}
