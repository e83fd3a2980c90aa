package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/resumebook/internal/client/models"
	"github.com/dmitrijs2005/resumebook/internal/client/services"
)

var (
	errUsage   = errors.New("usage")
	errNoToken = errors.New("no token given")
)

// getToken is an indirection over GetToken that tests swap out.
var getToken = GetToken

// SignIn stores the access token given as the first argument, or read from
// the terminal when absent, and opens the book.
func (a *App) SignIn(ctx context.Context, args []string) error {
	var token string
	if len(args) > 0 {
		token = args[0]
	} else {
		t, err := getToken(a.out)
		if err != nil {
			a.notify(ctx, err)
			return err
		}
		token = t
	}
	if token == "" {
		a.notify(ctx, errNoToken)
		return errNoToken
	}

	sess, err := a.sessions.SignIn(ctx, token)
	if err != nil {
		a.notify(ctx, err)
		return err
	}
	a.session = sess

	if sess.ExpiresAt.IsZero() {
		fmt.Fprintln(a.out, "Signed in.")
	} else {
		fmt.Fprintf(a.out, "Signed in, token expires %s.\n", sess.ExpiresAt.Local().Format("2006-01-02 15:04"))
	}

	if a.route == RouteResumes {
		// A new identity must not see the previous one's resumes or selection.
		a.book.Reset()
		return a.Refresh(ctx)
	}
	return a.navigate(ctx, RouteResumes)
}

// Open navigates to the book when a session is stored.
func (a *App) Open(ctx context.Context) error {
	if a.session == nil {
		fmt.Fprintln(a.out, "Sign in first: type 'signin'.")
		return nil
	}
	return a.navigate(ctx, RouteResumes)
}

// Refresh runs the list operation and merges the result into the book.
func (a *App) Refresh(ctx context.Context) error {
	n, err := a.resumes.Refresh(ctx, a.session, a.book)
	if err != nil {
		a.notify(ctx, err)
		return err
	}
	fmt.Fprintf(a.out, "Fetched %d resumes.\n", n)
	render(a.out, a.book)
	return nil
}

func (a *App) List(ctx context.Context) error {
	render(a.out, a.book)
	return nil
}

func (a *App) ToggleView(ctx context.Context) error {
	a.book.ToggleView()
	render(a.out, a.book)
	return nil
}

// Year sets the graduation-year filter; no argument clears it.
func (a *App) Year(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.book.SetGraduationYear("")
		render(a.out, a.book)
		return nil
	}
	y := args[0]
	if !models.IsGraduationYear(y) {
		fmt.Fprintf(a.out, "Unknown graduation year %q. Options: %s\n", y, strings.Join(models.GraduationYears, ", "))
		return errUsage
	}
	a.book.SetGraduationYear(y)
	render(a.out, a.book)
	return nil
}

// Major sets the major filter; no argument clears it. The name is matched
// against the catalogue ignoring case.
func (a *App) Major(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.book.SetMajor("")
		render(a.out, a.book)
		return nil
	}
	name := strings.Join(args, " ")
	m, ok := lookupOption(models.Majors, name)
	if !ok {
		fmt.Fprintf(a.out, "Unknown major %q. Options: %s\n", name, strings.Join(models.Majors, ", "))
		return errUsage
	}
	a.book.SetMajor(m)
	render(a.out, a.book)
	return nil
}

// ClearFilter drops both filters.
func (a *App) ClearFilter(ctx context.Context) error {
	a.book.ClearFilter()
	render(a.out, a.book)
	return nil
}

func (a *App) Years(ctx context.Context) error {
	for _, y := range models.GraduationYears {
		fmt.Fprintln(a.out, y)
	}
	return nil
}

func (a *App) Majors(ctx context.Context) error {
	for _, m := range models.Majors {
		fmt.Fprintln(a.out, m)
	}
	return nil
}

// Select toggles each id. Only résumés currently shown can be toggled.
func (a *App) Select(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		fmt.Fprintln(a.out, "Usage: sel <id> [<id>...]")
		return errUsage
	}

	visible := make(map[string]bool)
	for _, r := range a.book.Filtered() {
		visible[r.ID] = true
	}
	for _, id := range ids {
		if !visible[id] {
			fmt.Fprintf(a.out, "No resume %q in the current view.\n", id)
			continue
		}
		a.book.Toggle(id)
	}
	render(a.out, a.book)
	return nil
}

// SelectAll is the select-all / deselect-all control.
func (a *App) SelectAll(ctx context.Context) error {
	a.book.ToggleAll()
	render(a.out, a.book)
	return nil
}

// Download saves the selected résumés. Each failed file gets its own
// notification; files already saved are kept.
func (a *App) Download(ctx context.Context) error {
	if !a.book.CanDownload() {
		fmt.Fprintln(a.out, "Select at least one resume first.")
		return services.ErrNothingSelected
	}

	report, err := a.resumes.Download(ctx, a.session, a.book.Selected())
	if err != nil {
		a.notify(ctx, err)
		return err
	}
	for _, p := range report.Saved {
		okColor.Fprintf(a.out, "Saved %s\n", p)
	}
	for _, f := range report.Failures {
		a.notify(ctx, f.Err)
	}
	return nil
}

// Width overrides the layout width with a column count; "auto" returns
// control to the resize watcher.
func (a *App) Width(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: width <columns>|auto")
		return errUsage
	}

	if args[0] == "auto" {
		a.widthPinned.Store(false)
		a.book.SetWidth(currentWidth())
	} else {
		cols, err := strconv.Atoi(args[0])
		if err != nil || cols <= 0 {
			fmt.Fprintln(a.out, "Usage: width <columns>|auto")
			return errUsage
		}
		a.widthPinned.Store(true)
		a.book.SetWidth(cols * cellWidth)
	}

	layout := "wide"
	if a.book.Narrow() {
		layout = "narrow"
	}
	fmt.Fprintf(a.out, "Layout: %s (%d columns).\n", layout, a.book.Width()/cellWidth)
	render(a.out, a.book)
	return nil
}

// Home is the logo click: back to the landing page.
func (a *App) Home(ctx context.Context) error {
	return a.navigate(ctx, RouteHome)
}

// SignOut forgets the stored token and returns to the landing page.
func (a *App) SignOut(ctx context.Context) error {
	if err := a.sessions.SignOut(ctx); err != nil {
		a.notify(ctx, err)
		return err
	}
	a.session = nil
	fmt.Fprintln(a.out, "Signed out.")
	return a.navigate(ctx, RouteHome)
}

func lookupOption(options []string, s string) (string, bool) {
	for _, o := range options {
		if strings.EqualFold(o, s) {
			return o, true
		}
	}
	return "", false
}
