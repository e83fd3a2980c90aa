package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/resumebook/internal/client/book"
	"github.com/dmitrijs2005/resumebook/internal/client/client"
	"github.com/dmitrijs2005/resumebook/internal/client/config"
	"github.com/dmitrijs2005/resumebook/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/resumebook/internal/client/services"
	"github.com/dmitrijs2005/resumebook/internal/client/session"
	"github.com/dmitrijs2005/resumebook/internal/logging"

	_ "modernc.org/sqlite"
)

// Route is the console's current page.
type Route string

const (
	RouteHome    Route = "/"
	RouteResumes Route = "/resumes"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	resumes  services.ResumeService
	sessions services.SessionService

	book    *book.Book
	session *session.Session
	route   Route
	out     io.Writer
	now     func() time.Time

	watchMu     sync.Mutex
	stopWatcher context.CancelFunc
	watcherDone chan struct{}
	widthPinned atomic.Bool
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger, err := logging.New(logging.FormatColor, c.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.SessionDB)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(c.APIBase, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	store := session.NewStore(metadata.NewSQLiteRepository(db))

	return &App{
		config:   c,
		logger:   logger,
		db:       db,
		resumes:  services.NewResumeService(apiClient, c.DownloadDir, logger),
		sessions: services.NewSessionService(store, logger),
		book:     book.New(DefaultColumns * cellWidth),
		route:    RouteHome,
		out:      os.Stdout,
		now:      time.Now,
	}, nil
}

// Run restores a stored session, opens the book when there is one and
// blocks in the REPL until the operator leaves.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	printlnFn("Welcome to Resume Book (type 'help' for commands)")

	sess, err := a.sessions.Current(ctx)
	switch {
	case err == nil:
		a.session = sess
		_ = a.navigate(ctx, RouteResumes)
	case !errors.Is(err, session.ErrNoSession):
		a.notify(ctx, err)
	}

	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

// Close stops the resize watcher and releases the local store.
func (a *App) Close() {
	a.stopResizeWatcher()
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) currentRoute() Route { return a.route }

// navigate switches the page. Entering the book fetches it and starts the
// resize watcher; leaving stops the watcher and drops the view state, the
// way a full page load would.
func (a *App) navigate(ctx context.Context, r Route) error {
	if a.route == r {
		return nil
	}
	if a.route == RouteResumes {
		a.stopResizeWatcher()
		a.book.Reset()
	}
	a.route = r
	a.logger.Debug(ctx, "navigated", "route", string(r))

	if r != RouteResumes {
		return nil
	}
	if !a.widthPinned.Load() {
		a.book.SetWidth(currentWidth())
	}
	a.startResizeWatcher(ctx, a.config.ResizeInterval)
	return a.Refresh(ctx)
}

func (a *App) status() string {
	s := string(a.route)
	if a.route == RouteResumes {
		s = fmt.Sprintf("%s %d/%d sel:%d", s, len(a.book.Filtered()), len(a.book.All()), a.book.SelectionSize())
	}
	if a.session.Expired(a.now()) {
		s += " (session expired)"
	}
	return s
}

// notify shows err as a transient message and logs it.
func (a *App) notify(ctx context.Context, err error) {
	msg := err.Error()
	var ne *services.NotifyError
	if errors.As(err, &ne) {
		msg = ne.Msg
	}
	a.logger.Error(ctx, "notification", "message", msg, "error", err)
	errColor.Fprintln(a.out, msg)
}
