package cli

import (
	"context"
	"os"
	"time"

	"golang.org/x/term"
)

const (
	// cellWidth approximates one terminal column in layout pixels.
	cellWidth = 8
	// DefaultColumns is assumed when stdout is not a terminal.
	DefaultColumns = 80
)

// terminalSize and stdoutFd are test seams for the terminal probe.
var (
	terminalSize = term.GetSize
	stdoutFd     = func() int { return int(os.Stdout.Fd()) }
)

// currentWidth returns the layout width of the terminal in pixels.
func currentWidth() int {
	cols, _, err := terminalSize(stdoutFd())
	if err != nil || cols <= 0 {
		cols = DefaultColumns
	}
	return cols * cellWidth
}

func (a *App) startResizeWatcher(ctx context.Context, interval time.Duration) {
	a.watchMu.Lock()
	defer a.watchMu.Unlock()
	if a.stopWatcher != nil {
		return
	}
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}

	wctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	a.stopWatcher = cancel
	a.watcherDone = done

	go func() {
		defer close(done)
		a.watchResize(wctx, interval)
	}()
}

func (a *App) stopResizeWatcher() {
	a.watchMu.Lock()
	cancel, done := a.stopWatcher, a.watcherDone
	a.stopWatcher, a.watcherDone = nil, nil
	a.watchMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (a *App) watchResize(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if a.widthPinned.Load() {
				continue
			}
			if a.book.SetWidth(currentWidth()) {
				a.logger.Debug(ctx, "layout changed", "narrow", a.book.Narrow(), "width", a.book.Width())
			}

		case <-ctx.Done():
			return
		}
	}
}
