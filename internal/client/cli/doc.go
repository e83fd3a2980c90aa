// Package cli provides the interactive Resume Book console.
//
// It wires configuration, the local session store, the API services and a
// REPL with two routes: the landing page "/" and the book "/resumes".
// Entering the book fetches the résumés and starts a watcher that follows
// the terminal width; leaving it stops the watcher.
//
// In the book the operator can:
//   - refresh and list the résumés in list or grid view
//   - filter by graduation year and major
//   - select résumés one by one or all at once
//   - download the selection into the configured directory
//
// Below 550 layout pixels (about 69 columns) the action bar shows icons
// instead of labels. Failures are printed in red, one line each, and logged.
//
// The console is started via App.Run(ctx), which blocks until the user exits.
package cli
