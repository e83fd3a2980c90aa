// Package admin implements the operator commands of the backend: minting
// access tokens for the console and importing registrations.
package admin

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dmitrijs2005/resumebook/internal/flagx"
	"github.com/dmitrijs2005/resumebook/internal/logging"
	"github.com/dmitrijs2005/resumebook/internal/server/auth"
	"github.com/dmitrijs2005/resumebook/internal/server/config"
	"github.com/dmitrijs2005/resumebook/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/resumebook/internal/server/services"
	"github.com/dmitrijs2005/resumebook/internal/server/storage"
)

const Usage = `usage:
  admin token -user <id>
  admin import -file registrations.json [-resumes dir]

Server flags (-d, -s, -t, -x, -u, -p, -b, -g, -e, ...) and .env apply.
Boolean flags take their value after "=", e.g. -m=false.`

var ErrUsage = errors.New("invalid arguments")

// Seams for tests.
var (
	openDB               = repomanager.OpenDB
	newRepositoryManager = repomanager.NewPostgresRepositoryManager
	newPresigner         = storage.New
)

const uploadTimeout = 2 * time.Minute

// Run executes the subcommand named by args[0].
func Run(ctx context.Context, cfg *config.Config, args []string, out io.Writer, logger logging.Logger) error {
	if len(args) == 0 {
		return ErrUsage
	}

	switch args[0] {
	case "token":
		return runToken(cfg, args[1:], out)
	case "import":
		return runImport(ctx, cfg, args[1:], out, logger)
	case "help", "-h", "--help":
		fmt.Fprintln(out, Usage)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
}

func runToken(cfg *config.Config, args []string, out io.Writer) error {
	var userID string

	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&userID, "user", "", "user id to put in the token")
	if err := fs.Parse(flagx.FilterArgs(args, []string{"-user"})); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if userID == "" {
		return fmt.Errorf("%w: -user is required", ErrUsage)
	}

	token, err := auth.GenerateToken(userID, []byte(cfg.SecretKey), cfg.AccessTokenValidityDuration)
	if err != nil {
		return fmt.Errorf("error generating token: %w", err)
	}
	fmt.Fprintln(out, token)
	return nil
}

func runImport(ctx context.Context, cfg *config.Config, args []string, out io.Writer, logger logging.Logger) error {
	var file, resumeDir string

	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&file, "file", "", "JSON file with registrations")
	fs.StringVar(&resumeDir, "resumes", ".", "directory résumé paths are relative to")
	if err := fs.Parse(flagx.FilterArgs(args, []string{"-file", "-resumes"})); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if file == "" {
		return fmt.Errorf("%w: -file is required", ErrUsage)
	}

	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	recs, err := ReadRecords(f)
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	rm := newRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migrations error: %w", err)
	}

	var presigner storage.Presigner
	if needsUpload(recs) {
		if presigner, err = newPresigner(ctx, cfg); err != nil {
			return fmt.Errorf("storage init error: %w", err)
		}
	}

	imp := NewImporter(services.NewRegistrationService(db, rm), presigner, &http.Client{Timeout: uploadTimeout}, resumeDir, logger)
	n, uploaded, err := imp.Import(ctx, recs)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Imported %d registrations (%d résumés uploaded).\n", n, uploaded)
	return nil
}

func needsUpload(recs []Record) bool {
	for _, r := range recs {
		if r.Resume != "" {
			return true
		}
	}
	return false
}
