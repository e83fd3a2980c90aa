package admin

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/resumebook/internal/dbx"
	"github.com/dmitrijs2005/resumebook/internal/server/auth"
	"github.com/dmitrijs2005/resumebook/internal/server/config"
	"github.com/dmitrijs2005/resumebook/internal/server/repositories/registrations"
	"github.com/dmitrijs2005/resumebook/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/resumebook/internal/server/storage"
)

type fakeManager struct {
	migrateErr error
}

func (m *fakeManager) RunMigrations(context.Context, *sql.DB) error { return m.migrateErr }

func (m *fakeManager) Registrations(db dbx.DBTX) registrations.Repository {
	return registrations.NewPostgresRepository(db)
}

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.SecretKey = "admin-secret"
	c.AccessTokenValidityDuration = time.Hour
	return c
}

func swapSeams(t *testing.T, db *sql.DB, m repomanager.RepositoryManager) {
	t.Helper()
	origOpen, origRM, origPresigner := openDB, newRepositoryManager, newPresigner
	t.Cleanup(func() {
		openDB, newRepositoryManager, newPresigner = origOpen, origRM, origPresigner
	})
	openDB = func(context.Context, string) (*sql.DB, error) { return db, nil }
	newRepositoryManager = func() repomanager.RepositoryManager { return m }
	newPresigner = func(context.Context, *config.Config) (storage.Presigner, error) {
		t.Fatal("presigner must not be built without uploads")
		return nil, nil
	}
}

func TestRun_Token(t *testing.T) {
	var out bytes.Buffer
	cfg := testConfig()

	err := Run(context.Background(), cfg, []string{"token", "-user", "ops"}, &out, nopLogger{})
	require.NoError(t, err)

	userID, err := auth.GetUserIDFromToken(strings.TrimSpace(out.String()), []byte(cfg.SecretKey))
	require.NoError(t, err)
	assert.Equal(t, "ops", userID)
}

func TestRun_Usage(t *testing.T) {
	var out bytes.Buffer
	ctx := context.Background()

	require.ErrorIs(t, Run(ctx, testConfig(), nil, &out, nopLogger{}), ErrUsage)
	require.ErrorIs(t, Run(ctx, testConfig(), []string{"token"}, &out, nopLogger{}), ErrUsage)
	require.ErrorIs(t, Run(ctx, testConfig(), []string{"import"}, &out, nopLogger{}), ErrUsage)
	require.ErrorIs(t, Run(ctx, testConfig(), []string{"drop"}, &out, nopLogger{}), ErrUsage)

	require.NoError(t, Run(ctx, testConfig(), []string{"help"}, &out, nopLogger{}))
	assert.Contains(t, out.String(), "admin token -user <id>")
	assert.Contains(t, out.String(), "-m=false")
}

func TestRun_Import(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "regs.json")
	require.NoError(t, os.WriteFile(file, []byte(`[
		{"userId":"u1","name":"Ada","major":"Physics","graduation":2024,"resumeKey":"resumes/a.pdf"},
		{"userId":"u2","name":"Bob"}
	]`), 0o600))

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	swapSeams(t, db, &fakeManager{})

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT\s+INTO\s+registrations`).
		WithArgs("u1", "Ada", "Physics", "2024", "", "", true, "resumes/a.pdf").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT\s+INTO\s+registrations`).
		WithArgs("u2", "Bob", "", "", "", "", false, "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectClose()

	var out bytes.Buffer
	err = Run(context.Background(), testConfig(), []string{"import", "-file", file}, &out, nopLogger{})
	require.NoError(t, err)
	assert.Equal(t, "Imported 2 registrations (0 résumés uploaded).\n", out.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_ImportErrors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "regs.json")
	require.NoError(t, os.WriteFile(file, []byte(`[{"userId":"u1"}]`), 0o600))

	var out bytes.Buffer
	ctx := context.Background()

	err := Run(ctx, testConfig(), []string{"import", "-file", filepath.Join(dir, "nope.json")}, &out, nopLogger{})
	require.Error(t, err)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	swapSeams(t, db, &fakeManager{migrateErr: errors.New("dirty")})
	mock.ExpectClose()

	err = Run(ctx, testConfig(), []string{"import", "-file=" + file}, &out, nopLogger{})
	require.EqualError(t, err, "migrations error: dirty")
	require.NoError(t, mock.ExpectationsWereMet())

	openDB = func(context.Context, string) (*sql.DB, error) { return nil, errors.New("refused") }
	err = Run(ctx, testConfig(), []string{"import", "-file", file}, &out, nopLogger{})
	require.EqualError(t, err, "db init error: refused")
}
