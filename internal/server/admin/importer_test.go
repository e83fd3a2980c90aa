package admin

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/resumebook/internal/logging"
	"github.com/dmitrijs2005/resumebook/internal/server/models"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

type fakeRegistrations struct {
	got []*models.Registration
	err error
}

func (f *fakeRegistrations) Import(ctx context.Context, regs []*models.Registration) error {
	f.got = regs
	return f.err
}

// storeStub stands in for the bucket: presigned PUTs land in its handler.
type storeStub struct {
	srv *httptest.Server

	mu      sync.Mutex
	puts    map[string][]byte
	ctypes  map[string]string
	failPut bool
}

func newStoreStub(t *testing.T) *storeStub {
	s := &storeStub{puts: map[string][]byte{}, ctypes: map[string]string{}}
	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if s.failPut {
			http.Error(w, "AccessDenied", http.StatusForbidden)
			return
		}
		b, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		s.puts[r.URL.Path] = b
		s.ctypes[r.URL.Path] = r.Header.Get("Content-Type")
		s.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(s.srv.Close)
	return s
}

func (s *storeStub) PresignGet(ctx context.Context, key, filename string) (string, error) {
	return s.srv.URL + "/" + key, nil
}

func (s *storeStub) PresignPut(ctx context.Context, key, contentType string) (string, error) {
	return s.srv.URL + "/" + key + "?X-Amz-Signature=x", nil
}

type failingPresigner struct{ storeStub }

func (f *failingPresigner) PresignPut(context.Context, string, string) (string, error) {
	return "", errors.New("no creds")
}

// acceptAnyPDF lets tests upload short stub bodies.
func acceptAnyPDF(t *testing.T) {
	t.Helper()
	orig := checkPDF
	t.Cleanup(func() { checkPDF = orig })
	checkPDF = func([]byte) error { return nil }
}

func writePDF(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func TestImporter_UploadsAndUpserts(t *testing.T) {
	acceptAnyPDF(t)
	dir := t.TempDir()
	writePDF(t, dir, "ada.pdf", "%PDF-ada")

	store := newStoreStub(t)
	regs := &fakeRegistrations{}
	imp := NewImporter(regs, store, store.srv.Client(), dir, nopLogger{})

	n, uploaded, err := imp.Import(context.Background(), []Record{
		{UserID: "u1", Name: "Ada", Resume: "ada.pdf"},
		{UserID: "u2", Name: "Bob", ResumeKey: "resumes/old.pdf"},
		{UserID: "u3", Name: "Cy"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 1, uploaded)

	require.Len(t, regs.got, 3)
	key := regs.got[0].ResumeKey
	assert.True(t, strings.HasPrefix(key, "resumes/"), key)
	assert.True(t, strings.HasSuffix(key, ".pdf"), key)
	assert.True(t, regs.got[0].HasResume)
	assert.Equal(t, "resumes/old.pdf", regs.got[1].ResumeKey)
	assert.True(t, regs.got[1].HasResume)
	assert.False(t, regs.got[2].HasResume)

	assert.Equal(t, []byte("%PDF-ada"), store.puts["/"+key])
	assert.Equal(t, "application/pdf", store.ctypes["/"+key])
}

func TestImporter_UploadFailureStopsImport(t *testing.T) {
	acceptAnyPDF(t)
	dir := t.TempDir()
	writePDF(t, dir, "ada.pdf", "%PDF")

	store := newStoreStub(t)
	store.failPut = true
	regs := &fakeRegistrations{}
	imp := NewImporter(regs, store, store.srv.Client(), dir, nopLogger{})

	_, _, err := imp.Import(context.Background(), []Record{{UserID: "u1", Resume: "ada.pdf"}})
	require.ErrorContains(t, err, "u1: upload résumé")
	assert.Nil(t, regs.got)
}

func TestImporter_Errors(t *testing.T) {
	acceptAnyPDF(t)
	dir := t.TempDir()
	writePDF(t, dir, "ada.pdf", "%PDF")
	store := newStoreStub(t)

	imp := NewImporter(&fakeRegistrations{}, store, store.srv.Client(), dir, nopLogger{})
	_, _, err := imp.Import(context.Background(), []Record{{UserID: "u1", Resume: "missing.pdf"}})
	require.ErrorContains(t, err, "u1: read résumé")

	imp = NewImporter(&fakeRegistrations{}, nil, http.DefaultClient, dir, nopLogger{})
	_, _, err = imp.Import(context.Background(), []Record{{UserID: "u1", Resume: "ada.pdf"}})
	require.ErrorContains(t, err, "needs object storage")

	imp = NewImporter(&fakeRegistrations{}, &failingPresigner{}, http.DefaultClient, dir, nopLogger{})
	_, _, err = imp.Import(context.Background(), []Record{{UserID: "u1", Resume: "ada.pdf"}})
	require.ErrorContains(t, err, "u1: presign upload: no creds")

	imp = NewImporter(&fakeRegistrations{err: errors.New("tx failed")}, store, store.srv.Client(), dir, nopLogger{})
	_, _, err = imp.Import(context.Background(), []Record{{UserID: "u1"}})
	require.EqualError(t, err, "tx failed")
}

func TestImporter_RejectsNonPDF(t *testing.T) {
	dir := t.TempDir()
	writePDF(t, dir, "notes.pdf", "just some text, not a pdf")
	store := newStoreStub(t)
	regs := &fakeRegistrations{}

	imp := NewImporter(regs, store, store.srv.Client(), dir, nopLogger{})
	_, _, err := imp.Import(context.Background(), []Record{{UserID: "u1", Resume: "notes.pdf"}})
	require.ErrorContains(t, err, "u1: notes.pdf is not a usable PDF")
	assert.Empty(t, store.puts)
	assert.Nil(t, regs.got)
}
