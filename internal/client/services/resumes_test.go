package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/resumebook/internal/client/book"
	"github.com/dmitrijs2005/resumebook/internal/client/client"
	"github.com/dmitrijs2005/resumebook/internal/client/models"
	"github.com/dmitrijs2005/resumebook/internal/client/session"
	"github.com/dmitrijs2005/resumebook/internal/logging"
	"github.com/dmitrijs2005/resumebook/internal/netx"
)

type fakeClient struct {
	regs    []models.Registration
	listErr error

	links      models.DownloadLinks
	resolveErr error
	resolved   [][]string

	files    map[string]*netx.Attachment
	fetchErr map[string]error
	fetched  []string

	gotSession *session.Session
}

func (f *fakeClient) ListResumes(ctx context.Context, sess *session.Session) ([]models.Registration, error) {
	f.gotSession = sess
	return f.regs, f.listErr
}

func (f *fakeClient) ResolveDownloads(ctx context.Context, sess *session.Session, ids []string) (models.DownloadLinks, error) {
	f.gotSession = sess
	f.resolved = append(f.resolved, append([]string(nil), ids...))
	return f.links, f.resolveErr
}

func (f *fakeClient) FetchFile(ctx context.Context, url string) (*netx.Attachment, error) {
	f.fetched = append(f.fetched, url)
	if err := f.fetchErr[url]; err != nil {
		return nil, err
	}
	return f.files[url], nil
}

var _ client.Client = (*fakeClient)(nil)

func TestRefresh_MergesIntoBook(t *testing.T) {
	fc := &fakeClient{regs: []models.Registration{
		{UserID: "1", Name: "Ada", Major: "CS", Graduation: "2024"},
		{UserID: "2", Name: "Linus", Major: "EE", Graduation: "2023"},
	}}
	svc := NewResumeService(fc, t.TempDir(), logging.Nop())
	b := book.New(800)
	sess := session.New("tok")

	n, err := svc.Refresh(context.Background(), sess, b)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Same(t, sess, fc.gotSession)

	all := b.All()
	require.Len(t, all, 2)
	assert.Equal(t, models.PlaceholderImageURL, all[0].ImageURL)
	assert.Equal(t, "2024", all[0].GraduationYear)

	_, err = svc.Refresh(context.Background(), sess, b)
	require.NoError(t, err)
	assert.Len(t, b.All(), 2, "refetch must not duplicate")
}

func TestRefresh_FailureLeavesStateAndNotifies(t *testing.T) {
	fc := &fakeClient{regs: []models.Registration{{UserID: "1", Name: "Ada"}}}
	svc := NewResumeService(fc, t.TempDir(), logging.Nop())
	b := book.New(800)

	_, err := svc.Refresh(context.Background(), session.New("tok"), b)
	require.NoError(t, err)

	authErr := &client.StatusError{Code: 401}
	fc.listErr = authErr
	_, err = svc.Refresh(context.Background(), session.New("expired"), b)

	var ne *NotifyError
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, "Error request failed with status code 401: Failed to fetch resumes - please sign in again", ne.Msg)
	assert.ErrorIs(t, err, authErr)
	assert.Len(t, b.All(), 1)
}

func TestDownload_SingleLink(t *testing.T) {
	dir := t.TempDir()
	fc := &fakeClient{
		links: models.SingleLink("https://x/y.pdf"),
		files: map[string]*netx.Attachment{
			"https://x/y.pdf": {Name: "Ada_Resume.pdf", Body: []byte("pdf")},
		},
	}
	svc := NewResumeService(fc, dir, logging.Nop())

	rep, err := svc.Download(context.Background(), session.New("tok"), []string{"1"})
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"1"}}, fc.resolved)
	assert.Equal(t, []string{"https://x/y.pdf"}, fc.fetched)
	assert.Equal(t, models.Single, rep.Kind)
	require.Equal(t, []string{filepath.Join(dir, "Ada_Resume.pdf")}, rep.Saved)
	assert.Empty(t, rep.Failures)

	b, err := os.ReadFile(rep.Saved[0])
	require.NoError(t, err)
	assert.Equal(t, "pdf", string(b))
}

func TestDownload_ManyLinks_IndependentFailures(t *testing.T) {
	dir := t.TempDir()
	fc := &fakeClient{
		links: models.ManyLinks("a", "b", "c"),
		files: map[string]*netx.Attachment{
			"a": {Name: netx.DefaultFilename, Body: []byte("A")},
			"c": {Name: netx.DefaultFilename, Body: []byte("C")},
		},
		fetchErr: map[string]error{"b": errors.New("403 expired")},
	}
	svc := NewResumeService(fc, dir, logging.Nop())

	rep, err := svc.Download(context.Background(), session.New("tok"), []string{"1", "2", "3"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, fc.fetched, "sequential, in response order")
	assert.Equal(t, models.Many, rep.Kind)
	assert.Equal(t, []string{
		filepath.Join(dir, "downloaded-file"),
		filepath.Join(dir, "downloaded-file (1)"),
	}, rep.Saved)

	require.Len(t, rep.Failures, 1)
	assert.Equal(t, "b", rep.Failures[0].URL)
	assert.Equal(t, "Failed to download resume. Please try again later.", rep.Failures[0].Err.Error())
	assert.ErrorContains(t, rep.Failures[0].Err.Err, "403 expired")
}

func TestDownload_ResolveFailure(t *testing.T) {
	fc := &fakeClient{resolveErr: client.ErrUnavailable}
	svc := NewResumeService(fc, t.TempDir(), logging.Nop())

	rep, err := svc.Download(context.Background(), session.New("tok"), []string{"1", "2"})
	require.Nil(t, rep)

	var ne *NotifyError
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, "Error server unavailable: Failed to download resumes. Please try again later.", ne.Msg)
	assert.ErrorIs(t, err, client.ErrUnavailable)
	assert.Empty(t, fc.fetched)
}

func TestDownload_NothingSelected(t *testing.T) {
	fc := &fakeClient{}
	svc := NewResumeService(fc, t.TempDir(), logging.Nop())

	_, err := svc.Download(context.Background(), session.New("tok"), nil)
	require.ErrorIs(t, err, ErrNothingSelected)
	assert.Empty(t, fc.resolved)
}

func TestDownload_SaveFailureIsPerFile(t *testing.T) {
	fc := &fakeClient{
		links: models.ManyLinks("a", "b"),
		files: map[string]*netx.Attachment{
			"a": {Name: "..", Body: []byte("A")},
			"b": {Name: "ok.pdf", Body: []byte("B")},
		},
	}
	dir := t.TempDir()
	svc := NewResumeService(fc, dir, logging.Nop())

	rep, err := svc.Download(context.Background(), session.New("tok"), []string{"1", "2"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "ok.pdf")}, rep.Saved)
	require.Len(t, rep.Failures, 1)
	assert.Equal(t, "a", rep.Failures[0].URL)
}

func TestDownload_DirUnavailable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	fc := &fakeClient{}
	svc := NewResumeService(fc, filepath.Join(blocker, "sub"), logging.Nop())

	_, err := svc.Download(context.Background(), session.New("tok"), []string{"1"})
	var ne *NotifyError
	require.True(t, errors.As(err, &ne))
	assert.Contains(t, ne.Msg, "Failed to download resumes. Please try again later.")
	assert.Empty(t, fc.resolved)
}
