package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/resumebook/internal/client/book"
	"github.com/dmitrijs2005/resumebook/internal/client/client"
	"github.com/dmitrijs2005/resumebook/internal/client/models"
	"github.com/dmitrijs2005/resumebook/internal/client/session"
	"github.com/dmitrijs2005/resumebook/internal/filex"
	"github.com/dmitrijs2005/resumebook/internal/logging"
)

// ResumeService fetches the book and downloads résumé files.
type ResumeService interface {
	// Refresh lists the résumés and merges them into b. On failure b is
	// left untouched and a *NotifyError is returned.
	Refresh(ctx context.Context, sess *session.Session, b *book.Book) (int, error)
	// Download resolves ids in one call and then fetches and saves each
	// URL in order. Per-file failures are collected in the report and do
	// not stop the batch; files already saved are kept.
	Download(ctx context.Context, sess *session.Session, ids []string) (*DownloadReport, error)
}

// DownloadReport describes one batch download.
type DownloadReport struct {
	Kind     models.LinkKind
	Saved    []string
	Failures []*FileFailure
}

// FileFailure is one URL of a batch that could not be fetched or saved.
type FileFailure struct {
	URL string
	Err *NotifyError
}

type resumeService struct {
	client      client.Client
	downloadDir string
	logger      logging.Logger
}

func NewResumeService(c client.Client, downloadDir string, logger logging.Logger) ResumeService {
	return &resumeService{client: c, downloadDir: downloadDir, logger: logger}
}

func (s *resumeService) Refresh(ctx context.Context, sess *session.Session, b *book.Book) (int, error) {
	regs, err := s.client.ListResumes(ctx, sess)
	if err != nil {
		s.logger.Error(ctx, "list resumes failed", "error", err)
		return 0, fetchFailed(err)
	}

	rs := make([]models.Resume, 0, len(regs))
	for _, r := range regs {
		rs = append(rs, r.ToResume())
	}
	b.Merge(rs)

	s.logger.Info(ctx, "resumes fetched", "count", len(rs))
	return len(rs), nil
}

func (s *resumeService) Download(ctx context.Context, sess *session.Session, ids []string) (*DownloadReport, error) {
	if len(ids) == 0 {
		return nil, ErrNothingSelected
	}

	dir, err := filex.EnsureDir(s.downloadDir)
	if err != nil {
		s.logger.Error(ctx, "download dir unavailable", "dir", s.downloadDir, "error", err)
		return nil, resolveFailed(err)
	}

	links, err := s.client.ResolveDownloads(ctx, sess, ids)
	if err != nil {
		s.logger.Error(ctx, "resolve downloads failed", "ids", len(ids), "error", err)
		return nil, resolveFailed(err)
	}

	s.logger.Debug(ctx, "download links resolved", "kind", links.Kind.String(), "count", links.Len())

	report := &DownloadReport{Kind: links.Kind}
	for _, u := range links.URLs() {
		path, err := s.fetchOne(ctx, dir, u)
		if err != nil {
			s.logger.Warn(ctx, "resume download failed", "error", err)
			report.Failures = append(report.Failures, &FileFailure{URL: u, Err: downloadFailed(err)})
			continue
		}
		s.logger.Info(ctx, "resume saved", "path", path)
		report.Saved = append(report.Saved, path)
	}
	return report, nil
}

func (s *resumeService) fetchOne(ctx context.Context, dir, url string) (string, error) {
	att, err := s.client.FetchFile(ctx, url)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	path, err := filex.SaveUnique(dir, att.Name, att.Body)
	if err != nil {
		return "", fmt.Errorf("save %q: %w", att.Name, err)
	}
	return path, nil
}
