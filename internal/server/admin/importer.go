package admin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/ledongthuc/pdf"

	"github.com/dmitrijs2005/resumebook/internal/logging"
	"github.com/dmitrijs2005/resumebook/internal/netx"
	"github.com/dmitrijs2005/resumebook/internal/server/models"
	"github.com/dmitrijs2005/resumebook/internal/server/storage"
)

const pdfContentType = "application/pdf"

// checkPDF rejects files that do not parse as a PDF with at least one page.
// The parser panics on some malformed input, hence the recover.
var checkPDF = func(data []byte) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("malformed pdf: %v", p)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return err
	}
	if r.NumPage() == 0 {
		return errors.New("pdf has no pages")
	}
	return nil
}

type RegistrationImporter interface {
	Import(ctx context.Context, regs []*models.Registration) error
}

// Importer uploads résumé files and then upserts the registrations in one
// transaction. Uploaded objects are not removed when the upsert fails.
type Importer struct {
	registrations RegistrationImporter
	presigner     storage.Presigner
	http          *http.Client
	resumeDir     string
	logger        logging.Logger
}

func NewImporter(r RegistrationImporter, p storage.Presigner, c *http.Client, resumeDir string, l logging.Logger) *Importer {
	return &Importer{registrations: r, presigner: p, http: c, resumeDir: resumeDir, logger: l}
}

// Import returns the number of registrations written and how many of them
// got a freshly uploaded résumé.
func (i *Importer) Import(ctx context.Context, recs []Record) (int, int, error) {
	regs := make([]*models.Registration, 0, len(recs))
	uploaded := 0

	for _, rec := range recs {
		key := rec.ResumeKey
		if rec.Resume != "" {
			k, err := i.upload(ctx, rec)
			if err != nil {
				return 0, uploaded, err
			}
			key = k
			uploaded++
		}
		regs = append(regs, rec.toModel(key))
	}

	if err := i.registrations.Import(ctx, regs); err != nil {
		return 0, uploaded, err
	}
	return len(regs), uploaded, nil
}

func (i *Importer) upload(ctx context.Context, rec Record) (string, error) {
	if i.presigner == nil {
		return "", fmt.Errorf("%s: résumé upload needs object storage", rec.UserID)
	}

	path := rec.Resume
	if !filepath.IsAbs(path) {
		path = filepath.Join(i.resumeDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%s: read résumé: %w", rec.UserID, err)
	}
	if err := checkPDF(data); err != nil {
		return "", fmt.Errorf("%s: %s is not a usable PDF: %w", rec.UserID, rec.Resume, err)
	}

	key := storage.NewObjectKey(rec.UserID)
	url, err := i.presigner.PresignPut(ctx, key, pdfContentType)
	if err != nil {
		return "", fmt.Errorf("%s: presign upload: %w", rec.UserID, err)
	}
	if err := netx.Upload(ctx, i.http, url, pdfContentType, data); err != nil {
		return "", fmt.Errorf("%s: upload résumé: %w", rec.UserID, err)
	}

	i.logger.Info(ctx, "résumé uploaded", "user_id", rec.UserID, "key", key, "bytes", len(data))
	return key, nil
}
