package client

import (
	"context"

	"github.com/dmitrijs2005/resumebook/internal/client/models"
	"github.com/dmitrijs2005/resumebook/internal/client/session"
	"github.com/dmitrijs2005/resumebook/internal/netx"
)

// Client is the API surface the console uses.
type Client interface {
	ListResumes(ctx context.Context, sess *session.Session) ([]models.Registration, error)
	ResolveDownloads(ctx context.Context, sess *session.Session, ids []string) (models.DownloadLinks, error)
	FetchFile(ctx context.Context, url string) (*netx.Attachment, error)
}
