// Package storage presigns résumé object URLs on an S3-compatible store.
//
// Two drivers are available: "s3" uses the AWS SDK presign client and
// "minio" uses minio-go. Both sign locally; no request reaches the store
// while presigning.
package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/resumebook/internal/server/config"
)

// Presigner hands out time-limited URLs for résumé objects.
type Presigner interface {
	// PresignGet returns a GET URL. When filename is not empty the store is
	// asked to answer with an attachment Content-Disposition carrying it.
	PresignGet(ctx context.Context, key, filename string) (string, error)
	// PresignPut returns a PUT URL for uploading an object.
	PresignPut(ctx context.Context, key, contentType string) (string, error)
}

// New builds the Presigner selected by cfg.StorageDriver.
func New(ctx context.Context, cfg *config.Config) (Presigner, error) {
	switch cfg.StorageDriver {
	case config.StorageS3, "":
		return NewS3Presigner(ctx, cfg)
	case config.StorageMinio:
		return NewMinioPresigner(cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// ContentDisposition is the attachment header value for filename.
func ContentDisposition(filename string) string {
	filename = strings.NewReplacer(`"`, "", "\r", "", "\n", "").Replace(filename)
	return fmt.Sprintf(`attachment; filename="%s"`, filename)
}

// ResumeFilename is the download name of a résumé.
func ResumeFilename(name string) string {
	name = strings.Join(strings.Fields(name), "_")
	if name == "" {
		name = "Unknown"
	}
	return name + "_Resume.pdf"
}

// NewObjectKey returns a fresh, date-partitioned key for a user's résumé.
func NewObjectKey(userID string) string {
	d := time.Now().UTC()
	return fmt.Sprintf("resumes/%d/%02d/%02d/%s-%v.pdf", d.Year(), d.Month(), d.Day(), url.PathEscape(userID), uuid.New())
}

// splitEndpoint turns a base endpoint URL into host[:port] and a TLS flag.
func splitEndpoint(endpoint string) (string, bool, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", false, fmt.Errorf("parse endpoint: %w", err)
	}
	if u.Host == "" {
		return "", false, fmt.Errorf("endpoint %q has no host", endpoint)
	}
	return u.Host, u.Scheme == "https", nil
}
