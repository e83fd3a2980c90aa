package storage

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/dmitrijs2005/resumebook/internal/server/config"
)

// MinioPresigner presigns with minio-go. The region is fixed from config so
// presigning never has to look up the bucket location.
type MinioPresigner struct {
	client *minio.Client
	bucket string
	expiry time.Duration
}

func NewMinioPresigner(c *config.Config) (*MinioPresigner, error) {
	if c.S3Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}
	host, secure, err := splitEndpoint(c.S3BaseEndpoint)
	if err != nil {
		return nil, err
	}

	cli, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(c.S3RootUser, c.S3RootPassword, ""),
		Secure: secure,
		Region: c.S3Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &MinioPresigner{client: cli, bucket: c.S3Bucket, expiry: c.PresignExpiry}, nil
}

func (p *MinioPresigner) PresignGet(ctx context.Context, key, filename string) (string, error) {
	params := url.Values{}
	if filename != "" {
		params.Set("response-content-disposition", ContentDisposition(filename))
		params.Set("response-content-type", "application/pdf")
	}
	u, err := p.client.PresignedGetObject(ctx, p.bucket, key, p.expiry, params)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// PresignPut ignores contentType: minio-go does not sign it into PUT URLs.
func (p *MinioPresigner) PresignPut(ctx context.Context, key, contentType string) (string, error) {
	u, err := p.client.PresignedPutObject(ctx, p.bucket, key, p.expiry)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
