package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/resumebook/internal/client/models"
	"github.com/dmitrijs2005/resumebook/internal/client/session"
	"github.com/dmitrijs2005/resumebook/internal/common"
	"github.com/dmitrijs2005/resumebook/internal/netx"
)

const maxErrorBody = 1024

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient returns a client for the API rooted at baseURL, e.g.
// "https://api.example.org". A zero timeout disables the per-request limit.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api base: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api base %q must be an http(s) URL", baseURL)
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// ListResumes posts the fixed résumé filter and decodes the registration
// array.
func (c *HTTPClient) ListResumes(ctx context.Context, sess *session.Session) ([]models.Registration, error) {
	body, err := json.Marshal(models.ResumeFilterRequest())
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/registration/filter", sess, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var regs []models.Registration
	if err := c.do(req, &regs); err != nil {
		return nil, err
	}
	return regs, nil
}

// ResolveDownloads asks for presigned URLs of the given users' résumés.
// All IDs travel in one comma-joined path segment.
func (c *HTTPClient) ResolveDownloads(ctx context.Context, sess *session.Session, ids []string) (models.DownloadLinks, error) {
	escaped := make([]string, 0, len(ids))
	for _, id := range ids {
		escaped = append(escaped, url.PathEscape(id))
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/s3/download/user/"+strings.Join(escaped, ","), sess, nil)
	if err != nil {
		return models.DownloadLinks{}, err
	}

	var links models.DownloadLinks
	if err := c.do(req, &links); err != nil {
		return models.DownloadLinks{}, err
	}
	return links, nil
}

// FetchFile downloads a presigned URL. The session is deliberately not
// attached: the signature in the URL is the credential.
func (c *HTTPClient) FetchFile(ctx context.Context, url string) (*netx.Attachment, error) {
	return netx.Download(ctx, c.http, url)
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, sess *session.Session, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if sess != nil && sess.Token != "" {
		req.Header.Set(common.AuthorizationHeader, sess.Token)
	}
	return req, nil
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return mapError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return newStatusError(resp.StatusCode, string(b))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", req.Method, req.URL.Path, err)
	}
	return nil
}
