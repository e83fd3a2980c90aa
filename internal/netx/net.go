// Package netx holds plain-HTTP helpers for presigned object-storage URLs.
package netx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
)

// DefaultFilename is used when a response carries no usable
// Content-Disposition filename.
const DefaultFilename = "downloaded-file"

var filenamePattern = regexp.MustCompile(`filename="(.+)"`)

// StatusError reports a non-2xx answer from a presigned URL.
type StatusError struct {
	Op     string
	Status string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s failed: %s", e.Op, e.Status)
	}
	return fmt.Sprintf("%s failed: %s; body: %s", e.Op, e.Status, e.Body)
}

// Attachment is a downloaded file payload.
type Attachment struct {
	Name        string
	ContentType string
	Body        []byte
}

// FilenameFromDisposition extracts the quoted filename from a
// Content-Disposition header value. It returns DefaultFilename when the
// header is empty or has no quoted filename.
func FilenameFromDisposition(header string) string {
	m := filenamePattern.FindStringSubmatch(header)
	if len(m) != 2 {
		return DefaultFilename
	}
	return m[1]
}

// Download fetches url and returns its body together with the filename
// announced by the server.
func Download(ctx context.Context, client *http.Client, url string) (*Attachment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{Op: "download", Status: resp.Status, Code: resp.StatusCode, Body: string(b)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &Attachment{
		Name:        FilenameFromDisposition(resp.Header.Get("Content-Disposition")),
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

// Upload PUTs data to a presigned URL.
func Upload(ctx context.Context, client *http.Client, url, contentType string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Op: "upload", Status: resp.Status, Code: resp.StatusCode, Body: string(b)}
	}
	return nil
}
