package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMinioPresigner_Validation(t *testing.T) {
	c := testConfig("minio")
	c.S3Bucket = ""
	_, err := NewMinioPresigner(c)
	require.ErrorContains(t, err, "bucket is required")

	c = testConfig("minio")
	c.S3BaseEndpoint = "no-scheme:9000"
	_, err = NewMinioPresigner(c)
	require.Error(t, err)
}

func TestMinioPresigner_PresignGet(t *testing.T) {
	p, err := NewMinioPresigner(testConfig("minio"))
	require.NoError(t, err)

	raw, err := p.PresignGet(context.Background(), "2024/u1.pdf", "Ada_Resume.pdf")
	require.NoError(t, err)

	q := assertPresigned(t, raw, "2024/u1.pdf")
	assert.Equal(t, `attachment; filename="Ada_Resume.pdf"`, q.Get("response-content-disposition"))
	assert.Equal(t, "application/pdf", q.Get("response-content-type"))
}

func TestMinioPresigner_PresignPut(t *testing.T) {
	p, err := NewMinioPresigner(testConfig("minio"))
	require.NoError(t, err)

	raw, err := p.PresignPut(context.Background(), "k.pdf", "application/pdf")
	require.NoError(t, err)
	assertPresigned(t, raw, "k.pdf")
}
