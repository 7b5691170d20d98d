package storage

import (
	"errors"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func header(contentType string, size int64) *multipart.FileHeader {
	h := textproto.MIMEHeader{}
	h.Set("Content-Type", contentType)
	return &multipart.FileHeader{Filename: "photo", Header: h, Size: size}
}

func TestCheckFile(t *testing.T) {
	contentType, err := CheckFile(header("image/png", 1024), AllowImage...)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)

	_, err = CheckFile(header("application/pdf", 1024), AllowImage...)
	assert.True(t, errors.Is(err, ErrFileTypeNotAllowed))

	_, err = CheckFile(header("image/jpeg", MaxUploadSize+1), AllowImage...)
	assert.True(t, errors.Is(err, ErrFileTooLarge))

	_, err = CheckFile(nil)
	assert.Error(t, err)
}

func TestPublicLink(t *testing.T) {
	s := &awsS3{bucket: "culinashare", region: "ap-southeast-1"}
	assert.Equal(t, "https://culinashare.s3.ap-southeast-1.amazonaws.com/recipes/abc.png", s.GetPublicLinkKey("recipes/abc.png"))
	assert.Equal(t, ".jpg", extension("image/jpeg"))
}
