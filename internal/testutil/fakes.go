package testutil

import (
	"CulinaShare-Backend/internal/utils/storage"
	"context"
	"mime/multipart"
	"net/textproto"
	"sync"
)

// FakeS3 records uploads in memory.
type FakeS3 struct {
	mu      sync.Mutex
	Uploads []string
}

func (f *FakeS3) UploadFile(_ context.Context, fileName string, file *multipart.FileHeader, folder string, allowedTypes ...string) (string, error) {
	if _, err := storage.CheckFile(file, allowedTypes...); err != nil {
		return "", err
	}
	key := folder + "/" + fileName
	f.mu.Lock()
	f.Uploads = append(f.Uploads, key)
	f.mu.Unlock()
	return key, nil
}

func (f *FakeS3) GetPublicLinkKey(objectKey string) string {
	return "https://cdn.culinashare.test/" + objectKey
}

// ImageHeader builds an upload header with the given content type.
func ImageHeader(contentType string) *multipart.FileHeader {
	h := textproto.MIMEHeader{}
	h.Set("Content-Type", contentType)
	return &multipart.FileHeader{Filename: "upload", Header: h, Size: 1024}
}

type SentMail struct {
	To      string
	Subject string
	Body    string
}

// FakeMailer captures outgoing mail.
type FakeMailer struct {
	mu   sync.Mutex
	Sent []SentMail
}

func (f *FakeMailer) SendMail(toEmail string, subject string, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sent = append(f.Sent, SentMail{To: toEmail, Subject: subject, Body: body})
	return nil
}
