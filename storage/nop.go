package storage

import (
	"context"
	"errors"
	"io"
)

var ErrStorageNotConfigured = errors.New("file storage is not configured")

// nopUploader используется, когда R2 не настроен: загрузки отклоняются,
// удаление и публичные URL вырождаются в no-op.
type nopUploader struct{}

func NewNopUploader() FileUploader {
	return nopUploader{}
}

func (nopUploader) Upload(context.Context, string, string, io.Reader) (*UploadResult, error) {
	return nil, ErrStorageNotConfigured
}

func (nopUploader) Delete(context.Context, string) error {
	return nil
}

func (nopUploader) GetPublicURL(string) string {
	return ""
}
