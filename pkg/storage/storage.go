package storage

import "context"

type Storage interface {
	Upload(context.Context, *UploadObject) (*UploadResponse, error)
	Delete(ctx context.Context, bucket, fileName string) error
	PublicURL(bucket, fileName string) string
}

type UploadObject struct {
	Bucket   string
	FileName string
	Mime     string
	Data     []byte
}

type UploadResponse struct {
	Url      string
	FileName string
}
