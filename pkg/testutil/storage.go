package testutil

import (
	"context"
	"fmt"

	"github.com/claimex/backend/pkg/errorx"
	"github.com/claimex/backend/pkg/storage"
)

type MockStorage struct {
	UploadFunc func(context.Context, *storage.UploadObject) (*storage.UploadResponse, error)
	DeleteFunc func(ctx context.Context, bucket, fileName string) error
}

func (m *MockStorage) Upload(
	ctx context.Context, obj *storage.UploadObject,
) (*storage.UploadResponse, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, obj)
	}

	return nil, errorx.New(errorx.NotImplemented, "Not implemented")
}

func (m *MockStorage) Delete(ctx context.Context, bucket, fileName string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, bucket, fileName)
	}

	return errorx.New(errorx.NotImplemented, "Not implemented")
}

func (m *MockStorage) PublicURL(bucket, fileName string) string {
	return fmt.Sprintf("https://storage.test/%s/%s", bucket, fileName)
}
