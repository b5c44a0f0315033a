package domain

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"unicode"

	"github.com/claimex/backend/internal/common"
	"github.com/claimex/backend/internal/model"
	"github.com/claimex/backend/pkg/errorx"
	"github.com/claimex/backend/pkg/storage"
	"github.com/claimex/backend/pkg/xcontext"
	"gorm.io/gorm"
)

func storeError(ctx context.Context, err error, action, name string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.New(errorx.NotFound, "Not found %s", name)
	}

	xcontext.Logger(ctx).Errorf("Cannot %s %s: %v", action, name, err)
	return errorx.Unknown
}

// uploadImage stores an inline image and returns the uploaded object so the
// caller can remove it if a later step fails.
func uploadImage(
	ctx context.Context, s storage.Storage, bucket, prefix string, img *model.Image,
) (*storage.UploadObject, string, error) {
	obj, err := common.ProcessImage(ctx, bucket, prefix, img)
	if err != nil {
		return nil, "", err
	}

	resp, err := s.Upload(ctx, obj)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upload image: %v", err)
		return nil, "", errorx.New(errorx.Internal, "Cannot upload image")
	}

	return obj, resp.Url, nil
}

// discardUpload removes an object whose row could not be inserted.
func discardUpload(ctx context.Context, s storage.Storage, obj *storage.UploadObject) {
	if obj == nil {
		return
	}

	if err := s.Delete(ctx, obj.Bucket, obj.FileName); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete orphan object %s/%s: %v", obj.Bucket, obj.FileName, err)
	}
}

// leadingInt parses the integer at the start of s, like "14 days" or "5d".
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	for end < len(s) {
		c := s[end]
		if (c >= '0' && c <= '9') || (end == 0 && (c == '-' || c == '+')) {
			end++
			continue
		}
		break
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}

	return n, true
}

// avatarOf returns the two leading letters of name, upper-cased.
func avatarOf(name string) string {
	runes := []rune(strings.TrimSpace(name))
	if len(runes) > 2 {
		runes = runes[:2]
	}

	return strings.ToUpper(string(runes))
}
