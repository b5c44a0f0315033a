package common

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/claimex/backend/internal/model"
	"github.com/claimex/backend/pkg/errorx"
	"github.com/claimex/backend/pkg/storage"
	"github.com/claimex/backend/pkg/xcontext"
	"github.com/nfnt/resize"
)

// UploadName returns the object name of an upload, {prefix}-{unix-millis}.{ext}.
func UploadName(prefix, ext string, now time.Time) string {
	return fmt.Sprintf("%s-%d.%s", prefix, now.UnixMilli(), ext)
}

// ProcessImage validates an inline image and shrinks it so that neither side
// exceeds the configured maximum. The returned object is ready to upload.
func ProcessImage(ctx context.Context, bucket, prefix string, img *model.Image) (*storage.UploadObject, error) {
	cfg := xcontext.Configs(ctx).File
	if cfg.MaxSize > 0 && int64(len(img.Data)) > cfg.MaxSize {
		return nil, errorx.New(errorx.BadRequest, "Image is too large")
	}

	mime := http.DetectContentType(img.Data)
	decoded, err := decodeImg(mime, bytes.NewReader(img.Data))
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid image: %v", err)
	}

	if side := uint(cfg.MaxImageSide); side > 0 {
		decoded = resize.Thumbnail(side, side, decoded, resize.Lanczos3)
	}

	b, err := encodeImg(mime, decoded)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot encode image: %v", err)
		return nil, errorx.Unknown
	}

	return &storage.UploadObject{
		Bucket:   bucket,
		FileName: UploadName(prefix, imageExt(img.Name, mime), time.Now()),
		Mime:     mime,
		Data:     b,
	}, nil
}

func imageExt(name, mime string) string {
	if ext := strings.TrimPrefix(filepath.Ext(name), "."); ext != "" {
		return strings.ToLower(ext)
	}

	return strings.TrimPrefix(mime, "image/")
}

func decodeImg(mime string, data *bytes.Reader) (image.Image, error) {
	switch mime {
	case "image/jpeg":
		return jpeg.Decode(data)
	case "image/png":
		return png.Decode(data)
	case "image/gif":
		return gif.Decode(data)
	default:
		return nil, fmt.Errorf("only jpeg, gif or png is accepted")
	}
}

func encodeImg(mime string, img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)

	var err error
	switch mime {
	case "image/jpeg":
		err = jpeg.Encode(buf, img, nil)
	case "image/png":
		err = png.Encode(buf, img)
	case "image/gif":
		err = gif.Encode(buf, img, nil)
	default:
		return nil, fmt.Errorf("only jpeg, gif or png is accepted")
	}
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
