package common_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"regexp"
	"testing"
	"time"

	"github.com/claimex/backend/internal/common"
	"github.com/claimex/backend/internal/model"
	"github.com/claimex/backend/pkg/errorx"
	"github.com/claimex/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}

	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestUploadName(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	require.Equal(t, "airdrop-1700000000123.png", common.UploadName("airdrop", "png", now))
}

func TestProcessImage(t *testing.T) {
	ctx := testutil.MockContext()

	obj, err := common.ProcessImage(ctx, "community-images", "post", &model.Image{
		Name: "cover.PNG",
		Data: pngBytes(t, 1024, 512),
	})
	require.NoError(t, err)
	require.Equal(t, "community-images", obj.Bucket)
	require.Equal(t, "image/png", obj.Mime)
	require.Regexp(t, regexp.MustCompile(`^post-\d+\.png$`), obj.FileName)

	decoded, err := png.Decode(bytes.NewReader(obj.Data))
	require.NoError(t, err)
	require.LessOrEqual(t, decoded.Bounds().Dx(), 256)
	require.LessOrEqual(t, decoded.Bounds().Dy(), 256)
}

func TestProcessImage_Invalid(t *testing.T) {
	ctx := testutil.MockContext()

	_, err := common.ProcessImage(ctx, "airdrop-images", "airdrop", &model.Image{
		Name: "a.txt",
		Data: []byte("not an image"),
	})
	require.ErrorIs(t, err, errorx.New(errorx.BadRequest, ""))
}

func TestClampLimit(t *testing.T) {
	ctx := testutil.MockContext()

	require.Equal(t, 0, common.ClampLimit(ctx, 0))
	require.Equal(t, 5, common.ClampLimit(ctx, 5))
	require.Equal(t, 50, common.ClampLimit(ctx, 1000))
}
