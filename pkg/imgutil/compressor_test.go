package imgutil

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture はグラデーション模様のテスト画像を指定フォーマットで生成するヘルパー
func fixture(t *testing.T, format string, size int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 255 / size), G: uint8(y * 255 / size), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	switch format {
	case "png":
		require.NoError(t, png.Encode(&buf, img))
	case "jpeg":
		require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	default:
		t.Fatalf("unsupported format: %s", format)
	}
	return buf.Bytes()
}

func TestCompressToJPEG(t *testing.T) {
	t.Run("正常なPNG画像をJPEGに圧縮できること", func(t *testing.T) {
		pngData := fixture(t, "png", 32)

		got, err := CompressToJPEG(pngData, 75)
		require.NoError(t, err)
		require.NotEmpty(t, got)

		_, format, err := image.Decode(bytes.NewReader(got))
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
	})

	t.Run("不正なデータを与えた場合にエラーを返すこと", func(t *testing.T) {
		_, err := CompressToJPEG([]byte("this is not an image"), 75)
		assert.Error(t, err)
	})

	t.Run("Quality設定によってサイズが変化すること", func(t *testing.T) {
		input := fixture(t, "png", 32)

		highQuality, _ := CompressToJPEG(input, 100)
		lowQuality, _ := CompressToJPEG(input, 10)

		assert.Less(t, len(lowQuality), len(highQuality))
	})
}

func TestEnsureJPEG(t *testing.T) {
	t.Run("JPEGはそのまま返すこと", func(t *testing.T) {
		in := fixture(t, "jpeg", 32)
		out, mime := EnsureJPEG(in, DefaultJPEGQuality)
		assert.Equal(t, in, out)
		assert.Equal(t, "image/jpeg", mime)
	})

	t.Run("PNGはJPEGに変換されること", func(t *testing.T) {
		out, mime := EnsureJPEG(fixture(t, "png", 32), DefaultJPEGQuality)
		assert.True(t, IsJPEG(out))
		assert.Equal(t, "image/jpeg", mime)
	})

	t.Run("画像でなければ元データを返すこと", func(t *testing.T) {
		in := []byte("plain text")
		out, _ := EnsureJPEG(in, DefaultJPEGQuality)
		assert.Equal(t, in, out)
	})
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage(fixture(t, "png", 32)))
	assert.False(t, IsImage([]byte("hello")))
	assert.False(t, IsImage(nil))
}

func TestDecode(t *testing.T) {
	t.Run("PNGとJPEGをデコードできること", func(t *testing.T) {
		for _, format := range []string{"png", "jpeg"} {
			img, err := Decode(fixture(t, format, 24))
			require.NoError(t, err, format)
			assert.Equal(t, 24, img.Bounds().Dx(), format)
		}
	})

	t.Run("壊れたデータはエラーになること", func(t *testing.T) {
		_, err := Decode([]byte{0x89, 'P', 'N', 'G'})
		assert.Error(t, err)
	})
}

func TestDetectMimeType(t *testing.T) {
	assert.Equal(t, "image/png", DetectMimeType(fixture(t, "png", 8)))
	assert.Equal(t, "image/jpeg", DetectMimeType(fixture(t, "jpeg", 8)))
	assert.True(t, IsJPEG(fixture(t, "jpeg", 8)))
	assert.False(t, IsJPEG(fixture(t, "png", 8)))
}
