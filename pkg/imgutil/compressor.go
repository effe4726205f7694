package imgutil

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/png"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// DefaultJPEGQuality は最終的な広告画像の JPEG 品質です。
const DefaultJPEGQuality = 95

// Decode は画像データ（PNG, GIF, JPEG, WebP）をデコードします。
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("画像データが空です")
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("画像のデコードに失敗しました: %w", err)
	}
	return img, nil
}

// EncodeJPEG は画像を指定品質の JPEG にエンコードします。
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("JPEGエンコードに失敗しました: %w", err)
	}
	return buf.Bytes(), nil
}

// CompressToJPEG は画像データ（PNG, GIF, JPEG, WebP）をJPEG形式に変換します。
func CompressToJPEG(data []byte, quality int) ([]byte, error) {
	img, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return EncodeJPEG(img, quality)
}

// DetectMimeType はバイト列の先頭から MIME タイプを判定します。
func DetectMimeType(data []byte) string {
	return http.DetectContentType(data)
}

// IsImage はバイト列が画像として認識できるかを返します。
func IsImage(data []byte) bool {
	return len(data) > 0 && strings.HasPrefix(DetectMimeType(data), "image/")
}

// IsJPEG はバイト列が JPEG かどうかを返します。
func IsJPEG(data []byte) bool {
	return DetectMimeType(data) == "image/jpeg"
}

// EnsureJPEG は JPEG 以外の画像を JPEG に変換します。変換できない場合は元のデータを返します。
func EnsureJPEG(data []byte, quality int) ([]byte, string) {
	if IsJPEG(data) {
		return data, "image/jpeg"
	}
	converted, err := CompressToJPEG(data, quality)
	if err != nil {
		return data, DetectMimeType(data)
	}
	return converted, "image/jpeg"
}
