package overlay

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontConfig は外部 TrueType フォントのパスです。空の場合は埋め込みフォントを使います。
type FontConfig struct {
	TitlePath string // タイトル、価格、CTA に使う太字フォント
	BodyPath  string // サブタイトルに使う本文フォント
}

// Fonts は解析済みのフォントを保持します。
// font.Face は並行利用できないため、描画ごとに faceFor で生成します。
type Fonts struct {
	bold    *opentype.Font
	regular *opentype.Font
}

// LoadFonts は設定されたフォント、埋め込みの Go フォントの順に読み込みます。
// どちらも使えない場合はビットマップフォントで描画します。
func LoadFonts(cfg FontConfig) *Fonts {
	return &Fonts{
		bold:    loadFont(cfg.TitlePath, gobold.TTF),
		regular: loadFont(cfg.BodyPath, goregular.TTF),
	}
}

func loadFont(path string, embedded []byte) *opentype.Font {
	if path != "" {
		f, err := parseFontFile(path)
		if err == nil {
			return f
		}
		slog.Warn("フォントの読み込みに失敗したため埋め込みフォントを使用します", "path", path, "error", err)
	}
	f, err := opentype.Parse(embedded)
	if err != nil {
		slog.Warn("埋め込みフォントの解析に失敗しました", "error", err)
		return nil
	}
	return f
}

func parseFontFile(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("フォントファイルの読み込みに失敗しました: %w", err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("フォントの解析に失敗しました: %w", err)
	}
	return f, nil
}

// faceFor は指定サイズの Face を返します。
func (f *Fonts) faceFor(bold bool, size float64) font.Face {
	src := f.regular
	if bold {
		src = f.bold
	}
	if src == nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		slog.Warn("フォントフェイスの生成に失敗しました", "size", size, "error", err)
		return basicfont.Face7x13
	}
	return face
}
