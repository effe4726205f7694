package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"

	"golang.org/x/image/font"

	"github.com/shouni/gemini-ad-kit/pkg/domain"
	"github.com/shouni/gemini-ad-kit/pkg/imgutil"
	"github.com/shouni/gemini-ad-kit/pkg/utils"
)

const (
	// Subtitle はタイトル下に描くキャッチコピーです。
	Subtitle = "Diseño único y funcional"
	// CallToAction はボタンに描く行動喚起の文言です。
	CallToAction = "¡COMPRA AHORA!"

	maxTitleRunes = 60
	maxTitleLines = 2
	margin        = 20

	topBandHeight    = 140
	bottomBandHeight = 180
	bandPeakAlpha    = 160

	titleSize    = 52
	subtitleSize = 38
	priceSize    = 95
	ctaSize      = 48

	titleTop        = 25
	titleLineHeight = 55
	subtitleGap     = 10
	priceFromBottom = 150

	buttonPadding    = 15
	buttonRightInset = 40
	buttonFromBottom = 100
	buttonOutline    = 3
)

var (
	titleColor    = color.White
	subtitleColor = color.RGBA{0xE0, 0xE0, 0xE0, 0xFF}
	priceColor    = color.RGBA{0xFF, 0xD7, 0x00, 0xFF}
	buttonColor   = color.RGBA{0xFF, 0x6B, 0x35, 0xFF}
	strokeColor   = color.Black
)

// TextRenderer は生成画像に広告テキストを合成する契約です。
type TextRenderer interface {
	Render(data []byte, p domain.Product) []byte
}

// Renderer は商品タイトル、価格、CTA を画像に重ねて描画します。
// 保持するフォントは読み取り専用で、並行に Render を呼び出せます。
type Renderer struct {
	fonts   *Fonts
	quality int
}

// NewRenderer は Renderer を生成します。fonts が nil の場合は埋め込みフォントを使います。
func NewRenderer(fonts *Fonts) *Renderer {
	if fonts == nil {
		fonts = LoadFonts(FontConfig{})
	}
	return &Renderer{fonts: fonts, quality: imgutil.DefaultJPEGQuality}
}

// Render はテキストを合成した JPEG を返します。
// どの段階で失敗しても元の画像データをそのまま返します。
func (r *Renderer) Render(data []byte, p domain.Product) (out []byte) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("テキスト合成中にパニックが発生したため元画像を返します", "panic", rec)
			out = data
		}
	}()

	rendered, err := r.render(data, p)
	if err != nil {
		slog.Warn("テキスト合成に失敗したため元画像を返します", "error", err)
		return data
	}
	return rendered
}

func (r *Renderer) render(data []byte, p domain.Product) ([]byte, error) {
	src, err := imgutil.Decode(data)
	if err != nil {
		return nil, err
	}
	canvas := toOpaqueRGBA(src)
	bounds := canvas.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("画像サイズが不正です: %dx%d", width, height)
	}

	darkenBands(canvas)

	faces := r.openFaces()
	defer faces.close()

	title := utils.TruncateWithEllipsis(p.Title, maxTitleRunes)
	y := titleTop
	lines := wrapText(faces.title, title, width-2*margin)
	if len(lines) > maxTitleLines {
		lines = lines[:maxTitleLines]
	}
	for _, line := range lines {
		drawText(canvas, faces.title, margin, y, line, titleColor, strokeColor, 2)
		y += titleLineHeight
	}
	drawText(canvas, faces.subtitle, margin, y+subtitleGap, Subtitle, subtitleColor, strokeColor, 1)

	drawText(canvas, faces.price, margin, height-priceFromBottom, "$"+p.Price, priceColor, strokeColor, 3)

	drawButton(canvas, faces.cta, CallToAction)

	return imgutil.EncodeJPEG(canvas, r.quality)
}

// toOpaqueRGBA は任意の画像を白背景に合成した RGBA に変換します。
func toOpaqueRGBA(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	return dst
}

// darkenBands は上下の帯を線形のアルファグラデーションで暗くします。
func darkenBands(dst *image.RGBA) {
	width, height := dst.Bounds().Dx(), dst.Bounds().Dy()
	for i := 0; i < topBandHeight && i < height; i++ {
		alpha := uint8(bandPeakAlpha * (topBandHeight - i) / topBandHeight)
		shadeRow(dst, i, width, alpha)
	}
	start := height - bottomBandHeight
	for i := 0; i < bottomBandHeight; i++ {
		y := start + i
		if y < 0 || y >= height {
			continue
		}
		alpha := uint8(bandPeakAlpha * i / bottomBandHeight)
		shadeRow(dst, y, width, alpha)
	}
}

func shadeRow(dst *image.RGBA, y, width int, alpha uint8) {
	if alpha == 0 {
		return
	}
	shade := image.NewUniform(color.NRGBA{A: alpha})
	draw.Draw(dst, image.Rect(0, y, width, y+1), shade, image.Point{}, draw.Over)
}

// drawButton は右下に白枠付きのオレンジのボタンを描き、中に CTA を描画します。
// ラベルはインクの外接矩形を基準に配置し、ボタンの中央に来るようにします。
func drawButton(dst *image.RGBA, face font.Face, label string) image.Rectangle {
	width, height := dst.Bounds().Dx(), dst.Bounds().Dy()
	ink, _ := font.BoundString(face, label)
	textW := (ink.Max.X - ink.Min.X).Ceil()
	textH := (ink.Max.Y - ink.Min.Y).Ceil()

	x := width - textW - buttonRightInset - buttonPadding
	y := height - buttonFromBottom - buttonPadding
	outer := image.Rect(x, y, x+textW+2*buttonPadding+1, y+textH+2*buttonPadding+1)
	inner := outer.Inset(buttonOutline)

	draw.Draw(dst, outer, image.NewUniform(color.White), image.Point{}, draw.Src)
	if !inner.Empty() {
		draw.Draw(dst, inner, image.NewUniform(buttonColor), image.Point{}, draw.Src)
	}

	dotX := x + buttonPadding - ink.Min.X.Floor()
	baseline := y + buttonPadding - ink.Min.Y.Floor()
	drawTextAt(dst, face, dotX, baseline, label, color.White, strokeColor, 2)
	return outer
}

// faceSet は1回の描画で使うフォントフェイスです。
type faceSet struct {
	title    font.Face
	subtitle font.Face
	price    font.Face
	cta      font.Face
}

func (r *Renderer) openFaces() faceSet {
	return faceSet{
		title:    r.fonts.faceFor(true, titleSize),
		subtitle: r.fonts.faceFor(false, subtitleSize),
		price:    r.fonts.faceFor(true, priceSize),
		cta:      r.fonts.faceFor(true, ctaSize),
	}
}

func (f faceSet) close() {
	for _, face := range []font.Face{f.title, f.subtitle, f.price, f.cta} {
		_ = face.Close()
	}
}
