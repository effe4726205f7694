package overlay

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// wrapText は単語単位で折り返し、各行の幅を maxWidth 以下に収めます。
// 1語だけで maxWidth を超える場合は文字単位で分割します。
func wrapText(face font.Face, text string, maxWidth int) []string {
	var (
		lines   []string
		current string
	)
	for _, word := range strings.Fields(text) {
		for _, piece := range breakWord(face, word, maxWidth) {
			candidate := piece
			if current != "" {
				candidate = current + " " + piece
			}
			if fits(face, candidate, maxWidth) {
				current = candidate
				continue
			}
			if current != "" {
				lines = append(lines, current)
			}
			current = piece
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// breakWord は maxWidth に収まらない語を、収まる長さの断片に分割します。
// 1文字で maxWidth を超える場合はその1文字を断片とします。
func breakWord(face font.Face, word string, maxWidth int) []string {
	if fits(face, word, maxWidth) {
		return []string{word}
	}
	var (
		pieces []string
		chunk  []rune
	)
	for _, r := range word {
		next := append(chunk, r)
		if len(chunk) > 0 && !fits(face, string(next), maxWidth) {
			pieces = append(pieces, string(chunk))
			next = []rune{r}
		}
		chunk = next
	}
	if len(chunk) > 0 {
		pieces = append(pieces, string(chunk))
	}
	return pieces
}

func fits(face font.Face, s string, maxWidth int) bool {
	return font.MeasureString(face, s).Ceil() <= maxWidth
}

// drawText は左上を (x, y) として縁取り付きの文字列を描画します。
func drawText(dst draw.Image, face font.Face, x, y int, text string, fill, stroke color.Color, strokeWidth int) {
	drawTextAt(dst, face, x, y+face.Metrics().Ascent.Ceil(), text, fill, stroke, strokeWidth)
}

// drawTextAt は (x, baseline) を基準点として縁取り付きの文字列を描画します。
func drawTextAt(dst draw.Image, face font.Face, x, baseline int, text string, fill, stroke color.Color, strokeWidth int) {
	d := &font.Drawer{Dst: dst, Face: face}

	if strokeWidth > 0 {
		d.Src = image.NewUniform(stroke)
		for dy := -strokeWidth; dy <= strokeWidth; dy++ {
			for dx := -strokeWidth; dx <= strokeWidth; dx++ {
				if dx*dx+dy*dy > strokeWidth*strokeWidth {
					continue
				}
				d.Dot = fixed.P(x+dx, baseline+dy)
				d.DrawString(text)
			}
		}
	}

	d.Src = image.NewUniform(fill)
	d.Dot = fixed.P(x, baseline)
	d.DrawString(text)
}
