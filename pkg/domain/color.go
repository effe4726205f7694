package domain

import "fmt"

// RGB は 0〜255 の3チャンネルで表される色です。
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// Hex は #rrggbb 形式の文字列を返します。
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Palette は支配色から導出した背景用の5色です。
type Palette struct {
	Primary    RGB
	Light      RGB
	Dark       RGB
	Complement RGB
	Neutral    RGB
}
