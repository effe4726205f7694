package domain

import (
	"strings"
	"unicode/utf8"
)

// MaxDescriptionRunes はスクレイピング済み説明文を保持する最大文字数です。
const MaxDescriptionRunes = 500

// Product はスクレイパーから受け取る商品情報を保持します。
// Price は通貨表記をそのまま保持し、数値として解釈しません。
type Product struct {
	Title       string   `json:"title"`
	Price       string   `json:"price"`
	Description string   `json:"description"`
	ImageURLs   []string `json:"images"`
}

// NewProduct は説明文を上限文字数に切り詰めて Product を生成します。
// タイトルと説明文の前後の空白は除きますが、価格は受け取ったまま保持します。
func NewProduct(title, price, description string, imageURLs []string) Product {
	p := Product{
		Title:       strings.TrimSpace(title),
		Price:       price,
		Description: strings.TrimSpace(description),
		ImageURLs:   append([]string(nil), imageURLs...),
	}
	p.Normalize()
	return p
}

// Normalize は JSON から読み込んだ Product にも NewProduct と同じ制約を適用します。
func (p *Product) Normalize() {
	if utf8.RuneCountInString(p.Description) > MaxDescriptionRunes {
		p.Description = string([]rune(p.Description)[:MaxDescriptionRunes])
	}
}

// PrimaryImageURLs は選択された参照画像が無い場合に先頭の商品画像を返します。
func (p Product) PrimaryImageURLs(selected []string) []string {
	if len(selected) > 0 {
		return selected
	}
	if len(p.ImageURLs) > 0 {
		return p.ImageURLs[:1]
	}
	return nil
}
