package pipeline

import (
	"context"

	"github.com/shouni/gemini-ad-kit/pkg/adapters"
	"github.com/shouni/gemini-ad-kit/pkg/domain"
)

// ReferenceLoader は参照画像を取得し、失敗したものを読み飛ばすインターフェースです。
type ReferenceLoader interface {
	LoadAll(ctx context.Context, urls []string) []adapters.Reference
}

// ImageDescriber は参照画像の説明文を生成するインターフェースです。
type ImageDescriber interface {
	Describe(ctx context.Context, refs []adapters.Reference) string
}

// ConceptWriter は広告コンセプトを生成するインターフェースです。
type ConceptWriter interface {
	Write(ctx context.Context, p domain.Product) (string, error)
}

// Request は広告画像1枚分の生成要求です。
type Request struct {
	Product        domain.Product
	Concept        string   // 事前に生成した広告コンセプト
	ImageURLs      []string // 選択された参照画像。空なら商品の先頭画像を使う
	UseTextOverlay bool     // true ならテキストなし画像を生成し後から文字を合成する
}
