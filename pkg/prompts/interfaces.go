package prompts

import "github.com/shouni/gemini-ad-kit/pkg/domain"

// AdPrompt は、広告画像生成用のプロンプトを構築する契約です。
type AdPrompt interface {
	// Compose は、指定モードの生成プロンプトを返します。
	Compose(in Input, mode domain.Mode) string
	// ComposeFallback は、フォールバックモデル用のテキストを含まないプロンプトを返します。
	ComposeFallback(in Input) string
}

// Input はプロンプト構築に使う1リクエスト分の素材です。
type Input struct {
	Product          domain.Product
	ImageDescription string // 参照画像の説明文を連結したもの
	BackgroundStyle  string // パレットから選んだ背景の指示文。参照画像が無ければ空
}
