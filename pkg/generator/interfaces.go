package generator

import (
	"context"

	"google.golang.org/genai"

	"github.com/shouni/gemini-ad-kit/pkg/domain"
)

// Backend は生成モデルを呼び出すポートです。*genai.Models がこれを満たします。
// cfg が nil の場合はサンプリング設定を付けない素のリクエストになります。
type Backend interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// ImageGenerator はパイプライン層が利用する生成の統合窓口です。
type ImageGenerator interface {
	// Generate は要求を実行し、結果を Outcome として返します。エラーやパニックは伝播しません。
	Generate(ctx context.Context, req domain.GenerationRequest) domain.Outcome
}
