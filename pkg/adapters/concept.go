package adapters

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"

	"github.com/shouni/gemini-ad-kit/pkg/domain"
	"github.com/shouni/gemini-ad-kit/pkg/generator"
	"github.com/shouni/gemini-ad-kit/pkg/prompts"
	"github.com/shouni/gemini-ad-kit/pkg/utils"
)

// ConceptWriter はテキストモデルで広告コンセプトの文章を生成します。
type ConceptWriter struct {
	client PartsGenerator
	model  string
}

// NewConceptWriter は依存関係を注入して ConceptWriter を生成します。
func NewConceptWriter(client PartsGenerator, model string) (*ConceptWriter, error) {
	if client == nil {
		return nil, fmt.Errorf("client is required")
	}
	if model == "" {
		return nil, fmt.Errorf("text model is required")
	}
	return &ConceptWriter{client: client, model: model}, nil
}

// Write は商品情報から広告コンセプトを生成します。
// 過負荷やレート制限による失敗は domain.ErrBackendBusy でラップして返します。
func (w *ConceptWriter) Write(ctx context.Context, p domain.Product) (string, error) {
	slog.InfoContext(ctx, "広告コンセプトを生成します", "title", p.Title, "price", p.Price, "description_length", len(p.Description))

	parts := []*genai.Part{{Text: prompts.ConceptPrompt(p)}}
	opts := gemini.GenerateOptions{SystemPrompt: prompts.ConceptSystemPrompt}

	resp, err := w.client.GenerateWithParts(ctx, w.model, parts, opts)
	if err != nil {
		if generator.IsBusy(err) {
			return "", fmt.Errorf("%w: %w", domain.ErrBackendBusy, err)
		}
		return "", fmt.Errorf("広告コンセプトの生成に失敗しました: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("広告コンセプトの応答が空でした")
	}
	slog.InfoContext(ctx, "広告コンセプトを生成しました", "preview", utils.TruncateRunes(text, 100))
	return text, nil
}
