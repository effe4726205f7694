package generator

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/shouni/gemini-ad-kit/pkg/domain"
)

// toGenerateConfig はサンプリング設定を SDK の設定に変換します。
func toGenerateConfig(s domain.SamplingConfig) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature:        genai.Ptr(s.Temperature),
		MaxOutputTokens:    s.MaxOutputTokens,
		CandidateCount:     s.CandidateCount,
		ResponseModalities: append([]string(nil), s.ResponseModalities...),
	}
	return cfg
}

// attemptWithBareRetry は設定付きで1回呼び出し、失敗した場合は設定なしで1回だけ再試行します。
func (o *Orchestrator) attemptWithBareRetry(ctx context.Context, model, prompt string, sampling domain.SamplingConfig) (*genai.GenerateContentResponse, error) {
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	resp, err := o.backend.GenerateContent(ctx, model, contents, toGenerateConfig(sampling))
	if err == nil {
		return resp, nil
	}
	if isModelNotFound(err) {
		slog.WarnContext(ctx, "指定モデルが見つかりません", "model", model, "error", err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("モデル %s の呼び出し中にコンテキストが終了しました: %w", model, err)
	}

	slog.WarnContext(ctx, "サンプリング設定付きのリクエストが失敗したため、設定なしで再試行します", "model", model, "error", err)
	resp, bareErr := o.backend.GenerateContent(ctx, model, contents, nil)
	if bareErr != nil {
		return nil, fmt.Errorf("モデル %s の呼び出しに失敗しました: %w", model, bareErr)
	}
	return resp, nil
}
