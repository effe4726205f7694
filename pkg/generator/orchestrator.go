package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/shouni/gemini-ad-kit/pkg/domain"
)

// ErrEmptyPrompt はプロンプトが空の要求を受け取ったことを示します。
var ErrEmptyPrompt = errors.New("プロンプトが空です")

// Orchestrator は一次モデルとフォールバックモデルを順に試す画像生成の状態機械です。
// 保持するのは読み取り専用の依存のみで、リクエスト間で状態を共有しません。
type Orchestrator struct {
	backend Backend
	models  Models
}

// NewOrchestrator は依存関係を注入して Orchestrator を初期化します。
func NewOrchestrator(backend Backend, models Models) (*Orchestrator, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend is required")
	}
	if err := models.Validate(); err != nil {
		return nil, err
	}
	return &Orchestrator{backend: backend, models: models}, nil
}

// Generate は要求を実行し、画像、画像なし、失敗のいずれかを返します。
// ModeTextBaked で一次モデルが失敗した場合に限り、フォールバックモデルを1回だけ試します。
func (o *Orchestrator) Generate(ctx context.Context, req domain.GenerationRequest) (outcome domain.Outcome) {
	usedFallback := false
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "画像生成中にパニックが発生しました", "panic", r, "mode", req.Mode, "used_fallback", usedFallback)
			outcome = domain.FailureOutcome(fmt.Errorf("画像生成中にパニックが発生しました (used_fallback=%t): %v", usedFallback, r), false)
			outcome.UsedFallback = usedFallback
		}
	}()

	if req.Prompt == "" {
		return domain.FailureOutcome(ErrEmptyPrompt, false)
	}

	model := req.Model
	if model == "" {
		model = o.models.Primary(req.Mode)
	}
	sampling := req.Sampling
	if isZeroSampling(sampling) {
		sampling = DefaultSampling(req.Mode)
	}

	slog.InfoContext(ctx, "画像生成リクエストを送信します", "mode", req.Mode, "model", model, "prompt_length", len(req.Prompt))
	resp, err := o.attemptWithBareRetry(ctx, model, req.Prompt, sampling)
	if err == nil {
		return o.toOutcome(ctx, resp, false)
	}

	if req.Mode != domain.ModeTextBaked {
		slog.ErrorContext(ctx, "画像生成に失敗しました", "mode", req.Mode, "model", model, "error", err)
		return domain.FailureOutcome(err, IsBusy(err))
	}

	usedFallback = true
	return o.generateFallback(ctx, req, err)
}

// generateFallback はテキストを含まないプロンプトでフォールバックモデルを呼び出します。
func (o *Orchestrator) generateFallback(ctx context.Context, req domain.GenerationRequest, primaryErr error) domain.Outcome {
	slog.WarnContext(ctx, "テキスト入り画像の生成に失敗したため、フォールバックモデルに切り替えます",
		"primary_error", primaryErr, "fallback_model", o.models.Fallback)

	prompt := req.FallbackPrompt
	if prompt == "" {
		prompt = req.Prompt
	}

	resp, err := o.attemptWithBareRetry(ctx, o.models.Fallback, prompt, FallbackSampling())
	if err != nil {
		joined := errors.Join(primaryErr, err)
		slog.ErrorContext(ctx, "フォールバックモデルでの画像生成にも失敗しました", "model", o.models.Fallback, "error", err)
		failure := domain.FailureOutcome(joined, IsBusy(joined))
		failure.UsedFallback = true
		return failure
	}
	return o.toOutcome(ctx, resp, true)
}

// toOutcome は応答を検証し、画像が取り出せなければ NoImage を返します。
func (o *Orchestrator) toOutcome(ctx context.Context, resp *genai.GenerateContentResponse, usedFallback bool) domain.Outcome {
	out := extractImage(ctx, resp)
	if out == nil {
		slog.WarnContext(ctx, "応答に画像データが含まれていませんでした", "used_fallback", usedFallback)
		return domain.NoImageOutcome(usedFallback)
	}
	slog.InfoContext(ctx, "画像データを取得しました", "bytes", len(out.Data), "mime_type", out.MimeType, "used_fallback", usedFallback)
	return domain.ImageOutcome(out.Data, out.MimeType, usedFallback)
}
