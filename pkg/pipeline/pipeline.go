package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/gemini-ad-kit/pkg/domain"
	"github.com/shouni/gemini-ad-kit/pkg/generator"
	"github.com/shouni/gemini-ad-kit/pkg/imgutil"
	"github.com/shouni/gemini-ad-kit/pkg/overlay"
	"github.com/shouni/gemini-ad-kit/pkg/palette"
	"github.com/shouni/gemini-ad-kit/pkg/prompts"
	"github.com/shouni/gemini-ad-kit/pkg/utils"
)

// 呼び出し元が errors.Is で判定するためのエラーです。
var (
	ErrBackendBusy      = domain.ErrBackendBusy
	ErrNoImage          = domain.ErrNoImage
	ErrGenerationFailed = domain.ErrGenerationFailed
)

// Dependencies は AdPipeline を構成するコンポーネントです。
// Describer と Concepts は nil を許容します。
type Dependencies struct {
	Loader    ReferenceLoader
	Describer ImageDescriber
	Concepts  ConceptWriter
	Composer  prompts.AdPrompt
	Generator generator.ImageGenerator
	Renderer  overlay.TextRenderer
	// ColorCount は抽出する支配色の数です。0 の場合は palette.DefaultColorCount。
	ColorCount int
}

// AdPipeline は参照画像の取得から広告画像の完成までを一気通貫で実行します。
// 保持するのは読み取り専用のコンポーネントのみで、並行に Generate を呼び出せます。
type AdPipeline struct {
	loader     ReferenceLoader
	describer  ImageDescriber
	concepts   ConceptWriter
	composer   prompts.AdPrompt
	generator  generator.ImageGenerator
	renderer   overlay.TextRenderer
	colorCount int
	now        func() time.Time
}

// NewAdPipeline は依存関係を検証して AdPipeline を生成します。
func NewAdPipeline(deps Dependencies) (*AdPipeline, error) {
	if deps.Loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if deps.Composer == nil {
		return nil, fmt.Errorf("composer is required")
	}
	if deps.Generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if deps.Renderer == nil {
		return nil, fmt.Errorf("renderer is required")
	}
	colorCount := deps.ColorCount
	if colorCount <= 0 {
		colorCount = palette.DefaultColorCount
	}
	return &AdPipeline{
		loader:     deps.Loader,
		describer:  deps.Describer,
		concepts:   deps.Concepts,
		composer:   deps.Composer,
		generator:  deps.Generator,
		renderer:   deps.Renderer,
		colorCount: colorCount,
		now:        time.Now,
	}, nil
}

// Concept は商品情報から広告コンセプトを生成します。
func (p *AdPipeline) Concept(ctx context.Context, product domain.Product) (string, error) {
	if p.concepts == nil {
		return "", fmt.Errorf("concept writer is not configured")
	}
	return p.concepts.Write(ctx, product)
}

// Generate は広告画像を1枚生成します。
// 失敗時は ErrBackendBusy、ErrNoImage、ErrGenerationFailed のいずれかをラップしたエラーを返します。
func (p *AdPipeline) Generate(ctx context.Context, req Request) (*domain.RenderedAd, error) {
	product := req.Product
	mode := domain.ModeTextBaked
	if req.UseTextOverlay {
		mode = domain.ModeClean
	}
	slog.InfoContext(ctx, "広告画像の生成を開始します",
		"title", product.Title, "mode", mode, "concept_length", len(req.Concept))

	urls := product.PrimaryImageURLs(req.ImageURLs)
	refs := p.loader.LoadAll(ctx, urls)

	var description string
	if p.describer != nil && len(refs) > 0 {
		description = p.describer.Describe(ctx, refs)
	}

	var style string
	if len(refs) > 0 {
		colors := palette.ExtractDominantColors(refs[0].Data, p.colorCount)
		pal := palette.BuildPalette(colors)
		style = palette.SelectBackgroundStyle(product.Title, pal)
		slog.InfoContext(ctx, "背景スタイルを決定しました", "primary", pal.Primary.Hex(), "style", style)
	}

	in := prompts.Input{Product: product, ImageDescription: description, BackgroundStyle: style}
	genReq := domain.GenerationRequest{
		Mode:     mode,
		Prompt:   p.composer.Compose(in, mode),
		Sampling: generator.DefaultSampling(mode),
	}
	if mode == domain.ModeTextBaked {
		genReq.FallbackPrompt = p.composer.ComposeFallback(in)
	}

	outcome := p.generator.Generate(ctx, genReq)
	switch outcome.Kind {
	case domain.OutcomeImage:
		return p.finish(ctx, req, mode, outcome), nil
	case domain.OutcomeNoImage:
		return nil, fmt.Errorf("%w (mode=%s, used_fallback=%t)", ErrNoImage, mode, outcome.UsedFallback)
	default:
		if outcome.Busy {
			return nil, fmt.Errorf("%w: %w", ErrBackendBusy, outcome.Err)
		}
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, outcome.Err)
	}
}

// finish は必要に応じてテキストを合成し、JPEG の広告画像に仕上げます。
// フォールバックモデルはテキストを描けないため、その場合も合成します。
func (p *AdPipeline) finish(ctx context.Context, req Request, mode domain.Mode, outcome domain.Outcome) *domain.RenderedAd {
	ad := &domain.RenderedAd{
		Mode:         mode,
		UsedFallback: outcome.UsedFallback,
		Filename:     utils.AdFilename(p.now()),
	}

	data := outcome.Data
	if req.UseTextOverlay || (mode == domain.ModeTextBaked && outcome.UsedFallback) {
		rendered := p.renderer.Render(outcome.Data, req.Product)
		ad.OverlayApplied = !bytes.Equal(rendered, outcome.Data)
		data = rendered
		if !ad.OverlayApplied {
			slog.WarnContext(ctx, "テキスト合成に失敗したため生成画像をそのまま使用します")
		}
	}

	ad.Data, ad.MimeType = imgutil.EnsureJPEG(data, imgutil.DefaultJPEGQuality)
	slog.InfoContext(ctx, "広告画像が完成しました",
		"bytes", len(ad.Data), "mode", mode, "used_fallback", ad.UsedFallback, "overlay", ad.OverlayApplied)
	return ad
}
