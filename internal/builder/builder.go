package builder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/gemini-ad-kit/internal/config"
	"github.com/shouni/gemini-ad-kit/pkg/adapters"
	"github.com/shouni/gemini-ad-kit/pkg/generator"
	"github.com/shouni/gemini-ad-kit/pkg/overlay"
	"github.com/shouni/gemini-ad-kit/pkg/pipeline"
	"github.com/shouni/gemini-ad-kit/pkg/prompts"

	"github.com/patrickmn/go-cache"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
	"google.golang.org/genai"
)

// Clients はパイプライン構築に使う外部クライアントの束なのだ。
type Clients struct {
	HTTP    adapters.HTTPClient
	AI      adapters.PartsGenerator
	Backend generator.Backend
	Storage adapters.ObjectReader // nil の場合 gs:// の参照画像は読めないのだ
}

// BuildAppContext は設定から全ての依存を組み立てて AppContext を返すのだ。
func BuildAppContext(ctx context.Context, cfg *config.Config) (*AppContext, error) {
	aiClient, err := InitializeAIClient(ctx, cfg.GeminiAPIKey, cfg.ConceptTemperature)
	if err != nil {
		return nil, err
	}
	backend, err := InitializeImageBackend(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, err
	}
	reader, writer := InitializeIO(ctx)

	clients := Clients{
		HTTP:    httpkit.New(cfg.HTTPTimeout),
		AI:      aiClient,
		Backend: backend,
		Storage: reader,
	}
	adPipeline, err := BuildAdPipeline(cfg, clients)
	if err != nil {
		return nil, err
	}

	appCtx := NewAppContext(cfg, reader, writer, adPipeline)
	return &appCtx, nil
}

// InitializeAIClient は画像説明とコンセプト生成に使う gemini クライアントを初期化します。
func InitializeAIClient(ctx context.Context, apiKey string, temperature float32) (gemini.GenerativeModel, error) {
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(temperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}

// InitializeImageBackend は画像生成用の genai クライアントを初期化し、Models を返します。
func InitializeImageBackend(ctx context.Context, apiKey string) (generator.Backend, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("画像生成クライアントの初期化に失敗しました: %w", err)
	}
	return client.Models, nil
}

// InitializeIO は GCS とローカルの両方を扱える入出力を初期化するのだ。
// GCS の認証情報が無い環境ではローカルファイルだけを扱う入出力に切り替えるのだ。
func InitializeIO(ctx context.Context) (InputReader, OutputWriter) {
	factory, err := gcsfactory.NewGCSClientFactory(ctx)
	if err != nil {
		slog.WarnContext(ctx, "GCSクライアントの初期化に失敗したのでローカル入出力だけを使うのだ", "error", err)
		return localReader{}, localWriter{}
	}

	var reader InputReader = localReader{}
	if r, err := factory.NewInputReader(); err != nil {
		slog.WarnContext(ctx, "InputReaderの取得に失敗したのでローカル入力を使うのだ", "error", err)
	} else {
		reader = r
	}

	var writer OutputWriter = localWriter{}
	if w, err := factory.NewOutputWriter(); err != nil {
		slog.WarnContext(ctx, "OutputWriterの取得に失敗したのでローカル出力を使うのだ", "error", err)
	} else {
		writer = w
	}
	return reader, writer
}

// BuildAdPipeline は広告生成パイプラインを組み立てるのだ。
func BuildAdPipeline(cfg *config.Config, clients Clients) (*pipeline.AdPipeline, error) {
	refCache := cache.New(config.DefaultReferenceCacheTTL, config.DefaultReferenceCacheSweep)
	loader, err := adapters.NewReferenceLoader(clients.HTTP, clients.Storage, refCache, config.DefaultReferenceCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("ReferenceLoaderの初期化に失敗したのだ: %w", err)
	}

	describer, err := adapters.NewImageDescriber(clients.AI, cfg.VisionModel)
	if err != nil {
		return nil, fmt.Errorf("ImageDescriberの初期化に失敗したのだ: %w", err)
	}
	concepts, err := adapters.NewConceptWriter(clients.AI, cfg.TextModel)
	if err != nil {
		return nil, fmt.Errorf("ConceptWriterの初期化に失敗したのだ: %w", err)
	}

	orchestrator, err := generator.NewOrchestrator(clients.Backend, generator.Models{
		Clean:       cfg.CleanImageModel,
		TextToImage: cfg.TextToImageModel,
		Fallback:    cfg.FallbackModel,
	})
	if err != nil {
		return nil, fmt.Errorf("Orchestratorの初期化に失敗したのだ: %w", err)
	}

	fonts := overlay.LoadFonts(overlay.FontConfig{
		TitlePath: cfg.TitleFontPath,
		BodyPath:  cfg.BodyFontPath,
	})

	return pipeline.NewAdPipeline(pipeline.Dependencies{
		Loader:    loader,
		Describer: describer,
		Concepts:  concepts,
		Composer:  prompts.NewComposer(),
		Generator: orchestrator,
		Renderer:  overlay.NewRenderer(fonts),
	})
}
