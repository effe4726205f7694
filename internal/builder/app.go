package builder

import (
	"context"
	"io"

	"github.com/shouni/gemini-ad-kit/internal/config"
	"github.com/shouni/gemini-ad-kit/pkg/domain"
	"github.com/shouni/gemini-ad-kit/pkg/pipeline"
)

// InputReader は商品JSONを読み込む入力元なのだ。
// remoteio.InputReader がこれを満たすのだ。
type InputReader interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// OutputWriter は完成した広告画像の保存先なのだ。
// remoteio.OutputWriter がこれを満たすのだ。
type OutputWriter interface {
	Write(ctx context.Context, path string, r io.Reader, contentType string) error
}

// AdGenerator は AdPipeline のうち CLI が使う操作だけを切り出したものなのだ。
type AdGenerator interface {
	Concept(ctx context.Context, product domain.Product) (string, error)
	Generate(ctx context.Context, req pipeline.Request) (*domain.RenderedAd, error)
}

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各コマンドに渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config   *config.Config         // Configは、環境変数から読み込まれたグローバルな設定です（APIキー、モデル名など）。
	Options  config.GenerateOptions // Optionsは、コマンドラインから渡された実行時の設定です。
	Reader   InputReader            // Readerは、商品JSONの読み込みに使用する入力元です（ローカル or gs://）。
	Writer   OutputWriter           // Writerは、生成された広告画像を保存するための出力先です。
	Pipeline AdGenerator            // Pipelineは、参照画像の取得から文字合成までを行う広告生成パイプラインです。
}

// NewAppContext は AppContext の新しいインスタンスを生成する
func NewAppContext(cfg *config.Config, reader InputReader, writer OutputWriter, p AdGenerator) AppContext {
	return AppContext{
		Config:   cfg,
		Options:  cfg.Options,
		Reader:   reader,
		Writer:   writer,
		Pipeline: p,
	}
}
