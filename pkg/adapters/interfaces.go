package adapters

import (
	"context"
	"io"
	"time"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// HTTPClient は URL からデータを取得するためのインターフェースです。
// httpkit.ClientInterface がこれを満たします。
type HTTPClient interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// ObjectReader は gs:// などのリモートストレージからの読み込みを抽象化します。
// remoteio.InputReader がこれを満たします。
type ObjectReader interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// ImageCacher は画像データのキャッシュ操作を抽象化するインターフェースです。
type ImageCacher interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}, d time.Duration)
}

// PartsGenerator はテキストと画像のパーツからテキスト応答を得るクライアントです。
// gemini.GenerativeModel がこれを満たします。
type PartsGenerator interface {
	GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
}
