package adapters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/url"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/shouni/gemini-ad-kit/pkg/imgutil"
)

const (
	// DefaultCacheTTL は参照画像をキャッシュする期間です。
	DefaultCacheTTL = 30 * time.Minute
	// ReferenceJPEGQuality は視覚モデルへ渡す参照画像の JPEG 品質です。
	ReferenceJPEGQuality = 75

	cacheKeyReference = "reference:"
)

// ErrNotImage は取得したデータが画像ではなかったことを示します。
var ErrNotImage = errors.New("取得したデータは画像ではありません")

// Reference はダウンロード済みの参照画像です。
type Reference struct {
	URL  string
	Data []byte
}

// ReferenceLoader は参照画像をダウンロードし、キャッシュします。
type ReferenceLoader struct {
	httpClient HTTPClient
	reader     ObjectReader
	cache      ImageCacher
	cacheTTL   time.Duration
}

// NewReferenceLoader は依存関係を注入して ReferenceLoader を生成します。
// reader と cache は nil を許容します（gs:// 非対応、キャッシュなし動作）。
func NewReferenceLoader(httpClient HTTPClient, reader ObjectReader, cache ImageCacher, cacheTTL time.Duration) (*ReferenceLoader, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient is required")
	}
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &ReferenceLoader{
		httpClient: httpClient,
		reader:     reader,
		cache:      cache,
		cacheTTL:   cacheTTL,
	}, nil
}

// LoadAll は URL を順に取得し、失敗したものはログに残して読み飛ばします。
func (l *ReferenceLoader) LoadAll(ctx context.Context, urls []string) []Reference {
	refs := make([]Reference, 0, len(urls))
	for i, u := range urls {
		if strings.TrimSpace(u) == "" {
			continue
		}
		data, err := l.Load(ctx, u)
		if err != nil {
			slog.WarnContext(ctx, "参照画像の取得に失敗したためスキップします", "index", i, "url", u, "error", err)
			continue
		}
		refs = append(refs, Reference{URL: u, Data: data})
	}
	slog.InfoContext(ctx, "参照画像の取得が完了しました", "requested", len(urls), "loaded", len(refs))
	return refs
}

// Load は1件の参照画像を取得します。
func (l *ReferenceLoader) Load(ctx context.Context, rawURL string) ([]byte, error) {
	key := cacheKeyReference + rawURL
	if l.cache != nil {
		if cached, found := l.cache.Get(key); found {
			if data, ok := cached.([]byte); ok {
				return data, nil
			}
			slog.WarnContext(ctx, "キャッシュデータが不正な型です", "url", rawURL, "type", fmt.Sprintf("%T", cached))
		}
	}

	data, err := l.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if !imgutil.IsImage(data) {
		return nil, fmt.Errorf("%w: %s (%s)", ErrNotImage, rawURL, imgutil.DetectMimeType(data))
	}

	if l.cache != nil {
		l.cache.Set(key, data, l.cacheTTL)
	}
	return data, nil
}

func (l *ReferenceLoader) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if strings.HasPrefix(rawURL, "gs://") {
		if l.reader == nil {
			return nil, fmt.Errorf("gs:// の読み込みが設定されていません: %s", rawURL)
		}
		rc, err := l.reader.Open(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("参照画像のオープンに失敗しました: %w", err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}

	if safe, err := isSafeURL(rawURL); !safe || err != nil {
		return nil, fmt.Errorf("安全ではないURLが指定されました: %w", err)
	}
	data, err := l.httpClient.FetchBytes(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("参照画像のダウンロードに失敗しました: %w", err)
	}
	return data, nil
}

// ToPart は参照画像を JPEG に揃えて genai.Part (InlineData) に変換します。
// 変換できない場合は nil を返します。
func ToPart(data []byte) *genai.Part {
	jpegData, err := imgutil.CompressToJPEG(data, ReferenceJPEGQuality)
	if err != nil {
		slog.Warn("参照画像をJPEGに変換できませんでした", "detected_mime_type", imgutil.DetectMimeType(data), "error", err)
		return nil
	}
	return &genai.Part{
		InlineData: &genai.Blob{
			MIMEType: "image/jpeg",
			Data:     jpegData,
		},
	}
}

// isSafeURL は SSRF 対策として URL を検証します。
// 名前解決されたすべての IP アドレスに対してプライベート IP チェックを行います。
func isSafeURL(rawURL string) (bool, error) {
	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return false, fmt.Errorf("URLパース失敗: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return false, fmt.Errorf("不許可スキーム: %s", parsedURL.Scheme)
	}

	host := parsedURL.Hostname()
	var ips []net.IP
	if ip := net.ParseIP(host); ip != nil {
		ips = []net.IP{ip}
	} else {
		resolvedIPs, err := net.LookupIP(host)
		if err != nil {
			return false, fmt.Errorf("名前解決失敗: %w", err)
		}
		ips = resolvedIPs
	}

	if len(ips) == 0 {
		return false, fmt.Errorf("IPが見つかりません")
	}

	for _, ip := range ips {
		if ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() || ip.IsUnspecified() {
			return false, fmt.Errorf("制限されたネットワークへのアクセスを検知: %s", ip.String())
		}
	}

	return true, nil
}
