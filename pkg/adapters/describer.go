package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"

	"github.com/shouni/gemini-ad-kit/pkg/prompts"
	"github.com/shouni/gemini-ad-kit/pkg/utils"
)

// descriptionJoiner は複数画像の説明を1つの文章につなげる接続語です。
const descriptionJoiner = " Además, "

// ImageDescriber は視覚モデルで参照画像ごとの説明文を生成します。
type ImageDescriber struct {
	client PartsGenerator
	model  string
}

// NewImageDescriber は依存関係を注入して ImageDescriber を生成します。
func NewImageDescriber(client PartsGenerator, model string) (*ImageDescriber, error) {
	if client == nil {
		return nil, fmt.Errorf("client is required")
	}
	if model == "" {
		return nil, fmt.Errorf("vision model is required")
	}
	return &ImageDescriber{client: client, model: model}, nil
}

// Describe は各参照画像を説明させ、得られた文章を連結して返します。
// 説明に失敗した画像は読み飛ばし、1件も得られなければ空文字を返します。
func (d *ImageDescriber) Describe(ctx context.Context, refs []Reference) string {
	var descriptions []string
	for i, ref := range refs {
		text, err := d.describeOne(ctx, ref)
		if err != nil {
			slog.WarnContext(ctx, "参照画像の説明生成に失敗しました", "index", i, "url", ref.URL, "error", err)
			continue
		}
		slog.InfoContext(ctx, "参照画像の説明を生成しました", "index", i, "preview", utils.TruncateRunes(text, 100))
		descriptions = append(descriptions, text)
	}
	return strings.Join(descriptions, descriptionJoiner)
}

func (d *ImageDescriber) describeOne(ctx context.Context, ref Reference) (string, error) {
	part := ToPart(ref.Data)
	if part == nil {
		return "", fmt.Errorf("参照画像をパーツに変換できませんでした")
	}
	parts := []*genai.Part{{Text: prompts.DescribePrompt}, part}

	resp, err := d.client.GenerateWithParts(ctx, d.model, parts, gemini.GenerateOptions{})
	if err != nil {
		return "", fmt.Errorf("視覚モデルの呼び出しに失敗しました: %w", err)
	}
	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("視覚モデルの応答が空でした")
	}
	return text, nil
}

// responseText は応答の先頭候補のテキストを取り出します。
func responseText(resp *gemini.Response) string {
	if resp == nil || resp.RawResponse == nil {
		return ""
	}
	return strings.TrimSpace(resp.RawResponse.Text())
}
