package generator

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/shouni/gemini-ad-kit/pkg/imgutil"
	"github.com/shouni/gemini-ad-kit/pkg/utils"
)

// ImageOutput は応答から取り出した画像データです。
type ImageOutput struct {
	Data     []byte
	MimeType string
}

var (
	errEmptyInlineData = errors.New("インラインデータが空です")
	errNotImageData    = errors.New("インラインデータが画像ではありません")
)

// extractImage は全候補のパートを順に調べ、最初にデコードできた画像を返します。
// 画像が見つからない場合は nil を返します。
func extractImage(ctx context.Context, resp *genai.GenerateContentResponse) *ImageOutput {
	if resp == nil || len(resp.Candidates) == 0 {
		slog.WarnContext(ctx, "応答に候補がありません")
		return nil
	}

	for ci, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			slog.WarnContext(ctx, "候補にコンテンツがありません", "candidate", ci)
			continue
		}
		if len(candidate.Content.Parts) == 0 {
			slog.WarnContext(ctx, "コンテンツにパートがありません", "candidate", ci)
			continue
		}
		for pi, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			if part.Text != "" {
				slog.DebugContext(ctx, "テキストパートをスキップします", "candidate", ci, "part", pi, "text", utils.TruncateRunes(part.Text, 100))
				continue
			}
			if part.InlineData == nil {
				continue
			}
			out, err := decodeInlineData(part.InlineData)
			if err != nil {
				slog.WarnContext(ctx, "画像データのデコードに失敗したためパートをスキップします", "candidate", ci, "part", pi, "error", err)
				continue
			}
			return out
		}
	}
	return nil
}

// decodeInlineData は生バイトと base64 文字列のどちらで届いた画像も扱えるようにします。
// 画像として認識できないデータはエラーとし、呼び出し側でパートを読み飛ばします。
func decodeInlineData(blob *genai.Blob) (*ImageOutput, error) {
	data := blob.Data
	if len(data) == 0 {
		return nil, errEmptyInlineData
	}
	if imgutil.IsImage(data) {
		return &ImageOutput{Data: data, MimeType: imgutil.DetectMimeType(data)}, nil
	}
	if !looksLikeBase64(data) {
		return nil, fmt.Errorf("%w (mime_type=%s, detected=%s)", errNotImageData, blob.MIMEType, imgutil.DetectMimeType(data))
	}

	payload := bytes.TrimSpace(data)
	if i := bytes.Index(payload, []byte("base64,")); bytes.HasPrefix(payload, []byte("data:")) && i >= 0 {
		payload = payload[i+len("base64,"):]
	}
	payload = stripWhitespace(payload)

	decoded := make([]byte, base64.StdEncoding.DecodedLen(len(payload)))
	n, err := base64.StdEncoding.Decode(decoded, payload)
	if err != nil {
		return nil, fmt.Errorf("base64デコードに失敗しました: %w", err)
	}
	decoded = decoded[:n]
	if len(decoded) == 0 {
		return nil, errEmptyInlineData
	}

	if !imgutil.IsImage(decoded) {
		return nil, fmt.Errorf("%w: base64デコード後 (mime_type=%s, detected=%s)", errNotImageData, blob.MIMEType, imgutil.DetectMimeType(decoded))
	}
	return &ImageOutput{Data: decoded, MimeType: imgutil.DetectMimeType(decoded)}, nil
}

// looksLikeBase64 はデータが base64 のテキスト表現に見えるかを判定します。
func looksLikeBase64(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("data:")) {
		return true
	}
	for _, b := range trimmed {
		switch {
		case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		case b == '+', b == '/', b == '=', b == '\n', b == '\r', b == ' ', b == '\t':
		default:
			return false
		}
	}
	return len(trimmed) > 0
}

func stripWhitespace(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for _, c := range b {
		if c == '\n' || c == '\r' || c == ' ' || c == '\t' {
			continue
		}
		out = append(out, c)
	}
	return out
}
