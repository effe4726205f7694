package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/shouni/gemini-ad-kit/internal/builder"
	"github.com/shouni/gemini-ad-kit/pkg/domain"
	"github.com/shouni/gemini-ad-kit/pkg/pipeline"
)

// loadProduct は商品JSON（ローカル or gs://）を読み込むのだ。
func loadProduct(ctx context.Context, reader builder.InputReader, path string) (domain.Product, error) {
	rc, err := reader.Open(ctx, path)
	if err != nil {
		return domain.Product{}, fmt.Errorf("商品ファイルの読み込みに失敗したのだ: %w", err)
	}
	defer rc.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, rc); err != nil {
		return domain.Product{}, err
	}

	var p domain.Product
	if err := json.Unmarshal(buf.Bytes(), &p); err != nil {
		return domain.Product{}, fmt.Errorf("商品JSONの解析に失敗したのだ (%s): %w", path, err)
	}
	if p.Title == "" {
		return domain.Product{}, fmt.Errorf("商品JSONに title が無いのだ (%s)", path)
	}
	p = domain.NewProduct(p.Title, p.Price, p.Description, p.ImageURLs)
	return p, nil
}

// generateOne は1商品分の広告を生成して保存し、保存先のパスを返すのだ。
func generateOne(ctx context.Context, appCtx *builder.AppContext, product domain.Product, imageURLs []string, prefix string) (string, error) {
	var concept string
	if appCtx.Options.WithConcept {
		c, err := appCtx.Pipeline.Concept(ctx, product)
		if err != nil {
			return "", fmt.Errorf("広告コンセプトの生成に失敗したのだ: %w", err)
		}
		concept = c
	}

	ad, err := appCtx.Pipeline.Generate(ctx, pipeline.Request{
		Product:        product,
		Concept:        concept,
		ImageURLs:      imageURLs,
		UseTextOverlay: appCtx.Options.UseTextOverlay,
	})
	if err != nil {
		return "", err
	}
	slog.InfoContext(ctx, "広告画像が完成したのだ",
		"title", product.Title,
		"mode", ad.Mode.String(),
		"used_fallback", ad.UsedFallback,
		"overlay_applied", ad.OverlayApplied)

	outputPath := builder.JoinOutputPath(appCtx.Options.OutputDir, prefix+ad.Filename)
	if err := appCtx.Writer.Write(ctx, outputPath, bytes.NewReader(ad.Data), ad.MimeType); err != nil {
		return "", fmt.Errorf("広告画像の保存に失敗したのだ: %w", err)
	}
	return outputPath, nil
}
