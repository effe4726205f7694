package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/shouni/gemini-ad-kit/internal/builder"
	"github.com/shouni/gemini-ad-kit/pkg/pipeline"

	"github.com/spf13/cobra"
)

// generateCmd は、1商品分のInstagram広告画像を生成するのだ。
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "商品JSONから広告画像を1枚生成しますなのだ。",
	Long: `商品情報（title, price, description, images）のJSONを読み込み、
参照画像の色と説明をもとに広告画像を生成して保存するのだ。
--overlay を付けるとテキストなし画像に後から文字を合成するのだよ。`,
	Example: `  gemini-ad-kit generate -p product.json --overlay
  gemini-ad-kit generate -p gs://bucket/products/42.json -o gs://bucket/ads --image https://example.com/a.jpg`,
	RunE: generateCommand,
}

func init() {
	generateCmd.Flags().StringVarP(&opts.ProductFile, "product", "p", "", "商品JSONのパス（ローカル or gs://...）なのだ。")
	generateCmd.Flags().StringSliceVar(&opts.ImageURLs, "image", nil, "参照画像のURL。省略すると商品の先頭画像を使うのだ。")
}

func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.ProductFile == "" {
		return fmt.Errorf("商品JSON（--product）を指定してほしいのだ")
	}

	appCtx, err := builder.BuildAppContext(ctx, appCfg)
	if err != nil {
		return err
	}

	product, err := loadProduct(ctx, appCtx.Reader, opts.ProductFile)
	if err != nil {
		return err
	}

	slog.Info("広告生成パイプラインを起動するのだ！",
		"title", product.Title,
		"overlay", opts.UseTextOverlay,
		"output", opts.OutputDir)

	path, err := generateOne(ctx, appCtx, product, opts.ImageURLs, "")
	if err != nil {
		if errors.Is(err, pipeline.ErrBackendBusy) {
			return fmt.Errorf("生成サービスが混み合っているのだ。少し待ってから再実行してほしいのだ: %w", err)
		}
		return fmt.Errorf("広告生成中にエラーが発生したのだ: %w", err)
	}

	slog.Info("広告画像を保存したのだ！", "path", path)
	return nil
}
