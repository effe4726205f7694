package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/shouni/gemini-ad-kit/internal/builder"
	"github.com/shouni/gemini-ad-kit/internal/config"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// batchCmd は、複数の商品JSONから広告画像をまとめて生成するのだ。
var batchCmd = &cobra.Command{
	Use:   "batch [product.json...]",
	Short: "複数の商品JSONから広告画像をまとめて生成しますなのだ。",
	Long: `引数に渡した商品JSONごとに広告画像を生成するのだ。
商品同士は独立しているので並列に処理し、生成APIへのリクエスト間隔はレートリミッターで制御するのだよ。
1件失敗しても他の商品の生成は続けるのだ。`,
	Args: cobra.MinimumNArgs(1),
	RunE: batchCommand,
}

func init() {
	batchCmd.Flags().IntVarP(&opts.Concurrency, "concurrency", "c", config.DefaultConcurrency, "同時に生成する商品数の上限なのだ。")
	batchCmd.Flags().DurationVar(&opts.RateLimit, "rate-limit", config.DefaultRateLimit, "生成リクエストを送る最小間隔なのだ。")
}

func batchCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	appCtx, err := builder.BuildAppContext(ctx, appCfg)
	if err != nil {
		return err
	}

	slog.Info("バッチ生成を開始するのだ", "products", len(args), "concurrency", opts.Concurrency, "rate_limit", opts.RateLimit)
	return runBatch(ctx, appCtx, args, opts.Concurrency, opts.RateLimit)
}

// runBatch は商品ごとに広告を生成し、失敗をまとめて返すのだ。
func runBatch(ctx context.Context, appCtx *builder.AppContext, paths []string, concurrency int, interval time.Duration) error {
	if concurrency <= 0 {
		concurrency = 1
	}
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	limiter := rate.NewLimiter(limit, 1)

	errs := make([]error, len(paths))
	var succeeded atomic.Int32

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)
	for i, path := range paths {
		eg.Go(func() error {
			if err := limiter.Wait(egCtx); err != nil {
				return err
			}

			product, err := loadProduct(egCtx, appCtx.Reader, path)
			if err != nil {
				slog.WarnContext(egCtx, "商品JSONを読み込めなかったのでスキップするのだ", "product", path, "error", err)
				errs[i] = err
				return nil
			}

			out, err := generateOne(egCtx, appCtx, product, nil, fmt.Sprintf("%03d_", i+1))
			if err != nil {
				slog.WarnContext(egCtx, "商品の広告生成に失敗したのだ", "product", path, "error", err)
				errs[i] = fmt.Errorf("%s: %w", path, err)
				return nil
			}
			succeeded.Add(1)
			slog.InfoContext(egCtx, "広告画像を保存したのだ", "product", path, "path", out)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("バッチ生成が中断されたのだ: %w", err)
	}

	slog.Info("バッチ生成が完了したのだ", "succeeded", succeeded.Load(), "failed", len(paths)-int(succeeded.Load()))
	return errors.Join(errs...)
}
