package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/shouni/gemini-ad-kit/internal/config"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
)

const appName = "gemini-ad-kit"

var (
	opts   config.GenerateOptions
	appCfg *config.Config
)

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- 出力設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "o", config.DefaultOutputDir, "広告画像の保存先ディレクトリ（ローカル or gs://...）なのだ。")

	// --- 生成モード ---
	rootCmd.PersistentFlags().BoolVar(&opts.UseTextOverlay, "overlay", false, "テキストなし画像を生成して後から文字を合成するのだ。")
	rootCmd.PersistentFlags().BoolVar(&opts.WithConcept, "concept", false, "生成前に広告コンセプト文を作らせるのだ。")

	// --- 実行制御 ---
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "参照画像ダウンロードのタイムアウトなのだ。")
}

// preRunAppE は、コマンド実行前に設定の読み込みと必須チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	appCfg = config.LoadConfig()
	appCfg.ApplyOptions(opts)

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: appCfg.LogLevel})))

	if !requiresAPIKey(cmd) {
		return nil
	}
	if appCfg.GeminiAPIKey == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY (または GOOGLE_API_KEY) が設定されていません。Gemini APIの利用には必須なのだ")
	}
	return nil
}

func requiresAPIKey(cmd *cobra.Command) bool {
	return cmd.Name() != paletteCmd.Name()
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
func Execute() {
	clibase.Execute(
		appName,
		addAppFlags,
		preRunAppE,
		generateCmd,
		batchCmd,
		paletteCmd,
	)
}
