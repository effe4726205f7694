package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/shouni/gemini-ad-kit/pkg/domain"
	"github.com/shouni/gemini-ad-kit/pkg/palette"

	"github.com/spf13/cobra"
)

var paletteColors int

// paletteCmd は、画像の支配色と背景スタイルを確認するためのコマンドなのだ。
var paletteCmd = &cobra.Command{
	Use:   "palette <image> [title]",
	Short: "画像から支配色・パレット・背景スタイルを表示しますなのだ。",
	Long: `ローカルの画像ファイルから支配色を抽出し、広告背景に使うパレットと
背景スタイルの文章を表示するのだ。ネットワークには接続しないのだよ。`,
	Args: cobra.RangeArgs(1, 2),
	RunE: paletteCommand,
}

func init() {
	paletteCmd.Flags().IntVarP(&paletteColors, "colors", "k", palette.DefaultColorCount, "抽出する支配色の数なのだ。")
}

func paletteCommand(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("画像ファイルの読み込みに失敗したのだ: %w", err)
	}
	title := ""
	if len(args) > 1 {
		title = args[1]
	}
	return printPalette(cmd.OutOrStdout(), data, title, paletteColors)
}

func printPalette(w io.Writer, data []byte, title string, k int) error {
	colors := palette.ExtractDominantColors(data, k)
	p := palette.BuildPalette(colors)

	fmt.Fprintln(w, "dominant colors:")
	for i, c := range colors {
		fmt.Fprintf(w, "  %d. %s rgb(%d, %d, %d)\n", i+1, c.Hex(), c.R, c.G, c.B)
	}
	fmt.Fprintln(w, "palette:")
	for _, entry := range []struct {
		name  string
		color domain.RGB
	}{
		{"primary", p.Primary},
		{"light", p.Light},
		{"dark", p.Dark},
		{"complement", p.Complement},
		{"neutral", p.Neutral},
	} {
		fmt.Fprintf(w, "  %-10s %s\n", entry.name, entry.color.Hex())
	}
	_, err := fmt.Fprintf(w, "background:\n  %s\n", palette.SelectBackgroundStyle(title, p))
	return err
}
