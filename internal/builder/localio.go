package builder

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const gcsScheme = "gs://"

// localReader は GCS が使えない環境向けのローカルファイル専用リーダーなのだ。
type localReader struct{}

func (localReader) Open(_ context.Context, path string) (io.ReadCloser, error) {
	if strings.HasPrefix(path, gcsScheme) {
		return nil, fmt.Errorf("GCSが初期化されていないため %s は読めないのだ", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ファイルを開けなかったのだ: %w", err)
	}
	return f, nil
}

// localWriter は GCS が使えない環境向けのローカルファイル専用ライターなのだ。
type localWriter struct{}

func (localWriter) Write(_ context.Context, path string, r io.Reader, _ string) error {
	if strings.HasPrefix(path, gcsScheme) {
		return fmt.Errorf("GCSが初期化されていないため %s へは書けないのだ", path)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("出力ディレクトリの作成に失敗したのだ: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("出力ファイルの作成に失敗したのだ: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return fmt.Errorf("出力ファイルへの書き込みに失敗したのだ: %w", err)
	}
	return f.Close()
}

// JoinOutputPath は出力先ディレクトリとファイル名を連結するのだ。gs:// はスラッシュで連結するのだ。
func JoinOutputPath(dir, name string) string {
	if strings.HasPrefix(dir, gcsScheme) {
		return strings.TrimSuffix(dir, "/") + "/" + name
	}
	return filepath.Join(dir, name)
}
