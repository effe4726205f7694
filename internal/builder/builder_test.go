package builder

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/shouni/gemini-ad-kit/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		VisionModel:      config.DefaultVisionModel,
		TextModel:        config.DefaultTextModel,
		CleanImageModel:  config.DefaultImageModel,
		TextToImageModel: config.DefaultImageModel,
		FallbackModel:    config.DefaultImageModel,
		HTTPTimeout:      config.DefaultHTTPTimeout,
	}
}

func TestBuildAdPipeline(t *testing.T) {
	t.Run("全ての依存が揃えばパイプラインを組み立てられるのだ", func(t *testing.T) {
		p, err := BuildAdPipeline(testConfig(), Clients{
			HTTP:    fakeHTTP{},
			AI:      fakeAI{},
			Backend: fakeBackend{},
		})
		require.NoError(t, err)
		assert.NotNil(t, p)
	})

	t.Run("HTTPクライアントが無ければエラーなのだ", func(t *testing.T) {
		_, err := BuildAdPipeline(testConfig(), Clients{AI: fakeAI{}, Backend: fakeBackend{}})
		assert.Error(t, err)
	})

	t.Run("画像モデルが空ならエラーなのだ", func(t *testing.T) {
		cfg := testConfig()
		cfg.FallbackModel = ""
		_, err := BuildAdPipeline(cfg, Clients{HTTP: fakeHTTP{}, AI: fakeAI{}, Backend: fakeBackend{}})
		assert.Error(t, err)
	})
}

func TestLocalIO(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "ad.jpg")

	t.Run("書き込んだ内容をそのまま読み戻せるのだ", func(t *testing.T) {
		require.NoError(t, localWriter{}.Write(ctx, path, bytes.NewReader([]byte("jpeg")), "image/jpeg"))

		rc, err := localReader{}.Open(ctx, path)
		require.NoError(t, err)
		defer rc.Close()
		got, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, []byte("jpeg"), got)
	})

	t.Run("gs:// はローカル入出力では扱えないのだ", func(t *testing.T) {
		_, err := localReader{}.Open(ctx, "gs://bucket/p.json")
		assert.Error(t, err)
		assert.Error(t, localWriter{}.Write(ctx, "gs://bucket/a.jpg", bytes.NewReader(nil), "image/jpeg"))
	})

	t.Run("存在しないファイルはエラーなのだ", func(t *testing.T) {
		_, err := localReader{}.Open(ctx, filepath.Join(dir, "missing.json"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestJoinOutputPath(t *testing.T) {
	assert.Equal(t, "gs://bucket/ads/a.jpg", JoinOutputPath("gs://bucket/ads/", "a.jpg"))
	assert.Equal(t, filepath.Join("output", "a.jpg"), JoinOutputPath("output", "a.jpg"))
}
