package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 名前解決を伴わないようにパブリックIPを直接指定するのだ
const publicImageURL = "https://8.8.8.8/item.png"

func TestNewReferenceLoader(t *testing.T) {
	_, err := NewReferenceLoader(nil, nil, nil, time.Hour)
	assert.ErrorContains(t, err, "httpClient is required")
}

func TestReferenceLoader_Load(t *testing.T) {
	ctx := context.Background()
	img := pngBytes(t)

	t.Run("キャッシュにある場合はダウンロードしないのだ", func(t *testing.T) {
		httpClient := &mockHTTPClient{}
		cache := &mockCache{data: map[string]interface{}{cacheKeyReference + publicImageURL: img}}
		loader, err := NewReferenceLoader(httpClient, nil, cache, time.Hour)
		require.NoError(t, err)

		got, err := loader.Load(ctx, publicImageURL)

		require.NoError(t, err)
		assert.Equal(t, img, got)
		assert.Zero(t, httpClient.calls)
	})

	t.Run("キャッシュにない場合はDLして保存するのだ", func(t *testing.T) {
		httpClient := &mockHTTPClient{fetchFunc: func(ctx context.Context, url string) ([]byte, error) {
			return img, nil
		}}
		cache := &mockCache{}
		loader, _ := NewReferenceLoader(httpClient, nil, cache, time.Hour)

		_, err := loader.Load(ctx, publicImageURL)
		require.NoError(t, err)

		_, found := cache.Get(cacheKeyReference + publicImageURL)
		assert.True(t, found)
		assert.Equal(t, 1, httpClient.calls)
	})

	t.Run("画像でないデータはエラーなのだ", func(t *testing.T) {
		httpClient := &mockHTTPClient{fetchFunc: func(ctx context.Context, url string) ([]byte, error) {
			return []byte("<html>not found</html>"), nil
		}}
		loader, _ := NewReferenceLoader(httpClient, nil, nil, 0)

		_, err := loader.Load(ctx, publicImageURL)
		assert.ErrorIs(t, err, ErrNotImage)
	})

	t.Run("プライベートネットワークへのアクセスは拒否するのだ", func(t *testing.T) {
		httpClient := &mockHTTPClient{fetchFunc: func(ctx context.Context, url string) ([]byte, error) {
			return img, nil
		}}
		loader, _ := NewReferenceLoader(httpClient, nil, nil, 0)

		_, err := loader.Load(ctx, "http://127.0.0.1/evil.png")
		assert.Error(t, err)
		assert.Zero(t, httpClient.calls)
	})

	t.Run("gs:// は ObjectReader から読むのだ", func(t *testing.T) {
		reader := &mockReader{objects: map[string][]byte{"gs://bucket/item.png": img}}
		loader, _ := NewReferenceLoader(&mockHTTPClient{}, reader, nil, 0)

		got, err := loader.Load(ctx, "gs://bucket/item.png")
		require.NoError(t, err)
		assert.Equal(t, img, got)
	})

	t.Run("reader が無ければ gs:// はエラーなのだ", func(t *testing.T) {
		loader, _ := NewReferenceLoader(&mockHTTPClient{}, nil, nil, 0)
		_, err := loader.Load(ctx, "gs://bucket/item.png")
		assert.Error(t, err)
	})
}

func TestReferenceLoader_LoadAll(t *testing.T) {
	ctx := context.Background()
	img := pngBytes(t)
	httpClient := &mockHTTPClient{fetchFunc: func(ctx context.Context, url string) ([]byte, error) {
		if url == "https://8.8.4.4/broken.png" {
			return nil, errors.New("404")
		}
		return img, nil
	}}
	loader, _ := NewReferenceLoader(httpClient, nil, nil, 0)

	refs := loader.LoadAll(ctx, []string{publicImageURL, "", "https://8.8.4.4/broken.png", "ftp://8.8.8.8/x.png"})

	require.Len(t, refs, 1)
	assert.Equal(t, publicImageURL, refs[0].URL)
}

func TestToPart(t *testing.T) {
	t.Run("画像はJPEGのパーツになるのだ", func(t *testing.T) {
		part := ToPart(pngBytes(t))
		require.NotNil(t, part)
		assert.Equal(t, "image/jpeg", part.InlineData.MIMEType)
	})

	t.Run("画像でなければ nil なのだ", func(t *testing.T) {
		assert.Nil(t, ToPart([]byte("text")))
	})
}

func TestIsSafeURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"パブリックIP", "https://8.8.8.8/a.png", false},
		{"不正なスキーム", "gopher://8.8.8.8", true},
		{"ループバック", "http://127.0.0.1/admin", true},
		{"プライベートIP (クラスA)", "http://10.255.255.254/metadata", true},
		{"リンクローカル", "http://169.254.169.254/latest/meta-data", true},
		{"パースできないURL", "::not a url", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			safe, err := isSafeURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, safe)
				return
			}
			assert.NoError(t, err)
			assert.True(t, safe)
		})
	}
}
