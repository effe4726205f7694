package palette

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sort"

	"github.com/disintegration/imaging"

	"github.com/shouni/gemini-ad-kit/pkg/domain"
	"github.com/shouni/gemini-ad-kit/pkg/imgutil"
)

const (
	// DefaultColorCount は抽出する支配色のデフォルト数です。
	DefaultColorCount = 5
	// sampleSize は解析前に縮小する一辺のピクセル数です。
	sampleSize = 150
	// nearWhiteThreshold を全チャンネルで超えるピクセルは背景とみなして除外します。
	nearWhiteThreshold = 240

	kmeansSeed     = 42
	kmeansRestarts = 4
	kmeansMaxIter  = 50
)

var (
	// NeutralFallback は白以外のピクセルが残らなかった場合の支配色です。
	NeutralFallback = []domain.RGB{{R: 0x33, G: 0x33, B: 0x33}, {R: 0x66, G: 0x66, B: 0x66}, {R: 0x99, G: 0x99, B: 0x99}}
	// ErrorFallback は画像を解析できなかった場合の支配色です。
	ErrorFallback = []domain.RGB{{R: 0x4a, G: 0x90, B: 0xe2}, {R: 0x7b, G: 0x68, B: 0xee}, {R: 0x50, G: 0xc8, B: 0x78}}
)

type point [3]float64

// ExtractDominantColors は参照画像から支配色を最大 k 色、出現数の多い順に返します。
// 解析に失敗してもエラーは返さず、フォールバックの色を返します。
func ExtractDominantColors(data []byte, k int) (colors []domain.RGB) {
	if k <= 0 {
		k = DefaultColorCount
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Error("支配色の抽出中にパニックが発生しました", "panic", r)
			colors = cloneColors(ErrorFallback)
		}
	}()

	pixels, err := samplePixels(data)
	if err != nil {
		slog.Warn("支配色の抽出に失敗したためデフォルト色を使用します", "error", err)
		return cloneColors(ErrorFallback)
	}
	if len(pixels) == 0 {
		return cloneColors(NeutralFallback)
	}

	clusters := min(k, countDistinct(pixels))
	centroids, sizes := kmeans(pixels, clusters)

	order := make([]int, len(centroids))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return sizes[order[a]] > sizes[order[b]] })

	colors = make([]domain.RGB, 0, len(centroids))
	for _, idx := range order {
		colors = append(colors, toRGB(centroids[idx]))
	}
	return colors
}

// samplePixels は画像を縮小し、白に近いピクセルを除いた色の一覧を返します。
func samplePixels(data []byte) ([]point, error) {
	img, err := imgutil.Decode(data)
	if err != nil {
		return nil, err
	}
	small := imaging.Resize(img, sampleSize, sampleSize, imaging.Linear)
	if small.Bounds().Empty() {
		return nil, fmt.Errorf("縮小後の画像が空です")
	}

	pixels := make([]point, 0, sampleSize*sampleSize)
	for i := 0; i+3 < len(small.Pix); i += 4 {
		r, g, b := small.Pix[i], small.Pix[i+1], small.Pix[i+2]
		if r > nearWhiteThreshold && g > nearWhiteThreshold && b > nearWhiteThreshold {
			continue
		}
		pixels = append(pixels, point{float64(r), float64(g), float64(b)})
	}
	return pixels, nil
}

func countDistinct(pixels []point) int {
	seen := make(map[point]struct{})
	for _, p := range pixels {
		seen[p] = struct{}{}
	}
	return len(seen)
}

// kmeans は固定シードの k-means++ 初期化で複数回クラスタリングし、慣性が最小の結果を返します。
func kmeans(pixels []point, k int) ([]point, []int) {
	rng := rand.New(rand.NewSource(kmeansSeed))

	var (
		bestCentroids []point
		bestSizes     []int
		bestInertia   = math.Inf(1)
	)
	for run := 0; run < kmeansRestarts; run++ {
		centroids := seedCentroids(pixels, k, rng)
		labels := make([]int, len(pixels))
		var inertia float64
		for iter := 0; iter < kmeansMaxIter; iter++ {
			changed := false
			inertia = 0
			for i, p := range pixels {
				label, dist := nearest(p, centroids)
				if label != labels[i] {
					labels[i] = label
					changed = true
				}
				inertia += dist
			}
			centroids = recompute(pixels, labels, centroids)
			if !changed && iter > 0 {
				break
			}
		}
		if inertia < bestInertia {
			bestInertia = inertia
			bestCentroids = centroids
			bestSizes = clusterSizes(labels, k)
		}
	}
	return bestCentroids, bestSizes
}

// seedCentroids は k-means++ で初期中心を選びます。
func seedCentroids(pixels []point, k int, rng *rand.Rand) []point {
	centroids := make([]point, 0, k)
	centroids = append(centroids, pixels[rng.Intn(len(pixels))])
	dists := make([]float64, len(pixels))
	for len(centroids) < k {
		var total float64
		for i, p := range pixels {
			_, d := nearest(p, centroids)
			dists[i] = d
			total += d
		}
		if total == 0 {
			break
		}
		target := rng.Float64() * total
		chosen := len(pixels) - 1
		for i, d := range dists {
			target -= d
			if target <= 0 {
				chosen = i
				break
			}
		}
		centroids = append(centroids, pixels[chosen])
	}
	for len(centroids) < k {
		centroids = append(centroids, centroids[len(centroids)-1])
	}
	return centroids
}

func nearest(p point, centroids []point) (int, float64) {
	best, bestDist := 0, math.Inf(1)
	for i, c := range centroids {
		d := sqDist(p, c)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}

func recompute(pixels []point, labels []int, prev []point) []point {
	sums := make([]point, len(prev))
	counts := make([]int, len(prev))
	for i, p := range pixels {
		l := labels[i]
		sums[l][0] += p[0]
		sums[l][1] += p[1]
		sums[l][2] += p[2]
		counts[l]++
	}
	next := make([]point, len(prev))
	for i := range next {
		if counts[i] == 0 {
			next[i] = prev[i]
			continue
		}
		n := float64(counts[i])
		next[i] = point{sums[i][0] / n, sums[i][1] / n, sums[i][2] / n}
	}
	return next
}

func clusterSizes(labels []int, k int) []int {
	sizes := make([]int, k)
	for _, l := range labels {
		sizes[l]++
	}
	return sizes
}

func sqDist(a, b point) float64 {
	dr, dg, db := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return dr*dr + dg*dg + db*db
}

func toRGB(p point) domain.RGB {
	return domain.RGB{R: clampChannel(math.Round(p[0])), G: clampChannel(math.Round(p[1])), B: clampChannel(math.Round(p[2]))}
}

func clampChannel(v float64) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}

func cloneColors(src []domain.RGB) []domain.RGB {
	return append([]domain.RGB(nil), src...)
}
