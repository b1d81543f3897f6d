package colour

import (
	"errors"
	"fmt"
	"image"
	"math"
	mathrand "math/rand/v2"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// MaxSamples bounds how many pixels Extract clusters.
const MaxSamples = 2000

// ErrEmptyImage is returned when an image has no opaque pixels to sample.
var ErrEmptyImage = errors.New("no pixels found in image")

// Cluster is one extracted colour and the share of sampled pixels it covers.
type Cluster struct {
	Hex    string
	Weight float64
}

// KMeans clusters image pixels in CIE L*a*b* space.
type KMeans struct {
	MaxIterations int
	// Convergence is the mean centroid movement, in Lab distance, below
	// which iteration stops.
	Convergence float64
	rng         *mathrand.Rand
}

// NewKMeans returns a k-means extractor seeded from rng.
func NewKMeans(rng *mathrand.Rand) *KMeans {
	return &KMeans{MaxIterations: 20, Convergence: 0.002, rng: rng}
}

// Extract returns up to k dominant colours of img, heaviest first. Images
// with k or fewer distinct colours return those colours directly.
func (e *KMeans) Extract(img image.Image, k int) ([]Cluster, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if k < 1 {
		return nil, fmt.Errorf("colour count must be at least 1, got %d", k)
	}

	points := samplePixels(img)
	if len(points) == 0 {
		return nil, ErrEmptyImage
	}

	if distinct := distinctColours(points); len(distinct) <= k {
		return distinct, nil
	}

	centroids := e.seedCentroids(points, k)
	assign := make([]int, len(points))
	for range e.MaxIterations {
		for i, p := range points {
			assign[i] = nearest(p, centroids)
		}
		next := e.recenter(points, assign, k)
		moved := 0.0
		for i := range centroids {
			moved += centroids[i].DistanceLab(next[i])
		}
		centroids = next
		if moved/float64(k) < e.Convergence {
			break
		}
	}

	counts := make([]int, k)
	for i, p := range points {
		assign[i] = nearest(p, centroids)
		counts[assign[i]]++
	}

	out := make([]Cluster, 0, k)
	seen := make(map[string]int)
	for i, c := range centroids {
		if counts[i] == 0 {
			continue
		}
		hex := c.Clamped().Hex()
		w := float64(counts[i]) / float64(len(points))
		// Two centroids can round to the same hex; merge them.
		if j, ok := seen[hex]; ok {
			out[j].Weight += w
			continue
		}
		seen[hex] = len(out)
		out = append(out, Cluster{Hex: hex, Weight: w})
	}
	sortClusters(out)
	return out, nil
}

// Hexes returns the cluster colours in order.
func Hexes(clusters []Cluster) []string {
	out := make([]string, len(clusters))
	for i, c := range clusters {
		out[i] = c.Hex
	}
	return out
}

// samplePixels grid-samples up to MaxSamples opaque pixels.
func samplePixels(img image.Image) []colorful.Color {
	b := img.Bounds()
	total := b.Dx() * b.Dy()
	step := 1
	if total > MaxSamples {
		step = max(int(math.Sqrt(float64(total)/float64(MaxSamples))), 1)
	}

	points := make([]colorful.Color, 0, min(total, MaxSamples))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			px := img.At(x, y)
			if _, _, _, a := px.RGBA(); a < 0x8000 {
				continue
			}
			c, _ := colorful.MakeColor(px)
			points = append(points, c)
			if len(points) >= MaxSamples {
				return points
			}
		}
	}
	return points
}

func distinctColours(points []colorful.Color) []Cluster {
	counts := make(map[string]int)
	order := []string{}
	for _, p := range points {
		hex := p.Hex()
		if counts[hex] == 0 {
			order = append(order, hex)
		}
		counts[hex]++
	}
	out := make([]Cluster, len(order))
	for i, hex := range order {
		out[i] = Cluster{Hex: hex, Weight: float64(counts[hex]) / float64(len(points))}
	}
	sortClusters(out)
	return out
}

// seedCentroids picks initial centroids with k-means++.
func (e *KMeans) seedCentroids(points []colorful.Color, k int) []colorful.Color {
	centroids := make([]colorful.Color, 0, k)
	centroids = append(centroids, points[e.rng.IntN(len(points))])

	dist := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, p := range points {
			d := p.DistanceLab(centroids[nearest(p, centroids)])
			dist[i] = d * d
			total += dist[i]
		}
		if total == 0 {
			centroids = append(centroids, centroids[len(centroids)-1])
			continue
		}
		target := e.rng.Float64() * total
		pick := len(points) - 1
		for i, d := range dist {
			target -= d
			if target <= 0 {
				pick = i
				break
			}
		}
		centroids = append(centroids, points[pick])
	}
	return centroids
}

func (e *KMeans) recenter(points []colorful.Color, assign []int, k int) []colorful.Color {
	type acc struct {
		l, a, b float64
		n       int
	}
	sums := make([]acc, k)
	for i, p := range points {
		l, a, b := p.Lab()
		s := &sums[assign[i]]
		s.l += l
		s.a += a
		s.b += b
		s.n++
	}

	out := make([]colorful.Color, k)
	for i, s := range sums {
		if s.n == 0 {
			out[i] = points[e.rng.IntN(len(points))]
			continue
		}
		n := float64(s.n)
		out[i] = colorful.Lab(s.l/n, s.a/n, s.b/n)
	}
	return out
}

func nearest(p colorful.Color, centroids []colorful.Color) int {
	best, bestDist := 0, math.MaxFloat64
	for i, c := range centroids {
		if d := p.DistanceLab(c); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func sortClusters(cs []Cluster) {
	sort.SliceStable(cs, func(i, j int) bool { return cs[i].Weight > cs[j].Weight })
}
