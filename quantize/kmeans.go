// Package quantize derives a palette from an image with k-means clustering.
package quantize

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"golang.org/x/image/draw"

	"pixelart/palette"
)

const (
	// DefaultMaxSamples bounds how many pixels take part in clustering.
	DefaultMaxSamples = 4000
	// DefaultIterations caps Lloyd's iterations.
	DefaultIterations = 12
)

// Options tunes FromImage and KMeans. Zero values select the defaults.
type Options struct {
	MaxSamples int
	Iterations int
	// Rand picks the initial centroids. Nil uses a randomly seeded source;
	// pass a seeded generator for reproducible palettes.
	Rand *rand.Rand
}

func (o Options) withDefaults() Options {
	if o.MaxSamples < 1 {
		o.MaxSamples = DefaultMaxSamples
	}
	if o.Iterations < 1 {
		o.Iterations = DefaultIterations
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return o
}

// NewRand returns a generator seeded with seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Samples walks img in raster order with a fixed stride so that at most
// maxSamples pixels are visited, skipping fully transparent ones.
func Samples(img image.Image, maxSamples int) []palette.RGB {
	if maxSamples < 1 {
		maxSamples = DefaultMaxSamples
	}
	b := img.Bounds()
	total := b.Dx() * b.Dy()
	if total <= 0 {
		return nil
	}
	step := (total + maxSamples - 1) / maxSamples

	res := make([]palette.RGB, 0, min(total, maxSamples))
	for i := 0; i < total; i += step {
		x, y := b.Min.X+i%b.Dx(), b.Min.Y+i/b.Dx()
		c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
		if c.A == 0 {
			continue
		}
		res = append(res, palette.RGB{R: c.R, G: c.G, B: c.B})
	}
	return res
}

// Shrink resamples img to w×h with bilinear filtering.
func Shrink(img image.Image, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// FromImage samples img and clusters the samples into at most k colours.
func FromImage(img image.Image, k int, opts Options) palette.Palette {
	opts = opts.withDefaults()
	return KMeans(Samples(img, opts.MaxSamples), k, opts)
}

// KMeans clusters samples into at most k colours with Lloyd's algorithm.
// Initial centroids are distinct sample colours picked at random; clusters
// that lose all their samples keep their previous centroid. The result is
// ordered by cluster index, with duplicate centroids dropped. No samples, or
// k < 1, yields an empty palette.
func KMeans(samples []palette.RGB, k int, opts Options) palette.Palette {
	if len(samples) == 0 || k < 1 {
		return nil
	}
	opts = opts.withDefaults()

	centroids := seed(samples, k, opts.Rand)
	k = len(centroids)

	type cluster struct {
		r, g, b, count int
	}
	clusters := make([]cluster, k)
	for range opts.Iterations {
		clear(clusters)

		for _, s := range samples {
			c := &clusters[nearest(centroids, s)]
			c.r += int(s.R)
			c.g += int(s.G)
			c.b += int(s.B)
			c.count++
		}

		changed := false
		for i, c := range clusters {
			if c.count == 0 {
				continue
			}
			next := palette.RGB{
				R: roundDiv(c.r, c.count),
				G: roundDiv(c.g, c.count),
				B: roundDiv(c.b, c.count),
			}
			if next != centroids[i] {
				centroids[i] = next
				changed = true
			}
		}

		if !changed {
			break
		}
	}

	res := make(palette.Palette, 0, k)
	seen := make(map[palette.RGB]bool, k)
	for _, c := range centroids {
		if seen[c] {
			continue
		}
		seen[c] = true
		res = append(res, palette.NewEntry(c))
	}
	return res
}

// seed picks up to k distinct colours from samples in random order.
func seed(samples []palette.RGB, k int, rnd *rand.Rand) []palette.RGB {
	res := make([]palette.RGB, 0, k)
	used := make(map[palette.RGB]bool, k)
	for _, i := range rnd.Perm(len(samples)) {
		s := samples[i]
		if used[s] {
			continue
		}
		used[s] = true
		res = append(res, s)
		if len(res) == k {
			break
		}
	}
	return res
}

func nearest(centroids []palette.RGB, s palette.RGB) int {
	best, bestDist := 0, math.MaxInt
	for i, c := range centroids {
		if d := s.Distance(c); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func roundDiv(sum, n int) uint8 {
	return uint8(math.Round(float64(sum) / float64(n)))
}
