package theme

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"sort"

	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrDecode is wrapped when an image cannot be turned into a palette.
var ErrDecode = errors.New("image decode failed")

const (
	sampleMaxDimension = 64
	quantizeBits       = 5
	clusterCount       = 5
	alphaThreshold     = 16
	lightnessMidpoint  = 0.5
)

// cluster is one quantized color bin
type cluster struct {
	key   uint32
	count int
	sumR  int
	sumG  int
	sumB  int
}

func (c cluster) mean() RGB {
	return RGB{
		uint8(c.sumR / c.count),
		uint8(c.sumG / c.count),
		uint8(c.sumB / c.count),
	}
}

// Extract decodes an image and derives its palette: the darkest dominant
// color becomes the background, the lightest the foreground. On failure it
// returns DefaultPalette along with an error wrapping ErrDecode.
func Extract(ctx context.Context, data []byte) (Palette, error) {
	if err := ctx.Err(); err != nil {
		return DefaultPalette(), err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return DefaultPalette(), fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if img.Bounds().Empty() {
		return DefaultPalette(), fmt.Errorf("%w: %s image has no pixels", ErrDecode, format)
	}
	if err := ctx.Err(); err != nil {
		return DefaultPalette(), err
	}

	sampled := downscale(img, sampleMaxDimension)
	if err := ctx.Err(); err != nil {
		return DefaultPalette(), err
	}

	clusters := dominantClusters(sampled, clusterCount)
	if len(clusters) == 0 {
		return DefaultPalette(), fmt.Errorf("%w: no opaque pixels", ErrDecode)
	}
	return paletteFromClusters(clusters), nil
}

// downscale converts img to NRGBA, shrinking it so the long side is at most
// maxDim pixels.
func downscale(img image.Image, maxDim int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
		return dst
	}

	tw, th := maxDim, maxDim
	if w > h {
		th = max(1, h*maxDim/w)
	} else {
		tw = max(1, w*maxDim/h)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, tw, th))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// dominantClusters bins opaque pixels by their top quantizeBits per channel
// and returns the n most populated bins.
func dominantClusters(img *image.NRGBA, n int) []cluster {
	shift := 8 - quantizeBits
	bins := make(map[uint32]*cluster)

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[(y-b.Min.Y)*img.Stride:]
		for x := 0; x < b.Dx(); x++ {
			px := row[x*4 : x*4+4]
			if px[3] < alphaThreshold {
				continue
			}
			r, g, bl := px[0], px[1], px[2]
			key := uint32(r>>shift)<<(2*quantizeBits) | uint32(g>>shift)<<quantizeBits | uint32(bl>>shift)
			c, ok := bins[key]
			if !ok {
				c = &cluster{key: key}
				bins[key] = c
			}
			c.count++
			c.sumR += int(r)
			c.sumG += int(g)
			c.sumB += int(bl)
		}
	}

	out := make([]cluster, 0, len(bins))
	for _, c := range bins {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].key < out[j].key
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// paletteFromClusters sorts clusters by lightness and picks the extremes.
func paletteFromClusters(clusters []cluster) Palette {
	colors := make([]RGB, len(clusters))
	for i, c := range clusters {
		colors[i] = c.mean()
	}
	sort.SliceStable(colors, func(i, j int) bool {
		return colors[i].Lightness() < colors[j].Lightness()
	})

	bg := colors[0]
	fg := colors[len(colors)-1]
	if bg == fg {
		fg = contrastFor(bg)
	}
	return Palette{Background: bg, Foreground: fg, RGB: bg}
}

// contrastFor picks black or white, whichever is visible on c.
func contrastFor(c RGB) RGB {
	if c.Lightness() > lightnessMidpoint {
		return RGB{0, 0, 0}
	}
	return RGB{255, 255, 255}
}
