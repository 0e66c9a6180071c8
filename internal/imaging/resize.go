package imaging

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
)

// Downscale shrinks the image so its longer side equals maxSide, preserving
// aspect ratio. Images already within bounds are returned as an NRGBA copy
// unchanged. Resampling is nearest-neighbor: the pipeline prefers crisp
// pixels over interpolation blur, and the enhance stage sharpens afterwards
// anyway.
func Downscale(src image.Image, maxSide int) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	longer := w
	if h > longer {
		longer = h
	}
	if maxSide <= 0 || longer <= maxSide {
		return ToNRGBA(src)
	}

	scale := float64(maxSide) / float64(longer)
	nw := int(math.Round(float64(w) * scale))
	nh := int(math.Round(float64(h) * scale))
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

// ToNRGBA returns the image as a non-premultiplied RGBA buffer anchored at
// the origin, copying even when the source is already NRGBA so callers may
// mutate the result freely.
func ToNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), src, b.Min, xdraw.Src)
	return dst
}
