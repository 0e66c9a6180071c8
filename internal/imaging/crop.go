package imaging

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
)

// FaceCrop describes the square region to cut around a detected face.
type FaceCrop struct {
	Center image.Point
	Size   int
}

// FaceCropFor derives the crop for a face bounding box: a square of side
// max(width, height) * zoom, centered on the face with the vertical center
// lifted by lift * side so hair and forehead stay in frame.
func FaceCropFor(face image.Rectangle, zoom, lift float64) FaceCrop {
	fw := float64(face.Dx())
	fh := float64(face.Dy())
	side := math.Max(fw, fh) * zoom

	cx := float64(face.Min.X) + fw/2
	cy := float64(face.Min.Y) + fh/2
	cy -= lift * side

	return FaceCrop{
		Center: image.Pt(int(math.Round(cx)), int(math.Round(cy))),
		Size:   int(math.Round(side)),
	}
}

// SquareCrop extracts a size x size region centered on center, shifting the
// window back inside the image when it overflows an edge and shrinking it
// only when the image itself is smaller than the requested square. The
// result is always at least 1x1.
func SquareCrop(src *image.NRGBA, center image.Point, size int) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if size < 1 {
		size = 1
	}

	cw, ch := size, size
	if cw > w {
		cw = w
	}
	if ch > h {
		ch = h
	}

	x0 := center.X - size/2
	y0 := center.Y - size/2
	x0 = clampInt(x0, 0, w-cw)
	y0 = clampInt(y0, 0, h-ch)

	dst := image.NewNRGBA(image.Rect(0, 0, cw, ch))
	xdraw.Draw(dst, dst.Bounds(), src, image.Pt(b.Min.X+x0, b.Min.Y+y0), xdraw.Src)
	return dst
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
