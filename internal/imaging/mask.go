package imaging

import "image"

// CircleMask returns a copy of the image with every pixel outside the given
// circle made fully transparent, the compositing the browser build did with
// a destination-in arc fill. Pixels inside the circle are untouched. The
// center is in the image's local coordinates.
func CircleMask(src *image.NRGBA, center image.Point, radius float64) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	r2 := radius * radius
	for y := 0; y < h; y++ {
		dy := float64(y) - float64(center.Y)
		for x := 0; x < w; x++ {
			d := dst.PixOffset(x, y)
			dx := float64(x) - float64(center.X)
			if dx*dx+dy*dy > r2 {
				dst.Pix[d] = 0
				dst.Pix[d+1] = 0
				dst.Pix[d+2] = 0
				dst.Pix[d+3] = 0
				continue
			}
			o := src.PixOffset(b.Min.X+x, b.Min.Y+y)
			copy(dst.Pix[d:d+4], src.Pix[o:o+4])
		}
	}

	return dst
}
