package imaging

import "image"

// AdjustOptions holds multiplicative color adjustment factors. 1.0 is a
// no-op for each.
type AdjustOptions struct {
	Brightness float64
	Contrast   float64
	Saturation float64
}

// Adjust applies brightness, contrast and saturation adjustments per pixel
// and returns a new buffer. Brightness scales each channel; contrast scales
// the distance from mid-gray; saturation scales the distance from the
// pixel's luma. Alpha is untouched.
func Adjust(src *image.NRGBA, opts AdjustOptions) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := src.PixOffset(b.Min.X+x, b.Min.Y+y)
			r := float64(src.Pix[o])
			g := float64(src.Pix[o+1])
			bl := float64(src.Pix[o+2])

			r *= opts.Brightness
			g *= opts.Brightness
			bl *= opts.Brightness

			r = (r-128)*opts.Contrast + 128
			g = (g-128)*opts.Contrast + 128
			bl = (bl-128)*opts.Contrast + 128

			// Rec. 601 luma
			luma := 0.299*r + 0.587*g + 0.114*bl
			r = luma + (r-luma)*opts.Saturation
			g = luma + (g-luma)*opts.Saturation
			bl = luma + (bl-luma)*opts.Saturation

			d := dst.PixOffset(x, y)
			dst.Pix[d] = clampByte(r)
			dst.Pix[d+1] = clampByte(g)
			dst.Pix[d+2] = clampByte(bl)
			dst.Pix[d+3] = src.Pix[o+3]
		}
	}

	return dst
}
