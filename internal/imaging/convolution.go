package imaging

import "image"

// Kernel is a 3x3 convolution kernel, row-major.
type Kernel [3][3]float64

// SharpenKernel is the default avatar sharpening kernel. Its weights sum to
// 1, so it is identity-preserving on uniform regions.
var SharpenKernel = Kernel{
	{0, -1, 0},
	{-1, 5, -1},
	{0, -1, 0},
}

// Convolve applies the kernel to each pixel's R/G/B channels and returns a
// new buffer of identical dimensions. Taps that fall outside the image are
// excluded and the weighted sum is renormalized over the in-bounds weights,
// so edge pixels are treated the same as interior ones rather than darkened
// by implicit zero padding. The alpha channel is copied from the source
// pixel unchanged.
func Convolve(src *image.NRGBA, k Kernel) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sumR, sumG, sumB, weight float64

			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					sx, sy := x+kx, y+ky
					if sx < 0 || sx >= w || sy < 0 || sy >= h {
						continue
					}
					wgt := k[ky+1][kx+1]
					o := src.PixOffset(b.Min.X+sx, b.Min.Y+sy)
					sumR += wgt * float64(src.Pix[o])
					sumG += wgt * float64(src.Pix[o+1])
					sumB += wgt * float64(src.Pix[o+2])
					weight += wgt
				}
			}

			if weight != 0 {
				sumR /= weight
				sumG /= weight
				sumB /= weight
			}

			o := src.PixOffset(b.Min.X+x, b.Min.Y+y)
			d := dst.PixOffset(x, y)
			dst.Pix[d] = clampByte(sumR)
			dst.Pix[d+1] = clampByte(sumG)
			dst.Pix[d+2] = clampByte(sumB)
			dst.Pix[d+3] = src.Pix[o+3]
		}
	}

	return dst
}

// Sharpen applies the default sharpening kernel.
func Sharpen(src *image.NRGBA) *image.NRGBA {
	return Convolve(src, SharpenKernel)
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
