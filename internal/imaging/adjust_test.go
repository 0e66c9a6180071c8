package imaging

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdjustIdentityFactors(t *testing.T) {
	src := uniformImage(4, 4, color.NRGBA{R: 40, G: 90, B: 210, A: 255})

	dst := Adjust(src, AdjustOptions{Brightness: 1, Contrast: 1, Saturation: 1})

	assert.Equal(t, src.Pix, dst.Pix)
}

func TestAdjustBrightnessScalesChannels(t *testing.T) {
	src := uniformImage(2, 2, color.NRGBA{R: 100, G: 100, B: 100, A: 255})

	dst := Adjust(src, AdjustOptions{Brightness: 1.5, Contrast: 1, Saturation: 1})

	// Gray stays gray through contrast and saturation; 100*1.5 = 150.
	assert.Equal(t, color.NRGBA{R: 150, G: 150, B: 150, A: 255}, dst.NRGBAAt(0, 0))
}

func TestAdjustContrastPivotsOnMidGray(t *testing.T) {
	src := uniformImage(2, 1, color.NRGBA{R: 128, G: 128, B: 128, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{R: 228, G: 228, B: 228, A: 255})

	dst := Adjust(src, AdjustOptions{Brightness: 1, Contrast: 2, Saturation: 1})

	assert.Equal(t, uint8(128), dst.NRGBAAt(0, 0).R)
	// (228-128)*2 + 128 = 328, clamped.
	assert.Equal(t, uint8(255), dst.NRGBAAt(1, 0).R)
}

func TestAdjustSaturationLeavesGrayAlone(t *testing.T) {
	src := uniformImage(2, 2, color.NRGBA{R: 77, G: 77, B: 77, A: 255})

	dst := Adjust(src, AdjustOptions{Brightness: 1, Contrast: 1, Saturation: 1.2})

	assert.Equal(t, src.Pix, dst.Pix)
}

func TestAdjustSaturationSpreadsChannels(t *testing.T) {
	src := uniformImage(1, 1, color.NRGBA{R: 200, G: 100, B: 100, A: 255})

	dst := Adjust(src, AdjustOptions{Brightness: 1, Contrast: 1, Saturation: 1.2})

	got := dst.NRGBAAt(0, 0)
	assert.Greater(t, got.R, uint8(200))
	assert.Less(t, got.G, uint8(100))
	assert.Less(t, got.B, uint8(100))
}

func TestAdjustPreservesAlpha(t *testing.T) {
	src := uniformImage(2, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 99})

	dst := Adjust(src, AdjustOptions{Brightness: 1.05, Contrast: 1.05, Saturation: 1.2})

	assert.Equal(t, uint8(99), dst.NRGBAAt(1, 1).A)
}
