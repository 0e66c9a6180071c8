// Package avatar turns a raw photo upload into the stored avatar image: a
// downscaled, enhanced, background-free PNG cropped to a circle around the
// face. Both external stages degrade independently, so the worst case is
// the enhanced full-frame image rather than an error.
package avatar

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/vizz0r/tic-tac-toe/internal/imaging"
	"github.com/vizz0r/tic-tac-toe/internal/services/facedetect"
	"github.com/vizz0r/tic-tac-toe/internal/services/removebg"
)

// BackgroundRemover strips the background from an encoded image.
type BackgroundRemover interface {
	Remove(ctx context.Context, img []byte) (*removebg.Result, error)
}

// FaceLocator finds the face to crop around.
type FaceLocator interface {
	Locate(ctx context.Context, img image.Image) facedetect.Outcome
}

// Ensure the production implementations satisfy the pipeline interfaces
var (
	_ BackgroundRemover = (*removebg.Client)(nil)
	_ FaceLocator       = (*facedetect.Locator)(nil)
)

// Config holds the pipeline tuning knobs.
type Config struct {
	// MaxDimension bounds the longer image side before any processing.
	MaxDimension int
	// Brightness, Contrast and Saturation are the enhancement factors,
	// 1.0 meaning unchanged.
	Brightness float64
	Contrast   float64
	Saturation float64
	// Zoom expands the detected face box to the crop square.
	Zoom float64
	// VerticalLift shifts the crop center up by this fraction of the
	// square side, keeping the forehead in frame.
	VerticalLift float64
}

// DefaultConfig returns the stock pipeline settings.
func DefaultConfig() Config {
	return Config{
		MaxDimension: 1200,
		Brightness:   1.05,
		Contrast:     1.05,
		Saturation:   1.20,
		Zoom:         1.4,
		VerticalLift: 0.10,
	}
}

// Pipeline runs the upload-to-avatar transformation.
type Pipeline struct {
	cfg     Config
	remover BackgroundRemover
	locator FaceLocator
	logger  *slog.Logger
}

// New creates a pipeline over the given external stages.
func New(cfg Config, remover BackgroundRemover, locator FaceLocator, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		remover: remover,
		locator: locator,
		logger:  logger,
	}
}

// Process transforms raw upload bytes into a PNG data URI. The stages run
// in a fixed order: decode, downscale, enhance, background removal, face
// crop with a circular mask. Only decoding and encoding can fail; the
// external stages fall back to their input.
func (p *Pipeline) Process(ctx context.Context, raw []byte) (string, error) {
	img, err := imaging.Decode(raw)
	if err != nil {
		return "", err
	}

	img = imaging.Downscale(img, p.cfg.MaxDimension)
	img = imaging.Adjust(img, imaging.AdjustOptions{
		Brightness: p.cfg.Brightness,
		Contrast:   p.cfg.Contrast,
		Saturation: p.cfg.Saturation,
	})
	img = imaging.Sharpen(img)

	img, err = p.removeBackground(ctx, img)
	if err != nil {
		return "", err
	}

	img = p.cropToFace(ctx, img)

	data, err := imaging.EncodePNG(img)
	if err != nil {
		return "", fmt.Errorf("encode avatar: %w", err)
	}
	return imaging.ToDataURI(data), nil
}

// removeBackground round-trips the image through the removal service. A
// skipped removal or an undecodable service response keeps the enhanced
// image; only context cancellation propagates as an error.
func (p *Pipeline) removeBackground(ctx context.Context, img *image.NRGBA) (*image.NRGBA, error) {
	encoded, err := imaging.EncodePNG(img)
	if err != nil {
		return nil, fmt.Errorf("encode for background removal: %w", err)
	}

	result, err := p.remover.Remove(ctx, encoded)
	if err != nil {
		return nil, err
	}
	if result.Skipped {
		return img, nil
	}

	processed, err := imaging.Decode(result.Data)
	if err != nil {
		p.logger.Warn("background removal returned undecodable image, keeping original",
			slog.String("error", err.Error()),
		)
		return img, nil
	}
	return processed, nil
}

// cropToFace crops a circular head shot around the detected face. With no
// detection the image passes through untouched.
func (p *Pipeline) cropToFace(ctx context.Context, img *image.NRGBA) *image.NRGBA {
	outcome := p.locator.Locate(ctx, img)
	if !outcome.Found {
		return img
	}

	crop := imaging.FaceCropFor(outcome.Box, p.cfg.Zoom, p.cfg.VerticalLift)
	masked := imaging.CircleMask(img, crop.Center, float64(crop.Size)/2)
	return imaging.SquareCrop(masked, crop.Center, crop.Size)
}
