package facedetect

import "image"

// Detector finds face bounding boxes in a raster image. Implementations may
// be expensive to construct; the Locator owns exactly one for the process
// lifetime.
type Detector interface {
	// DetectFaces returns one axis-aligned bounding box per face found,
	// possibly empty. An error means the detector itself failed, not that
	// no face was present.
	DetectFaces(img image.Image) ([]image.Rectangle, error)
}

// FacePolicy selects which detection to use when more than one face is
// found.
type FacePolicy string

const (
	// FirstFace keeps the first detection in model order, matching the
	// original behavior.
	FirstFace FacePolicy = "first"
	// LargestFace keeps the detection with the largest bounding-box area.
	LargestFace FacePolicy = "largest"
)

// pick applies the policy to a non-empty detection list.
func (p FacePolicy) pick(faces []image.Rectangle) image.Rectangle {
	if p == LargestFace {
		best := faces[0]
		for _, f := range faces[1:] {
			if f.Dx()*f.Dy() > best.Dx()*best.Dy() {
				best = f
			}
		}
		return best
	}
	return faces[0]
}
