package facedetect

import (
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// CascadeDetector detects faces with an OpenCV Haar cascade classifier.
// Classifier state is not safe for concurrent detection, so calls are
// serialized; the Locator's single-upload gate makes contention rare.
type CascadeDetector struct {
	mu         sync.Mutex
	classifier gocv.CascadeClassifier
}

var _ Detector = (*CascadeDetector)(nil)

// NewCascadeDetector loads the cascade model from the given path.
func NewCascadeDetector(modelPath string) (*CascadeDetector, error) {
	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(modelPath) {
		_ = classifier.Close()
		return nil, fmt.Errorf("load cascade model %q", modelPath)
	}
	return &CascadeDetector{classifier: classifier}, nil
}

// DetectFaces runs the classifier over a grayscale copy of the image.
func (d *CascadeDetector) DetectFaces(img image.Image) ([]image.Rectangle, error) {
	mat, err := gocv.ImageToMatRGBA(img)
	if err != nil {
		return nil, fmt.Errorf("convert image: %w", err)
	}
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorRGBAToGray)

	d.mu.Lock()
	rects := d.classifier.DetectMultiScale(gray)
	d.mu.Unlock()

	return rects, nil
}

// Close releases the classifier. The Locator never calls it; it exists for
// tests and tools that build detectors directly.
func (d *CascadeDetector) Close() error {
	return d.classifier.Close()
}
