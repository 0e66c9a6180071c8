package facedetect

import (
	"context"
	"errors"
	"image"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/vizz0r/tic-tac-toe/internal/testutil"
)

type fakeDetector struct {
	faces []image.Rectangle
	err   error
	delay time.Duration
	calls atomic.Int32
}

func (d *fakeDetector) DetectFaces(img image.Image) ([]image.Rectangle, error) {
	d.calls.Add(1)
	if d.delay > 0 {
		time.Sleep(d.delay)
	}
	return d.faces, d.err
}

type LocatorTestSuite struct {
	suite.Suite
}

func TestLocatorTestSuite(t *testing.T) {
	suite.Run(t, new(LocatorTestSuite))
}

func (s *LocatorTestSuite) img() image.Image {
	return image.NewNRGBA(image.Rect(0, 0, 400, 400))
}

func (s *LocatorTestSuite) TestFaceFound() {
	box := image.Rect(100, 100, 300, 300)
	det := &fakeDetector{faces: []image.Rectangle{box}}
	loc := NewWithDetector(det, DefaultConfig(), testutil.NopLogger())

	out := loc.Locate(context.Background(), s.img())

	s.True(out.Found)
	s.Equal(box, out.Box)
}

func (s *LocatorTestSuite) TestFirstFacePolicy() {
	first := image.Rect(10, 10, 50, 50)
	bigger := image.Rect(100, 100, 300, 300)
	det := &fakeDetector{faces: []image.Rectangle{first, bigger}}
	cfg := DefaultConfig()
	cfg.Policy = FirstFace
	loc := NewWithDetector(det, cfg, testutil.NopLogger())

	out := loc.Locate(context.Background(), s.img())

	s.True(out.Found)
	s.Equal(first, out.Box)
}

func (s *LocatorTestSuite) TestLargestFacePolicy() {
	first := image.Rect(10, 10, 50, 50)
	bigger := image.Rect(100, 100, 300, 300)
	det := &fakeDetector{faces: []image.Rectangle{first, bigger}}
	cfg := DefaultConfig()
	cfg.Policy = LargestFace
	loc := NewWithDetector(det, cfg, testutil.NopLogger())

	out := loc.Locate(context.Background(), s.img())

	s.True(out.Found)
	s.Equal(bigger, out.Box)
}

func (s *LocatorTestSuite) TestNoFaces() {
	det := &fakeDetector{}
	loc := NewWithDetector(det, DefaultConfig(), testutil.NopLogger())

	out := loc.Locate(context.Background(), s.img())

	s.False(out.Found)
}

func (s *LocatorTestSuite) TestDetectorError() {
	det := &fakeDetector{err: errors.New("model exploded")}
	loc := NewWithDetector(det, DefaultConfig(), testutil.NopLogger())

	out := loc.Locate(context.Background(), s.img())

	s.False(out.Found)
}

func (s *LocatorTestSuite) TestTimeout() {
	det := &fakeDetector{
		faces: []image.Rectangle{image.Rect(0, 0, 100, 100)},
		delay: 500 * time.Millisecond,
	}
	cfg := DefaultConfig()
	cfg.Timeout = 20 * time.Millisecond
	loc := NewWithDetector(det, cfg, testutil.NopLogger())

	out := loc.Locate(context.Background(), s.img())

	s.False(out.Found)
}

func (s *LocatorTestSuite) TestCancelledContext() {
	det := &fakeDetector{
		faces: []image.Rectangle{image.Rect(0, 0, 100, 100)},
		delay: 500 * time.Millisecond,
	}
	loc := NewWithDetector(det, DefaultConfig(), testutil.NopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := loc.Locate(ctx, s.img())

	s.False(out.Found)
}

func (s *LocatorTestSuite) TestInitRetriedAfterFailure() {
	det := &fakeDetector{faces: []image.Rectangle{image.Rect(0, 0, 100, 100)}}
	var attempts atomic.Int32
	loc := &Locator{
		cfg:    DefaultConfig(),
		logger: testutil.NopLogger(),
		newDetector: func(context.Context) (Detector, error) {
			if attempts.Add(1) == 1 {
				return nil, errors.New("model download failed")
			}
			return det, nil
		},
	}

	// The failed attempt degrades this call only
	s.False(loc.Locate(context.Background(), s.img()).Found)

	// The next call retries the build and succeeds
	s.True(loc.Locate(context.Background(), s.img()).Found)
	s.Equal(int32(2), attempts.Load())

	// A successful build is memoized
	s.True(loc.Locate(context.Background(), s.img()).Found)
	s.Equal(int32(2), attempts.Load())
}

func (s *LocatorTestSuite) TestInitRunsDetachedFromRequestContext() {
	var initCtxErr error
	loc := &Locator{
		cfg:    DefaultConfig(),
		logger: testutil.NopLogger(),
		newDetector: func(ctx context.Context) (Detector, error) {
			initCtxErr = ctx.Err()
			return &fakeDetector{}, nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	loc.Locate(ctx, s.img())

	s.NoError(initCtxErr)
}

func (s *LocatorTestSuite) TestDetectorBuiltOnce() {
	det := &fakeDetector{faces: []image.Rectangle{image.Rect(0, 0, 100, 100)}}
	var builds atomic.Int32
	loc := &Locator{
		cfg:    DefaultConfig(),
		logger: testutil.NopLogger(),
		newDetector: func(context.Context) (Detector, error) {
			builds.Add(1)
			return det, nil
		},
	}

	s.True(loc.Locate(context.Background(), s.img()).Found)
	s.True(loc.Locate(context.Background(), s.img()).Found)
	s.Equal(int32(1), builds.Load())
	s.Equal(int32(2), det.calls.Load())
}
