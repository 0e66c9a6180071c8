// Package facedetect locates a face in an avatar photo so the pipeline can
// crop around it. Detection is best-effort: timeouts, detector errors and
// zero-face results all collapse into the same "no face" outcome and the
// caller falls back to the uncropped image.
package facedetect

import (
	"context"
	"image"
	"log/slog"
	"sync"
	"time"
)

// Config holds face detection settings.
type Config struct {
	// ModelPath is where the detection model artifact lives on disk.
	ModelPath string
	// ModelURL, if set, is fetched to ModelPath when the artifact is
	// missing.
	ModelURL string
	// Timeout bounds a single detection run.
	Timeout time.Duration
	// Policy picks among multiple detected faces.
	Policy FacePolicy
}

// DefaultConfig returns the stock detection settings.
func DefaultConfig() Config {
	return Config{
		Timeout: 10 * time.Second,
		Policy:  FirstFace,
	}
}

// initTimeout bounds one detector initialization attempt, including the
// model artifact download. Initialization runs detached from the request
// context so a caller disconnecting mid-download cannot poison the attempt.
const initTimeout = 2 * time.Minute

// Outcome is the result of a locate call. Found is false for every
// degraded path: no face, detector error, timeout.
type Outcome struct {
	Found bool
	Box   image.Rectangle
}

// Locator wraps a Detector with lazy initialization and a bounded wait.
// It is safe for concurrent use. Only a successful init is memoized; a
// failed attempt degrades that call to "no face" and the next call tries
// again, so a transient download failure never disables cropping for the
// process lifetime.
type Locator struct {
	cfg    Config
	logger *slog.Logger

	initMu      sync.Mutex
	detector    Detector
	newDetector func(ctx context.Context) (Detector, error)
}

// New creates a Locator that builds a cascade detector on first use,
// fetching the model artifact if configured.
func New(cfg Config, logger *slog.Logger) *Locator {
	l := &Locator{cfg: cfg, logger: logger}
	l.newDetector = func(ctx context.Context) (Detector, error) {
		if cfg.ModelURL != "" {
			if err := EnsureModel(ctx, cfg.ModelPath, cfg.ModelURL); err != nil {
				return nil, err
			}
		}
		return NewCascadeDetector(cfg.ModelPath)
	}
	return l
}

// NewWithDetector creates a Locator over an already-built detector (for
// testing).
func NewWithDetector(det Detector, cfg Config, logger *slog.Logger) *Locator {
	return &Locator{
		cfg:         cfg,
		logger:      logger,
		newDetector: func(context.Context) (Detector, error) { return det, nil },
	}
}

// init returns the detector, building it if no prior attempt succeeded.
// Nil means this attempt failed too.
func (l *Locator) init() Detector {
	l.initMu.Lock()
	defer l.initMu.Unlock()

	if l.detector != nil {
		return l.detector
	}

	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	det, err := l.newDetector(ctx)
	if err != nil {
		l.logger.Error("face detector initialization failed",
			slog.String("error", err.Error()),
		)
		return nil
	}
	l.detector = det
	return det
}

// Locate runs face detection on the image, bounded by the configured
// timeout. The detection goroutine is not cancelled when it loses the race;
// its result is simply discarded.
func (l *Locator) Locate(ctx context.Context, img image.Image) Outcome {
	det := l.init()
	if det == nil {
		return Outcome{}
	}

	type detection struct {
		faces []image.Rectangle
		err   error
	}
	resultCh := make(chan detection, 1)

	go func() {
		faces, err := det.DetectFaces(img)
		resultCh <- detection{faces: faces, err: err}
	}()

	timeout := l.cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultConfig().Timeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-resultCh:
		if res.err != nil {
			l.logger.Warn("face detection failed", slog.String("error", res.err.Error()))
			return Outcome{}
		}
		if len(res.faces) == 0 {
			l.logger.Info("no face detected")
			return Outcome{}
		}
		policy := l.cfg.Policy
		if policy == "" {
			policy = FirstFace
		}
		box := policy.pick(res.faces)
		l.logger.Info("face detected",
			slog.Int("faces", len(res.faces)),
			slog.Int("width", box.Dx()),
			slog.Int("height", box.Dy()),
		)
		return Outcome{Found: true, Box: box}
	case <-timer.C:
		l.logger.Warn("face detection timed out", slog.Duration("timeout", timeout))
		return Outcome{}
	case <-ctx.Done():
		l.logger.Warn("face detection cancelled", slog.String("error", ctx.Err().Error()))
		return Outcome{}
	}
}
