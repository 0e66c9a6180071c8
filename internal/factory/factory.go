package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/vizz0r/tic-tac-toe/internal/dependencies/clock"
	"github.com/vizz0r/tic-tac-toe/internal/services/avatar"
	"github.com/vizz0r/tic-tac-toe/internal/services/capture"
	"github.com/vizz0r/tic-tac-toe/internal/services/facedetect"
	"github.com/vizz0r/tic-tac-toe/internal/services/removebg"
	"github.com/vizz0r/tic-tac-toe/internal/services/roster"
	"github.com/vizz0r/tic-tac-toe/internal/services/score"
	"github.com/vizz0r/tic-tac-toe/internal/services/selection"
	"github.com/vizz0r/tic-tac-toe/internal/storage"
	filestorage "github.com/vizz0r/tic-tac-toe/internal/storage/file"
	"github.com/vizz0r/tic-tac-toe/internal/storage/memory"
	redisstorage "github.com/vizz0r/tic-tac-toe/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeFile   = "file"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	Pipeline            *avatar.Pipeline
	RosterController    *roster.Controller
	SelectionController *selection.Controller
	ScoreService        *score.Service
	CaptureService      *capture.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "file" or "redis")
	// If empty, defaults to "file"
	StorageType string
	// DataDir is the directory for file storage (required if StorageType is "file")
	DataDir string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// RemoveBGKeys is the ordered API key chain for background removal.
	// Empty means removal is always skipped.
	RemoveBGKeys []string
	// FaceDetect holds face detection settings
	// If zero value, defaults to facedetect.DefaultConfig()
	FaceDetect facedetect.Config
	// Pipeline holds image pipeline settings
	// If zero value, defaults to avatar.DefaultConfig()
	Pipeline avatar.Config
	// CaptureTTL is how long a capture session waits for a photo
	CaptureTTL time.Duration
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	clk := clock.New()

	faceCfg := cfg.FaceDetect
	if faceCfg.Timeout == 0 {
		defaults := facedetect.DefaultConfig()
		defaults.ModelPath = faceCfg.ModelPath
		defaults.ModelURL = faceCfg.ModelURL
		if faceCfg.Policy != "" {
			defaults.Policy = faceCfg.Policy
		}
		faceCfg = defaults
	}

	pipelineCfg := cfg.Pipeline
	if pipelineCfg.MaxDimension == 0 {
		pipelineCfg = avatar.DefaultConfig()
	}

	remover := removebg.New(cfg.RemoveBGKeys, logger)
	locator := facedetect.New(faceCfg, logger)
	pipeline := avatar.New(pipelineCfg, remover, locator, logger)

	selectionController := selection.New(store, logger)
	rosterController := roster.New(store, selectionController, pipeline, clk, logger)
	scoreService := score.New(store, logger)
	captureService := capture.New(clk, cfg.CaptureTTL, logger)

	return &App{
		Storage:             store,
		Clock:               clk,
		Pipeline:            pipeline,
		RosterController:    rosterController,
		SelectionController: selectionController,
		ScoreService:        scoreService,
		CaptureService:      captureService,
	}, nil
}

func newStorage(cfg Config) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeFile
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeFile:
		if cfg.DataDir == "" {
			return nil, errors.New("DataDir required when StorageType is file")
		}
		return filestorage.New(cfg.DataDir)
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'file' or 'redis'")
	}
}
