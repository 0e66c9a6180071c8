package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vizz0r/tic-tac-toe/internal/api"
	"github.com/vizz0r/tic-tac-toe/internal/factory"
	"github.com/vizz0r/tic-tac-toe/internal/services/facedetect"
	redisstorage "github.com/vizz0r/tic-tac-toe/internal/storage/redis"
)

type config struct {
	bind         string
	port         int
	storageType  string
	dataDir      string
	redisURL     string
	removeBGKeys []string
	faceModel    string
	faceModelURL string
	faceTimeout  time.Duration
	facePolicy   string
	captureTTL   time.Duration
	verbose      bool
}

func (c *config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.storageType == factory.StorageTypeRedis && c.redisURL == "" {
		return errors.New("--redis-url is required with --storage redis")
	}
	return nil
}

func newCmd(cfg *config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("ROSTERD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "rosterd",
		Short:         "Player roster service for the tic-tac-toe game",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: ROSTERD_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: ROSTERD_PORT)")
	fs.StringVar(&cfg.storageType, "storage", factory.StorageTypeFile, "storage backend: memory, file or redis (env: ROSTERD_STORAGE)")
	fs.StringVar(&cfg.dataDir, "data-dir", "data", "directory for file storage (env: ROSTERD_DATA_DIR)")
	fs.StringVar(&cfg.redisURL, "redis-url", "", "redis connection URL (env: ROSTERD_REDIS_URL)")
	fs.StringSliceVar(&cfg.removeBGKeys, "removebg-keys", nil, "ordered remove.bg API key chain (env: ROSTERD_REMOVEBG_KEYS)")
	fs.StringVar(&cfg.faceModel, "face-model", "data/haarcascade_frontalface_default.xml", "path to the face detection model (env: ROSTERD_FACE_MODEL)")
	fs.StringVar(&cfg.faceModelURL, "face-model-url", "", "URL to fetch the face detection model from when missing (env: ROSTERD_FACE_MODEL_URL)")
	fs.DurationVar(&cfg.faceTimeout, "face-timeout", 10*time.Second, "face detection timeout (env: ROSTERD_FACE_TIMEOUT)")
	fs.StringVar(&cfg.facePolicy, "face-policy", string(facedetect.FirstFace), "which face to crop when several are found: first or largest (env: ROSTERD_FACE_POLICY)")
	fs.DurationVar(&cfg.captureTTL, "capture-ttl", 2*time.Minute, "time before an idle capture session is abandoned (env: ROSTERD_CAPTURE_TTL)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display debug output (env: ROSTERD_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	return cmd
}

func run(ctx context.Context, cfg *config) error {
	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	factoryCfg := factory.Config{
		Logger:       logger,
		StorageType:  cfg.storageType,
		DataDir:      cfg.dataDir,
		RemoveBGKeys: cfg.removeBGKeys,
		FaceDetect: facedetect.Config{
			ModelPath: cfg.faceModel,
			ModelURL:  cfg.faceModelURL,
			Timeout:   cfg.faceTimeout,
			Policy:    facedetect.FacePolicy(cfg.facePolicy),
		},
		CaptureTTL: cfg.captureTTL,
	}

	if cfg.storageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.redisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}

	if err := app.RosterController.Seed(ctx); err != nil {
		return fmt.Errorf("seed roster: %w", err)
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:              logger,
		RosterController:    app.RosterController,
		SelectionController: app.SelectionController,
		ScoreService:        app.ScoreService,
		CaptureService:      app.CaptureService,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.bind
	serverConfig.Port = cfg.port
	server := api.NewServer(router, serverConfig, logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sigCh:
			logger.Info("shutdown signal received")
			cancel()
		case <-ctx.Done():
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			return err
		}
	}

	logger.Info("server stopped")
	return nil
}

func main() {
	cfg := &config{}
	cobra.CheckErr(newCmd(cfg).Execute())
}
