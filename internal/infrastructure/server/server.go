package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/AuroraOS/internal/api/http"
	"github.com/GriffinCanCode/AuroraOS/internal/api/middleware"
	"github.com/GriffinCanCode/AuroraOS/internal/domain/lock"
	"github.com/GriffinCanCode/AuroraOS/internal/domain/shell"
	"github.com/GriffinCanCode/AuroraOS/internal/domain/window"
	"github.com/GriffinCanCode/AuroraOS/internal/infrastructure/config"
	"github.com/GriffinCanCode/AuroraOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AuroraOS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AuroraOS/internal/infrastructure/storage"
	"github.com/GriffinCanCode/AuroraOS/internal/providers/device"
	"github.com/GriffinCanCode/AuroraOS/internal/providers/preferences"
	"github.com/GriffinCanCode/AuroraOS/internal/providers/taskmgr"
	"github.com/GriffinCanCode/AuroraOS/internal/providers/terminal"
	"github.com/GriffinCanCode/AuroraOS/internal/ws"
)

// StreamPath is where the desktop stream is served
const StreamPath = "/stream"

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	httpSrv *http.Server
	shell   *shell.Shell
	store   storage.Store
	monitor *device.Monitor
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics

	closeOnce sync.Once
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.NewFromSettings(cfg.Logging.Level, cfg.Logging.Development)
	logger.Info("Initializing AuroraOS shell",
		zap.String("port", cfg.Server.Port),
		zap.String("storage", cfg.Storage.Backend),
	)

	metrics := monitoring.NewMetrics()

	store, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open preference storage: %w", err)
	}

	gate, err := lock.NewGate(cfg.Shell.PIN)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to create lock gate: %w", err)
	}
	gate = gate.WithMetrics(metrics).WithLogger(logger)

	display := device.NewReportedDisplay()
	adapter := device.NewAdapter(device.NewHostProbes(cfg.Device, display, logger), logger).
		WithMetrics(metrics).
		WithPollInterval(cfg.Device.PollInterval)
	monitor := device.NewMonitor(adapter, cfg.Device.RefreshInterval)

	term := terminal.NewInterpreter(adapter,
		terminal.WithLogger(logger),
		terminal.WithMetrics(metrics),
	)

	sh, err := shell.New(context.Background(), shell.Config{
		Gate:        gate,
		Preferences: preferences.NewProvider(store, logger),
		Windows:     window.NewManager().WithMetrics(metrics).WithLogger(logger),
		Sampler:     taskmgr.NewSampler(nil),
		HideDelay:   cfg.Shell.AutoHideDelay,
		Logger:      logger,
		Metrics:     metrics,
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to start shell: %w", err)
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.CORSConfigFor(cfg.Server.AllowOrigins)))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(rl))
	}

	handlers := apihttp.NewHandlers(apihttp.Deps{
		Shell:    sh,
		Device:   adapter,
		Monitor:  monitor,
		Display:  display,
		Terminal: term,
		Metrics:  metrics,
		Logger:   logger,
	})
	handlers.Register(router)

	wsHandler := ws.NewHandler(ws.Deps{
		Shell:        sh,
		Device:       adapter,
		Terminal:     term,
		Metrics:      metrics,
		Logger:       logger,
		AllowOrigins: cfg.Server.AllowOrigins,
		PerfInterval: cfg.Shell.PerfInterval,
	})
	router.GET(StreamPath, wsHandler.HandleConnection)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	s := &Server{
		router:  router,
		shell:   sh,
		store:   store,
		monitor: monitor,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}
	s.httpSrv = &http.Server{
		Addr:    net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler: s.Handler(),
	}

	logger.Info("Server initialized successfully")
	return s, nil
}

// Handler is the root handler. With compression on, everything except the
// WebSocket upgrade is gzipped.
func (s *Server) Handler() http.Handler {
	if !s.config.Server.Compression {
		return s.router
	}
	compressed := gzhttp.GzipHandler(s.router)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == StreamPath {
			s.router.ServeHTTP(w, r)
			return
		}
		compressed.ServeHTTP(w, r)
	})
}

// Shell exposes the running desktop session
func (s *Server) Shell() *shell.Shell {
	return s.shell
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	monitorCtx, stopMonitor := context.WithCancel(ctx)
	defer stopMonitor()
	go s.monitor.Run(monitorCtx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", s.httpSrv.Addr))
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			s.Close()
			return fmt.Errorf("http server: %w", err)
		}
		return s.Close()
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()
	if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("Graceful shutdown incomplete", zap.Error(err))
	}
	return s.Close()
}

// Close releases the shell and the preference store
func (s *Server) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.logger.Info("Shutting down server...")
		s.shell.Close()
		if cerr := s.store.Close(); cerr != nil {
			s.logger.Error("Failed to close preference storage", zap.Error(cerr))
			err = fmt.Errorf("failed to close storage: %w", cerr)
		}
		_ = s.logger.Sync()
	})
	return err
}
