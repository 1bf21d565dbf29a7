package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	mdwerror "github.com/msto63/monkey/foundation/core/error"
	"github.com/msto63/monkey/internal/service"
	"github.com/msto63/monkey/pkg/core/config"
	coregrpc "github.com/msto63/monkey/pkg/core/grpc"
	"github.com/msto63/monkey/pkg/core/health"
	"github.com/msto63/monkey/pkg/core/logging"
	"github.com/msto63/monkey/pkg/core/version"
)

// Server exposes the front-end service over gRPC and WebSocket
type Server struct {
	service *service.Service
	grpc    *coregrpc.Server
	http    *http.Server
	health  *health.Registry
	logger  *logging.Logger
	config  Config
}

// Config holds server configuration
type Config struct {
	GRPC coregrpc.ServerConfig

	// WebSocket serving is skipped when disabled
	WebSocketEnabled bool
	WebSocketAddress string
	WebSocketPath    string
	WriteTimeout     time.Duration

	Logger *logging.Logger
}

// ConfigFrom derives the server configuration from the application config
func ConfigFrom(cfg *config.Config, logger *logging.Logger) Config {
	grpcCfg := coregrpc.DefaultServerConfig()
	grpcCfg.Host = cfg.GRPC.Host
	grpcCfg.Port = cfg.GRPC.Port
	grpcCfg.EnableReflection = cfg.GRPC.Reflection
	if cfg.GRPC.MaxRecvMsgSize > 0 {
		grpcCfg.MaxRecvMsgSize = cfg.GRPC.MaxRecvMsgSize
	}
	grpcCfg.Logger = logger

	return Config{
		GRPC:             grpcCfg,
		WebSocketEnabled: cfg.WebSocket.Enabled,
		WebSocketAddress: cfg.WebSocketAddress(),
		WebSocketPath:    cfg.WebSocket.Path,
		WriteTimeout:     cfg.WebSocket.WriteTimeout.Duration,
		Logger:           logger,
	}
}

// New creates a server around svc and registers the Frontend service
func New(svc *service.Service, cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.New("monkey-server")
	}
	if cfg.GRPC.Logger == nil {
		cfg.GRPC.Logger = logger
	}
	if cfg.WebSocketPath == "" {
		cfg.WebSocketPath = "/ws"
	}

	grpcServer := coregrpc.NewServer(cfg.GRPC)
	grpcServer.RegisterService(&FrontendServiceDesc, &frontend{service: svc})

	registry := health.NewRegistry("monkey", version.Platform)
	registry.Register(health.AlwaysHealthy("frontend"))
	registry.Register(health.ErrorCheck("history", svc.HealthCheck))

	s := &Server{
		service: svc,
		grpc:    grpcServer,
		health:  registry,
		logger:  logger,
		config:  cfg,
	}
	s.http = &http.Server{
		Addr:              cfg.WebSocketAddress,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP routes: the WebSocket endpoint and /health
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(s.config.WebSocketPath, NewWebSocketHandler(s.service, s.config.WriteTimeout, logging.Wrap(s.logger.Logger, "websocket")))
	mux.HandleFunc("/health", s.health.Handler(5*time.Second))
	return mux
}

// Health returns the health registry
func (s *Server) Health() *health.Registry {
	return s.health
}

// GRPC returns the underlying gRPC server
func (s *Server) GRPC() *coregrpc.Server {
	return s.grpc
}

// Start starts gRPC and, when enabled, the WebSocket listener. Both serve in
// the background until Shutdown.
func (s *Server) Start() error {
	if err := s.grpc.StartAsync(); err != nil {
		return mdwerror.Wrap(err, "failed to start gRPC server").
			WithCode(mdwerror.CodeNetworkError).
			WithOperation("server.Start")
	}
	if !s.config.WebSocketEnabled {
		return nil
	}

	listener, err := net.Listen("tcp", s.config.WebSocketAddress)
	if err != nil {
		s.grpc.Stop()
		return mdwerror.Wrap(err, "failed to listen for WebSocket").
			WithCode(mdwerror.CodeNetworkError).
			WithOperation("server.Start").
			WithDetail("address", s.config.WebSocketAddress)
	}
	s.logger.Info("WebSocket server listening", "address", listener.Addr().String(), "path", s.config.WebSocketPath)

	go func() {
		if err := s.http.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("WebSocket server error", "error", err)
		}
	}()
	return nil
}

// Shutdown stops both listeners, forcing them once ctx is done
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down")
	s.grpc.StopWithTimeout(ctx)
	if !s.config.WebSocketEnabled {
		return nil
	}
	return s.http.Shutdown(ctx)
}
