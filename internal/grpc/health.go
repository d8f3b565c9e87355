package grpc

import (
	"context"
	"net"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const (
	ServiceStorage = "storage"
	ServiceCatalog = "catalog"

	DefaultHealthInterval = 10 * time.Second
	pingTimeout           = 2 * time.Second
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthServer serves grpc.health.v1 for the storefront backends. The overall
// service "" is SERVING only while every check passes.
type HealthServer struct {
	server   *grpc.Server
	health   *health.Server
	checks   map[string]Pinger
	names    []string
	interval time.Duration
	logger   *zap.Logger

	stop chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

func NewHealthServer(checks map[string]Pinger, interval time.Duration, logger *zap.Logger) *HealthServer {
	if interval <= 0 {
		interval = DefaultHealthInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	server := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	hs := health.NewServer()
	grpc_health_v1.RegisterHealthServer(server, hs)

	// Enable reflection for grpcurl/grpcui
	reflection.Register(server)

	for _, name := range names {
		hs.SetServingStatus(name, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	}
	hs.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	return &HealthServer{
		server:   server,
		health:   hs,
		checks:   checks,
		names:    names,
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
	}
}

// Check pings every backend once and publishes the result.
func (s *HealthServer) Check(ctx context.Context) {
	overall := grpc_health_v1.HealthCheckResponse_SERVING
	for _, name := range s.names {
		status := grpc_health_v1.HealthCheckResponse_SERVING

		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err := s.checks[name].Ping(pingCtx)
		cancel()
		if err != nil {
			status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
			overall = status
			s.logger.Warn("health check failed", zap.String("service", name), zap.Error(err))
		}
		s.health.SetServingStatus(name, status)
	}
	s.health.SetServingStatus("", overall)
}

// Serve runs the check loop and blocks serving lis until GracefulStop.
func (s *HealthServer) Serve(lis net.Listener) error {
	s.Check(context.Background())

	s.wg.Add(1)
	go s.loop()

	s.logger.Info("grpc health server listening", zap.String("addr", lis.Addr().String()))
	return s.server.Serve(lis)
}

func (s *HealthServer) GracefulStop() {
	s.once.Do(func() {
		close(s.stop)
		s.wg.Wait()
		s.health.Shutdown()
		s.server.GracefulStop()
	})
}

func (s *HealthServer) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Check(context.Background())
		case <-s.stop:
			return
		}
	}
}
