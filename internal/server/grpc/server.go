// Package grpc runs the gRPC side of the server: the standard
// grpc.health.v1 service, used by clients to tell whether the backend is
// reachable.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/skillswap/internal/api"
	"github.com/dmitrijs2005/skillswap/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported for the SkillSwap API.
// The empty name reports overall server health.
const ServiceName = api.HealthService

// Pinger is checked periodically to derive the serving status.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthServer struct {
	address  string
	logger   logging.Logger
	health   *health.Server
	pinger   Pinger
	interval time.Duration
}

// NewHealthServer builds a server for address. With a non-nil pinger the
// status follows its result every interval.
func NewHealthServer(address string, l logging.Logger, pinger Pinger, interval time.Duration) *HealthServer {
	return &HealthServer{
		address:  address,
		logger:   l.With("module", "grpc_server"),
		health:   health.NewServer(),
		pinger:   pinger,
		interval: interval,
	}
}

func (s *HealthServer) setServing(serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
}

func (s *HealthServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)
	return s.serve(ctx, listen)
}

func (s *HealthServer) serve(ctx context.Context, listen net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	healthpb.RegisterHealthServer(srv, s.health)

	s.setServing(true)
	if s.pinger != nil && s.interval > 0 {
		go s.watch(ctx)
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	if err := srv.Serve(listen); err != nil {
		return err
	}
	return nil
}

// watch mirrors database reachability into the health status.
func (s *HealthServer) watch(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	serving := true
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, s.interval)
			err := s.pinger.PingContext(pingCtx)
			cancel()

			if ok := err == nil; ok != serving {
				serving = ok
				s.logger.Warn(ctx, "health status changed", "serving", serving, "error", err)
				s.setServing(serving)
			}
		}
	}
}
