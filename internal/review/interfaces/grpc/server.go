// Package grpc 复盘服务的 gRPC 入口，提供标准 grpc.health.v1 健康检查
package grpc

import (
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"

	"github.com/wyfcoding/tradereview/pkg/config"
	"github.com/wyfcoding/tradereview/pkg/metrics"
	"github.com/wyfcoding/tradereview/pkg/middleware"
)

// ReviewServiceName 健康检查中登记的服务名
const ReviewServiceName = "tradereview.v1.Review"

// Server gRPC 服务端
type Server struct {
	srv    *grpc.Server
	health *health.Server
}

// NewServer 创建 gRPC 服务端并登记健康状态
func NewServer(cfg config.GRPCConfig, m *metrics.Metrics) *Server {
	interceptors := []grpc.UnaryServerInterceptor{
		middleware.GRPCRecoveryInterceptor(),
		middleware.GRPCLoggingInterceptor(),
	}
	if m != nil {
		interceptors = append(interceptors, middleware.GRPCMetricsInterceptor(m))
	}

	opts := []grpc.ServerOption{grpc.ChainUnaryInterceptor(interceptors...)}
	if cfg.MaxConcurrentStreams > 0 {
		opts = append(opts, grpc.MaxConcurrentStreams(uint32(cfg.MaxConcurrentStreams)))
	}
	if cfg.IdleTimeout > 0 {
		opts = append(opts, grpc.KeepaliveParams(keepalive.ServerParameters{
			MaxConnectionIdle: time.Duration(cfg.IdleTimeout) * time.Second,
		}))
	}

	srv := grpc.NewServer(opts...)
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ReviewServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)

	return &Server{srv: srv, health: hs}
}

// Serve 在给定监听器上阻塞服务
func (s *Server) Serve(lis net.Listener) error {
	return s.srv.Serve(lis)
}

// Shutdown 将所有服务置为 NOT_SERVING 后优雅停止
func (s *Server) Shutdown() {
	s.health.Shutdown()
	s.srv.GracefulStop()
}
