package grpcclient

import (
	"context"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

func TestNewClientRequiresTarget(t *testing.T) {
	if _, err := NewClient(ClientConfig{}); err == nil {
		t.Fatal("expected error for empty target")
	}
}

func TestCheckHealth(t *testing.T) {
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	hs := health.NewServer()
	hs.SetServingStatus("svc.Ready", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus("svc.Down", healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(srv, hs)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := NewClient(ClientConfig{
		Target:            "passthrough:///bufnet",
		RequestTimeout:    5,
		EnableKeepalive:   true,
		KeepaliveInterval: 30,
		DialOptions: []grpc.DialOption{
			grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
				return lis.DialContext(ctx)
			}),
		},
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := CheckHealth(ctx, conn, "svc.Ready")
	if err != nil || got != healthpb.HealthCheckResponse_SERVING {
		t.Errorf("svc.Ready = %v, %v", got, err)
	}
	got, err = CheckHealth(ctx, conn, "svc.Down")
	if err != nil || got != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Errorf("svc.Down = %v, %v", got, err)
	}
	got, err = CheckHealth(ctx, conn, "svc.Missing")
	if err == nil || got != healthpb.HealthCheckResponse_UNKNOWN {
		t.Errorf("svc.Missing = %v, %v", got, err)
	}
}
