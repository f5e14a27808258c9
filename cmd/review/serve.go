package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wyfcoding/tradereview/internal/review/application"
	grpchandler "github.com/wyfcoding/tradereview/internal/review/interfaces/grpc"
	httphandler "github.com/wyfcoding/tradereview/internal/review/interfaces/http"
	"github.com/wyfcoding/tradereview/pkg/config"
	"github.com/wyfcoding/tradereview/pkg/logger"
	"github.com/wyfcoding/tradereview/pkg/metrics"
	"github.com/wyfcoding/tradereview/pkg/tracing"
)

// runServe 启动 HTTP 与 gRPC 服务，收到 SIGINT/SIGTERM 后优雅退出
func runServe(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Logger); err != nil {
		return fmt.Errorf("logger init failed: %w", err)
	}
	bootLog := logger.Get().With("module", "bootstrap")

	// 1. 可观测性
	if err := tracing.Init(cfg.Tracing, cfg.ServiceName, cfg.Version); err != nil {
		bootLog.Warn("tracing init failed, continuing without tracing", "error", err)
		cfg.Tracing.Enabled = false
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(shutdownCtx); err != nil {
			bootLog.Warn("tracing shutdown failed", "error", err)
		}
	}()
	m := metrics.New(cfg.ServiceName)

	// 2. 应用层与接口层
	svc := application.NewReviewService(application.WithRecorder(m))
	router := httphandler.NewRouter(cfg, httphandler.NewReviewHandler(svc), m)

	httpSrv := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	errCh := make(chan error, 2)

	var grpcSrv *grpchandler.Server
	if cfg.GRPC.Enabled {
		lis, err := net.Listen("tcp", cfg.GRPC.Addr())
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", cfg.GRPC.Addr(), err)
		}
		grpcSrv = grpchandler.NewServer(cfg.GRPC, m)
		go func() {
			bootLog.Info("gRPC server listening", "addr", cfg.GRPC.Addr())
			if err := grpcSrv.Serve(lis); err != nil {
				errCh <- fmt.Errorf("grpc server: %w", err)
			}
		}()
	}

	go func() {
		bootLog.Info("HTTP server listening", "addr", httpSrv.Addr, "environment", cfg.Environment)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var runErr error
	select {
	case <-sigCtx.Done():
		bootLog.Info("shutdown signal received")
	case runErr = <-errCh:
		bootLog.Error("server stopped unexpectedly", "error", runErr)
	}

	// 3. 优雅退出
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownWait())
	defer cancel()
	if grpcSrv != nil {
		grpcSrv.Shutdown()
	}
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		bootLog.Error("HTTP server shutdown failed", "error", err)
		if runErr == nil {
			runErr = fmt.Errorf("http shutdown: %w", err)
		}
	}
	bootLog.Info("service stopped", "service", cfg.ServiceName)
	return runErr
}
