package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/wyfcoding/tradereview/internal/review/domain"
	"github.com/wyfcoding/tradereview/pkg/config"
	"github.com/wyfcoding/tradereview/pkg/grpcclient"
	"github.com/wyfcoding/tradereview/pkg/reviewclient"
)

// DefaultConfigPath 默认配置文件路径，可由 APP_CONFIG_PATH 覆盖
const DefaultConfigPath = "configs/review.toml"

// tradeFlags 复盘相关的命令行参数
type tradeFlags struct {
	symbol   string
	side     string
	price    float64
	quantity float64
	thought  string
}

func (f *tradeFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.symbol, "symbol", "", "Trading symbol, e.g. AAPL")
	cmd.Flags().StringVar(&f.side, "side", "", "Trade side, BUY or SELL")
	cmd.Flags().Float64Var(&f.price, "price", 0, "Execution price")
	cmd.Flags().Float64Var(&f.quantity, "quantity", 0, "Executed quantity")
	cmd.Flags().StringVar(&f.thought, "thought", "", "Trader's own reasoning (optional)")
	for _, name := range []string{"symbol", "side", "price", "quantity"} {
		_ = cmd.MarkFlagRequired(name)
	}
}

// newRootCmd 根命令，默认行为为启动服务
func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "review",
		Short:         "Trade review service",
		Long:          "Renders a short textual review of a single trade over HTTP, with gRPC health checks.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.GetEnv("APP_CONFIG_PATH", DefaultConfigPath), "Configuration file path")

	rootCmd.AddCommand(newServeCmd(&configPath))
	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newRequestCmd())
	rootCmd.AddCommand(newHealthcheckCmd())
	return rootCmd
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and gRPC servers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *configPath)
		},
	}
}

// newRenderCmd 本地渲染复盘，不经过网络
func newRenderCmd() *cobra.Command {
	var f tradeFlags
	cmd := &cobra.Command{
		Use:     "render",
		Short:   "Render a trade review locally",
		Example: "review render --symbol AAPL --side BUY --price 150.5 --quantity 10 --thought \"Broke resistance\"",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := domain.Render(domain.TradeReviewRequest{
				Symbol:      f.symbol,
				Side:        domain.Side(f.side),
				Price:       f.price,
				Quantity:    f.quantity,
				UserThought: f.thought,
			})
			printReview(cmd.OutOrStdout(), string(r.Template), r.Text, domain.FormatTimestamp(time.Now()))
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

// newRequestCmd 调用运行中的服务生成复盘
func newRequestCmd() *cobra.Command {
	var (
		f       tradeFlags
		baseURL string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "request",
		Short: "Request a trade review from a running service",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := reviewclient.New(baseURL, reviewclient.WithTimeout(timeout))
			resp, err := client.GenerateReview(cmd.Context(), reviewclient.TradeReviewRequest{
				Symbol:      f.symbol,
				Side:        f.side,
				Price:       f.price,
				Quantity:    f.quantity,
				UserThought: f.thought,
			})
			if err != nil {
				return err
			}
			printReview(cmd.OutOrStdout(), baseURL, resp.Review, resp.Timestamp)
			return nil
		},
	}
	f.bind(cmd)
	cmd.Flags().StringVar(&baseURL, "url", "http://localhost:8000", "Base URL of the review service")
	cmd.Flags().DurationVar(&timeout, "timeout", reviewclient.DefaultTimeout, "Request timeout")
	return cmd
}

// newHealthcheckCmd 通过 grpc.health.v1 检查服务状态，非 SERVING 时返回错误
func newHealthcheckCmd() *cobra.Command {
	var (
		addr    string
		service string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "healthcheck",
		Short: "Check the gRPC health endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := grpcclient.NewClient(grpcclient.ClientConfig{Target: addr})
			if err != nil {
				return err
			}
			defer conn.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			status, err := grpcclient.CheckHealth(ctx, conn, service)
			if err != nil {
				return fmt.Errorf("health check against %s failed: %w", addr, err)
			}
			serving := status == healthpb.HealthCheckResponse_SERVING
			printStatus(cmd.OutOrStdout(), addr, status.String(), serving)
			if !serving {
				return fmt.Errorf("service %q at %s is %s", service, addr, status)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "localhost:50051", "gRPC server address")
	cmd.Flags().StringVar(&service, "service", "", "Service name to check, empty for overall status")
	cmd.Flags().DurationVar(&timeout, "timeout", 3*time.Second, "Health check timeout")
	return cmd
}
