// Package tracing 初始化 OpenTelemetry TracerProvider 并提供 span 辅助函数
package tracing

import (
	"context"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/wyfcoding/tradereview/pkg/config"
)

// InstrumentationName 本服务 tracer 名称
const InstrumentationName = "github.com/wyfcoding/tradereview"

var (
	tracerProvider *sdktrace.TracerProvider
	enabled        bool
)

// Init 根据配置初始化全局 TracerProvider，导出到 stdout
func Init(cfg config.TracingConfig, serviceName, version string) error {
	return InitWithWriter(cfg, serviceName, version, os.Stdout)
}

// InitWithWriter 与 Init 相同，但导出到指定 writer
func InitWithWriter(cfg config.TracingConfig, serviceName, version string, w io.Writer) error {
	enabled = cfg.Enabled
	if !enabled {
		return nil
	}

	opts := []stdouttrace.Option{stdouttrace.WithWriter(w)}
	if cfg.PrettyPrint {
		opts = append(opts, stdouttrace.WithPrettyPrint())
	}
	exporter, err := stdouttrace.New(opts...)
	if err != nil {
		enabled = false
		return err
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", serviceName),
		attribute.String("service.version", version),
	)

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SamplingRate))),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return nil
}

// Shutdown 刷新并关闭 TracerProvider
func Shutdown(ctx context.Context) error {
	if tracerProvider != nil {
		return tracerProvider.Shutdown(ctx)
	}
	return nil
}

// Enabled 是否启用追踪
func Enabled() bool {
	return enabled
}

// StartSpan 从全局 TracerProvider 启动 span；未初始化时返回 no-op span
func StartSpan(ctx context.Context, spanName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(InstrumentationName).Start(ctx, spanName, trace.WithAttributes(attrs...))
}
