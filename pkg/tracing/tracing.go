// Package tracing 提供基于OpenTelemetry的分布式追踪
//
// 设计说明：
// 1. 通过OTLP/gRPC导出Span（对接Jaeger、Tempo等后端）
// 2. 配置关闭时不初始化，业务代码通过otel.Tracer获取的是noop实现，零开销
// 3. 采样策略：ParentBased + TraceIDRatioBased
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// InitTracer 初始化全局Tracer Provider
//
// 参数：
//
//	serviceName: 服务名（如 ecommerce-api）
//	endpoint: OTLP gRPC端点（如 localhost:4317）
//	sampleRatio: 采样率（0.0-1.0，生产环境建议0.1以下）
//
// 返回的shutdown函数应在进程退出时调用，确保缓冲的Span全部导出
func InitTracer(ctx context.Context, serviceName, endpoint string, sampleRatio float64) (func(context.Context) error, error) {
	// 1. 创建OTLP导出器
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithTimeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("创建OTLP导出器失败: %w", err)
	}

	// 2. 创建Resource（标识服务）
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("创建Resource失败: %w", err)
	}

	// 3. 创建Tracer Provider
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(
			sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio)),
		),
	)

	// 4. 注册为全局Provider
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown, nil
}

// Tracer 获取业务Tracer
// 未初始化时返回noop实现，调用方无需判空
func Tracer() trace.Tracer {
	return otel.Tracer("github.com/xiebiao/ecommerce")
}
