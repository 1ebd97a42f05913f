// Package metrics 提供基于Prometheus的指标采集
//
// 指标类型回顾：
// - Counter：只增不减（请求总数、下单总数）
// - Gauge：可增可减（当前预留库存量）
// - Histogram：分布统计（请求耗时、订单金额）
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（/api/v1/orders）、status（200/500）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// 交易相关指标

	// OrdersCreatedTotal 创建订单总数（Counter）
	// 标签：source（checkout/direct）
	OrdersCreatedTotal *prometheus.CounterVec

	// CheckoutFailuresTotal 结算失败总数（Counter）
	// 标签：reason（cart_invalid/address_invalid/insufficient_stock/internal）
	CheckoutFailuresTotal *prometheus.CounterVec

	// OrderAmount 订单金额分布（Histogram，单位：分）
	OrderAmount prometheus.Histogram

	// 库存相关指标

	// InventoryReservations 库存预留操作总数（Counter）
	// 标签：op（reserve/release/confirm）
	InventoryReservations *prometheus.CounterVec

	// LowStockRecords 当前低库存记录数（Gauge，由查询时刷新）
	LowStockRecords prometheus.Gauge
)

// Init 初始化并注册所有指标
// 必须在服务启动时调用一次；重复调用会被忽略
func Init() {
	if initialized {
		return
	}
	initialized = true

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ecommerce",
			Name:      "http_requests_total",
			Help:      "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ecommerce",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP请求耗时（秒）",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	OrdersCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ecommerce",
			Name:      "orders_created_total",
			Help:      "创建订单总数",
		},
		[]string{"source"},
	)

	CheckoutFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ecommerce",
			Name:      "checkout_failures_total",
			Help:      "结算失败总数（按失败原因分类）",
		},
		[]string{"reason"},
	)

	OrderAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "ecommerce",
			Name:      "order_amount_fen",
			Help:      "订单金额分布（分）",
			// 10元 ~ 10000元
			Buckets: prometheus.ExponentialBuckets(1000, 4, 6),
		},
	)

	InventoryReservations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ecommerce",
			Name:      "inventory_reservations_total",
			Help:      "库存预留/释放/确认操作总数",
		},
		[]string{"op"},
	)

	LowStockRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ecommerce",
			Name:      "inventory_low_stock_records",
			Help:      "当前低库存记录数",
		},
	)
}
