package analytics

import (
	"context"
	"time"

	apperrors "github.com/xiebiao/ecommerce/pkg/errors"
)

// 经营统计用例(只读报表)
// 设计说明:
// 1. 统计查询跨越订单、商品、库存多个聚合,不属于任何领域服务,
//    作为独立的读模型直接建在仓储聚合SQL之上
// 2. 只读、无事务、无库存副作用;数据允许轻微滞后
// 3. 金额口径与交易一致:int64分

// OrderSummary 区间订单汇总
type OrderSummary struct {
	OrderCount   int64 `json:"order_count"`   // 订单数(不含已取消)
	TotalRevenue int64 `json:"total_revenue"` // 营收(分)
	AverageValue int64 `json:"average_value"` // 客单价(分)
}

// StatusCount 按状态的订单数
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// TopProduct 热销商品
type TopProduct struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	TotalSold int64  `json:"total_sold"`
}

// TopCustomer 消费额最高的买家
type TopCustomer struct {
	UserID     uint   `json:"user_id"`
	Email      string `json:"email"`
	OrderCount int64  `json:"order_count"`
	TotalSpent int64  `json:"total_spent"`
}

// WarehouseSummary 分仓库存汇总
type WarehouseSummary struct {
	WarehouseID   uint   `json:"warehouse_id"`
	WarehouseName string `json:"warehouse_name"`
	ProductCount  int64  `json:"product_count"`  // 在库商品种数
	TotalQuantity int64  `json:"total_quantity"` // 在库总量
	TotalReserved int64  `json:"total_reserved"` // 预留总量
}

// StatsRepository 统计仓储接口(mysql.StatsRepository实现)
// 聚合SQL下推到数据库执行,应用层不做内存汇总
type StatsRepository interface {
	OrderSummaryByDateRange(ctx context.Context, start, end time.Time) (*OrderSummary, error)
	OrderCountByStatus(ctx context.Context) ([]StatusCount, error)
	TopSellingProducts(ctx context.Context, start, end time.Time, limit int) ([]TopProduct, error)
	TopCustomersByRevenue(ctx context.Context, limit int) ([]TopCustomer, error)
	InventorySummaryByWarehouse(ctx context.Context) ([]WarehouseSummary, error)
}

const (
	defaultTopLimit = 10
	maxTopLimit     = 100
)

// AnalyticsUseCase 经营统计用例
type AnalyticsUseCase struct {
	statsRepo StatsRepository
}

// NewAnalyticsUseCase 创建统计用例
func NewAnalyticsUseCase(statsRepo StatsRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{statsRepo: statsRepo}
}

// OrderSummary 区间订单汇总(订单数、营收、客单价)
func (uc *AnalyticsUseCase) OrderSummary(ctx context.Context, start, end time.Time) (*OrderSummary, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	return uc.statsRepo.OrderSummaryByDateRange(ctx, start, end)
}

// OrderCountByStatus 按履约状态统计订单数
func (uc *AnalyticsUseCase) OrderCountByStatus(ctx context.Context) ([]StatusCount, error) {
	return uc.statsRepo.OrderCountByStatus(ctx)
}

// TopSellingProducts 区间热销商品排行
func (uc *AnalyticsUseCase) TopSellingProducts(ctx context.Context, start, end time.Time, limit int) ([]TopProduct, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	return uc.statsRepo.TopSellingProducts(ctx, start, end, clampLimit(limit))
}

// TopCustomers 消费额排行
func (uc *AnalyticsUseCase) TopCustomers(ctx context.Context, limit int) ([]TopCustomer, error) {
	return uc.statsRepo.TopCustomersByRevenue(ctx, clampLimit(limit))
}

// WarehouseSummary 分仓库存汇总
func (uc *AnalyticsUseCase) WarehouseSummary(ctx context.Context) ([]WarehouseSummary, error) {
	return uc.statsRepo.InventorySummaryByWarehouse(ctx)
}

func validateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "统计区间不能为空")
	}
	if end.Before(start) {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "结束时间不能早于开始时间")
	}
	return nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultTopLimit
	}
	if limit > maxTopLimit {
		return maxTopLimit
	}
	return limit
}
