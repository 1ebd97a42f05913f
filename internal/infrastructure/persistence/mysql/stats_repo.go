package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/ecommerce/internal/application/analytics"
	"github.com/xiebiao/ecommerce/internal/domain/order"
	apperrors "github.com/xiebiao/ecommerce/pkg/errors"
)

// statsRepository 经营统计仓储实现(MySQL)
// 设计说明:
// 1. 纯读模型:聚合计算全部下推到SQL,不加载实体
// 2. 营收口径:已取消订单不计入订单数与营收
// 3. 不加锁、不开事务;报表允许读到瞬时中间态
type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository 创建统计仓储
func NewStatsRepository(db *gorm.DB) analytics.StatsRepository {
	return &statsRepository{db: db}
}

// OrderSummaryByDateRange 区间订单汇总(订单数、营收、客单价)
func (r *statsRepository) OrderSummaryByDateRange(ctx context.Context, start, end time.Time) (*analytics.OrderSummary, error) {
	var row struct {
		OrderCount   int64
		TotalRevenue int64
	}

	db := getDB(ctx, r.db)
	err := db.Model(&OrderModel{}).
		Select("COUNT(*) AS order_count, COALESCE(SUM(total_amount), 0) AS total_revenue").
		Where("ordered_at BETWEEN ? AND ?", start, end).
		Where("status <> ?", int(order.StatusCancelled)).
		Scan(&row).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计订单汇总失败")
	}

	summary := &analytics.OrderSummary{
		OrderCount:   row.OrderCount,
		TotalRevenue: row.TotalRevenue,
	}
	if row.OrderCount > 0 {
		summary.AverageValue = row.TotalRevenue / row.OrderCount
	}
	return summary, nil
}

// OrderCountByStatus 按履约状态统计订单数
func (r *statsRepository) OrderCountByStatus(ctx context.Context) ([]analytics.StatusCount, error) {
	var rows []struct {
		Status int
		Count  int64
	}

	db := getDB(ctx, r.db)
	err := db.Model(&OrderModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "按状态统计订单失败")
	}

	counts := make([]analytics.StatusCount, len(rows))
	for i, row := range rows {
		counts[i] = analytics.StatusCount{
			Status: order.Status(row.Status).String(),
			Count:  row.Count,
		}
	}
	return counts, nil
}

// TopSellingProducts 区间热销商品排行(按销量降序,已取消订单不计)
func (r *statsRepository) TopSellingProducts(ctx context.Context, start, end time.Time, limit int) ([]analytics.TopProduct, error) {
	var rows []analytics.TopProduct

	db := getDB(ctx, r.db)
	err := db.Table("order_items").
		Select("order_items.product_id, products.name, SUM(order_items.quantity) AS total_sold").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.ordered_at BETWEEN ? AND ?", start, end).
		Where("orders.status <> ?", int(order.StatusCancelled)).
		Group("order_items.product_id, products.name").
		Order("total_sold DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计热销商品失败")
	}
	return rows, nil
}

// TopCustomersByRevenue 消费额排行(按累计消费降序,已取消订单不计)
func (r *statsRepository) TopCustomersByRevenue(ctx context.Context, limit int) ([]analytics.TopCustomer, error) {
	var rows []analytics.TopCustomer

	db := getDB(ctx, r.db)
	err := db.Table("orders").
		Select("orders.user_id, users.email, COUNT(*) AS order_count, SUM(orders.total_amount) AS total_spent").
		Joins("JOIN users ON users.id = orders.user_id").
		Where("orders.status <> ?", int(order.StatusCancelled)).
		Group("orders.user_id, users.email").
		Order("total_spent DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计买家消费排行失败")
	}
	return rows, nil
}

// InventorySummaryByWarehouse 分仓库存汇总(种数、在库量、预留量)
func (r *statsRepository) InventorySummaryByWarehouse(ctx context.Context) ([]analytics.WarehouseSummary, error) {
	var rows []analytics.WarehouseSummary

	db := getDB(ctx, r.db)
	err := db.Table("inventories").
		Select("inventories.warehouse_id, warehouses.name AS warehouse_name, " +
			"COUNT(DISTINCT inventories.product_id) AS product_count, " +
			"COALESCE(SUM(inventories.quantity), 0) AS total_quantity, " +
			"COALESCE(SUM(inventories.reserved_quantity), 0) AS total_reserved").
		Joins("JOIN warehouses ON warehouses.id = inventories.warehouse_id").
		Group("inventories.warehouse_id, warehouses.name").
		Order("inventories.warehouse_id").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计分仓库存失败")
	}
	return rows, nil
}
