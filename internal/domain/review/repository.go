package review

import (
	"context"
)

// Repository 商品评价仓储接口
type Repository interface {
	// Create 创建评价
	// 注意:用户重复评价同一商品应返回ErrDuplicateReview
	Create(ctx context.Context, review *Review) error

	// FindByID 根据ID查找评价
	FindByID(ctx context.Context, id uint) (*Review, error)

	// ListByProductID 查询商品评价列表(分页,按时间倒序)
	ListByProductID(ctx context.Context, productID uint, page, pageSize int) ([]*Review, int64, error)

	// AverageRating 计算商品平均分(无评价时返回0)
	AverageRating(ctx context.Context, productID uint) (float64, error)

	// Delete 删除评价
	Delete(ctx context.Context, id uint) error
}
