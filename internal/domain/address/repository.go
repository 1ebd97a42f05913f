package address

import (
	"context"
)

// Repository 收货地址仓储接口
type Repository interface {
	Create(ctx context.Context, address *Address) error
	FindByID(ctx context.Context, id uint) (*Address, error)
	FindByUserID(ctx context.Context, userID uint) ([]*Address, error)
	Update(ctx context.Context, address *Address) error
	Delete(ctx context.Context, id uint) error

	// ClearDefault 清除用户当前的默认地址标记
	// 与SetDefault配合,须在同一事务中调用
	ClearDefault(ctx context.Context, userID uint) error
}
