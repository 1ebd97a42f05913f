package warehouse

import (
	"context"
)

// Repository 仓库仓储接口
type Repository interface {
	Create(ctx context.Context, warehouse *Warehouse) error
	FindByID(ctx context.Context, id uint) (*Warehouse, error)
	FindByCode(ctx context.Context, code string) (*Warehouse, error)
	Update(ctx context.Context, warehouse *Warehouse) error
	List(ctx context.Context) ([]*Warehouse, error)
}
