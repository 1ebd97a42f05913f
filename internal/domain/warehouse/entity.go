package warehouse

import (
	"time"
)

// Warehouse 仓库实体
// 设计说明:
// 1. 仓库是库存记录的物理归属(同一商品可分布在多个仓库)
// 2. 停用仓库后其库存记录仍可查询,但不再参与预留分配
type Warehouse struct {
	ID        uint
	Code      string // 仓库编码(业务唯一),如WH-EAST-01
	Name      string // 仓库名称
	Location  string // 所在地
	Active    bool   // 是否启用
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewWarehouse 创建仓库(工厂方法)
func NewWarehouse(code, name, location string) *Warehouse {
	now := time.Now()
	return &Warehouse{
		Code:      code,
		Name:      name,
		Location:  location,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Deactivate 停用仓库
func (w *Warehouse) Deactivate() {
	w.Active = false
	w.UpdatedAt = time.Now()
}

// Activate 启用仓库
func (w *Warehouse) Activate() {
	w.Active = true
	w.UpdatedAt = time.Now()
}
