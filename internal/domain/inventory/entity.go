package inventory

import (
	"time"
)

// Status 库存状态
// 设计说明:
// 1. 使用int类型而非string(节省存储空间,便于索引)
// 2. AVAILABLE/LOW_STOCK/OUT_OF_STOCK由(数量,补货阈值)纯函数推导
// 3. DISCONTINUED是人工停售标记,只能显式设置,推导永远不会产生或清除它
type Status int

const (
	StatusAvailable    Status = 1 // 有货
	StatusLowStock     Status = 2 // 低库存(已达补货阈值)
	StatusOutOfStock   Status = 3 // 缺货
	StatusDiscontinued Status = 4 // 停售(人工标记)
)

// String 实现Stringer接口(方便日志输出)
func (s Status) String() string {
	switch s {
	case StatusAvailable:
		return "有货"
	case StatusLowStock:
		return "低库存"
	case StatusOutOfStock:
		return "缺货"
	case StatusDiscontinued:
		return "停售"
	default:
		return "未知状态"
	}
}

// Record 库存记录实体(聚合根)
// 设计说明:
// 1. 每个(商品,仓库)组合唯一一条记录;同一商品可以在多个仓库各有一条
// 2. Quantity是在库数量,ReservedQuantity是已预留数量(下单锁定,发货时扣减)
// 3. 可售数量 = Quantity - ReservedQuantity,读时计算,不落库
// 4. 不变量:0 <= ReservedQuantity <= Quantity,所有变更方法在入口校验,失败不改状态
// 5. Version用于侦测绕过行锁的并发写(仓储层每次更新校验并递增)
type Record struct {
	ID               uint
	ProductID        uint   // 商品ID
	WarehouseID      uint   // 仓库ID
	Quantity         int    // 在库数量
	ReservedQuantity int    // 已预留数量
	ReorderThreshold int    // 补货阈值(0表示未设置)
	ReorderQuantity  int    // 建议补货量
	Status           Status // 库存状态
	SKU              string // 库存单元编码
	BatchNumber      string // 批次号
	ExpiryDate       *time.Time
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewRecord 创建库存记录(工厂方法)
func NewRecord(productID, warehouseID uint, quantity int, reorderThreshold int, sku string) (*Record, error) {
	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}
	now := time.Now()
	r := &Record{
		ProductID:        productID,
		WarehouseID:      warehouseID,
		Quantity:         quantity,
		ReservedQuantity: 0,
		ReorderThreshold: reorderThreshold,
		SKU:              sku,
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	r.Status = DeriveStatus(r.Quantity, r.ReorderThreshold)
	return r, nil
}

// AvailableQuantity 可售数量(在库 - 已预留)
// 读时计算,任何成功的变更之后都不可能为负
func (r *Record) AvailableQuantity() int {
	return r.Quantity - r.ReservedQuantity
}

// IsLowStock 是否低库存(已设置阈值且在库数量不高于阈值)
func (r *Record) IsLowStock() bool {
	return r.ReorderThreshold > 0 && r.Quantity <= r.ReorderThreshold
}

// DeriveStatus 由(在库数量,补货阈值)推导状态
// 纯函数:相同输入永远得到相同输出,与调用历史无关
func DeriveStatus(quantity, reorderThreshold int) Status {
	switch {
	case quantity <= 0:
		return StatusOutOfStock
	case reorderThreshold > 0 && quantity <= reorderThreshold:
		return StatusLowStock
	default:
		return StatusAvailable
	}
}

// recompute 重新推导状态
// DISCONTINUED是人工覆盖,保持不动
func (r *Record) recompute() {
	if r.Status == StatusDiscontinued {
		return
	}
	r.Status = DeriveStatus(r.Quantity, r.ReorderThreshold)
}

// touch 更新审计字段与版本号
func (r *Record) touch() {
	r.UpdatedAt = time.Now()
	r.Version++
}

// Adjust 调整在库数量(入库为正,出库/盘亏为负)
// 业务规则:
// 1. 调整后在库数量不能为负
// 2. 调整后在库数量不能低于已预留数量(否则预留无法兑现)
func (r *Record) Adjust(delta int) error {
	newQuantity := r.Quantity + delta
	if newQuantity < 0 {
		return ErrNegativeQuantity
	}
	if newQuantity < r.ReservedQuantity {
		return ErrReservedExceedsQuantity
	}
	r.Quantity = newQuantity
	r.recompute()
	r.touch()
	return nil
}

// Reserve 预留库存(下单锁定)
// 预留只占用可售数量,不减少在库数量;状态推导依据在库数量,预留不影响状态
func (r *Record) Reserve(amount int) error {
	if amount <= 0 {
		return ErrInvalidQuantity
	}
	if amount > r.AvailableQuantity() {
		return ErrInsufficientStock
	}
	r.ReservedQuantity += amount
	r.recompute()
	r.touch()
	return nil
}

// Release 释放预留(取消订单、删除订单)
func (r *Record) Release(amount int) error {
	if amount <= 0 {
		return ErrInvalidQuantity
	}
	if amount > r.ReservedQuantity {
		return ErrReleaseExceedsReserved
	}
	r.ReservedQuantity -= amount
	r.recompute()
	r.touch()
	return nil
}

// Confirm 确认预留(发货时把预留转为实际扣减)
// 在库数量与已预留数量同步减少,可售数量不变
func (r *Record) Confirm(amount int) error {
	if amount <= 0 {
		return ErrInvalidQuantity
	}
	if amount > r.ReservedQuantity {
		return ErrReleaseExceedsReserved
	}
	r.Quantity -= amount
	r.ReservedQuantity -= amount
	r.recompute()
	r.touch()
	return nil
}

// Discontinue 标记停售(人工覆盖,此后状态推导不再生效)
func (r *Record) Discontinue() {
	r.Status = StatusDiscontinued
	r.touch()
}

// Reinstate 取消停售,恢复自动状态推导
func (r *Record) Reinstate() {
	r.Status = DeriveStatus(r.Quantity, r.ReorderThreshold)
	r.touch()
}
