package cart

import (
	"time"
)

// Item 购物车条目实体
// 设计说明:
// 1. 购物车按(用户, 商品)唯一:重复加购累加数量而非新增行
// 2. 不存价格快照:结算时按商品当前售价计算(购物车展示也取实时价)
// 3. 结算成功后整车清空(下单即清车)
type Item struct {
	ID        uint
	UserID    uint
	ProductID uint
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewItem 创建购物车条目(工厂方法)
func NewItem(userID, productID uint, quantity int) (*Item, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	now := time.Now()
	return &Item{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// AddQuantity 累加数量(重复加购)
func (i *Item) AddQuantity(delta int) error {
	if delta <= 0 {
		return ErrInvalidQuantity
	}
	i.Quantity += delta
	i.UpdatedAt = time.Now()
	return nil
}

// SetQuantity 设置数量(购物车内调整)
func (i *Item) SetQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	i.Quantity = quantity
	i.UpdatedAt = time.Now()
	return nil
}

// IsOwnedBy 判断条目是否属于指定用户
func (i *Item) IsOwnedBy(userID uint) bool {
	return i.UserID == userID
}
