package order

import (
	"time"
)

// Status 订单状态(履约轴)
// 设计说明:
// 1. 使用int类型而非string(节省存储空间,便于索引)
// 2. 正向流转:处理中→已发货→已送达;取消只允许发生在"处理中"
// 3. 已取消的订单可以恢复为处理中(恢复时需重新预留库存)
type Status int

const (
	StatusProcessing Status = 1 // 处理中(已下单,库存已预留)
	StatusShipped    Status = 2 // 已发货(预留已转为实际扣减)
	StatusDelivered  Status = 3 // 已送达(终态)
	StatusCancelled  Status = 4 // 已取消(预留已释放)
)

// String 实现Stringer接口(方便日志输出)
func (s Status) String() string {
	switch s {
	case StatusProcessing:
		return "处理中"
	case StatusShipped:
		return "已发货"
	case StatusDelivered:
		return "已送达"
	case StatusCancelled:
		return "已取消"
	default:
		return "未知状态"
	}
}

// PaymentStatus 支付状态(独立于履约轴)
// 由支付协作方显式设置,与订单状态之间没有自动联动
type PaymentStatus int

const (
	PaymentPending   PaymentStatus = 1 // 待支付
	PaymentCompleted PaymentStatus = 2 // 已支付
	PaymentFailed    PaymentStatus = 3 // 支付失败
	PaymentRefunded  PaymentStatus = 4 // 已退款
)

// String 实现Stringer接口
func (s PaymentStatus) String() string {
	switch s {
	case PaymentPending:
		return "待支付"
	case PaymentCompleted:
		return "已支付"
	case PaymentFailed:
		return "支付失败"
	case PaymentRefunded:
		return "已退款"
	default:
		return "未知状态"
	}
}

// Allocation 库存分配记录(值对象)
// 设计说明:
// 记录订单行在预留时实际占用了哪条库存记录、占用多少。
// 取消释放、发货确认都按分配记录精确回到同一仓库的同一条库存上,
// 避免"同商品多仓库时释放错仓库"的问题。
type Allocation struct {
	ID          uint
	OrderItemID uint
	InventoryID uint // 被占用的库存记录ID
	Quantity    int  // 占用数量
}

// Item 订单明细项
// 设计说明:
// 1. 不是独立聚合根,必须通过Order访问
// 2. UnitPrice记录下单时的单价快照(分),商家改价不影响历史订单
// 3. 只保存ProductID,不反向引用商品对象(避免跨聚合引用),商品详情按需向目录层查询
type Item struct {
	ID          uint
	OrderID     uint
	ProductID   uint
	Quantity    int          // 购买数量(>=1)
	UnitPrice   int64        // 下单时单价(分)
	Subtotal    int64        // 小计 = UnitPrice * Quantity
	Allocations []Allocation // 库存分配记录
}

// Order 订单实体(聚合根)
// 设计说明:
// 1. Order是聚合根,Item是子实体,单向持有
// 2. OrderNo是业务主键,全局唯一
// 3. TotalAmount在创建时冗余存储(商品小计之和 + 运费),防止改价影响历史订单
// 4. 两条状态轴:Status(履约)与PaymentStatus(支付)互相独立
type Order struct {
	ID                uint
	OrderNo           string // 订单号(业务主键,全局唯一)
	UserID            uint   // 买家用户ID
	Items             []Item // 订单明细
	TotalAmount       int64  // 订单总金额(分),含运费
	ShippingFee       int64  // 运费(分)
	Status            Status
	PaymentStatus     PaymentStatus
	ShippingAddressID uint
	BillingAddressID  uint
	PaymentMethod     string
	OrderedAt         time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewOrder 创建新订单(工厂方法)
// 初始状态:处理中/待支付;totalAmount由调用方按明细小计+运费计算后传入
func NewOrder(orderNo string, userID uint, items []Item, shippingFee int64, shippingAddressID, billingAddressID uint, paymentMethod string) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrInvalidOrderItems
	}
	var total int64
	for i := range items {
		if items[i].Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		items[i].Subtotal = items[i].UnitPrice * int64(items[i].Quantity)
		total += items[i].Subtotal
	}
	now := time.Now()
	return &Order{
		OrderNo:           orderNo,
		UserID:            userID,
		Items:             items,
		TotalAmount:       total + shippingFee,
		ShippingFee:       shippingFee,
		Status:            StatusProcessing,
		PaymentStatus:     PaymentPending,
		ShippingAddressID: shippingAddressID,
		BillingAddressID:  billingAddressID,
		PaymentMethod:     paymentMethod,
		OrderedAt:         now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// CanTransitionTo 检查履约状态是否可以转换到目标状态
// 状态机设计:防止非法跳转(如已送达→处理中)
func (o *Order) CanTransitionTo(target Status) bool {
	transitions := map[Status][]Status{
		StatusProcessing: {StatusShipped, StatusCancelled}, // 处理中→已发货/已取消
		StatusShipped:    {StatusDelivered},                // 已发货→已送达(发货后不可取消)
		StatusDelivered:  {},                               // 终态
		StatusCancelled:  {StatusProcessing},               // 已取消→恢复处理中(需重新预留库存)
	}

	allowedTargets, exists := transitions[o.Status]
	if !exists {
		return false
	}

	for _, allowed := range allowedTargets {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo 履约状态转换
// 只校验并修改聚合自身;关联的库存副作用由应用层在同一事务内执行
func (o *Order) TransitionTo(target Status) error {
	if !o.CanTransitionTo(target) {
		return ErrInvalidStatusTransition
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}

// Cancel 取消订单(领域行为)
// 业务规则:只有"处理中"的订单可以取消,已发货/已送达一律拒绝
func (o *Order) Cancel() error {
	if o.Status == StatusShipped || o.Status == StatusDelivered {
		return ErrCannotCancel
	}
	return o.TransitionTo(StatusCancelled)
}

// SetPaymentStatus 设置支付状态
// 支付轴的合法流转:待支付→已支付/支付失败,已支付→已退款
func (o *Order) SetPaymentStatus(target PaymentStatus) error {
	transitions := map[PaymentStatus][]PaymentStatus{
		PaymentPending:   {PaymentCompleted, PaymentFailed},
		PaymentCompleted: {PaymentRefunded},
		PaymentFailed:    {PaymentPending}, // 允许重新发起支付
		PaymentRefunded:  {},
	}

	allowed, exists := transitions[o.PaymentStatus]
	if !exists {
		return ErrInvalidPaymentTransition
	}
	for _, a := range allowed {
		if a == target {
			o.PaymentStatus = target
			o.UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrInvalidPaymentTransition
}

// CalculateTotal 计算订单总金额(明细小计之和 + 运费)
// 用于校验冗余存储的TotalAmount是否一致
func (o *Order) CalculateTotal() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.UnitPrice * int64(item.Quantity)
	}
	return total + o.ShippingFee
}

// IsOwnedBy 检查订单是否属于指定用户
func (o *Order) IsOwnedBy(userID uint) bool {
	return o.UserID == userID
}

// HoldsReservation 当前状态下订单是否仍持有库存预留
// 处理中的订单持有预留;已发货(预留已消耗)、已取消(预留已释放)、已送达不再持有
func (o *Order) HoldsReservation() bool {
	return o.Status == StatusProcessing
}
