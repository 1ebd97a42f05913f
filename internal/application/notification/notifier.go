package notification

import (
	"log"
	"time"

	"github.com/xiebiao/ecommerce/internal/domain/order"
	"github.com/xiebiao/ecommerce/pkg/circuitbreaker"
)

// 路由键定义(Topic Exchange)
const (
	RoutingKeyOrderCreated       = "order.created"
	RoutingKeyOrderStatusChanged = "order.status_changed"
)

// EventPublisher 事件发布接口(由pkg/mq.Publisher实现)
type EventPublisher interface {
	Publish(routingKey string, message interface{}) error
}

// OrderCreatedEvent 订单创建事件
type OrderCreatedEvent struct {
	OrderID     uint   `json:"order_id"`
	OrderNo     string `json:"order_no"`
	UserID      uint   `json:"user_id"`
	TotalAmount int64  `json:"total_amount"`
	ItemCount   int    `json:"item_count"`
	CreatedAt   string `json:"created_at"`
}

// OrderStatusChangedEvent 订单状态变更事件
type OrderStatusChangedEvent struct {
	OrderID    uint   `json:"order_id"`
	OrderNo    string `json:"order_no"`
	UserID     uint   `json:"user_id"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
	ChangedAt  string `json:"changed_at"`
}

// Notifier 订单事件通知器
// 设计说明:
// 1. 通知是尽力而为的旁路操作:发布失败只记录日志,绝不影响业务事务
// 2. 发布走熔断器:MQ故障时快速失败,避免每次下单都等待连接超时
// 3. publisher为nil时(mq.enabled=false)所有通知都是空操作
type Notifier struct {
	publisher EventPublisher
	breaker   *circuitbreaker.CircuitBreaker
}

// NewNotifier 创建通知器
func NewNotifier(publisher EventPublisher) *Notifier {
	return &Notifier{
		publisher: publisher,
		breaker: circuitbreaker.NewCircuitBreaker("mq-notify", circuitbreaker.Config{
			MaxRequests: 1,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
	}
}

// OrderCreated 发布订单创建事件(业务事务提交后调用)
func (n *Notifier) OrderCreated(o *order.Order) {
	n.publish(RoutingKeyOrderCreated, OrderCreatedEvent{
		OrderID:     o.ID,
		OrderNo:     o.OrderNo,
		UserID:      o.UserID,
		TotalAmount: o.TotalAmount,
		ItemCount:   len(o.Items),
		CreatedAt:   o.CreatedAt.Format(time.RFC3339),
	})
}

// OrderStatusChanged 发布订单状态变更事件
func (n *Notifier) OrderStatusChanged(o *order.Order, from, to order.Status) {
	n.publish(RoutingKeyOrderStatusChanged, OrderStatusChangedEvent{
		OrderID:    o.ID,
		OrderNo:    o.OrderNo,
		UserID:     o.UserID,
		FromStatus: from.String(),
		ToStatus:   to.String(),
		ChangedAt:  time.Now().Format(time.RFC3339),
	})
}

func (n *Notifier) publish(routingKey string, event interface{}) {
	if n.publisher == nil {
		return
	}

	err := n.breaker.Execute(func() error {
		return n.publisher.Publish(routingKey, event)
	})
	if err != nil {
		// 尽力而为:只记录,不向上传播
		log.Printf("订单事件发布失败(忽略): key=%s, err=%v", routingKey, err)
	}
}
