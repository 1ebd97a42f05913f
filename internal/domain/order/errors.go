package order

import (
	apperrors "github.com/xiebiao/ecommerce/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")

	// ErrInvalidStatusTransition 非法的履约状态转换
	ErrInvalidStatusTransition = apperrors.New(apperrors.ErrCodeInvalidOrderStatus, "订单状态不允许此操作")

	// ErrInvalidPaymentTransition 非法的支付状态转换
	ErrInvalidPaymentTransition = apperrors.New(apperrors.ErrCodeInvalidOrderStatus, "支付状态不允许此操作")

	// ErrCannotCancel 已发货/已送达的订单不能取消
	ErrCannotCancel = apperrors.New(apperrors.ErrCodeInvalidOrderStatus, "订单已发货或已送达,不能取消")

	// ErrInvalidOrderItems 订单明细不合法
	ErrInvalidOrderItems = apperrors.New(apperrors.ErrCodeInvalidParams, "订单明细不能为空")

	// ErrInvalidQuantity 购买数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "购买数量必须大于0")
)
