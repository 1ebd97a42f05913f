package cart

import (
	apperrors "github.com/xiebiao/ecommerce/pkg/errors"
)

// 购物车领域错误定义
var (
	// ErrItemNotFound 购物车条目不存在
	ErrItemNotFound = apperrors.New(apperrors.ErrCodeNotFound, "购物车条目不存在")

	// ErrInvalidQuantity 数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "商品数量必须大于0")

	// ErrEmptyCart 购物车为空
	ErrEmptyCart = apperrors.New(apperrors.ErrCodeCartInvalid, "购物车为空,无法结算")
)
