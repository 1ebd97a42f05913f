package address

import (
	apperrors "github.com/xiebiao/ecommerce/pkg/errors"
)

// 收货地址领域错误定义
var (
	// ErrAddressNotFound 地址不存在
	ErrAddressNotFound = apperrors.New(apperrors.ErrCodeAddressNotFound, "收货地址不存在")

	// ErrNotOwner 地址不属于当前用户
	ErrNotOwner = apperrors.New(apperrors.ErrCodeAddressInvalid, "收货地址不属于当前用户")

	// ErrIncompleteAddress 地址信息不完整
	ErrIncompleteAddress = apperrors.New(apperrors.ErrCodeAddressInvalid, "收货地址信息不完整")
)
