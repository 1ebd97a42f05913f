package checkout

import (
	"context"
	"strings"

	apperrors "github.com/xiebiao/ecommerce/pkg/errors"
)

// CouponUseCase 优惠券查询用例
// 独立的查询操作:结算金额不自动折算优惠,前端展示用
// TODO: 接入营销系统后替换固定券码为规则引擎查询
type CouponUseCase struct{}

// NewCouponUseCase 创建优惠券用例
func NewCouponUseCase() *CouponUseCase {
	return &CouponUseCase{}
}

// CouponResponse 优惠券响应DTO
type CouponResponse struct {
	Code         string `json:"code"`
	Description  string `json:"description"`
	DiscountFen  int64  `json:"discount_fen"`   // 抵扣金额(分),0表示非固定金额券
	FreeShipping bool   `json:"free_shipping"`  // 是否免运费
}

// Lookup 查询优惠券
// 固定券码:
// - DISCOUNT20: 抵扣20元
// - FREESHIP:   免运费
func (uc *CouponUseCase) Lookup(ctx context.Context, code string) (*CouponResponse, error) {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "DISCOUNT20":
		return &CouponResponse{
			Code:        "DISCOUNT20",
			Description: "满减券:抵扣20元",
			DiscountFen: 2000,
		}, nil
	case "FREESHIP":
		return &CouponResponse{
			Code:         "FREESHIP",
			Description:  "免运费券",
			FreeShipping: true,
		}, nil
	default:
		return nil, apperrors.ErrInvalidCoupon
	}
}
