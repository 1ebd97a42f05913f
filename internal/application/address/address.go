package address

import (
	"context"

	"github.com/xiebiao/ecommerce/internal/domain/address"
)

// Transactor 事务执行器(由mysql.TxManager实现)
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// AddressUseCase 收货地址用例
type AddressUseCase struct {
	addressRepo address.Repository
	txManager   Transactor
}

// NewAddressUseCase 创建收货地址用例
func NewAddressUseCase(addressRepo address.Repository, txManager Transactor) *AddressUseCase {
	return &AddressUseCase{
		addressRepo: addressRepo,
		txManager:   txManager,
	}
}

// SaveAddressRequest 新增/更新地址请求DTO
type SaveAddressRequest struct {
	UserID    uint
	Receiver  string
	Phone     string
	Province  string
	City      string
	District  string
	Street    string
	ZipCode   string
	IsDefault bool
}

// AddressView 地址视图DTO
type AddressView struct {
	ID        uint   `json:"id"`
	Receiver  string `json:"receiver"`
	Phone     string `json:"phone"`
	Province  string `json:"province"`
	City      string `json:"city"`
	District  string `json:"district,omitempty"`
	Street    string `json:"street"`
	ZipCode   string `json:"zip_code,omitempty"`
	IsDefault bool   `json:"is_default"`
}

// Create 新增地址
// 设为默认时,事务内先清除旧默认再写入
func (uc *AddressUseCase) Create(ctx context.Context, req SaveAddressRequest) (*AddressView, error) {
	addr, err := address.NewAddress(req.UserID, req.Receiver, req.Phone, req.Province, req.City, req.District, req.Street, req.ZipCode)
	if err != nil {
		return nil, err
	}

	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if req.IsDefault {
			if err := uc.addressRepo.ClearDefault(txCtx, req.UserID); err != nil {
				return err
			}
			addr.SetDefault()
		}
		return uc.addressRepo.Create(txCtx, addr)
	})
	if err != nil {
		return nil, err
	}

	return toAddressView(addr), nil
}

// Update 更新地址(归属校验)
func (uc *AddressUseCase) Update(ctx context.Context, addressID uint, req SaveAddressRequest) error {
	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		addr, err := uc.addressRepo.FindByID(txCtx, addressID)
		if err != nil {
			return err
		}
		if !addr.IsOwnedBy(req.UserID) {
			return address.ErrNotOwner
		}

		addr.Update(req.Receiver, req.Phone, req.Province, req.City, req.District, req.Street, req.ZipCode)
		if req.IsDefault && !addr.IsDefault {
			if err := uc.addressRepo.ClearDefault(txCtx, req.UserID); err != nil {
				return err
			}
			addr.SetDefault()
		}

		return uc.addressRepo.Update(txCtx, addr)
	})
}

// SetDefault 设为默认地址
func (uc *AddressUseCase) SetDefault(ctx context.Context, addressID, userID uint) error {
	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		addr, err := uc.addressRepo.FindByID(txCtx, addressID)
		if err != nil {
			return err
		}
		if !addr.IsOwnedBy(userID) {
			return address.ErrNotOwner
		}

		if err := uc.addressRepo.ClearDefault(txCtx, userID); err != nil {
			return err
		}
		addr.SetDefault()
		return uc.addressRepo.Update(txCtx, addr)
	})
}

// Delete 删除地址(归属校验)
func (uc *AddressUseCase) Delete(ctx context.Context, addressID, userID uint) error {
	addr, err := uc.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		return err
	}
	if !addr.IsOwnedBy(userID) {
		return address.ErrNotOwner
	}
	return uc.addressRepo.Delete(ctx, addressID)
}

// List 查询用户地址列表(默认地址在前)
func (uc *AddressUseCase) List(ctx context.Context, userID uint) ([]*AddressView, error) {
	addrs, err := uc.addressRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]*AddressView, len(addrs))
	for i, a := range addrs {
		views[i] = toAddressView(a)
	}
	return views, nil
}

func toAddressView(a *address.Address) *AddressView {
	return &AddressView{
		ID:        a.ID,
		Receiver:  a.Receiver,
		Phone:     a.Phone,
		Province:  a.Province,
		City:      a.City,
		District:  a.District,
		Street:    a.Street,
		ZipCode:   a.ZipCode,
		IsDefault: a.IsDefault,
	}
}
