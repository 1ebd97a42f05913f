package address

import (
	"time"
)

// Address 收货地址实体
// 设计说明:
// 1. 地址归属于用户,任何操作前先做归属校验(防止越权)
// 2. 每个用户至多一个默认地址(设置新默认时清除旧默认,须在事务内)
// 3. 订单只保存地址ID引用;地址修改不回溯已下单订单(简化实现)
type Address struct {
	ID        uint
	UserID    uint
	Receiver  string // 收件人姓名
	Phone     string // 联系电话
	Province  string
	City      string
	District  string
	Street    string // 详细地址
	ZipCode   string
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAddress 创建收货地址(工厂方法)
func NewAddress(userID uint, receiver, phone, province, city, district, street, zipCode string) (*Address, error) {
	if receiver == "" || phone == "" || province == "" || city == "" || street == "" {
		return nil, ErrIncompleteAddress
	}
	now := time.Now()
	return &Address{
		UserID:    userID,
		Receiver:  receiver,
		Phone:     phone,
		Province:  province,
		City:      city,
		District:  district,
		Street:    street,
		ZipCode:   zipCode,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsOwnedBy 判断地址是否属于指定用户
func (a *Address) IsOwnedBy(userID uint) bool {
	return a.UserID == userID
}

// SetDefault 设为默认地址
func (a *Address) SetDefault() {
	a.IsDefault = true
	a.UpdatedAt = time.Now()
}

// Update 更新地址信息(空字段跳过)
func (a *Address) Update(receiver, phone, province, city, district, street, zipCode string) {
	if receiver != "" {
		a.Receiver = receiver
	}
	if phone != "" {
		a.Phone = phone
	}
	if province != "" {
		a.Province = province
	}
	if city != "" {
		a.City = city
	}
	if district != "" {
		a.District = district
	}
	if street != "" {
		a.Street = street
	}
	if zipCode != "" {
		a.ZipCode = zipCode
	}
	a.UpdatedAt = time.Now()
}
