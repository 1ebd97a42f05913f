package integration

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 结算模块集成测试
//
// 结算是本项目的核心流程，串联了购物车、地址、商品、库存、订单五个模块：
// 1. 数据库事务内完成 校验购物车 → 跨仓分配库存 → 预留 → 建单 → 清空购物车
// 2. 悲观锁(SELECT FOR UPDATE)防止并发超卖
// 3. 金额全程以分(int64)计算，运费 = 基础费 + 单件费×总件数

// addToCart 向购物车添加商品
func addToCart(t *testing.T, token string, productID uint, quantity int) {
	t.Helper()
	resp := PostJSON(t, BaseURL+"/cart/items", map[string]interface{}{
		"product_id": productID,
		"quantity":   quantity,
	}, token)
	require.Equal(t, 0, resp.Code, "加入购物车失败: %s", resp.Message)
}

// checkout 使用默认参数发起结算
func checkout(t *testing.T, token string, addressID uint) *Response {
	t.Helper()
	return PostJSON(t, BaseURL+"/checkout", map[string]interface{}{
		"shipping_address_id": addressID,
		"payment_method":      "alipay",
	}, token)
}

// TestCheckoutFlow 测试完整结算流程
func TestCheckoutFlow(t *testing.T) {
	_, token := RegisterTestUser(t, "checkout")
	warehouseID := CreateTestWarehouse(t, token)
	addressID := CreateTestAddress(t, token)

	t.Run("正常结算", func(t *testing.T) {
		// 商品A 10.00元 买2件，商品B 5.00元 买1件
		productA := PublishTestProduct(t, token, "商品A", 1000)
		productB := PublishTestProduct(t, token, "商品B", 500)
		CreateTestInventory(t, token, productA, warehouseID, 10)
		CreateTestInventory(t, token, productB, warehouseID, 10)

		addToCart(t, token, productA, 2)
		addToCart(t, token, productB, 1)

		resp := checkout(t, token, addressID)
		require.Equal(t, 0, resp.Code, "结算应该成功: %s", resp.Message)

		var data OrderData
		require.NoError(t, json.Unmarshal(resp.Data, &data))

		// 小计 1000*2+500 = 2500分，运费 500 + 50*3 = 650分
		assert.Equal(t, int64(3150), data.TotalAmount, "订单总额应为31.50元")
		assert.Equal(t, int64(650), data.ShippingFee, "运费应为6.50元")
		assert.Equal(t, 2, data.ItemCount)
		assert.NotEmpty(t, data.OrderNo)

		t.Logf("✓ 结算成功，订单号: %s，总额: %d分", data.OrderNo, data.TotalAmount)

		// 结算后购物车应已清空
		cartResp := GetJSON(t, BaseURL+"/cart", token)
		require.Equal(t, 0, cartResp.Code)
		var cart struct {
			Items []json.RawMessage `json:"items"`
		}
		require.NoError(t, json.Unmarshal(cartResp.Data, &cart))
		assert.Empty(t, cart.Items, "结算后购物车应该清空")

		t.Logf("✓ 购物车已清空")
	})

	t.Run("空购物车结算应失败", func(t *testing.T) {
		resp := checkout(t, token, addressID)
		assert.NotEqual(t, 0, resp.Code, "空购物车结算应该失败")

		t.Logf("✓ 空购物车正确被拒绝: %s", resp.Message)
	})

	t.Run("他人地址结算应失败", func(t *testing.T) {
		_, otherToken := RegisterTestUser(t, "other")
		otherAddressID := CreateTestAddress(t, otherToken)

		productID := PublishTestProduct(t, token, "商品C", 1000)
		CreateTestInventory(t, token, productID, warehouseID, 10)
		addToCart(t, token, productID, 1)

		resp := checkout(t, token, otherAddressID)
		assert.NotEqual(t, 0, resp.Code, "使用他人地址应该失败")

		// 失败后购物车保持原样，换回本人地址可继续结算
		resp = checkout(t, token, addressID)
		assert.Equal(t, 0, resp.Code, "换回本人地址应该成功: %s", resp.Message)

		t.Logf("✓ 他人地址被拒绝且购物车未被清空")
	})

	t.Run("库存不足结算应失败", func(t *testing.T) {
		productID := PublishTestProduct(t, token, "商品D", 1000)
		CreateTestInventory(t, token, productID, warehouseID, 2)

		addToCart(t, token, productID, 5)

		resp := checkout(t, token, addressID)
		assert.NotEqual(t, 0, resp.Code, "库存不足应该失败")

		t.Logf("✓ 库存不足正确返回错误: %s", resp.Message)

		// 清掉本子测试的购物车，避免影响后续用例
		require.Equal(t, 0, DeleteJSON(t, BaseURL+"/cart", token).Code)
	})

	t.Run("跨仓库分配库存", func(t *testing.T) {
		// 两个仓各3件，购买5件需要跨仓凑单
		warehouse2 := CreateTestWarehouse(t, token)
		productID := PublishTestProduct(t, token, "商品E", 1000)
		invA := CreateTestInventory(t, token, productID, warehouseID, 3)
		invB := CreateTestInventory(t, token, productID, warehouse2, 3)

		addToCart(t, token, productID, 5)

		resp := checkout(t, token, addressID)
		require.Equal(t, 0, resp.Code, "跨仓结算应该成功: %s", resp.Message)

		// 两条库存记录的预留量之和应等于购买量
		total := 0
		for _, invID := range []uint{invA, invB} {
			invResp := GetJSON(t, fmt.Sprintf("%s/inventory/%d", BaseURL, invID), token)
			require.Equal(t, 0, invResp.Code)
			var inv InventoryData
			require.NoError(t, json.Unmarshal(invResp.Data, &inv))
			total += inv.ReservedQuantity
		}
		assert.Equal(t, 5, total, "两仓预留量之和应等于购买量")

		t.Logf("✓ 跨仓分配成功，共预留%d件", total)
	})
}

// TestCheckoutConcurrency 测试并发结算防超卖
//
// 场景：库存10件，20个用户同时各买1件，应恰好10人成功
func TestCheckoutConcurrency(t *testing.T) {
	_, sellerToken := RegisterTestUser(t, "seller")
	warehouseID := CreateTestWarehouse(t, sellerToken)
	productID := PublishTestProduct(t, sellerToken, "秒杀商品", 9900)
	CreateTestInventory(t, sellerToken, productID, warehouseID, 10)

	type buyer struct {
		token     string
		addressID uint
	}

	concurrency := 20
	buyers := make([]buyer, 0, concurrency)
	for i := 0; i < concurrency; i++ {
		_, token := RegisterTestUser(t, fmt.Sprintf("rush%d", i))
		addressID := CreateTestAddress(t, token)
		addToCart(t, token, productID, 1)
		buyers = append(buyers, buyer{token: token, addressID: addressID})
	}

	results := make(chan bool, concurrency)
	for _, b := range buyers {
		go func(b buyer) {
			resp := checkout(t, b.token, b.addressID)
			results <- resp.Code == 0
		}(b)
	}

	successCount := 0
	for i := 0; i < concurrency; i++ {
		if <-results {
			successCount++
		}
	}

	assert.Equal(t, 10, successCount, "成功结算数应该等于库存数")

	t.Logf("✓ 并发结算：%d/%d 成功，未出现超卖", successCount, concurrency)
}
