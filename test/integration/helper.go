package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 集成测试辅助工具
// 运行方式：
//   make test-integration   # 需要先启动Docker环境
//   go test -v ./test/integration/...

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// RegisterData 注册响应数据
type RegisterData struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

// LoginData 登录响应数据
type LoginData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ProductData 商品响应数据
type ProductData struct {
	ID   uint   `json:"id"`
	SKU  string `json:"sku"`
	Name string `json:"name"`
}

// WarehouseData 仓库响应数据
type WarehouseData struct {
	ID   uint   `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// InventoryData 库存记录响应数据
type InventoryData struct {
	ID                uint   `json:"id"`
	ProductID         uint   `json:"product_id"`
	WarehouseID       uint   `json:"warehouse_id"`
	Quantity          int    `json:"quantity"`
	ReservedQuantity  int    `json:"reserved_quantity"`
	AvailableQuantity int    `json:"available_quantity"`
	Status            string `json:"status"`
}

// AddressData 地址响应数据
type AddressData struct {
	ID        uint `json:"id"`
	IsDefault bool `json:"is_default"`
}

// OrderData 订单响应数据
type OrderData struct {
	OrderID     uint   `json:"order_id"`
	OrderNo     string `json:"order_no"`
	TotalAmount int64  `json:"total_amount"`
	ShippingFee int64  `json:"shipping_fee"`
	Status      string `json:"status"`
	ItemCount   int    `json:"item_count"`
}

// doJSON 发送带JSON体的请求并解析响应
func doJSON(t *testing.T, method, url string, data interface{}, token string) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(raw, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(raw))

	return &result
}

// PostJSON 发送POST请求并解析JSON响应
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, http.MethodPost, url, data, token)
}

// PutJSON 发送PUT请求并解析JSON响应
func PutJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, http.MethodPut, url, data, token)
}

// DeleteJSON 发送DELETE请求并解析JSON响应
func DeleteJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, http.MethodDelete, url, nil, token)
}

// GetJSON 发送GET请求并解析JSON响应
func GetJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, http.MethodGet, url, nil, token)
}

// seq 测试资源序号(保证SKU、仓库编码在一次运行内唯一)
var seq atomic.Int64

// GenerateTestEmail 生成唯一的测试邮箱
func GenerateTestEmail(prefix string) string {
	return fmt.Sprintf("%s_%d_%d@test.com", prefix, time.Now().Unix(), seq.Add(1))
}

// RegisterTestUser 注册并登录一个测试用户,返回用户ID和Access Token
func RegisterTestUser(t *testing.T, prefix string) (uint, string) {
	t.Helper()

	email := GenerateTestEmail(prefix)
	resp := PostJSON(t, BaseURL+"/users/register", map[string]string{
		"email":    email,
		"password": "Test1234",
		"nickname": "测试用户",
	}, "")
	require.Equal(t, 0, resp.Code, "注册失败: %s", resp.Message)

	var reg RegisterData
	require.NoError(t, json.Unmarshal(resp.Data, &reg))

	resp = PostJSON(t, BaseURL+"/users/login", map[string]string{
		"email":    email,
		"password": "Test1234",
	}, "")
	require.Equal(t, 0, resp.Code, "登录失败: %s", resp.Message)

	var login LoginData
	require.NoError(t, json.Unmarshal(resp.Data, &login))

	return reg.ID, login.AccessToken
}

// PublishTestProduct 上架一个测试商品,返回商品ID
func PublishTestProduct(t *testing.T, token, name string, priceFen int64) uint {
	t.Helper()

	resp := PostJSON(t, BaseURL+"/products", map[string]interface{}{
		"sku":   fmt.Sprintf("TEST-%d-%d", time.Now().Unix(), seq.Add(1)),
		"name":  name,
		"price": priceFen,
	}, token)
	require.Equal(t, 0, resp.Code, "上架商品失败: %s", resp.Message)

	var p ProductData
	require.NoError(t, json.Unmarshal(resp.Data, &p))
	return p.ID
}

// CreateTestWarehouse 创建一个测试仓库,返回仓库ID
func CreateTestWarehouse(t *testing.T, token string) uint {
	t.Helper()

	resp := PostJSON(t, BaseURL+"/warehouses", map[string]string{
		"code": fmt.Sprintf("WH-%d-%d", time.Now().Unix(), seq.Add(1)),
		"name": "测试仓库",
	}, token)
	require.Equal(t, 0, resp.Code, "创建仓库失败: %s", resp.Message)

	var w WarehouseData
	require.NoError(t, json.Unmarshal(resp.Data, &w))
	return w.ID
}

// CreateTestInventory 为商品在指定仓库建立库存,返回库存记录ID
func CreateTestInventory(t *testing.T, token string, productID, warehouseID uint, quantity int) uint {
	t.Helper()

	resp := PostJSON(t, BaseURL+"/inventory", map[string]interface{}{
		"product_id":   productID,
		"warehouse_id": warehouseID,
		"quantity":     quantity,
	}, token)
	require.Equal(t, 0, resp.Code, "创建库存记录失败: %s", resp.Message)

	var inv InventoryData
	require.NoError(t, json.Unmarshal(resp.Data, &inv))
	return inv.ID
}

// CreateTestAddress 为当前用户创建收货地址,返回地址ID
func CreateTestAddress(t *testing.T, token string) uint {
	t.Helper()

	resp := PostJSON(t, BaseURL+"/addresses", map[string]interface{}{
		"receiver": "张三",
		"phone":    "13800000000",
		"province": "广东省",
		"city":     "深圳市",
		"district": "南山区",
		"street":   "科技园路1号",
	}, token)
	require.Equal(t, 0, resp.Code, "创建地址失败: %s", resp.Message)

	var a AddressData
	require.NoError(t, json.Unmarshal(resp.Data, &a))
	return a.ID
}
