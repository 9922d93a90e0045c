package servers

import (
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Defines values for OrderUpdatePaymentStatus.
const (
	Paid     OrderUpdatePaymentStatus = "paid"
	Refunded OrderUpdatePaymentStatus = "refunded"
	Unpaid   OrderUpdatePaymentStatus = "unpaid"
)

// MessageResponse defines model for MessageResponse.
type MessageResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	DeliveryAddress string             `json:"delivery_address" validate:"required"`
	DeliveryNote    *string            `json:"delivery_note,omitempty"`
	Items           []NewOrderItem     `json:"items" validate:"required,min=1,dive"`
	PaymentMethod   *string            `json:"payment_method,omitempty"`
	ProfileId       string             `json:"profile_id" validate:"required,max=128"`
	RestaurantId    openapi_types.UUID `json:"restaurant_id" validate:"required"`
}

// NewOrderItem defines model for NewOrderItem.
type NewOrderItem struct {
	Note        *string            `json:"note,omitempty"`
	ProductId   openapi_types.UUID `json:"product_id" validate:"required"`
	ProductName string             `json:"product_name" validate:"required,max=255"`
	Quantity    int                `json:"quantity" validate:"gte=1"`
	UnitPrice   decimal.Decimal    `json:"unit_price"`
}

// Order defines model for Order. Money amounts are serialised as decimal strings.
type Order struct {
	CreatedAt       string              `json:"created_at"`
	DeliveryAddress string              `json:"delivery_address"`
	DeliveryFee     decimal.Decimal     `json:"delivery_fee"`
	DeliveryNote    string              `json:"delivery_note"`
	Discount        decimal.Decimal     `json:"discount"`
	DriverId        *openapi_types.UUID `json:"driver_id"`
	Id              openapi_types.UUID  `json:"id"`
	Items           []OrderItem         `json:"items"`
	PaymentMethod   string              `json:"payment_method"`
	PaymentStatus   string              `json:"payment_status"`
	ProfileId       string              `json:"profile_id"`
	RestaurantId    openapi_types.UUID  `json:"restaurant_id"`
	Status          string              `json:"status"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	UpdatedAt       string              `json:"updated_at"`
}

// OrderItem defines model for OrderItem.
type OrderItem struct {
	Id          openapi_types.UUID `json:"id"`
	Note        string             `json:"note,omitempty"`
	ProductId   openapi_types.UUID `json:"product_id"`
	ProductName string             `json:"product_name"`
	Quantity    int                `json:"quantity"`
	UnitPrice   decimal.Decimal    `json:"unit_price"`
}

// OrderListResponse defines model for OrderListResponse.
type OrderListResponse struct {
	Data    []Order `json:"data"`
	Message string  `json:"message"`
	Success bool    `json:"success"`
	Total   int64   `json:"total"`
}

// OrderResponse defines model for OrderResponse.
type OrderResponse struct {
	Data    Order  `json:"data"`
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// OrderUpdate defines model for OrderUpdate.
type OrderUpdate struct {
	DeliveryAddress *string                   `json:"delivery_address,omitempty"`
	DeliveryNote    *string                   `json:"delivery_note,omitempty"`
	DriverId        *openapi_types.UUID       `json:"driver_id,omitempty"`
	PaymentStatus   *OrderUpdatePaymentStatus `json:"payment_status,omitempty"`
	Status          *string                   `json:"status,omitempty"`
}

// OrderUpdatePaymentStatus defines model for OrderUpdate.PaymentStatus.
type OrderUpdatePaymentStatus string

// ListOrdersParams defines parameters for ListOrders.
type ListOrdersParams struct {
	Skip         *int                `form:"skip,omitempty" json:"skip,omitempty"`
	Limit        *int                `form:"limit,omitempty" json:"limit,omitempty"`
	ProfileId    *string             `form:"profile_id,omitempty" json:"profile_id,omitempty"`
	RestaurantId *openapi_types.UUID `form:"restaurant_id,omitempty" json:"restaurant_id,omitempty"`
	DriverId     *openapi_types.UUID `form:"driver_id,omitempty" json:"driver_id,omitempty"`

	// Status may be repeated or comma separated.
	Status *[]string `form:"status,omitempty" json:"status,omitempty"`
}

// AssignDriverParams defines parameters for AssignDriver.
type AssignDriverParams struct {
	DriverId openapi_types.UUID `form:"driver_id" json:"driver_id"`
}

// CreateOrderJSONRequestBody defines body for CreateOrder for application/json ContentType.
type CreateOrderJSONRequestBody = NewOrder

// UpdateOrderJSONRequestBody defines body for UpdateOrder for application/json ContentType.
type UpdateOrderJSONRequestBody = OrderUpdate
