// Package orderrepo persists order aggregates with GORM. An order is stored in
// the orders table and its lines in order_items; both are written and loaded together.
package orderrepo

import (
	"errors"
	"time"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the row of the orders table. Money columns are numeric so that
// amounts survive a round trip without float rounding.
type OrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProfileID       string          `gorm:"type:varchar(128);not null;index"`
	RestaurantID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	DriverID        *uuid.UUID      `gorm:"type:uuid;index"`
	DeliveryAddress string          `gorm:"type:text;not null"`
	DeliveryNote    string          `gorm:"type:text;not null;default:''"`
	Subtotal        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	DeliveryFee     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Discount        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Total           decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PaymentStatus   string          `gorm:"type:varchar(32);not null"`
	PaymentMethod   string          `gorm:"type:varchar(64);not null;default:''"`
	Status          string          `gorm:"type:varchar(32);not null;index"`
	CreatedAt       time.Time       `gorm:"autoCreateTime;index"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime"`
	Items           []OrderItemDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one order line. Position keeps the order in which the
// customer listed the items.
type OrderItemDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position    int             `gorm:"not null"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Quantity    int             `gorm:"not null"`
	Note        string          `gorm:"type:text;not null;default:''"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// updatableColumns are the order columns an Update may rewrite. Money and
// items are fixed at placement; updated_at is stamped by GORM.
var updatableColumns = []string{
	"driver_id",
	"delivery_address",
	"delivery_note",
	"payment_status",
	"status",
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var driverID *uuid.UUID
	if id := aggregate.DriverID(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	dto := OrderDTO{
		ID:              aggregate.ID().Bytes(),
		ProfileID:       aggregate.ProfileID(),
		RestaurantID:    aggregate.RestaurantID().Bytes(),
		DriverID:        driverID,
		DeliveryAddress: aggregate.DeliveryAddress(),
		DeliveryNote:    aggregate.DeliveryNote(),
		Subtotal:        aggregate.Subtotal().Amount(),
		DeliveryFee:     aggregate.DeliveryFee().Amount(),
		Discount:        aggregate.Discount().Amount(),
		Total:           aggregate.Total().Amount(),
		PaymentStatus:   aggregate.PaymentStatus().String(),
		PaymentMethod:   aggregate.PaymentMethod(),
		Status:          aggregate.Status().String(),
		CreatedAt:       aggregate.CreatedAt(),
		UpdatedAt:       aggregate.UpdatedAt(),
	}

	items := aggregate.Items()
	dto.Items = make([]OrderItemDTO, 0, len(items))
	for idx, item := range items {
		dto.Items = append(dto.Items, OrderItemDTO{
			ID:          item.ID().Bytes(),
			OrderID:     dto.ID,
			Position:    idx,
			ProductID:   item.ProductID().Bytes(),
			ProductName: item.ProductName(),
			UnitPrice:   item.UnitPrice().Amount(),
			Quantity:    item.Quantity(),
			Note:        item.Note(),
		})
	}

	return dto
}

// toDomain rebuilds the aggregate. The stored status is passed through as is,
// so rows written by older versions still load.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFrom(dto.ID)
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFrom(dto.RestaurantID)
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFrom(*dto.DriverID)
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	subtotal, subtotalErr := kernel.NewMoney(dto.Subtotal)
	fee, feeErr := kernel.NewMoney(dto.DeliveryFee)
	discount, discountErr := kernel.NewMoney(dto.Discount)
	total, totalErr := kernel.NewMoney(dto.Total)
	if err = errors.Join(subtotalErr, feeErr, discountErr, totalErr); err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.Snapshot{
		ID:              id,
		ProfileID:       dto.ProfileID,
		RestaurantID:    restaurantID,
		DriverID:        driverID,
		DeliveryAddress: dto.DeliveryAddress,
		DeliveryNote:    dto.DeliveryNote,
		Subtotal:        subtotal,
		DeliveryFee:     fee,
		Discount:        discount,
		Total:           total,
		PaymentStatus:   order.PaymentStatus(dto.PaymentStatus),
		PaymentMethod:   dto.PaymentMethod,
		Status:          order.Status(dto.Status),
		CreatedAt:       dto.CreatedAt,
		UpdatedAt:       dto.UpdatedAt,
		Items:           items,
	})
}

func itemToDomain(dto OrderItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFrom(dto.ID)
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFrom(dto.ProductID)
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return nil, err
	}
	return order.RestoreItem(id, productID, dto.ProductName, price, dto.Quantity, dto.Note)
}
