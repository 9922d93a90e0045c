package http

import (
	"time"

	"orderservice/internal/core/application/usecases/queries"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/generated/servers"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func orderFromAggregate(o *order.Order) servers.Order {
	items := make([]servers.OrderItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, servers.OrderItem{
			Id:          item.ID().Bytes(),
			ProductId:   item.ProductID().Bytes(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice().Amount(),
			Note:        item.Note(),
		})
	}

	return servers.Order{
		Id:              o.ID().Bytes(),
		ProfileId:       o.ProfileID(),
		RestaurantId:    o.RestaurantID().Bytes(),
		DriverId:        optionalID(o.DriverID()),
		Status:          o.Status().String(),
		PaymentStatus:   o.PaymentStatus().String(),
		PaymentMethod:   o.PaymentMethod(),
		DeliveryAddress: o.DeliveryAddress(),
		DeliveryNote:    o.DeliveryNote(),
		Subtotal:        o.Subtotal().Amount(),
		DeliveryFee:     o.DeliveryFee().Amount(),
		Discount:        o.Discount().Amount(),
		TotalAmount:     o.Total().Amount(),
		Items:           items,
		CreatedAt:       formatTime(o.CreatedAt()),
		UpdatedAt:       formatTime(o.UpdatedAt()),
	}
}

func orderFromView(v queries.OrderView) servers.Order {
	items := make([]servers.OrderItem, len(v.Items))
	for i, item := range v.Items {
		items[i] = servers.OrderItem{
			Id:          item.ID.Bytes(),
			ProductId:   item.ProductID.Bytes(),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Note:        item.Note,
		}
	}

	return servers.Order{
		Id:              v.ID.Bytes(),
		ProfileId:       v.ProfileID,
		RestaurantId:    v.RestaurantID.Bytes(),
		DriverId:        optionalID(v.DriverID),
		Status:          v.Status,
		PaymentStatus:   v.PaymentStatus,
		PaymentMethod:   v.PaymentMethod,
		DeliveryAddress: v.DeliveryAddress,
		DeliveryNote:    v.DeliveryNote,
		Subtotal:        v.Subtotal,
		DeliveryFee:     v.DeliveryFee,
		Discount:        v.Discount,
		TotalAmount:     v.Total,
		Items:           items,
		CreatedAt:       formatTime(v.CreatedAt),
		UpdatedAt:       formatTime(v.UpdatedAt),
	}
}

func optionalID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	googleUUID := id.Bytes()
	return &googleUUID
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
