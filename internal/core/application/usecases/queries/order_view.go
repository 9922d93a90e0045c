// Package queries contains read operations for retrieving order state.
// Queries bypass the aggregate and read flat views straight from the database.
package queries

import (
	"context"
	"database/sql"
	"time"

	"orderservice/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderView is the read model of one order with its lines.
type OrderView struct {
	ID              kernel.UUID
	ProfileID       string
	RestaurantID    kernel.UUID
	DriverID        *kernel.UUID
	DeliveryAddress string
	DeliveryNote    string
	Subtotal        decimal.Decimal
	DeliveryFee     decimal.Decimal
	Discount        decimal.Decimal
	Total           decimal.Decimal
	PaymentStatus   string
	PaymentMethod   string
	// Status is returned as stored, known to this version or not.
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
	Items     []OrderItemView
}

type OrderItemView struct {
	ID          kernel.UUID
	ProductID   kernel.UUID
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
	Note        string
}

const orderColumns = `
	id,
	profile_id,
	restaurant_id,
	driver_id,
	delivery_address,
	delivery_note,
	subtotal,
	delivery_fee,
	discount,
	total,
	payment_status,
	payment_method,
	status,
	created_at,
	updated_at`

func scanOrder(rows *sql.Rows) (OrderView, error) {
	var (
		view         OrderView
		id           uuid.UUID
		restaurantID uuid.UUID
		driverID     uuid.NullUUID
	)

	err := rows.Scan(
		&id,
		&view.ProfileID,
		&restaurantID,
		&driverID,
		&view.DeliveryAddress,
		&view.DeliveryNote,
		&view.Subtotal,
		&view.DeliveryFee,
		&view.Discount,
		&view.Total,
		&view.PaymentStatus,
		&view.PaymentMethod,
		&view.Status,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		return OrderView{}, err
	}

	if view.ID, err = kernel.UUIDFrom(id); err != nil {
		return OrderView{}, err
	}
	if view.RestaurantID, err = kernel.UUIDFrom(restaurantID); err != nil {
		return OrderView{}, err
	}
	if driverID.Valid {
		dID, idErr := kernel.UUIDFrom(driverID.UUID)
		if idErr != nil {
			return OrderView{}, idErr
		}
		view.DriverID = &dID
	}
	view.Items = make([]OrderItemView, 0)

	return view, nil
}

// attachItems loads the lines of every view in one round trip.
func attachItems(ctx context.Context, db *gorm.DB, views []OrderView) error {
	if len(views) == 0 {
		return nil
	}

	ids := make([]string, 0, len(views))
	index := make(map[uuid.UUID]int, len(views))
	for i, v := range views {
		ids = append(ids, v.ID.String())
		index[v.ID.Bytes()] = i
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			product_id,
			product_name,
			unit_price,
			quantity,
			note
		FROM order_items
		WHERE order_id = ANY(?::uuid[])
		ORDER BY order_id, position
	`, pq.Array(ids)).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item      OrderItemView
			id        uuid.UUID
			orderID   uuid.UUID
			productID uuid.UUID
		)
		if err = rows.Scan(&id, &orderID, &productID, &item.ProductName, &item.UnitPrice, &item.Quantity, &item.Note); err != nil {
			return err
		}
		if item.ID, err = kernel.UUIDFrom(id); err != nil {
			return err
		}
		if item.ProductID, err = kernel.UUIDFrom(productID); err != nil {
			return err
		}

		if i, ok := index[orderID]; ok {
			views[i].Items = append(views[i].Items, item)
		}
	}

	return rows.Err()
}
