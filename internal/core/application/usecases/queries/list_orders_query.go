package queries

import (
	"errors"
	"fmt"
	"strings"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// OrderFilter narrows a listing. Empty fields do not filter.
type OrderFilter struct {
	ProfileID    string
	RestaurantID *kernel.UUID
	DriverID     *kernel.UUID
	// Statuses are raw values; each must be a known status.
	Statuses []string
}

// ListOrdersQuery pages through orders, newest first.
//
// Example:
//
//	query, err := NewListOrdersQuery(OrderFilter{Statuses: []string{"delivering"}}, 0, 20)
//	if err != nil {
//	    return err // bad paging or unknown status
//	}
//	page, err := handler.Handle(ctx, query)
//	fmt.Printf("%d of %d orders\n", len(page.Orders), page.Total)
type ListOrdersQuery struct {
	profileID    string
	restaurantID *kernel.UUID
	driverID     *kernel.UUID
	statuses     []order.Status
	skip         int
	limit        int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery validates paging (skip >= 0, 1 <= limit <= 100) and the filter.
func NewListOrdersQuery(filter OrderFilter, skip, limit int) (ListOrdersQuery, error) {
	q := ListOrdersQuery{
		profileID: strings.TrimSpace(filter.ProfileID),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setPaging(skip, limit),
		q.setRestaurantID(filter.RestaurantID),
		q.setDriverID(filter.DriverID),
		q.setStatuses(filter.Statuses),
	); err != nil {
		return ListOrdersQuery{}, err
	}

	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) ProfileID() string {
	return q.profileID
}

func (q ListOrdersQuery) RestaurantID() *kernel.UUID {
	return q.restaurantID
}

func (q ListOrdersQuery) DriverID() *kernel.UUID {
	return q.driverID
}

func (q ListOrdersQuery) Statuses() []order.Status {
	return append([]order.Status(nil), q.statuses...)
}

func (q ListOrdersQuery) Skip() int {
	return q.skip
}

func (q ListOrdersQuery) Limit() int {
	return q.limit
}

func (q *ListOrdersQuery) setPaging(skip, limit int) error {
	var err error
	if skip < 0 {
		err = errs.NewValueIsOutOfRangeError("skip", skip, 0, "unbounded")
	}
	if limit < 1 || limit > MaxListLimit {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit))
	}
	if err != nil {
		return err
	}
	q.skip = skip
	q.limit = limit
	return nil
}

func (q *ListOrdersQuery) setRestaurantID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("restaurant id", err)
	}
	v := *id
	q.restaurantID = &v
	return nil
}

func (q *ListOrdersQuery) setDriverID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("driver id", err)
	}
	v := *id
	q.driverID = &v
	return nil
}

func (q *ListOrdersQuery) setStatuses(raw []string) error {
	statuses := make([]order.Status, 0, len(raw))
	for idx, value := range raw {
		status, err := order.ParseStatus(strings.TrimSpace(value))
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("statuses[%d]", idx), err)
		}
		statuses = append(statuses, status)
	}
	q.statuses = statuses
	return nil
}
