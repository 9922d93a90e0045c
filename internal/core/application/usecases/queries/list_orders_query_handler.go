package queries

import (
	"context"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ListOrdersQueryResult is one page plus the number of orders matching the filter.
type ListOrdersQueryResult struct {
	Orders []OrderView
	Total  int64
}

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle returns the requested page ordered by created_at descending.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersQueryResult, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResult{}, err
	}

	where, args := filterClause(query)
	db := h.db.WithContext(ctx)

	var total int64
	if err := db.Raw(`SELECT count(*) FROM orders WHERE `+where, args...).Scan(&total).Error; err != nil {
		return ListOrdersQueryResult{}, err
	}

	pageArgs := append(append([]any{}, args...), query.Limit(), query.Skip())
	rows, err := db.Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE `+where+`
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?
	`, pageArgs...).Rows()
	if err != nil {
		return ListOrdersQueryResult{}, err
	}
	defer rows.Close()

	views := make([]OrderView, 0, query.Limit())
	for rows.Next() {
		view, scanErr := scanOrder(rows)
		if scanErr != nil {
			return ListOrdersQueryResult{}, scanErr
		}
		views = append(views, view)
	}
	if err = rows.Err(); err != nil {
		return ListOrdersQueryResult{}, err
	}
	_ = rows.Close()

	if err = attachItems(ctx, h.db, views); err != nil {
		return ListOrdersQueryResult{}, err
	}

	return ListOrdersQueryResult{Orders: views, Total: total}, nil
}

func filterClause(query ListOrdersQuery) (string, []any) {
	conditions := []string{"TRUE"}
	args := make([]any, 0, 4)

	if query.ProfileID() != "" {
		conditions = append(conditions, "profile_id = ?")
		args = append(args, query.ProfileID())
	}
	if id := query.RestaurantID(); id != nil {
		conditions = append(conditions, "restaurant_id = ?")
		args = append(args, id.Bytes())
	}
	if id := query.DriverID(); id != nil {
		conditions = append(conditions, "driver_id = ?")
		args = append(args, id.Bytes())
	}
	if statuses := query.Statuses(); len(statuses) > 0 {
		raw := make([]string, 0, len(statuses))
		for _, s := range statuses {
			raw = append(raw, s.String())
		}
		conditions = append(conditions, "status = ANY(?)")
		args = append(args, pq.Array(raw))
	}

	return strings.Join(conditions, " AND "), args
}
