package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"orderservice/internal/core/application/usecases/commands"
	"orderservice/internal/core/application/usecases/queries"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/generated/servers"
	"orderservice/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Use case contracts the server depends on. The command and query handlers
// built by the composition root satisfy them.
type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}

	UpdateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (*order.Order, error)
	}

	DeleteOrderHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteOrderCommand) error
	}

	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
	}

	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) (queries.ListOrdersQueryResult, error)
	}
)

var _ servers.ServerInterface = (*Server)(nil)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler CreateOrderHandler
	updateOrderHandler UpdateOrderHandler
	deleteOrderHandler DeleteOrderHandler

	// Query handlers
	getOrderHandler   GetOrderHandler
	listOrdersHandler ListOrdersHandler

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler CreateOrderHandler,
	updateOrderHandler UpdateOrderHandler,
	deleteOrderHandler DeleteOrderHandler,
	getOrderHandler GetOrderHandler,
	listOrdersHandler ListOrdersHandler,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		createOrderHandler: createOrderHandler,
		updateOrderHandler: updateOrderHandler,
		deleteOrderHandler: deleteOrderHandler,
		getOrderHandler:    getOrderHandler,
		listOrdersHandler:  listOrdersHandler,
		logger:             logger.With("component", "http_server"),
	}
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}
	if err := ctx.Validate(&body); err != nil {
		return s.badRequest(ctx, "Invalid order data: "+err.Error())
	}

	cmd, err := newCreateOrderCommand(body)
	if err != nil {
		return s.badRequest(ctx, "Invalid order data: "+err.Error())
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, servers.OrderResponse{
		Success: true,
		Message: "Order created successfully",
		Data:    orderFromAggregate(created),
	})
}

// ListOrders handles GET /api/v1/orders - pages through orders, newest first.
func (s *Server) ListOrders(ctx echo.Context, params servers.ListOrdersParams) error {
	filter := queries.OrderFilter{}
	if params.ProfileId != nil {
		filter.ProfileID = *params.ProfileId
	}
	if params.RestaurantId != nil {
		id, err := kernel.UUIDFrom(*params.RestaurantId)
		if err != nil {
			return s.badRequest(ctx, errs.NewValueIsInvalidErrorWithCause("restaurant_id", err).Error())
		}
		filter.RestaurantID = &id
	}
	if params.DriverId != nil {
		id, err := kernel.UUIDFrom(*params.DriverId)
		if err != nil {
			return s.badRequest(ctx, errs.NewValueIsInvalidErrorWithCause("driver_id", err).Error())
		}
		filter.DriverID = &id
	}
	if params.Status != nil {
		filter.Statuses = splitStatuses(*params.Status)
	}

	skip, limit := 0, queries.DefaultListLimit
	if params.Skip != nil {
		skip = *params.Skip
	}
	if params.Limit != nil {
		limit = *params.Limit
	}

	query, err := queries.NewListOrdersQuery(filter, skip, limit)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	result, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve orders")
	}

	data := make([]servers.Order, len(result.Orders))
	for i, view := range result.Orders {
		data[i] = orderFromView(view)
	}

	return ctx.JSON(http.StatusOK, servers.OrderListResponse{
		Success: true,
		Message: "Orders retrieved successfully",
		Data:    data,
		Total:   result.Total,
	})
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := kernel.UUIDFrom(orderId)
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, servers.OrderResponse{
		Success: true,
		Message: "Order retrieved successfully",
		Data:    orderFromView(view),
	})
}

// UpdateOrder handles PUT /api/v1/orders/{orderId} - applies a partial update.
func (s *Server) UpdateOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := kernel.UUIDFrom(orderId)
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	var body servers.UpdateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	patch := commands.OrderPatch{
		Status:          body.Status,
		DeliveryAddress: body.DeliveryAddress,
		DeliveryNote:    body.DeliveryNote,
	}
	if body.PaymentStatus != nil {
		raw := string(*body.PaymentStatus)
		patch.PaymentStatus = &raw
	}
	if body.DriverId != nil {
		driverID, err := kernel.UUIDFrom(*body.DriverId)
		if err != nil {
			return s.badRequest(ctx, errs.NewValueIsInvalidErrorWithCause("driver_id", err).Error())
		}
		patch.DriverID = &driverID
	}

	cmd, err := commands.NewUpdateOrderCommand(id, patch)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	return s.applyUpdate(ctx, cmd, "Order updated successfully")
}

// DeleteOrder handles DELETE /api/v1/orders/{orderId}.
func (s *Server) DeleteOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := kernel.UUIDFrom(orderId)
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewDeleteOrderCommand(id)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	if err := s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "Failed to delete order")
	}

	return ctx.JSON(http.StatusOK, servers.MessageResponse{
		Success: true,
		Message: "Order deleted successfully",
	})
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := kernel.UUIDFrom(orderId)
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewCancelOrderCommand(id)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	return s.applyUpdate(ctx, cmd, "Order cancelled successfully")
}

// AssignDriver handles POST /api/v1/orders/{orderId}/assign-driver?driver_id=.
func (s *Server) AssignDriver(ctx echo.Context, orderId openapi_types.UUID, params servers.AssignDriverParams) error {
	id, err := kernel.UUIDFrom(orderId)
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}
	driverID, err := kernel.UUIDFrom(params.DriverId)
	if err != nil {
		return s.badRequest(ctx, errs.NewValueIsInvalidErrorWithCause("driver_id", err).Error())
	}

	cmd, err := commands.NewAssignDriverCommand(id, driverID)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	return s.applyUpdate(ctx, cmd, "Driver assigned successfully")
}

func (s *Server) applyUpdate(ctx echo.Context, cmd commands.UpdateOrderCommand, message string) error {
	updated, err := s.updateOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to update order")
	}

	return ctx.JSON(http.StatusOK, servers.OrderResponse{
		Success: true,
		Message: message,
		Data:    orderFromAggregate(updated),
	})
}

func newCreateOrderCommand(body servers.NewOrder) (commands.CreateOrderCommand, error) {
	restaurantID, err := kernel.UUIDFrom(body.RestaurantId)
	if err != nil {
		return commands.CreateOrderCommand{}, errs.NewValueIsInvalidErrorWithCause("restaurant_id", err)
	}

	lines := make([]commands.OrderLine, len(body.Items))
	for i, item := range body.Items {
		productID, err := kernel.UUIDFrom(item.ProductId)
		if err != nil {
			return commands.CreateOrderCommand{}, errs.NewValueIsInvalidErrorWithCause("product_id", err)
		}
		price, err := kernel.NewMoney(item.UnitPrice)
		if err != nil {
			return commands.CreateOrderCommand{}, err
		}
		lines[i] = commands.OrderLine{
			ProductID:   productID,
			ProductName: item.ProductName,
			UnitPrice:   price,
			Quantity:    item.Quantity,
			Note:        deref(item.Note),
		}
	}

	return commands.NewCreateOrderCommand(
		body.ProfileId,
		restaurantID,
		body.DeliveryAddress,
		deref(body.DeliveryNote),
		deref(body.PaymentMethod),
		lines,
	)
}

// splitStatuses accepts both ?status=a&status=b and ?status=a,b.
func splitStatuses(raw []string) []string {
	statuses := make([]string, 0, len(raw))
	for _, value := range raw {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				statuses = append(statuses, part)
			}
		}
	}
	return statuses
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
