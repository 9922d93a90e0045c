// Package restaurant is the HTTP adapter for the Restaurant service.
package restaurant

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"
	"orderservice/internal/pkg/httpclient"
)

// Client implements ports.RestaurantClient over the Restaurant service REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

type restaurantResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// GetRestaurant returns ports.ErrRestaurantNotFound on 404 and wraps every
// other failure in ports.ErrCollaboratorUnavailable.
func (c *Client) GetRestaurant(ctx context.Context, id kernel.UUID) (ports.Restaurant, error) {
	endpoint := c.baseURL + "/api/Restaurants/" + url.PathEscape(id.String())

	var body restaurantResponse
	if err := httpclient.DoJSON(ctx, c.http, http.MethodGet, endpoint, nil, &body); err != nil {
		var statusErr *httpclient.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return ports.Restaurant{}, fmt.Errorf("restaurant %s: %w", id, ports.ErrRestaurantNotFound)
		}
		return ports.Restaurant{}, fmt.Errorf("get restaurant %s: %w: %w", id, ports.ErrCollaboratorUnavailable, err)
	}

	restaurant := ports.Restaurant{ID: id, Name: body.Name, Address: body.Address, Phone: body.Phone}
	if parsed, err := kernel.UUIDFromString(body.ID); err == nil {
		restaurant.ID = parsed
	}
	return restaurant, nil
}

type evaluateRequest struct {
	OrderID      string        `json:"order_id"`
	RestaurantID string        `json:"restaurant_id"`
	OrderData    evaluateOrder `json:"order_data"`
}

type evaluateOrder struct {
	ProfileID       string         `json:"profile_id"`
	DeliveryAddress string         `json:"delivery_address"`
	DeliveryNote    string         `json:"delivery_note,omitempty"`
	Subtotal        string         `json:"subtotal"`
	Total           string         `json:"total"`
	PaymentMethod   string         `json:"payment_method"`
	Items           []evaluateItem `json:"items"`
}

type evaluateItem struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	Note        string `json:"note,omitempty"`
}

// EvaluateOrder submits a placed order for the restaurant's accept/reject decision.
func (c *Client) EvaluateOrder(ctx context.Context, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	req := evaluateRequest{
		OrderID:      o.ID().String(),
		RestaurantID: o.RestaurantID().String(),
		OrderData: evaluateOrder{
			ProfileID:       o.ProfileID(),
			DeliveryAddress: o.DeliveryAddress(),
			DeliveryNote:    o.DeliveryNote(),
			Subtotal:        o.Subtotal().String(),
			Total:           o.Total().String(),
			PaymentMethod:   o.PaymentMethod(),
		},
	}
	for _, item := range o.Items() {
		req.OrderData.Items = append(req.OrderData.Items, evaluateItem{
			ProductID:   item.ProductID().String(),
			ProductName: item.ProductName(),
			UnitPrice:   item.UnitPrice().String(),
			Quantity:    item.Quantity(),
			Note:        item.Note(),
		})
	}

	if err := httpclient.DoJSON(ctx, c.http, http.MethodPost, c.baseURL+"/api/orders/evaluate", req, nil); err != nil {
		return fmt.Errorf("evaluate order %s: %w: %w", o.ID(), ports.ErrCollaboratorUnavailable, err)
	}
	return nil
}
