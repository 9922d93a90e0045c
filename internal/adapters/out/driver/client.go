// Package driver is the HTTP adapter for the Driver service.
package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"orderservice/internal/core/ports"
	"orderservice/internal/pkg/httpclient"
)

// Client implements ports.DriverClient.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

type tripRequest struct {
	OrderID           string      `json:"orderId"`
	PickupAddress     string      `json:"pickupAddress"`
	PickupLatitude    *float64    `json:"pickupLatitude,omitempty"`
	PickupLongitude   *float64    `json:"pickupLongitude,omitempty"`
	DeliveryAddress   string      `json:"deliveryAddress"`
	DeliveryLatitude  *float64    `json:"deliveryLatitude,omitempty"`
	DeliveryLongitude *float64    `json:"deliveryLongitude,omitempty"`
	Fare              json.Number `json:"fare"`
	CustomerNotes     string      `json:"customerNotes,omitempty"`
}

// InitiateAssignment posts a trip to /api/Trips. Any failure is wrapped in
// ports.ErrCollaboratorUnavailable; the call is not retried.
func (c *Client) InitiateAssignment(ctx context.Context, req ports.TripRequest) error {
	body := tripRequest{
		OrderID:         req.OrderID.String(),
		PickupAddress:   req.PickupAddress,
		DeliveryAddress: req.DeliveryAddress,
		Fare:            json.Number(req.Fare.String()),
		CustomerNotes:   req.CustomerNotes,
	}
	if p := req.PickupCoordinates; p != nil {
		lat, lng := p.Latitude(), p.Longitude()
		body.PickupLatitude, body.PickupLongitude = &lat, &lng
	}
	if d := req.DeliveryCoordinates; d != nil {
		lat, lng := d.Latitude(), d.Longitude()
		body.DeliveryLatitude, body.DeliveryLongitude = &lat, &lng
	}

	if err := httpclient.DoJSON(ctx, c.http, http.MethodPost, c.baseURL+"/api/Trips", body, nil); err != nil {
		return fmt.Errorf("create trip for order %s: %w: %w", req.OrderID, ports.ErrCollaboratorUnavailable, err)
	}
	return nil
}
