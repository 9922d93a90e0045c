package driver_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"orderservice/internal/adapters/out/driver"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/ports"
	"orderservice/internal/pkg/httpclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_InitiateAssignment(t *testing.T) {
	orderID := kernel.NewUUID()
	fare, err := kernel.MoneyFromString("115000.50")
	require.NoError(t, err)

	t.Run("should post a trip without coordinates", func(t *testing.T) {
		var raw map[string]json.RawMessage
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/Trips", r.URL.Path)
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"trip-1"}`))
		}))
		defer srv.Close()

		err := driver.NewClient(srv.URL, httpclient.New(time.Second)).InitiateAssignment(t.Context(), ports.TripRequest{
			OrderID:         orderID,
			PickupAddress:   "5 Nguyen Trai",
			DeliveryAddress: "8 Ly Tu Trong",
			Fare:            fare,
			CustomerNotes:   "call on arrival",
		})

		require.NoError(t, err)
		assert.JSONEq(t, `"`+orderID.String()+`"`, string(raw["orderId"]))
		assert.JSONEq(t, `"5 Nguyen Trai"`, string(raw["pickupAddress"]))
		assert.JSONEq(t, `"8 Ly Tu Trong"`, string(raw["deliveryAddress"]))
		assert.Equal(t, "115000.5", string(raw["fare"]), "fare is a JSON number")
		assert.JSONEq(t, `"call on arrival"`, string(raw["customerNotes"]))
		assert.NotContains(t, raw, "pickupLatitude")
		assert.NotContains(t, raw, "deliveryLongitude")
	})

	t.Run("should include coordinates when known", func(t *testing.T) {
		var body map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		}))
		defer srv.Close()

		pickup, err := kernel.NewCoordinates(10.7769, 106.7009)
		require.NoError(t, err)

		err = driver.NewClient(srv.URL, httpclient.New(time.Second)).InitiateAssignment(t.Context(), ports.TripRequest{
			OrderID:           orderID,
			PickupAddress:     "5 Nguyen Trai",
			PickupCoordinates: &pickup,
			DeliveryAddress:   "8 Ly Tu Trong",
			Fare:              fare,
		})

		require.NoError(t, err)
		assert.InDelta(t, 10.7769, body["pickupLatitude"], 1e-9)
		assert.InDelta(t, 106.7009, body["pickupLongitude"], 1e-9)
		assert.NotContains(t, body, "deliveryLatitude")
		assert.NotContains(t, body, "customerNotes")
	})

	t.Run("should wrap failures", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusConflict)
		}))
		defer srv.Close()

		err := driver.NewClient(srv.URL, httpclient.New(time.Second)).InitiateAssignment(t.Context(), ports.TripRequest{
			OrderID: orderID, PickupAddress: "a", DeliveryAddress: "b", Fare: fare,
		})

		require.ErrorIs(t, err, ports.ErrCollaboratorUnavailable)
	})
}
