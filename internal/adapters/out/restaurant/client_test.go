package restaurant_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"orderservice/internal/adapters/out/restaurant"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"
	"orderservice/internal/pkg/httpclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetRestaurant(t *testing.T) {
	id := kernel.NewUUID()

	t.Run("should decode restaurant details", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/Restaurants/"+id.String(), r.URL.Path)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"id": id.String(), "name": "Pho 24", "address": "5 Nguyen Trai", "phone": "0900",
			})
		}))
		defer srv.Close()

		client := restaurant.NewClient(srv.URL+"/", httpclient.New(time.Second))
		got, err := client.GetRestaurant(t.Context(), id)

		require.NoError(t, err)
		assert.True(t, got.ID.IsEqual(id))
		assert.Equal(t, "Pho 24", got.Name)
		assert.Equal(t, "5 Nguyen Trai", got.Address)
		assert.Equal(t, "0900", got.Phone)
	})

	t.Run("should map 404 to not found", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		_, err := restaurant.NewClient(srv.URL, httpclient.New(time.Second)).GetRestaurant(t.Context(), id)

		require.ErrorIs(t, err, ports.ErrRestaurantNotFound)
		assert.NotErrorIs(t, err, ports.ErrCollaboratorUnavailable)
	})

	t.Run("should wrap server errors", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := restaurant.NewClient(srv.URL, httpclient.New(time.Second)).GetRestaurant(t.Context(), id)

		require.ErrorIs(t, err, ports.ErrCollaboratorUnavailable)
	})

	t.Run("should wrap transport errors", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		_, err := restaurant.NewClient(srv.URL, httpclient.New(time.Second)).GetRestaurant(t.Context(), id)

		require.ErrorIs(t, err, ports.ErrCollaboratorUnavailable)
	})
}

func TestClient_EvaluateOrder(t *testing.T) {
	price, _ := kernel.MoneyFromInt(50000)
	fee, _ := kernel.MoneyFromInt(15000)
	item, err := order.NewItem(kernel.NewUUID(), "Bun cha", price, 2, "extra herbs")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), "profile-3", kernel.NewUUID(), "8 Ly Tu Trong", "", "cash",
		[]*order.Item{item}, fee, order.PendingRestaurant)
	require.NoError(t, err)

	t.Run("should post the order for evaluation", func(t *testing.T) {
		var body map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/orders/evaluate", r.URL.Path)
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			w.WriteHeader(http.StatusAccepted)
		}))
		defer srv.Close()

		err := restaurant.NewClient(srv.URL, httpclient.New(time.Second)).EvaluateOrder(t.Context(), o)

		require.NoError(t, err)
		assert.Equal(t, o.ID().String(), body["order_id"])
		assert.Equal(t, o.RestaurantID().String(), body["restaurant_id"])
		data, ok := body["order_data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "100000", data["subtotal"])
		items, ok := data["items"].([]any)
		require.True(t, ok)
		assert.Len(t, items, 1)
	})

	t.Run("should wrap rejections", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		err := restaurant.NewClient(srv.URL, httpclient.New(time.Second)).EvaluateOrder(t.Context(), o)

		require.ErrorIs(t, err, ports.ErrCollaboratorUnavailable)
	})
}
