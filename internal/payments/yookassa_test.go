package payments

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"rentcrm/internal/config"
)

func testClient(apiBase string) *Client {
	c := NewClient(config.YooKassaConfig{ShopID: "shop-1", SecretKey: "key-1"})
	c.apiBase = apiBase
	return c
}

func TestCreateNotConfigured(t *testing.T) {
	c := NewClient(config.YooKassaConfig{})
	_, err := c.Create(context.Background(), 1, 100, "desc", "https://ok")
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestCreateSendsAuthAndIdempotenceKey(t *testing.T) {
	var seenKeys []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "shop-1", user)
		require.Equal(t, "key-1", pass)

		key := r.Header.Get("Idempotence-Key")
		_, err := uuid.Parse(key)
		require.NoError(t, err)
		seenKeys = append(seenKeys, key)

		body, _ := io.ReadAll(r.Body)
		var payload map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &payload))
		amount := payload["amount"].(map[string]interface{})
		require.Equal(t, "1500.00", amount["value"])
		require.Equal(t, "RUB", amount["currency"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":           "pay-1",
			"status":       "pending",
			"created_at":   "2025-06-01T10:00:00Z",
			"amount":       map[string]string{"value": "1500.00", "currency": "RUB"},
			"confirmation": map[string]string{"confirmation_url": "https://yookassa/confirm"},
			"metadata":     map[string]string{"booking_id": "9"},
		})
	}))
	defer srv.Close()

	c := testClient(srv.URL)

	p1, err := c.Create(context.Background(), 9, 1500, "Оплата брони #9", "https://ok")
	require.NoError(t, err)
	require.Equal(t, "pay-1", p1.ID)
	require.Equal(t, "pending", p1.Status)
	require.Equal(t, "https://yookassa/confirm", p1.ConfirmationURL)

	// a second create is a new payment, never a reused idempotence key
	_, err = c.Create(context.Background(), 9, 1500, "Оплата брони #9", "https://ok")
	require.NoError(t, err)
	require.Len(t, seenKeys, 2)
	require.NotEqual(t, seenKeys[0], seenKeys[1])
}

func TestCreateProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"type":"error","description":"Invalid amount"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Create(context.Background(), 9, -5, "desc", "https://ok")

	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Contains(t, se.Body, "Invalid amount")
}

func TestCheckParsesMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/payments/pay-1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "pay-1",
			"status":   "succeeded",
			"amount":   map[string]string{"value": "1500.00", "currency": "RUB"},
			"metadata": map[string]string{"booking_id": "9"},
		})
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	p, err := c.Check(context.Background(), "pay-1")
	require.NoError(t, err)
	require.Equal(t, "succeeded", p.Status)
	require.Equal(t, "1500.00", p.AmountValue)
	require.Equal(t, "9", p.BookingID)
	require.Contains(t, string(p.Raw), "succeeded")
}

func TestCheckNumericMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "pay-2",
			"status":   "pending",
			"metadata": map[string]int{"booking_id": 9},
		})
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	p, err := c.Check(context.Background(), "pay-2")
	require.NoError(t, err)
	require.Equal(t, "9", p.BookingID)
}
