package avito

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"rentcrm/internal/config"
)

func testClient(tokenURL, apiBase string) *Client {
	c := NewClient(config.AvitoConfig{
		ClientID:     "client",
		ClientSecret: "secret",
		UserID:       "100",
	})
	c.tokenURL = tokenURL
	c.apiBase = apiBase
	return c
}

func TestTokenSendsMessengerScope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		require.Equal(t, "messenger:read", r.PostForm.Get("scope"))
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-1"})
	}))
	defer srv.Close()

	c := testClient(srv.URL, srv.URL)
	token, err := c.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, "tok-1", token)
}

func TestTokenFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_client"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, srv.URL)
	_, err := c.Token(context.Background())

	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusUnauthorized, se.StatusCode)
	require.Contains(t, se.Body, "invalid_client")
}

func TestFetchLeadsSubscriptionForbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"permission denied"}}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, srv.URL)
	_, err := c.FetchLeads(context.Background(), "tok")

	var sub *SubscriptionError
	require.ErrorAs(t, err, &sub)
	require.Contains(t, string(sub.APIError), "permission denied")
}

func chatJSON(id int, userName string) map[string]interface{} {
	return map[string]interface{}{
		"id": fmt.Sprintf("chat-%d", id),
		"users": []map[string]interface{}{
			{"id": 100, "name": "Мой аккаунт"},
			{"id": 200 + id, "name": userName},
		},
		"last_message": map[string]interface{}{
			"content": map[string]string{"text": "Здравствуйте, авто свободно?"},
			"created": "2025-06-01T10:00:00Z",
		},
		"context": map[string]interface{}{
			"value": map[string]interface{}{"id": 555, "title": "Kia Rio, 2021"},
		},
		"users_unread_count": 1,
	}
}

func TestFetchLeadsPaginatesUntilShortPage(t *testing.T) {
	var offsets []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.Equal(t, "false", r.URL.Query().Get("unread_only"))

		offset := r.URL.Query().Get("offset")
		offsets = append(offsets, offset)

		n := 2
		if offset == "0" {
			n = pageLimit
		}
		chats := make([]map[string]interface{}, 0, n)
		for i := 0; i < n; i++ {
			chats = append(chats, chatJSON(i, "Клиент"))
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"chats": chats})
	}))
	defer srv.Close()

	c := testClient(srv.URL, srv.URL)
	leads, err := c.FetchLeads(context.Background(), "tok")
	require.NoError(t, err)

	require.Equal(t, []string{"0", "100"}, offsets)
	require.Len(t, leads, pageLimit+2)
}

func TestFetchLeadsMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"chats": []map[string]interface{}{chatJSON(1, "Алексей")},
		})
	}))
	defer srv.Close()

	c := testClient(srv.URL, srv.URL)
	leads, err := c.FetchLeads(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, leads, 1)

	lead := leads[0]
	require.Equal(t, "avito_chat-1", lead.ID)
	require.Equal(t, "avito", lead.Source)
	require.Equal(t, "Алексей", lead.Client)
	require.Empty(t, lead.Phone)
	require.Equal(t, "Здравствуйте, авто свободно?", lead.Message)
	require.Equal(t, "Kia Rio, 2021", lead.Car)
	require.Equal(t, "new", lead.Stage)
	require.Equal(t, "01.06.2025 10:00", lead.Created)
	require.True(t, lead.Unread)
}

func TestFetchLeadsSkipsChatsWithoutCounterpart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ownOnly := map[string]interface{}{
			"id":    "chat-solo",
			"users": []map[string]interface{}{{"id": 100, "name": "Мой аккаунт"}},
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"chats": []map[string]interface{}{ownOnly},
		})
	}))
	defer srv.Close()

	c := testClient(srv.URL, srv.URL)
	leads, err := c.FetchLeads(context.Background(), "tok")
	require.NoError(t, err)
	require.Empty(t, leads)
}

func TestExchangeCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		require.Equal(t, "the-code", r.PostForm.Get("code"))
		json.NewEncoder(w).Encode(map[string]string{"refresh_token": "refresh-1"})
	}))
	defer srv.Close()

	c := testClient(srv.URL, srv.URL)
	token, err := c.ExchangeCode(context.Background(), "the-code")
	require.NoError(t, err)
	require.Equal(t, "refresh-1", token)
}

func TestFormatCreatedPassesThroughUnparseable(t *testing.T) {
	require.Equal(t, "01.06.2025 10:00", formatCreated("2025-06-01T10:00:00Z"))
	require.Equal(t, "не дата", formatCreated("не дата"))
}
