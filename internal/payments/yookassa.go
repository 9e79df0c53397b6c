package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rentcrm/internal/config"
)

const defaultAPIBase = "https://api.yookassa.ru/v3"

var ErrNotConfigured = errors.New("yookassa credentials not configured")

// StatusError carries a non-200 provider status and its raw body; the body is
// surfaced to the caller verbatim.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("yookassa api status %d", e.StatusCode)
}

// flexString tolerates both string and number JSON values. Metadata values
// come back as strings, but older payloads carried numbers.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(b)
	return nil
}

// Payment is the provider payload with the fields the CRM acts on pulled out.
// Raw is returned to API callers untouched.
type Payment struct {
	Raw json.RawMessage

	ID              string
	Status          string
	CreatedAt       string
	AmountValue     string
	ConfirmationURL string
	BookingID       string
}

type Client struct {
	cfg     config.YooKassaConfig
	apiBase string
	http    *http.Client
}

func NewClient(cfg config.YooKassaConfig) *Client {
	return &Client{
		cfg:     cfg,
		apiBase: defaultAPIBase,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Configured() bool {
	return c.cfg.ShopID != "" && c.cfg.SecretKey != ""
}

// Create opens a redirect-confirmation payment for a booking. Every call sends
// a fresh Idempotence-Key, so retrying a failed HTTP exchange never reuses one.
func (c *Client) Create(ctx context.Context, bookingID int, amount float64, description, returnURL string) (*Payment, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	payload := map[string]interface{}{
		"amount": map[string]string{
			"value":    decimal.NewFromFloat(amount).StringFixed(2),
			"currency": "RUB",
		},
		"confirmation": map[string]string{
			"type":       "redirect",
			"return_url": returnURL,
		},
		"capture":     true,
		"description": description,
		"metadata":    map[string]interface{}{"booking_id": bookingID},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/payments",
		bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.cfg.ShopID, c.cfg.SecretKey)
	req.Header.Set("Idempotence-Key", uuid.NewString())
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// Check polls one payment's current state.
func (c *Client) Check(ctx context.Context, paymentID string) (*Payment, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.apiBase+"/payments/"+paymentID, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.cfg.ShopID, c.cfg.SecretKey)

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*Payment, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed struct {
		ID        string `json:"id"`
		Status    string `json:"status"`
		CreatedAt string `json:"created_at"`
		Amount    struct {
			Value string `json:"value"`
		} `json:"amount"`
		Confirmation struct {
			ConfirmationURL string `json:"confirmation_url"`
		} `json:"confirmation"`
		Metadata struct {
			BookingID flexString `json:"booking_id"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}

	return &Payment{
		Raw:             json.RawMessage(body),
		ID:              parsed.ID,
		Status:          parsed.Status,
		CreatedAt:       parsed.CreatedAt,
		AmountValue:     parsed.Amount.Value,
		ConfirmationURL: parsed.Confirmation.ConfirmationURL,
		BookingID:       string(parsed.Metadata.BookingID),
	}, nil
}
