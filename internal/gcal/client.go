package gcal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rentcrm/internal/booking"
	"rentcrm/internal/config"
)

const (
	defaultTokenURL  = "https://oauth2.googleapis.com/token"
	defaultEventsURL = "https://www.googleapis.com/calendar/v3/calendars/primary/events"
)

var (
	ErrNotConfigured    = errors.New("google calendar credentials not configured")
	ErrNoAccessToken    = errors.New("no google calendar access token")
	ErrInvalidDateRange = errors.New("invalid date range in booking")
)

// SyncResult mirrors the per-booking outcome shape of the sync endpoint.
type SyncResult struct {
	Success   bool   `json:"success,omitempty"`
	EventID   string `json:"event_id,omitempty"`
	EventLink string `json:"event_link,omitempty"`
	Error     string `json:"error,omitempty"`
}

type Client struct {
	cfg       config.GoogleCalendarConfig
	tokenURL  string
	eventsURL string
	http      *http.Client
}

func NewClient(cfg config.GoogleCalendarConfig) *Client {
	return &Client{
		cfg:       cfg,
		tokenURL:  defaultTokenURL,
		eventsURL: defaultEventsURL,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

// AccessToken refreshes a short-lived access token from the stored refresh
// token. Any credential gap or upstream refusal collapses to ErrNoAccessToken,
// matching the sync contract of reporting only that no token was available.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	if c.cfg.ClientID == "" || c.cfg.ClientSecret == "" || c.cfg.RefreshToken == "" {
		return "", ErrNoAccessToken
	}

	form := url.Values{
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
		"refresh_token": {c.cfg.RefreshToken},
		"grant_type":    {"refresh_token"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", ErrNoAccessToken
	}

	var tok struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", err
	}
	if tok.AccessToken == "" {
		return "", ErrNoAccessToken
	}
	return tok.AccessToken, nil
}

type eventTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

type reminderOverride struct {
	Method  string `json:"method"`
	Minutes int    `json:"minutes"`
}

type event struct {
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Start       eventTime `json:"start"`
	End         eventTime `json:"end"`
	ColorID     string    `json:"colorId"`
	Reminders   struct {
		UseDefault bool               `json:"useDefault"`
		Overrides  []reminderOverride `json:"overrides"`
	} `json:"reminders"`
}

func saneYear(t time.Time) bool {
	return t.Year() >= 1900 && t.Year() <= 2100
}

// CreateEvent pushes one booking onto the primary calendar and returns the
// event id and link. Corrupt date ranges are rejected before any network call.
func (c *Client) CreateEvent(ctx context.Context, b *booking.Booking) (string, string, error) {
	if !saneYear(b.StartDate) || !saneYear(b.EndDate) {
		return "", "", ErrInvalidDateRange
	}

	token, err := c.AccessToken(ctx)
	if err != nil {
		return "", "", err
	}

	model := "Авто"
	if b.VehicleModel != nil && *b.VehicleModel != "" {
		model = *b.VehicleModel
	}

	ev := event{
		Summary: fmt.Sprintf("🚗 %s - %s", b.ClientName, model),
		Description: fmt.Sprintf(
			"Клиент: %s\nТелефон: %s\nАвтомобиль: %s\nСтоимость: ₽%.0f\nСтатус: %s",
			b.ClientName, b.ClientPhone, model, b.TotalPrice, b.Status,
		),
		Start:   eventTime{DateTime: b.StartDate.Format(time.RFC3339), TimeZone: "Europe/Moscow"},
		End:     eventTime{DateTime: b.EndDate.Format(time.RFC3339), TimeZone: "Europe/Moscow"},
		ColorID: "7",
	}
	ev.Reminders.UseDefault = false
	ev.Reminders.Overrides = []reminderOverride{
		{Method: "popup", Minutes: 1440},
		{Method: "popup", Minutes: 60},
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return "", "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.eventsURL,
		bytes.NewReader(payload))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", "", errors.New(string(body))
	}

	var created struct {
		ID       string `json:"id"`
		HTMLLink string `json:"htmlLink"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return "", "", err
	}
	return created.ID, created.HTMLLink, nil
}
