package avito

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rentcrm/internal/config"
)

const (
	defaultTokenURL = "https://api.avito.ru/token"
	defaultAPIBase  = "https://api.avito.ru"

	pageLimit = 100
)

// SubscriptionError marks the Messenger API 403: the account lacks the
// subscription tier that unlocks chat listing. It is reported to the caller
// as a soft failure, not an HTTP error.
type SubscriptionError struct {
	APIError json.RawMessage
}

func (e *SubscriptionError) Error() string {
	return "avito messenger api requires maximum subscription"
}

// StatusError carries a non-200 upstream status and its raw body.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("avito api status %d", e.StatusCode)
}

// Client talks to the Avito OAuth and Messenger APIs. Token requests use a
// short timeout, chat listing a slightly longer one.
type Client struct {
	cfg       config.AvitoConfig
	tokenURL  string
	apiBase   string
	tokenHTTP *http.Client
	chatsHTTP *http.Client
}

func NewClient(cfg config.AvitoConfig) *Client {
	return &Client{
		cfg:       cfg,
		tokenURL:  defaultTokenURL,
		apiBase:   defaultAPIBase,
		tokenHTTP: &http.Client{Timeout: 10 * time.Second},
		chatsHTTP: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Configured() bool {
	return c.cfg.ClientID != "" && c.cfg.ClientSecret != "" && c.cfg.UserID != ""
}

// Token obtains a client-credentials access token scoped to messenger reads.
func (c *Client) Token(ctx context.Context) (string, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
		"scope":         {"messenger:read"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.tokenHTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var tok struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

// ExchangeCode trades an OAuth authorization code for a refresh token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.tokenHTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var tok struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", err
	}
	if tok.RefreshToken == "" {
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return tok.RefreshToken, nil
}

type chatUser struct {
	ID   json.Number `json:"id"`
	Name string      `json:"name"`
}

type chat struct {
	ID          string `json:"id"`
	LastMessage struct {
		Content struct {
			Text string `json:"text"`
		} `json:"content"`
		Created string `json:"created"`
	} `json:"last_message"`
	Context struct {
		Value struct {
			ID    json.Number `json:"id"`
			Title string      `json:"title"`
		} `json:"value"`
	} `json:"context"`
	Users            []chatUser `json:"users"`
	UsersUnreadCount int        `json:"users_unread_count"`
}

type chatsPage struct {
	Chats []chat `json:"chats"`
}

// FetchLeads pages through the account's chats and maps each one to a lead.
// Chats where the counterpart cannot be identified are skipped.
func (c *Client) FetchLeads(ctx context.Context, token string) ([]Lead, error) {
	leads := []Lead{}
	offset := 0

	for {
		page, err := c.fetchChats(ctx, token, offset)
		if err != nil {
			return nil, err
		}
		if len(page.Chats) == 0 {
			break
		}

		for _, ch := range page.Chats {
			lead, ok := c.mapChat(ch)
			if !ok {
				continue
			}
			leads = append(leads, lead)
		}

		// A short page means the listing is exhausted.
		if len(page.Chats) < pageLimit {
			break
		}
		offset += pageLimit
	}

	return leads, nil
}

func (c *Client) fetchChats(ctx context.Context, token string, offset int) (*chatsPage, error) {
	endpoint := fmt.Sprintf("%s/messenger/v3/accounts/%s/chats", c.apiBase, c.cfg.UserID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	q := req.URL.Query()
	q.Set("limit", fmt.Sprintf("%d", pageLimit))
	q.Set("offset", fmt.Sprintf("%d", offset))
	q.Set("unread_only", "false")
	req.URL.RawQuery = q.Encode()

	resp, err := c.chatsHTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusForbidden {
		return nil, &SubscriptionError{APIError: json.RawMessage(body)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var page chatsPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// mapChat turns one chat into a lead. The counterpart is the first user whose
// id differs from the account's; chats without one are dropped.
func (c *Client) mapChat(ch chat) (Lead, bool) {
	var counterpart *chatUser
	for i := range ch.Users {
		if ch.Users[i].ID.String() != c.cfg.UserID {
			counterpart = &ch.Users[i]
			break
		}
	}
	if counterpart == nil {
		return Lead{}, false
	}

	name := counterpart.Name
	if name == "" {
		name = "Пользователь Avito"
	}
	message := ch.LastMessage.Content.Text
	if message == "" {
		message = "Нет текста"
	}
	car := ch.Context.Value.Title
	if car == "" {
		car = "Не указано"
	}

	created := formatCreated(ch.LastMessage.Created)

	return Lead{
		ID:           "avito_" + ch.ID,
		Source:       "avito",
		Client:       name,
		Phone:        "", // the Messenger API never exposes phone numbers
		Message:      message,
		Car:          car,
		Stage:        "new",
		Created:      created,
		LastActivity: created,
		Sum:          0,
		AvitoUserID:  counterpart.ID,
		ChatID:       ch.ID,
		ItemID:       ch.Context.Value.ID,
		Unread:       ch.UsersUnreadCount > 0,
	}, true
}

// formatCreated renders an RFC 3339 timestamp as dd.mm.yyyy hh:mm. Values
// that do not parse pass through untouched; an absent value becomes now.
func formatCreated(raw string) string {
	if raw == "" {
		return time.Now().Format("02.01.2006 15:04")
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.Format("02.01.2006 15:04")
}
