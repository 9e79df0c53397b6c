package avito

import "encoding/json"

// Lead is the import view of one chat, shaped for the sales pipeline UI.
type Lead struct {
	ID           string      `json:"id"`
	Source       string      `json:"source"`
	Client       string      `json:"client"`
	Phone        string      `json:"phone"`
	Message      string      `json:"message"`
	Car          string      `json:"car"`
	Stage        string      `json:"stage"`
	Created      string      `json:"created"`
	LastActivity string      `json:"lastActivity"`
	Sum          float64     `json:"sum"`
	AvitoUserID  json.Number `json:"avitoUserId"`
	ChatID       string      `json:"chatId"`
	ItemID       json.Number `json:"itemId"`
	Unread       bool        `json:"unread"`
}

type ImportResponse struct {
	Success bool   `json:"success"`
	Count   int    `json:"count"`
	Leads   []Lead `json:"leads"`
	Demo    bool   `json:"demo"`
}

// SubscriptionResponse is the 403 soft-failure body, delivered with HTTP 200.
type SubscriptionResponse struct {
	Success  bool            `json:"success"`
	Count    int             `json:"count"`
	Leads    []Lead          `json:"leads"`
	Error    string          `json:"error"`
	Hint     string          `json:"hint"`
	APIError json.RawMessage `json:"api_error"`
}
