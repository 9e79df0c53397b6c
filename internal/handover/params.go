package handover

import (
	"database/sql/driver"
)

// rawJSON captures a JSON value verbatim from the request body and binds it as
// a text parameter (the statement casts it to jsonb). Empty means "absent" and
// binds an empty object.
type rawJSON string

func (r *rawJSON) UnmarshalJSON(b []byte) error {
	*r = rawJSON(b)
	return nil
}

func (r rawJSON) MarshalJSON() ([]byte, error) {
	if r == "" {
		return []byte("{}"), nil
	}
	return []byte(r), nil
}

func (r rawJSON) Value() (driver.Value, error) {
	if r == "" {
		return "{}", nil
	}
	return string(r), nil
}
