package dto

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrNotInteger is returned when an amount is fractional or not a number.
	ErrNotInteger = errors.New("amount must be an integer")
	// ErrInvalidDate is returned when a date cannot be parsed.
	ErrInvalidDate = errors.New("date: use date (YYYY-MM-DD) or RFC3339 datetime")
)

// ParseAmount parses an amount string into a whole number. Fractional
// values (including currency strings like "10.5") are rejected.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrNotInteger
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrNotInteger
	}
	return n, nil
}

// ParseDate parses a calendar date from either "2006-01-02" or an
// RFC3339 datetime. Any time-of-day or zone offset is dropped: the
// value is converted to UTC first, then truncated to midnight, so two
// submissions differing only in time-of-day compare as the same day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		day := parsed.UTC()
		return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, ErrInvalidDate
}

// Amount parses amount from JSON as either a number literal or a
// numeric string. Absent/null stays nil so PATCH can tell "not sent"
// from "sent".
type Amount struct{ v *int64 }

func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		a.v = nil
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	n, err := ParseAmount(s)
	if err != nil {
		return err
	}
	a.v = &n
	return nil
}

// Ptr returns *int64 for use in service/domain.
func (a Amount) Ptr() *int64 { return a.v }

// Date parses date from JSON as date-only ("2006-01-02") or RFC3339,
// normalized to UTC midnight of that day.
type Date struct{ t *time.Time }

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return ErrInvalidDate
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		d.t = nil
		return nil
	}
	day, err := ParseDate(*raw)
	if err != nil {
		return err
	}
	d.t = &day
	return nil
}

// Ptr returns *time.Time for use in service/domain.
func (d Date) Ptr() *time.Time { return d.t }

// CreateEntryRequest is the JSON body for POST /api/account/create.
// Presence of required fields is checked in the service layer.
type CreateEntryRequest struct {
	Description string `json:"description"`
	Amount      Amount `json:"amount"`
	Date        Date   `json:"date"`
	Sign        string `json:"sign"`
}

// UpdateEntryRequest is a sparse patch: nil = leave unchanged.
type UpdateEntryRequest struct {
	Description *string `json:"description"`
	Amount      *Amount `json:"amount"`
	Date        *Date   `json:"date"`
	Sign        *string `json:"sign"`
}

// WebCreateEntryRequest is the form body for POST /account/create.
// Amount and date arrive as raw strings and go through the same
// ParseAmount/ParseDate rules as the JSON path.
type WebCreateEntryRequest struct {
	Description string `form:"description"`
	Amount      string `form:"amount"`
	Date        string `form:"date"`
	Sign        string `form:"sign"`
}

// EntryResponse is the wire shape of one ledger entry.
type EntryResponse struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	Date        string `json:"date"` // YYYY-MM-DD
	Sign        string `json:"sign"`
}

// ListEntriesResponse is the payload of GET /api/account.
type ListEntriesResponse struct {
	Accounts    []EntryResponse `json:"accounts"`
	TotalAmount int64           `json:"totalAmount"`
}
