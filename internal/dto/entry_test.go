package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "1000", want: 1000},
		{in: "-300", want: -300},
		{in: "0", want: 0},
		{in: " 250 ", want: 250},
		{in: "10.5", wantErr: true},
		{in: "1e3", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotInteger)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate(t *testing.T) {
	utcMidnight := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{name: "date only", in: "2024-01-15", want: utcMidnight(2024, time.January, 15)},
		{name: "rfc3339 drops time", in: "2024-01-15T10:30:00Z", want: utcMidnight(2024, time.January, 15)},
		{name: "offset converts to utc first", in: "2024-01-15T23:30:00-05:00", want: utcMidnight(2024, time.January, 16)},
		{name: "naive datetime", in: "2024-01-15T10:30:00", want: utcMidnight(2024, time.January, 15)},
		{name: "garbage", in: "not-a-date", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}
}

// Re-validating an already normalized date must yield the same date.
func TestParseDateIdempotent(t *testing.T) {
	first, err := ParseDate("2024-01-15T10:30:00Z")
	require.NoError(t, err)
	second, err := ParseDate(first.Format("2006-01-02"))
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
}

func TestCreateEntryRequestUnmarshal(t *testing.T) {
	t.Run("number amount", func(t *testing.T) {
		var req CreateEntryRequest
		body := `{"description":"salary","amount":1000,"date":"2024-01-15T10:30:00Z","sign":"credit"}`
		require.NoError(t, json.Unmarshal([]byte(body), &req))
		require.NotNil(t, req.Amount.Ptr())
		assert.Equal(t, int64(1000), *req.Amount.Ptr())
		require.NotNil(t, req.Date.Ptr())
		assert.Equal(t, "2024-01-15", req.Date.Ptr().Format("2006-01-02"))
		assert.Equal(t, time.UTC, req.Date.Ptr().Location())
	})

	t.Run("numeric string amount", func(t *testing.T) {
		var req CreateEntryRequest
		body := `{"description":"salary","amount":"250","date":"2024-01-15","sign":"credit"}`
		require.NoError(t, json.Unmarshal([]byte(body), &req))
		require.NotNil(t, req.Amount.Ptr())
		assert.Equal(t, int64(250), *req.Amount.Ptr())
	})

	t.Run("fractional amount rejected", func(t *testing.T) {
		var req CreateEntryRequest
		body := `{"description":"x","amount":"10.5","date":"2024-01-15","sign":"credit"}`
		err := json.Unmarshal([]byte(body), &req)
		assert.ErrorIs(t, err, ErrNotInteger)
	})

	t.Run("fractional number rejected", func(t *testing.T) {
		var req CreateEntryRequest
		body := `{"description":"x","amount":10.5,"date":"2024-01-15","sign":"credit"}`
		err := json.Unmarshal([]byte(body), &req)
		assert.ErrorIs(t, err, ErrNotInteger)
	})

	t.Run("bad date rejected", func(t *testing.T) {
		var req CreateEntryRequest
		body := `{"description":"x","amount":1,"date":"soon","sign":"credit"}`
		err := json.Unmarshal([]byte(body), &req)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestUpdateEntryRequestSparse(t *testing.T) {
	var req UpdateEntryRequest
	body := `{"amount":500}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.Nil(t, req.Description)
	assert.Nil(t, req.Date)
	assert.Nil(t, req.Sign)
	require.NotNil(t, req.Amount)
	require.NotNil(t, req.Amount.Ptr())
	assert.Equal(t, int64(500), *req.Amount.Ptr())
}
