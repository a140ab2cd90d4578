package storefront_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddeep01/storefront"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
		ok    bool
	}{
		{input: "2024-03-01T09:30:00Z", want: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC), ok: true},
		{input: "2024-03-01T09:30:00", want: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC), ok: true},
		{input: "2024-03-01T09:30:00.123456", want: time.Date(2024, 3, 1, 9, 30, 0, 123456000, time.UTC), ok: true},
		{input: "2024-03-01 09:30:00", want: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC), ok: true},
		{input: "2024-03-01", want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), ok: true},
		{input: "  2024-03-01  ", want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), ok: true},
		{input: "", ok: false},
		{input: "yesterday", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ts, ok := storefront.ParseTimestamp(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(ts.Time), "got %v", ts.Time)
			} else {
				assert.True(t, ts.IsZero())
			}
		})
	}
}

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	var doc struct {
		A storefront.Timestamp `json:"a"`
		B storefront.Timestamp `json:"b"`
		C storefront.Timestamp `json:"c"`
		D storefront.Timestamp `json:"d"`
	}

	err := json.Unmarshal([]byte(`{"a": "2024-01-02T03:04:05", "b": null, "c": "garbage", "d": 12}`), &doc)
	require.NoError(t, err)

	assert.Equal(t, 2024, doc.A.Year())
	assert.True(t, doc.B.IsZero())
	assert.True(t, doc.C.IsZero())
	assert.True(t, doc.D.IsZero())
}

func TestTimestamp_MarshalJSON(t *testing.T) {
	ts, _ := storefront.ParseTimestamp("2024-01-02T03:04:05Z")

	data, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-01-02T03:04:05Z"`, string(data))

	data, err = json.Marshal(storefront.Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, `""`, string(data))
}
