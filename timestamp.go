package storefront

import (
	"encoding/json"
	"strings"
	"time"
)

// timestampLayouts are tried in order. Exported documents carry Python isoformat() values, which
// may or may not include an offset or fractional seconds.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// Timestamp is an optional point in time decoded leniently from JSON. Empty, null and
// unparseable values decode to the zero Timestamp.
type Timestamp struct {
	time.Time
}

// ParseTimestamp parses s with the accepted layouts. The second return value is false when s is
// empty or matches none of them.
func ParseTimestamp(s string) (Timestamp, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}, false
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}, true
		}
	}

	return Timestamp{}, false
}

// UnmarshalJSON implements json.Unmarshaler.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// null, numbers and other non-string values are treated as absent
		*ts = Timestamp{}
		return nil
	}

	parsed, _ := ParseTimestamp(s)
	*ts = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(ts.Time.Format(time.RFC3339))
}
