package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// timestampLayouts covers RFC 3339 and the zone-less ISO form the API emits.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Timestamp decodes API dates with or without a zone offset. Unparseable
// values decode to the zero time instead of failing the whole record.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	t.Time = time.Time{}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// DateLabel renders the date the way the dashboards display it.
func (t Timestamp) DateLabel() string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}
