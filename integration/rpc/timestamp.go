package rpc

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"time"
)

var ErrInvalidTimestamp = errors.New("rpc: invalid timestamp")

// Timestamp is a protobuf Timestamp. The JSON codec sends RFC 3339 strings;
// the {seconds, nanos} object form and bare epoch seconds decode as well.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errors.Join(ErrInvalidTimestamp, err)
		}
		if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
			t.Time = time.Unix(secs, 0).UTC()
			return nil
		}
		parsed, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return errors.Join(ErrInvalidTimestamp, err)
		}
		t.Time = parsed.UTC()
	case '{':
		var obj struct {
			Seconds json.Number `json:"seconds"`
			Nanos   int64       `json:"nanos"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return errors.Join(ErrInvalidTimestamp, err)
		}
		secs, err := secondsOf(obj.Seconds)
		if err != nil {
			return errors.Join(ErrInvalidTimestamp, err)
		}
		t.Time = time.Unix(secs, obj.Nanos).UTC()
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return errors.Join(ErrInvalidTimestamp, err)
		}
		secs, err := n.Int64()
		if err != nil {
			return errors.Join(ErrInvalidTimestamp, err)
		}
		t.Time = time.Unix(secs, 0).UTC()
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

// secondsOf accepts int64 values sent as numbers or, per proto3 JSON, strings.
func secondsOf(n json.Number) (int64, error) {
	if n == "" {
		return 0, nil
	}
	return strconv.ParseInt(string(n), 10, 64)
}
