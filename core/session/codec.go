package session

import (
	"encoding/json"
	"fmt"
)

// recordVersion is the schema version of the persisted envelope.
const recordVersion = 0

// record is the durable layout: {"state":{...},"version":0}.
type record struct {
	State   Session `json:"state"`
	Version int     `json:"version"`
}

// Encode serializes s into the persisted envelope.
func Encode(s Session) ([]byte, error) {
	data, err := json.Marshal(record{State: s, Version: recordVersion})
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return data, nil
}

// Decode parses a persisted envelope. Malformed JSON and unknown versions
// yield ErrCorruptRecord.
func Decode(data []byte) (Session, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	if rec.Version != recordVersion {
		return Session{}, fmt.Errorf("%w: unsupported version %d", ErrCorruptRecord, rec.Version)
	}
	return rec.State, nil
}
