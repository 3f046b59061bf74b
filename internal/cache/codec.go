package cache

import (
	"bytes"
	"encoding/json"
)

// record is the on-disk form of an entry. It is a standalone JSON document:
// reloading it needs nothing but the bytes of the file.
type record struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

var jsonNull = []byte("null")

func encodeRecord(key string, value any) ([]byte, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(record{Key: key, Value: raw})
}

// decodeRecord reports false for anything that does not yield a value:
// malformed JSON, a missing or null value, or a value that does not fit V.
func decodeRecord[V any](data []byte) (V, bool) {
	var zero V

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return zero, false
	}
	raw := bytes.TrimSpace(rec.Value)
	if len(raw) == 0 || bytes.Equal(raw, jsonNull) {
		return zero, false
	}

	var value V
	if err := json.Unmarshal(raw, &value); err != nil {
		return zero, false
	}
	return value, true
}
