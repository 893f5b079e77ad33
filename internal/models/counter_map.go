package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// CounterMap stores a string→count mapping as a JSON column.
//
// Scan validates the stored shape instead of coercing it: a summary row whose
// map column holds anything but numeric values is rejected with an error
// rather than silently read back as empty.
type CounterMap map[string]int64

func (m CounterMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]int64(m))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *CounterMap) Scan(value interface{}) error {
	if m == nil {
		return fmt.Errorf("models.CounterMap: Scan on nil pointer")
	}
	if value == nil {
		*m = CounterMap{}
		return nil
	}

	var raw string
	switch v := value.(type) {
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("models.CounterMap: unsupported Scan type %T", value)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		*m = CounterMap{}
		return nil
	}

	var generic map[string]json.Number
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&generic); err != nil {
		return fmt.Errorf("models.CounterMap: malformed counter column: %w", err)
	}

	out := make(CounterMap, len(generic))
	for key, num := range generic {
		n, err := num.Int64()
		if err != nil {
			return fmt.Errorf("models.CounterMap: non-integer count for key %q: %w", key, err)
		}
		out[key] = n
	}
	*m = out
	return nil
}
