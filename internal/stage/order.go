package stage

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entry is one stage flag in canonical position.
type Entry struct {
	Name string
	Done bool
}

// Normalize re-serializes m into canonical order: saved, applied, the
// interview rounds ascending by number, then offer, hired, past-roles,
// ineligible. Base stages missing from m are emitted as false. Any key that
// matches neither pattern is an error.
func Normalize(m Map) ([]Entry, error) {
	if err := checkKnown(m); err != nil {
		return nil, err
	}

	out := make([]Entry, 0, len(baseStages)+len(m))
	for _, k := range orderPrefix {
		out = append(out, Entry{Name: k, Done: m[k]})
	}
	for _, k := range interviewKeys(m) {
		out = append(out, Entry{Name: k, Done: m[k]})
	}
	for _, k := range orderSuffix {
		out = append(out, Entry{Name: k, Done: m[k]})
	}
	return out, nil
}

// FromEntries rebuilds a Map from a normalized entry list.
func FromEntries(entries []Entry) Map {
	m := make(Map, len(entries))
	for _, e := range entries {
		m[e.Name] = e.Done
	}
	return m
}

// MarshalJSON emits the map as a JSON object in canonical key order, so the
// stored representation and API responses are deterministic.
func (m Map) MarshalJSON() ([]byte, error) {
	entries, err := Normalize(m)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if e.Done {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a plain JSON object of booleans.
func (m *Map) UnmarshalJSON(data []byte) error {
	var raw map[string]bool
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode stage map: %w", err)
	}
	*m = Map(raw)
	return nil
}
