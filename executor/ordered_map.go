package executor

import (
	"bytes"

	jsoniter "github.com/json-iterator/go"
)

var orderedMapJSON = jsoniter.ConfigCompatibleWithStandardLibrary

type OrderedMap struct {
	m     map[string]interface{}
	order []string
}

func NewOrderedMap() *OrderedMap {
	return &OrderedMap{
		m: map[string]interface{}{},
	}
}

func (m *OrderedMap) Set(key string, value interface{}) {
	if _, ok := m.m[key]; !ok {
		m.order = append(m.order, key)
	}
	m.m[key] = value
}

func (m *OrderedMap) Get(key string) (interface{}, bool) {
	v, ok := m.m[key]
	return v, ok
}

func (m *OrderedMap) Len() int {
	return len(m.m)
}

func (m *OrderedMap) Keys() []string {
	return m.order
}

// MarshalJSON serializes the map preserving insertion order, which encoding/json's own map
// handling can't do (it always sorts map keys). Uses jsoniter rather than the standard library's
// encoder for the per-key/value marshaling, since response bodies are the hottest serialization
// path in the engine.
func (m *OrderedMap) MarshalJSON() ([]byte, error) {
	pairs := make([][]byte, len(m.order))
	for i, key := range m.order {
		keyJSON, err := orderedMapJSON.Marshal(key)
		if err != nil {
			return nil, err
		}
		valueJSON, err := orderedMapJSON.Marshal(m.m[key])
		if err != nil {
			return nil, err
		}
		pairs[i] = bytes.Join([][]byte{keyJSON, valueJSON}, []byte{':'})
	}
	return append(append([]byte{'{'}, bytes.Join(pairs, []byte{','})...), '}'), nil
}
