package internal

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
)

// Vars is an ordered set of view variables.
// Keys keep the position of their first assignment, so the JSON encoding
// of two equal bags is byte-identical.
type Vars struct {
	values map[string]any
	keys   []string
}

// NewVars creates an empty variable bag.
func NewVars() *Vars {
	return &Vars{values: make(map[string]any)}
}

// Set assigns a value. Reassigning a key keeps its original position.
func (v *Vars) Set(key string, value any) {
	if _, ok := v.values[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.values[key] = value
}

// Get returns the value stored under key.
func (v *Vars) Get(key string) (any, bool) {
	val, ok := v.values[key]
	return val, ok
}

// Has reports whether key is set.
func (v *Vars) Has(key string) bool {
	_, ok := v.values[key]
	return ok
}

// Delete removes key.
func (v *Vars) Delete(key string) {
	if _, ok := v.values[key]; !ok {
		return
	}
	delete(v.values, key)
	for i, k := range v.keys {
		if k == key {
			v.keys = append(v.keys[:i], v.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in assignment order.
func (v *Vars) Keys() []string {
	return append([]string(nil), v.keys...)
}

// Len returns the number of variables.
func (v *Vars) Len() int {
	return len(v.keys)
}

// Map returns a shallow copy of the variables.
func (v *Vars) Map() map[string]any {
	return maps.Clone(v.values)
}

// Clone returns an independent copy. Changes to the copy never reach v.
func (v *Vars) Clone() *Vars {
	return &Vars{
		values: maps.Clone(v.values),
		keys:   append([]string(nil), v.keys...),
	}
}

// Without returns a copy with the given keys removed.
func (v *Vars) Without(keys ...string) *Vars {
	c := v.Clone()
	for _, k := range keys {
		c.Delete(k)
	}
	return c
}

// MarshalJSON encodes the variables as a JSON object in assignment order.
func (v *Vars) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range v.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(v.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
