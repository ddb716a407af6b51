package messaging

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"
)

// Parameters is an ordered set of wire key/value pairs
type Parameters struct {
	keys   []string
	values map[string]string
}

func newParameters(capacity int) *Parameters {
	return &Parameters{
		keys:   make([]string, 0, capacity),
		values: make(map[string]string, capacity),
	}
}

// add reports false when key is already present
func (p *Parameters) add(key, value string) bool {
	if _, exists := p.values[key]; exists {
		return false
	}
	p.keys = append(p.keys, key)
	p.values[key] = value
	return true
}

// Len returns the number of parameters
func (p *Parameters) Len() int {
	return len(p.keys)
}

// Keys returns the wire keys in serialization order
func (p *Parameters) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Get returns the value for key, or "" when absent
func (p *Parameters) Get(key string) string {
	return p.values[key]
}

// Lookup returns the value for key and whether it is present
func (p *Parameters) Lookup(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Map returns an unordered copy of the parameters
func (p *Parameters) Map() map[string]string {
	out := make(map[string]string, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}

// Values returns the parameters as url.Values
func (p *Parameters) Values() url.Values {
	out := make(url.Values, len(p.values))
	for _, k := range p.keys {
		out.Set(k, p.values[k])
	}
	return out
}

// Encode returns the form encoding, keeping serialization order
func (p *Parameters) Encode() string {
	var b strings.Builder
	for i, k := range p.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.values[k]))
	}
	return b.String()
}

// MarshalJSON encodes the parameters as a JSON object in serialization order
func (p *Parameters) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(p.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
