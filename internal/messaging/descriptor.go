package messaging

import "sync"

// Descriptor is the ordered, immutable set of fields for one message type.
// It is safe for concurrent use once built.
type Descriptor[M any] struct {
	name   string
	fields []Field[M]
	index  map[string]int
}

// NewDescriptor builds a descriptor from fields in wire order.
// Two fields sharing a wire name fail with a *DescriptorError.
func NewDescriptor[M any](name string, fields ...Field[M]) (*Descriptor[M], error) {
	d := &Descriptor[M]{
		name:   name,
		fields: make([]Field[M], 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if _, exists := d.index[f.name]; exists {
			return nil, &DescriptorError{Message: name, Field: f.name}
		}
		d.index[f.name] = len(d.fields)
		d.fields = append(d.fields, f)
	}
	return d, nil
}

// LazyDescriptor returns a getter that builds the descriptor exactly once,
// on first call, and returns the same result to every caller after that.
func LazyDescriptor[M any](name string, fields func() []Field[M]) func() (*Descriptor[M], error) {
	return sync.OnceValues(func() (*Descriptor[M], error) {
		return NewDescriptor(name, fields()...)
	})
}

// Name returns the message type name
func (d *Descriptor[M]) Name() string {
	return d.name
}

// Len returns the number of fields
func (d *Descriptor[M]) Len() int {
	return len(d.fields)
}

// Fields returns a copy of the fields in wire order
func (d *Descriptor[M]) Fields() []Field[M] {
	out := make([]Field[M], len(d.fields))
	copy(out, d.fields)
	return out
}

// Names returns the wire names in order
func (d *Descriptor[M]) Names() []string {
	names := make([]string, len(d.fields))
	for i, f := range d.fields {
		names[i] = f.name
	}
	return names
}

// Lookup finds a field by wire name
func (d *Descriptor[M]) Lookup(name string) (Field[M], bool) {
	i, ok := d.index[name]
	if !ok {
		return Field[M]{}, false
	}
	return d.fields[i], true
}
