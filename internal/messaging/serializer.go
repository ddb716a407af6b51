package messaging

import "sort"

// Serialize converts msg into wire parameters in descriptor order.
// Declared fields come first, followed by the message's extra data sorted
// by key. On failure no parameters are returned.
func Serialize[M Message](d *Descriptor[M], msg M) (*Parameters, error) {
	extra := msg.ExtraData()
	params := newParameters(d.Len() + len(extra))

	for _, f := range d.fields {
		v, ok := f.value(msg)
		if !ok {
			if f.required {
				return nil, &FieldError{Field: f.name, Err: ErrMissingRequiredField}
			}
			continue
		}

		wire, err := f.Encode(v)
		if err != nil {
			return nil, &FieldError{Field: f.name, Err: err}
		}

		if wire == "" && !f.allowEmpty {
			return nil, &FieldError{Field: f.name, Err: ErrEmptyFieldNotAllowed}
		}

		// Uniqueness is enforced when the descriptor is built
		params.add(f.name, wire)
	}

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !params.add(k, extra[k]) {
			return nil, &FieldError{Field: k, Err: ErrDuplicateParameter}
		}
	}

	return params, nil
}
