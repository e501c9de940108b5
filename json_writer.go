package expenses

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// jsonObjectWriter builds a JSON object whose fields keep the order in which
// they are appended. Its zero value is an empty object.
type jsonObjectWriter struct {
	fields []byte
	err    error
}

// Append adds the field key with value marshaled by json.Marshal.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	k, _ := json.Marshal(key)
	v, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("field %s: %w", k, err)
		return w
	}
	if len(w.fields) > 0 {
		w.fields = append(w.fields, ',')
	}
	w.fields = append(w.fields, k...)
	w.fields = append(w.fields, ':')
	w.fields = append(w.fields, v...)
	return w
}

// Optional is like Append but skips zero values.
func (w *jsonObjectWriter) Optional(key string, value any) *jsonObjectWriter {
	if v := reflect.ValueOf(value); !v.IsValid() || v.IsZero() {
		return w
	}
	return w.Append(key, value)
}

// MarshalJSON returns the object, or the first error met while appending.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	obj := make([]byte, 0, len(w.fields)+2)
	obj = append(obj, '{')
	obj = append(obj, w.fields...)
	return append(obj, '}'), nil
}
