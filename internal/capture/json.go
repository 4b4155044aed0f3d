package capture

import (
	"bytes"
	"encoding/json"
)

// MarshalJSON renders a Value the way spec §4.6 describes the capture
// report: a leaf becomes a JSON string, an array stays an array, and an
// object serializes its keys in first-seen order rather than sorted --
// encoding/json's default map handling would alphabetize them.
func (v *Value) MarshalJSON() ([]byte, error) {
	switch {
	case v == nil:
		return []byte("null"), nil
	case v.Object != nil:
		return v.Object.MarshalJSON()
	case v.Array != nil:
		return json.Marshal(v.Array)
	default:
		return json.Marshal(v.Leaf)
	}
}

// MarshalJSON renders an Object preserving key insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
