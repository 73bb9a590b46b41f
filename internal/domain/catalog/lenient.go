// internal/domain/catalog/lenient.go
package catalog

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// optionalNumber decodes a JSON number or numeric string. Null and values
// that do not parse leave it unset, so the field is derived instead.
type optionalNumber struct {
	value float64
	set   bool
}

func (n *optionalNumber) UnmarshalJSON(data []byte) error {
	*n = optionalNumber{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	text := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		text = strings.TrimSpace(s)
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil
	}
	n.value, n.set = f, true
	return nil
}

// detailMap decodes a details object keeping scalar values as text.
// Nested objects, arrays and nulls are skipped, and a details value that is
// not an object decodes to an empty map.
type detailMap map[string]string

func (m *detailMap) UnmarshalJSON(data []byte) error {
	*m = nil

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	out := make(detailMap, len(raw))
	for k, v := range raw {
		v = bytes.TrimSpace(v)
		if len(v) == 0 {
			continue
		}
		switch v[0] {
		case '"':
			var s string
			if err := json.Unmarshal(v, &s); err == nil {
				out[k] = s
			}
		case '{', '[', 'n':
			continue
		default:
			// numbers and booleans keep their literal text
			out[k] = string(v)
		}
	}
	*m = out
	return nil
}
