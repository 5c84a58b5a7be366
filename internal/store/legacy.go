package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// LegacyStorageKey is the browser storage key the web planner saved under.
const LegacyStorageKey = "finance_store"

// ImportLegacy reads data exported from the web planner. The export is either
// the stored object itself, that object encoded as a JSON string (as copied
// straight out of browser storage), or an object wrapping it under
// LegacyStorageKey. Category order and string-typed numbers are handled by
// DecodeJSON.
func ImportLegacy(r io.Reader) (Months, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return NewMonths(), fmt.Errorf("reading legacy export: %w", err)
	}
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return NewMonths(), fmt.Errorf("decoding legacy export: %w", err)
		}
		data = []byte(inner)
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return NewMonths(), fmt.Errorf("decoding legacy export: %w", err)
	}
	if inner, ok := wrapper[LegacyStorageKey]; ok {
		return ImportLegacy(bytes.NewReader(inner))
	}

	return DecodeJSON(bytes.NewReader(data))
}
