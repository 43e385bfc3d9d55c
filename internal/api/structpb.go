package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"google.golang.org/protobuf/types/known/structpb"
)

// MaxExactInteger is the largest integer magnitude a Struct number (a
// double) carries without loss. ToStruct rejects integers beyond it.
const MaxExactInteger = 1 << 53

// ToStruct converts a JSON-tagged value into a protobuf Struct.
func ToStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", v, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	m := map[string]any{}
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("flatten %T: %w", v, err)
	}
	for k, val := range m {
		if m[k], err = exactNumbers(val); err != nil {
			return nil, fmt.Errorf("field %q of %T: %w", k, v, err)
		}
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("build struct for %T: %w", v, err)
	}
	return s, nil
}

// exactNumbers replaces json.Number values with float64, failing for
// integers a double cannot hold exactly.
func exactNumbers(v any) (any, error) {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			if i > MaxExactInteger || i < -MaxExactInteger {
				return nil, fmt.Errorf("integer %d exceeds %d", i, int64(MaxExactInteger))
			}
			return float64(i), nil
		}
		if _, err := strconv.ParseUint(x.String(), 10, 64); err == nil {
			return nil, fmt.Errorf("integer %s exceeds %d", x, int64(MaxExactInteger))
		}
		return x.Float64()
	case map[string]any:
		for k, e := range x {
			n, err := exactNumbers(e)
			if err != nil {
				return nil, err
			}
			x[k] = n
		}
	case []any:
		for i, e := range x {
			n, err := exactNumbers(e)
			if err != nil {
				return nil, err
			}
			x[i] = n
		}
	}
	return v, nil
}

// FromStruct fills v (a pointer to a JSON-tagged value) from s.
func FromStruct(s *structpb.Struct, v any) error {
	if s == nil {
		return fmt.Errorf("decode %T: empty message", v)
	}
	raw, err := json.Marshal(s.AsMap())
	if err != nil {
		return fmt.Errorf("marshal struct: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %T: %w", v, err)
	}
	return nil
}
