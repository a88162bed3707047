package directory

import (
	"encoding/json"
	"fmt"
)

// Record is a flat, null-free mapping representing one directory entity.
// Every schema key is always present; absent source data is replaced by the
// field kind's zero value, so records marshal to JSON without nulls.
type Record = map[string]any

type fieldKind int

const (
	kindString fieldKind = iota
	kindBool
	kindNumber
	kindStringList
	kindObject
	kindObjectList
)

// sourceSelf makes an object field normalize from the parent object itself,
// used to compose synthesized nests out of top-level source attributes.
const sourceSelf = "."

type field struct {
	// Key is the output key. Source is the raw attribute name when it
	// differs from Key, or sourceSelf.
	Key    string
	Source string
	Kind   fieldKind
	Schema []field

	// ZeroFill emits a fully defaulted sub-record instead of an empty
	// mapping when an object source is absent.
	ZeroFill bool
}

// apply normalizes one raw entity against a schema. The output key set is
// fixed regardless of which source attributes are populated.
func apply(raw map[string]any, schema []field) Record {
	out := make(Record, len(schema))
	for _, f := range schema {
		src := f.Source
		if src == "" {
			src = f.Key
		}

		var value any
		if src == sourceSelf {
			value = raw
		} else if raw != nil {
			value = raw[src]
		}

		switch f.Kind {
		case kindString:
			out[f.Key] = toString(value)
		case kindBool:
			b, _ := value.(bool)
			out[f.Key] = b
		case kindNumber:
			n, _ := value.(float64)
			out[f.Key] = n
		case kindStringList:
			out[f.Key] = toStringList(value)
		case kindObject:
			sub, ok := value.(map[string]any)
			if !ok || sub == nil {
				if f.ZeroFill {
					out[f.Key] = apply(nil, f.Schema)
				} else {
					out[f.Key] = Record{}
				}
				continue
			}
			out[f.Key] = apply(sub, f.Schema)
		case kindObjectList:
			items, ok := value.([]any)
			if !ok {
				out[f.Key] = []Record{}
				continue
			}
			list := make([]Record, 0, len(items))
			for _, item := range items {
				sub, ok := item.(map[string]any)
				if !ok {
					continue
				}
				list = append(list, apply(sub, f.Schema))
			}
			out[f.Key] = list
		}
	}
	return out
}

// normalizeRaw decodes one raw Graph entity and applies the schema.
func normalizeRaw(raw json.RawMessage, schema []field) (Record, error) {
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decoding graph entity: %w", err)
	}
	return apply(decoded, schema), nil
}

// normalizeList applies a schema to every item of a paged result.
func normalizeList(items []json.RawMessage, schema []field) ([]Record, error) {
	out := make([]Record, 0, len(items))
	for _, item := range items {
		rec, err := normalizeRaw(item, schema)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		// Enum-like and numeric source values are stringified.
		return fmt.Sprint(t)
	}
}

func toStringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
