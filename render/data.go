package render

import (
	"encoding/json"
	"fmt"
)

// Data is the JSON payload a template is rendered with. Built-in templates
// ship complete sample content; caller data overrides it key by key.
type Data map[string]any

// Merge deep-merges override into base and returns the result. Maps merge
// recursively, everything else is replaced wholesale.
func Merge(base, override Data) Data {
	out := Data{}
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		if sub, ok := v.(map[string]any); ok {
			if existing, ok := out[k].(map[string]any); ok {
				out[k] = map[string]any(Merge(Data(existing), Data(sub)))
				continue
			}
		}
		out[k] = v
	}
	return out
}

// String returns the string at key, or def when missing or not a string.
func (d Data) String(key, def string) string {
	if v, ok := d[key].(string); ok {
		return v
	}
	return def
}

// Int returns the integer at key; JSON numbers arrive as float64.
func (d Data) Int(key string, def int) int {
	switch v := d[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return def
}

// Float returns the float at key.
func (d Data) Float(key string, def float64) float64 {
	switch v := d[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return def
}

// Bool returns the boolean at key.
func (d Data) Bool(key string, def bool) bool {
	if v, ok := d[key].(bool); ok {
		return v
	}
	return def
}

// Slice returns the array at key, or nil.
func (d Data) Slice(key string) []any {
	v, _ := d[key].([]any)
	return v
}

// Strings returns the array at key with every element stringified.
func (d Data) Strings(key string) []string {
	items := d.Slice(key)
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, fmt.Sprint(item))
	}
	return out
}

// Map returns the object at key, or an empty Data.
func (d Data) Map(key string) Data {
	if v, ok := d[key].(map[string]any); ok {
		return Data(v)
	}
	return Data{}
}

// Maps returns the array of objects at key, skipping non-object elements.
func (d Data) Maps(key string) []Data {
	items := d.Slice(key)
	out := make([]Data, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Data(m))
		}
	}
	return out
}

// JSON returns the data as canonical JSON, used for cache keys.
func (d Data) JSON() string {
	raw, err := json.Marshal(d)
	if err != nil {
		return "{}"
	}
	return string(raw)
}
