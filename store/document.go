package store

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document is one record. The record id is always present under "id";
// timestamps are time.Time; nested objects are map[string]interface{};
// arrays are []interface{}; integers are int64.
type Document map[string]interface{}

func (d Document) ID() string {
	id, _ := d["id"].(string)
	return id
}

// Lookup resolves a dotted field path.
func (d Document) Lookup(path string) (interface{}, bool) {
	var cur interface{} = map[string]interface{}(d)
	for _, part := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func (d Document) String(path string) string {
	v, _ := d.Lookup(path)
	s, _ := v.(string)
	return s
}

func (d Document) Int(path string) int64 {
	v, _ := d.Lookup(path)
	f, ok := toFloat(v)
	if !ok {
		return 0
	}
	return int64(f)
}

func (d Document) Bool(path string) bool {
	v, _ := d.Lookup(path)
	b, _ := v.(bool)
	return b
}

func (d Document) Strings(path string) []string {
	v, _ := d.Lookup(path)
	arr, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func (d Document) Time(path string) time.Time {
	v, _ := d.Lookup(path)
	t, _ := v.(time.Time)
	return t
}

// Encode converts a struct or map into a normalised Document. A bson "_id"
// field becomes "id"; an empty id is dropped.
func Encode(v interface{}) (Document, error) {
	if v == nil {
		return Document{}, nil
	}
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	doc := Document(normalizeMap(m))
	if id, ok := doc["_id"]; ok {
		delete(doc, "_id")
		if s, _ := id.(string); s != "" {
			doc["id"] = s
		}
	}
	if id, ok := doc["id"].(string); ok && id == "" {
		delete(doc, "id")
	}
	return doc, nil
}

// Decode fills out (a pointer to a struct tagged with bson) from d. The
// record id is exposed to the struct as "_id".
func Decode(d Document, out interface{}) error {
	m := make(bson.M, len(d))
	for k, v := range d {
		if k == "id" {
			m["_id"] = v
			continue
		}
		m[k] = v
	}
	raw, err := bson.Marshal(m)
	if err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	if err := bson.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}

// DecodeAll decodes a list of documents into a slice pointed to by out.
func DecodeAll[T any](docs []Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		var item T
		if err := Decode(d, &item); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func clone(d Document) Document {
	if d == nil {
		return nil
	}
	return Document(normalizeMap(map[string]interface{}(d)))
}

func normalizeMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = normalize(v)
	}
	return out
}

// normalize maps driver and Go values onto the Document value set.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case nil:
		return nil
	case primitive.DateTime:
		return t.Time().UTC()
	case time.Time:
		return t.UTC().Truncate(time.Millisecond)
	case primitive.Timestamp:
		return time.Unix(int64(t.T), 0).UTC()
	case primitive.ObjectID:
		return t.Hex()
	case primitive.D:
		m := make(map[string]interface{}, len(t))
		for _, e := range t {
			m[e.Key] = normalize(e.Value)
		}
		return m
	case primitive.M:
		return normalizeMap(t)
	case Document:
		return normalizeMap(t)
	case map[string]interface{}:
		return normalizeMap(t)
	case primitive.A:
		return normalizeSlice([]interface{}(t))
	case []interface{}:
		return normalizeSlice(t)
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case int64, float64, string, bool:
		return t
	case uint:
		return int64(t)
	case uint8:
		return int64(t)
	case uint16:
		return int64(t)
	case uint32:
		return int64(t)
	case uint64:
		return int64(t)
	case float32:
		return float64(t)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]interface{}, rv.Len())
		for i := range out {
			out[i] = normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			out := make(map[string]interface{}, rv.Len())
			iter := rv.MapRange()
			for iter.Next() {
				out[iter.Key().String()] = normalize(iter.Value().Interface())
			}
			return out
		}
	case reflect.Ptr:
		if rv.IsNil() {
			return nil
		}
		return normalize(rv.Elem().Interface())
	case reflect.Struct:
		if d, err := Encode(v); err == nil {
			return map[string]interface{}(d)
		}
	}
	return v
}

func normalizeSlice(in []interface{}) []interface{} {
	out := make([]interface{}, len(in))
	for i, v := range in {
		out[i] = normalize(v)
	}
	return out
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case Document:
		return m, true
	}
	return nil, false
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
