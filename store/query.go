package store

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"
)

// Filter operators.
const (
	OpEqual         = "=="
	OpNotEqual      = "!="
	OpLess          = "<"
	OpLessEqual     = "<="
	OpGreater       = ">"
	OpGreaterEqual  = ">="
	OpArrayContains = "array-contains"
	OpIn            = "in"
)

const (
	Asc  = "asc"
	Desc = "desc"
)

// Filter is one where clause: Field Op Value. Field may be dotted.
type Filter struct {
	Field string      `json:"field"`
	Op    string      `json:"op"`
	Value interface{} `json:"value"`
}

// Query describes which records a fetch or subscription returns.
type Query struct {
	Where     []Filter `json:"where,omitempty"`
	OrderBy   string   `json:"orderBy,omitempty"`
	Direction string   `json:"direction,omitempty"`
	Limit     int      `json:"limit,omitempty"`
	Live      bool     `json:"live,omitempty"`
}

func Where(field, op string, value interface{}) Filter {
	return Filter{Field: field, Op: op, Value: value}
}

func (q Query) Validate() error {
	for _, f := range q.Where {
		if strings.TrimSpace(f.Field) == "" {
			return fmt.Errorf("%w: filter without field", ErrInvalidQuery)
		}
		switch f.Op {
		case OpEqual, OpNotEqual, OpLess, OpLessEqual, OpGreater, OpGreaterEqual, OpArrayContains:
		case OpIn:
			if !isList(f.Value) {
				return fmt.Errorf("%w: %q needs a list value", ErrInvalidQuery, OpIn)
			}
		default:
			return fmt.Errorf("%w: unknown operator %q", ErrInvalidQuery, f.Op)
		}
	}
	switch q.Direction {
	case "", Asc, Desc:
	default:
		return fmt.Errorf("%w: unknown direction %q", ErrInvalidQuery, q.Direction)
	}
	if q.Limit < 0 {
		return fmt.Errorf("%w: negative limit", ErrInvalidQuery)
	}
	return nil
}

// Apply filters, sorts and truncates docs in memory. Records missing the
// ordered field are excluded. Ties keep the input order.
func (q Query) Apply(docs []Document) []Document {
	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		if q.matches(d) {
			out = append(out, d)
		}
	}
	if q.OrderBy != "" {
		kept := out[:0]
		for _, d := range out {
			if _, ok := d.Lookup(q.OrderBy); ok {
				kept = append(kept, d)
			}
		}
		out = kept
		desc := q.Direction == Desc
		sort.SliceStable(out, func(i, j int) bool {
			a, _ := out[i].Lookup(q.OrderBy)
			b, _ := out[j].Lookup(q.OrderBy)
			c, _ := compare(a, b)
			if desc {
				return c > 0
			}
			return c < 0
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

func (q Query) matches(d Document) bool {
	for _, f := range q.Where {
		if !f.matches(d) {
			return false
		}
	}
	return true
}

func (f Filter) matches(d Document) bool {
	v, ok := d.Lookup(f.Field)
	if !ok {
		return false
	}
	want := normalize(f.Value)
	switch f.Op {
	case OpEqual:
		return equal(v, want)
	case OpNotEqual:
		return !equal(v, want)
	case OpArrayContains:
		arr, ok := v.([]interface{})
		if !ok {
			return false
		}
		for _, item := range arr {
			if equal(item, want) {
				return true
			}
		}
		return false
	case OpIn:
		list, ok := want.([]interface{})
		if !ok {
			return false
		}
		for _, item := range list {
			if equal(v, item) {
				return true
			}
		}
		return false
	}

	c, ok := compare(v, want)
	if !ok {
		return false
	}
	switch f.Op {
	case OpLess:
		return c < 0
	case OpLessEqual:
		return c <= 0
	case OpGreater:
		return c > 0
	case OpGreaterEqual:
		return c >= 0
	}
	return false
}

func equal(a, b interface{}) bool {
	if c, ok := compare(a, b); ok {
		return c == 0
	}
	return reflect.DeepEqual(a, b)
}

// compare orders two values of the same kind. ok is false when the values
// are not comparable.
func compare(a, b interface{}) (int, bool) {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		if !ok {
			return 0, false
		}
		switch {
		case fa < fb:
			return -1, true
		case fa > fb:
			return 1, true
		}
		return 0, true
	}
	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(x, y), true
	case time.Time:
		y, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return x.Compare(y), true
	case bool:
		y, ok := b.(bool)
		if !ok {
			return 0, false
		}
		switch {
		case x == y:
			return 0, true
		case !x:
			return -1, true
		}
		return 1, true
	}
	return 0, false
}

func isList(v interface{}) bool {
	if v == nil {
		return false
	}
	k := reflect.TypeOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}
