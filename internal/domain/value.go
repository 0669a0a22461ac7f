package domain

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strconv"
)

// Kind is the canonical shape of a document value
type Kind int

const (
	KindInvalid Kind = iota
	KindScalar
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "invalid"
	}
}

// Entry is a single key/value pair used to build a Map
type Entry struct {
	Key   string
	Value Value
}

// Value is a node of a nested document: a Map, a List or a Scalar leaf.
// The kind is fixed when the value is built and never re-derived.
// The zero Value is the invalid (empty) value.
type Value struct {
	kind   Kind
	scalar any      // nil, bool, int64, float64 or string
	keys   []string // map keys, ascending
	items  []Value  // list elements, or map values aligned with keys
}

// Invalid returns the empty value
func Invalid() Value {
	return Value{}
}

// Scalar builds a leaf. Integer and float types are widened to int64 and
// float64; anything else that is not a string, bool or nil is stored as its
// fmt representation.
func Scalar(v any) Value {
	return Value{kind: KindScalar, scalar: normalizeScalar(v)}
}

// List builds an ordered list of values. Invalid elements are stored as null.
func List(items ...Value) Value {
	out := make([]Value, len(items))
	for i, item := range items {
		out[i] = orNull(item)
	}
	return Value{kind: KindList, items: out}
}

// Map builds a map. Keys are kept in ascending order; when a key repeats the
// last entry wins.
func Map(entries ...Entry) Value {
	last := make(map[string]Value, len(entries))
	for _, e := range entries {
		last[e.Key] = orNull(e.Value)
	}

	keys := make([]string, 0, len(last))
	for k := range last {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	items := make([]Value, len(keys))
	for i, k := range keys {
		items[i] = last[k]
	}
	return Value{kind: KindMap, keys: keys, items: items}
}

// FromGo converts generic decoded data (as produced by encoding/json style
// decoders) into a Value.
func FromGo(v any) Value {
	switch t := v.(type) {
	case Value:
		return t
	case map[string]any:
		entries := make([]Entry, 0, len(t))
		for k, item := range t {
			entries = append(entries, Entry{Key: k, Value: FromGo(item)})
		}
		return Map(entries...)
	case map[any]any:
		entries := make([]Entry, 0, len(t))
		for k, item := range t {
			entries = append(entries, Entry{Key: fmt.Sprint(k), Value: FromGo(item)})
		}
		return Map(entries...)
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			items[i] = FromGo(item)
		}
		return List(items...)
	case []string:
		items := make([]Value, len(t))
		for i, item := range t {
			items[i] = Scalar(item)
		}
		return List(items...)
	default:
		return Scalar(v)
	}
}

func normalizeScalar(v any) any {
	switch t := v.(type) {
	case nil, bool, string, int64, float64:
		return t
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case uint:
		return unsignedScalar(uint64(t))
	case uint8:
		return int64(t)
	case uint16:
		return int64(t)
	case uint32:
		return int64(t)
	case uint64:
		return unsignedScalar(t)
	case float32:
		return float64(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

func orNull(v Value) Value {
	if v.IsValid() {
		return v
	}
	return Value{kind: KindScalar}
}

func unsignedScalar(u uint64) any {
	if u > math.MaxInt64 {
		return float64(u)
	}
	return int64(u)
}

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsValid() bool { return v.kind != KindInvalid }
func (v Value) IsMap() bool { return v.kind == KindMap }
func (v Value) IsList() bool { return v.kind == KindList }
func (v Value) IsScalar() bool { return v.kind == KindScalar }
func (v Value) Interface() any { return v.scalar }
func (v Value) IsNull() bool { return v.kind == KindScalar && v.scalar == nil }
func (v Value) IsContainer() bool { return v.kind == KindMap || v.kind == KindList }

// Len returns the number of direct children (0 for scalars)
func (v Value) Len() int {
	return len(v.items)
}

// Keys returns a copy of the map keys in iteration order
func (v Value) Keys() []string {
	return slices.Clone(v.keys)
}

// KeyAt returns the nth key of a map
func (v Value) KeyAt(i int) (string, bool) {
	if v.kind != KindMap || i < 0 || i >= len(v.keys) {
		return "", false
	}
	return v.keys[i], true
}

// At returns the nth list element or the nth map value
func (v Value) At(i int) Value {
	if i < 0 || i >= len(v.items) {
		return Value{}
	}
	return v.items[i]
}

// Get returns the value stored under key in a map
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}
	i := sort.SearchStrings(v.keys, key)
	if i < len(v.keys) && v.keys[i] == key {
		return v.items[i], true
	}
	return Value{}, false
}

// Count returns the number of nodes in this subtree, itself included
func (v Value) Count() int {
	if !v.IsValid() {
		return 0
	}
	n := 1
	for _, item := range v.items {
		n += item.Count()
	}
	return n
}

// String renders the value for display. Containers render as a summary.
func (v Value) String() string {
	switch v.kind {
	case KindMap:
		return fmt.Sprintf("{%d %s}", len(v.items), plural(len(v.items), "key", "keys"))
	case KindList:
		return fmt.Sprintf("[%d %s]", len(v.items), plural(len(v.items), "item", "items"))
	case KindScalar:
		switch s := v.scalar.(type) {
		case nil:
			return "null"
		case string:
			return s
		case bool:
			return strconv.FormatBool(s)
		case int64:
			return strconv.FormatInt(s, 10)
		case float64:
			return strconv.FormatFloat(s, 'g', -1, 64)
		default:
			return fmt.Sprint(s)
		}
	default:
		return ""
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// ToGo converts the value back into plain Go data
func (v Value) ToGo() any {
	switch v.kind {
	case KindMap:
		m := make(map[string]any, len(v.keys))
		for i, k := range v.keys {
			m[k] = v.items[i].ToGo()
		}
		return m
	case KindList:
		l := make([]any, len(v.items))
		for i, item := range v.items {
			l[i] = item.ToGo()
		}
		return l
	default:
		return v.scalar
	}
}

// Equal reports whether two values have the same shape and content
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind || len(v.items) != len(o.items) {
		return false
	}
	if v.kind == KindScalar {
		return v.scalar == o.scalar
	}
	if !slices.Equal(v.keys, o.keys) {
		return false
	}
	for i := range v.items {
		if !v.items[i].Equal(o.items[i]) {
			return false
		}
	}
	return true
}
