package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind is the dynamic type tag of a JSON value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

// String returns the type tag used in difference messages
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Member is a single key/value pair of a JSON object.
type Member struct {
	Key   string
	Value Value
}

// Value is a decoded JSON value. The zero Value is JSON null.
//
// Objects keep their members in document order; keys are unique.
type Value struct {
	kind    Kind
	boolean bool
	number  json.Number
	str     string
	items   []Value
	members []Member
	index   map[string]int
}

// NullValue returns JSON null
func NullValue() Value {
	return Value{}
}

// BoolValue wraps a boolean
func BoolValue(b bool) Value {
	return Value{kind: Bool, boolean: b}
}

// NumberValue wraps a number literal
func NumberValue(n json.Number) Value {
	return Value{kind: Number, number: n}
}

// StringValue wraps a string
func StringValue(s string) Value {
	return Value{kind: String, str: s}
}

// ArrayValue builds an array from its elements
func ArrayValue(items ...Value) Value {
	copied := make([]Value, len(items))
	copy(copied, items)
	return Value{kind: Array, items: copied}
}

// ObjectValue builds an object from its members. When a key repeats, the
// last value wins and keeps the position of the first occurrence.
func ObjectValue(members ...Member) Value {
	v := Value{
		kind:    Object,
		members: make([]Member, 0, len(members)),
		index:   make(map[string]int, len(members)),
	}
	for _, m := range members {
		if i, exists := v.index[m.Key]; exists {
			v.members[i].Value = m.Value
			continue
		}
		v.index[m.Key] = len(v.members)
		v.members = append(v.members, m)
	}
	return v
}

// Kind returns the type tag of the value
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is JSON null
func (v Value) IsNull() bool {
	return v.kind == Null
}

// IsContainer reports whether v is an array or an object
func (v Value) IsContainer() bool {
	return v.kind == Array || v.kind == Object
}

// Bool returns the boolean payload, false for other kinds
func (v Value) Bool() bool {
	return v.boolean
}

// Number returns the number literal, empty for other kinds
func (v Value) Number() json.Number {
	return v.number
}

// Str returns the string payload, empty for other kinds
func (v Value) Str() string {
	return v.str
}

// Len returns the number of members or elements of a container, 0 otherwise
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.items)
	case Object:
		return len(v.members)
	default:
		return 0
	}
}

// Items returns a copy of the array elements
func (v Value) Items() []Value {
	if v.kind != Array {
		return nil
	}
	items := make([]Value, len(v.items))
	copy(items, v.items)
	return items
}

// Members returns a copy of the object members in document order
func (v Value) Members() []Member {
	if v.kind != Object {
		return nil
	}
	members := make([]Member, len(v.members))
	copy(members, v.members)
	return members
}

// Keys returns the member keys of an object in document order, or the
// stringified indices of an array. Scalars have no keys.
func (v Value) Keys() []string {
	switch v.kind {
	case Object:
		keys := make([]string, len(v.members))
		for i, m := range v.members {
			keys[i] = m.Key
		}
		return keys
	case Array:
		keys := make([]string, len(v.items))
		for i := range v.items {
			keys[i] = strconv.Itoa(i)
		}
		return keys
	default:
		return nil
	}
}

// Member returns the object member named key, or the array element whose
// decimal index is key. The second result is false when there is no such member.
func (v Value) Member(key string) (Value, bool) {
	switch v.kind {
	case Object:
		i, ok := v.index[key]
		if !ok {
			return Value{}, false
		}
		return v.members[i].Value, true
	case Array:
		i, err := strconv.Atoi(key)
		// "01" and "+1" are not indices
		if err != nil || i < 0 || i >= len(v.items) || strconv.Itoa(i) != key {
			return Value{}, false
		}
		return v.items[i], true
	default:
		return Value{}, false
	}
}

// Canonical returns the canonical JSON encoding of v: no insignificant
// whitespace, object keys sorted and numbers in their shortest form. Two values
// are deeply equal iff their canonical encodings are identical.
func (v Value) Canonical() string {
	var buf bytes.Buffer
	v.encode(&buf, true)
	return buf.String()
}

// String returns the canonical encoding
func (v Value) String() string {
	return v.Canonical()
}

// Equal reports deep equality
func (v Value) Equal(other Value) bool {
	return v.Canonical() == other.Canonical()
}

// MarshalJSON encodes v compactly, keeping object members in document order
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	v.encode(&buf, false)
	return buf.Bytes(), nil
}

// MarshalYAML encodes v as a YAML node tree, keeping object members in
// document order and numbers in their canonical text
func (v Value) MarshalYAML() (interface{}, error) {
	return v.yamlNode(), nil
}

func (v Value) yamlNode() *yaml.Node {
	switch v.kind {
	case Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.boolean)}
	case Number:
		// Untagged plain scalars are written as-is and read back as numbers
		return &yaml.Node{Kind: yaml.ScalarNode, Value: canonicalNumber(v.number)}
	case String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.str}
	case Array:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.items {
			node.Content = append(node.Content, item.yamlNode())
		}
		return node
	case Object:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range v.members {
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Key},
				m.Value.yamlNode(),
			)
		}
		return node
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

func (v Value) encode(buf *bytes.Buffer, sorted bool) {
	switch v.kind {
	case Null:
		buf.WriteString("null")
	case Bool:
		buf.WriteString(strconv.FormatBool(v.boolean))
	case Number:
		buf.WriteString(canonicalNumber(v.number))
	case String:
		buf.WriteString(quote(v.str))
	case Array:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			item.encode(buf, sorted)
		}
		buf.WriteByte(']')
	case Object:
		members := v.members
		if sorted {
			members = make([]Member, len(v.members))
			copy(members, v.members)
			sort.Slice(members, func(i, j int) bool { return members[i].Key < members[j].Key })
		}
		buf.WriteByte('{')
		for i, m := range members {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(quote(m.Key))
			buf.WriteByte(':')
			m.Value.encode(buf, sorted)
		}
		buf.WriteByte('}')
	}
}

// quote encodes s as a JSON string without HTML escaping
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// canonicalNumber renders a number literal the way a float64 prints, so that
// 1, 1.0 and 1e0 compare equal. Literals outside float64 range are kept as is.
func canonicalNumber(n json.Number) string {
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return string(n)
	}
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Interface converts v into plain Go values: map[string]interface{},
// []interface{}, int64 or float64, string, bool and nil.
func (v Value) Interface() interface{} {
	switch v.kind {
	case Bool:
		return v.boolean
	case Number:
		if i, err := strconv.ParseInt(string(v.number), 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(string(v.number), 64); err == nil {
			return f
		}
		return string(v.number)
	case String:
		return v.str
	case Array:
		out := make([]interface{}, len(v.items))
		for i, item := range v.items {
			out[i] = item.Interface()
		}
		return out
	case Object:
		out := make(map[string]interface{}, len(v.members))
		for _, m := range v.members {
			out[m.Key] = m.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

// FromInterface converts plain Go values, as produced by encoding/json or
// written in tests, into a Value. Map keys are ordered lexically.
func FromInterface(in interface{}) (Value, error) {
	switch x := in.(type) {
	case nil:
		return NullValue(), nil
	case Value:
		return x, nil
	case bool:
		return BoolValue(x), nil
	case string:
		return StringValue(x), nil
	case json.Number:
		return NumberValue(x), nil
	case float64:
		return NumberValue(json.Number(strconv.FormatFloat(x, 'g', -1, 64))), nil
	case float32:
		return NumberValue(json.Number(strconv.FormatFloat(float64(x), 'g', -1, 32))), nil
	case int:
		return NumberValue(json.Number(strconv.Itoa(x))), nil
	case int64:
		return NumberValue(json.Number(strconv.FormatInt(x, 10))), nil
	case []interface{}:
		items := make([]Value, len(x))
		for i, item := range x {
			converted, err := FromInterface(item)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items[i] = converted
		}
		return Value{kind: Array, items: items}, nil
	case map[string]interface{}:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		members := make([]Member, len(keys))
		for i, k := range keys {
			converted, err := FromInterface(x[k])
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			members[i] = Member{Key: k, Value: converted}
		}
		return ObjectValue(members...), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", in)
	}
}

// MustFromInterface is FromInterface that panics on error, for literals
func MustFromInterface(in interface{}) Value {
	v, err := FromInterface(in)
	if err != nil {
		panic(err)
	}
	return v
}
