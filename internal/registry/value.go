// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package registry

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Kind identifies which variant a [Value] holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindTree
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindTree:
		return "tree"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Tree is one level of a configuration tree: key segment to value.
type Tree map[string]Value

// Value is a configuration value: either a scalar leaf (null, bool, number,
// string) or a nested [Tree]. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	t    Tree
}

func Null() Value            { return Value{} }
func Bool(b bool) Value      { return Value{kind: KindBool, b: b} }
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }
func Int(i int64) Value      { return Value{kind: KindNumber, n: float64(i)} }
func String(s string) Value  { return Value{kind: KindString, s: s} }

// Branch wraps t as a Value. A nil t is stored as an empty tree.
func Branch(t Tree) Value {
	if t == nil {
		t = Tree{}
	}
	return Value{kind: KindTree, t: t}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }
func (v Value) IsTree() bool { return v.kind == KindTree }

func (v Value) AsBool() (bool, bool)      { return v.b, v.kind == KindBool }
func (v Value) AsNumber() (float64, bool) { return v.n, v.kind == KindNumber }
func (v Value) AsString() (string, bool)  { return v.s, v.kind == KindString }

// AsTree returns the nested tree held by v. The returned map is shared with v;
// use [Tree.Clone] before mutating it.
func (v Value) AsTree() (Tree, bool) { return v.t, v.kind == KindTree }

// Equal reports whether v and o hold the same variant and contents.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.n == o.n
	case KindString:
		return v.s == o.s
	default:
		return v.t.Equal(o.t)
	}
}

// clone returns a deep copy of v; scalars are returned as is.
func (v Value) clone() Value {
	if v.kind != KindTree {
		return v
	}
	return Branch(v.t.Clone())
}

// Any converts v into plain Go data: nil, bool, float64, string or
// map[string]any.
func (v Value) Any() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	case KindTree:
		return v.t.Any()
	default:
		return nil
	}
}

// Clone returns a deep copy of t.
func (t Tree) Clone() Tree {
	out := make(Tree, len(t))
	for k, v := range t {
		out[k] = v.clone()
	}
	return out
}

// Equal reports whether t and o hold the same keys with equal values.
func (t Tree) Equal(o Tree) bool {
	if len(t) != len(o) {
		return false
	}
	for k, v := range t {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Keys returns the keys of t in sorted order.
func (t Tree) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Any converts t into a map[string]any suitable for encoders.
func (t Tree) Any() map[string]any {
	out := make(map[string]any, len(t))
	for k, v := range t {
		out[k] = v.Any()
	}
	return out
}

// FromAny converts decoded JSON, YAML or TOML data into a Value. Integer and
// unsigned types become numbers; any map keyed by strings (or by keys that
// print as strings) becomes a tree. Slices are not representable and yield
// [ErrUnsupportedValue].
func FromAny(data any) (Value, error) {
	switch d := data.(type) {
	case nil:
		return Null(), nil
	case Value:
		return d.clone(), nil
	case bool:
		return Bool(d), nil
	case string:
		return String(d), nil
	case float64:
		return Number(d), nil
	case float32:
		return Number(float64(d)), nil
	case int:
		return Int(int64(d)), nil
	case int8:
		return Int(int64(d)), nil
	case int16:
		return Int(int64(d)), nil
	case int32:
		return Int(int64(d)), nil
	case int64:
		return Int(d), nil
	case uint:
		return Number(float64(d)), nil
	case uint8:
		return Number(float64(d)), nil
	case uint16:
		return Number(float64(d)), nil
	case uint32:
		return Number(float64(d)), nil
	case uint64:
		return Number(float64(d)), nil
	case json.Number:
		n, err := d.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
		}
		return Number(n), nil
	case Tree:
		return Branch(d.Clone()), nil
	case map[string]any:
		t := make(Tree, len(d))
		for k, raw := range d {
			v, err := FromAny(raw)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			t[k] = v
		}
		return Branch(t), nil
	case map[any]any:
		t := make(Tree, len(d))
		for k, raw := range d {
			key := fmt.Sprint(k)
			v, err := FromAny(raw)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", key, err)
			}
			t[key] = v
		}
		return Branch(t), nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedValue, data)
	}
}

// MarshalJSON encodes v as the equivalent JSON document.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Any())
}

// UnmarshalJSON decodes any JSON document except arrays into v.
func (v *Value) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	decoded, err := FromAny(raw)
	if err != nil {
		return err
	}

	*v = decoded
	return nil
}
