// Copyright 2024 The blockrlp Authors
// This file is part of the blockrlp library.
//
// The blockrlp library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The blockrlp library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the blockrlp library. If not, see <http://www.gnu.org/licenses/>.

package rlp

import (
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Kind represents the kind of an RLP value.
type Kind int8

const (
	String Kind = iota
	List
)

func (k Kind) String() string {
	switch k {
	case String:
		return "String"
	case List:
		return "List"
	default:
		return "Unknown"
	}
}

// Value is a node of an RLP tree: either a byte string or a list of values.
// The zero Value is the empty string.
type Value struct {
	kind  Kind
	str   []byte
	items []Value
}

// Valuer is implemented by types that know how to represent themselves as a
// Value tree.
type Valuer interface {
	RLPValue() Value
}

// Bytes returns a string value holding b. The slice is not copied and must
// not be modified while the value is in use.
func Bytes(b []byte) Value {
	return Value{kind: String, str: b}
}

// ListOf returns a list value holding the given items in order.
func ListOf(items ...Value) Value {
	return Value{kind: List, items: items}
}

// Kind reports whether v is a string or a list.
func (v Value) Kind() Kind { return v.kind }

// Bytes returns the content of a string value, nil for lists.
func (v Value) Bytes() []byte { return v.str }

// Items returns the items of a list value, nil for strings.
func (v Value) Items() []Value { return v.items }

// RLPValue implements Valuer.
func (v Value) RLPValue() Value { return v }

// Len returns the number of bytes of a string or the number of items of a list.
func (v Value) Len() int {
	if v.kind == List {
		return len(v.items)
	}
	return len(v.str)
}

// String renders v for debugging, e.g. [0x01, [], 0x].
func (v Value) String() string {
	var sb strings.Builder
	v.format(&sb)
	return sb.String()
}

func (v Value) format(sb *strings.Builder) {
	if v.kind != List {
		sb.WriteString(hexutil.Encode(v.str))
		return
	}
	sb.WriteByte('[')
	for i, item := range v.items {
		if i > 0 {
			sb.WriteString(", ")
		}
		item.format(sb)
	}
	sb.WriteByte(']')
}
