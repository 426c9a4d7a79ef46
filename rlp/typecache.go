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
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
)

// typeinfo is an entry in the type cache.
type typeinfo struct {
	conv    converter
	convErr error // error from makeConverter
}

// converter turns a Go value into a Value tree.
type converter func(reflect.Value) (Value, error)

var theTC = newTypeCache()

type typeCache struct {
	cur atomic.Value
	// This lock synchronizes writers.
	mu   sync.Mutex
	next map[reflect.Type]*typeinfo
}

func newTypeCache() *typeCache {
	c := new(typeCache)
	c.cur.Store(make(map[reflect.Type]*typeinfo))
	return c
}

func cachedConverter(typ reflect.Type) (converter, error) {
	info := theTC.info(typ)
	return info.conv, info.convErr
}

func (c *typeCache) info(typ reflect.Type) *typeinfo {
	if info := c.cur.Load().(map[reflect.Type]*typeinfo)[typ]; info != nil {
		return info
	}
	// Not in the cache, need to generate info for this type.
	return c.generate(typ)
}

func (c *typeCache) generate(typ reflect.Type) *typeinfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur := c.cur.Load().(map[reflect.Type]*typeinfo)
	if info := cur[typ]; info != nil {
		return info
	}

	// Copy cur to next.
	c.next = make(map[reflect.Type]*typeinfo, len(cur)+1)
	for k, v := range cur {
		c.next[k] = v
	}

	// Generate.
	info := c.infoWhileGenerating(typ)

	// next -> cur
	c.cur.Store(c.next)
	c.next = nil
	return info
}

func (c *typeCache) infoWhileGenerating(typ reflect.Type) *typeinfo {
	if info := c.next[typ]; info != nil {
		return info
	}
	// Put a dummy value into the cache before generating.
	// If the generator tries to lookup itself, it will get
	// the dummy value and won't call itself recursively.
	info := new(typeinfo)
	c.next[typ] = info
	info.conv, info.convErr = makeConverter(typ)
	return info
}

type field struct {
	index int
	info  *typeinfo
}

// structFields resolves the typeinfo of all encoded fields in a struct type.
func structFields(typ reflect.Type) (fields []field, err error) {
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if sf.PkgPath != "" {
			continue // unexported
		}
		switch tag := sf.Tag.Get("rlp"); tag {
		case "-":
			continue
		case "":
		default:
			return nil, structFieldError{typ, i, fmt.Errorf("rlp: unknown struct tag %q", tag)}
		}
		info := theTC.infoWhileGenerating(sf.Type)
		if info.convErr != nil {
			return nil, structFieldError{typ, i, info.convErr}
		}
		fields = append(fields, field{i, info})
	}
	return fields, nil
}

type structFieldError struct {
	typ   reflect.Type
	field int
	err   error
}

func (e structFieldError) Error() string {
	return fmt.Sprintf("%v (struct field %v.%s)", e.err, e.typ, e.typ.Field(e.field).Name)
}

func (e structFieldError) Unwrap() error { return e.err }

// typeNilKind gives the RLP value kind for nil pointers to 'typ'.
func typeNilKind(typ reflect.Type) Kind {
	switch k := typ.Kind(); {
	case k == reflect.Struct && typ != bigInt && typ != u256Int:
		return List
	case (k == reflect.Slice || k == reflect.Array) && !isByte(typ.Elem()):
		return List
	default:
		return String
	}
}

func isUint(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isByte(typ reflect.Type) bool {
	return typ.Kind() == reflect.Uint8 && !typ.Implements(valuerInterface)
}
