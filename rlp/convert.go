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
	"errors"
	"fmt"
	"math/big"
	"reflect"

	"github.com/holiman/uint256"
)

// ErrNegativeBigInt is returned when a negative big.Int is encoded.
var ErrNegativeBigInt = errors.New("rlp: cannot encode negative big.Int")

var (
	valuerInterface = reflect.TypeOf(new(Valuer)).Elem()
	bigInt          = reflect.TypeOf(big.Int{})
	u256Int         = reflect.TypeOf(uint256.Int{})
)

// EncodeToBytes returns the RLP encoding of val. See the package
// documentation for the encoding rules of Go values.
func EncodeToBytes(val interface{}) ([]byte, error) {
	v, err := ToValue(val)
	if err != nil {
		return nil, err
	}
	return Encode(v), nil
}

// ToValue converts val to a Value tree without encoding it.
func ToValue(val interface{}) (Value, error) {
	if val == nil {
		return ListOf(), nil
	}
	rval := reflect.ValueOf(val)
	conv, err := cachedConverter(rval.Type())
	if err != nil {
		return Value{}, err
	}
	return conv(rval)
}

// makeConverter creates a converter function for the given type.
func makeConverter(typ reflect.Type) (converter, error) {
	kind := typ.Kind()
	switch {
	case kind == reflect.Interface:
		return convInterface, nil
	case typ.Implements(valuerInterface):
		return makeValuerConverter(typ), nil
	case kind != reflect.Ptr && reflect.PtrTo(typ).Implements(valuerInterface):
		return makeAddrValuerConverter(typ), nil
	case typ == reflect.PtrTo(bigInt):
		return convBigIntPtr, nil
	case typ == bigInt:
		return convBigIntNoPtr, nil
	case typ == reflect.PtrTo(u256Int):
		return convU256Ptr, nil
	case typ == u256Int:
		return convU256NoPtr, nil
	case kind == reflect.Ptr:
		return makePtrConverter(typ)
	case isUint(kind):
		return convUint, nil
	case kind == reflect.Bool:
		return convBool, nil
	case kind == reflect.String:
		return convString, nil
	case kind == reflect.Slice && isByte(typ.Elem()):
		return convBytes, nil
	case kind == reflect.Array && isByte(typ.Elem()):
		return makeByteArrayConverter(typ), nil
	case kind == reflect.Slice || kind == reflect.Array:
		return makeSliceConverter(typ)
	case kind == reflect.Struct:
		return makeStructConverter(typ)
	default:
		return nil, fmt.Errorf("rlp: type %v is not RLP-serializable", typ)
	}
}

// Uint returns the integer encoding of i: minimal big endian bytes, with
// zero being the empty string.
func Uint(i uint64) Value {
	if i == 0 {
		return Bytes(nil)
	}
	var buf [8]byte
	n := putint(buf[:], i)
	return Bytes(buf[:n])
}

func convUint(val reflect.Value) (Value, error) {
	return Uint(val.Uint()), nil
}

func convBool(val reflect.Value) (Value, error) {
	if val.Bool() {
		return Bytes([]byte{0x01}), nil
	}
	return Bytes(nil), nil
}

func convString(val reflect.Value) (Value, error) {
	return Bytes([]byte(val.String())), nil
}

func convBytes(val reflect.Value) (Value, error) {
	return Bytes(val.Bytes()), nil
}

func makeByteArrayConverter(typ reflect.Type) converter {
	return func(val reflect.Value) (Value, error) {
		b := make([]byte, typ.Len())
		reflect.Copy(reflect.ValueOf(b), val)
		return Bytes(b), nil
	}
}

func convBigIntPtr(val reflect.Value) (Value, error) {
	ptr := val.Interface().(*big.Int)
	if ptr == nil {
		return Bytes(nil), nil
	}
	if ptr.Sign() == -1 {
		return Value{}, ErrNegativeBigInt
	}
	return Bytes(ptr.Bytes()), nil
}

func convBigIntNoPtr(val reflect.Value) (Value, error) {
	i := val.Interface().(big.Int)
	if i.Sign() == -1 {
		return Value{}, ErrNegativeBigInt
	}
	return Bytes(i.Bytes()), nil
}

func convU256Ptr(val reflect.Value) (Value, error) {
	ptr := val.Interface().(*uint256.Int)
	if ptr == nil {
		return Bytes(nil), nil
	}
	return convU256(ptr), nil
}

func convU256NoPtr(val reflect.Value) (Value, error) {
	i := val.Interface().(uint256.Int)
	return convU256(&i), nil
}

func convU256(i *uint256.Int) Value {
	if i.IsZero() {
		return Bytes(nil)
	}
	b := i.Bytes32()
	n := 32 - i.ByteLen()
	return Bytes(b[n:])
}

func makeSliceConverter(typ reflect.Type) (converter, error) {
	etypeinfo := theTC.infoWhileGenerating(typ.Elem())
	if etypeinfo.convErr != nil {
		return nil, etypeinfo.convErr
	}
	conv := func(val reflect.Value) (Value, error) {
		items := make([]Value, val.Len())
		for i := range items {
			item, err := etypeinfo.conv(val.Index(i))
			if err != nil {
				return Value{}, err
			}
			items[i] = item
		}
		return ListOf(items...), nil
	}
	return conv, nil
}

func makeStructConverter(typ reflect.Type) (converter, error) {
	fields, err := structFields(typ)
	if err != nil {
		return nil, err
	}
	conv := func(val reflect.Value) (Value, error) {
		items := make([]Value, len(fields))
		for i, f := range fields {
			item, err := f.info.conv(val.Field(f.index))
			if err != nil {
				return Value{}, err
			}
			items[i] = item
		}
		return ListOf(items...), nil
	}
	return conv, nil
}

func makePtrConverter(typ reflect.Type) (converter, error) {
	info := theTC.infoWhileGenerating(typ.Elem())
	if info.convErr != nil {
		return nil, info.convErr
	}
	nilKind := typeNilKind(typ.Elem())
	conv := func(val reflect.Value) (Value, error) {
		if val.IsNil() {
			return nilValue(nilKind), nil
		}
		return info.conv(val.Elem())
	}
	return conv, nil
}

func makeValuerConverter(typ reflect.Type) converter {
	var nilKind Kind
	if typ.Kind() == reflect.Ptr {
		nilKind = typeNilKind(typ.Elem())
	}
	return func(val reflect.Value) (Value, error) {
		if typ.Kind() == reflect.Ptr && val.IsNil() {
			return nilValue(nilKind), nil
		}
		return val.Interface().(Valuer).RLPValue(), nil
	}
}

// makeAddrValuerConverter handles types whose RLPValue method has a pointer
// receiver. Non-addressable values are copied first.
func makeAddrValuerConverter(typ reflect.Type) converter {
	return func(val reflect.Value) (Value, error) {
		if !val.CanAddr() {
			cp := reflect.New(typ)
			cp.Elem().Set(val)
			val = cp.Elem()
		}
		return val.Addr().Interface().(Valuer).RLPValue(), nil
	}
}

func convInterface(val reflect.Value) (Value, error) {
	if val.IsNil() {
		return ListOf(), nil
	}
	eval := val.Elem()
	conv, err := cachedConverter(eval.Type())
	if err != nil {
		return Value{}, err
	}
	return conv(eval)
}

func nilValue(k Kind) Value {
	if k == List {
		return ListOf()
	}
	return Bytes(nil)
}
