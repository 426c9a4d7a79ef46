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

package rlp_test

import (
	"fmt"

	"github.com/PigCharid/blockrlp/rlp"
)

type MyCoolType struct {
	Name string
	a, b uint64
}

// RLPValue represents x as the RLP list [a, b], omitting the Name field.
func (x *MyCoolType) RLPValue() rlp.Value {
	return rlp.ListOf(rlp.Uint(x.a), rlp.Uint(x.b))
}

func ExampleValuer() {
	var t *MyCoolType // t is nil pointer to MyCoolType
	bytes, _ := rlp.EncodeToBytes(t)
	fmt.Printf("%v → %X\n", t, bytes)

	t = &MyCoolType{Name: "foobar", a: 5, b: 6}
	bytes, _ = rlp.EncodeToBytes(t)
	fmt.Printf("%v → %X\n", t, bytes)

	// Output:
	// <nil> → C0
	// &{foobar 5 6} → C20506
}

func ExampleEncode() {
	v := rlp.ListOf(rlp.Bytes([]byte("cat")), rlp.Bytes([]byte("dog")))
	fmt.Printf("%v → %X\n", v, rlp.Encode(v))

	// Output:
	// [0x636174, 0x646f67] → C88363617483646F67
}
