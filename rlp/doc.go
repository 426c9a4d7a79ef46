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

/*
Package rlp implements the encoding half of the RLP serialization format.

The purpose of RLP (Recursive Length Prefix) is to encode arbitrarily nested arrays of
binary data. RLP only encodes structure; encoding atomic data types (integers, hashes,
addresses) is left up to higher-order protocols. In Ethereum integers are represented
in big endian binary form with no leading zeroes, which makes the integer value zero
equivalent to the empty string.

Values

The encoder operates on Value, a tree whose nodes are either byte strings or lists of
values:

	rlp.ListOf(rlp.Bytes([]byte("cat")), rlp.Bytes([]byte("dog")))

Encode turns such a tree into bytes. Children are encoded before the prefix of their
parent list is computed, so the output of a list is its length prefix followed by the
concatenated encodings of its items. Encoding a Value tree cannot fail.

Encoding Rules

A byte string of length one whose only byte is below 0x80 is its own encoding.

Any other byte string of up to 55 bytes is prefixed with 0x80 plus its length. The
empty string therefore encodes as 0x80.

A byte string longer than 55 bytes is prefixed with 0xB7 plus the size of its length,
followed by the length as a minimal big endian integer.

A list whose payload (the concatenated item encodings) is at most 55 bytes is prefixed
with 0xC0 plus the payload size. The empty list encodes as 0xC0.

A longer list is prefixed with 0xF7 plus the size of the payload length, followed by
the payload length as a minimal big endian integer.

Go Values

EncodeToBytes accepts ordinary Go values and converts them to a Value tree first,
using reflection:

If the type implements the Valuer interface, RLPValue is called.

Unsigned integers, big.Int and uint256.Int values encode as integers: minimal big
endian bytes, zero being the empty string. Negative big.Int values are rejected.
Signed integers are not supported.

Booleans encode as the integers zero (false) and one (true).

Go strings, byte slices and byte arrays encode as byte strings.

Other slices and arrays encode as lists of their elements.

Struct values encode as a list of their exported fields, in declaration order. A field
tagged `rlp:"-"` is skipped.

A nil pointer to a struct, slice or array (unless the element type is byte) encodes as
the empty list. A nil pointer to any other type encodes as the empty string. A nil
interface value encodes as the empty list.

Floating point numbers, maps, channels and functions are not supported.

Package rlp does not decode. The only reading done anywhere in this module is of
length prefixes, in tests.
*/
package rlp
