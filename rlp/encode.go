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

var (
	// Common encoded values.

	// EmptyString is the encoding of an empty string.
	EmptyString = []byte{0x80}
	// EmptyList is the encoding of an empty list.
	EmptyList = []byte{0xC0}
)

// Encode returns the RLP encoding of v. The result is freshly allocated.
func Encode(v Value) []byte {
	w := newEncBuffer()
	w.writeValue(v)
	return w.makeBytes()
}

// AppendEncoded appends the RLP encoding of v to dst and returns the
// extended buffer.
func AppendEncoded(dst []byte, v Value) []byte {
	w := newEncBuffer()
	w.writeValue(v)
	return w.appendTo(dst)
}

// EncodedSize returns the length of the encoding of v without producing it.
func EncodedSize(v Value) int {
	if v.kind != List {
		if len(v.str) == 1 && v.str[0] <= 0x7F {
			return 1
		}
		return headsize(uint64(len(v.str))) + len(v.str)
	}
	var payload int
	for _, item := range v.items {
		payload += EncodedSize(item)
	}
	return headsize(uint64(payload)) + payload
}

// encBuffer collects string data and list headers separately. Lists are
// opened with list and closed with listEnd; the header of a list is only
// known once all of its items have been written, so headers are spliced in
// when the output is assembled.
type encBuffer struct {
	str     []byte     // string data, contains everything except list headers
	lheads  []listhead // all list headers
	lhsize  int        // sum of sizes of all encoded list headers
	sizebuf [9]byte    // auxiliary buffer for uint encoding
}

type listhead struct {
	offset int // index of this header in string data
	size   int // total size of encoded data (including list headers)
}

func newEncBuffer() *encBuffer {
	return &encBuffer{str: make([]byte, 0, 64)}
}

// encode writes head to the given buffer, which must be at least
// 9 bytes long. It returns the encoded bytes.
func (head *listhead) encode(buf []byte) []byte {
	return buf[:puthead(buf, 0xC0, 0xF7, uint64(head.size))]
}

// headsize returns the size of a list or string header
// for a value of the given size.
func headsize(size uint64) int {
	if size < 56 {
		return 1
	}
	return 1 + intsize(size)
}

// puthead writes a list or string header to buf.
// buf must be at least 9 bytes long.
func puthead(buf []byte, smalltag, largetag byte, size uint64) int {
	if size < 56 {
		buf[0] = smalltag + byte(size)
		return 1
	}
	sizesize := putint(buf[1:], size)
	buf[0] = largetag + byte(sizesize)
	return sizesize + 1
}

// putint writes i to the beginning of b in big endian byte
// order, using the least number of bytes needed to represent i.
func putint(b []byte, i uint64) (size int) {
	size = intsize(i)
	for pos := size - 1; pos >= 0; pos-- {
		b[pos] = byte(i)
		i >>= 8
	}
	return size
}

// intsize computes the minimum number of bytes required to store i.
func intsize(i uint64) (size int) {
	for size = 1; ; size++ {
		if i >>= 8; i == 0 {
			return size
		}
	}
}

func (w *encBuffer) size() int {
	return len(w.str) + w.lhsize
}

func (w *encBuffer) makeBytes() []byte {
	out := make([]byte, w.size())
	w.copyTo(out)
	return out
}

func (w *encBuffer) appendTo(dst []byte) []byte {
	size := w.size()
	if cap(dst)-len(dst) < size {
		grown := make([]byte, len(dst), len(dst)+size)
		copy(grown, dst)
		dst = grown
	}
	out := dst[:len(dst)+size]
	w.copyTo(out[len(dst):])
	return out
}

func (w *encBuffer) copyTo(dst []byte) {
	strpos := 0
	pos := 0
	for _, head := range w.lheads {
		// write string data before header
		n := copy(dst[pos:], w.str[strpos:head.offset])
		pos += n
		strpos += n
		// write the header
		enc := head.encode(dst[pos:])
		pos += len(enc)
	}
	// copy string data after the last list header
	copy(dst[pos:], w.str[strpos:])
}

// list starts a list and returns the index of its header.
func (w *encBuffer) list() int {
	w.lheads = append(w.lheads, listhead{offset: len(w.str), size: w.lhsize})
	return len(w.lheads) - 1
}

// listEnd closes the list opened at index. Everything written since then,
// nested headers included, is its payload.
func (w *encBuffer) listEnd(index int) {
	lh := &w.lheads[index]
	lh.size = w.size() - lh.offset - lh.size
	if lh.size < 56 {
		w.lhsize++ // length encoded into kind tag
	} else {
		w.lhsize += 1 + intsize(uint64(lh.size))
	}
}

func (w *encBuffer) writeValue(v Value) {
	if v.kind != List {
		w.writeBytes(v.str)
		return
	}
	if len(v.items) == 0 {
		w.str = append(w.str, 0xC0)
		return
	}
	lh := w.list()
	for _, item := range v.items {
		w.writeValue(item)
	}
	w.listEnd(lh)
}

func (w *encBuffer) writeBytes(b []byte) {
	if len(b) == 1 && b[0] <= 0x7F {
		// fits single byte, no string header
		w.str = append(w.str, b[0])
	} else {
		w.encodeStringHeader(len(b))
		w.str = append(w.str, b...)
	}
}

func (w *encBuffer) encodeStringHeader(size int) {
	if size < 56 {
		w.str = append(w.str, 0x80+byte(size))
	} else {
		sizesize := putint(w.sizebuf[1:], uint64(size))
		w.sizebuf[0] = 0xB7 + byte(sizesize)
		w.str = append(w.str, w.sizebuf[:sizesize+1]...)
	}
}
