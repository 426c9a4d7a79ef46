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

// Package hexcodec turns the 0x-prefixed hex strings found in JSON-RPC block
// objects into the canonical byte strings that get RLP encoded.
//
// Three readings exist. A quantity is an unsigned integer: leading zero bytes
// are dropped and zero becomes the empty string. Fixed bytes (hashes,
// addresses, blooms, nonces) keep every byte and may be held to an exact
// width. Variable bytes (extra data, call input) are taken as they are.
package hexcodec

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Widths of the fixed-size values in a block.
const (
	HashLength    = common.HashLength
	AddressLength = common.AddressLength
	BloomLength   = 256
	NonceLength   = 8
)

var (
	// ErrMalformedHex is matched by every *MalformedHexError.
	ErrMalformedHex = errors.New("malformed hex")
	// ErrWidthMismatch is matched by every *WidthError.
	ErrWidthMismatch = errors.New("hex width mismatch")
)

// MalformedHexError is returned for input that is not 0x-prefixed hex.
// Err holds the hexutil error describing the problem.
type MalformedHexError struct {
	Input string
	Err   error
}

func (e *MalformedHexError) Error() string {
	return fmt.Sprintf("malformed hex %q: %v", shorten(e.Input), e.Err)
}

func (e *MalformedHexError) Is(target error) bool { return target == ErrMalformedHex }

func (e *MalformedHexError) Unwrap() error { return e.Err }

// WidthError is returned when fixed-size input decodes to the wrong length.
type WidthError struct {
	Input string
	Want  int
	Got   int
}

func (e *WidthError) Error() string {
	return fmt.Sprintf("hex %q has %d bytes, want %d", shorten(e.Input), e.Got, e.Want)
}

func (e *WidthError) Is(target error) bool { return target == ErrWidthMismatch }

// DecodeQuantity decodes an unsigned integer. An odd number of digits is
// read as if a leading zero nibble were present. The result has no leading
// zero bytes, so zero (including a bare "0x") yields an empty slice.
func DecodeQuantity(s string) ([]byte, error) {
	if !has0xPrefix(s) {
		return nil, malformed(s, hexutil.ErrMissingPrefix)
	}
	input := s
	if len(s)%2 == 1 {
		input = "0x0" + s[2:]
	}
	b, err := hexutil.Decode(input)
	if err != nil {
		return nil, malformed(s, err)
	}
	return trimLeftZeroes(b), nil
}

// DecodeUint64 decodes a quantity that must fit in 64 bits. Larger values
// fail with a *WidthError.
func DecodeUint64(s string) (uint64, error) {
	b, err := DecodeQuantity(s)
	if err != nil {
		return 0, err
	}
	if len(b) > 8 {
		return 0, &WidthError{Input: s, Want: 8, Got: len(b)}
	}
	var x uint64
	for _, c := range b {
		x = x<<8 | uint64(c)
	}
	return x, nil
}

// DecodeFixed decodes a fixed-size byte string, keeping leading zeros. The
// digit count must be even. If size is positive the result must be exactly
// size bytes long.
func DecodeFixed(s string, size int) ([]byte, error) {
	if !has0xPrefix(s) {
		return nil, malformed(s, hexutil.ErrMissingPrefix)
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, malformed(s, err)
	}
	if size > 0 && len(b) != size {
		return nil, &WidthError{Input: s, Want: size, Got: len(b)}
	}
	return b, nil
}

// DecodeBytes decodes a variable-length byte string.
func DecodeBytes(s string) ([]byte, error) {
	return DecodeFixed(s, 0)
}

func malformed(s string, err error) error {
	return &MalformedHexError{Input: s, Err: err}
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

func trimLeftZeroes(b []byte) []byte {
	for i, v := range b {
		if v != 0 {
			return b[i:]
		}
	}
	return b[len(b):]
}

// shorten keeps error messages readable for blooms and call data.
func shorten(s string) string {
	if len(s) <= 24 {
		return s
	}
	return s[:10] + "..." + s[len(s)-8:]
}
