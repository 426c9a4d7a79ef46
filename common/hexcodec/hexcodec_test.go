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

package hexcodec

import (
	"errors"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"
)

func TestDecodeQuantity(t *testing.T) {
	tests := []struct {
		in   string
		want []byte
	}{
		{"0x", []byte{}},
		{"0x0", []byte{}},
		{"0x00", []byte{}},
		{"0x0000", []byte{}},
		{"0x1", []byte{0x01}},
		{"0x7f", []byte{0x7f}},
		{"0x80", []byte{0x80}},
		{"0x400", []byte{0x04, 0x00}},
		{"0x0400", []byte{0x04, 0x00}},
		{"0x000400", []byte{0x04, 0x00}},
		{"0X1aB", []byte{0x01, 0xab}},
		{"0x" + strings.Repeat("f", 64), []byte(strings.Repeat("\xff", 32))},
	}
	for _, test := range tests {
		got, err := DecodeQuantity(test.in)
		require.NoError(t, err, "input %q", test.in)
		require.Equal(t, test.want, got, "input %q", test.in)
	}
}

func TestDecodeFixed(t *testing.T) {
	got, err := DecodeFixed("0x0000000000000001", NonceLength)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 1}, got)

	got, err = DecodeFixed("0x"+strings.Repeat("00", AddressLength), AddressLength)
	require.NoError(t, err)
	require.Len(t, got, AddressLength)

	got, err = DecodeBytes("0x")
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = DecodeBytes("0x00ff")
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0xff}, got)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		in    string
		fn    func(string) ([]byte, error)
		cause error
	}{
		{"", DecodeQuantity, hexutil.ErrMissingPrefix},
		{"400", DecodeQuantity, hexutil.ErrMissingPrefix},
		{"0xzz", DecodeQuantity, hexutil.ErrSyntax},
		{"0x4g0", DecodeQuantity, hexutil.ErrSyntax},
		{"abcd", DecodeBytes, hexutil.ErrMissingPrefix},
		{"0x123", DecodeBytes, hexutil.ErrOddLength},
		{"0xgg", DecodeBytes, hexutil.ErrSyntax},
	}
	for _, test := range tests {
		_, err := test.fn(test.in)
		require.Error(t, err, "input %q", test.in)
		require.True(t, errors.Is(err, ErrMalformedHex), "input %q: %v", test.in, err)
		require.True(t, errors.Is(err, test.cause), "input %q: %v", test.in, err)
		require.False(t, errors.Is(err, ErrWidthMismatch))

		var mhe *MalformedHexError
		require.True(t, errors.As(err, &mhe))
		require.Equal(t, test.in, mhe.Input)
	}
}

func TestDecodeFixedWidth(t *testing.T) {
	_, err := DecodeFixed("0x0102", HashLength)
	require.True(t, errors.Is(err, ErrWidthMismatch), "%v", err)
	require.False(t, errors.Is(err, ErrMalformedHex))

	var we *WidthError
	require.True(t, errors.As(err, &we))
	require.Equal(t, HashLength, we.Want)
	require.Equal(t, 2, we.Got)

	// leading zeros count towards the width
	_, err = DecodeFixed("0x"+strings.Repeat("00", BloomLength+1), BloomLength)
	require.True(t, errors.Is(err, ErrWidthMismatch))
	require.Contains(t, err.Error(), "...")
}

func TestDecodeUint64(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
	}{
		{"0x", 0},
		{"0x0", 0},
		{"0x2a", 42},
		{"0x00000400", 1024},
		{"0xfffffffffffffff", 0xfffffffffffffff},
		{"0xffffffffffffffff", 0xffffffffffffffff},
		{"0x00ffffffffffffffff", 0xffffffffffffffff},
	}
	for _, test := range tests {
		got, err := DecodeUint64(test.in)
		require.NoError(t, err, test.in)
		require.Equal(t, test.want, got, test.in)
	}

	_, err := DecodeUint64("0x10000000000000000")
	require.True(t, errors.Is(err, ErrWidthMismatch), "%v", err)
	require.Equal(t, &WidthError{Input: "0x10000000000000000", Want: 8, Got: 9}, err)

	_, err = DecodeUint64("0xg1")
	require.True(t, errors.Is(err, ErrMalformedHex), "%v", err)
}
