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

package trie

import (
	"github.com/PigCharid/blockrlp/rlp"
	"github.com/ethereum/go-ethereum/common"
)

// DeriveListRoot computes the root of the trie mapping rlp(i) to items[i],
// as done for the transactions and withdrawals of a block. Items must be
// non-empty.
func DeriveListRoot(items [][]byte) common.Hash {
	t := New()
	var keybuf []byte
	for i, item := range items {
		keybuf = rlp.AppendEncoded(keybuf[:0], rlp.Uint(uint64(i)))
		t.Update(keybuf, item)
	}
	return t.Hash()
}
