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
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/core/types"
	gethtrie "github.com/ethereum/go-ethereum/trie"
	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"
)

// rawList feeds pre-encoded items to go-ethereum's DeriveSha.
type rawList [][]byte

func (l rawList) Len() int { return len(l) }

func (l rawList) EncodeIndex(i int, w *bytes.Buffer) { w.Write(l[i]) }

func TestDeriveListRootEmpty(t *testing.T) {
	require.Equal(t, EmptyRoot, DeriveListRoot(nil))
	require.Equal(t, types.EmptyRootHash, DeriveListRoot([][]byte{}))
}

func TestDeriveListRootMatchesGeth(t *testing.T) {
	f := fuzz.NewWithSeed(3).NilChance(0).NumElements(1, 200)
	// sizes around the 0x7f/0x80 key boundary exercise one and two byte keys
	for _, n := range []int{1, 2, 3, 16, 17, 127, 128, 129, 300} {
		items := make([][]byte, n)
		for i := range items {
			f.Fuzz(&items[i])
		}
		want := types.DeriveSha(rawList(items), gethtrie.NewStackTrie(nil))
		require.Equal(t, want, DeriveListRoot(items), "%d items", n)
	}
}

// A single small item yields a root node shorter than 32 bytes, which is
// still hashed.
func TestDeriveListRootSmallRoot(t *testing.T) {
	items := [][]byte{{0x01}}
	want := types.DeriveSha(rawList(items), gethtrie.NewStackTrie(nil))
	require.Equal(t, want, DeriveListRoot(items))
}
