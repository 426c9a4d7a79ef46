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

// Package trie implements an in-memory Merkle Patricia Trie, used to derive
// the transactions and withdrawals roots of a block.
package trie

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// EmptyRoot is the known root hash of an empty trie.
var EmptyRoot = common.HexToHash("56e81f171bcc55a6ff8345e692c0f86e5b48e01b996cadc001622fb5e363b421")

// Trie is a Merkle Patricia Trie held entirely in memory.
// The zero value is an empty trie.
//
// Trie is not safe for concurrent use.
type Trie struct {
	root node

	// Keep track of the number leaves which have been inserted since the last
	// hashing operation. This number will not directly map to the number of
	// actually unhashed nodes
	unhashed int
}

// New creates an empty trie.
func New() *Trie {
	return new(Trie)
}

// newFlag returns the cache flag value for a newly created node.
func (t *Trie) newFlag() nodeFlag {
	return nodeFlag{dirty: true}
}

// Get returns the value for key stored in the trie.
// The value bytes must not be modified by the caller.
func (t *Trie) Get(key []byte) []byte {
	return t.get(t.root, keybytesToHex(key), 0)
}

func (t *Trie) get(origNode node, key []byte, pos int) []byte {
	switch n := (origNode).(type) {
	case nil:
		return nil
	case valueNode:
		return n
	case *shortNode:
		if len(key)-pos < len(n.Key) || !bytes.Equal(n.Key, key[pos:pos+len(n.Key)]) {
			// key not found in trie
			return nil
		}
		return t.get(n.Val, key, pos+len(n.Key))
	case *fullNode:
		return t.get(n.Children[key[pos]], key, pos+1)
	default:
		panic(fmt.Sprintf("%T: invalid node: %v", origNode, origNode))
	}
}

// Update associates key with value in the trie. Subsequent calls to
// Get will return value. If value has length zero, any existing value
// is deleted from the trie and calls to Get will return nil.
//
// The value bytes must not be modified by the caller while they are
// stored in the trie.
func (t *Trie) Update(key, value []byte) {
	t.unhashed++
	k := keybytesToHex(key)
	if len(value) != 0 {
		_, t.root = t.insert(t.root, k, valueNode(value))
	} else {
		_, t.root = t.delete(t.root, k)
	}
}

// Delete removes any existing value for key from the trie.
func (t *Trie) Delete(key []byte) {
	t.unhashed++
	_, t.root = t.delete(t.root, keybytesToHex(key))
}

// insert adds value under key below n and reports whether anything changed.
func (t *Trie) insert(n node, key []byte, value node) (bool, node) {
	if len(key) == 0 {
		if v, ok := n.(valueNode); ok {
			return !bytes.Equal(v, value.(valueNode)), value
		}
		return true, value
	}
	switch n := n.(type) {
	case *shortNode:
		matchlen := prefixLen(key, n.Key)
		// If the whole key matches, keep this short node as is
		// and only update the value.
		if matchlen == len(n.Key) {
			dirty, nn := t.insert(n.Val, key[matchlen:], value)
			if !dirty {
				return false, n
			}
			return true, &shortNode{n.Key, nn, t.newFlag()}
		}
		// Otherwise branch out at the index where they differ.
		branch := &fullNode{flags: t.newFlag()}
		_, branch.Children[n.Key[matchlen]] = t.insert(nil, n.Key[matchlen+1:], n.Val)
		_, branch.Children[key[matchlen]] = t.insert(nil, key[matchlen+1:], value)
		// Replace this shortNode with the branch if it occurs at index 0.
		if matchlen == 0 {
			return true, branch
		}
		// Replace it with a short node leading up to the branch.
		return true, &shortNode{key[:matchlen], branch, t.newFlag()}

	case *fullNode:
		dirty, nn := t.insert(n.Children[key[0]], key[1:], value)
		if !dirty {
			return false, n
		}
		n = n.copy()
		n.flags = t.newFlag()
		n.Children[key[0]] = nn
		return true, n

	case nil:
		return true, &shortNode{key, value, t.newFlag()}

	default:
		panic(fmt.Sprintf("%T: invalid node: %v", n, n))
	}
}

// delete returns the new root of the trie with key deleted.
// It reduces the trie to minimal form by simplifying
// nodes on the way up after deleting recursively.
func (t *Trie) delete(n node, key []byte) (bool, node) {
	switch n := n.(type) {
	case *shortNode:
		matchlen := prefixLen(key, n.Key)
		if matchlen < len(n.Key) {
			return false, n // don't replace n on mismatch
		}
		if matchlen == len(key) {
			return true, nil // remove n entirely for whole matches
		}
		// The key is longer than n.Key. Remove the remaining suffix
		// from the subtrie. Child can never be nil here since the
		// subtrie must contain at least two other values with keys
		// longer than n.Key.
		dirty, child := t.delete(n.Val, key[len(n.Key):])
		if !dirty {
			return false, n
		}
		switch child := child.(type) {
		case *shortNode:
			// Deleting from the subtrie reduced it to another
			// short node. Merge the nodes to avoid creating a
			// shortNode{..., shortNode{...}}. Use concat (which
			// always creates a new slice) instead of append to
			// avoid modifying n.Key since it might be shared with
			// other nodes.
			return true, &shortNode{concat(n.Key, child.Key...), child.Val, t.newFlag()}
		default:
			return true, &shortNode{n.Key, child, t.newFlag()}
		}

	case *fullNode:
		dirty, nn := t.delete(n.Children[key[0]], key[1:])
		if !dirty {
			return false, n
		}
		n = n.copy()
		n.flags = t.newFlag()
		n.Children[key[0]] = nn

		// Because n is a full node, it must've contained at least two children
		// before the delete operation. If the new child value is non-nil, n still
		// has at least two children after the deletion, and cannot be reduced to
		// a short node.
		if nn != nil {
			return true, n
		}
		// Reduction:
		// Check how many non-nil entries are left after deleting and
		// reduce the full node to a short node if only one entry is
		// left. Since n must've contained at least two children
		// before deletion (otherwise it would not be a full node) n
		// can never be reduced to nil.
		//
		// When the loop is done, pos contains the index of the single
		// value that is left in n or -2 if n contains at least two
		// values.
		pos := -1
		for i, cld := range &n.Children {
			if cld != nil {
				if pos == -1 {
					pos = i
				} else {
					pos = -2
					break
				}
			}
		}
		if pos >= 0 {
			if pos != 16 {
				// If the remaining entry is a short node, it replaces
				// n and its key gets the missing nibble tacked to the
				// front. This avoids creating an invalid
				// shortNode{..., shortNode{...}}.
				if cnode, ok := n.Children[pos].(*shortNode); ok {
					k := append([]byte{byte(pos)}, cnode.Key...)
					return true, &shortNode{k, cnode.Val, t.newFlag()}
				}
			}
			// Otherwise, n is replaced by a one-nibble short node
			// containing the child.
			return true, &shortNode{[]byte{byte(pos)}, n.Children[pos], t.newFlag()}
		}
		// n still contains at least two values and cannot be reduced.
		return true, n

	case valueNode:
		return true, nil

	case nil:
		return false, nil

	default:
		panic(fmt.Sprintf("%T: invalid node: %v (%v)", n, n, key))
	}
}

func concat(s1 []byte, s2 ...byte) []byte {
	r := make([]byte, len(s1)+len(s2))
	copy(r, s1)
	copy(r[len(s1):], s2)
	return r
}

// Hash returns the root hash of the trie. The root is always hashed, even
// when its encoding is shorter than 32 bytes.
func (t *Trie) Hash() common.Hash {
	hash, cached := t.hashRoot()
	t.root = cached
	return common.BytesToHash(hash.(hashNode))
}

// hashRoot calculates the root hash of the given trie
func (t *Trie) hashRoot() (node, node) {
	if t.root == nil {
		return hashNode(EmptyRoot.Bytes()), nil
	}
	// If the number of changes is below 100, we let one thread handle it
	h := newHasher(t.unhashed >= 100)
	defer returnHasherToPool(h)

	hashed, cached := h.hash(t.root, true)
	t.unhashed = 0
	return hashed, cached
}

// Reset drops the referenced root node and cleans all internal state.
func (t *Trie) Reset() {
	t.root = nil
	t.unhashed = 0
}
