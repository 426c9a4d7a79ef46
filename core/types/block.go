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

// Package types turns JSON-RPC block objects into their canonical RLP
// encoding.
//
// A block encodes as the list [header, transactions, uncles, withdrawals].
// The header is a list of 20 fields. Legacy transactions appear as lists,
// typed transactions as byte strings holding the type byte followed by the
// encoded payload. Empty transaction, uncle and withdrawal lists encode as
// 0xc0 and are never left out.
package types

import (
	"fmt"

	"github.com/PigCharid/blockrlp/common/hexcodec"
	"github.com/PigCharid/blockrlp/rlp"
	"github.com/PigCharid/blockrlp/trie"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Config selects how records outside the supported transaction layouts are
// treated.
type Config struct {
	// StrictTxShapes rejects typed transactions carrying fields that the
	// generic nine field layout cannot hold. When unset such transactions
	// are encoded in the generic layout and reported by ShapeWarnings.
	StrictTxShapes bool
}

// Block is a normalized block. It is immutable once built.
type Block struct {
	header       *Header
	transactions []TxEnvelope
	uncles       []*Header
	withdrawals  []rlp.Value

	hash     *common.Hash // hash given by the record, if any
	warnings []*UnsupportedTxShapeError
}

// NewBlock normalizes rec. It fails on the first field that is missing or
// malformed; no partial block is returned.
func NewBlock(rec *RPCBlock, cfg Config) (*Block, error) {
	header, err := NewHeader(&rec.RPCHeader)
	if err != nil {
		return nil, err
	}
	b := &Block{
		header:       header,
		transactions: make([]TxEnvelope, len(rec.Transactions)),
		uncles:       make([]*Header, len(rec.Uncles)),
		withdrawals:  make([]rlp.Value, len(rec.Withdrawals)),
	}
	if rec.Hash != nil {
		h, err := hexcodec.DecodeFixed(*rec.Hash, hexcodec.HashLength)
		if err != nil {
			return nil, fmt.Errorf("header field hash: %w", err)
		}
		hash := common.BytesToHash(h)
		b.hash = &hash
	}
	for i := range rec.Transactions {
		txrec := &rec.Transactions[i]
		tx, err := NewTransaction(txrec, i, cfg)
		if err != nil {
			return nil, err
		}
		if tx.Type() != LegacyTxType && tx.Type() != DepositTxType {
			if extra := txrec.extraFields(); len(extra) > 0 {
				b.warnings = append(b.warnings, &UnsupportedTxShapeError{Index: i, Type: *txrec.Type, Fields: extra})
			}
		}
		b.transactions[i] = tx
	}
	for i := range rec.Uncles {
		uncle, err := newHeader(&rec.Uncles[i].RPCHeader, fmt.Sprintf("uncle %d", i))
		if err != nil {
			return nil, err
		}
		b.uncles[i] = uncle
	}
	for i := range rec.Withdrawals {
		w, err := NewWithdrawal(&rec.Withdrawals[i], i)
		if err != nil {
			return nil, err
		}
		b.withdrawals[i] = w
	}
	return b, nil
}

// Serialize normalizes rec and returns the 0x-prefixed hex of its encoding.
func Serialize(rec *RPCBlock, cfg Config) (string, error) {
	b, err := NewBlock(rec, cfg)
	if err != nil {
		return "", err
	}
	return b.EncodeHex(), nil
}

func (b *Block) Header() *Header                           { return b.header }
func (b *Block) Transactions() []TxEnvelope                { return b.transactions }
func (b *Block) Uncles() []*Header                         { return b.uncles }
func (b *Block) Withdrawals() []rlp.Value                  { return b.withdrawals }
func (b *Block) Number() uint64                            { return b.header.Number().Uint64() }
func (b *Block) HeaderHash() common.Hash                   { return b.header.Hash() }
func (b *Block) ShapeWarnings() []*UnsupportedTxShapeError { return b.warnings }

// RecordHash returns the block hash carried by the record, if there was one.
func (b *Block) RecordHash() (common.Hash, bool) {
	if b.hash == nil {
		return common.Hash{}, false
	}
	return *b.hash, true
}

// RLPValue returns [header, transactions, uncles, withdrawals].
func (b *Block) RLPValue() rlp.Value {
	txs := make([]rlp.Value, len(b.transactions))
	for i, tx := range b.transactions {
		txs[i] = tx.RLPValue()
	}
	uncles := make([]rlp.Value, len(b.uncles))
	for i, u := range b.uncles {
		uncles[i] = u.RLPValue()
	}
	return rlp.ListOf(
		b.header.RLPValue(),
		rlp.ListOf(txs...),
		rlp.ListOf(uncles...),
		rlp.ListOf(b.withdrawals...),
	)
}

// EncodeRLP returns the RLP encoding of the block.
func (b *Block) EncodeRLP() []byte {
	return rlp.Encode(b.RLPValue())
}

// EncodeHex returns the encoding of the block as 0x-prefixed hex.
func (b *Block) EncodeHex() string {
	return hexutil.Encode(b.EncodeRLP())
}

// EncodedTransactions returns the canonical encoding of every transaction.
func (b *Block) EncodedTransactions() [][]byte {
	encs := make([][]byte, len(b.transactions))
	for i, tx := range b.transactions {
		encs[i] = tx.Encoded()
	}
	return encs
}

// DeriveTransactionsRoot computes the transactions root from the
// transactions of the block.
func (b *Block) DeriveTransactionsRoot() common.Hash {
	return trie.DeriveListRoot(b.EncodedTransactions())
}

// DeriveWithdrawalsRoot computes the withdrawals root from the
// withdrawals of the block.
func (b *Block) DeriveWithdrawalsRoot() common.Hash {
	encs := make([][]byte, len(b.withdrawals))
	for i, w := range b.withdrawals {
		encs[i] = rlp.Encode(w)
	}
	return trie.DeriveListRoot(encs)
}
