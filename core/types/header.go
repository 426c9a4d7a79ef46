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

package types

import (
	"fmt"
	"math/big"

	"github.com/PigCharid/blockrlp/common/hexcodec"
	"github.com/PigCharid/blockrlp/rlp"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// FieldKind tells how the hex string of a field becomes bytes.
type FieldKind uint8

const (
	Quantity FieldKind = iota // unsigned integer, minimal big endian
	Fixed                     // fixed width, leading zeros kept
	Bytes                     // variable length
)

func (k FieldKind) String() string {
	switch k {
	case Quantity:
		return "quantity"
	case Fixed:
		return "fixed"
	case Bytes:
		return "bytes"
	default:
		return fmt.Sprintf("FieldKind(%d)", uint8(k))
	}
}

// decode reads s according to the kind. size is the width of fixed fields.
func (k FieldKind) decode(s string, size int) ([]byte, error) {
	switch k {
	case Quantity:
		return hexcodec.DecodeQuantity(s)
	case Fixed:
		return hexcodec.DecodeFixed(s, size)
	default:
		return hexcodec.DecodeBytes(s)
	}
}

// HeaderField describes one slot of the header list.
type HeaderField struct {
	Name string
	Kind FieldKind
	Size int // byte width of fixed fields, zero otherwise
}

// HeaderFieldCount is the number of items in an encoded header.
const HeaderFieldCount = 20

// Header field indices.
const (
	ParentHashIndex = iota
	UncleHashIndex
	MinerIndex
	StateRootIndex
	TransactionsRootIndex
	ReceiptsRootIndex
	LogsBloomIndex
	DifficultyIndex
	NumberIndex
	GasLimitIndex
	GasUsedIndex
	TimestampIndex
	ExtraDataIndex
	MixHashIndex
	NonceIndex
	BaseFeePerGasIndex
	WithdrawalsRootIndex
	BlobGasUsedIndex
	ExcessBlobGasIndex
	ParentBeaconBlockRootIndex
)

var headerFields = [HeaderFieldCount]HeaderField{
	{"parentHash", Fixed, hexcodec.HashLength},
	{"sha3Uncles", Fixed, hexcodec.HashLength},
	{"miner", Fixed, hexcodec.AddressLength},
	{"stateRoot", Fixed, hexcodec.HashLength},
	{"transactionsRoot", Fixed, hexcodec.HashLength},
	{"receiptsRoot", Fixed, hexcodec.HashLength},
	{"logsBloom", Fixed, hexcodec.BloomLength},
	{"difficulty", Quantity, 0},
	{"number", Quantity, 0},
	{"gasLimit", Quantity, 0},
	{"gasUsed", Quantity, 0},
	{"timestamp", Quantity, 0},
	{"extraData", Bytes, 0},
	{"mixHash", Fixed, hexcodec.HashLength},
	{"nonce", Fixed, hexcodec.NonceLength},
	{"baseFeePerGas", Quantity, 0},
	{"withdrawalsRoot", Fixed, hexcodec.HashLength},
	{"blobGasUsed", Quantity, 0},
	{"excessBlobGas", Quantity, 0},
	{"parentBeaconBlockRoot", Fixed, hexcodec.HashLength},
}

// HeaderFields returns the layout of the header list, in encoding order.
func HeaderFields() []HeaderField {
	fields := make([]HeaderField, HeaderFieldCount)
	copy(fields, headerFields[:])
	return fields
}

// Header is a block header normalized to canonical bytes.
type Header struct {
	fields [HeaderFieldCount][]byte
}

// NewHeader normalizes the header fields of rec. Every field is required.
func NewHeader(rec *RPCHeader) (*Header, error) {
	return newHeader(rec, "header")
}

func newHeader(rec *RPCHeader, record string) (*Header, error) {
	h := new(Header)
	for i, v := range rec.values() {
		f := headerFields[i]
		if v == nil {
			return nil, &MissingFieldError{Record: record, Field: f.Name}
		}
		b, err := f.Kind.decode(*v, f.Size)
		if err != nil {
			return nil, fmt.Errorf("%s field %s: %w", record, f.Name, err)
		}
		h.fields[i] = b
	}
	return h, nil
}

// Field returns the canonical bytes of the field at index i.
func (h *Header) Field(i int) []byte {
	return h.fields[i]
}

// RLPValue returns the header as a list of its 20 fields.
func (h *Header) RLPValue() rlp.Value {
	items := make([]rlp.Value, HeaderFieldCount)
	for i, b := range h.fields {
		items[i] = rlp.Bytes(b)
	}
	return rlp.ListOf(items...)
}

// EncodeRLP returns the RLP encoding of the header.
func (h *Header) EncodeRLP() []byte {
	return rlp.Encode(h.RLPValue())
}

// Hash returns the keccak256 hash of the header's RLP encoding.
func (h *Header) Hash() common.Hash {
	return crypto.Keccak256Hash(h.EncodeRLP())
}

func (h *Header) Number() *big.Int {
	return new(big.Int).SetBytes(h.fields[NumberIndex])
}

func (h *Header) TransactionsRoot() common.Hash {
	return common.BytesToHash(h.fields[TransactionsRootIndex])
}

func (h *Header) WithdrawalsRoot() common.Hash {
	return common.BytesToHash(h.fields[WithdrawalsRootIndex])
}
