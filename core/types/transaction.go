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

	"github.com/PigCharid/blockrlp/common/hexcodec"
	"github.com/PigCharid/blockrlp/rlp"
)

// Transaction types.
const (
	LegacyTxType  = 0x00
	DepositTxType = 0x7e

	maxTxType = 0x7f
)

// depositDefaults are the values used for deposit fields missing from the
// record.
var depositDefaults = struct {
	Mint                  string
	SourceHash            string
	DepositReceiptVersion string
}{
	Mint:                  "0x0",
	SourceHash:            "0x",
	DepositReceiptVersion: "0x0",
}

// TxEnvelope is a transaction ready to be placed in a block: either a
// *LegacyTx or a *TypedTx.
type TxEnvelope interface {
	// Type returns the transaction type byte, LegacyTxType for legacy ones.
	Type() byte
	// RLPValue returns the item representing the transaction in the block's
	// transaction list.
	RLPValue() rlp.Value
	// Encoded returns the canonical encoding, as hashed into the
	// transactions root.
	Encoded() []byte

	txEnvelope()
}

// CommonTx holds the nine fields shared by every layout, normalized.
type CommonTx struct {
	Nonce    []byte
	GasPrice []byte
	Gas      []byte
	To       []byte // empty for contract creation
	Value    []byte
	Input    []byte
	V, R, S  []byte
}

func (tx *CommonTx) items() []rlp.Value {
	return []rlp.Value{
		rlp.Bytes(tx.Nonce),
		rlp.Bytes(tx.GasPrice),
		rlp.Bytes(tx.Gas),
		rlp.Bytes(tx.To),
		rlp.Bytes(tx.Value),
		rlp.Bytes(tx.Input),
		rlp.Bytes(tx.V),
		rlp.Bytes(tx.R),
		rlp.Bytes(tx.S),
	}
}

// LegacyTx is an untyped transaction, encoded as a plain list.
type LegacyTx struct {
	CommonTx
}

func (tx *LegacyTx) Type() byte { return LegacyTxType }

func (tx *LegacyTx) RLPValue() rlp.Value { return rlp.ListOf(tx.items()...) }

func (tx *LegacyTx) Encoded() []byte { return rlp.Encode(tx.RLPValue()) }

func (*LegacyTx) txEnvelope() {}

// DepositFields are the fields a deposit transaction appends to the common
// layout.
type DepositFields struct {
	Mint                  []byte
	SourceHash            []byte
	DepositReceiptVersion []byte
}

// TypedTx is an EIP-2718 envelope: the type byte followed by the encoding
// of the payload list. Deposit is set for DepositTxType only.
type TypedTx struct {
	TxType byte
	CommonTx
	Deposit *DepositFields
}

func (tx *TypedTx) Type() byte { return tx.TxType }

// Payload returns the list following the type byte.
func (tx *TypedTx) Payload() rlp.Value {
	items := tx.items()
	if d := tx.Deposit; d != nil {
		items = append(items, rlp.Bytes(d.Mint), rlp.Bytes(d.SourceHash), rlp.Bytes(d.DepositReceiptVersion))
	}
	return rlp.ListOf(items...)
}

// Encoded returns type ++ rlp(payload).
func (tx *TypedTx) Encoded() []byte {
	return rlp.AppendEncoded([]byte{tx.TxType}, tx.Payload())
}

// RLPValue returns the envelope as a byte string item.
func (tx *TypedTx) RLPValue() rlp.Value { return rlp.Bytes(tx.Encoded()) }

func (*TypedTx) txEnvelope() {}

type txField struct {
	name  string
	value *string
	kind  FieldKind
	size  int
	dst   *[]byte
}

// NewTransaction normalizes the transaction at position index of a block.
// The variant is chosen from the type field: absent, empty or zero means
// legacy, anything else up to 0x7f a typed envelope.
func NewTransaction(rec *RPCTransaction, index int, cfg Config) (TxEnvelope, error) {
	typ, err := txType(rec, index)
	if err != nil {
		return nil, err
	}
	var base CommonTx
	if err := decodeTxFields(index, base.fields(rec)); err != nil {
		return nil, err
	}
	if typ == LegacyTxType {
		return &LegacyTx{base}, nil
	}
	tx := &TypedTx{TxType: typ, CommonTx: base}
	if typ == DepositTxType {
		tx.Deposit, err = newDepositFields(rec, index)
		if err != nil {
			return nil, err
		}
		return tx, nil
	}
	if extra := rec.extraFields(); len(extra) > 0 && cfg.StrictTxShapes {
		return nil, &UnsupportedTxShapeError{Index: index, Type: *rec.Type, Fields: extra}
	}
	return tx, nil
}

func txType(rec *RPCTransaction, index int) (byte, error) {
	if rec.Type == nil || *rec.Type == "" {
		return LegacyTxType, nil
	}
	b, err := hexcodec.DecodeQuantity(*rec.Type)
	if err != nil {
		return 0, fmt.Errorf("transaction %d field type: %w", index, err)
	}
	switch {
	case len(b) == 0:
		return LegacyTxType, nil
	case len(b) > 1 || b[0] > maxTxType:
		return 0, &UnsupportedTxShapeError{Index: index, Type: *rec.Type}
	default:
		return b[0], nil
	}
}

func (tx *CommonTx) fields(rec *RPCTransaction) []txField {
	return []txField{
		{"nonce", rec.Nonce, Quantity, 0, &tx.Nonce},
		{"gasPrice", rec.GasPrice, Quantity, 0, &tx.GasPrice},
		{"gas", rec.Gas, Quantity, 0, &tx.Gas},
		{"to", rec.To, Fixed, hexcodec.AddressLength, &tx.To},
		{"value", rec.Value, Quantity, 0, &tx.Value},
		{"input", rec.Input, Bytes, 0, &tx.Input},
		{"v", rec.V, Quantity, 0, &tx.V},
		{"r", rec.R, Quantity, 0, &tx.R},
		{"s", rec.S, Quantity, 0, &tx.S},
	}
}

func newDepositFields(rec *RPCTransaction, index int) (*DepositFields, error) {
	d := new(DepositFields)
	err := decodeTxFields(index, []txField{
		{"mint", orDefault(rec.Mint, depositDefaults.Mint), Quantity, 0, &d.Mint},
		{"sourceHash", orDefault(rec.SourceHash, depositDefaults.SourceHash), Bytes, 0, &d.SourceHash},
		{"depositReceiptVersion", orDefault(rec.DepositReceiptVersion, depositDefaults.DepositReceiptVersion), Quantity, 0, &d.DepositReceiptVersion},
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func decodeTxFields(index int, fields []txField) error {
	for _, f := range fields {
		if f.value == nil {
			if f.name == "to" {
				*f.dst = []byte{} // contract creation
				continue
			}
			return &MissingFieldError{Record: fmt.Sprintf("transaction %d", index), Field: f.name}
		}
		b, err := f.kind.decode(*f.value, f.size)
		if err != nil {
			return fmt.Errorf("transaction %d field %s: %w", index, f.name, err)
		}
		*f.dst = b
	}
	return nil
}

func orDefault(v *string, def string) *string {
	if v == nil || *v == "" {
		return &def
	}
	return v
}
