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
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// maxAmountLength is the widest amount a uint256 can hold.
const maxAmountLength = 32

// Withdrawal is a validator withdrawal. Its fields are in encoding order.
type Withdrawal struct {
	Index          uint64
	ValidatorIndex uint64
	Address        common.Address
	Amount         *uint256.Int // gwei
}

// DecodeWithdrawal reads the withdrawal record at position index of a block.
func DecodeWithdrawal(rec *RPCWithdrawal, index int) (*Withdrawal, error) {
	record := fmt.Sprintf("withdrawal %d", index)
	w := new(Withdrawal)
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"index", rec.Index},
		{"validatorIndex", rec.ValidatorIndex},
		{"address", rec.Address},
		{"amount", rec.Amount},
	} {
		if f.value == nil {
			return nil, &MissingFieldError{Record: record, Field: f.name}
		}
		if err := w.decodeField(f.name, *f.value); err != nil {
			return nil, fmt.Errorf("%s field %s: %w", record, f.name, err)
		}
	}
	return w, nil
}

func (w *Withdrawal) decodeField(name, s string) (err error) {
	switch name {
	case "index":
		w.Index, err = hexcodec.DecodeUint64(s)
	case "validatorIndex":
		w.ValidatorIndex, err = hexcodec.DecodeUint64(s)
	case "address":
		var b []byte
		if b, err = hexcodec.DecodeFixed(s, hexcodec.AddressLength); err == nil {
			w.Address = common.BytesToAddress(b)
		}
	case "amount":
		var b []byte
		if b, err = hexcodec.DecodeQuantity(s); err == nil {
			if len(b) > maxAmountLength {
				return &hexcodec.WidthError{Input: s, Want: maxAmountLength, Got: len(b)}
			}
			w.Amount = new(uint256.Int).SetBytes(b)
		}
	}
	return err
}

// NewWithdrawal normalizes a withdrawal record into the list
// [index, validatorIndex, address, amount]. The block treats the result as
// an opaque item.
func NewWithdrawal(rec *RPCWithdrawal, index int) (rlp.Value, error) {
	w, err := DecodeWithdrawal(rec, index)
	if err != nil {
		return rlp.Value{}, err
	}
	return rlp.ToValue(w)
}
