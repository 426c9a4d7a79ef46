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
	"bytes"
	"encoding/json"
)

// RPCHeader holds the header fields of a block object as returned by
// eth_getBlockByNumber. All values are kept as the hex strings found on the
// wire; a nil pointer means the field was absent or null.
type RPCHeader struct {
	Hash *string `json:"hash"`

	ParentHash            *string `json:"parentHash"`
	UncleHash             *string `json:"sha3Uncles"`
	Miner                 *string `json:"miner"`
	StateRoot             *string `json:"stateRoot"`
	TransactionsRoot      *string `json:"transactionsRoot"`
	ReceiptsRoot          *string `json:"receiptsRoot"`
	LogsBloom             *string `json:"logsBloom"`
	Difficulty            *string `json:"difficulty"`
	Number                *string `json:"number"`
	GasLimit              *string `json:"gasLimit"`
	GasUsed               *string `json:"gasUsed"`
	Timestamp             *string `json:"timestamp"`
	ExtraData             *string `json:"extraData"`
	MixHash               *string `json:"mixHash"`
	Nonce                 *string `json:"nonce"`
	BaseFeePerGas         *string `json:"baseFeePerGas"`
	WithdrawalsRoot       *string `json:"withdrawalsRoot"`
	BlobGasUsed           *string `json:"blobGasUsed"`
	ExcessBlobGas         *string `json:"excessBlobGas"`
	ParentBeaconBlockRoot *string `json:"parentBeaconBlockRoot"`
}

// values returns the header fields in encoding order.
func (h *RPCHeader) values() [HeaderFieldCount]*string {
	return [HeaderFieldCount]*string{
		h.ParentHash, h.UncleHash, h.Miner, h.StateRoot,
		h.TransactionsRoot, h.ReceiptsRoot, h.LogsBloom, h.Difficulty,
		h.Number, h.GasLimit, h.GasUsed, h.Timestamp,
		h.ExtraData, h.MixHash, h.Nonce, h.BaseFeePerGas,
		h.WithdrawalsRoot, h.BlobGasUsed, h.ExcessBlobGas, h.ParentBeaconBlockRoot,
	}
}

// RPCUncle is an entry of the uncles array. Nodes return uncle hashes
// there; full uncle headers are accepted as well.
type RPCUncle struct {
	RPCHeader
}

func (u *RPCUncle) UnmarshalJSON(input []byte) error {
	if isJSONString(input) {
		u.RPCHeader = RPCHeader{}
		return json.Unmarshal(input, &u.Hash)
	}
	return json.Unmarshal(input, &u.RPCHeader)
}

// RPCTransaction is a transaction object of a full block. A transaction
// given only by its hash decodes with every field but Hash unset.
type RPCTransaction struct {
	Hash *string `json:"hash"`
	Type *string `json:"type"`

	Nonce    *string `json:"nonce"`
	GasPrice *string `json:"gasPrice"`
	Gas      *string `json:"gas"`
	To       *string `json:"to"`
	Value    *string `json:"value"`
	Input    *string `json:"input"`
	V        *string `json:"v"`
	R        *string `json:"r"`
	S        *string `json:"s"`

	// deposit transactions
	Mint                  *string `json:"mint"`
	SourceHash            *string `json:"sourceHash"`
	DepositReceiptVersion *string `json:"depositReceiptVersion"`

	// fields of typed transactions that have no place in the generic layout
	ChainID              *string         `json:"chainId"`
	MaxFeePerGas         *string         `json:"maxFeePerGas"`
	MaxPriorityFeePerGas *string         `json:"maxPriorityFeePerGas"`
	MaxFeePerBlobGas     *string         `json:"maxFeePerBlobGas"`
	AccessList           json.RawMessage `json:"accessList"`
	BlobVersionedHashes  json.RawMessage `json:"blobVersionedHashes"`
	AuthorizationList    json.RawMessage `json:"authorizationList"`
}

func (tx *RPCTransaction) UnmarshalJSON(input []byte) error {
	type plain RPCTransaction
	if isJSONString(input) {
		*tx = RPCTransaction{}
		return json.Unmarshal(input, &tx.Hash)
	}
	return json.Unmarshal(input, (*plain)(tx))
}

// extraFields lists the fields that are set but dropped by the generic
// nine field layout.
func (tx *RPCTransaction) extraFields() []string {
	var fields []string
	for _, f := range []struct {
		name string
		set  bool
	}{
		{"chainId", tx.ChainID != nil},
		{"maxFeePerGas", tx.MaxFeePerGas != nil},
		{"maxPriorityFeePerGas", tx.MaxPriorityFeePerGas != nil},
		{"maxFeePerBlobGas", tx.MaxFeePerBlobGas != nil},
		{"accessList", isSet(tx.AccessList)},
		{"blobVersionedHashes", isSet(tx.BlobVersionedHashes)},
		{"authorizationList", isSet(tx.AuthorizationList)},
	} {
		if f.set {
			fields = append(fields, f.name)
		}
	}
	return fields
}

// RPCWithdrawal is a validator withdrawal object.
type RPCWithdrawal struct {
	Index          *string `json:"index"`
	ValidatorIndex *string `json:"validatorIndex"`
	Address        *string `json:"address"`
	Amount         *string `json:"amount"`
}

// RPCBlock is the result object of eth_getBlockByNumber or
// eth_getBlockByHash with full transactions.
type RPCBlock struct {
	RPCHeader
	Transactions []RPCTransaction `json:"transactions"`
	Uncles       []RPCUncle       `json:"uncles"`
	Withdrawals  []RPCWithdrawal  `json:"withdrawals"`
}

func isJSONString(input []byte) bool {
	input = bytes.TrimSpace(input)
	return len(input) > 0 && input[0] == '"'
}

func isSet(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}
