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

package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/PigCharid/blockrlp/core/types"
)

// ErrNoBlock is returned when a response carries a null result, as nodes do
// for unknown blocks.
var ErrNoBlock = errors.New("no block in response")

// RPCError is the error member of a JSON-RPC response.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// rpcResponse is a JSON-RPC 2.0 response envelope.
type rpcResponse struct {
	Version string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
}

func (r *rpcResponse) isEnvelope() bool {
	return r.Version != "" || r.Result != nil || r.Error != nil
}

// LoadBlock reads a single block from the file at path.
func LoadBlock(path string) (*types.RPCBlock, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	rec, err := ReadBlock(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// ReadBlock reads a block object, either bare or as the result of a JSON-RPC
// response.
func ReadBlock(r io.Reader) (*types.RPCBlock, error) {
	input, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeBlock(input)
}

// ReadBlocks reads either a single block or a JSON array of blocks, which
// may also be the response to a batch request.
func ReadBlocks(r io.Reader) ([]*types.RPCBlock, error) {
	input, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	input = bytes.TrimSpace(input)
	if len(input) == 0 || input[0] != '[' {
		rec, err := DecodeBlock(input)
		if err != nil {
			return nil, err
		}
		return []*types.RPCBlock{rec}, nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(input, &raws); err != nil {
		return nil, err
	}
	recs := make([]*types.RPCBlock, len(raws))
	for i, raw := range raws {
		if recs[i], err = DecodeBlock(raw); err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
	}
	return recs, nil
}

// DecodeBlock decodes a block object or a response envelope holding one.
func DecodeBlock(input []byte) (*types.RPCBlock, error) {
	input = bytes.TrimSpace(input)
	if isNull(input) {
		return nil, ErrNoBlock
	}
	var resp rpcResponse
	if err := json.Unmarshal(input, &resp); err != nil {
		return nil, err
	}
	if resp.isEnvelope() {
		if resp.Error != nil {
			return nil, resp.Error
		}
		if isNull(resp.Result) {
			return nil, ErrNoBlock
		}
		input = resp.Result
	}
	rec := new(types.RPCBlock)
	if err := json.Unmarshal(input, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func isNull(input []byte) bool {
	input = bytes.TrimSpace(input)
	return len(input) == 0 || bytes.Equal(input, []byte("null"))
}
