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
	"runtime"

	"github.com/PigCharid/blockrlp/core/types"
)

// Config is the configuration of a Codec. Its layout is the layout of the
// TOML configuration file.
type Config struct {
	Codec  types.Config
	Batch  BatchConfig
	Verify VerifyConfig
}

// BatchConfig controls how many blocks are processed at once.
type BatchConfig struct {
	Workers int // zero means runtime.NumCPU()
}

// VerifyConfig selects the checks run by Verify. A check is skipped for
// blocks whose record does not carry the value to compare against.
type VerifyConfig struct {
	HeaderHash       bool
	TransactionsRoot bool
	WithdrawalsRoot  bool
}

// DefaultConfig contains the default settings.
var DefaultConfig = Config{
	Batch: BatchConfig{
		Workers: runtime.NumCPU(),
	},
	Verify: VerifyConfig{
		HeaderHash:       true,
		TransactionsRoot: true,
		WithdrawalsRoot:  true,
	},
}

func (c *Config) workers() int {
	if c.Batch.Workers > 0 {
		return c.Batch.Workers
	}
	return runtime.NumCPU()
}
