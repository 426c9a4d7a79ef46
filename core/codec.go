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

// Package core loads JSON-RPC block objects and runs them through the block
// encoder, one at a time or in parallel batches.
package core

import (
	"context"
	"strings"

	"github.com/PigCharid/blockrlp/core/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"
	"golang.org/x/sync/errgroup"
)

// Codec encodes and verifies blocks. It is safe for concurrent use.
type Codec struct {
	config Config
	log    log.Logger
}

// New creates a codec with the given configuration.
func New(config Config) *Codec {
	return &Codec{
		config: config,
		log:    log.New("module", "codec"),
	}
}

// Config returns the configuration of the codec.
func (c *Codec) Config() Config { return c.config }

// Block normalizes rec, logging any typed transaction whose extra fields
// were left out of the encoding.
func (c *Codec) Block(rec *types.RPCBlock) (*types.Block, error) {
	b, err := types.NewBlock(rec, c.config.Codec)
	if err != nil {
		return nil, err
	}
	for _, w := range b.ShapeWarnings() {
		c.log.Warn("Dropped typed transaction fields", "number", b.Number(), "index", w.Index, "type", w.Type, "fields", strings.Join(w.Fields, ","))
	}
	return b, nil
}

// Encode returns the 0x-prefixed hex RLP encoding of rec.
func (c *Codec) Encode(rec *types.RPCBlock) (string, error) {
	b, err := c.Block(rec)
	if err != nil {
		return "", err
	}
	enc := b.EncodeRLP()
	c.log.Debug("Encoded block", "number", b.Number(), "txs", len(b.Transactions()), "size", common.StorageSize(len(enc)))
	return hexutil.Encode(enc), nil
}

// EncodeAll encodes recs in parallel. The result at index i belongs to
// recs[i]. The first failure stops the remaining work and is returned.
func (c *Codec) EncodeAll(ctx context.Context, recs []*types.RPCBlock) ([]string, error) {
	out := make([]string, len(recs))
	err := c.forEach(ctx, len(recs), func(i int) error {
		enc, err := c.Encode(recs[i])
		if err != nil {
			return &BlockError{Index: i, Err: err}
		}
		out[i] = enc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// forEach calls fn for every index below n on a bounded set of workers.
func (c *Codec) forEach(ctx context.Context, n int, fn func(i int) error) error {
	g, ctx := errgroup.WithContext(ctx)
	tasks := make(chan int)
	g.Go(func() error {
		defer close(tasks)
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			select {
			case tasks <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	workers := c.config.workers()
	if workers > n {
		workers = n
	}
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := range tasks {
				if err := fn(i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
