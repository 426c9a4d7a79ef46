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
	"context"
	"fmt"

	"github.com/PigCharid/blockrlp/core/types"
	"github.com/ethereum/go-ethereum/common"
)

// Names of the checks run by Verify.
const (
	CheckHeaderHash       = "headerHash"
	CheckTransactionsRoot = "transactionsRoot"
	CheckWithdrawalsRoot  = "withdrawalsRoot"
)

// BlockError wraps a failure on the block at Index of a batch.
type BlockError struct {
	Index int
	Err   error
}

func (e *BlockError) Error() string { return fmt.Sprintf("block %d: %v", e.Index, e.Err) }

func (e *BlockError) Unwrap() error { return e.Err }

// MismatchError is returned by Report.Err when a recomputed value differs
// from the one carried by the block.
type MismatchError struct {
	Number     uint64
	Check      string
	Have, Want common.Hash
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("block %d: %s mismatch (have %x, want %x)", e.Number, e.Check, e.Have, e.Want)
}

// Check is the outcome of comparing one recomputed value.
type Check struct {
	Name    string
	Have    common.Hash // recomputed
	Want    common.Hash // carried by the block
	Skipped string      // reason the check did not run, if it didn't
}

func (c *Check) OK() bool { return c.Skipped != "" || c.Have == c.Want }

// Report is the result of verifying one block.
type Report struct {
	Number uint64
	Hash   common.Hash // keccak256 of the encoded header
	Checks []Check
}

// OK reports whether every check that ran has passed.
func (r *Report) OK() bool {
	return r.Err() == nil
}

// Err returns the first failed check as a *MismatchError.
func (r *Report) Err() error {
	for i := range r.Checks {
		if c := &r.Checks[i]; !c.OK() {
			return &MismatchError{Number: r.Number, Check: c.Name, Have: c.Have, Want: c.Want}
		}
	}
	return nil
}

// Verify encodes rec and compares the header hash and list roots derived
// from the encoding with the values the record carries. Mismatches are
// recorded in the report; an error is only returned if rec cannot be
// encoded at all.
func (c *Codec) Verify(rec *types.RPCBlock) (*Report, error) {
	b, err := c.Block(rec)
	if err != nil {
		return nil, err
	}
	report := &Report{Number: b.Number(), Hash: b.HeaderHash()}
	cfg := c.config.Verify

	if cfg.HeaderHash {
		check := Check{Name: CheckHeaderHash, Have: report.Hash}
		if want, ok := b.RecordHash(); ok {
			check.Want = want
		} else {
			check.Skipped = "record has no hash"
		}
		report.Checks = append(report.Checks, check)
	}
	if cfg.TransactionsRoot {
		check := Check{Name: CheckTransactionsRoot, Want: b.Header().TransactionsRoot()}
		if typed := countTyped(b); typed > 0 {
			check.Skipped = fmt.Sprintf("%d typed transactions in generic layout", typed)
		} else {
			check.Have = b.DeriveTransactionsRoot()
		}
		report.Checks = append(report.Checks, check)
	}
	if cfg.WithdrawalsRoot {
		report.Checks = append(report.Checks, Check{
			Name: CheckWithdrawalsRoot,
			Have: b.DeriveWithdrawalsRoot(),
			Want: b.Header().WithdrawalsRoot(),
		})
	}
	for _, check := range report.Checks {
		switch {
		case check.Skipped != "":
			c.log.Debug("Skipped block check", "number", report.Number, "check", check.Name, "reason", check.Skipped)
		case !check.OK():
			c.log.Error("Block check failed", "number", report.Number, "check", check.Name, "have", check.Have, "want", check.Want)
		}
	}
	return report, nil
}

// VerifyAll verifies recs in parallel. Reports are returned in input order.
func (c *Codec) VerifyAll(ctx context.Context, recs []*types.RPCBlock) ([]*Report, error) {
	reports := make([]*Report, len(recs))
	err := c.forEach(ctx, len(recs), func(i int) error {
		report, err := c.Verify(recs[i])
		if err != nil {
			return &BlockError{Index: i, Err: err}
		}
		reports[i] = report
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// countTyped returns the number of typed transactions. Their encodings
// follow the generic layout rather than the one hashed into the
// transactions root, so the root cannot be recomputed.
func countTyped(b *types.Block) int {
	n := 0
	for _, tx := range b.Transactions() {
		if tx.Type() != types.LegacyTxType {
			n++
		}
	}
	return n
}
