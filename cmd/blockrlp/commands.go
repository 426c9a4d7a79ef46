// Copyright 2024 The blockrlp Authors
// This file is part of blockrlp.
//
// blockrlp is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// blockrlp is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with blockrlp. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/PigCharid/blockrlp/core"
	"github.com/PigCharid/blockrlp/core/types"
	"github.com/PigCharid/blockrlp/rlp"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
)

var (
	encodeCommand = &cli.Command{
		Name:      "encode",
		Usage:     "Print the RLP encoding of blocks as hex, one line per block",
		ArgsUsage: "<file> [<file>...]  (- reads stdin)",
		Flags:     []cli.Flag{outputFlag},
		Action:    encode,
	}
	verifyCommand = &cli.Command{
		Name:      "verify",
		Usage:     "Recompute header hashes and list roots and compare them with the blocks",
		ArgsUsage: "<file> [<file>...]",
		Action:    verify,
	}
	inspectCommand = &cli.Command{
		Name:      "inspect",
		Usage:     "Show how the header fields of a block are encoded",
		ArgsUsage: "<file>",
		Action:    inspect,
	}
)

var errNoInput = errors.New("no input files")

// readInputs reads the blocks of every file named on the command line.
func readInputs(ctx *cli.Context) ([]*types.RPCBlock, error) {
	if ctx.NArg() == 0 {
		return nil, errNoInput
	}
	var recs []*types.RPCBlock
	for _, name := range ctx.Args().Slice() {
		blocks, err := readFile(name)
		if err != nil {
			return nil, err
		}
		recs = append(recs, blocks...)
	}
	return recs, nil
}

func readFile(name string) ([]*types.RPCBlock, error) {
	if name == "-" {
		return core.ReadBlocks(os.Stdin)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	recs, err := core.ReadBlocks(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return recs, nil
}

func encode(ctx *cli.Context) error {
	codec, err := makeCodec(ctx)
	if err != nil {
		return err
	}
	recs, err := readInputs(ctx)
	if err != nil {
		return err
	}
	encs, err := codec.EncodeAll(ctx.Context, recs)
	if err != nil {
		return err
	}

	out := ctx.App.Writer
	if file := ctx.String(outputFlag.Name); file != "" {
		f, err := os.Create(file)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	w := bufio.NewWriter(out)
	for _, enc := range encs {
		fmt.Fprintln(w, enc)
	}
	return w.Flush()
}

func verify(ctx *cli.Context) error {
	codec, err := makeCodec(ctx)
	if err != nil {
		return err
	}
	recs, err := readInputs(ctx)
	if err != nil {
		return err
	}
	reports, err := codec.VerifyAll(ctx.Context, recs)
	if err != nil {
		return err
	}
	failed := 0
	for _, report := range reports {
		if !report.OK() {
			failed++
		}
		printReport(ctx.App.Writer, report)
	}
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d blocks failed verification", failed, len(reports)), 1)
	}
	return nil
}

func printReport(w io.Writer, report *core.Report) {
	status := color.GreenString("PASSED")
	if !report.OK() {
		status = color.RedString("FAILED")
	}
	fmt.Fprintf(w, "block %d %s %s\n", report.Number, report.Hash.Hex(), status)
	for _, check := range report.Checks {
		switch {
		case check.Skipped != "":
			fmt.Fprintf(w, "  %-16s skipped: %s\n", check.Name, check.Skipped)
		case !check.OK():
			fmt.Fprintf(w, "  %-16s have %s, want %s\n", check.Name, check.Have.Hex(), check.Want.Hex())
		}
	}
}

func inspect(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("need exactly one input file")
	}
	codec, err := makeCodec(ctx)
	if err != nil {
		return err
	}
	recs, err := readFile(ctx.Args().First())
	if err != nil {
		return err
	}
	out := ctx.App.Writer
	for _, rec := range recs {
		b, err := codec.Block(rec)
		if err != nil {
			return err
		}
		printHeader(out, b.Header())

		fmt.Fprintf(out, "number:        %d\n", b.Number())
		fmt.Fprintf(out, "header hash:   %s\n", b.HeaderHash().Hex())
		fmt.Fprintf(out, "transactions:  %d\n", len(b.Transactions()))
		fmt.Fprintf(out, "uncles:        %d\n", len(b.Uncles()))
		fmt.Fprintf(out, "withdrawals:   %d\n", len(b.Withdrawals()))
		fmt.Fprintf(out, "encoded size:  %v\n", common.StorageSize(len(b.EncodeRLP())))
		if len(b.Transactions()) > 0 {
			printTransactions(out, b.Transactions())
		}
	}
	return nil
}

func printHeader(w io.Writer, h *types.Header) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Field", "Kind", "Value", "RLP"})
	for i, f := range types.HeaderFields() {
		field := h.Field(i)
		table.Append([]string{
			strconv.Itoa(i),
			f.Name,
			f.Kind.String(),
			abbrev(hexutil.Encode(field)),
			abbrev(hexutil.Encode(rlp.Encode(rlp.Bytes(field)))),
		})
	}
	table.Render()
}

func printTransactions(w io.Writer, txs []types.TxEnvelope) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Type", "Size", "Encoding"})
	for i, tx := range txs {
		enc := tx.Encoded()
		table.Append([]string{
			strconv.Itoa(i),
			fmt.Sprintf("%#x", tx.Type()),
			common.StorageSize(len(enc)).String(),
			abbrev(hexutil.Encode(enc)),
		})
	}
	table.Render()
}

// abbrev shortens long hex values for display.
func abbrev(s string) string {
	if len(s) <= 68 {
		return s
	}
	return s[:34] + ".." + s[len(s)-32:]
}
