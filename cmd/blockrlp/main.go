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

// blockrlp encodes JSON-RPC block objects to RLP and checks the result
// against the hashes the blocks carry.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
)

var (
	configFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	verbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value: 3,
	}
	workersFlag = &cli.IntFlag{
		Name:  "workers",
		Usage: "Number of blocks processed in parallel (0 = number of CPUs)",
	}
	strictFlag = &cli.BoolFlag{
		Name:  "strict-tx-shapes",
		Usage: "Reject typed transactions with fields the generic layout cannot hold",
	}
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Write output to the given file instead of stdout",
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "blockrlp",
		Usage: "RLP encoder for JSON-RPC blocks",
		Flags: []cli.Flag{
			configFileFlag,
			verbosityFlag,
			workersFlag,
			strictFlag,
		},
		Commands: []*cli.Command{
			encodeCommand,
			verifyCommand,
			inspectCommand,
			dumpConfigCommand,
		},
		Before: func(ctx *cli.Context) error {
			setupLogger(ctx)
			return nil
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogger(ctx *cli.Context) {
	usecolor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
	output := io.Writer(os.Stderr)
	if usecolor {
		output = colorable.NewColorableStderr()
	}
	glogger := log.NewGlogHandler(log.StreamHandler(output, log.TerminalFormat(usecolor)))
	glogger.Verbosity(log.Lvl(ctx.Int(verbosityFlag.Name)))
	log.Root().SetHandler(glogger)
}
