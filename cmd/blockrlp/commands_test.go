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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PigCharid/blockrlp/core/types"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const testdata = "../../core/testdata/"

// runApp runs the command line with the given arguments and returns what
// was written to stdout.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"blockrlp", "--verbosity", "0"}, args...))
	return out.String(), err
}

func readGolden(t *testing.T, name string) string {
	data, err := os.ReadFile(testdata + name)
	require.NoError(t, err)
	return string(data)
}

func TestEncodeCommand(t *testing.T) {
	out, err := runApp(t, "encode", testdata+"block.json")
	require.NoError(t, err)
	require.Equal(t, readGolden(t, "block.rlp"), out)

	out, err = runApp(t, "--workers", "1", "encode", testdata+"response.json", testdata+"batch.json")
	require.NoError(t, err)
	require.Equal(t, readGolden(t, "block.rlp")+readGolden(t, "batch.rlp"), out)

	file := filepath.Join(t.TempDir(), "out.txt")
	out, err = runApp(t, "encode", "--output", file, testdata+"batch.json")
	require.NoError(t, err)
	require.Empty(t, out)
	written, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Equal(t, readGolden(t, "batch.rlp"), string(written))
}

func TestEncodeCommandErrors(t *testing.T) {
	_, err := runApp(t, "encode")
	require.Equal(t, errNoInput, err)

	_, err = runApp(t, "encode", testdata+"missing.json")
	require.True(t, os.IsNotExist(err), "%v", err)

	// a header field missing from the block
	file := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"number": "0x1"}`), 0644))
	_, err = runApp(t, "encode", file)
	require.Equal(t, "block 0: "+(&types.MissingFieldError{Record: "header", Field: "parentHash"}).Error(), err.Error())
}

func TestVerifyCommand(t *testing.T) {
	out, err := runApp(t, "verify", testdata+"batch.json")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "block 19531250 0xb380073c0122d92109f3cad6905284de34aefdb3b1a9d02a2a38667907af430e")
	require.Contains(t, lines[0], "PASSED")
	require.Contains(t, lines[1], "PASSED")

	// a block whose hash does not match its header
	data := strings.Replace(readGolden(t, "block.json"), "0x65f1b0a7", "0x65f1b0a8", 1)
	file := filepath.Join(t.TempDir(), "block.json")
	require.NoError(t, os.WriteFile(file, []byte(data), 0644))

	out, err = runApp(t, "verify", file)
	require.Error(t, err)
	require.Equal(t, 1, err.(cli.ExitCoder).ExitCode())
	require.Contains(t, out, "FAILED")
	require.Contains(t, out, "headerHash")
	require.Contains(t, out, "want 0xb380073c0122d92109f3cad6905284de34aefdb3b1a9d02a2a38667907af430e")
}

func TestInspectCommand(t *testing.T) {
	out, err := runApp(t, "inspect", testdata+"block.json")
	require.NoError(t, err)
	for _, f := range types.HeaderFields() {
		require.Contains(t, out, f.Name)
	}
	require.Contains(t, out, "header hash:   0xb380073c0122d92109f3cad6905284de34aefdb3b1a9d02a2a38667907af430e")
	require.Contains(t, out, "transactions:  1")
	require.Contains(t, out, "withdrawals:   1")

	_, err = runApp(t, "inspect")
	require.Error(t, err)
}
