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
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingField is matched by every *MissingFieldError.
	ErrMissingField = errors.New("missing required field")

	// ErrUnsupportedTxShape is matched by every *UnsupportedTxShapeError.
	ErrUnsupportedTxShape = errors.New("unsupported transaction shape")
)

// MissingFieldError is returned when a record lacks a field that the
// canonical encoding requires.
type MissingFieldError struct {
	Record string // e.g. "header", "uncle 1", "transaction 7"
	Field  string // JSON name of the field
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing required field %q", e.Record, e.Field)
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrMissingField }

// UnsupportedTxShapeError is returned for a typed transaction that cannot be
// written in the generic layout: its type byte is out of range, or it
// carries fields the layout would drop and strict shapes are requested.
type UnsupportedTxShapeError struct {
	Index  int
	Type   string
	Fields []string // dropped fields, if that is the reason
}

func (e *UnsupportedTxShapeError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("transaction %d: unsupported transaction type %s", e.Index, e.Type)
	}
	return fmt.Sprintf("transaction %d: type %s fields not representable in the generic layout: %s",
		e.Index, e.Type, strings.Join(e.Fields, ", "))
}

func (e *UnsupportedTxShapeError) Is(target error) bool { return target == ErrUnsupportedTxShape }
