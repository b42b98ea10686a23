// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package brainfuck

import (
	"gopkg.microglot.org/bfc.go/internal/exc"
	"gopkg.microglot.org/bfc.go/internal/idl"
)

// snapshot is a saved cursor position.
type snapshot int

// source is a read cursor over a borrowed slice of symbols. Reads never fail:
// past the end of the slice every read yields idl.SymbolEOF while the cursor
// keeps advancing.
type source struct {
	symbols []idl.Symbol
	cursor  int
}

func newSource(symbols []idl.Symbol) *source {
	return &source{symbols: symbols}
}

func (s *source) next() idl.Symbol {
	sym := idl.SymbolEOF
	if s.cursor < len(s.symbols) {
		sym = s.symbols[s.cursor]
	}
	s.cursor = s.cursor + 1
	return sym
}

func (s *source) snapshot() snapshot {
	return snapshot(s.cursor)
}

func (s *source) restore(snap snapshot) {
	s.cursor = int(snap)
}

// symbolLocation describes a symbol index. The line and column are filled in
// later by whoever knows which token the symbol came from.
func symbolLocation(offset int) exc.Location {
	return exc.Location{Location: idl.Location{Offset: int64(offset)}}
}
