// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package idl

import "fmt"

// Symbol is a single lexical token of the bracket language. The zero value is
// SymbolEOF so that reads past the end of a symbol slice naturally produce
// the end of input marker.
type Symbol uint8

const (
	SymbolEOF              Symbol = 0
	SymbolLeftBracket      Symbol = 1
	SymbolRightBracket     Symbol = 2
	SymbolIncrementPointer Symbol = 3
	SymbolDecrementPointer Symbol = 4
	SymbolIncrementValue   Symbol = 5
	SymbolDecrementValue   Symbol = 6
	SymbolOutput           Symbol = 7
	SymbolInput            Symbol = 8
)

var symbolText = map[Symbol]string{
	SymbolLeftBracket:      "[",
	SymbolRightBracket:     "]",
	SymbolIncrementPointer: ">",
	SymbolDecrementPointer: "<",
	SymbolIncrementValue:   "+",
	SymbolDecrementValue:   "-",
	SymbolOutput:           ".",
	SymbolInput:            ",",
}

var textSymbol = func() map[CodePoint]Symbol {
	m := make(map[CodePoint]Symbol, len(symbolText))
	for sym, text := range symbolText {
		m[CodePoint(text[0])] = sym
	}
	return m
}()

// SymbolFromCodePoint returns the symbol spelled by the given code point. All
// code points outside of the command alphabet are comments and report false.
func SymbolFromCodePoint(p CodePoint) (Symbol, bool) {
	sym, ok := textSymbol[p]
	return sym, ok
}

// Text returns the source spelling of the symbol. SymbolEOF has no spelling
// and returns an empty string.
func (s Symbol) Text() string {
	return symbolText[s]
}

// IsOperator reports whether the symbol is a plain instruction as opposed to
// a bracket or the end of input marker.
func (s Symbol) IsOperator() bool {
	switch s {
	case SymbolEOF, SymbolLeftBracket, SymbolRightBracket:
		return false
	}
	_, ok := symbolText[s]
	return ok
}

func (s Symbol) String() string {
	switch s {
	case SymbolEOF:
		return "EOF"
	case SymbolLeftBracket:
		return "LeftBracket"
	case SymbolRightBracket:
		return "RightBracket"
	case SymbolIncrementPointer:
		return "IncrementPointer"
	case SymbolDecrementPointer:
		return "DecrementPointer"
	case SymbolIncrementValue:
		return "IncrementValue"
	case SymbolDecrementValue:
		return "DecrementValue"
	case SymbolOutput:
		return "Output"
	case SymbolInput:
		return "Input"
	default:
		return fmt.Sprintf("Symbol(%d)", uint8(s))
	}
}
