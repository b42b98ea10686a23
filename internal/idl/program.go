// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package idl

import "strings"

// Expression is a node of a parsed program. It is either an Operator or a
// Loop.
type Expression interface {
	String() string
	expression()
}

// Operator is a single plain instruction. The wrapped symbol is never a
// bracket or SymbolEOF.
type Operator struct {
	Symbol Symbol
}

func (Operator) expression() {}

func (self Operator) String() string {
	return self.Symbol.Text()
}

// Loop is a bracketed block. Body is never empty.
type Loop struct {
	Body []Expression
}

func (Loop) expression() {}

func (self Loop) String() string {
	var b strings.Builder
	b.WriteString(SymbolLeftBracket.Text())
	for _, e := range self.Body {
		b.WriteString(e.String())
	}
	b.WriteString(SymbolRightBracket.Text())
	return b.String()
}

// Program is the ordered sequence of top level expressions.
type Program []Expression

// String renders the program back into source form without comments.
func (self Program) String() string {
	var b strings.Builder
	for _, e := range self {
		b.WriteString(e.String())
	}
	return b.String()
}
