// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package brainfuck

import (
	"context"

	"gopkg.microglot.org/bfc.go/internal/idl"
	"gopkg.microglot.org/bfc.go/internal/iter"
	"gopkg.microglot.org/bfc.go/internal/optional"
)

const (
	lexerBrainfuckLookahead = 1
	byteOrderMark           = 0xFEFF
)

var _ idl.Lexer = (*LexerBrainfuck)(nil)
var _ idl.LexerFile = (*lexerFileBrainfuck)(nil)

// LexerBrainfuck implements a tokenizer for the eight command characters.
// Every other code point is commentary and produces no token.
type LexerBrainfuck struct{}

func NewLexerBrainfuck() *LexerBrainfuck {
	return &LexerBrainfuck{}
}

func (self *LexerBrainfuck) Lex(ctx context.Context, f idl.File) (idl.LexerFile, error) {
	return &lexerFileBrainfuck{File: f}, nil
}

type lexerFileBrainfuck struct {
	idl.File
}

func (self *lexerFileBrainfuck) Tokens(ctx context.Context) (idl.Iterator[*idl.Token], error) {
	b, err := self.File.Body(ctx)
	if err != nil {
		return nil, err
	}
	return &lexerFileBrainfuckTokens{
		body: iter.NewLookahead(iter.NewRunes(ctx, b), lexerBrainfuckLookahead),
		line: 1,
	}, nil
}

type lexerFileBrainfuckTokens struct {
	body   idl.Lookahead[idl.Rune]
	line   int32
	col    int32
	offset int64
}

func (self *lexerFileBrainfuckTokens) Next(ctx context.Context) optional.Optional[*idl.Token] {
	for point := self.body.Next(ctx); point.IsPresent(); point = self.body.Next(ctx) {
		r := rune(point.Value().Point)
		if r == 0x00 {
			return optional.None[*idl.Token]() // Treat null byte as EOF as it's not allowed.
		}
		if r == byteOrderMark && self.offset == 0 {
			self.offset = int64(point.Value().Width)
			continue
		}
		start := self.location()
		self.advance(ctx, point.Value())
		sym, ok := idl.SymbolFromCodePoint(point.Value().Point)
		if !ok {
			continue
		}
		return optional.Some(&idl.Token{
			Span:   idl.Span{Start: start, End: self.location()},
			Symbol: sym,
			Value:  string(r),
		})
	}
	return optional.None[*idl.Token]()
}

func (self *lexerFileBrainfuckTokens) Close(ctx context.Context) error {
	return self.body.Close(ctx)
}

func (self *lexerFileBrainfuckTokens) location() idl.Location {
	return idl.Location{Line: self.line, Column: self.col + 1, Offset: self.offset}
}

// advance moves the position past r. A "\r\n" pair counts as one line break
// which is taken on the "\n".
func (self *lexerFileBrainfuckTokens) advance(ctx context.Context, r idl.Rune) {
	self.offset = self.offset + int64(r.Width)
	switch r.Point {
	case '\n':
		self.newLine()
	case '\r':
		if self.body.Lookahead(ctx, 1).ValueOr(idl.Rune{}).Point == '\n' {
			self.col = self.col + 1
			return
		}
		self.newLine()
	default:
		self.col = self.col + 1
	}
}

func (self *lexerFileBrainfuckTokens) newLine() {
	self.line = self.line + 1
	self.col = 0
}
