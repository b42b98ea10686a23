// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package brainfuck

import (
	"context"
	"errors"
	"fmt"

	"gopkg.microglot.org/bfc.go/internal/exc"
	"gopkg.microglot.org/bfc.go/internal/idl"
	"gopkg.microglot.org/bfc.go/internal/iter"
)

// ParseProgram parses a complete symbol sequence. The sequence does not need
// an explicit idl.SymbolEOF terminator. Parsing succeeds only if every symbol
// up to the end of input belongs to some expression; otherwise the returned
// error is an exc.Exception with exc.CodeTrailingInput whose location offset
// is the index of the first symbol that could not be parsed and whose causes
// explain why.
func ParseProgram(symbols []idl.Symbol) (idl.Program, error) {
	src := newSource(symbols)
	program := idl.Program{}
	for {
		e, err := attempt(src, parseExpression)
		if err == nil {
			program = append(program, e)
			continue
		}
		offset := src.cursor
		if src.next() == idl.SymbolEOF {
			return program, nil
		}
		return nil, exc.Join(symbolLocation(offset), exc.CodeTrailingInput, fmt.Sprintf("unparsable input at symbol %d", offset), err)
	}
}

var _ idl.Parser = (*ParserBrainfuck)(nil)

type ParserBrainfuck struct {
	reporter exc.Reporter
}

func NewParserBrainfuck(reporter exc.Reporter) *ParserBrainfuck {
	return &ParserBrainfuck{reporter: reporter}
}

// Parse consumes the token stream of the file and parses it into a module.
// A parse failure is reported with the file location of the offending token.
func (self *ParserBrainfuck) Parse(ctx context.Context, f idl.LexerFile) (*idl.Module, error) {
	uri := f.Path(ctx)
	stream, err := f.Tokens(ctx)
	if err != nil {
		return nil, err
	}
	tokens, err := iter.Collect(ctx, stream)
	if err != nil {
		return nil, err
	}
	symbols := make([]idl.Symbol, 0, len(tokens))
	for _, token := range tokens {
		symbols = append(symbols, token.Symbol)
	}

	program, err := ParseProgram(symbols)
	if err != nil {
		var e exc.Exception
		if !errors.As(err, &e) {
			return nil, self.reporter.Report(exc.WrapUnknown(exc.Location{URI: uri}, err))
		}
		loc := exc.Location{
			URI:      uri,
			Location: tokenLocation(tokens, int(e.Location().Offset)),
		}
		return nil, self.reporter.Report(exc.Relocate(e, loc))
	}
	return &idl.Module{
		URI:     uri,
		Program: program,
	}, nil
}

// tokenLocation returns the start of the token at the given symbol index.
// Indexes past the last token resolve to the end of the last token.
func tokenLocation(tokens []*idl.Token, offset int) idl.Location {
	if offset < len(tokens) {
		return tokens[offset].Span.Start
	}
	if len(tokens) > 0 {
		return tokens[len(tokens)-1].Span.End
	}
	return idl.Location{Line: 1, Column: 1}
}
