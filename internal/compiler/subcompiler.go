package compiler

import (
	"context"
	"fmt"
	"io"

	"gopkg.microglot.org/bfc.go/internal/compiler/brainfuck"
	"gopkg.microglot.org/bfc.go/internal/exc"
	"gopkg.microglot.org/bfc.go/internal/idl"
	"gopkg.microglot.org/bfc.go/internal/optional"
)

type SubCompiler interface {
	CompileFile(ctx context.Context, r exc.Reporter, file idl.File, dumpTokens bool, dumpTree bool) (*idl.Module, error)
}

// DefaultSubCompilers returns the sub-compiler for every supported file kind.
// Token and tree dumps are written to out.
func DefaultSubCompilers(out io.Writer) map[idl.FileKind]SubCompiler {
	return map[idl.FileKind]SubCompiler{
		idl.FileKindBrainfuck: &SubCompilerBrainfuck{Output: out},
	}
}

type SubCompilerBrainfuck struct {
	Output io.Writer
}

func (self *SubCompilerBrainfuck) CompileFile(ctx context.Context, r exc.Reporter, file idl.File, dumpTokens bool, dumpTree bool) (*idl.Module, error) {
	lexer := brainfuck.NewLexerBrainfuck()
	parser := brainfuck.NewParserBrainfuck(r)
	lf, err := lexer.Lex(ctx, file)
	if err != nil {
		return nil, r.Report(exc.WrapUnknown(exc.Location{URI: file.Path(ctx)}, err))
	}
	if dumpTokens {
		lf = &dumpingLexerFile{LexerFile: lf, out: self.Output}
	}
	mod, err := parser.Parse(ctx, lf)
	if err != nil || mod == nil {
		return nil, err
	}
	if dumpTree {
		image := &idl.Image{Modules: []*idl.Module{mod}}
		_, _ = io.WriteString(self.Output, image.String())
	}
	return mod, nil
}

// dumpingLexerFile prints every token as the parser consumes it.
type dumpingLexerFile struct {
	idl.LexerFile
	out io.Writer
}

func (self *dumpingLexerFile) Tokens(ctx context.Context) (idl.Iterator[*idl.Token], error) {
	stream, err := self.LexerFile.Tokens(ctx)
	if err != nil {
		return nil, err
	}
	return &dumpingIterator{
		Iterator: stream,
		uri:      self.Path(ctx),
		out:      self.out,
	}, nil
}

type dumpingIterator struct {
	idl.Iterator[*idl.Token]
	uri string
	out io.Writer
}

func (self *dumpingIterator) Next(ctx context.Context) optional.Optional[*idl.Token] {
	tok := self.Iterator.Next(ctx)
	if tok.IsPresent() {
		token := tok.Value()
		_, _ = fmt.Fprintf(self.out, "%s:%d:%d\t%-24s'%s'\n", self.uri, token.Span.Start.Line, token.Span.Start.Column, token.Symbol, token.Value)
	}
	return tok
}
