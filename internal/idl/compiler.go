// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package idl

import (
	"context"
	"fmt"

	"gopkg.microglot.org/bfc.go/internal/optional"
)

type Closer interface {
	Close(ctx context.Context) error
}

type CodePoint uint32

// Rune is a decoded code point and the number of source bytes it occupied.
// An invalid byte decodes to utf8.RuneError with a Width of 1.
type Rune struct {
	Point CodePoint
	Width int
}

type Iterator[T any] interface {
	Next(ctx context.Context) optional.Optional[T]
	Closer
}

type Lookahead[T any] interface {
	Iterator[T]
	Lookahead(ctx context.Context, n uint8) optional.Optional[T]
}

type Reader interface {
	Read(ctx context.Context, size int32) ([]byte, error)
}

type FileBody interface {
	Reader
	Closer
}

type FileKind uint32

const (
	FileKindNone FileKind = iota
	FileKindBrainfuck
)

func (k FileKind) String() string {
	switch k {
	case FileKindNone:
		return "none"
	case FileKindBrainfuck:
		return "brainfuck"
	default:
		return fmt.Sprintf("unkown-%d", k)
	}
}

type File interface {
	Path(ctx context.Context) string
	Kind(ctx context.Context) FileKind
	Body(ctx context.Context) (FileBody, error)
}

type FileSystem interface {
	Open(ctx context.Context, uri string) ([]File, error)
	Write(ctx context.Context, uri string, content string) error
}

type Compiler interface {
	Compile(ctx context.Context, req *CompileRequest) (*CompileResponse, error)
}

type CompileRequest struct {
	Files []string
	// Inline holds programs given directly rather than by path. Each entry
	// is compiled as though it were a file with the given name.
	Inline     map[string]string
	DumpTokens bool
	DumpTree   bool
}

type CompileResponse struct {
	Image *Image
}

type Image struct {
	Modules []*Module
}

type Module struct {
	URI     string
	Program Program
}

type LexerFile interface {
	File
	Tokens(ctx context.Context) (Iterator[*Token], error)
}

type Lexer interface {
	Lex(ctx context.Context, f File) (LexerFile, error)
}

type Parser interface {
	Parse(ctx context.Context, f LexerFile) (*Module, error)
}

// Location is a position within a source file. Line and Column are 1-based
// and Offset is the 0-based byte offset.
type Location struct {
	Line   int32
	Column int32
	Offset int64
}

type Span struct {
	Start Location
	End   Location
}

type Token struct {
	Span   Span
	Symbol Symbol
	Value  string
}
