// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package iter

import (
	"bufio"
	"context"
	"errors"
	"io"

	"gopkg.microglot.org/bfc.go/internal/exc"
	"gopkg.microglot.org/bfc.go/internal/idl"
	"gopkg.microglot.org/bfc.go/internal/optional"
)

// NewRunes converts a FileBody into an iterator of decoded runes. The given
// context is used for all reads of the body. Each invalid UTF-8 byte is
// produced as utf8.RuneError with a width of one byte.
func NewRunes(ctx context.Context, b idl.FileBody) idl.Iterator[idl.Rune] {
	rc := &fileBodyIO{
		ctx:  ctx,
		body: b,
	}
	return &runes{
		readCloser: rc,
		reader:     bufio.NewReader(rc),
	}
}

type runes struct {
	readCloser io.ReadCloser
	reader     *bufio.Reader
	err        error
}

func (f *runes) Next(ctx context.Context) optional.Optional[idl.Rune] {
	if f.err != nil {
		return optional.None[idl.Rune]()
	}
	r, size, err := f.reader.ReadRune()
	if err != nil {
		f.err = err
		return optional.None[idl.Rune]()
	}
	return optional.Some(idl.Rune{Point: idl.CodePoint(r), Width: size})
}

func (f *runes) Close(context.Context) error {
	closeErr := f.readCloser.Close()
	if f.err != nil && !errors.Is(f.err, io.EOF) {
		return f.err
	}
	return closeErr
}

// fileBodyIO adapts a context aware FileBody to io.ReadCloser. The body
// reports end of input with an exception carrying exc.CodeEOF which is
// translated back into io.EOF here.
type fileBodyIO struct {
	ctx  context.Context
	body idl.FileBody
}

func (self *fileBodyIO) Read(p []byte) (int, error) {
	b, err := self.body.Read(self.ctx, int32(len(p)))
	n := copy(p, b)
	if err == nil {
		return n, nil
	}
	if isEOF(err) {
		return n, io.EOF
	}
	return n, err
}

func (self *fileBodyIO) Close() error {
	return self.body.Close(self.ctx)
}

func isEOF(err error) bool {
	if errors.Is(err, io.EOF) {
		return true
	}
	var e exc.Exception
	return errors.As(err, &e) && e.Code() == exc.CodeEOF
}
