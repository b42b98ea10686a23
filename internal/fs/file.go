// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package fs

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"gopkg.microglot.org/bfc.go/internal/exc"
	"gopkg.microglot.org/bfc.go/internal/idl"
)

// NewFileString wraps static string content in idl.File.
func NewFileString(path string, content string, kind idl.FileKind) idl.File {
	return NewFileFN(path, func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(content)), nil
	}, kind)
}

type fileIOFunc struct {
	path string
	kind idl.FileKind
	body func() (io.ReadCloser, error)
}

// NewFileFN is intended to wrap actual file based content in the idl.File
// interface. The given body function is used each time there is a call to the
// idl.File.Body method so it must return a new io.ReadCloser handle.
func NewFileFN(path string, body func() (io.ReadCloser, error), kind idl.FileKind) idl.File {
	return &fileIOFunc{
		path: path,
		kind: kind,
		body: body,
	}
}

func (f *fileIOFunc) Path(ctx context.Context) string {
	return f.path
}

func (f *fileIOFunc) Kind(ctx context.Context) idl.FileKind {
	return f.kind
}

func (f *fileIOFunc) Body(ctx context.Context) (idl.FileBody, error) {
	rc, err := f.body()
	if err != nil {
		return nil, fsErr(f.path, err)
	}
	return &ioFileBody{
		uri: f.path,
		r:   bufio.NewReader(rc),
		c:   rc,
	}, nil
}

type ioFileBody struct {
	uri string
	r   io.Reader
	c   io.Closer
	b   []byte
}

// Read returns up to size bytes. The end of the body is signalled by an
// exception with exc.CodeEOF that wraps io.EOF.
func (self *ioFileBody) Read(ctx context.Context, size int32) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(self.b) < int(size) {
		self.b = make([]byte, size)
	}
	count, err := self.r.Read(self.b[:size])
	if errors.Is(err, io.EOF) {
		return self.b[:count], exc.Wrap(exc.Location{URI: self.uri}, exc.CodeEOF, err)
	}
	if err != nil {
		return nil, exc.WrapUnknown(exc.Location{URI: self.uri}, err)
	}
	return self.b[:count], nil
}

func (self *ioFileBody) Close(ctx context.Context) error {
	return self.c.Close()
}
