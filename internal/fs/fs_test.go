// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package fs

import (
	"context"
	"io"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"gopkg.microglot.org/bfc.go/internal/exc"
	"gopkg.microglot.org/bfc.go/internal/idl"
)

func readAll(t *testing.T, ctx context.Context, f idl.File) string {
	t.Helper()
	body, err := f.Body(ctx)
	require.NoError(t, err)
	var out []byte
	for {
		b, err := body.Read(ctx, 4)
		out = append(out, b...)
		if err != nil {
			require.ErrorIs(t, err, io.EOF)
			break
		}
	}
	require.NoError(t, body.Close(ctx))
	return string(out)
}

func newMapFS(t *testing.T, files fstest.MapFS) idl.FileSystem {
	t.Helper()
	local, err := NewFileSystemLocal("/", WithOptionFSFactory(func(string) fs.FS { return files }))
	require.NoError(t, err)
	return local
}

func TestFileString(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := NewFileString("/hello.bf", "+[->+<]", idl.FileKindBrainfuck)
	require.Equal(t, "/hello.bf", f.Path(ctx))
	require.Equal(t, idl.FileKindBrainfuck, f.Kind(ctx))
	require.Equal(t, "+[->+<]", readAll(t, ctx, f))
	// Each call to Body starts from the beginning.
	require.Equal(t, "+[->+<]", readAll(t, ctx, f))
}

func TestFileBodyCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	body, err := NewFileString("/a.bf", "+", idl.FileKindBrainfuck).Body(ctx)
	require.NoError(t, err)
	cancel()
	_, err = body.Read(ctx, 1)
	require.ErrorIs(t, err, context.Canceled)
}

func TestFileSystemLocal(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	local := newMapFS(t, fstest.MapFS{
		"src/b.bf":        &fstest.MapFile{Data: []byte("-")},
		"src/a.b":         &fstest.MapFile{Data: []byte("+")},
		"src/notes.txt":   &fstest.MapFile{Data: []byte("nope")},
		"src/nested/c.bf": &fstest.MapFile{Data: []byte(".")},
		"empty/readme":    &fstest.MapFile{Data: []byte("nothing")},
	})

	files, err := local.Open(ctx, "/src/b.bf")
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, "/src/b.bf", files[0].Path(ctx))
	require.Equal(t, "-", readAll(t, ctx, files[0]))

	files, err = local.Open(ctx, "file:///src")
	require.NoError(t, err)
	require.Len(t, files, 2)
	require.Equal(t, "/src/a.b", files[0].Path(ctx))
	require.Equal(t, "/src/b.bf", files[1].Path(ctx))
	require.Equal(t, "+", readAll(t, ctx, files[0]))

	_, err = local.Open(ctx, "/empty")
	require.True(t, exc.HasCode(err, exc.CodeFileNotFound))

	_, err = local.Open(ctx, "/missing.bf")
	require.True(t, exc.HasCode(err, exc.CodeFileNotFound))
}

func TestFileSystemMulti(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	first := newMapFS(t, fstest.MapFS{"a.bf": &fstest.MapFile{Data: []byte("first")}})
	second := newMapFS(t, fstest.MapFS{
		"a.bf": &fstest.MapFile{Data: []byte("second")},
		"b.bf": &fstest.MapFile{Data: []byte("only")},
	})
	multi := FileSystemMulti{first, second}

	files, err := multi.Open(ctx, "/a.bf")
	require.NoError(t, err)
	require.Equal(t, "first", readAll(t, ctx, files[0]))

	files, err = multi.Open(ctx, "/b.bf")
	require.NoError(t, err)
	require.Equal(t, "only", readAll(t, ctx, files[0]))

	_, err = multi.Open(ctx, "/c.bf")
	require.True(t, exc.HasCode(err, exc.CodeFileNotFound))

	err = multi.Write(ctx, "/c.bf", "")
	require.True(t, exc.HasCode(err, exc.CodeUnsuportedFileSystemOperation))
}

func TestFileSystemLocalWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	root := t.TempDir()
	local, err := NewFileSystemLocal(root)
	require.NoError(t, err)
	require.NoError(t, local.Write(ctx, "/out/tree.txt", "[+]"))

	files, err := local.Open(ctx, "/out/tree.txt")
	require.NoError(t, err)
	require.Equal(t, idl.FileKindNone, files[0].Kind(ctx))
	require.Equal(t, "[+]", readAll(t, ctx, files[0]))
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	require.Equal(t, idl.FileKindBrainfuck, KindOf("/x/y.bf"))
	require.Equal(t, idl.FileKindBrainfuck, KindOf("y.b"))
	require.Equal(t, idl.FileKindNone, KindOf("y.txt"))
}
