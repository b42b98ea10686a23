// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"bytes"
	"context"
	"errors"
	iofs "io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"gopkg.microglot.org/bfc.go/internal/exc"
	"gopkg.microglot.org/bfc.go/internal/fs"
	"gopkg.microglot.org/bfc.go/internal/idl"
)

type CompilerTestFile struct {
	uri      string
	contents string
}

func newTestCompiler(t *testing.T, files []CompilerTestFile, out *bytes.Buffer) idl.Compiler {
	t.Helper()
	mapFS := fstest.MapFS{}
	for _, f := range files {
		mapFS[strings.TrimPrefix(f.uri, "/")] = &fstest.MapFile{Data: []byte(f.contents)}
	}
	local, err := fs.NewFileSystemLocal("/", fs.WithOptionFSFactory(func(string) iofs.FS { return mapFS }))
	require.NoError(t, err)
	c, err := New(
		OptionWithFS(local),
		OptionWithOutput(out),
		OptionWithMaxConcurrency(2),
		OptionWithLookupEnv(func(string) (string, bool) { return "", false }),
	)
	require.NoError(t, err)
	return c
}

func TestCompile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	testCases := []struct {
		name     string
		files    []CompilerTestFile
		targets  []string
		inline   map[string]string
		expected map[string]string
		codes    []string
	}{
		{
			name: "single file",
			files: []CompilerTestFile{
				{uri: "/hello.bf", contents: "++ add two\n[>+<-] move"},
			},
			targets:  []string{"hello.bf"},
			expected: map[string]string{"/hello.bf": "++[>+<-]"},
		},
		{
			name: "directory",
			files: []CompilerTestFile{
				{uri: "/src/a.bf", contents: "+"},
				{uri: "/src/b.b", contents: "-"},
				{uri: "/src/readme.md", contents: "[ not a program"},
			},
			targets:  []string{"/src"},
			expected: map[string]string{"/src/a.bf": "+", "/src/b.b": "-"},
		},
		{
			name: "duplicate targets",
			files: []CompilerTestFile{
				{uri: "/a.bf", contents: "."},
			},
			targets:  []string{"a.bf", "file:///a.bf"},
			expected: map[string]string{"/a.bf": "."},
		},
		{
			name:     "inline",
			inline:   map[string]string{"expr": ",[.,]"},
			expected: map[string]string{"/expr": ",[.,]"},
		},
		{
			name: "parse failure alongside success",
			files: []CompilerTestFile{
				{uri: "/good.bf", contents: "+"},
				{uri: "/bad.bf", contents: "[+"},
			},
			targets:  []string{"good.bf", "bad.bf"},
			expected: map[string]string{"/good.bf": "+"},
			codes:    []string{exc.CodeTrailingInput},
		},
		{
			name:     "missing file",
			targets:  []string{"missing.bf"},
			expected: map[string]string{},
			codes:    []string{exc.CodeFileNotFound},
		},
		{
			name: "unsupported file",
			files: []CompilerTestFile{
				{uri: "/notes.txt", contents: "+"},
			},
			targets:  []string{"notes.txt"},
			expected: map[string]string{},
			codes:    []string{exc.CodeUnsupportedFileFormat},
		},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			c := newTestCompiler(t, testCase.files, &out)
			resp, err := c.Compile(ctx, &idl.CompileRequest{
				Files:  testCase.targets,
				Inline: testCase.inline,
			})

			if len(testCase.codes) > 0 {
				var me MultiException
				require.True(t, errors.As(err, &me))
				require.Len(t, me, len(testCase.codes))
				for x, code := range testCase.codes {
					require.Equal(t, code, me[x].Code())
				}
			} else {
				require.NoError(t, err)
			}

			require.NotNil(t, resp)
			actual := make(map[string]string, len(resp.Image.Modules))
			for _, mod := range resp.Image.Modules {
				actual[mod.URI] = mod.Program.String()
			}
			require.Equal(t, testCase.expected, actual)
			require.Empty(t, out.String())
		})
	}
}

func TestCompileDirectorySkipsUnknownKinds(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mapFS := fstest.MapFS{
		"src/a.bf":      &fstest.MapFile{Data: []byte("+")},
		"src/notes.txt": &fstest.MapFile{Data: []byte("[")},
	}
	local, err := fs.NewFileSystemLocal("/",
		fs.WithOptionFSFactory(func(string) iofs.FS { return mapFS }),
		fs.WithOptionFileFilter(func(context.Context, string) bool { return true }),
	)
	require.NoError(t, err)
	c, err := New(OptionWithFS(local), OptionWithOutput(&bytes.Buffer{}))
	require.NoError(t, err)

	resp, err := c.Compile(ctx, &idl.CompileRequest{Files: []string{"/src"}})
	require.NoError(t, err)
	require.Len(t, resp.Image.Modules, 1)
	require.Equal(t, "/src/a.bf", resp.Image.Modules[0].URI)
}

func TestCompileDumps(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	var out bytes.Buffer
	c := newTestCompiler(t, []CompilerTestFile{{uri: "/a.bf", contents: "+\n[-]"}}, &out)
	_, err := c.Compile(ctx, &idl.CompileRequest{
		Files:      []string{"a.bf"},
		DumpTokens: true,
		DumpTree:   true,
	})
	require.NoError(t, err)
	require.Equal(t, strings.Join([]string{
		"/a.bf:1:1\tIncrementValue          '+'",
		"/a.bf:2:1\tLeftBracket             '['",
		"/a.bf:2:2\tDecrementValue          '-'",
		"/a.bf:2:3\tRightBracket            ']'",
		"/a.bf",
		"  Operator(IncrementValue)",
		"  Loop",
		"    Operator(DecrementValue)",
		"",
	}, "\n"), out.String())
}

func TestCompileCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	c := newTestCompiler(t, nil, &out)
	_, err := c.Compile(ctx, &idl.CompileRequest{Inline: map[string]string{"a": "+"}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestMultiException(t *testing.T) {
	t.Parallel()

	me := MultiException{
		exc.New(exc.Location{URI: "/a.bf"}, exc.CodeTrailingInput, "one"),
		exc.New(exc.Location{URI: "/b.bf"}, exc.CodeTrailingInput, "two"),
	}
	require.Equal(t, "/a.bf:0:0 -- M0105: one; /b.bf:0:0 -- M0105: two", me.Error())
}

func TestProgramStats(t *testing.T) {
	t.Parallel()

	program := idl.Program{
		idl.Operator{Symbol: idl.SymbolIncrementValue},
		idl.Loop{Body: []idl.Expression{
			idl.Loop{Body: []idl.Expression{idl.Operator{Symbol: idl.SymbolOutput}}},
			idl.Operator{Symbol: idl.SymbolDecrementValue},
		}},
	}
	require.Equal(t, stats{Operators: 3, Loops: 2, MaxDepth: 3}, programStats(program))
	require.Equal(t, stats{}, programStats(nil))

	var depths []int
	walkProgram(program, func(depth int, e idl.Expression) {
		depths = append(depths, depth)
	})
	require.Equal(t, []int{1, 1, 2, 3, 2}, depths)
}

func TestDefaultRoots(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"XDG_DATA_DIRS": "/opt/share::$HOME/.local/share",
		"HOME":          "/home/user",
		"USERPROFILE":   `C:\Users\user`,
		"SystemDrive":   `C:`,
	}
	roots := getDefaultRoots(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	require.NotEmpty(t, roots)
	for _, root := range roots {
		require.Contains(t, root, "bfc")
	}
	_, err := NewDefaultFS(func(string) (string, bool) { return "", false })
	require.NoError(t, err)
}
