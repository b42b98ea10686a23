package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"gopkg.microglot.org/bfc.go/internal/compiler"
	"gopkg.microglot.org/bfc.go/internal/fs"
	"gopkg.microglot.org/bfc.go/internal/idl"
)

type opts struct {
	Roots      []string
	Output     string
	TreeFormat string
	Exprs      []string
	DumpTokens bool
	DumpTree   bool
	LogLevel   string
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	op := &opts{}
	flags := pflag.NewFlagSet("bfc", pflag.ExitOnError)
	flags.StringSliceVar(&op.Roots, "root", []string{"."}, "Root search paths for targets.")
	flags.StringVar(&op.Output, "output", "", "Write the parsed image to this file or - for STDOUT.")
	flags.StringVar(&op.TreeFormat, "tree-format", string(idl.TreeFormatText), "Format of the image written to --output: text, json, yaml, or proto.")
	flags.StringArrayVarP(&op.Exprs, "expr", "e", nil, "Parse the given program text. May be repeated.")
	flags.BoolVar(&op.DumpTokens, "dump-tokens", false, "Output the token stream as it is processed")
	flags.BoolVar(&op.DumpTree, "dump-tree", false, "Output the parse tree after parsing")
	flags.StringVar(&op.LogLevel, "log-level", "warn", "Log level: debug, info, warn, or error.")
	_ = flags.Parse(os.Args[1:])
	targets := flags.Args()

	var level slog.Level
	if err := level.UnmarshalText([]byte(op.LogLevel)); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if len(targets) < 1 && len(op.Exprs) < 1 {
		fmt.Fprintln(os.Stderr, "bfc: nothing to parse")
		flags.Usage()
		os.Exit(2)
	}

	df, err := compiler.NewDefaultFS(os.LookupEnv)
	if err != nil {
		panic(err)
	}

	mf := make(fs.FileSystemMulti, 0, len(op.Roots)+1)
	for _, root := range op.Roots {
		absRoot, errAbs := filepath.Abs(root)
		if errAbs != nil {
			panic(errAbs.Error())
		}
		rf, err := fs.NewFileSystemLocal(absRoot)
		if err != nil {
			panic(err.Error())
		}
		mf = append(mf, rf)
	}
	mf = append(mf, df)

	c, err := compiler.New(
		compiler.OptionWithLookupEnv(os.LookupEnv),
		compiler.OptionWithFS(mf),
		compiler.OptionWithLogger(logger),
	)
	if err != nil {
		panic(err)
	}

	inline := make(map[string]string, len(op.Exprs))
	for x, expr := range op.Exprs {
		inline[fmt.Sprintf("expr-%d", x)] = expr
	}

	out, err := c.Compile(ctx, &idl.CompileRequest{
		Files:      targets,
		Inline:     inline,
		DumpTokens: op.DumpTokens,
		DumpTree:   op.DumpTree,
	})
	if err != nil {
		var me compiler.MultiException
		if errors.As(err, &me) {
			for _, err := range me {
				fmt.Fprintln(os.Stderr, err.Error())
			}
			os.Exit(1)
		}
		panic(err)
	}

	if op.Output == "" {
		return
	}
	b, err := out.Image.Encode(idl.TreeFormat(op.TreeFormat))
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	if err = writeOutput(ctx, os.Stdout, op.Output, b); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// writeOutput sends the encoded image to stdout when output is "-" and
// otherwise writes it through a local file system rooted at the directory of
// output.
func writeOutput(ctx context.Context, stdout io.Writer, output string, b []byte) error {
	if output == "-" {
		_, err := stdout.Write(b)
		return err
	}
	abs, err := filepath.Abs(output)
	if err != nil {
		return err
	}
	out, err := fs.NewFileSystemLocal(filepath.Dir(abs))
	if err != nil {
		return err
	}
	return out.Write(ctx, filepath.Base(abs), string(b))
}
