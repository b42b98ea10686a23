// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"runtime"
	"slices"
	"strings"
	"sync"

	"gopkg.microglot.org/bfc.go/internal/exc"
	"gopkg.microglot.org/bfc.go/internal/fs"
	"gopkg.microglot.org/bfc.go/internal/idl"
	"gopkg.microglot.org/bfc.go/internal/target"
)

type Option func(c *compiler) error

func OptionWithFS(fs idl.FileSystem) Option {
	return func(c *compiler) error {
		c.FS = fs
		return nil
	}
}

func OptionWithLookupEnv(lookupEnv func(string) (string, bool)) Option {
	return func(c *compiler) error {
		c.LookupENV = lookupEnv
		return nil
	}
}

func OptionWithExcReporter(reporter exc.Reporter) Option {
	return func(c *compiler) error {
		c.Reporter = reporter
		return nil
	}
}

func OptionWithLogger(logger *slog.Logger) Option {
	return func(c *compiler) error {
		c.Logger = logger
		return nil
	}
}

// OptionWithOutput sets the destination of token and tree dumps. The default
// is os.Stdout.
func OptionWithOutput(w io.Writer) Option {
	return func(c *compiler) error {
		c.Output = w
		return nil
	}
}

func OptionWithMaxConcurrency(v int) Option {
	return func(c *compiler) error {
		c.MaxConcurrency = v
		return nil
	}
}

func New(opts ...Option) (idl.Compiler, error) {
	c := &compiler{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.LookupENV == nil {
		c.LookupENV = os.LookupEnv
	}
	if c.FS == nil {
		dfs, err := NewDefaultFS(c.LookupENV)
		if err != nil {
			return nil, err
		}
		c.FS = dfs
	}
	if c.MaxConcurrency < 1 {
		max := runtime.GOMAXPROCS(-1)
		cpus := runtime.NumCPU()
		if max > cpus {
			max = cpus
		}
		c.MaxConcurrency = max
	}
	if c.Semaphore == nil {
		c.Semaphore = newSemaphore(c.MaxConcurrency)
	}
	if c.Reporter == nil {
		c.Reporter = exc.NewReporter(nil)
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.Output == nil {
		c.Output = os.Stdout
	}
	if c.SubCompilers == nil {
		c.SubCompilers = DefaultSubCompilers(&syncWriter{w: c.Output})
	}
	return c, nil
}

type compiler struct {
	LookupENV      func(string) (string, bool)
	FS             idl.FileSystem
	MaxConcurrency int
	Semaphore      *semaphore
	Reporter       exc.Reporter
	Logger         *slog.Logger
	Output         io.Writer
	SubCompilers   map[idl.FileKind]SubCompiler
}

func (self *compiler) Compile(ctx context.Context, req *idl.CompileRequest) (*idl.CompileResponse, error) {
	files := make([]idl.File, 0, len(req.Files)+len(req.Inline))
	for _, f := range req.Files {
		uri := target.Normalize(f)
		in, err := self.FS.Open(ctx, uri)
		if err != nil {
			_ = self.Reporter.Report(asException(uri, err))
			continue
		}
		for _, inf := range in {
			if inf.Kind(ctx) == idl.FileKindNone {
				// A target naming a file directly must be a source. Files found
				// by expanding a directory are filtered quietly.
				if inf.Path(ctx) == uri {
					_ = self.Reporter.Report(exc.New(exc.Location{URI: uri}, exc.CodeUnsupportedFileFormat, "Unsupported file format"))
					continue
				}
				self.Logger.DebugContext(ctx, "skipping file of unknown kind", "file", inf.Path(ctx))
				continue
			}
			files = append(files, inf)
		}
	}
	names := make([]string, 0, len(req.Inline))
	for name := range req.Inline {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		files = append(files, fs.NewFileString(target.Normalize(name), req.Inline[name], idl.FileKindBrainfuck))
	}

	loaded := &sync.Map{}
	// Buffered so that workers never block after an early return.
	results := make(chan fileResult, len(files))
	for _, file := range files {
		go func(file idl.File) {
			mod, err := self.compileFile(ctx, file, loaded, req.DumpTokens, req.DumpTree)
			results <- fileResult{mod, err}
		}(file)
	}

	modules := make([]*idl.Module, 0, len(files))
	for x := 0; x < len(files); x = x + 1 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case result := <-results:
			if result.err != nil {
				var e exc.Exception
				if !errors.As(result.err, &e) {
					return nil, result.err
				}
				// Already reported by the sub-compiler.
				continue
			}
			if result.module != nil {
				modules = append(modules, result.module)
			}
		}
	}

	final := &idl.Image{}
	included := make(map[string]bool)
	for _, mod := range modules {
		if included[mod.URI] {
			continue
		}
		included[mod.URI] = true
		final.Modules = append(final.Modules, mod)
	}
	slices.SortFunc(final.Modules, func(a *idl.Module, b *idl.Module) int {
		return strings.Compare(a.URI, b.URI)
	})
	self.Logger.InfoContext(ctx, "compiled", "files", len(files), "modules", len(final.Modules))

	caught := self.Reporter.Reported()
	if len(caught) > 0 {
		return &idl.CompileResponse{
			Image: final,
		}, MultiException(caught)
	}
	return &idl.CompileResponse{
		Image: final,
	}, nil
}

func (self *compiler) compileFile(ctx context.Context, file idl.File, loaded *sync.Map, dumpTokens bool, dumpTree bool) (*idl.Module, error) {
	self.Semaphore.Lock()
	defer self.Semaphore.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, ok := loaded.LoadOrStore(file.Path(ctx), true); ok {
		return nil, nil
	}
	sc := self.SubCompilers[file.Kind(ctx)]
	if sc == nil {
		e := exc.New(exc.Location{URI: file.Path(ctx)}, exc.CodeUnsupportedFileFormat, "Unsupported file format")
		return nil, self.Reporter.Report(e)
	}
	mod, err := sc.CompileFile(ctx, self.Reporter, file, dumpTokens, dumpTree)
	if err != nil || mod == nil {
		return mod, err
	}
	stats := programStats(mod.Program)
	self.Logger.DebugContext(ctx, "parsed file",
		"file", mod.URI,
		"operators", stats.Operators,
		"loops", stats.Loops,
		"depth", stats.MaxDepth,
	)
	return mod, nil
}

// asException converts file system failures into exceptions so that they can
// be reported alongside parse failures.
func asException(uri string, err error) exc.Exception {
	var e exc.Exception
	if errors.As(err, &e) {
		return e
	}
	return exc.WrapUnknown(exc.Location{URI: uri}, err)
}

type fileResult struct {
	module *idl.Module
	err    error
}

type MultiException []exc.Exception

func (self MultiException) Error() string {
	var b strings.Builder
	for _, err := range self[:len(self)-1] {
		b.WriteString(err.Error())
		b.WriteString("; ")
	}
	b.WriteString(self[len(self)-1].Error())
	return b.String()
}

// syncWriter serialises writes from concurrently compiled files.
type syncWriter struct {
	lock sync.Mutex
	w    io.Writer
}

func (self *syncWriter) Write(p []byte) (int, error) {
	self.lock.Lock()
	defer self.lock.Unlock()
	return self.w.Write(p)
}
