package compiler

import (
	"gopkg.microglot.org/bfc.go/internal/idl"
)

// walkProgram visits every expression depth first, parents before children.
// Top level expressions have depth 1.
func walkProgram(program idl.Program, f func(depth int, e idl.Expression)) {
	walkExpressions(program, 1, f)
}

func walkExpressions(exprs []idl.Expression, depth int, f func(int, idl.Expression)) {
	for _, e := range exprs {
		f(depth, e)
		if loop, ok := e.(idl.Loop); ok {
			walkExpressions(loop.Body, depth+1, f)
		}
	}
}

type stats struct {
	Operators int
	Loops     int
	MaxDepth  int
}

func programStats(program idl.Program) stats {
	var s stats
	walkProgram(program, func(depth int, e idl.Expression) {
		switch e.(type) {
		case idl.Operator:
			s.Operators = s.Operators + 1
		case idl.Loop:
			s.Loops = s.Loops + 1
		}
		if depth > s.MaxDepth {
			s.MaxDepth = depth
		}
	})
	return s
}
