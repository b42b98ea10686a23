// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package brainfuck

import (
	"fmt"

	"gopkg.microglot.org/bfc.go/internal/exc"
	"gopkg.microglot.org/bfc.go/internal/idl"
)

// attempt runs the rule and, if it fails, rewinds the source to where it was
// before the rule started. The cursor after a failed attempt is always
// identical to the cursor before it.
func attempt[T any](src *source, rule func(*source) (T, exc.Exception)) (T, exc.Exception) {
	snap := src.snapshot()
	v, err := rule(src)
	if err != nil {
		src.restore(snap)
		var zero T
		return zero, err
	}
	return v, nil
}

// Expression = Loop | Operator
func parseExpression(src *source) (idl.Expression, exc.Exception) {
	loop, loopErr := attempt(src, parseLoop)
	if loopErr == nil {
		return loop, nil
	}
	op, opErr := attempt(src, parseOperator)
	if opErr == nil {
		return op, nil
	}
	return nil, exc.Join(symbolLocation(src.cursor), exc.CodeNoViableAlternative, "parse error", loopErr, opErr)
}

// ExpressionList = Expression { Expression }
//
// The repetition is greedy and never gives back an accepted expression. The
// failure that ends it is discarded.
func parseExpressionList(src *source) ([]idl.Expression, exc.Exception) {
	var exprs []idl.Expression
	for {
		e, err := attempt(src, parseExpression)
		if err != nil {
			break
		}
		exprs = append(exprs, e)
	}
	if len(exprs) < 1 {
		return nil, exc.New(symbolLocation(src.cursor), exc.CodeEmptyExpressionList, "expected at least one expression")
	}
	return exprs, nil
}

// Loop = "[" ExpressionList "]"
func parseLoop(src *source) (idl.Expression, exc.Exception) {
	offset := src.cursor
	if sym := src.next(); sym != idl.SymbolLeftBracket {
		return nil, exc.New(symbolLocation(offset), exc.CodeMissingLeftBracket, fmt.Sprintf("expected left bracket but got %s", sym))
	}
	body, err := attempt(src, parseExpressionList)
	if err != nil {
		return nil, err
	}
	offset = src.cursor
	if sym := src.next(); sym != idl.SymbolRightBracket {
		return nil, exc.New(symbolLocation(offset), exc.CodeMissingRightBracket, fmt.Sprintf("expected right bracket but got %s", sym))
	}
	return idl.Loop{Body: body}, nil
}

// Operator = ">" | "<" | "+" | "-" | "." | ","
func parseOperator(src *source) (idl.Expression, exc.Exception) {
	offset := src.cursor
	sym := src.next()
	if !sym.IsOperator() {
		return nil, exc.New(symbolLocation(offset), exc.CodeUnexpectedSymbol, fmt.Sprintf("expected an operator but got %s", sym))
	}
	return idl.Operator{Symbol: sym}, nil
}
