/*
tokenflow - A static analysis token-stream and value-flow engine
Copyright (C) 2023  Naive Systems Ltd.

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package ast

import (
	"testing"

	"naive.systems/tokenflow/internal/settings"
	"naive.systems/tokenflow/pkg/token"
)

func TestFindClosingBracketTemplateDepth(t *testing.T) {
	// A < B < C >> D — the outer "<" closes at the ">>" two nesting levels
	// down, since a ">>" counts as two closes at once.
	l := token.NewTokenList()
	a := l.AppendToken("A", 0, 1, 0)
	l.AppendToken("<", 0, 1, 0)
	l.AppendToken("B", 0, 1, 0)
	l.AppendToken("<", 0, 1, 0)
	l.AppendToken("C", 0, 1, 0)
	rshift := l.AppendToken(">>", 0, 1, 0)
	l.AppendToken("D", 0, 1, 0)

	lt := a.Next()
	if got := FindClosingBracket(lt, nil); got != rshift {
		t.Fatalf("FindClosingBracket found %v, want the >> token", got)
	}
}

func TestFindOpeningBracketIsSymmetric(t *testing.T) {
	l := token.NewTokenList()
	a := l.AppendToken("A", 0, 1, 0)
	lt := l.AppendToken("<", 0, 1, 0)
	l.AppendToken("B", 0, 1, 0)
	gt := l.AppendToken(">", 0, 1, 0)
	_ = a

	if got := FindOpeningBracket(gt, nil); got != lt {
		t.Fatalf("FindOpeningBracket found %v, want the opening <", got)
	}
}

func TestFindClosingBracketStopsWhenTerminated(t *testing.T) {
	l := token.NewTokenList()
	lt := l.AppendToken("<", 0, 1, 0)
	l.AppendToken("B", 0, 1, 0)
	l.AppendToken(">", 0, 1, 0)

	s := settings.Default()
	s.RequestTerminate()
	if got := FindClosingBracket(lt, s); got != nil {
		t.Fatal("FindClosingBracket should abort and return nil once Terminated is observed")
	}
}

func TestFindOpeningBracketStopsWhenTerminated(t *testing.T) {
	l := token.NewTokenList()
	l.AppendToken("<", 0, 1, 0)
	l.AppendToken("B", 0, 1, 0)
	gt := l.AppendToken(">", 0, 1, 0)

	s := settings.Default()
	s.RequestTerminate()
	if got := FindOpeningBracket(gt, s); got != nil {
		t.Fatal("FindOpeningBracket should abort and return nil once Terminated is observed")
	}
}

func TestNextArgumentSkipsNestedCommas(t *testing.T) {
	// f(g(1,2), 3) — NextArgument from the first argument's first token "g"
	// should land on "3", skipping the comma inside g(1,2).
	l := token.NewTokenList()
	l.AppendToken("f", 0, 1, 0)
	l.AppendToken("(", 0, 1, 0)
	g := l.AppendToken("g", 0, 1, 0)
	l.AppendToken("(", 0, 1, 0)
	l.AppendToken("1", 0, 1, 0)
	l.AppendToken(",", 0, 1, 0)
	l.AppendToken("2", 0, 1, 0)
	l.AppendToken(")", 0, 1, 0)
	l.AppendToken(",", 0, 1, 0)
	three := l.AppendToken("3", 0, 1, 0)
	l.AppendToken(")", 0, 1, 0)

	if got := NextArgument(g); got != three {
		t.Fatalf("NextArgument found %v, want the outer 3", got)
	}
}

func TestExpressionStringAndAstAcyclicSubtree(t *testing.T) {
	// ( a + b ) — building the classic scenario: '+' is the AST root with
	// operands a and b, and the surrounding parens are consumed by
	// FindExpressionStartEndTokens via the bracket link.
	l := token.NewTokenList()
	open := l.AppendToken("(", 0, 1, 0)
	a := l.AppendToken("a", 0, 1, 0)
	plus := l.AppendToken("+", 0, 1, 0)
	b := l.AppendToken("b", 0, 1, 0)
	shut := l.AppendToken(")", 0, 1, 0)
	l.CreateMutualLinks(open, shut)

	plus.SetAstOperand1(a)
	plus.SetAstOperand2(b)

	if !IsCalculation(plus) {
		t.Fatal("'+' with both operands should be a calculation")
	}
	if got := ExpressionString(plus); got != "( a + b )" {
		t.Fatalf("ExpressionString(plus) = %q, want %q", got, "( a + b )")
	}
}

func TestIsUnaryPreOp(t *testing.T) {
	l := token.NewTokenList()
	star := l.AppendToken("*", 0, 1, 0)
	x := l.AppendToken("x", 0, 1, 0)
	star.SetAstOperand1(x)
	if !IsUnaryPreOp(star) {
		t.Fatal("*x should classify as a unary prefix operator")
	}
}

func TestStringifyQuotesStringLiterals(t *testing.T) {
	l := token.NewTokenList()
	tok := l.AppendToken(`"hi"`, 0, 1, 0)
	if got := Stringify(tok); got != `"hi"` {
		t.Fatalf("Stringify(%q) = %q, want %q", tok.Str(), got, `"hi"`)
	}
}
