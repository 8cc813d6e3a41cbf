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

// Package ast provides the read-only AST queries layered over a token
// stream once SetAstOperand1/2 (pkg/token) have wired the operand/parent
// edges: expression-range extraction, calculation/unary-prefix detection,
// and the deterministic textual renderings checkers and dumps rely on.
package ast

import (
	"strings"

	"naive.systems/tokenflow/internal/settings"
	"naive.systems/tokenflow/pkg/token"
)

// terminatePollInterval mirrors pkg/pattern's polling granularity for
// Settings.Terminated, per spec §5/§9: the bracket-finding scans below are
// the other long-running loops the spec calls out by name.
const terminatePollInterval = 4096

// FindClosingBracket scans forward from a '<' token tracking template
// nesting depth, recursing through unrelated bracket links, and treats a
// ">>" as two closes at once: if the current depth is at most 2, the ">>"
// token itself is the close. s may be nil, in which case the scan runs to
// completion unconditionally; when non-nil, the scan polls s.Terminated()
// every terminatePollInterval tokens and aborts early once a cooperative
// terminate request has been observed (spec §5/§9).
func FindClosingBracket(lt *token.Token, s *settings.Settings) *token.Token {
	if lt == nil || lt.Str() != "<" {
		return nil
	}
	depth := 0
	for t, i := lt, 0; t != nil; t, i = t.Next(), i+1 {
		if s != nil && i%terminatePollInterval == 0 && s.Terminated() {
			return nil
		}
		switch t.Str() {
		case "<":
			depth++
		case ">":
			depth--
			if depth == 0 {
				return t
			}
		case ">>":
			if depth <= 2 {
				return t
			}
			depth -= 2
		case "(", "{", "[":
			if link := t.Link(); link != nil {
				t = link
				continue
			}
		case ")", "}", "]":
			return nil
		case ";":
			return nil
		}
		if depth < 0 {
			return nil
		}
	}
	return nil
}

// FindOpeningBracket is the symmetric backward scan from a '>' token, with
// the same s-may-be-nil cooperative-terminate polling as FindClosingBracket.
func FindOpeningBracket(gt *token.Token, s *settings.Settings) *token.Token {
	if gt == nil || gt.Str() != ">" {
		return nil
	}
	depth := 0
	for t, i := gt, 0; t != nil; t, i = t.Prev(), i+1 {
		if s != nil && i%terminatePollInterval == 0 && s.Terminated() {
			return nil
		}
		switch t.Str() {
		case ">":
			depth++
		case "<":
			depth--
			if depth == 0 {
				return t
			}
		case ")", "}", "]":
			if link := t.Link(); link != nil {
				t = link
				continue
			}
		case "(", "{", "[":
			return nil
		case ";":
			return nil
		}
		if depth < 0 {
			return nil
		}
	}
	return nil
}

// NextArgument returns the token after the next top-level comma following
// tok, skipping any balanced sub-expression; it returns nil at a
// statement-ending ';' or at the enclosing close bracket.
func NextArgument(tok *token.Token) *token.Token {
	depth := 0
	for t := tok; t != nil; t = t.Next() {
		switch {
		case t.Str() == "(" || t.Str() == "[" || t.Str() == "{":
			depth++
		case t.Str() == ")" || t.Str() == "]" || t.Str() == "}":
			if depth == 0 {
				return nil
			}
			depth--
		case t.Str() == ";" && depth == 0:
			return nil
		case t.Str() == "," && depth == 0:
			return t.Next()
		}
	}
	return nil
}

// NextTemplateArgument is NextArgument restricted to template-angle-bracket
// nesting instead of parens/braces/squares.
func NextTemplateArgument(tok *token.Token) *token.Token {
	depth := 0
	for t := tok; t != nil; t = t.Next() {
		switch t.Str() {
		case "<":
			depth++
		case ">":
			if depth == 0 {
				return nil
			}
			depth--
		case ",":
			if depth == 0 {
				return t.Next()
			}
		}
	}
	return nil
}

// NextArgumentBeforeCreateLinks2 is NextArgument for use before bracket
// links exist yet: it tracks only paren depth, matching the narrower
// grammar available at that point in tokenization.
func NextArgumentBeforeCreateLinks2(tok *token.Token) *token.Token {
	depth := 0
	for t := tok; t != nil; t = t.Next() {
		switch t.Str() {
		case "(":
			depth++
		case ")":
			if depth == 0 {
				return nil
			}
			depth--
		case ";":
			if depth == 0 {
				return nil
			}
		case ",":
			if depth == 0 {
				return t.Next()
			}
		}
	}
	return nil
}

func goToLeftParenthesis(start, end *token.Token) *token.Token {
	for t := start; t != nil && t != end; t = t.Prev() {
		if t.Str() == "(" {
			return t
		}
	}
	return start
}

func goToRightParenthesis(start, end *token.Token) *token.Token {
	for t := start; t != nil && t != end; t = t.Next() {
		if t.Str() == ")" {
			return t
		}
	}
	return start
}

// FindExpressionStartEndTokens descends an AST node's operand chain to find
// the leftmost leaf and the rightmost leaf (preferring operand2, falling
// back to operand1), adjusting through balanced parentheses so the
// returned range covers the full sub-expression the node represents.
func FindExpressionStartEndTokens(ast *token.Token) (start, end *token.Token) {
	if ast == nil {
		return nil, nil
	}
	start = ast
	for start.AstOperand1() != nil {
		start = start.AstOperand1()
	}
	end = ast
	for {
		if end.AstOperand2() != nil {
			end = end.AstOperand2()
		} else if end.AstOperand1() != nil {
			end = end.AstOperand1()
		} else {
			break
		}
	}
	if start.Link() != nil && start.Str() == "(" {
		start = goToLeftParenthesis(start, nil)
	}
	if end.Link() != nil && end.Str() == ")" {
		end = goToRightParenthesis(end, nil)
	}
	// Take in grouping parentheses that enclose exactly this range; a call's
	// "(" carries the callee as its operand and is left out.
	for p := start.Prev(); p != nil && p.Str() == "(" && p.Link() != nil && p.Link() == end.Next() && p.AstOperand1() == nil; p = start.Prev() {
		start, end = p, p.Link()
	}
	return start, end
}

// IsCalculation reports whether tok (an operator) represents an actual
// calculation. For '*' and '&' this disambiguates unary (dereference /
// address-of) from binary (multiplication / bitwise-and) by checking
// whether both operand slots are populated.
func IsCalculation(tok *token.Token) bool {
	if tok == nil || !tok.IsOp() {
		return false
	}
	switch tok.Str() {
	case "*", "&":
		return tok.AstOperand1() != nil && tok.AstOperand2() != nil
	}
	return true
}

// IsUnaryPreOp reports whether tok is a unary operator whose operand lies
// textually to its right, as opposed to a postfix ++/-- whose operand
// lies to the left.
func IsUnaryPreOp(tok *token.Token) bool {
	if tok == nil {
		return false
	}
	if tok.Str() != "++" && tok.Str() != "--" {
		return tok.AstOperand1() != nil && tok.AstOperand2() == nil
	}
	op1 := tok.AstOperand1()
	if op1 == nil {
		return false
	}
	before, after := tok.Prev(), tok.Next()
	for distance := 0; distance < 10 && (before != nil || after != nil); distance++ {
		if before == op1 {
			return false
		}
		if after == op1 {
			return true
		}
		if before != nil {
			before = before.Prev()
		}
		if after != nil {
			after = after.Next()
		}
	}
	return false
}

// ExpressionString renders the token range an AST node covers as source
// text, tokens separated by a single space.
func ExpressionString(ast *token.Token) string {
	start, end := FindExpressionStartEndTokens(ast)
	if start == nil {
		return ""
	}
	var parts []string
	for t := start; t != nil; t = t.Next() {
		parts = append(parts, t.Str())
		if t == end {
			break
		}
	}
	return strings.Join(parts, " ")
}

// Stringify renders a single token's lexeme as source text. String and
// char tokens already carry their surrounding quotes in Str (only the
// encoding prefix is stripped during classification), so no extra
// quoting is applied here.
func Stringify(tok *token.Token) string {
	if tok == nil {
		return ""
	}
	return tok.Str()
}

// StringifyList renders [start, end] inclusive as space-joined source
// text (end == nil means to the end of the stream).
func StringifyList(start, end *token.Token) string {
	var parts []string
	for t := start; t != nil; t = t.Next() {
		parts = append(parts, Stringify(t))
		if t == end {
			break
		}
	}
	return strings.Join(parts, " ")
}

// AstStringVerbose renders ast and its subtree as an indented tree, one
// node per line, used by tests and debug dumps.
func AstStringVerbose(ast *token.Token, depth int) string {
	if ast == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(ast.Str())
	b.WriteByte('\n')
	b.WriteString(AstStringVerbose(ast.AstOperand1(), depth+1))
	b.WriteString(AstStringVerbose(ast.AstOperand2(), depth+1))
	return b.String()
}
