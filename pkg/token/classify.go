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

package token

import "strings"

var controlFlowKeywords = map[string]bool{
	"goto": true, "do": true, "if": true, "else": true, "for": true,
	"while": true, "switch": true, "case": true, "break": true,
	"continue": true, "return": true,
}

var stdTypes = map[string]bool{
	"bool": true, "_Bool": true, "char": true, "double": true,
	"float": true, "int": true, "long": true, "short": true,
	"size_t": true, "void": true, "wchar_t": true,
}

var stringPrefixes = []string{"u8", "u", "U", "L"}

// updatePropertyInfo reclassifies the token after str changes, following
// the cascade in cppcheck's Token::update_property_info: each rule is
// tried in order and the first match wins.
func (t *Token) updatePropertyInfo() {
	t.flags.set(FlagControlFlowKeyword, controlFlowKeywords[t.str])

	if stdTypes[t.str] {
		t.flags.set(FlagStandardType, true)
		t.kind = KindType
		return
	}
	t.flags.set(FlagStandardType, false)

	if t.str == "" {
		t.kind = KindNone
		return
	}

	if t.str == "true" || t.str == "false" {
		t.kind = KindBoolean
		return
	}

	if lit, ok := stripStringPrefix(t.str, '"'); ok {
		t.str = lit.body
		t.flags.set(FlagLong, lit.prefix != "u8" && lit.prefix != "")
		t.kind = KindString
		return
	}

	if lit, ok := stripStringPrefix(t.str, '\''); ok {
		t.str = lit.body
		t.flags.set(FlagLong, lit.prefix != "u8" && lit.prefix != "")
		t.kind = KindChar
		return
	}

	c0 := t.str[0]
	if isAlpha(c0) || c0 == '_' || c0 == '$' {
		if t.TokenImpl.VarID != 0 {
			t.kind = KindVariable
		} else if t.kind != KindVariable && t.kind != KindFunction && t.kind != KindType && t.kind != KindKeyword {
			t.kind = KindName
		}
		return
	}

	if isDigit(c0) || (c0 == '-' && len(t.str) > 1 && isDigit(t.str[1])) {
		t.kind = KindNumber
		return
	}

	if isAssignment(t.str) {
		t.kind = KindAssignment
		return
	}

	if len(t.str) == 1 && strings.IndexByte(",[]()?:", t.str[0]) >= 0 {
		t.kind = KindExtendedOp
		return
	}

	if t.str == "<<" || t.str == ">>" || (len(t.str) == 1 && strings.IndexByte("+-*/%", t.str[0]) >= 0) {
		t.kind = KindArithmetic
		return
	}

	if len(t.str) == 1 && strings.IndexByte("&|^~", t.str[0]) >= 0 {
		t.kind = KindBit
		return
	}

	if t.str == "&&" || t.str == "||" || t.str == "!" {
		t.kind = KindLogical
		return
	}

	if t.link == nil && isComparison(t.str) {
		t.kind = KindComparison
		return
	}

	if t.str == "++" || t.str == "--" {
		t.kind = KindIncDec
		return
	}

	if t.str == "{" || t.str == "}" || ((t.str == "<" || t.str == ">") && t.link != nil) {
		t.kind = KindBracket
		return
	}

	t.kind = KindOther
}

func isAssignment(s string) bool {
	if s == "=" || s == "<<=" || s == ">>=" {
		return true
	}
	if len(s) == 2 && s[1] == '=' && strings.IndexByte("+-*/%&^|", s[0]) >= 0 {
		return true
	}
	return false
}

func isComparison(s string) bool {
	switch s {
	case "==", "!=", "<", "<=", ">", ">=":
		return true
	}
	return false
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

type literal struct {
	prefix string
	body   string
}

// stripStringPrefix recognizes a string/char literal delimited by quote,
// possibly prefixed by one of u8, u, U, L, and strips the prefix from the
// returned body, mirroring update_property_char_string_literal.
func stripStringPrefix(s string, quote byte) (literal, bool) {
	for _, p := range stringPrefixes {
		if strings.HasPrefix(s, p+string(quote)) && strings.HasSuffix(s, string(quote)) && len(s) >= len(p)+2 {
			return literal{prefix: p, body: s[len(p):]}, true
		}
	}
	if len(s) >= 2 && s[0] == quote && s[len(s)-1] == quote {
		return literal{prefix: "", body: s}, true
	}
	return literal{}, false
}
