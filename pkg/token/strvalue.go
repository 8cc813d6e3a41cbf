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

// GetStrSize counts the characters of a string token, treating a "\x"
// escape as a single character. tok must be a String token.
func GetStrSize(tok *Token) int {
	s := literalBody(tok)
	count := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		count++
	}
	return count
}

// GetStrLength is GetStrSize but stops counting at an embedded "\0".
func GetStrLength(tok *Token) int {
	s := literalBody(tok)
	count := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			if s[i+1] == '0' {
				return count
			}
			i++
		} else if s[i] == 0 {
			return count
		}
		count++
	}
	return count
}

// GetCharAt returns the i-th logical character of a string token: a
// two-byte string for an escape sequence, or "\0" once i is past the
// logical end.
func GetCharAt(tok *Token, i int) string {
	s := literalBody(tok)
	pos := 0
	for cursor := 0; cursor < len(s); pos++ {
		if pos == i {
			if s[cursor] == '\\' && cursor+1 < len(s) {
				return s[cursor : cursor+2]
			}
			return s[cursor : cursor+1]
		}
		if s[cursor] == '\\' && cursor+1 < len(s) {
			cursor += 2
		} else {
			cursor++
		}
	}
	return "\x00"
}

// StrValue decodes \n, \r, \t, \\ escapes and truncates at an embedded \0.
func StrValue(tok *Token) string {
	s := literalBody(tok)
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case '\\':
				b.WriteByte('\\')
			case '0':
				return b.String()
			default:
				b.WriteByte(s[i+1])
			}
			i++
			continue
		}
		if s[i] == 0 {
			return b.String()
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// literalBody strips the surrounding quotes classification left on the
// token's Str (String/Char tokens keep their delimiters in Str; only the
// prefix is stripped by updatePropertyInfo).
func literalBody(tok *Token) string {
	s := tok.Str()
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return ""
}
