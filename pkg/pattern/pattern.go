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

// Package pattern implements the textual token-sequence matching
// mini-language used throughout the analyzer ("if ( %var% == %num% )",
// "%name%|%num%", "!!else", "[,;]"). It is purpose-built for this token
// stream, not a general parser generator (spec §1 Non-goals), so it has no
// third-party grounding beyond the stream types themselves.
package pattern

import (
	"strings"

	"naive.systems/tokenflow/internal/errs"
	"naive.systems/tokenflow/internal/settings"
	"naive.systems/tokenflow/pkg/token"
)

// terminatePollInterval is the coarse granularity at which FindMatch and
// FindSimpleMatch poll Settings.Terminated, per spec §5/§9: cheap enough
// not to matter for normal-sized scans, coarse enough not to dominate the
// cost of the scan itself.
const terminatePollInterval = 4096

// SimpleMatch tests a literal, whitespace-separated sequence of words
// against the stream starting at tok. It never interprets %...% metatokens
// or alternation.
func SimpleMatch(tok *token.Token, pattern string) bool {
	words := strings.Fields(pattern)
	t := tok
	for _, w := range words {
		if t == nil || t.Str() != w {
			return false
		}
		t = t.Next()
	}
	return true
}

// Match tests the full pattern language against the stream starting at
// tok. varid resolves any %varid% metatoken encountered; using %varid% with
// varid == 0 is an internal error, per spec §4.3.
func Match(tok *token.Token, pattern string, varid uint32) bool {
	words := strings.Fields(pattern)
	t := tok
	for _, w := range words {
		ok, advance := matchWord(t, w, varid)
		if !ok {
			return false
		}
		if advance && t != nil {
			t = t.Next()
		}
	}
	return true
}

// FindMatch scans forward from start looking for a position where pattern
// matches, stopping at end (exclusive) if given. s may be nil, in which
// case the scan runs to completion unconditionally; when non-nil, the scan
// polls s.Terminated() every terminatePollInterval tokens and aborts early
// once a cooperative terminate request has been observed (spec §5/§9).
func FindMatch(start *token.Token, pattern string, varid uint32, end *token.Token, s *settings.Settings) *token.Token {
	for t, i := start, 0; t != nil && t != end; t, i = t.Next(), i+1 {
		if s != nil && i%terminatePollInterval == 0 && s.Terminated() {
			return nil
		}
		if Match(t, pattern, varid) {
			return t
		}
	}
	return nil
}

// FindSimpleMatch is FindMatch restricted to the literal subset SimpleMatch
// understands, with the same cooperative-terminate polling.
func FindSimpleMatch(start *token.Token, pattern string, end *token.Token, s *settings.Settings) *token.Token {
	for t, i := start, 0; t != nil && t != end; t, i = t.Next(), i+1 {
		if s != nil && i%terminatePollInterval == 0 && s.Terminated() {
			return nil
		}
		if SimpleMatch(t, pattern) {
			return t
		}
	}
	return nil
}

// matchWord tests one space-delimited pattern word against t. The second
// return value reports whether the cursor should advance to the next
// token: false only when the word matched by way of an empty alternative
// ("a|" or "|b"), which by definition names no token to consume.
func matchWord(t *token.Token, word string, varid uint32) (matched bool, advance bool) {
	if strings.HasPrefix(word, "!!") {
		neg := word[2:]
		if t == nil {
			return true, true
		}
		return t.Str() != neg, true
	}
	if strings.HasPrefix(word, "[") && strings.HasSuffix(word, "]") && len(word) >= 2 {
		chars := word[1 : len(word)-1]
		if t == nil || len(t.Str()) != 1 {
			return false, true
		}
		return strings.IndexByte(chars, t.Str()[0]) >= 0, true
	}
	if strings.Contains(word, "|") {
		return multiCompare(t, word, varid)
	}
	if strings.HasPrefix(word, "%") && strings.HasSuffix(word, "%") {
		return multiComparePercent(t, word, varid), true
	}
	if t == nil {
		return false, true
	}
	return t.Str() == word, true
}

// multiCompare handles the "a|b|c" alternation form: it matches if str
// equals any literal alternative, or if any alternative is a %...%
// metatoken that itself matches. An empty alternative ("a|" or "|b")
// always matches and, uniquely, does not advance the cursor.
func multiCompare(t *token.Token, word string, varid uint32) (matched bool, advance bool) {
	alts := strings.Split(word, "|")
	sawEmpty := false
	for _, alt := range alts {
		if alt == "" {
			sawEmpty = true
			continue
		}
		if strings.HasPrefix(alt, "%") && strings.HasSuffix(alt, "%") {
			if multiComparePercent(t, alt, varid) {
				return true, true
			}
			continue
		}
		if t != nil && t.Str() == alt {
			return true, true
		}
	}
	if sawEmpty {
		return true, false
	}
	return false, true
}

// multiComparePercent dispatches a single %...% metatoken against t.
func multiComparePercent(t *token.Token, meta string, varid uint32) bool {
	switch meta {
	case "%any%":
		return true
	case "%var%":
		return t != nil && t.VarID() != 0
	case "%varid%":
		if varid == 0 {
			panic(errs.InternalError{Tok: t, Msg: "%varid% used with varid == 0"})
		}
		return t != nil && t.VarID() == varid
	case "%type%":
		return t != nil && t.Kind() == token.KindName && t.VarID() == 0 && !t.Flags().Has(token.FlagControlFlowKeyword)
	case "%name%":
		return t != nil && t.IsName()
	case "%num%":
		return t != nil && t.IsNumber()
	case "%char%":
		return t != nil && t.IsChar()
	case "%str%":
		return t != nil && t.IsString()
	case "%bool%":
		return t != nil && t.IsBoolean()
	case "%op%":
		return t != nil && t.IsOp()
	case "%cop%":
		return t != nil && t.IsConstOp()
	case "%comp%":
		return t != nil && t.IsComparisonOp()
	case "%assign%":
		return t != nil && t.IsAssignmentOp()
	case "%or%":
		return t != nil && t.Str() == "|"
	case "%oror%":
		return t != nil && t.Str() == "||"
	default:
		panic(errs.InternalError{Tok: t, Msg: "unknown %" + strings.Trim(meta, "%") + "% metatoken"})
	}
}
