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

// TokenList is the ownership anchor for one token stream: it exclusively
// owns every Token reachable from Front, and hands out generational Refs
// through its arena so Values can name tokens without aliasing raw
// pointers across deletions (spec §9).
type TokenList struct {
	front, back *Token

	arena    []*Token
	freeList []uint32
}

// NewTokenList returns an empty stream.
func NewTokenList() *TokenList {
	return &TokenList{}
}

func (l *TokenList) Front() *Token { return l.front }
func (l *TokenList) Back() *Token  { return l.back }

// newToken allocates a Token owned by l, assigning it an arena slot.
func (l *TokenList) newToken(str string) *Token {
	t := &Token{str: str, anchor: l}
	t.updatePropertyInfo()
	if n := len(l.freeList); n > 0 {
		idx := l.freeList[n-1]
		l.freeList = l.freeList[:n-1]
		t.arenaIndex = idx
		t.generation = l.arena[idx].generation + 1
		l.arena[idx] = t
	} else {
		t.arenaIndex = uint32(len(l.arena))
		t.generation = 1
		l.arena = append(l.arena, t)
	}
	return t
}

// Resolve looks a Ref up in the arena, returning nil once the slot has been
// freed, whether or not it has been reused since (or if it was never valid).
func (l *TokenList) Resolve(r Ref) *Token {
	if int(r.Index) >= len(l.arena) {
		return nil
	}
	tok := l.arena[r.Index]
	if tok == nil || tok.anchor == nil || tok.generation != r.Generation {
		return nil
	}
	return tok
}

func (l *TokenList) free(t *Token) {
	l.arena[t.arenaIndex] = &Token{generation: t.generation} // tombstone, keeps generation for stale Refs
	l.freeList = append(l.freeList, t.arenaIndex)
}

// AppendToken implements Builder.AppendToken: creates a node at the back of
// the stream inheriting nothing (the tokenizer supplies position data
// explicitly).
func (l *TokenList) AppendToken(str string, fileIndex, line, col int) *Token {
	t := l.newToken(str)
	t.FileIndex, t.LineNumber, t.Column = fileIndex, line, col
	if l.back == nil {
		l.front, l.back = t, t
		return t
	}
	t.prev = l.back
	l.back.next = t
	l.back = t
	return t
}

// Walk iterates the stream front-to-back, calling fn for each token until
// fn returns false or the stream is exhausted.
func (l *TokenList) Walk(fn func(*Token) bool) {
	for t := l.front; t != nil; t = t.next {
		if !fn(t) {
			return
		}
	}
}

// TokAt returns the 0-indexed token counting from Front, or nil if index is
// out of range (spec §6, surface 2).
func (l *TokenList) TokAt(index int) *Token {
	if index < 0 {
		return nil
	}
	t := l.front
	for ; t != nil && index > 0; index-- {
		t = t.next
	}
	return t
}

func (l *TokenList) StrAt(index int) string {
	if t := l.TokAt(index); t != nil {
		return t.Str()
	}
	return ""
}

func (l *TokenList) LinkAt(index int) *Token {
	if t := l.TokAt(index); t != nil {
		return t.Link()
	}
	return nil
}
