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

import "naive.systems/tokenflow/internal/errs"

// InsertAfter creates a new token holding str right after at, inheriting
// at's FileIndex/LineNumber/ProgressValue, and splices it into the stream.
// If at is the stream's empty-string sentinel at the back, it is reused in
// place instead of allocating, matching cppcheck's insertToken special
// case for the trailing placeholder left behind by deleteThis.
func (l *TokenList) InsertAfter(at *Token, str string, originalName string) *Token {
	mustNonNil("at", at)
	if at == l.back && at.str == "" {
		at.SetStr(str)
		if originalName != "" {
			at.SetOriginalName(originalName)
		}
		return at
	}
	n := l.newToken(str)
	n.FileIndex, n.LineNumber, n.ProgressValue = at.FileIndex, at.LineNumber, at.ProgressValue
	if originalName != "" {
		n.SetOriginalName(originalName)
	}
	n.prev = at
	n.next = at.next
	if at.next != nil {
		at.next.prev = n
	} else {
		l.back = n
	}
	at.next = n
	return n
}

// InsertBefore is the mirror of InsertAfter, splicing the new token ahead
// of at.
func (l *TokenList) InsertBefore(at *Token, str string, originalName string) *Token {
	mustNonNil("at", at)
	n := l.newToken(str)
	n.FileIndex, n.LineNumber, n.ProgressValue = at.FileIndex, at.LineNumber, at.ProgressValue
	if originalName != "" {
		n.SetOriginalName(originalName)
	}
	n.next = at
	n.prev = at.prev
	if at.prev != nil {
		at.prev.next = n
	} else {
		l.front = n
	}
	at.prev = n
	return n
}

// unlink removes t from the stream without destroying it, fixing up
// neighbours and the anchor.
func (l *TokenList) unlink(t *Token) {
	if t.prev != nil {
		t.prev.next = t.next
	} else {
		l.front = t.next
	}
	if t.next != nil {
		t.next.prev = t.prev
	} else {
		l.back = t.prev
	}
	t.prev, t.next = nil, nil
}

// severLink breaks t's bracket-link symmetry before t is destroyed: if t
// has a peer, the peer's own link is cleared (spec §3: "Any destruction of
// a token must first sever its link peer by nulling the peer's link").
func severLink(t *Token) {
	if t.link != nil {
		t.link.link = nil
		t.link = nil
	}
}

func (l *TokenList) destroy(t *Token) {
	severLink(t)
	if t.astParent != nil {
		if t.astParent.astOperand1 == t {
			t.astParent.astOperand1 = nil
		}
		if t.astParent.astOperand2 == t {
			t.astParent.astOperand2 = nil
		}
	}
	l.free(t)
}

// DeleteNext unlinks and destroys n's successor, if any.
func (l *TokenList) DeleteNext(n *Token) {
	mustNonNil("n", n)
	victim := n.next
	if victim == nil {
		return
	}
	l.unlink(victim)
	l.destroy(victim)
}

// DeletePrevious unlinks and destroys n's predecessor, if any.
func (l *TokenList) DeletePrevious(n *Token) {
	mustNonNil("n", n)
	victim := n.prev
	if victim == nil {
		return
	}
	l.unlink(victim)
	l.destroy(victim)
}

// DeleteThis collapses t into its successor, falling back to its
// predecessor only when there are at least two tokens before t, per
// spec §4.1: the neighbour's state is copied into t and the neighbour is
// then destroyed, so t's identity (and anything referencing it, like an
// AST parent edge) survives. With a single preceding token (or none, and
// no successor), t is instead blanked to the empty-string placeholder,
// since collapsing it into its sole predecessor would leave nothing ahead
// of the remaining token for callers walking backward from it.
func (l *TokenList) DeleteThis(t *Token) {
	mustNonNil("t", t)
	if t.next != nil {
		l.takeData(t, t.next)
		l.unlink(t.next)
		l.destroy(t.next)
		return
	}
	if t.prev != nil && t.prev.prev != nil {
		l.takeData(t, t.prev)
		l.unlink(t.prev)
		l.destroy(t.prev)
		return
	}
	t.SetStr("")
}

// takeData copies src's observable state into dst and rewires src's
// bracket peer (if any) to point at dst instead, preserving link symmetry
// across the identity transfer.
func (l *TokenList) takeData(dst, src *Token) {
	dst.str = src.str
	dst.kind = src.kind
	dst.flags = src.flags
	dst.TokenImpl = src.TokenImpl
	dst.updatePropertyInfo()
	if src.link != nil {
		peer := src.link
		peer.link = dst
		dst.link = peer
		src.link = nil
	}
	if src.astParent != nil {
		if src.astParent.astOperand1 == src {
			src.astParent.astOperand1 = dst
		}
		if src.astParent.astOperand2 == src {
			src.astParent.astOperand2 = dst
		}
		src.astParent = nil
	}
}

// SwapWithNext exchanges str, kind, flags, TokenImpl and link with t's
// successor, rewiring both tokens' link peers (if any) to point at the new
// holder. TemplateSimplifierPointers lives in TokenImpl and moves with it;
// nothing outside the two tokens and their link peers is updated, so
// pointers to either token held in other tokens' TemplateSimplifierPointers
// are left as they are.
func (l *TokenList) SwapWithNext(t *Token) {
	mustNonNil("t", t)
	n := t.next
	if n == nil {
		return
	}
	t.str, n.str = n.str, t.str
	t.kind, n.kind = n.kind, t.kind
	t.flags, n.flags = n.flags, t.flags
	t.TokenImpl, n.TokenImpl = n.TokenImpl, t.TokenImpl

	if t.link != n {
		t.link, n.link = n.link, t.link
		if t.link != nil {
			t.link.link = t
		}
		if n.link != nil {
			n.link.link = n
		}
	}
}

// Move excises the inclusive range [srcStart, srcEnd] and reinserts it
// immediately after newLocation, propagating newLocation's ProgressValue to
// every moved token.
func (l *TokenList) Move(srcStart, srcEnd, newLocation *Token) {
	mustNonNil("srcStart", srcStart)
	mustNonNil("srcEnd", srcEnd)
	mustNonNil("newLocation", newLocation)

	before, after := srcStart.prev, srcEnd.next
	if before != nil {
		before.next = after
	} else {
		l.front = after
	}
	if after != nil {
		after.prev = before
	} else {
		l.back = before
	}

	oldNext := newLocation.next
	newLocation.next = srcStart
	srcStart.prev = newLocation
	srcEnd.next = oldNext
	if oldNext != nil {
		oldNext.prev = srcEnd
	} else {
		l.back = srcEnd
	}

	for t := srcStart; ; t = t.next {
		t.ProgressValue = newLocation.ProgressValue
		if t == srcEnd {
			break
		}
	}
}

// Replace splices the range [start, end] into old's position and destroys
// old. If end was the stream's last token, the anchor's back pointer is
// repointed at the new trailing token.
func (l *TokenList) Replace(old, start, end *Token) {
	mustNonNil("old", old)
	mustNonNil("start", start)
	mustNonNil("end", end)

	if start.prev != nil {
		start.prev.next = end.next
	}
	if end.next != nil {
		end.next.prev = start.prev
	} else {
		l.back = start.prev
	}

	start.prev = old.prev
	if old.prev != nil {
		old.prev.next = start
	} else {
		l.front = start
	}
	end.next = old.next
	if old.next != nil {
		old.next.prev = end
	} else {
		l.back = end
	}

	l.destroy(old)
}

// EraseTokens deletes every token strictly between begin and end (exclusive
// of both endpoints).
func (l *TokenList) EraseTokens(begin, end *Token) {
	mustNonNil("begin", begin)
	for begin.next != nil && begin.next != end {
		l.DeleteNext(begin)
	}
}

// CreateMutualLinks sets a.link = b and b.link = a. a and b must be
// non-nil and distinct (spec §4.1); violating either is a
// PreconditionViolation, since it names a contract bug in the caller
// rather than a recoverable analysis failure.
func (l *TokenList) CreateMutualLinks(a, b *Token) {
	if a == nil || b == nil {
		panic(errs.PreconditionViolation{Msg: "createMutualLinks: nil token"})
	}
	if a == b {
		panic(errs.PreconditionViolation{Msg: "createMutualLinks: self-pair"})
	}
	a.link = b
	b.link = a
}
