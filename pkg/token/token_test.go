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

import "testing"

// buildStream appends words in order and returns the list and its front.
func buildStream(words ...string) (*TokenList, *Token) {
	l := NewTokenList()
	for _, w := range words {
		l.AppendToken(w, 0, 1, 0)
	}
	return l, l.Front()
}

func TestLinkedListIntegrity(t *testing.T) {
	l, front := buildStream("(", "a", "+", "b", ")")
	var forward []string
	for tok := front; tok != nil; tok = tok.Next() {
		forward = append(forward, tok.Str())
	}
	if len(forward) != 5 {
		t.Fatalf("forward walk length = %d, want 5", len(forward))
	}
	var backward []string
	for tok := l.Back(); tok != nil; tok = tok.Prev() {
		backward = append(backward, tok.Str())
	}
	for i, j := 0, len(backward)-1; i < j; i, j = i+1, j-1 {
		backward[i], backward[j] = backward[j], backward[i]
	}
	for i := range forward {
		if forward[i] != backward[i] {
			t.Fatalf("forward/backward walk disagree at %d: %s vs %s", i, forward[i], backward[i])
		}
	}
}

func TestLinkSymmetry(t *testing.T) {
	l, front := buildStream("(", "a", ")")
	open, shut := front, front.Next().Next()
	l.CreateMutualLinks(open, shut)
	if open.Link() != shut || shut.Link() != open {
		t.Fatalf("CreateMutualLinks did not establish a symmetric pair")
	}
}

func TestAstAcyclic(t *testing.T) {
	_, front := buildStream("a", "+", "b")
	a, plus, b := front, front.Next(), front.Next().Next()
	plus.SetAstOperand1(a)
	plus.SetAstOperand2(b)
	if a.AstParent() != plus || b.AstParent() != plus {
		t.Fatalf("SetAstOperand1/2 did not set the parent back-edge")
	}
	defer func() {
		if recover() == nil {
			t.Fatal("attaching plus under one of its own descendants should panic")
		}
	}()
	a.SetAstOperand1(plus)
}

func TestClassifyIsDeterministicAndIdempotent(t *testing.T) {
	l := NewTokenList()
	tok := l.AppendToken("123", 0, 1, 0)
	first := tok.Kind()
	tok.SetStr("123") // reclassify with the same lexeme
	if tok.Kind() != first {
		t.Fatalf("re-setting the same lexeme changed classification: %v -> %v", first, tok.Kind())
	}
	if !tok.IsNumber() {
		t.Fatalf("expected %q to classify as a number", tok.Str())
	}
}

func TestSwapWithNextIsInvolution(t *testing.T) {
	l, front := buildStream("a", "b")
	a := front
	l.SwapWithNext(a)
	if l.Front().Str() != "b" || l.Front().Next().Str() != "a" {
		t.Fatalf("SwapWithNext did not exchange lexemes")
	}
	l.SwapWithNext(l.Front())
	if l.Front().Str() != "a" || l.Front().Next().Str() != "b" {
		t.Fatalf("SwapWithNext twice should restore the original order")
	}
}

func TestDeleteThisCollapsesIntoSuccessor(t *testing.T) {
	l, front := buildStream("a", "b", "c")
	l.DeleteThis(front) // collapses "a" into "b"'s data, "a" node survives as identity
	var words []string
	for tok := l.Front(); tok != nil; tok = tok.Next() {
		words = append(words, tok.Str())
	}
	if len(words) != 2 || words[0] != "b" || words[1] != "c" {
		t.Fatalf("DeleteThis result = %v, want [b c]", words)
	}
}

func TestDeleteThisOnLastTokenWithTwoPrecedingCollapsesIntoPredecessor(t *testing.T) {
	l, front := buildStream("a", "b", "c")
	last := front.Next().Next() // "c", whose predecessor "b" has its own predecessor "a"
	l.DeleteThis(last)          // collapses "b" into "c"'s data, "c" node survives as identity
	var words []string
	for tok := l.Front(); tok != nil; tok = tok.Next() {
		words = append(words, tok.Str())
	}
	if len(words) != 2 || words[0] != "a" || words[1] != "b" {
		t.Fatalf("DeleteThis result = %v, want [a b]", words)
	}
}

func TestDeleteThisOnSecondOfTwoTokensBlanksInstead(t *testing.T) {
	// With only one token preceding t, DeleteThis must not collapse into
	// it: cppcheck's deleteThis only takes the mPrevious branch when
	// mPrevious->mPrevious is also non-nil, and otherwise blanks t.
	l, front := buildStream("a", "b")
	last := front.Next() // "b", whose predecessor "a" has no predecessor of its own
	l.DeleteThis(last)
	var words []string
	for tok := l.Front(); tok != nil; tok = tok.Next() {
		words = append(words, tok.Str())
	}
	if len(words) != 2 || words[0] != "a" || words[1] != "" {
		t.Fatalf("DeleteThis result = %v, want [a \"\"] (b blanked, a untouched)", words)
	}
}

func TestRefResolvesAndInvalidatesOnFree(t *testing.T) {
	l, front := buildStream("a", "b", "c")
	a := front
	b := a.Next()
	refA, refB := a.Ref(), b.Ref()
	if l.Resolve(refA) != a {
		t.Fatal("Resolve did not find a live token by its own Ref")
	}
	l.DeleteNext(a) // frees b's arena slot
	if l.Resolve(refB) != nil {
		t.Fatal("Resolve returned a freed token")
	}
	reused := l.AppendToken("d", 0, 1, 0) // should reuse b's freed slot
	if l.Resolve(reused.Ref()) != reused {
		t.Fatal("Resolve did not find the token now occupying the reused slot")
	}
	if l.Resolve(refB) != nil {
		t.Fatal("stale Ref resolved to the slot's new occupant")
	}
}
