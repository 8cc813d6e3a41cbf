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

// SetAstOperand1 installs tok as t's first AST operand. See the shared
// cycle-guard logic in setAstOperand.
func (t *Token) SetAstOperand1(tok *Token) {
	t.setAstOperand(&t.astOperand1, tok)
}

// SetAstOperand2 installs tok as t's second AST operand.
func (t *Token) SetAstOperand2(tok *Token) {
	t.setAstOperand(&t.astOperand2, tok)
}

// setAstOperand implements spec §4.4's three-step edge installer: detach
// the old operand's parent link, cycle-check the new operand's parent
// chain and t's own ancestors, then attach.
func (t *Token) setAstOperand(slot **Token, tok *Token) {
	if *slot != nil {
		(*slot).astParent = nil
	}
	if tok != nil {
		visited := make(map[*Token]bool)
		root := tok
		for {
			if root == t || visited[root] {
				panic(errs.InternalError{Tok: t, Msg: "cyclic AST attachment attempted"})
			}
			visited[root] = true
			if root.astParent == nil {
				break
			}
			root = root.astParent
		}
		for p := t.astParent; p != nil; p = p.astParent {
			if p == root {
				panic(errs.InternalError{Tok: t, Msg: "cyclic AST attachment attempted"})
			}
		}
		root.astParent = t
	}
	*slot = tok
}
