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

// Builder is the surface the tokenizer front end drives while constructing
// a stream. Once the tokenizer hands off to the rest of the pipeline it no
// longer calls any of these (spec §6, surface 1).
type Builder interface {
	AppendToken(str string, fileIndex, line, col int) *Token
	SetOriginalName(tok *Token, name string)
	Link(a, b *Token)
	SetVarID(tok *Token, id uint32)
}

// Checker is the surface downstream checkers use to read and mutate a
// stream (spec §6, surface 2). *TokenList satisfies it directly.
type Checker interface {
	TokAt(index int) *Token
	StrAt(index int) string
	LinkAt(index int) *Token

	DeleteThis(tok *Token)
	InsertBefore(at *Token, str, originalName string) *Token
	InsertAfter(at *Token, str, originalName string) *Token
	SwapWithNext(tok *Token)
	CreateMutualLinks(a, b *Token)
	Replace(old, start, end *Token)
	Move(srcStart, srcEnd, newLocation *Token)
	EraseTokens(begin, end *Token)
}

// SymbolRefs is the surface the symbol database uses to attach weak
// cross-references onto tokens (spec §6, surface 3).
type SymbolRefs interface {
	SetVariable(tok *Token, v *Variable)
	SetFunction(tok *Token, f *Function)
	SetType(tok *Token, t *ValueType)
}

// builderAdapter lets *TokenList satisfy Builder without exposing Link and
// SetVarID as free methods that would collide with per-Token setters.
type builderAdapter struct{ *TokenList }

func (b builderAdapter) SetOriginalName(tok *Token, name string) { tok.SetOriginalName(name) }
func (b builderAdapter) Link(a, c *Token)                        { b.CreateMutualLinks(a, c) }
func (b builderAdapter) SetVarID(tok *Token, id uint32)          { tok.SetVarID(id) }

// AsBuilder adapts l to the Builder interface.
func (l *TokenList) AsBuilder() Builder { return builderAdapter{l} }

type symbolRefsAdapter struct{}

func (symbolRefsAdapter) SetVariable(tok *Token, v *Variable) { tok.SetVariable(v) }
func (symbolRefsAdapter) SetFunction(tok *Token, f *Function) { tok.SetFunction(f) }
func (symbolRefsAdapter) SetType(tok *Token, t *ValueType)    { tok.SetType(t) }

// AsSymbolRefs adapts the package to the SymbolRefs interface. It carries
// no state since the setters live directly on Token.
func AsSymbolRefs() SymbolRefs { return symbolRefsAdapter{} }
