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

// Package token implements the doubly-linked token stream: the Token and
// TokenImpl node types, the TokenList ownership anchor, stream mutation,
// classification, and string-literal arithmetic.
package token

import (
	"strings"

	"naive.systems/tokenflow/internal/errs"
)

// Kind classifies a Token's lexical category. Recomputed by
// updatePropertyInfo whenever Str is assigned.
type Kind int

const (
	KindNone Kind = iota
	KindName
	KindNumber
	KindString
	KindChar
	KindBoolean
	KindType
	KindVariable
	KindFunction
	KindKeyword
	KindLambda
	KindAssignment
	KindArithmetic
	KindComparison
	KindLogical
	KindBit
	KindIncDec
	KindExtendedOp
	KindBracket
	KindOther
)

// Flags is a bit set of derived token properties.
type Flags uint32

const (
	FlagLong Flags = 1 << iota
	FlagUnsigned
	FlagSigned
	FlagComplex
	FlagStandardType
	FlagExpandedMacro
	FlagEnumType
	FlagControlFlowKeyword
	FlagLiteral
)

func (f Flags) Has(bit Flags) bool { return f&bit != 0 }

func (f *Flags) set(bit Flags, on bool) {
	if on {
		*f |= bit
	} else {
		*f &^= bit
	}
}

// Ref is a generational reference to a Token held inside a TokenList's
// arena. It replaces cppcheck's raw token pointers wherever a Value needs
// to name a token as an identity (tokvalue, lifetime values): once the
// referenced slot is reused for a different token, Resolve returns nil
// instead of aliasing the wrong node.
type Ref struct {
	Index      uint32
	Generation uint32
}

// Variable, Function and ValueType are the symbol-database objects a Token
// carries weak references to (spec §6, surface 3). Only the fields the
// core inspects are modeled; a real symbol database would embed richer
// state produced upstream by scope/type resolution.
type Variable struct {
	Name  string
	VarID uint32
	Scope *Scope
}

type Function struct {
	Name     string
	IsLambda bool
}

type ValueType struct {
	Sign    Sign
	IsEnum  bool
	TypeStr string
}

type Sign int

const (
	SignUnknown Sign = iota
	SignSigned
	SignUnsigned
)

// Scope stands in for the symbol database's lexical scope object. Only the
// containment relation getValueTokenDeadPointer needs is modeled.
type Scope struct {
	Parent   *Scope
	IsFunc   bool
	EndToken *Token
}

// Contains reports whether s's end token is reached by walking forward from
// tok, i.e. whether tok is at or before s's end in stream order. Where s
// starts is not checked, so tokens before s's body also count.
func (s *Scope) Contains(tok *Token) bool {
	if s == nil || tok == nil || s.EndToken == nil {
		return false
	}
	for t := tok; t != nil; t = t.next {
		if t == s.EndToken {
			return true
		}
	}
	return false
}

// AttributeKind enumerates the small set of cppcheck-style annotations a
// token can carry. Modeled as a map key (spec §9's "intrusive linked list
// of attributes" note) rather than an intrusive chain.
type AttributeKind int

const (
	AttrUnknownMacro AttributeKind = iota
	AttrTemplateArg
	AttrExprID
)

// TokenImpl holds the heavy, exclusively-owned per-token state described in
// spec §3. It is embedded into Token rather than referenced through a
// pointer indirection, since Go gives every Token its own TokenImpl value
// at no extra allocation once the arena backs the whole stream.
type TokenImpl struct {
	VarID         uint32
	Index         int
	FileIndex     int
	LineNumber    int
	Column        int
	ProgressValue int

	astOperand1 *Token
	astOperand2 *Token
	astParent   *Token

	Values *[]Val // lazily allocated per §3; nil until the first AddValue.

	ValueType *ValueType

	OriginalName *string

	variable  *Variable
	function  *Function
	typ       *ValueType
	scope     *Scope
	enumValue *string

	TemplateSimplifierPointers []*Token

	Attributes map[AttributeKind]any
}

// Val is the element type of a token's value list. pkg/token cannot import
// pkg/valueflow (valueflow imports token for Token and Ref), so values are
// stored as opaque ValueHolders: *valueflow.Value satisfies ValueHolder by
// embedding ValueHolderBase, and pkg/valueflow type-asserts them back.
type Val = ValueHolder

// ValueHolder is implemented by *valueflow.Value. Token only needs to
// store and hand back opaque values; it never inspects their fields.
type ValueHolder interface {
	valueflowMarker()
}

// ValueHolderBase is embedded by valueflow.Value to satisfy ValueHolder's
// unexported marker method from outside this package.
type ValueHolderBase struct{}

func (ValueHolderBase) valueflowMarker() {}

// Token is one node in the doubly-linked stream (spec §3).
type Token struct {
	str   string
	kind  Kind
	flags Flags
	link  *Token // borrowed: matching bracket peer.

	prev, next *Token
	anchor     *TokenList // weak back-reference to the owning list.

	TokenImpl

	generation uint32 // bumped on reuse from a freed arena slot; backs Ref.
	arenaIndex uint32
}

// Str returns the token's lexeme.
func (t *Token) Str() string { return t.str }

// SetStr assigns the lexeme and reclassifies the token, per spec §4.2.
func (t *Token) SetStr(s string) {
	t.str = s
	t.updatePropertyInfo()
}

func (t *Token) Kind() Kind   { return t.kind }
func (t *Token) Flags() Flags { return t.flags }
func (t *Token) Link() *Token { return t.link }
func (t *Token) Prev() *Token { return t.prev }
func (t *Token) Next() *Token { return t.next }

// Ref returns the generational identity of t, suitable for storing inside
// a Value as a stable cross-reference (spec §9).
func (t *Token) Ref() Ref {
	if t == nil {
		return Ref{}
	}
	return Ref{Index: t.arenaIndex, Generation: t.generation}
}

func (t *Token) IsName() bool     { return t.kind == KindName || t.kind == KindVariable || t.kind == KindFunction || t.kind == KindType || t.kind == KindKeyword }
func (t *Token) IsNumber() bool   { return t.kind == KindNumber }
func (t *Token) IsString() bool   { return t.kind == KindString }
func (t *Token) IsChar() bool     { return t.kind == KindChar }
func (t *Token) IsBoolean() bool  { return t.kind == KindBoolean }
func (t *Token) IsOp() bool {
	switch t.kind {
	case KindAssignment, KindArithmetic, KindComparison, KindLogical, KindBit, KindIncDec:
		return true
	}
	return false
}
func (t *Token) IsComparisonOp() bool { return t.kind == KindComparison }
func (t *Token) IsAssignmentOp() bool { return t.kind == KindAssignment }

// IsConstOp reports whether the token is a "const operator": one that does
// not mutate its operands (everything but assignment and inc/dec, per
// cppcheck's %cop% classification).
func (t *Token) IsConstOp() bool {
	return t.IsOp() && t.kind != KindAssignment && t.kind != KindIncDec
}

func (t *Token) VarID() uint32 { return t.TokenImpl.VarID }

func (t *Token) SetVarID(id uint32) {
	t.TokenImpl.VarID = id
	t.updatePropertyInfo()
}

// Variable returns the weakly-referenced symbol-database variable, if any.
func (t *Token) Variable() *Variable { return t.variable }

// SetVariable installs v as the token's variable back-reference. Per spec
// §6 surface 3, this does not itself change kind (VarID drives that).
func (t *Token) SetVariable(v *Variable) { t.variable = v }

// Function returns the weakly-referenced symbol-database function, if any.
func (t *Token) Function() *Function { return t.function }

// SetFunction installs f, coercing kind to Function or Lambda depending on
// f.IsLambda, or reverting to Name when f is nil and kind was Function
// (spec §6 surface 3).
func (t *Token) SetFunction(f *Function) {
	t.function = f
	if f == nil {
		if t.kind == KindFunction || t.kind == KindLambda {
			t.kind = KindName
		}
		return
	}
	if f.IsLambda {
		t.kind = KindLambda
	} else {
		t.kind = KindFunction
	}
}

// Type returns the weakly-referenced resolved semantic type, if any.
func (t *Token) Type() *ValueType { return t.typ }

// SetType installs vt, coercing kind to Type and copying IsEnum (spec §6
// surface 3).
func (t *Token) SetType(vt *ValueType) {
	t.typ = vt
	if vt != nil {
		t.kind = KindType
		t.flags.set(FlagEnumType, vt.IsEnum)
	}
}

func (t *Token) Scope() *Scope     { return t.scope }
func (t *Token) SetScope(s *Scope) { t.scope = s }

// OriginalName returns the pre-tokenizer spelling, if the tokenizer
// recorded one (e.g. a macro-expanded token).
func (t *Token) OriginalName() string {
	if t.TokenImpl.OriginalName == nil {
		return ""
	}
	return *t.TokenImpl.OriginalName
}

func (t *Token) SetOriginalName(name string) { t.TokenImpl.OriginalName = &name }

// AstOperand1, AstOperand2 and AstParent expose the AST edges installed by
// SetAstOperand1/2 (see ast.go).
func (t *Token) AstOperand1() *Token { return t.astOperand1 }
func (t *Token) AstOperand2() *Token { return t.astOperand2 }
func (t *Token) AstParent() *Token   { return t.astParent }

// RawValues returns the token's value-flow list as opaque holders (nil if
// none were ever attached). pkg/valueflow type-asserts these back to
// *valueflow.Value; Token itself never inspects them.
func (t *Token) RawValues() []ValueHolder {
	if t.TokenImpl.Values == nil {
		return nil
	}
	return *t.TokenImpl.Values
}

// SetRawValues replaces the token's value-flow list, allocating the lazy
// backing slice on first use (spec §3: "values: optional owned list of
// Value (lazy allocation)").
func (t *Token) SetRawValues(vs []ValueHolder) {
	if t.TokenImpl.Values == nil {
		t.TokenImpl.Values = new([]ValueHolder)
	}
	*t.TokenImpl.Values = vs
}

// AttributeValue returns the value stored for kind, if any.
func (t *Token) AttributeValue(kind AttributeKind) (any, bool) {
	if t.Attributes == nil {
		return nil, false
	}
	v, ok := t.Attributes[kind]
	return v, ok
}

// SetAttribute stores a (kind, value) entry, allocating the map lazily.
func (t *Token) SetAttribute(kind AttributeKind, value any) {
	if t.Attributes == nil {
		t.Attributes = make(map[AttributeKind]any)
	}
	t.Attributes[kind] = value
}

// firstWordEquals and chrInFirstWord compare str against a literal word or
// a set of single characters without allocating a split. pkg/pattern does
// its own literal matching and does not call them.
func (t *Token) firstWordEquals(word string) bool {
	if t == nil {
		return word == ""
	}
	return t.str == word
}

func (t *Token) chrInFirstWord(chars string) bool {
	if t == nil || len(t.str) != 1 {
		return false
	}
	return strings.IndexByte(chars, t.str[0]) >= 0
}

func mustNonNil(name string, v any) {
	if tk, ok := v.(*Token); v == nil || (ok && tk == nil) {
		panic(errs.PreconditionViolation{Msg: name + " must not be nil"})
	}
}
