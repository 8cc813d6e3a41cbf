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

// Package valueflow implements the Value model attached to tokens: tagged
// facts (int/float/tok/container-size/lifetime/moved/uninit/buffer-size)
// carrying a confidence kind (Known/Possible/Inconclusive) and an error
// path, plus the accessors checks use to query per-token value lists.
package valueflow

import "naive.systems/tokenflow/pkg/token"

// ValueType tags the payload a Value carries.
type ValueType int

const (
	Int ValueType = iota
	Tok
	Float
	Moved
	Uninit
	ContainerSize
	Lifetime
	BufferSize
)

// Kind is the confidence level attached to a Value.
type Kind int

const (
	Possible Kind = iota
	Known
	Inconclusive
)

// MoveKind classifies a Moved value.
type MoveKind int

const (
	NonMovedVariable MoveKind = iota
	MovedVariable
	ForwardedVariable
)

// LifetimeKind classifies what a Lifetime value borrows from.
type LifetimeKind int

const (
	LifetimeObject LifetimeKind = iota
	LifetimeLambda
	LifetimeIterator
	LifetimeAddress
)

// LifetimeScope classifies where a borrowed Lifetime value's source lives.
type LifetimeScope int

const (
	LifetimeLocal LifetimeScope = iota
	LifetimeArgument
)

// ErrorPathEntry is one step of the path a value's provenance is explained
// by: the token where something relevant happened, and a human-readable
// message.
type ErrorPathEntry struct {
	Tok     *token.Token
	Message string
}

// Value is the tagged fact a token carries about the run-time value its
// expression evaluates to (spec §3).
type Value struct {
	token.ValueHolderBase

	ValueType ValueType

	IntValue   int64
	TokValue   token.Ref
	FloatValue float64
	MoveKind   MoveKind

	VarValue      *Value // snapshot of the variable a calculation depended on
	Condition     *token.Token
	VarID         uint32
	Conditional   bool
	DefaultArg    bool
	LifetimeKind  LifetimeKind
	LifetimeScope LifetimeScope
	ErrorPath     []ErrorPathEntry

	Kind Kind
}

func (v *Value) IsKnown() bool        { return v.Kind == Known }
func (v *Value) IsPossible() bool     { return v.Kind == Possible }
func (v *Value) IsInconclusive() bool { return v.Kind == Inconclusive }

func (v *Value) SetKnown()        { v.Kind = Known }
func (v *Value) SetPossible()     { v.Kind = Possible }
func (v *Value) SetInconclusive() { v.Kind = Inconclusive }

// ChangeKnownToPossible demotes a Known value to Possible; a no-op for any
// other kind.
func (v *Value) ChangeKnownToPossible() {
	if v.Kind == Known {
		v.Kind = Possible
	}
}

// Equal compares two Values on type, kind, payload and metadata, ignoring
// ErrorPath, as spec §3 requires.
func (v *Value) Equal(o *Value) bool {
	if v == nil || o == nil {
		return v == o
	}
	if v.ValueType != o.ValueType || v.Kind != o.Kind {
		return false
	}
	if v.VarID != o.VarID || v.Condition != o.Condition || v.Conditional != o.Conditional ||
		v.DefaultArg != o.DefaultArg || v.LifetimeKind != o.LifetimeKind ||
		v.LifetimeScope != o.LifetimeScope || !v.VarValue.Equal(o.VarValue) {
		return false
	}
	switch v.ValueType {
	case Int, ContainerSize, BufferSize:
		return v.IntValue == o.IntValue
	case Tok, Lifetime:
		return v.TokValue == o.TokValue
	case Float:
		return v.FloatValue == o.FloatValue
	case Moved:
		return v.MoveKind == o.MoveKind
	case Uninit:
		return true
	}
	return false
}
