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

package valueflow

import (
	"naive.systems/tokenflow/internal/settings"
	"naive.systems/tokenflow/pkg/token"
)

// maxValuesPerToken is the safety-valve capacity from spec §4.5: lists
// exceeding it refuse new additions. It is not a correctness contract, so
// it stays a package constant rather than a Settings knob most callers
// would never touch.
const maxValuesPerToken = 10

func values(tok *token.Token) []*Value {
	raw := tok.RawValues()
	out := make([]*Value, 0, len(raw))
	for _, r := range raw {
		if v, ok := r.(*Value); ok {
			out = append(out, v)
		}
	}
	return out
}

func setValues(tok *token.Token, vs []*Value) {
	raw := make([]token.ValueHolder, len(vs))
	for i, v := range vs {
		raw[i] = v
	}
	tok.SetRawValues(raw)
}

// AddValue attaches v to tok's value list per spec §4.5:
//   - a Known v purges every existing value with the same ValueType first;
//   - a value matching v on (ValueType, IntValue, TokValue) is replaced
//     only when the existing one is Inconclusive and v is not, otherwise v
//     is dropped and AddValue returns false;
//   - lists at capacity refuse new additions;
//   - a Known Int value is pushed to the front, everything else to the
//     back;
//   - a missing VarID on v is filled in from tok.
func AddValue(tok *token.Token, v *Value) bool {
	if v.VarID == 0 {
		v.VarID = tok.VarID()
	}

	cur := values(tok)

	if v.Kind == Known {
		kept := cur[:0]
		for _, existing := range cur {
			if existing.ValueType != v.ValueType {
				kept = append(kept, existing)
			}
		}
		cur = kept
	}

	for i, existing := range cur {
		if existing.ValueType != v.ValueType {
			continue
		}
		if !sameIdentity(existing, v) {
			continue
		}
		if existing.Kind == Inconclusive && v.Kind != Inconclusive {
			cur[i] = v
			setValues(tok, cur)
			return true
		}
		return false
	}

	if len(cur) >= maxValuesPerToken {
		return false
	}

	if v.Kind == Known && v.ValueType == Int {
		cur = append([]*Value{v}, cur...)
	} else {
		cur = append(cur, v)
	}
	setValues(tok, cur)
	return true
}

func sameIdentity(a, b *Value) bool {
	switch a.ValueType {
	case Int, ContainerSize, BufferSize:
		return a.IntValue == b.IntValue
	case Tok, Lifetime:
		return a.TokValue == b.TokValue
	case Float:
		return a.FloatValue == b.FloatValue
	case Moved:
		return a.MoveKind == b.MoveKind
	}
	return false
}

func isUsable(v *Value, s *settings.Settings) bool {
	if v.Kind == Inconclusive && !s.Inconclusive {
		return false
	}
	if v.Conditional && !s.WarningEnabled() {
		return false
	}
	return true
}

// GetValueLE returns the first Int value on tok whose IntValue is <= val,
// preferring values that are neither Inconclusive nor conditional, and
// respecting the settings gates from spec §4.5.
func GetValueLE(tok *token.Token, val int64, s *settings.Settings) *Value {
	return firstRelational(tok, s, func(v *Value) bool { return v.IntValue <= val })
}

// GetValueGE is the mirror of GetValueLE for >=.
func GetValueGE(tok *token.Token, val int64, s *settings.Settings) *Value {
	return firstRelational(tok, s, func(v *Value) bool { return v.IntValue >= val })
}

func firstRelational(tok *token.Token, s *settings.Settings, rel func(*Value) bool) *Value {
	var fallback *Value
	for _, v := range values(tok) {
		if v.ValueType != Int || !rel(v) || !isUsable(v, s) {
			continue
		}
		if v.Kind != Inconclusive && !v.Conditional {
			return v
		}
		if fallback == nil {
			fallback = v
		}
	}
	return fallback
}

// ArgValidator answers whether an int/float argument value is valid at a
// given call-site argument slot; pkg/library implements it against a
// function-signature oracle (spec §4.5's "library oracle").
type ArgValidator interface {
	IsIntArgValid(callTok *token.Token, argIndex int, value int64) bool
	IsFloatArgValid(callTok *token.Token, argIndex int, value float64) bool
}

// GetInvalidValue returns the value on valueTok's own value list that
// ftok/argIndex's validator rejects — ftok names the called function
// (library lookups key off ftok.Str()), while valueTok is the argument
// expression's token whose Int/Float values are being checked. Mirrors
// cppcheck's Token::getInvalidValue(ftok, argnr, settings): among rejected
// values, a non-inconclusive non-conditional rejection wins outright,
// otherwise the best available (least-inconclusive) rejection is returned
// subject to the same Inconclusive/conditional gating as GetValueLE/GE.
func GetInvalidValue(valueTok, ftok *token.Token, argIndex int, lib ArgValidator, s *settings.Settings) *Value {
	var ret *Value
	for _, v := range values(valueTok) {
		var invalid bool
		switch v.ValueType {
		case Int:
			invalid = !lib.IsIntArgValid(ftok, argIndex, v.IntValue)
		case Float:
			invalid = !lib.IsFloatArgValid(ftok, argIndex, v.FloatValue)
		default:
			continue
		}
		if !invalid {
			continue
		}
		if ret == nil || ret.IsInconclusive() || (ret.Conditional && !v.IsInconclusive()) {
			ret = v
		}
		if !ret.IsInconclusive() && !ret.Conditional {
			break
		}
	}
	if ret == nil {
		return nil
	}
	if ret.IsInconclusive() && !s.Inconclusive {
		return nil
	}
	if ret.Conditional && !s.WarningEnabled() {
		return nil
	}
	return ret
}

// resolveTok resolves a Tok/Lifetime value's TokValue back to the *Token it
// names, given the owning list.
func resolveTok(list *token.TokenList, v *Value) *token.Token {
	return list.Resolve(v.TokValue)
}

// GetValueTokenMinStrSize scans tok's Tok values pointing at string tokens
// and returns the one with the smallest raw literal size (spec §4.6).
func GetValueTokenMinStrSize(list *token.TokenList, tok *token.Token) *Value {
	var best *Value
	bestSize := -1
	for _, v := range values(tok) {
		if v.ValueType != Tok {
			continue
		}
		target := resolveTok(list, v)
		if target == nil || !target.IsString() {
			continue
		}
		size := token.GetStrSize(target)
		if best == nil || size < bestSize {
			best, bestSize = v, size
		}
	}
	return best
}

// GetValueTokenMaxStrLength is GetValueTokenMinStrSize's counterpart using
// the escape-aware rendered length and the maximum instead of the minimum.
func GetValueTokenMaxStrLength(list *token.TokenList, tok *token.Token) *Value {
	var best *Value
	bestLen := -1
	for _, v := range values(tok) {
		if v.ValueType != Tok {
			continue
		}
		target := resolveTok(list, v)
		if target == nil || !target.IsString() {
			continue
		}
		length := token.GetStrLength(target)
		if best == nil || length > bestLen {
			best, bestLen = v, length
		}
	}
	return best
}

// GetValueTokenDeadPointer returns the first Tok value on tok whose
// TokValue is an address-of a local variable whose scope has already
// ended relative to tok's enclosing function scope.
func GetValueTokenDeadPointer(list *token.TokenList, tok *token.Token) *Value {
	enclosing := tok.Scope()
	for enclosing != nil && !enclosing.IsFunc {
		enclosing = enclosing.Parent
	}
	for _, v := range values(tok) {
		if v.ValueType != Tok || v.LifetimeKind != LifetimeAddress {
			continue
		}
		target := resolveTok(list, v)
		if target == nil {
			continue
		}
		varScope := target.Scope()
		if varScope == nil || varScope == enclosing {
			continue
		}
		if enclosing != nil && !varScope.Contains(enclosing.EndToken) {
			return v
		}
	}
	return nil
}
