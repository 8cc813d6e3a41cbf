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
	"testing"

	"naive.systems/tokenflow/internal/settings"
	"naive.systems/tokenflow/pkg/library"
	"naive.systems/tokenflow/pkg/token"
)

func newVarToken() *token.Token {
	l := token.NewTokenList()
	tok := l.AppendToken("x", 0, 1, 0)
	tok.SetVarID(1)
	return tok
}

func TestAddValueKnownPurgesOthersOfSameType(t *testing.T) {
	tok := newVarToken()
	if !AddValue(tok, &Value{ValueType: Int, IntValue: 1, Kind: Possible}) {
		t.Fatal("first AddValue should succeed")
	}
	if !AddValue(tok, &Value{ValueType: Int, IntValue: 5, Kind: Known}) {
		t.Fatal("AddValue of a Known value should succeed")
	}
	vals := values(tok)
	if len(vals) != 1 {
		t.Fatalf("Known Int value should purge the earlier Possible one, got %d values", len(vals))
	}
	if vals[0].IntValue != 5 || !vals[0].IsKnown() {
		t.Fatalf("surviving value = %+v, want Known 5", vals[0])
	}
}

func TestAddValueDedupPrefersLessInconclusive(t *testing.T) {
	tok := newVarToken()
	AddValue(tok, &Value{ValueType: Int, IntValue: 5, Kind: Inconclusive})
	ok := AddValue(tok, &Value{ValueType: Int, IntValue: 5, Kind: Possible})
	if !ok {
		t.Fatal("a Possible value replacing an Inconclusive one at the same identity should succeed")
	}
	vals := values(tok)
	if len(vals) != 1 || vals[0].IsInconclusive() {
		t.Fatalf("expected exactly one non-inconclusive value, got %+v", vals)
	}
}

func TestAddValueDedupRejectsDuplicate(t *testing.T) {
	tok := newVarToken()
	AddValue(tok, &Value{ValueType: Int, IntValue: 5, Kind: Possible})
	if AddValue(tok, &Value{ValueType: Int, IntValue: 5, Kind: Possible}) {
		t.Fatal("adding an identical value at the same identity should be rejected")
	}
	if len(values(tok)) != 1 {
		t.Fatalf("rejected duplicate should not grow the value list")
	}
}

func TestAddValueCapacity(t *testing.T) {
	tok := newVarToken()
	for i := 0; i < maxValuesPerToken; i++ {
		if !AddValue(tok, &Value{ValueType: Int, IntValue: int64(i + 100), Kind: Possible}) {
			t.Fatalf("AddValue %d should still fit under capacity", i)
		}
	}
	if AddValue(tok, &Value{ValueType: Int, IntValue: 999, Kind: Possible}) {
		t.Fatal("AddValue past capacity should be rejected")
	}
}

func TestGetValueLEPrefersNonInconclusiveNonConditional(t *testing.T) {
	tok := newVarToken()
	AddValue(tok, &Value{ValueType: Int, IntValue: 3, Kind: Inconclusive})
	AddValue(tok, &Value{ValueType: Int, IntValue: 4, Kind: Possible})
	s := settings.Default()
	s.Inconclusive = true
	v := GetValueLE(tok, 10, s)
	if v == nil || v.IntValue != 4 {
		t.Fatalf("GetValueLE should prefer the non-inconclusive value, got %+v", v)
	}
}

func TestGetValueLEFallsBackToInconclusiveWhenEnabled(t *testing.T) {
	tok := newVarToken()
	AddValue(tok, &Value{ValueType: Int, IntValue: 3, Kind: Inconclusive})
	s := settings.Default()
	s.Inconclusive = true
	v := GetValueLE(tok, 10, s)
	if v == nil || v.IntValue != 3 {
		t.Fatalf("GetValueLE should fall back to the inconclusive value when enabled, got %+v", v)
	}
}

func TestGetValueLESuppressedWhenInconclusiveDisabled(t *testing.T) {
	tok := newVarToken()
	AddValue(tok, &Value{ValueType: Int, IntValue: 3, Kind: Inconclusive})
	s := settings.Default()
	s.Inconclusive = false
	if v := GetValueLE(tok, 10, s); v != nil {
		t.Fatalf("GetValueLE should suppress inconclusive values when disabled, got %+v", v)
	}
}

func TestValueEqualIgnoresErrorPath(t *testing.T) {
	a := &Value{ValueType: Int, IntValue: 5, Kind: Known, ErrorPath: []ErrorPathEntry{{Message: "a"}}}
	b := &Value{ValueType: Int, IntValue: 5, Kind: Known, ErrorPath: []ErrorPathEntry{{Message: "b"}, {Message: "c"}}}
	if !a.Equal(b) {
		t.Fatal("Equal should ignore ErrorPath contents")
	}
}

func TestGetInvalidValueFlagsOutOfRangeArgument(t *testing.T) {
	l := token.NewTokenList()
	ftok := l.AppendToken("setThreshold", 0, 1, 0)
	argTok := l.AppendToken("x", 0, 1, 13)
	argTok.SetVarID(1)
	AddValue(argTok, &Value{ValueType: Int, IntValue: 5, Kind: Known})

	lib := library.New()
	lib.AddArgRange("setThreshold", 1, library.ArgRange{Min: 0, Max: 1})

	s := settings.Default()
	v := GetInvalidValue(argTok, ftok, 1, lib, s)
	if v == nil || v.IntValue != 5 {
		t.Fatalf("GetInvalidValue should flag 5 outside [0,1], got %+v", v)
	}
}

func TestGetInvalidValueAcceptsInRangeArgument(t *testing.T) {
	l := token.NewTokenList()
	ftok := l.AppendToken("setThreshold", 0, 1, 0)
	argTok := l.AppendToken("x", 0, 1, 13)
	argTok.SetVarID(1)
	AddValue(argTok, &Value{ValueType: Int, IntValue: 1, Kind: Known})

	lib := library.New()
	lib.AddArgRange("setThreshold", 1, library.ArgRange{Min: 0, Max: 1})

	s := settings.Default()
	if v := GetInvalidValue(argTok, ftok, 1, lib, s); v != nil {
		t.Fatalf("GetInvalidValue should accept 1 within [0,1], got %+v", v)
	}
}

func TestGetInvalidValueSuppressedWhenInconclusiveDisabled(t *testing.T) {
	l := token.NewTokenList()
	ftok := l.AppendToken("setThreshold", 0, 1, 0)
	argTok := l.AppendToken("x", 0, 1, 13)
	argTok.SetVarID(1)
	AddValue(argTok, &Value{ValueType: Int, IntValue: 5, Kind: Inconclusive})

	lib := library.New()
	lib.AddArgRange("setThreshold", 1, library.ArgRange{Min: 0, Max: 1})

	s := settings.Default()
	s.Inconclusive = false
	if v := GetInvalidValue(argTok, ftok, 1, lib, s); v != nil {
		t.Fatalf("GetInvalidValue should suppress an inconclusive rejection when disabled, got %+v", v)
	}
}

func TestChangeKnownToPossible(t *testing.T) {
	v := &Value{Kind: Known}
	v.ChangeKnownToPossible()
	if !v.IsPossible() {
		t.Fatalf("ChangeKnownToPossible should demote Known to Possible, got %v", v.Kind)
	}
	v.ChangeKnownToPossible() // no-op on non-Known
	if !v.IsPossible() {
		t.Fatal("ChangeKnownToPossible should be a no-op on a non-Known value")
	}
}
