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

package library

import (
	"testing"

	"naive.systems/tokenflow/pkg/token"
)

func TestIsIntArgValidWithNoRecordedRange(t *testing.T) {
	l := New()
	call := token.NewTokenList().AppendToken("memset", 0, 1, 0)
	if !l.IsIntArgValid(call, 1, -5) {
		t.Fatal("an argument with no recorded range should be treated as valid")
	}
}

func TestIsIntArgValidRespectsRange(t *testing.T) {
	l := New()
	l.AddArgRange("malloc", 1, ArgRange{Min: 0, Max: 1 << 20})
	call := token.NewTokenList().AppendToken("malloc", 0, 1, 0)

	if !l.IsIntArgValid(call, 1, 100) {
		t.Fatal("100 should be within [0, 1<<20]")
	}
	if l.IsIntArgValid(call, 1, -1) {
		t.Fatal("-1 should be outside [0, 1<<20]")
	}
}

func TestIsFloatArgValidRespectsRange(t *testing.T) {
	l := New()
	l.AddArgRange("setThreshold", 2, ArgRange{Min: 0.0, Max: 1.0})
	call := token.NewTokenList().AppendToken("setThreshold", 0, 1, 0)

	if !l.IsFloatArgValid(call, 2, 0.5) {
		t.Fatal("0.5 should be within [0.0, 1.0]")
	}
	if l.IsFloatArgValid(call, 2, 1.5) {
		t.Fatal("1.5 should be outside [0.0, 1.0]")
	}
}

func TestRangeForNilCallToken(t *testing.T) {
	l := New()
	l.AddArgRange("f", 1, ArgRange{Min: 0, Max: 1})
	if !l.IsIntArgValid(nil, 1, 42) {
		t.Fatal("a nil call token has no name to look up, so it should be treated as valid")
	}
}
