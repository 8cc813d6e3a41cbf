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

// Package library implements the "library oracle" spec §4.5's
// getInvalidValue consults: per-function, per-argument validity ranges for
// int/float arguments. In cppcheck this is driven by a cfg/*.xml library
// description; here it is a small in-memory table populated by callers,
// since the XML library-description reader is out of the core's scope
// (spec §1: "external collaborators").
package library

import "naive.systems/tokenflow/pkg/token"

// ArgRange restricts a single argument slot to values within [Min, Max].
type ArgRange struct {
	Min, Max float64
}

func (r ArgRange) contains(v float64) bool { return v >= r.Min && v <= r.Max }

// Library maps a function name to per-argument-index validity ranges.
type Library struct {
	funcs map[string]map[int]ArgRange
}

// New returns an empty Library.
func New() *Library {
	return &Library{funcs: make(map[string]map[int]ArgRange)}
}

// AddArgRange records that fn's argument at argIndex (1-based, matching
// cppcheck's convention) must fall within r.
func (l *Library) AddArgRange(fn string, argIndex int, r ArgRange) {
	if l.funcs[fn] == nil {
		l.funcs[fn] = make(map[int]ArgRange)
	}
	l.funcs[fn][argIndex] = r
}

func (l *Library) rangeFor(callTok *token.Token, argIndex int) (ArgRange, bool) {
	if callTok == nil {
		return ArgRange{}, false
	}
	ranges, ok := l.funcs[callTok.Str()]
	if !ok {
		return ArgRange{}, false
	}
	r, ok := ranges[argIndex]
	return r, ok
}

// IsIntArgValid implements valueflow.ArgValidator: an argument with no
// recorded range is treated as valid (the oracle has no opinion).
func (l *Library) IsIntArgValid(callTok *token.Token, argIndex int, value int64) bool {
	r, ok := l.rangeFor(callTok, argIndex)
	if !ok {
		return true
	}
	return r.contains(float64(value))
}

// IsFloatArgValid is IsIntArgValid's float counterpart.
func (l *Library) IsFloatArgValid(callTok *token.Token, argIndex int, value float64) bool {
	r, ok := l.rangeFor(callTok, argIndex)
	if !ok {
		return true
	}
	return r.contains(value)
}
