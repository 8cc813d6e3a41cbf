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

// Package checks holds a small illustrative checker suite built directly
// on pkg/token/pkg/pattern/pkg/valueflow, exercising the core engine
// end-to-end the way naive.systems/analyzer's rule_* packages exercise
// cppcheck's token stream.
package checks

import (
	"fmt"

	"naive.systems/tokenflow/pkg/results"
	"naive.systems/tokenflow/pkg/token"
	"naive.systems/tokenflow/pkg/valueflow"
)

// UninitializedRead reports every %var% token whose value list carries an
// Uninit value, mirroring cppcheck's CheckUninitVar off ValueFlow::Value
// rather than its own separate dataflow pass.
func UninitializedRead(list *token.TokenList, path string) *results.ResultsList {
	out := &results.ResultsList{}
	list.Walk(func(tok *token.Token) bool {
		if tok.VarID() == 0 {
			return true
		}
		for _, v := range rawUninit(tok) {
			if v.ValueType != valueflow.Uninit {
				continue
			}
			out.Results = append(out.Results, &results.Result{
				Path:         path,
				LineNumber:   int32(tok.LineNumber),
				Column:       int32(tok.Column),
				Severity:     "error",
				RuleID:       "uninitialized-read",
				ErrorMessage: fmt.Sprintf("Uninitialized variable: %s", tok.Str()),
			})
			break
		}
		return true
	})
	return out
}

func rawUninit(tok *token.Token) []*valueflow.Value {
	raw := tok.RawValues()
	out := make([]*valueflow.Value, 0, len(raw))
	for _, r := range raw {
		if v, ok := r.(*valueflow.Value); ok {
			out = append(out, v)
		}
	}
	return out
}
