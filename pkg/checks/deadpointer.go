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

package checks

import (
	"fmt"

	"naive.systems/tokenflow/pkg/results"
	"naive.systems/tokenflow/pkg/token"
	"naive.systems/tokenflow/pkg/valueflow"
)

// DeadPointer flags every token whose value list carries a dead-pointer Tok
// value: an address of a local variable that has already gone out of
// scope, grounded on GetValueTokenDeadPointer (spec §4.6).
func DeadPointer(list *token.TokenList, path string) *results.ResultsList {
	out := &results.ResultsList{}
	list.Walk(func(tok *token.Token) bool {
		v := valueflow.GetValueTokenDeadPointer(list, tok)
		if v == nil {
			return true
		}
		target := list.Resolve(v.TokValue)
		name := "<unknown>"
		if target != nil {
			name = target.Str()
		}
		out.Results = append(out.Results, &results.Result{
			Path:         path,
			LineNumber:   int32(tok.LineNumber),
			Column:       int32(tok.Column),
			Severity:     "error",
			RuleID:       "dead-pointer",
			ErrorMessage: fmt.Sprintf("Pointer used after pointed-to variable %q went out of scope", name),
		})
		return true
	})
	return out
}
