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

	"naive.systems/tokenflow/internal/settings"
	"naive.systems/tokenflow/pkg/ast"
	"naive.systems/tokenflow/pkg/library"
	"naive.systems/tokenflow/pkg/pattern"
	"naive.systems/tokenflow/pkg/results"
	"naive.systems/tokenflow/pkg/token"
	"naive.systems/tokenflow/pkg/valueflow"
)

// InvalidArgument flags "%name% (" call sites whose argument values fall
// outside the ranges lib records for that function, grounded on
// GetInvalidValue (spec §4.5's "library oracle" accessor).
func InvalidArgument(list *token.TokenList, path string, lib *library.Library, s *settings.Settings) *results.ResultsList {
	out := &results.ResultsList{}
	list.Walk(func(tok *token.Token) bool {
		if !pattern.Match(tok, "%name% (", 0) {
			return true
		}
		ftok := tok
		argTok := tok.Next().Next()
		argIndex := 1
		for argTok != nil && argTok.Str() != ")" {
			if v := valueflow.GetInvalidValue(argTok, ftok, argIndex, lib, s); v != nil {
				out.Results = append(out.Results, &results.Result{
					Path:         path,
					LineNumber:   int32(argTok.LineNumber),
					Column:       int32(argTok.Column),
					Severity:     "warning",
					RuleID:       "invalid-argument",
					ErrorMessage: fmt.Sprintf("Argument %d to %s() is outside its valid range", argIndex, ftok.Str()),
				})
			}
			next := ast.NextArgument(argTok)
			if next == nil {
				break
			}
			argTok = next
			argIndex++
		}
		return true
	})
	return out
}
