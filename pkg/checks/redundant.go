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
	"naive.systems/tokenflow/pkg/pattern"
	"naive.systems/tokenflow/pkg/results"
	"naive.systems/tokenflow/pkg/token"
	"naive.systems/tokenflow/pkg/valueflow"
)

// RedundantCondition flags "%var% < %num%" comparisons where a known bound
// on the variable already resolves the outcome, e.g. testing x < 10 when
// GetValueLE(x, 9) already holds. Grounded on cppcheck's
// checkother.cpp checkIncorrectLogicOperator family, generalized down to
// GetValueLE/GetValueGE (spec §4.5).
func RedundantCondition(list *token.TokenList, path string, s *settings.Settings) *results.ResultsList {
	out := &results.ResultsList{}
	list.Walk(func(tok *token.Token) bool {
		if !pattern.Match(tok, "%var% < %num%", 0) {
			return true
		}
		varTok := tok
		numTok := tok.Next().Next()
		bound, err := parseIndex(numTok.Str())
		if err != nil {
			return true
		}
		if v := valueflow.GetValueLE(varTok, int64(bound-1), s); v != nil && v.IsKnown() {
			out.Results = append(out.Results, &results.Result{
				Path:         path,
				LineNumber:   int32(varTok.LineNumber),
				Column:       int32(varTok.Column),
				Severity:     "style",
				RuleID:       "redundant-condition",
				ErrorMessage: fmt.Sprintf("Condition '%s<%d' is always true, known value is %d", varTok.Str(), bound, v.IntValue),
			})
		}
		return true
	})
	return out
}
