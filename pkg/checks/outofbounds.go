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

// OutOfBoundsAccess flags "%var% [ %num% ]" where the index constant is at
// least the size of the smallest string literal flowing into the array
// token, grounded on GetValueTokenMinStrSize (spec §4.6).
func OutOfBoundsAccess(list *token.TokenList, path string, s *settings.Settings) *results.ResultsList {
	out := &results.ResultsList{}
	list.Walk(func(tok *token.Token) bool {
		if !pattern.Match(tok, "%var% [ %num% ]", 0) {
			return true
		}
		arrTok := tok
		idxTok := tok.Next().Next()
		idx, err := parseIndex(idxTok.Str())
		if err != nil {
			return true
		}
		sizeVal := valueflow.GetValueTokenMinStrSize(list, arrTok)
		if sizeVal == nil {
			return true
		}
		target := list.Resolve(sizeVal.TokValue)
		if target == nil {
			return true
		}
		if size := token.GetStrSize(target); idx >= size {
			out.Results = append(out.Results, &results.Result{
				Path:         path,
				LineNumber:   int32(arrTok.LineNumber),
				Column:       int32(arrTok.Column),
				Severity:     "warning",
				RuleID:       "out-of-bounds-access",
				ErrorMessage: fmt.Sprintf("Array index %d is out of bounds (size %d)", idx, size),
			})
		}
		return true
	})
	return out
}

func parseIndex(s string) (int, error) {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	return n, err
}
