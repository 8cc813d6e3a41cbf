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

package results

import "github.com/bmatcuk/doublestar/v4"

// ProcessSuppression drops every result whose Path matches one of the
// glob-style patterns, generalizing analyzerinterface.go's
// ProcessSuppression/MatchIgnoreDirPatterns off compiled-database
// directory ignores onto arbitrary result suppression.
func ProcessSuppression(list *ResultsList, patterns []string) *ResultsList {
	if len(patterns) == 0 {
		return list
	}
	out := &ResultsList{}
	for _, r := range list.Results {
		if !matchesAny(r.Path, patterns) {
			out.Results = append(out.Results, r)
		}
	}
	return out
}

func matchesAny(path string, patterns []string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, path); err == nil && ok {
			return true
		}
	}
	return false
}
