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

// Package stats implements the resource accounting that surrounds a run:
// lines-of-code counting (used to estimate per-translation-unit cost) and
// the memory-ratio gate that bounds how many translation units are
// analyzed concurrently. Generalizes naive.systems/analyzer's
// analyzerinterface.CountLinesUnderDir and cpumem/cpumem.go.
package stats

import (
	"github.com/bmatcuk/doublestar/v4"
	"github.com/hhatto/gocloc"
)

// CountLines walks root and returns the aggregate code-line count, skipping
// any file whose path matches one of ignore's glob patterns (same
// semantics as pkg/results.ProcessSuppression), since gocloc's own
// exclusion knobs (ExcludeExt, ExcludeDirs) work in terms of extensions
// and directory names rather than arbitrary path globs.
func CountLines(root string, ignore []string) (int, error) {
	languages := gocloc.NewDefinedLanguages()
	options := gocloc.NewClocOptions()
	processor := gocloc.NewProcessor(languages, options)
	result, err := processor.Analyze([]string{root})
	if err != nil {
		return 0, err
	}
	sum := 0
	for _, f := range result.Files {
		if matchesAnyGlob(f.Name, ignore) {
			continue
		}
		sum += int(f.Code)
	}
	return sum, nil
}

func matchesAnyGlob(path string, patterns []string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, path); err == nil && ok {
			return true
		}
	}
	return false
}
