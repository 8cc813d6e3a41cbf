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

// Package results implements the finding-collection layer that sits
// downstream of pkg/checks: deduplication, suppression, severities, and
// serialization. Generalizes naive.systems/analyzer's
// analyzer/proto/results_util.go and misra/analyzer/analyzerinterface's
// result-handling helpers off the protobuf message they built on.
package results

import (
	"sort"

	"github.com/google/uuid"
)

// Result is one finding, keyed for deduplication on (Path, Line,
// ErrorMessage) the same way the teacher's proto Result was.
type Result struct {
	ID           string `json:"id" xml:"id,attr"`
	RunID        string `json:"runId" xml:"runId,attr"`
	Path         string `json:"path" xml:"path,attr"`
	LineNumber   int32  `json:"lineNumber" xml:"line,attr"`
	Column       int32  `json:"column" xml:"column,attr,omitempty"`
	Severity     string `json:"severity" xml:"severity,attr,omitempty"`
	RuleID       string `json:"ruleId" xml:"ruleId,attr,omitempty"`
	ErrorMessage string `json:"errorMessage" xml:"errorMessage"`
}

// AddID stamps result with a fresh random UUID, generalizing
// analyzerinterface.go's AddID.
func AddID(r *Result) {
	r.ID = uuid.NewString()
}

// ResultsList is an ordered collection of findings for one run.
type ResultsList struct {
	Results []*Result `json:"results" xml:"result"`
}

// resultBlood is the dedup key: identical shape to the teacher's own
// analyzer/proto/results_util.go, renamed nowhere since it already names
// what it does.
type resultBlood struct {
	Path         string
	LineNumber   int32
	ErrorMessage string
}

func bloodOf(r *Result) resultBlood {
	return resultBlood{Path: r.Path, LineNumber: r.LineNumber, ErrorMessage: r.ErrorMessage}
}

// ResultsSet deduplicates Results as they're added, exactly like the
// teacher's proto.ResultsSet.
type ResultsSet struct {
	Results map[resultBlood]*Result
}

// NewResultsSet returns an empty set.
func NewResultsSet() *ResultsSet {
	return &ResultsSet{Results: make(map[resultBlood]*Result)}
}

// NewResultsSetFromList seeds a set from an existing list, dropping
// duplicates.
func NewResultsSetFromList(list *ResultsList) *ResultsSet {
	set := NewResultsSet()
	set.AddList(list)
	return set
}

// Add inserts r if its blood key is not already present.
func (s *ResultsSet) Add(r *Result) {
	key := bloodOf(r)
	if _, ok := s.Results[key]; ok {
		return
	}
	s.Results[key] = r
}

// AddList inserts every result in list.
func (s *ResultsSet) AddList(list *ResultsList) {
	for _, r := range list.Results {
		s.Add(r)
	}
}

// List flattens the set back into a ResultsList, sorted for determinism.
func (s *ResultsSet) List() *ResultsList {
	out := &ResultsList{}
	for _, r := range s.Results {
		out.Results = append(out.Results, r)
	}
	SortResults(out)
	return out
}

// SortResults orders a list by (Path, LineNumber, ErrorMessage), matching
// the teacher's PrintResults sort key.
func SortResults(list *ResultsList) {
	sort.Slice(list.Results, func(i, j int) bool {
		a, b := list.Results[i], list.Results[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.LineNumber != b.LineNumber {
			return a.LineNumber < b.LineNumber
		}
		return a.ErrorMessage < b.ErrorMessage
	})
}
