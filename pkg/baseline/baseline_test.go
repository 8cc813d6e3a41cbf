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

package baseline

import (
	"path/filepath"
	"testing"

	git2go "github.com/libgit2/git2go/v33"

	"naive.systems/tokenflow/pkg/results"
)

func TestCreateAndGetBaselineRoundTrip(t *testing.T) {
	dir := t.TempDir()
	list := &results.ResultsList{Results: []*results.Result{
		{ErrorMessage: "[rule1] oops", LineNumber: 10, Path: "a.c"},
		{ErrorMessage: "[rule2] oops", LineNumber: 20, Path: "b.c"},
	}}
	if err := CreateBaselineFile(list, dir, "abc123"); err != nil {
		t.Fatalf("CreateBaselineFile: %v", err)
	}
	b, err := GetBaseline(filepath.Join(dir, "baseline.json"))
	if err != nil {
		t.Fatalf("GetBaseline: %v", err)
	}
	if b.CommitHash != "abc123" || len(b.Entries) != 2 {
		t.Fatalf("got baseline %+v", b)
	}
}

func TestIsSameRule(t *testing.T) {
	if !IsSameRule("[rule1] description one", "[rule1] description two") {
		t.Fatal("same rule-id prefix should match regardless of message tail")
	}
	if IsSameRule("[rule1] x", "[rule2] x") {
		t.Fatal("different rule-id prefixes should not match")
	}
}

func TestInAboveUnderHunk(t *testing.T) {
	if !inHunk(5, 3, 4) {
		t.Fatal("line 5 should be inside a hunk starting at 3 spanning 4 lines")
	}
	if inHunk(8, 3, 4) {
		t.Fatal("line 8 should be outside a hunk starting at 3 spanning 4 lines")
	}
	if !aboveHunk(2, 3, 4) {
		t.Fatal("line 2 should be above a hunk starting at 3")
	}
	if !underHunk(10, 3, 4) {
		t.Fatal("line 10 should be under a hunk starting at 3 spanning 4 lines")
	}
	if !aboveHunk(3, 3, 0) {
		t.Fatal("a zero-length hunk at line 3 should count line 3 itself as above (insertion point)")
	}
}

func TestCompareIssuesThroughHunksNoHunks(t *testing.T) {
	if !CompareIssuesThroughHunks(5, 5, nil) {
		t.Fatal("identical lines with no diff hunks should compare equal")
	}
	if CompareIssuesThroughHunks(5, 6, nil) {
		t.Fatal("differing lines with no diff hunks should not compare equal")
	}
}

func TestCompareIssuesThroughHunksAfterEqualLengthSubstitution(t *testing.T) {
	// A same-length 1-for-1 line substitution at line 10 doesn't shift
	// anything after it: a finding at line 20 in both trees is unchanged.
	hunks := []git2go.DiffHunk{
		{OldStart: 10, OldLines: 1, NewStart: 10, NewLines: 1},
	}
	if !CompareIssuesThroughHunks(20, 20, hunks) {
		t.Fatal("a finding after an equal-length substitution hunk should still match")
	}
	if CompareIssuesThroughHunks(20, 21, hunks) {
		t.Fatal("a finding that actually moved should not match")
	}
}

func TestCompareIssuesThroughHunksInsideHunkNeverMatches(t *testing.T) {
	hunks := []git2go.DiffHunk{
		{OldStart: 10, OldLines: 3, NewStart: 10, NewLines: 3},
	}
	if CompareIssuesThroughHunks(11, 11, hunks) {
		t.Fatal("a finding landing inside a changed hunk should never be treated as the same finding")
	}
}
