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

// Package baseline implements cross-commit duplicate-result suppression:
// a finding surviving unchanged across a git commit range is recognized as
// the same finding and dropped from the new run's output. Ported from
// naive.systems/analyzer's cruleslib/baseline/baseline.go, retargeted from
// the teacher's protobuf Result onto pkg/results.Result.
package baseline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	git2go "github.com/libgit2/git2go/v33"

	"naive.systems/tokenflow/pkg/results"
)

// Entry is one baselined finding: enough of pkg/results.Result to compare
// identity across commits, without the run-specific ID/RunID fields.
type Entry struct {
	ErrorMessage string `json:"errorMessage"`
	LineNumber   int32  `json:"lineNumber"`
	Path         string `json:"path"`
}

// Baseline is the on-disk snapshot CreateBaselineFile writes and
// GetBaseline reads back.
type Baseline struct {
	Entries    []Entry `json:"entries"`
	CommitHash string  `json:"commitHash"`
}

// GitObject bundles the two commit trees a diff is computed between.
type GitObject struct {
	Repo               *git2go.Repository
	CurrentCommitTree  *git2go.Tree
	BaselineCommitTree *git2go.Tree
}

// CreateBaselineFile snapshots list as baseline.json under resultsDir,
// tagged with the commit it was captured at.
func CreateBaselineFile(list *results.ResultsList, resultsDir, currentCommitHash string) error {
	path := filepath.Join(resultsDir, "baseline.json")
	b := Baseline{CommitHash: currentCommitHash}
	for _, r := range list.Results {
		b.Entries = append(b.Entries, Entry{ErrorMessage: r.ErrorMessage, LineNumber: r.LineNumber, Path: r.Path})
	}
	out, err := json.MarshalIndent(b, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot stringify baseline: %v", err)
	}
	if err := os.WriteFile(path, out, os.ModePerm); err != nil {
		return fmt.Errorf("cannot write baseline.json: %v", err)
	}
	return nil
}

// GetBaseline reads a previously written baseline.json.
func GetBaseline(baselinePath string) (Baseline, error) {
	var b Baseline
	f, err := os.Open(baselinePath)
	if err != nil {
		return b, fmt.Errorf("cannot open baseline.json: %v", err)
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return b, fmt.Errorf("cannot read baseline.json: %v", err)
	}
	if err := json.Unmarshal(content, &b); err != nil {
		return b, fmt.Errorf("cannot parse baseline.json: %v", err)
	}
	return b, nil
}

// GetHeadCommitHash shells out to git to find workingDir's HEAD commit.
func GetHeadCommitHash(workingDir string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "HEAD")
	cmd.Dir = workingDir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf(string(out))
	}
	return strings.TrimSuffix(string(out), "\n"), nil
}

// GetGitObject resolves both commits named by baseline/currentCommitHash
// into their trees.
func GetGitObject(b Baseline, currentCommitHash, workingDir string) (*GitObject, error) {
	currentOid, err := git2go.NewOid(currentCommitHash)
	if err != nil {
		return nil, fmt.Errorf("git2go.NewOid failed: %v", err)
	}
	baselineOid, err := git2go.NewOid(b.CommitHash)
	if err != nil {
		return nil, fmt.Errorf("git2go.NewOid failed: %v", err)
	}
	repo, err := git2go.OpenRepository(workingDir)
	if err != nil {
		return nil, fmt.Errorf("git2go.OpenRepository failed: %v", err)
	}
	currentCommit, err := repo.LookupCommit(currentOid)
	if err != nil {
		return nil, fmt.Errorf("git2go.LookupCommit failed: %v", err)
	}
	baselineCommit, err := repo.LookupCommit(baselineOid)
	if err != nil {
		return nil, fmt.Errorf("git2go.LookupCommit failed: %v", err)
	}
	currentTree, err := currentCommit.Tree()
	if err != nil {
		return nil, fmt.Errorf("currentCommit.Tree() failed: %v", err)
	}
	baselineTree, err := baselineCommit.Tree()
	if err != nil {
		return nil, fmt.Errorf("baselineCommit.Tree() failed: %v", err)
	}
	return &GitObject{Repo: repo, CurrentCommitTree: currentTree, BaselineCommitTree: baselineTree}, nil
}

// GetHunksFromIssueDiff flattens a git2go Diff into its hunks.
func GetHunksFromIssueDiff(issueDiff *git2go.Diff) []git2go.DiffHunk {
	var hunks []git2go.DiffHunk
	err := issueDiff.ForEach(func(file git2go.DiffDelta, progress float64) (git2go.DiffForEachHunkCallback, error) {
		return func(hunk git2go.DiffHunk) (git2go.DiffForEachLineCallback, error) {
			hunks = append(hunks, hunk)
			return func(line git2go.DiffLine) error { return nil }, nil
		}, nil
	}, git2go.DiffDetailLines)
	if err != nil {
		glog.Error(err)
		return nil
	}
	return hunks
}

func inHunk(line, start, lines int) bool {
	return line >= start && line < start+lines
}

func aboveHunk(line, start, lines int) bool {
	if lines == 0 {
		return line <= start
	}
	return line < start
}

func underHunk(line, start, lines int) bool {
	if lines == 0 {
		return line > start
	}
	return line >= start+lines
}

// CompareIssuesThroughHunks reports whether a finding at newline in the
// current tree is the same finding as one at oldline in the baseline tree,
// given the diff hunks between them: either both lines lie outside every
// hunk at the same relative offset, or neither moved at all.
func CompareIssuesThroughHunks(newline, oldline int, hunks []git2go.DiffHunk) bool {
	newPrev, oldPrev := 0, 0
	for _, hunk := range hunks {
		switch {
		case inHunk(newline, hunk.NewStart, hunk.NewLines):
			return false
		case aboveHunk(newline, hunk.NewStart, hunk.NewLines):
			return aboveHunk(oldline, hunk.OldStart, hunk.OldLines) && newline-newPrev == oldline-oldPrev
		case !underHunk(oldline, hunk.OldStart, hunk.OldLines):
			return false
		}
		newPrev = hunk.NewStart + hunk.NewLines
		if hunk.NewLines > 0 {
			newPrev--
		}
		oldPrev = hunk.OldStart + hunk.OldLines
		if hunk.OldLines > 0 {
			oldPrev--
		}
	}
	return newline-newPrev == oldline-oldPrev
}

// IsSameCode reports whether cur and old name the same source location
// across the commit range, via the diff hunks for cur's path.
func IsSameCode(g *GitObject, cur, old Entry, workingDir string) bool {
	options := &git2go.DiffOptions{
		Pathspec:     []string{strings.TrimPrefix(strings.TrimPrefix(cur.Path, workingDir), "/")},
		ContextLines: 0,
	}
	issueDiff, err := g.Repo.DiffTreeToTree(g.BaselineCommitTree, g.CurrentCommitTree, options)
	if err != nil {
		glog.Errorf("DiffTreeToTree failed: %v", err)
		return false
	}
	hunks := GetHunksFromIssueDiff(issueDiff)
	return CompareIssuesThroughHunks(int(cur.LineNumber), int(old.LineNumber), hunks)
}

// IsSameRule compares the rule-id prefix of two error messages (the part
// before the first ']').
func IsSameRule(cur, old string) bool {
	return strings.Split(cur, "]")[0] == strings.Split(old, "]")[0]
}

// RemoveDuplicatedResults drops every result from list that the baseline
// file (created at a prior commit) already reported as the same finding.
// On any setup failure (no git, no baseline yet) it returns list
// unchanged, creating the baseline file on first run.
func RemoveDuplicatedResults(list *results.ResultsList, workingDir, configDir, resultsDir string) *results.ResultsList {
	baselinePath := filepath.Join(configDir, "baseline.json")

	if err := exec.Command("git", "--version").Run(); err != nil {
		glog.Warningf("cannot find git, skipping baseline comparison")
		return list
	}
	gitLog := exec.Command("git", "log")
	gitLog.Dir = workingDir
	if gitLog.Run() != nil {
		glog.Warningf("%s is not a git repo, skipping baseline comparison", workingDir)
		return list
	}

	currentCommitHash, err := GetHeadCommitHash(workingDir)
	if err != nil {
		glog.Errorf("%v", err)
		return list
	}
	if _, err := os.Stat(baselinePath); err != nil {
		if os.IsNotExist(err) {
			if err := CreateBaselineFile(list, resultsDir, currentCommitHash); err != nil {
				glog.Errorf("%v", err)
			}
		} else {
			glog.Errorf("%v", err)
		}
		return list
	}

	b, err := GetBaseline(baselinePath)
	if err != nil {
		glog.Errorf("%v", err)
		return list
	}
	gitObject, err := GetGitObject(b, currentCommitHash, workingDir)
	if err != nil {
		glog.Errorf("%v", err)
		return list
	}

	newResults := make([]*results.Result, 0, len(list.Results))
	for _, r := range list.Results {
		cur := Entry{ErrorMessage: r.ErrorMessage, LineNumber: r.LineNumber, Path: r.Path}
		duplicated := false
		for _, old := range b.Entries {
			if IsSameRule(cur.ErrorMessage, old.ErrorMessage) && cur.Path == old.Path && IsSameCode(gitObject, cur, old, workingDir) {
				duplicated = true
				break
			}
		}
		if !duplicated {
			newResults = append(newResults, r)
		}
	}
	list.Results = newResults
	return list
}
