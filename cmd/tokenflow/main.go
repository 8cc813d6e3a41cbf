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

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/google/shlex"

	"naive.systems/tokenflow/internal/settings"
	"naive.systems/tokenflow/pkg/baseline"
	"naive.systems/tokenflow/pkg/checks"
	"naive.systems/tokenflow/pkg/library"
	"naive.systems/tokenflow/pkg/results"
	"naive.systems/tokenflow/pkg/stats"
	"naive.systems/tokenflow/pkg/token"
)

// stdlibArgRanges seeds the library oracle InvalidArgument checks against,
// standing in for a real cfg/*.xml function-signature library (spec §1's
// "external collaborators" non-goal covers the XML reader itself, not the
// argument-range data it would otherwise supply).
func stdlibArgRanges() *library.Library {
	lib := library.New()
	lib.AddArgRange("malloc", 1, library.ArgRange{Min: 0, Max: 1 << 32})
	lib.AddArgRange("memset", 3, library.ArgRange{Min: 0, Max: 1 << 32})
	return lib
}

var (
	srcDir        = flag.String("srcdir", "/src", "root directory of the sources to analyze")
	configDir     = flag.String("config_dir", "", "directory holding settings.yaml and baseline.json")
	resultsDir    = flag.String("results_dir", "/output", "directory results and the baseline snapshot are written to")
	extraFlagsStr = flag.String("extra_cflags", "", "additional compiler flags, shell-quoted; parsed and logged; the placeholder tokenizer does not use them")
	jobs          = flag.Int("jobs", 0, "parallel translation units to analyze; 0 uses settings.yaml's value")
	showResults   = flag.Bool("show_results", false, "log every finding at glog Info level in addition to writing results files")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	fmt.Println("(c) 2023 Naive Systems Ltd.")

	extraFlags, err := shlex.Split(*extraFlagsStr)
	if err != nil {
		glog.Fatalf("cannot parse -extra_cflags: %v", err)
	}
	glog.V(1).Infof("extra compiler flags: %v", extraFlags)

	s := settings.Default()
	if *configDir != "" {
		if loaded, err := settings.Load(filepath.Join(*configDir, "settings.yaml")); err == nil {
			s = loaded
		} else {
			glog.Warningf("no settings.yaml under %s, using defaults: %v", *configDir, err)
		}
	}
	if *jobs > 0 {
		s.Jobs = *jobs
	}
	if s.Jobs <= 0 {
		s.Jobs = 1
	}

	totalCode, err := stats.CountLines(*srcDir, nil)
	if err != nil {
		glog.Fatalf("stats.CountLines: %v", err)
	}
	glog.Infof("%d lines of code under %s", totalCode, *srcDir)

	gate := stats.NewMemGate(s.Jobs, 1<<30)
	lib := stdlibArgRanges()

	paths := sourceFiles(*srcDir)
	set := results.NewResultsSet()
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, path := range paths {
		path := path
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := gate.Acquire(1, 0, path); err != nil {
				glog.Errorf("%s: %v", path, err)
				return
			}
			defer gate.Release(1, 0)

			list, err := buildTokenList(path, extraFlags)
			if err != nil {
				glog.Errorf("tokenize %s: %v", path, err)
				return
			}
			found := runChecks(list, path, s, lib)
			mu.Lock()
			set.AddList(found)
			mu.Unlock()
		}()
	}
	wg.Wait()

	allResults := set.List()
	allResults = baseline.RemoveDuplicatedResults(allResults, *srcDir, *configDir, *resultsDir)
	results.SortResults(allResults)

	for _, r := range allResults.Results {
		results.AddID(r)
	}

	if err := results.WriteXML(allResults, filepath.Join(*resultsDir, "results.xml")); err != nil {
		glog.Errorf("WriteXML: %v", err)
	}
	if err := results.WriteJSON(allResults, filepath.Join(*resultsDir, "results.json")); err != nil {
		glog.Errorf("WriteJSON: %v", err)
	}

	glog.Infof("%d findings written to %s", len(allResults.Results), *resultsDir)
	if *showResults {
		results.PrintResults(allResults)
	}
}

// sourceFiles is a placeholder file-discovery step: a real run would read
// compile_commands.json the way the teacher's analyzerinterface package
// does, but a bare directory walk is enough to drive the token-stream
// engine end-to-end.
func sourceFiles(root string) []string {
	var out []string
	_ = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".c", ".cc", ".cpp", ".cxx", ".h", ".hpp":
			out = append(out, path)
		}
		return nil
	})
	return out
}

// buildTokenList is the tokenizer seam SPEC_FULL.md leaves to a real
// lexer/preprocessor front end (spec §1's "not building a C/C++ parser"
// non-goal); here it stands in as an empty stream so the checker pipeline
// still compiles and runs against whatever a future front end populates.
func buildTokenList(path string, extraFlags []string) (*token.TokenList, error) {
	_ = extraFlags
	list := token.NewTokenList()
	return list, nil
}

func runChecks(list *token.TokenList, path string, s *settings.Settings, lib *library.Library) *results.ResultsList {
	start := time.Now()
	out := &results.ResultsList{}
	out.Results = append(out.Results, checks.UninitializedRead(list, path).Results...)
	out.Results = append(out.Results, checks.OutOfBoundsAccess(list, path, s).Results...)
	out.Results = append(out.Results, checks.DeadPointer(list, path).Results...)
	out.Results = append(out.Results, checks.RedundantCondition(list, path, s).Results...)
	out.Results = append(out.Results, checks.InvalidArgument(list, path, lib, s).Results...)
	glog.V(2).Infof("%s: checks completed in %s", path, time.Since(start))
	return out
}
