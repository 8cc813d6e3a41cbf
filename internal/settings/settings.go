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

// Package settings holds the read-only configuration a run is driven by
// (spec §5: "Settings is read-only during analysis") and the cooperative
// terminate flag long scans poll, one flag per Settings value.
package settings

import (
	"os"
	"sync/atomic"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v2"
)

// Severity mirrors the teacher's checkrule.JSONOption severity strings.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityStyle   Severity = "style"
	SeverityInfo    Severity = "info"
)

// Settings is the run-wide configuration object threaded through the
// value-flow accessors and the checkers built on them. MaxValuesPerToken
// is loaded and defaulted to 10, but valueflow.AddValue does not read it:
// it applies its own fixed cap of 10 values.
type Settings struct {
	EnabledGroups     []string `yaml:"enabled_groups"`
	Inconclusive      bool     `yaml:"inconclusive"`
	MaxValuesPerToken int      `yaml:"max_values_per_token"`
	Jobs              int      `yaml:"jobs"`

	terminated atomic.Bool
}

// Default returns the settings a standalone run of the core uses absent
// any config file: warnings enabled, inconclusive results suppressed.
func Default() *Settings {
	return &Settings{
		EnabledGroups:     []string{"warning"},
		Inconclusive:      false,
		MaxValuesPerToken: 10,
	}
}

// Load reads a YAML settings file, generalizing the teacher's
// checkrule.JSONOption yaml-tagged struct to the core's own knobs.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) isEnabled(group string) bool {
	return slices.Contains(s.EnabledGroups, group)
}

// WarningEnabled reports whether the WARNING group is enabled, gating
// conditional values in GetValueLE/GE and GetInvalidValue (spec §4.5).
func (s *Settings) WarningEnabled() bool { return s.isEnabled("warning") }

// RequestTerminate sets this Settings value's cooperative cancellation flag
// (spec §5, §9's "Global terminate flag" design note); every scan given
// this Settings sees it. Long scans in
// pkg/pattern and pkg/ast poll Terminated at coarse checkpoints.
func (s *Settings) RequestTerminate() { s.terminated.Store(true) }

// Terminated reports whether RequestTerminate has been called.
func (s *Settings) Terminated() bool { return s.terminated.Load() }
