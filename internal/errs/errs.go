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

// Package errs implements the three error kinds from spec §7: InternalError
// (recoverable at a pass boundary), PreconditionViolation (a contract bug,
// fatal in debug builds), and SoftFailure (an expected, non-fatal miss).
package errs

import "fmt"

// InternalError names a recoverable failure during a pass: an attempted
// AST cycle, %varid% used with varid 0, a pattern scan that ran off the
// stream. Tok identifies the offending token, if any.
type InternalError struct {
	Tok any
	Msg string
}

func (e InternalError) Error() string {
	return fmt.Sprintf("internal error: %s", e.Msg)
}

// PreconditionViolation names a contract bug in the caller: a nil token
// where non-nil is required, createMutualLinks on a self-pair. These are
// not user-facing; callers are expected to panic/recover at a pass
// boundary, matching the teacher's own glog.Fatalf-on-contract-violation
// style elsewhere in the codebase.
type PreconditionViolation struct {
	Msg string
}

func (e PreconditionViolation) Error() string {
	return fmt.Sprintf("precondition violation: %s", e.Msg)
}

// SoftFailure names an expected, non-fatal miss: AddValue refusing because
// the per-token value budget is exhausted, a read* routine falling back to
// a default on missing data.
type SoftFailure struct {
	Msg string
}

func (e SoftFailure) Error() string {
	return e.Msg
}
